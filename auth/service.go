// Business logic for registration and login.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/user/forum-go/apperror"
)

const (
	// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
	pgUniqueViolation = "23505"
	// minPasswordLen is the minimum accepted password length at registration.
	minPasswordLen = 6
	// birthdateLayout is the accepted wire format for the optional birthdate.
	birthdateLayout = "2006-01-02"
)

// AuthService defines the authentication operations exposed to the HTTP layer.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
}

// authService is the pgx-backed implementation of AuthService.
type authService struct {
	db     *pgxpool.Pool
	hasher *PasswordHasher
	issuer *TokenIssuer
	log    *logrus.Logger
}

// NewAuthService creates a new AuthService. The hasher and issuer are
// injected so their cost factor and signing secret come from configuration,
// never from package-level state.
func NewAuthService(db *pgxpool.Pool, hasher *PasswordHasher, issuer *TokenIssuer, log *logrus.Logger) AuthService {
	return &authService{db: db, hasher: hasher, issuer: issuer, log: log}
}

// Register creates a new user with a hashed password and the default role.
// The role is never taken from the request.
func (s *authService) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, apperror.NewValidationError("Username is required", nil)
	}
	if len(req.Password) < minPasswordLen {
		return nil, apperror.NewValidationError("Password must be at least 6 characters", nil)
	}

	var birthdate *time.Time
	if req.Birthdate != "" {
		parsed, err := time.Parse(birthdateLayout, req.Birthdate)
		if err != nil {
			return nil, apperror.NewValidationError("Birthdate must be in YYYY-MM-DD format", nil)
		}
		birthdate = &parsed
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		// Hashing failure is a server fault and fails closed.
		return nil, apperror.NewInternalError("Failed to process credentials", err)
	}

	user := &User{
		Username:       username,
		HashedPassword: digest,
		Birthdate:      birthdate,
	}

	query := `INSERT INTO users (username, password, birthdate)
              VALUES ($1, $2, $3)
              RETURNING id, role, created_at`
	err = s.db.QueryRow(ctx, query, user.Username, user.HashedPassword, birthdate).
		Scan(&user.ID, &user.Role, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperror.NewConflictError("Username already exists", nil)
		}
		return nil, apperror.NewDatabaseError("Failed to create user", err)
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("user registered")
	return user, nil
}

// Login authenticates a user and returns a signed token along with the
// sanitized account record. Unknown usernames and wrong passwords produce the
// exact same error so the response does not reveal which part was wrong.
func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, apperror.NewValidationError("Username and password are required", nil)
	}

	user, err := s.getUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewAuthError("Invalid credentials", nil)
		}
		s.log.WithError(err).Error("login lookup failed")
		return nil, apperror.NewDatabaseError("Failed to get user", err)
	}

	if !s.hasher.Verify(req.Password, user.HashedPassword) {
		return nil, apperror.NewAuthError("Invalid credentials", nil)
	}

	token, err := s.issuer.Issue(Identity{ID: user.ID, Username: user.Username, Role: user.Role})
	if err != nil {
		return nil, apperror.NewInternalError("Failed to issue token", err)
	}

	user.HashedPassword = ""
	s.log.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("user logged in")
	return &LoginResponse{Token: token, User: user}, nil
}

func (s *authService) getUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	query := `SELECT id, username, password, role, created_at FROM users WHERE username = $1`
	err := s.db.QueryRow(ctx, query, username).
		Scan(&user.ID, &user.Username, &user.HashedPassword, &user.Role, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

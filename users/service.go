package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/forum-go/apperror"
)

// UserService defines account lookups exposed to the HTTP layer.
type UserService interface {
	GetByID(ctx context.Context, userID int) (*ProfileResponse, error)
}

type userService struct {
	db *pgxpool.Pool
}

// NewUserService creates a new UserService.
func NewUserService(db *pgxpool.Pool) UserService {
	return &userService{db: db}
}

// GetByID retrieves a user's account record by ID.
func (s *userService) GetByID(ctx context.Context, userID int) (*ProfileResponse, error) {
	query := `SELECT id, username, role, birthdate, created_at FROM users WHERE id = $1`

	var profile ProfileResponse
	var birthdate sql.NullTime
	err := s.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.Username,
		&profile.Role,
		&birthdate,
		&profile.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("user with ID %d not found", userID), nil)
		}
		return nil, apperror.NewDatabaseError("Failed to get user", err)
	}
	if birthdate.Valid {
		profile.Birthdate = &birthdate.Time
	}
	return &profile, nil
}

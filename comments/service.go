package comments

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/user/forum-go/apperror"
	"github.com/user/forum-go/auth"
)

// pgForeignKeyViolation is the PostgreSQL error code for foreign key violations.
const pgForeignKeyViolation = "23503"

// CommentService defines the comment operations exposed to the HTTP layer.
type CommentService interface {
	ListForPost(ctx context.Context, postID int) ([]Comment, error)
	Add(ctx context.Context, identity auth.Identity, postID int, req AddCommentRequest) (*Comment, error)
	Delete(ctx context.Context, id int, identity auth.Identity) error
}

type commentService struct {
	db  *pgxpool.Pool
	log *logrus.Logger
}

// NewCommentService creates a new CommentService.
func NewCommentService(db *pgxpool.Pool, log *logrus.Logger) CommentService {
	return &commentService{db: db, log: log}
}

// ListForPost returns a post's comments oldest-first.
func (s *commentService) ListForPost(ctx context.Context, postID int) ([]Comment, error) {
	query := `SELECT id, post_id, user_id, author, body, created_at
              FROM comments WHERE post_id = $1 ORDER BY created_at ASC`
	rows, err := s.db.Query(ctx, query, postID)
	if err != nil {
		return nil, apperror.NewDatabaseError("Failed to load comments", err)
	}
	defer rows.Close()

	list := []Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Author, &c.Body, &c.CreatedAt); err != nil {
			return nil, apperror.NewDatabaseError("Failed to scan comment", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("Failed to load comments", err)
	}
	return list, nil
}

// Add creates a comment on a post, stamping the author from the verified
// identity. The body must be non-empty after trimming.
func (s *commentService) Add(ctx context.Context, identity auth.Identity, postID int, req AddCommentRequest) (*Comment, error) {
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, apperror.NewValidationError("Comment body is required", nil)
	}

	comment := &Comment{
		PostID: postID,
		UserID: identity.ID,
		Author: identity.Username,
		Body:   body,
	}

	query := `INSERT INTO comments (post_id, user_id, author, body)
              VALUES ($1, $2, $3, $4)
              RETURNING id, created_at`
	err := s.db.QueryRow(ctx, query, comment.PostID, comment.UserID, comment.Author, comment.Body).
		Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return nil, apperror.NewNotFoundError("Post not found", nil)
		}
		return nil, apperror.NewDatabaseError("Failed to create comment", err)
	}

	s.log.WithFields(logrus.Fields{"comment_id": comment.ID, "post_id": postID, "user_id": identity.ID}).Info("comment created")
	return comment, nil
}

// Delete removes a comment. The caller must own the comment or hold the
// admin role; the ownership check runs before any mutation.
func (s *commentService) Delete(ctx context.Context, id int, identity auth.Identity) error {
	var ownerID int
	err := s.db.QueryRow(ctx, `SELECT user_id FROM comments WHERE id = $1`, id).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperror.NewNotFoundError("Comment not found", nil)
		}
		return apperror.NewDatabaseError("Failed to load comment", err)
	}

	if ownerID != identity.ID && !identity.IsAdmin() {
		return apperror.NewUnauthorizedError("You may only delete your own comments", nil)
	}

	if _, err := s.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id); err != nil {
		return apperror.NewDatabaseError("Failed to delete comment", err)
	}

	s.log.WithFields(logrus.Fields{"comment_id": id, "user_id": identity.ID}).Info("comment deleted")
	return nil
}

// Package likes implements the per-user like toggle on posts. A like is pure
// presence in post_likes: toggling flips existence, it never accumulates.
package likes

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/user/forum-go/apperror"
)

// ToggleResult reports the state after a toggle.
type ToggleResult struct {
	Liked bool  `json:"liked"`
	Likes int64 `json:"likes"`
}

// LikeService defines the like operations exposed to the HTTP layer.
type LikeService interface {
	Toggle(ctx context.Context, postID, userID int) (*ToggleResult, error)
	Status(ctx context.Context, postID, userID int) (bool, error)
}

type likeService struct {
	db  *pgxpool.Pool
	log *logrus.Logger
}

// NewLikeService creates a new LikeService.
func NewLikeService(db *pgxpool.Pool, log *logrus.Logger) LikeService {
	return &likeService{db: db, log: log}
}

// Toggle flips the (post, user) like inside a single transaction so the
// existence check, the flip and the recount cannot interleave with a
// concurrent toggle from the same user. A second toggle always undoes the
// first.
func (s *likeService) Toggle(ctx context.Context, postID, userID int) (result *ToggleResult, err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, apperror.NewDatabaseError("Failed to begin transaction", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		} else if err != nil {
			_ = tx.Rollback(ctx)
		} else if commitErr := tx.Commit(ctx); commitErr != nil {
			result = nil
			err = apperror.NewDatabaseError("Failed to commit like toggle", commitErr)
		}
	}()

	var exists bool
	err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`, postID).Scan(&exists)
	if err != nil {
		return nil, apperror.NewDatabaseError("Failed to check post", err)
	}
	if !exists {
		return nil, apperror.NewNotFoundError("Post not found", nil)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return nil, apperror.NewDatabaseError("Failed to toggle like", err)
	}

	liked := false
	if tag.RowsAffected() == 0 {
		// Nothing to remove, so this toggle is a like. ON CONFLICT guards
		// against a duplicate insert racing in from another request.
		_, err = tx.Exec(ctx,
			`INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			postID, userID)
		if err != nil {
			return nil, apperror.NewDatabaseError("Failed to toggle like", err)
		}
		liked = true
	}

	var likes int64
	err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM post_likes WHERE post_id = $1`, postID).Scan(&likes)
	if err != nil {
		return nil, apperror.NewDatabaseError("Failed to count likes", err)
	}

	s.log.WithFields(logrus.Fields{"post_id": postID, "user_id": userID, "liked": liked}).Debug("like toggled")
	return &ToggleResult{Liked: liked, Likes: likes}, nil
}

// Status reports whether the user currently likes the post.
func (s *likeService) Status(ctx context.Context, postID, userID int) (bool, error) {
	var liked bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM post_likes WHERE post_id = $1 AND user_id = $2)`,
		postID, userID).Scan(&liked)
	if err != nil {
		return false, apperror.NewDatabaseError("Failed to check like status", err)
	}
	return liked, nil
}

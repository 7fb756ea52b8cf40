package posts

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/user/forum-go/apperror"
	"github.com/user/forum-go/auth"
)

// PostService defines the post operations exposed to the HTTP layer.
type PostService interface {
	List(ctx context.Context) ([]Post, error)
	Get(ctx context.Context, id int) (*Post, error)
	Create(ctx context.Context, identity auth.Identity, req CreatePostRequest) (*Post, error)
	Delete(ctx context.Context, id int) error
}

type postService struct {
	db  *pgxpool.Pool
	log *logrus.Logger
}

// NewPostService creates a new PostService.
func NewPostService(db *pgxpool.Pool, log *logrus.Logger) PostService {
	return &postService{db: db, log: log}
}

// List returns all posts newest-first, each with its derived like and
// comment counts.
func (s *postService) List(ctx context.Context) ([]Post, error) {
	query := `
		SELECT p.id, p.user_id, p.author, p.title, p.category, p.body, p.views, p.created_at,
		       COUNT(DISTINCT l.user_id) AS like_count,
		       COUNT(DISTINCT c.id) AS comment_count
		FROM posts p
		LEFT JOIN post_likes l ON l.post_id = p.id
		LEFT JOIN comments c ON c.post_id = p.id
		GROUP BY p.id
		ORDER BY p.created_at DESC
	`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, apperror.NewDatabaseError("Failed to load posts", err)
	}
	defer rows.Close()

	list := []Post{}
	for rows.Next() {
		var p Post
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.Author, &p.Title, &p.Category, &p.Body,
			&p.Views, &p.CreatedAt, &p.LikeCount, &p.CommentCount,
		); err != nil {
			return nil, apperror.NewDatabaseError("Failed to scan post", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("Failed to load posts", err)
	}
	return list, nil
}

// Get returns a single post and increments its view counter as a side effect
// of the read. The increment is a single atomic UPDATE at the store level, so
// concurrent fetches cannot lose counts.
func (s *postService) Get(ctx context.Context, id int) (*Post, error) {
	query := `
		WITH bumped AS (
			UPDATE posts SET views = views + 1 WHERE id = $1
			RETURNING id, user_id, author, title, category, body, views, created_at
		)
		SELECT b.id, b.user_id, b.author, b.title, b.category, b.body, b.views, b.created_at,
		       (SELECT COUNT(*) FROM post_likes l WHERE l.post_id = b.id) AS like_count,
		       (SELECT COUNT(*) FROM comments c WHERE c.post_id = b.id) AS comment_count
		FROM bumped b
	`
	var p Post
	err := s.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.UserID, &p.Author, &p.Title, &p.Category, &p.Body,
		&p.Views, &p.CreatedAt, &p.LikeCount, &p.CommentCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("Post not found", nil)
		}
		return nil, apperror.NewDatabaseError("Failed to load post", err)
	}
	return &p, nil
}

// Create inserts a new post owned by the verified identity. Title, category
// and body must be non-empty after trimming.
func (s *postService) Create(ctx context.Context, identity auth.Identity, req CreatePostRequest) (*Post, error) {
	title := strings.TrimSpace(req.Title)
	category := strings.TrimSpace(req.Category)
	body := strings.TrimSpace(req.Body)
	if title == "" || category == "" || body == "" {
		return nil, apperror.NewValidationError("Title, category and body are required", nil)
	}

	post := &Post{
		UserID:   identity.ID,
		Author:   identity.Username,
		Title:    title,
		Category: category,
		Body:     body,
	}

	query := `INSERT INTO posts (user_id, author, title, category, body)
              VALUES ($1, $2, $3, $4, $5)
              RETURNING id, views, created_at`
	err := s.db.QueryRow(ctx, query, post.UserID, post.Author, post.Title, post.Category, post.Body).
		Scan(&post.ID, &post.Views, &post.CreatedAt)
	if err != nil {
		return nil, apperror.NewDatabaseError("Failed to create post", err)
	}

	s.log.WithFields(logrus.Fields{"post_id": post.ID, "user_id": identity.ID}).Info("post created")
	return post, nil
}

// Delete removes a post by id. Authorization (admin role) is enforced by the
// router middleware before this runs.
func (s *postService) Delete(ctx context.Context, id int) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return apperror.NewDatabaseError("Failed to delete post", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError("Post not found", nil)
	}
	s.log.WithField("post_id", id).Info("post deleted")
	return nil
}

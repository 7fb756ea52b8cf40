// Package comments implements comments on posts: public listing,
// authenticated creation and owner-or-admin deletion.
package comments

import "time"

// Comment represents a comment on a post. Author is denormalized from the
// creating user at write time, mirroring the posts table.
type Comment struct {
	ID        int       `json:"id"`
	PostID    int       `json:"post_id"`
	UserID    int       `json:"user_id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// AddCommentRequest is the payload for creating a comment.
type AddCommentRequest struct {
	Body string `json:"body" example:"Nice post!"`
}

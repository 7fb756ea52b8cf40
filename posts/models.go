// Package posts implements the forum post resource: listing with aggregated
// like and comment counts, single-post reads with a view counter bump,
// authenticated creation and admin-gated deletion.
package posts

import "time"

// Post represents a forum post. Author is denormalized from the creating
// user at write time so list reads avoid a join; LikeCount and CommentCount
// are derived per query and never stored.
type Post struct {
	ID           int       `json:"id"`
	UserID       int       `json:"user_id"`
	Author       string    `json:"author"`
	Title        string    `json:"title"`
	Category     string    `json:"category"`
	Body         string    `json:"body"`
	Views        int       `json:"views"`
	CreatedAt    time.Time `json:"created_at"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`
}

// CreatePostRequest is the payload for creating a post. The author and owner
// are stamped from the verified identity, never from the request.
type CreatePostRequest struct {
	Title    string `json:"title" example:"Introducing myself"`
	Category string `json:"category" example:"general"`
	Body     string `json:"body" example:"Hello everyone!"`
}

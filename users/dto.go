// Package users exposes the authenticated user's own account record.
package users

import "time"

// ProfileResponse represents the account data returned for the current user.
// The password digest is never part of this shape.
type ProfileResponse struct {
	ID        int        `json:"id"`
	Username  string     `json:"username"`
	Role      string     `json:"role"`
	Birthdate *time.Time `json:"birthdate,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Package auth contains authentication and authorization logic: user
// registration and login, password hashing, token issuance and verification,
// and the request middleware that gates protected routes.
package auth

import "time"

// Role values assignable to a user. Registration always assigns RoleUser;
// RoleAdmin is granted out of band.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a user account as stored in the database.
type User struct {
	ID             int        `json:"id"`
	Username       string     `json:"username"`
	HashedPassword string     `json:"-"` // Never exposed in API responses
	Birthdate      *time.Time `json:"birthdate,omitempty"`
	Role           string     `json:"role"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Identity is the verified caller attached to a request context after the
// bearer token has been validated. It carries exactly what the token encodes.
type Identity struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// IsAdmin reports whether the identity holds the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Request and response payloads for the auth endpoints.
package auth

// RegisterRequest represents the registration request payload.
// Role is deliberately absent: every new account starts as a regular user.
type RegisterRequest struct {
	Username  string `json:"username" example:"alice"`
	Password  string `json:"password" example:"password123"`
	Birthdate string `json:"birthdate,omitempty" example:"1990-04-21"` // Optional, YYYY-MM-DD
}

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"password123"`
}

// LoginResponse is returned to the client upon successful login.
type LoginResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User  *User  `json:"user"`
}

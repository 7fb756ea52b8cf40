// HTTP middleware gating protected routes. RequireAuth verifies the bearer
// token and attaches the identity to the request context; RequireRole layers
// a role check on top. Neither touches the store.
package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/user/forum-go/apperror"
)

// RequireAuth returns middleware that extracts and verifies the bearer token
// from the Authorization header. A missing header yields 401; a malformed,
// invalid or expired token yields 403. On success the decoded identity is
// placed in the request context for downstream handlers.
func RequireAuth(issuer *TokenIssuer) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteError(w, r, apperror.NewAuthError("Authorization header is missing", nil))
				return
			}

			// The Authorization header should be in the format "Bearer {token}".
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				WriteError(w, r, apperror.NewUnauthorizedError("Authorization header format must be Bearer {token}", nil))
				return
			}

			claims, err := issuer.Verify(parts[1])
			if err != nil {
				WriteError(w, r, apperror.NewUnauthorizedError("Invalid or expired token", err))
				return
			}

			ctx := NewContextWithIdentity(r.Context(), claims.Identity())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole returns middleware rejecting any caller whose verified identity
// does not hold the given role. It must run after RequireAuth.
func RequireRole(role string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				WriteError(w, r, apperror.NewAuthError("no authentication context found", nil))
				return
			}
			if identity.Role != role {
				WriteError(w, r, apperror.NewUnauthorizedError(fmt.Sprintf("%s role required", role), nil))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

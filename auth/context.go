// Context utilities for carrying the verified identity through a request.
package auth

import (
	"context"
)

// contextKey is a custom type for context keys, preventing collisions with
// keys defined in other packages.
type contextKey string

const (
	identityContextKey contextKey = "auth_identity"
)

// NewContextWithIdentity returns a child context carrying the verified identity.
func NewContextWithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// IdentityFromContext extracts the identity stored by the auth middleware.
// The second return value indicates whether an identity was present.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(Identity)
	return identity, ok
}

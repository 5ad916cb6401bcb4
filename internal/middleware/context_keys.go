package middleware

import (
	"context"

	"github.com/eliteassociate/realty-service/internal/entity"
)

// ContextKey is a private type for context keys to avoid collisions.
type ContextKey string

// UserCtxKey holds the authenticated, sanitized user record.
const UserCtxKey = ContextKey("auth_user")

// UserFromContext extracts the authenticated user placed there by JWTAuth.
func UserFromContext(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(*entity.User)
	return user, ok
}

package auth

import (
	"context"

	"github.com/mstrand/todoapi/internal/model"
)

type contextKey struct{}

// Identity is the resolved credential attached to authenticated requests:
// the user plus the exact token record the request presented, so logout can
// revoke that record and nothing else.
type Identity struct {
	User  *model.User
	Token *model.Token
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}

// UserID returns the authenticated user's id, or 0 when the context carries
// no identity.
func UserID(ctx context.Context) int64 {
	id, ok := FromContext(ctx)
	if !ok || id.User == nil {
		return 0
	}
	return id.User.ID
}

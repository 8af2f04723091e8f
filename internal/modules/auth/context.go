package auth

import "context"

type contextKey int

const contextKeyUser contextKey = iota

// SetUserContext returns a new context with the user attached.
func SetUserContext(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, contextKeyUser, u)
}

// UserFromContext extracts the signed-in user from context, or nil.
func UserFromContext(ctx context.Context) *User {
	u, _ := ctx.Value(contextKeyUser).(*User)
	return u
}

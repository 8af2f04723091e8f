package auth

import "context"

// Repository reads sessions from the auth service. Browser credentials
// travel in ctx.
type Repository interface {
	GetSession(ctx context.Context) (*Session, error)
	SignOut(ctx context.Context) error
}

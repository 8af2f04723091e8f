package user

import (
	"context"
	"errors"

	"github.com/georgemunganga/pharmacy-storefront/internal/backend"
	"github.com/georgemunganga/pharmacy-storefront/internal/datatable"
)

var (
	ErrNameRequired  = errors.New("name is required")
	ErrInvalidImage  = errors.New("image must be an http(s) URL")
	ErrInvalidStatus = errors.New("unknown account status")
	ErrOwnAccount    = errors.New("admins cannot change their own account")
)

// Service defines the interface for user-related business logic. Methods
// taking actorID refuse to act on the actor's own account.
type Service interface {
	List(ctx context.Context, q datatable.QueryState) (*backend.List[User], error)
	GetUser(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, id, name, image string) (*User, error)
	SetStatus(ctx context.Context, actorID, id, status string) (*User, error)
	// BanMany bans every active user in users and reports the failures
	// together.
	BanMany(ctx context.Context, actorID string, users []User) error
	Delete(ctx context.Context, actorID, id string) error
}

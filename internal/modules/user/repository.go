package user

import (
	"context"

	"github.com/georgemunganga/pharmacy-storefront/internal/backend"
)

type ListParams struct {
	backend.ListParams
	Role   string `url:"role,omitempty"`
	Status string `url:"status,omitempty"`
}

type Repository interface {
	List(ctx context.Context, p ListParams) (*backend.List[User], error)
	Get(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, id string, req ProfileRequest) (*User, error)
	SetStatus(ctx context.Context, id string, req StatusRequest) (*User, error)
	Delete(ctx context.Context, id string) error
}

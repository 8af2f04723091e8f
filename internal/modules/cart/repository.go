package cart

import "context"

type Repository interface {
	Get(ctx context.Context) (*Cart, error)
	Add(ctx context.Context, req AddRequest) error
	Update(ctx context.Context, itemID string, req UpdateRequest) error
	Remove(ctx context.Context, itemID string) error
}

package category

import "context"

// Repository defines access to categories.
type Repository interface {
	List(ctx context.Context) ([]Category, error)
	Create(ctx context.Context, req CreateRequest) (*Category, error)
}

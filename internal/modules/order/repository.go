package order

import (
	"context"

	"github.com/georgemunganga/pharmacy-storefront/internal/backend"
)

// Repository defines access to orders.
type Repository interface {
	Create(ctx context.Context, req PlaceOrderRequest) (*Order, error)
	List(ctx context.Context, scope Scope, p ListParams) (*backend.List[Order], error)
	Get(ctx context.Context, id string) (*Order, error)
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error)
}

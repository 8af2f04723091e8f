package medicine

import (
	"context"

	"github.com/georgemunganga/pharmacy-storefront/internal/backend"
)

// Repository defines access to medicines.
type Repository interface {
	List(ctx context.Context, f Filter) (*backend.List[Medicine], error)
	Get(ctx context.Context, id string) (*Medicine, error)
	ByCategory(ctx context.Context, categoryID string) ([]Medicine, error)
	Create(ctx context.Context, in Input) (*Medicine, error)
	Update(ctx context.Context, id string, in Input) (*Medicine, error)
	Delete(ctx context.Context, id string) error
}

package blog

import (
	"context"

	"github.com/georgemunganga/pharmacy-storefront/internal/backend"
)

// Repository defines access to blog posts.
type Repository interface {
	List(ctx context.Context, p ListParams) (*backend.List[Post], error)
	Get(ctx context.Context, id string) (*Post, error)
}

package cart

import (
	"context"
	"net/url"

	"github.com/georgemunganga/pharmacy-storefront/internal/backend"
)

type apiRepo struct{ client *backend.Client }

func NewAPIRepository(client *backend.Client) Repository { return &apiRepo{client: client} }

// Get returns the cart, or an empty one when the customer has none yet.
func (r *apiRepo) Get(ctx context.Context) (*Cart, error) {
	var out backend.Item[*Cart]
	if err := r.client.Get(ctx, "cart.get", "/cart", nil, &out); err != nil {
		if backend.IsNotFound(err) {
			return &Cart{}, nil
		}
		return nil, err
	}
	if out.Data == nil {
		return &Cart{}, nil
	}
	return out.Data, nil
}

func (r *apiRepo) Add(ctx context.Context, req AddRequest) error {
	return r.client.Post(ctx, "cart.add", "/cart/items", req, nil)
}

func (r *apiRepo) Update(ctx context.Context, itemID string, req UpdateRequest) error {
	return r.client.Patch(ctx, "cart.update", "/cart/items/"+url.PathEscape(itemID), req, nil)
}

func (r *apiRepo) Remove(ctx context.Context, itemID string) error {
	return r.client.Delete(ctx, "cart.remove", "/cart/items/"+url.PathEscape(itemID), nil)
}

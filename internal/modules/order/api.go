package order

import (
	"context"
	"net/url"

	"github.com/georgemunganga/pharmacy-storefront/internal/backend"
)

type apiRepo struct{ client *backend.Client }

func NewAPIRepository(client *backend.Client) Repository { return &apiRepo{client: client} }

func (r *apiRepo) Create(ctx context.Context, req PlaceOrderRequest) (*Order, error) {
	var out backend.Item[Order]
	if err := r.client.Post(ctx, "orders.create", "/orders", req, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (r *apiRepo) List(ctx context.Context, scope Scope, p ListParams) (*backend.List[Order], error) {
	var out backend.List[Order]
	if err := r.client.Get(ctx, "orders.list", scope.path(), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *apiRepo) Get(ctx context.Context, id string) (*Order, error) {
	var out backend.Item[Order]
	if err := r.client.Get(ctx, "orders.get", "/orders/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (r *apiRepo) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error) {
	var out backend.Item[Order]
	if err := r.client.Patch(ctx, "orders.update_status", "/orders/"+url.PathEscape(id)+"/status", req, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

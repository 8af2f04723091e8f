package user

import (
	"context"
	"net/url"

	"github.com/georgemunganga/pharmacy-storefront/internal/backend"
)

type apiRepo struct{ client *backend.Client }

func NewAPIRepository(client *backend.Client) Repository { return &apiRepo{client: client} }

func (r *apiRepo) List(ctx context.Context, p ListParams) (*backend.List[User], error) {
	var out backend.List[User]
	if err := r.client.Get(ctx, "users.list", "/users", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *apiRepo) Get(ctx context.Context, id string) (*User, error) {
	var out backend.Item[User]
	if err := r.client.Get(ctx, "users.get", "/users/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (r *apiRepo) UpdateProfile(ctx context.Context, id string, req ProfileRequest) (*User, error) {
	var out backend.Item[User]
	if err := r.client.Patch(ctx, "users.update", "/users/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (r *apiRepo) SetStatus(ctx context.Context, id string, req StatusRequest) (*User, error) {
	var out backend.Item[User]
	if err := r.client.Patch(ctx, "users.status", "/users/admin/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (r *apiRepo) Delete(ctx context.Context, id string) error {
	return r.client.Delete(ctx, "users.delete", "/users/"+url.PathEscape(id), nil)
}

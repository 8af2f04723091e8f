package medicine

import (
	"context"
	"net/url"
	"time"

	"github.com/georgemunganga/pharmacy-storefront/internal/backend"
	"github.com/georgemunganga/pharmacy-storefront/internal/cache"
)

type apiRepo struct{ client *backend.Client }

func NewAPIRepository(client *backend.Client) Repository { return &apiRepo{client: client} }

func (r *apiRepo) List(ctx context.Context, f Filter) (*backend.List[Medicine], error) {
	var out backend.List[Medicine]
	if err := r.client.Get(ctx, "medicines.list", "/medicines", f, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *apiRepo) Get(ctx context.Context, id string) (*Medicine, error) {
	var out backend.Item[Medicine]
	if err := r.client.Get(ctx, "medicines.get", "/medicines/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (r *apiRepo) ByCategory(ctx context.Context, categoryID string) ([]Medicine, error) {
	var out backend.List[Medicine]
	path := "/medicines/category-medicine/" + url.PathEscape(categoryID)
	if err := r.client.Get(ctx, "medicines.by_category", path, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (r *apiRepo) Create(ctx context.Context, in Input) (*Medicine, error) {
	var out backend.Item[Medicine]
	if err := r.client.Post(ctx, "medicines.create", "/medicines", in, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (r *apiRepo) Update(ctx context.Context, id string, in Input) (*Medicine, error) {
	var out backend.Item[Medicine]
	if err := r.client.Patch(ctx, "medicines.update", "/medicines/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (r *apiRepo) Delete(ctx context.Context, id string) error {
	return r.client.Delete(ctx, "medicines.delete", "/medicines/"+url.PathEscape(id), nil)
}

// cachedRepo keeps recently viewed medicine details. Writes through this
// repository evict the entry.
type cachedRepo struct {
	Repository
	details *cache.Cache[*Medicine]
}

func NewCachedRepository(repo Repository, size int, ttl time.Duration, metrics *backend.Metrics) (Repository, error) {
	c, err := cache.New[*Medicine]("medicines", size, ttl, metrics)
	if err != nil {
		return nil, err
	}
	return &cachedRepo{Repository: repo, details: c}, nil
}

func (r *cachedRepo) Get(ctx context.Context, id string) (*Medicine, error) {
	return r.details.Get(ctx, id, func(ctx context.Context) (*Medicine, error) {
		return r.Repository.Get(ctx, id)
	})
}

func (r *cachedRepo) Update(ctx context.Context, id string, in Input) (*Medicine, error) {
	defer r.details.Remove(id)
	return r.Repository.Update(ctx, id, in)
}

func (r *cachedRepo) Delete(ctx context.Context, id string) error {
	defer r.details.Remove(id)
	return r.Repository.Delete(ctx, id)
}

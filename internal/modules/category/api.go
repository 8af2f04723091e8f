package category

import (
	"context"
	"time"

	"github.com/georgemunganga/pharmacy-storefront/internal/backend"
	"github.com/georgemunganga/pharmacy-storefront/internal/cache"
)

type apiRepo struct{ client *backend.Client }

func NewAPIRepository(client *backend.Client) Repository { return &apiRepo{client: client} }

func (r *apiRepo) List(ctx context.Context) ([]Category, error) {
	var out backend.List[Category]
	if err := r.client.Get(ctx, "categories.list", "/categories", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (r *apiRepo) Create(ctx context.Context, req CreateRequest) (*Category, error) {
	var out backend.Item[Category]
	if err := r.client.Post(ctx, "categories.create", "/categories", req, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

const listKey = "all"

// cachedRepo serves the category list from memory. Every page with a
// category sidebar or picker reads it.
type cachedRepo struct {
	Repository
	cache *cache.Cache[[]Category]
}

func NewCachedRepository(repo Repository, ttl time.Duration, metrics *backend.Metrics) (Repository, error) {
	c, err := cache.New[[]Category]("categories", 8, ttl, metrics)
	if err != nil {
		return nil, err
	}
	return &cachedRepo{Repository: repo, cache: c}, nil
}

func (r *cachedRepo) List(ctx context.Context) ([]Category, error) {
	list, err := r.cache.Get(ctx, listKey, r.Repository.List)
	if err != nil {
		return nil, err
	}
	return append([]Category(nil), list...), nil
}

func (r *cachedRepo) Create(ctx context.Context, req CreateRequest) (*Category, error) {
	c, err := r.Repository.Create(ctx, req)
	if err == nil {
		r.cache.Purge()
	}
	return c, err
}

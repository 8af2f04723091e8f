package review

import (
	"context"
	"net/url"

	"github.com/georgemunganga/pharmacy-storefront/internal/backend"
)

type apiRepo struct{ client *backend.Client }

func NewAPIRepository(client *backend.Client) Repository { return &apiRepo{client: client} }

func (r *apiRepo) ForMedicine(ctx context.Context, medicineID string) ([]Review, error) {
	var out backend.List[Review]
	if err := r.client.Get(ctx, "reviews.by_medicine", "/reviews/medicine/"+url.PathEscape(medicineID), nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (r *apiRepo) Create(ctx context.Context, medicineID string, in Input) (*Review, error) {
	var out backend.Item[Review]
	if err := r.client.Post(ctx, "reviews.create", "/reviews/"+url.PathEscape(medicineID), in, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (r *apiRepo) Update(ctx context.Context, id string, in Input) (*Review, error) {
	var out backend.Item[Review]
	if err := r.client.Put(ctx, "reviews.update", "/reviews/update/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (r *apiRepo) Delete(ctx context.Context, id string) error {
	return r.client.Delete(ctx, "reviews.delete", "/reviews/"+url.PathEscape(id), nil)
}

package review

import "context"

type Repository interface {
	ForMedicine(ctx context.Context, medicineID string) ([]Review, error)
	Create(ctx context.Context, medicineID string, in Input) (*Review, error)
	Update(ctx context.Context, id string, in Input) (*Review, error)
	Delete(ctx context.Context, id string) error
}

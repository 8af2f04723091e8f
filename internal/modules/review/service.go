package review

import (
	"context"
	"errors"
	"strings"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

const maxComment = 1000

// Service defines review business logic.
type Service interface {
	ForMedicine(ctx context.Context, medicineID string) ([]Review, error)
	Create(ctx context.Context, medicineID string, in Input) (*Review, error)
	Update(ctx context.Context, id string, in Input) (*Review, error)
	Delete(ctx context.Context, id string) error
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) ForMedicine(ctx context.Context, medicineID string) ([]Review, error) {
	return s.repo.ForMedicine(ctx, medicineID)
}

func (s *service) Create(ctx context.Context, medicineID string, in Input) (*Review, error) {
	in, err := clean(in)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, medicineID, in)
}

func (s *service) Update(ctx context.Context, id string, in Input) (*Review, error) {
	in, err := clean(in)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, in)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func clean(in Input) (Input, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return in, ErrInvalidRating
	}
	in.Comment = strings.TrimSpace(in.Comment)
	if r := []rune(in.Comment); len(r) > maxComment {
		in.Comment = string(r[:maxComment])
	}
	return in, nil
}

// Average is the mean rating, or 0 without reviews.
func Average(list []Review) float64 {
	if len(list) == 0 {
		return 0
	}
	sum := 0
	for _, r := range list {
		sum += r.Rating
	}
	return float64(sum) / float64(len(list))
}

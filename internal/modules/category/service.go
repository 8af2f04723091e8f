package category

import (
	"context"
	"errors"
	"strings"

	"github.com/georgemunganga/pharmacy-storefront/internal/datatable"
)

var ErrNameRequired = errors.New("category name is required")

// Service defines category business logic.
type Service interface {
	List(ctx context.Context) ([]Category, error)
	Create(ctx context.Context, name string) (*Category, error)
	// Options lists categories as filter or select choices.
	Options(ctx context.Context) ([]datatable.FilterOption, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) List(ctx context.Context) ([]Category, error) {
	return s.repo.List(ctx)
}

func (s *service) Create(ctx context.Context, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	return s.repo.Create(ctx, CreateRequest{Name: name})
}

func (s *service) Options(ctx context.Context) ([]datatable.FilterOption, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	opts := make([]datatable.FilterOption, len(list))
	for i, c := range list {
		opts[i] = datatable.FilterOption{Label: c.Name, Value: c.ID}
	}
	return opts, nil
}

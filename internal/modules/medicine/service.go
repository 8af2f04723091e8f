package medicine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/georgemunganga/pharmacy-storefront/internal/backend"
	"github.com/georgemunganga/pharmacy-storefront/internal/datatable"
)

// ValidationError maps form fields to messages.
type ValidationError map[string]string

func (e ValidationError) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "invalid medicine: " + strings.Join(fields, ", ")
}

// Service defines medicine business logic.
type Service interface {
	List(ctx context.Context, f Filter) (*backend.List[Medicine], error)
	Get(ctx context.Context, id string) (*Medicine, error)
	// Related lists up to limit other medicines of m's category.
	Related(ctx context.Context, m *Medicine, limit int) ([]Medicine, error)
	// Featured lists up to limit medicines flagged as featured.
	Featured(ctx context.Context, limit int) ([]Medicine, error)
	Create(ctx context.Context, in Input) (*Medicine, error)
	Update(ctx context.Context, id string, in Input) (*Medicine, error)
	Delete(ctx context.Context, id string) error
	// DeleteMany deletes every medicine and reports all failures together.
	DeleteMany(ctx context.Context, list []Medicine) error
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) List(ctx context.Context, f Filter) (*backend.List[Medicine], error) {
	if f.MinPrice > 0 && f.MaxPrice > 0 && f.MinPrice > f.MaxPrice {
		f.MinPrice, f.MaxPrice = f.MaxPrice, f.MinPrice
	}
	return s.repo.List(ctx, f)
}

func (s *service) Get(ctx context.Context, id string) (*Medicine, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) Related(ctx context.Context, m *Medicine, limit int) ([]Medicine, error) {
	if m.CategoryID == "" {
		return nil, nil
	}
	list, err := s.repo.ByCategory(ctx, m.CategoryID)
	if err != nil {
		return nil, err
	}
	out := make([]Medicine, 0, limit)
	for _, other := range list {
		if other.ID == m.ID {
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, other)
	}
	return out, nil
}

// featuredWindow bounds the list scanned for featured medicines when the
// backend ignores the isFeatured filter.
const featuredWindow = 100

func (s *service) Featured(ctx context.Context, limit int) ([]Medicine, error) {
	list, err := s.repo.List(ctx, Filter{ListParams: backend.ListParams{Limit: featuredWindow}, Featured: true})
	if err != nil {
		return nil, err
	}
	out := make([]Medicine, 0, limit)
	for _, m := range list.Data {
		if len(out) == limit {
			break
		}
		if m.IsFeatured {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, in Input) (*Medicine, error) {
	in = normalize(in)
	if err := validate(in); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, in)
}

func (s *service) Update(ctx context.Context, id string, in Input) (*Medicine, error) {
	in = normalize(in)
	if err := validate(in); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, in)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) DeleteMany(ctx context.Context, list []Medicine) error {
	var errs []error
	for _, m := range list {
		if err := s.repo.Delete(ctx, m.ID); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", m.Name, err))
		}
	}
	return errors.Join(errs...)
}

func normalize(in Input) Input {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	in.CategoryID = strings.TrimSpace(in.CategoryID)
	return in
}

func validate(in Input) error {
	v := ValidationError{}
	if in.Name == "" {
		v["name"] = "Name is required."
	}
	if in.Price <= 0 {
		v["price"] = "Price must be greater than zero."
	}
	if in.Stock < 0 {
		v["stock"] = "Stock cannot be negative."
	}
	if in.CategoryID == "" {
		v["categoryId"] = "Choose a category."
	}
	if len(v) > 0 {
		return v
	}
	return nil
}

// FilterFrom maps a decoded table query onto the list endpoint. Only the
// first sort key is sent; the backend sorts by one field.
func FilterFrom(q datatable.QueryState) Filter {
	f := Filter{ListParams: backend.ParamsFrom(q), CategoryID: q.Filter("categoryId")}
	if len(q.Sorting) > 0 {
		if field, ok := sortFields[q.Sorting[0].ColumnID]; ok {
			f.SortBy = field
			f.SortOrder = "asc"
			if q.Sorting[0].Desc {
				f.SortOrder = "desc"
			}
		}
	}
	return f
}

package blog

import (
	"context"
	"strings"

	"github.com/georgemunganga/pharmacy-storefront/internal/backend"
	"github.com/georgemunganga/pharmacy-storefront/internal/datatable"
)

// Service defines blog reads.
type Service interface {
	List(ctx context.Context, q datatable.QueryState) (*backend.List[Post], error)
	Get(ctx context.Context, id string) (*Post, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

// List returns one page of posts. A body without meta is paged here, and
// the search term is applied here too when the backend ignores it.
func (s *service) List(ctx context.Context, q datatable.QueryState) (*backend.List[Post], error) {
	list, err := s.repo.List(ctx, ListParams{ListParams: backend.ParamsFrom(q)})
	if err != nil {
		return nil, err
	}
	if list.Meta.Total > 0 || len(list.Data) == 0 {
		return list, nil
	}
	posts := list.Data
	if term := strings.ToLower(strings.TrimSpace(q.Search)); term != "" {
		kept := posts[:0:0]
		for _, p := range posts {
			if strings.Contains(strings.ToLower(p.Title), term) || strings.Contains(strings.ToLower(p.Content), term) {
				kept = append(kept, p)
			}
		}
		posts = kept
	}
	data, meta := datatable.Paginate(posts, q)
	return &backend.List[Post]{Data: data, Meta: meta}, nil
}

func (s *service) Get(ctx context.Context, id string) (*Post, error) {
	return s.repo.Get(ctx, id)
}

package backend

import "github.com/georgemunganga/pharmacy-storefront/internal/datatable"

// List is the backend's paginated list body.
type List[T any] struct {
	Data []T                      `json:"data"`
	Meta datatable.PaginationMeta `json:"meta"`
}

// Item is the backend's single-resource body.
type Item[T any] struct {
	Data T `json:"data"`
}

// ListParams are the paging and search parameters shared by list endpoints.
type ListParams struct {
	Page   int    `url:"page,omitempty"`
	Limit  int    `url:"limit,omitempty"`
	Search string `url:"search,omitempty"`
}

// ParamsFrom copies the paging and search part of a decoded table query.
func ParamsFrom(q datatable.QueryState) ListParams {
	return ListParams{Page: q.Page, Limit: q.Limit, Search: q.Search}
}

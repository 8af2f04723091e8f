package datatable

import (
	"net/url"
	"strconv"
)

const (
	DefaultPageSize        = 10
	DefaultMaxVisiblePages = 7
	minVisiblePages        = 3
)

// PaginationMeta is the server's description of the current page.
type PaginationMeta struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TotalPages is ceil(Total/Limit), never less than one.
func (m PaginationMeta) TotalPages() int {
	limit := m.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	total := max(m.Total, 0)
	return max((total+limit-1)/limit, 1)
}

// Normalize repairs malformed metadata: a missing limit falls back to the
// default, a negative total becomes zero and the page is clamped into range.
func (m PaginationMeta) Normalize() PaginationMeta {
	if m.Limit <= 0 {
		m.Limit = DefaultPageSize
	}
	if m.Total < 0 {
		m.Total = 0
	}
	m.Page = min(max(m.Page, 1), m.TotalPages())
	return m
}

// Offset is the zero-based index of the first row on the page.
func (m PaginationMeta) Offset() int {
	m = m.Normalize()
	return (m.Page - 1) * m.Limit
}

// PageMarker is one entry of the page navigation: a page number or a gap.
type PageMarker struct {
	Page     int
	Ellipsis bool
}

// VisiblePageWindow lists the page links to show. With more pages than fit,
// the first and last page are always shown and exactly maxVisible-2 middle
// pages are centred on current, with a gap marker where pages are skipped.
func VisiblePageWindow(current, totalPages, maxVisible int) []PageMarker {
	if maxVisible <= 0 {
		maxVisible = DefaultMaxVisiblePages
	}
	maxVisible = max(maxVisible, minVisiblePages)
	totalPages = max(totalPages, 1)
	current = min(max(current, 1), totalPages)

	if totalPages <= maxVisible {
		out := make([]PageMarker, 0, totalPages)
		for p := 1; p <= totalPages; p++ {
			out = append(out, PageMarker{Page: p})
		}
		return out
	}

	middle := maxVisible - 2
	start := max(2, current-middle/2)
	end := start + middle - 1
	if end >= totalPages {
		end = totalPages - 1
		start = end - middle + 1
	}

	out := make([]PageMarker, 0, maxVisible+2)
	out = append(out, PageMarker{Page: 1})
	if start > 2 {
		out = append(out, PageMarker{Ellipsis: true})
	}
	for p := start; p <= end; p++ {
		out = append(out, PageMarker{Page: p})
	}
	if end < totalPages-1 {
		out = append(out, PageMarker{Ellipsis: true})
	}
	return append(out, PageMarker{Page: totalPages})
}

// PageTarget receives page changes from a Pager. *Table satisfies it.
type PageTarget interface {
	SetPageIndex(index int)
	SetPageSize(size int)
}

// Pager connects the server's pagination metadata, the table's local page
// state and the request URL. Changing page writes the page parameter into
// the query, keeps every other parameter, and hands the new location to
// Navigate.
type Pager struct {
	target PageTarget
	meta   PaginationMeta
	path   string
	query  url.Values

	// MaxVisible bounds the page links shown; DefaultMaxVisiblePages if zero.
	MaxVisible int
	// Navigate is called with the new location after a page change.
	Navigate func(location string)
}

// NewPager builds a pager for the page described by meta at location u.
// target may be nil when no table is attached.
func NewPager(target PageTarget, meta PaginationMeta, u *url.URL) *Pager {
	p := &Pager{target: target, meta: meta.Normalize(), query: url.Values{}}
	if u != nil {
		p.path = u.Path
		p.query = u.Query()
	}
	return p
}

func (p *Pager) Current() int    { return p.meta.Page }
func (p *Pager) TotalPages() int { return p.meta.TotalPages() }
func (p *Pager) Meta() PaginationMeta {
	return p.meta
}

func (p *Pager) Window() []PageMarker {
	return VisiblePageWindow(p.meta.Page, p.meta.TotalPages(), p.MaxVisible)
}

func (p *Pager) CanPrevious() bool { return p.meta.Page > 1 }
func (p *Pager) CanNext() bool     { return p.meta.Page < p.meta.TotalPages() }

// GoToPage moves to page n, clamped into range. It reports whether anything
// changed; asking for the current page does nothing.
func (p *Pager) GoToPage(n int) bool {
	n = min(max(n, 1), p.meta.TotalPages())
	if n == p.meta.Page {
		return false
	}
	p.meta.Page = n
	if p.target != nil {
		p.target.SetPageIndex(n - 1)
	}
	p.query = SetParams(p.query, map[string]string{ParamPage: strconv.Itoa(n)})
	p.navigate()
	return true
}

func (p *Pager) PreviousPage() bool {
	if !p.CanPrevious() {
		return false
	}
	return p.GoToPage(p.meta.Page - 1)
}

func (p *Pager) NextPage() bool {
	if !p.CanNext() {
		return false
	}
	return p.GoToPage(p.meta.Page + 1)
}

// SetLimit changes the page size and returns to the first page.
func (p *Pager) SetLimit(n int) bool {
	if n <= 0 || n == p.meta.Limit {
		return false
	}
	p.meta.Limit = n
	p.meta.Page = 1
	if p.target != nil {
		p.target.SetPageSize(n)
		p.target.SetPageIndex(0)
	}
	p.query = SetParams(p.query, map[string]string{
		ParamLimit: strconv.Itoa(n),
		ParamPage:  "1",
	})
	p.navigate()
	return true
}

// Href links to page n with every other parameter preserved.
func (p *Pager) Href(n int) string {
	return p.HrefWith(map[string]string{ParamPage: strconv.Itoa(n)})
}

// HrefWith links to the current location with params applied. Empty values
// remove their parameter.
func (p *Pager) HrefWith(params map[string]string) string {
	return p.hrefFor(SetParams(p.query, params))
}

// HrefValues links to the current location after edit has changed a copy
// of the query.
func (p *Pager) HrefValues(edit func(url.Values)) string {
	q := cloneValues(p.query)
	edit(q)
	return p.hrefFor(q)
}

// Location is the current path and query.
func (p *Pager) Location() string { return p.hrefFor(p.query) }

func (p *Pager) Path() string { return p.path }

// Query returns a copy of the current query.
func (p *Pager) Query() url.Values { return cloneValues(p.query) }

func (p *Pager) hrefFor(q url.Values) string {
	if enc := q.Encode(); enc != "" {
		return p.path + "?" + enc
	}
	return p.path
}

func (p *Pager) navigate() {
	if p.Navigate != nil {
		p.Navigate(p.Location())
	}
}

// Paginate cuts the page s asks for out of a list the server returned
// whole.
func Paginate[T any](items []T, s QueryState) ([]T, PaginationMeta) {
	meta := PaginationMeta{Page: s.Page, Limit: s.Limit, Total: len(items)}.Normalize()
	start := min(meta.Offset(), len(items))
	end := min(start+meta.Limit, len(items))
	return items[start:end], meta
}

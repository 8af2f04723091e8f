package datatable

import (
	"maps"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Query parameter names shared by every table page.
const (
	ParamPage     = "page"
	ParamLimit    = "limit"
	ParamSearch   = "search"
	ParamSort     = "sort"
	ParamHide     = "hide"
	ParamSelected = "selected"
)

// QueryState is everything a table page reads from its URL.
type QueryState struct {
	Page     int
	Limit    int
	Search   string
	Filters  map[string][]string
	Sorting  Sorting
	Hidden   []string
	Selected []string
}

// QueryCodec reads and writes QueryState. FilterKeys names the query
// parameters that carry column filters; each is also the column id.
type QueryCodec struct {
	DefaultLimit int
	MaxLimit     int
	FilterKeys   []string
}

func (c QueryCodec) defaultLimit() int {
	if c.DefaultLimit > 0 {
		return c.DefaultLimit
	}
	return DefaultPageSize
}

// Decode parses v. Missing, non-numeric or non-positive page and limit
// values fall back to 1 and the default limit.
func (c QueryCodec) Decode(v url.Values) QueryState {
	s := QueryState{
		Page:   parsePositive(v.Get(ParamPage), 1),
		Limit:  parsePositive(v.Get(ParamLimit), c.defaultLimit()),
		Search: strings.TrimSpace(v.Get(ParamSearch)),
	}
	if c.MaxLimit > 0 && s.Limit > c.MaxLimit {
		s.Limit = c.MaxLimit
	}
	for _, key := range c.FilterKeys {
		if values := splitValues(v[key]); len(values) > 0 {
			if s.Filters == nil {
				s.Filters = make(map[string][]string)
			}
			s.Filters[key] = values
		}
	}
	s.Sorting = ParseSorting(v.Get(ParamSort))
	s.Hidden = splitValues(v[ParamHide])
	s.Selected = splitValues(v[ParamSelected])
	return s
}

// Encode writes s over base. Parameters the codec does not own are kept;
// empty values are removed rather than written blank.
func (c QueryCodec) Encode(base url.Values, s QueryState) url.Values {
	out := cloneValues(base)
	set := func(key, value string) {
		if value == "" {
			out.Del(key)
			return
		}
		out.Set(key, value)
	}

	page := ""
	if s.Page > 0 {
		page = strconv.Itoa(s.Page)
	}
	set(ParamPage, page)
	limit := ""
	if s.Limit > 0 && s.Limit != c.defaultLimit() {
		limit = strconv.Itoa(s.Limit)
	}
	set(ParamLimit, limit)
	set(ParamSearch, strings.TrimSpace(s.Search))
	for _, key := range c.FilterKeys {
		out.Del(key)
		for _, value := range s.Filters[key] {
			if value != "" {
				out.Add(key, value)
			}
		}
	}
	set(ParamSort, s.Sorting.String())
	set(ParamHide, strings.Join(s.Hidden, ","))
	out.Del(ParamSelected)
	for _, key := range s.Selected {
		out.Add(ParamSelected, key)
	}
	return out
}

// Filter returns the first value of a column filter, or "".
func (s QueryState) Filter(key string) string {
	if values := s.Filters[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}

func (s QueryState) WithPage(page int) QueryState {
	s.Page = page
	return s
}

// WithSearch replaces the search term and returns to the first page.
func (s QueryState) WithSearch(term string) QueryState {
	s.Search = strings.TrimSpace(term)
	s.Page = 1
	return s
}

// WithFilter replaces one column filter and returns to the first page.
func (s QueryState) WithFilter(key string, values []string) QueryState {
	filters := maps.Clone(s.Filters)
	if filters == nil {
		filters = make(map[string][]string)
	}
	if len(values) == 0 {
		delete(filters, key)
	} else {
		filters[key] = slices.Clone(values)
	}
	s.Filters = filters
	s.Page = 1
	return s
}

func (s QueryState) WithLimit(limit int) QueryState {
	s.Limit = limit
	s.Page = 1
	return s
}

func (s QueryState) WithoutSelection() QueryState {
	s.Selected = nil
	return s
}

// String encodes sorting as "column.asc,other.desc".
func (s Sorting) String() string {
	parts := make([]string, 0, len(s))
	for _, key := range s {
		dir := "asc"
		if key.Desc {
			dir = "desc"
		}
		parts = append(parts, key.ColumnID+"."+dir)
	}
	return strings.Join(parts, ",")
}

// ParseSorting reads the format written by Sorting.String. Entries without
// a valid direction are skipped. Column ids may themselves contain dots.
func ParseSorting(raw string) Sorting {
	var out Sorting
	for _, part := range strings.Split(raw, ",") {
		i := strings.LastIndex(part, ".")
		if i <= 0 {
			continue
		}
		id, dir := strings.TrimSpace(part[:i]), part[i+1:]
		switch dir {
		case "asc":
			out = append(out, SortKey{ColumnID: id})
		case "desc":
			out = append(out, SortKey{ColumnID: id, Desc: true})
		}
	}
	return out
}

// SetParams returns a copy of base with params applied; an empty value
// deletes its key.
func SetParams(base url.Values, params map[string]string) url.Values {
	out := cloneValues(base)
	for key, value := range params {
		if value == "" {
			out.Del(key)
			continue
		}
		out.Set(key, value)
	}
	return out
}

func parsePositive(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func splitValues(raw []string) []string {
	var out []string
	for _, item := range raw {
		for _, v := range strings.Split(item, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for key, values := range v {
		out[key] = slices.Clone(values)
	}
	return out
}

// Restore applies the URL state in s to t: search term, sorting, hidden
// columns, facet filters and selection. Call it after SetProps so selected
// keys are checked against the loaded page.
func (t *Table[T]) Restore(s QueryState) {
	t.toolbar.Restore(s.Search)
	t.SetSorting(s.Sorting)
	t.HideColumns(s.Hidden)
	for _, f := range t.toolbar.Facets() {
		if values := s.Filters[f.ID]; len(values) > 0 {
			_ = t.SetColumnFilter(f.ID, values)
		}
	}
	t.SelectRows(s.Selected...)
}

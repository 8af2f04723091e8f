package datatable

import (
	"context"
	"fmt"
	"slices"
)

// FilterOption is one choice of a faceted filter.
type FilterOption struct {
	Label string
	Value string
}

// FilterableColumn offers a faceted filter over one column.
type FilterableColumn struct {
	ID      string
	Title   string
	Options []FilterOption
	// Multi allows more than one value at once.
	Multi bool
}

// BulkAction runs over the selected rows.
type BulkAction[T any] struct {
	Label   string
	Variant string
	Confirm string
	Handler func(ctx context.Context, rows []T) error
}

type CreateButton struct {
	Label string
	Href  string
}

// ToolbarOptions configures the controls above a table. A control appears
// only when it is configured: no OnSearch and no ServerSearch means no
// search box, no bulk actions means no actions menu. ServerSearch shows the
// box without a callback; the form submits the search parameter and the
// handler reads it back through QueryCodec.
type ToolbarOptions[T any] struct {
	Hidden            bool
	OnSearch          func(term string)
	ServerSearch      bool
	SearchPlaceholder string
	FilterableColumns []FilterableColumn
	OnFilterChange    func(columnID string, values []string)
	BulkActions       []BulkAction[T]
	ClearPolicy       ClearPolicy
	ShowViewOptions   bool
	CreateButton      *CreateButton
}

// Toolbar turns search, facet, reset and bulk intents into table state
// changes and callbacks.
type Toolbar[T any] struct {
	table *Table[T]
	opts  ToolbarOptions[T]
	term  string
}

func newToolbar[T any](t *Table[T], opts ToolbarOptions[T]) (*Toolbar[T], error) {
	for _, fc := range opts.FilterableColumns {
		if _, ok := t.column(fc.ID); !ok {
			return nil, fmt.Errorf("filterable %w: %q", ErrUnknownColumn, fc.ID)
		}
	}
	seen := make(map[string]bool, len(opts.BulkActions))
	for _, a := range opts.BulkActions {
		if a.Handler == nil || a.Label == "" || seen[a.Label] {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAction, a.Label)
		}
		seen[a.Label] = true
	}
	if opts.SearchPlaceholder == "" {
		opts.SearchPlaceholder = "Search..."
	}
	return &Toolbar[T]{table: t, opts: opts}, nil
}

func (tb *Toolbar[T]) Visible() bool       { return !tb.opts.Hidden }
func (tb *Toolbar[T]) SearchEnabled() bool { return tb.opts.OnSearch != nil || tb.opts.ServerSearch }
func (tb *Toolbar[T]) SearchTerm() string  { return tb.term }
func (tb *Toolbar[T]) Placeholder() string { return tb.opts.SearchPlaceholder }
func (tb *Toolbar[T]) ViewOptions() bool   { return tb.opts.ShowViewOptions }

func (tb *Toolbar[T]) CreateButton() *CreateButton  { return tb.opts.CreateButton }
func (tb *Toolbar[T]) Facets() []FilterableColumn   { return tb.opts.FilterableColumns }
func (tb *Toolbar[T]) BulkActions() []BulkAction[T] { return tb.opts.BulkActions }

// Restore seeds the search box from the URL without firing OnSearch.
func (tb *Toolbar[T]) Restore(term string) { tb.term = term }

// SetSearchTerm records typing in the search box. Typing never searches;
// only clearing the box does, so the unfiltered list comes back.
func (tb *Toolbar[T]) SetSearchTerm(term string) {
	prev := tb.term
	tb.term = term
	if term == "" && prev != "" && tb.opts.OnSearch != nil {
		tb.opts.OnSearch("")
	}
}

// KeyDown submits the search term on Enter.
func (tb *Toolbar[T]) KeyDown(key string) {
	if key == "Enter" && tb.opts.OnSearch != nil {
		tb.opts.OnSearch(tb.term)
	}
}

// ChangeFacet sets the values of a faceted filter. A single-select facet
// keeps only the last value.
func (tb *Toolbar[T]) ChangeFacet(id string, values []string) error {
	i := slices.IndexFunc(tb.opts.FilterableColumns, func(fc FilterableColumn) bool { return fc.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, id)
	}
	if !tb.opts.FilterableColumns[i].Multi && len(values) > 1 {
		values = values[len(values)-1:]
	}
	if err := tb.table.SetColumnFilter(id, values); err != nil {
		return err
	}
	if tb.opts.OnFilterChange != nil {
		tb.opts.OnFilterChange(id, slices.Clone(values))
	}
	return nil
}

// BulkEnabled reports whether the bulk menu can be used.
func (tb *Toolbar[T]) BulkEnabled() bool {
	return len(tb.opts.BulkActions) > 0 && len(tb.table.selection) > 0
}

// InvokeBulk runs the named action over the selected rows and returns its
// error. With ClearAlways the selection is cleared even when the handler
// fails or panics.
func (tb *Toolbar[T]) InvokeBulk(ctx context.Context, label string) error {
	i := slices.IndexFunc(tb.opts.BulkActions, func(a BulkAction[T]) bool { return a.Label == label })
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownAction, label)
	}
	rows := tb.table.SelectedRows()
	if len(rows) == 0 {
		return ErrEmptySelection
	}

	succeeded := false
	defer func() {
		if succeeded || tb.opts.ClearPolicy == ClearAlways {
			tb.table.ResetSelection()
		}
	}()
	if err := tb.opts.BulkActions[i].Handler(ctx, rows); err != nil {
		return err
	}
	succeeded = true
	return nil
}

// ResetVisible reports whether there is anything for Reset to clear.
func (tb *Toolbar[T]) ResetVisible() bool {
	return len(tb.table.filters) > 0 || len(tb.table.selection) > 0 || tb.term != ""
}

// Reset clears column filters, selection and the search term, then asks
// for the unfiltered list.
func (tb *Toolbar[T]) Reset() {
	tb.table.ResetFilters()
	tb.table.ResetSelection()
	tb.term = ""
	if tb.opts.OnSearch != nil {
		tb.opts.OnSearch("")
	}
}

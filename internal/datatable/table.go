package datatable

import (
	"fmt"
	"slices"
	"strconv"
)

const DefaultSkeletonRows = 5

// Options configures a Table. Every callback is optional.
type Options[T any] struct {
	Columns []Column[T]
	// RowKey identifies a row across requests. Without it rows are keyed by
	// their position on the page.
	RowKey       func(T) string
	SkeletonRows int

	OnPaginationChange func(PaginationState)
	OnSortingChange    func(Sorting)
	OnSelectionChange  func(keys []string)
	OnRowClick         func(T)
	// RowHref makes each row link to a detail page.
	RowHref func(T) string

	Toolbar ToolbarOptions[T]
}

// Row is one page row after local filters and sorting.
type Row[T any] struct {
	Key      string
	Index    int
	Original T
	Selected bool
}

// Cell is the text content of one body cell.
type Cell struct {
	ColumnID string
	Text     string
	Skeleton bool
	Span     int
}

// BodyRow is one rendered body row.
type BodyRow struct {
	Key         string
	Cells       []Cell
	Selected    bool
	Placeholder bool
}

// Table holds the display state of one page of server data. The server owns
// the rows and the page position; the table owns sorting, column filters,
// column visibility and selection, all of which apply to the current page
// only.
type Table[T any] struct {
	opts    Options[T]
	columns []column[T]
	toolbar *Toolbar[T]

	data    []T
	meta    PaginationMeta
	loading bool
	failed  bool

	pagination PaginationState
	sorting    Sorting
	filters    []ColumnFilter
	hidden     map[string]bool
	selection  []string
}

func New[T any](opts Options[T]) (*Table[T], error) {
	cols, err := compileColumns(opts.Columns)
	if err != nil {
		return nil, err
	}
	if opts.SkeletonRows <= 0 {
		opts.SkeletonRows = DefaultSkeletonRows
	}
	t := &Table[T]{
		opts:    opts,
		columns: cols,
		hidden:  make(map[string]bool),
		meta:    PaginationMeta{}.Normalize(),
	}
	t.pagination = PaginationState{PageIndex: t.meta.Page - 1, PageSize: t.meta.Limit}
	if t.toolbar, err = newToolbar(t, opts.Toolbar); err != nil {
		return nil, err
	}
	return t, nil
}

// SetProps replaces the server-provided inputs. The local page position is
// reset to match meta, and selected keys no longer present are dropped.
func (t *Table[T]) SetProps(data []T, meta PaginationMeta, loading, failed bool) {
	t.data = data
	t.meta = meta.Normalize()
	t.loading = loading
	t.failed = failed
	t.pagination = PaginationState{PageIndex: t.meta.Page - 1, PageSize: t.meta.Limit}

	present := make(map[string]bool, len(data))
	for i, row := range data {
		present[t.rowKey(i, row)] = true
	}
	kept := t.selection[:0]
	for _, key := range t.selection {
		if present[key] {
			kept = append(kept, key)
		}
	}
	t.selection = kept
}

func (t *Table[T]) Toolbar() *Toolbar[T]        { return t.toolbar }
func (t *Table[T]) Meta() PaginationMeta        { return t.meta }
func (t *Table[T]) PageCount() int              { return t.meta.TotalPages() }
func (t *Table[T]) Data() []T                   { return t.data }
func (t *Table[T]) SkeletonRows() int           { return t.opts.SkeletonRows }
func (t *Table[T]) ColumnCount() int            { return len(t.columns) }
func (t *Table[T]) Pagination() PaginationState { return t.pagination }

// SetPagination applies a state value or updater and reports the result to
// OnPaginationChange. It performs no I/O.
func (t *Table[T]) SetPagination(update PaginationUpdate) {
	if update == nil {
		return
	}
	next := update.next(t.pagination)
	next.PageIndex = max(next.PageIndex, 0)
	if next.PageSize <= 0 {
		next.PageSize = t.meta.Limit
	}
	t.pagination = next
	if t.opts.OnPaginationChange != nil {
		t.opts.OnPaginationChange(next)
	}
}

func (t *Table[T]) SetPageIndex(index int) {
	t.SetPagination(PaginationFunc(func(prev PaginationState) PaginationState {
		prev.PageIndex = index
		return prev
	}))
}

func (t *Table[T]) SetPageSize(size int) {
	t.SetPagination(PaginationFunc(func(prev PaginationState) PaginationState {
		prev.PageSize = size
		return prev
	}))
}

func (t *Table[T]) rowKey(i int, row T) string {
	if t.opts.RowKey != nil {
		return t.opts.RowKey(row)
	}
	return strconv.Itoa(i)
}

func (t *Table[T]) column(id string) (column[T], bool) {
	for _, c := range t.columns {
		if c.ID == id {
			return c, true
		}
	}
	return column[T]{}, false
}

// Selection

func (t *Table[T]) IsSelected(key string) bool {
	return slices.Contains(t.selection, key)
}

// SetRowSelected selects or deselects the row with key. Keys not on the
// current page are ignored.
func (t *Table[T]) SetRowSelected(key string, selected bool) {
	if t.setSelected(key, selected) {
		t.selectionChanged()
	}
}

// SelectRows adds keys to the selection in order.
func (t *Table[T]) SelectRows(keys ...string) {
	changed := false
	for _, key := range keys {
		if t.setSelected(key, true) {
			changed = true
		}
	}
	if changed {
		t.selectionChanged()
	}
}

func (t *Table[T]) setSelected(key string, selected bool) bool {
	i := slices.Index(t.selection, key)
	switch {
	case selected && i < 0:
		if !t.hasKey(key) {
			return false
		}
		t.selection = append(t.selection, key)
		return true
	case !selected && i >= 0:
		t.selection = slices.Delete(t.selection, i, i+1)
		return true
	}
	return false
}

func (t *Table[T]) hasKey(key string) bool {
	for i, row := range t.data {
		if t.rowKey(i, row) == key {
			return true
		}
	}
	return false
}

// SelectedKeys returns the selected row keys in selection order.
func (t *Table[T]) SelectedKeys() []string { return slices.Clone(t.selection) }

// SelectedRows materializes the selected rows in selection order.
func (t *Table[T]) SelectedRows() []T {
	byKey := make(map[string]T, len(t.data))
	for i, row := range t.data {
		byKey[t.rowKey(i, row)] = row
	}
	out := make([]T, 0, len(t.selection))
	for _, key := range t.selection {
		if row, ok := byKey[key]; ok {
			out = append(out, row)
		}
	}
	return out
}

func (t *Table[T]) ResetSelection() {
	if len(t.selection) == 0 {
		return
	}
	t.selection = nil
	t.selectionChanged()
}

func (t *Table[T]) selectionChanged() {
	if t.opts.OnSelectionChange != nil {
		t.opts.OnSelectionChange(t.SelectedKeys())
	}
}

// Column filters

// SetColumnFilter keeps only rows whose column value is one of values. No
// values removes the filter.
func (t *Table[T]) SetColumnFilter(id string, values []string) error {
	if _, ok := t.column(id); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, id)
	}
	i := slices.IndexFunc(t.filters, func(f ColumnFilter) bool { return f.ColumnID == id })
	switch {
	case len(values) == 0 && i >= 0:
		t.filters = slices.Delete(t.filters, i, i+1)
	case len(values) == 0:
	case i >= 0:
		t.filters[i].Values = slices.Clone(values)
	default:
		t.filters = append(t.filters, ColumnFilter{ColumnID: id, Values: slices.Clone(values)})
	}
	return nil
}

func (t *Table[T]) ColumnFilters() []ColumnFilter {
	out := make([]ColumnFilter, len(t.filters))
	for i, f := range t.filters {
		out[i] = ColumnFilter{ColumnID: f.ColumnID, Values: slices.Clone(f.Values)}
	}
	return out
}

// FilterValues returns the active filter values of one column.
func (t *Table[T]) FilterValues(id string) []string {
	for _, f := range t.filters {
		if f.ColumnID == id {
			return slices.Clone(f.Values)
		}
	}
	return nil
}

func (t *Table[T]) ResetFilters() { t.filters = nil }

// Sorting

func (t *Table[T]) Sorting() Sorting { return slices.Clone(t.sorting) }

// SetSorting replaces the sort order. Keys naming unknown or unsortable
// columns are dropped, so URL input can be passed straight through.
func (t *Table[T]) SetSorting(s Sorting) {
	next := make(Sorting, 0, len(s))
	for _, key := range s {
		if c, ok := t.column(key.ColumnID); ok && c.Sortable && c.value != nil {
			next = append(next, key)
		}
	}
	t.sorting = next
	if t.opts.OnSortingChange != nil {
		t.opts.OnSortingChange(t.Sorting())
	}
}

// NextSorting is the order ToggleSorting(id) would produce: ascending,
// then descending, then unsorted.
func (t *Table[T]) NextSorting(id string) Sorting {
	for _, key := range t.sorting {
		if key.ColumnID != id {
			continue
		}
		if key.Desc {
			return Sorting{}
		}
		return Sorting{{ColumnID: id, Desc: true}}
	}
	return Sorting{{ColumnID: id}}
}

func (t *Table[T]) ToggleSorting(id string) error {
	c, ok := t.column(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, id)
	}
	if !c.Sortable {
		return nil
	}
	t.SetSorting(t.NextSorting(id))
	return nil
}

// SortDirection reports how a column is currently sorted.
func (t *Table[T]) SortDirection(id string) (sorted, desc bool) {
	for _, key := range t.sorting {
		if key.ColumnID == id {
			return true, key.Desc
		}
	}
	return false, false
}

// Column visibility

// SetColumnVisibility hides or shows a hideable column. Columns that are
// not hideable stay visible.
func (t *Table[T]) SetColumnVisibility(id string, visible bool) error {
	c, ok := t.column(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, id)
	}
	if !c.Hideable {
		return nil
	}
	if visible {
		delete(t.hidden, id)
	} else {
		t.hidden[id] = true
	}
	return nil
}

// HideColumns hides every known hideable column in ids and ignores the rest.
func (t *Table[T]) HideColumns(ids []string) {
	for _, id := range ids {
		_ = t.SetColumnVisibility(id, false)
	}
}

func (t *Table[T]) IsColumnVisible(id string) bool { return !t.hidden[id] }

// HiddenColumns lists hidden column ids in column order.
func (t *Table[T]) HiddenColumns() []string {
	var out []string
	for _, c := range t.columns {
		if t.hidden[c.ID] {
			out = append(out, c.ID)
		}
	}
	return out
}

func (t *Table[T]) visibleColumns() []column[T] {
	out := make([]column[T], 0, len(t.columns))
	for _, c := range t.columns {
		if !t.hidden[c.ID] {
			out = append(out, c)
		}
	}
	return out
}

// Rows

// Mode resolves which body to render.
func (t *Table[T]) Mode() Mode {
	switch {
	case t.failed:
		return ModeError
	case t.loading:
		return ModeLoading
	case len(t.Rows()) == 0:
		return ModeEmpty
	}
	return ModeData
}

// Rows returns the current page after local filters and sorting.
func (t *Table[T]) Rows() []Row[T] {
	rows := make([]Row[T], 0, len(t.data))
	for i, item := range t.data {
		if !t.matches(item) {
			continue
		}
		key := t.rowKey(i, item)
		rows = append(rows, Row[T]{Key: key, Index: i, Original: item, Selected: t.IsSelected(key)})
	}
	if len(t.sorting) > 0 {
		slices.SortStableFunc(rows, func(a, b Row[T]) int {
			for _, key := range t.sorting {
				c, ok := t.column(key.ColumnID)
				if !ok || c.value == nil {
					continue
				}
				n := compareValues(c.value(a.Original), c.value(b.Original))
				if key.Desc {
					n = -n
				}
				if n != 0 {
					return n
				}
			}
			return 0
		})
	}
	return rows
}

func (t *Table[T]) matches(item T) bool {
	for _, f := range t.filters {
		c, ok := t.column(f.ColumnID)
		if !ok || c.value == nil || len(f.Values) == 0 {
			continue
		}
		if !slices.Contains(f.Values, c.text(item)) {
			return false
		}
	}
	return true
}

// ClickRow reports a click on the row with key to OnRowClick.
func (t *Table[T]) ClickRow(key string) bool {
	if t.opts.OnRowClick == nil {
		return false
	}
	for _, row := range t.Rows() {
		if row.Key == key {
			t.opts.OnRowClick(row.Original)
			return true
		}
	}
	return false
}

// Body lays out the body rows for the current mode. The error mode has no
// body; the whole table is replaced by an error panel.
func (t *Table[T]) Body() []BodyRow {
	switch t.Mode() {
	case ModeError:
		return nil
	case ModeLoading:
		out := make([]BodyRow, t.opts.SkeletonRows)
		for i := range out {
			cells := make([]Cell, len(t.columns))
			for j, c := range t.columns {
				cells[j] = Cell{ColumnID: c.ID, Skeleton: true, Span: 1}
			}
			out[i] = BodyRow{Key: "skeleton-" + strconv.Itoa(i), Cells: cells, Placeholder: true}
		}
		return out
	case ModeEmpty:
		return []BodyRow{{
			Key:         "empty",
			Placeholder: true,
			Cells:       []Cell{{Text: "No results.", Span: len(t.columns)}},
		}}
	}
	visible := t.visibleColumns()
	rows := t.Rows()
	out := make([]BodyRow, len(rows))
	for i, row := range rows {
		cells := make([]Cell, len(visible))
		for j, c := range visible {
			cells[j] = Cell{ColumnID: c.ID, Text: c.text(row.Original), Span: 1}
		}
		out[i] = BodyRow{Key: row.Key, Cells: cells, Selected: row.Selected}
	}
	return out
}

package datatable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"maragu.dev/gomponents"
)

func TestNewValidatesColumns(t *testing.T) {
	tests := []struct {
		name    string
		columns []Column[testMedicine]
		want    error
	}{
		{"no columns", nil, ErrNoColumns},
		{"unknown key", []Column[testMedicine]{{AccessorKey: "nmae"}}, ErrInvalidAccessor},
		{"unknown nested key", []Column[testMedicine]{{AccessorKey: "category.title"}}, ErrInvalidAccessor},
		{"empty segment", []Column[testMedicine]{{AccessorKey: "category..name"}}, ErrInvalidAccessor},
		{"scalar traversal", []Column[testMedicine]{{AccessorKey: "price.amount"}}, ErrInvalidAccessor},
		{"no accessor", []Column[testMedicine]{{ID: "name"}}, ErrMissingAccessor},
		{"duplicate", []Column[testMedicine]{{AccessorKey: "name"}, {ID: "name", AccessorKey: "id"}}, ErrDuplicateColumn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(Options[testMedicine]{Columns: tt.columns})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewRejectsUnknownFilterableColumn(t *testing.T) {
	_, err := New(Options[testMedicine]{
		Columns: testColumns(),
		Toolbar: ToolbarOptions[testMedicine]{FilterableColumns: []FilterableColumn{{ID: "status"}}},
	})
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestKeyPathResolvesTagsFieldsAndMaps(t *testing.T) {
	tbl := newTestTable(t, Options[testMedicine]{Columns: []Column[testMedicine]{
		{AccessorKey: "category.name"},
		{AccessorKey: "Extra.brand"},
		{ID: "display", Cell: func(m testMedicine) gomponents.Node { return gomponents.Text(m.Name) }},
	}})
	tbl.SetProps([]testMedicine{
		{ID: "a", Category: &testCategory{Name: "Pain"}, Extra: map[string]any{"brand": "Acme"}},
		{ID: "b"},
	}, PaginationMeta{Page: 1, Limit: 10, Total: 2}, false, false)

	body := tbl.Body()
	require.Len(t, body, 2)
	assert.Equal(t, "Pain", body[0].Cells[0].Text)
	assert.Equal(t, "Acme", body[0].Cells[1].Text)
	assert.Equal(t, "", body[0].Cells[2].Text)
	assert.Equal(t, "", body[1].Cells[0].Text, "nil pointer renders empty")
	assert.Equal(t, "", body[1].Cells[1].Text, "nil map renders empty")
}

func TestSetPropsReconcilesPagination(t *testing.T) {
	tbl := newTestTable(t, Options[testMedicine]{})
	tbl.SetProps(testRows(), PaginationMeta{Page: 3, Limit: 10, Total: 95}, false, false)

	assert.Equal(t, 10, tbl.PageCount())
	assert.Equal(t, PaginationState{PageIndex: 2, PageSize: 10}, tbl.Pagination())

	tbl.SetPageIndex(7)
	assert.Equal(t, 7, tbl.Pagination().PageIndex)

	tbl.SetProps(testRows(), PaginationMeta{Page: 4, Limit: 10, Total: 95}, false, false)
	assert.Equal(t, 3, tbl.Pagination().PageIndex)
}

func TestSetPropsNormalizesMeta(t *testing.T) {
	tbl := newTestTable(t, Options[testMedicine]{})
	tbl.SetProps(nil, PaginationMeta{Page: 9, Limit: 0, Total: -4}, false, false)

	assert.Equal(t, PaginationMeta{Page: 1, Limit: 10, Total: 0}, tbl.Meta())
	assert.Equal(t, 1, tbl.PageCount())
}

func TestSetPaginationAcceptsValueAndUpdater(t *testing.T) {
	var got []PaginationState
	tbl := newTestTable(t, Options[testMedicine]{
		OnPaginationChange: func(s PaginationState) { got = append(got, s) },
	})
	tbl.SetProps(testRows(), PaginationMeta{Page: 1, Limit: 10, Total: 30}, false, false)

	tbl.SetPagination(PaginationState{PageIndex: 2, PageSize: 10})
	tbl.SetPagination(PaginationFunc(func(prev PaginationState) PaginationState {
		prev.PageIndex++
		return prev
	}))

	assert.Equal(t, []PaginationState{{PageIndex: 2, PageSize: 10}, {PageIndex: 3, PageSize: 10}}, got)
}

func TestModePrecedence(t *testing.T) {
	tbl := newTestTable(t, Options[testMedicine]{})
	meta := PaginationMeta{Page: 1, Limit: 10, Total: 3}

	tbl.SetProps(testRows(), meta, true, true)
	assert.Equal(t, ModeError, tbl.Mode())
	assert.Nil(t, tbl.Body())

	tbl.SetProps(nil, meta, true, false)
	assert.Equal(t, ModeLoading, tbl.Mode())

	tbl.SetProps(nil, meta, false, false)
	assert.Equal(t, ModeEmpty, tbl.Mode())

	tbl.SetProps(testRows(), meta, false, false)
	assert.Equal(t, ModeData, tbl.Mode())
}

func TestLoadingBodyHasSkeletonGrid(t *testing.T) {
	tbl := newTestTable(t, Options[testMedicine]{})
	tbl.SetProps(nil, PaginationMeta{}, true, false)

	body := tbl.Body()
	require.Len(t, body, DefaultSkeletonRows)
	for _, row := range body {
		require.Len(t, row.Cells, 4)
		for _, c := range row.Cells {
			assert.True(t, c.Skeleton)
		}
	}
}

func TestEmptyBodySpansAllColumns(t *testing.T) {
	tbl := newTestTable(t, Options[testMedicine]{})
	tbl.SetProps([]testMedicine{}, PaginationMeta{Page: 1, Limit: 10}, false, false)

	body := tbl.Body()
	require.Len(t, body, 1)
	require.Len(t, body[0].Cells, 1)
	assert.Equal(t, "No results.", body[0].Cells[0].Text)
	assert.Equal(t, 4, body[0].Cells[0].Span)
}

func TestLocalSortingAppliesToCurrentPage(t *testing.T) {
	var sorted []Sorting
	tbl := newTestTable(t, Options[testMedicine]{
		OnSortingChange: func(s Sorting) { sorted = append(sorted, s) },
	})
	tbl.SetProps(testRows(), PaginationMeta{Page: 1, Limit: 10, Total: 3}, false, false)

	names := func() []string {
		var out []string
		for _, r := range tbl.Rows() {
			out = append(out, r.Original.Name)
		}
		return out
	}

	require.NoError(t, tbl.ToggleSorting("price"))
	assert.Equal(t, []string{"Aspirin", "Paracetamol", "Cough Syrup"}, names())

	require.NoError(t, tbl.ToggleSorting("price"))
	assert.Equal(t, []string{"Cough Syrup", "Paracetamol", "Aspirin"}, names())

	require.NoError(t, tbl.ToggleSorting("price"))
	assert.Equal(t, []string{"Paracetamol", "Aspirin", "Cough Syrup"}, names())
	assert.Len(t, sorted, 3)

	require.NoError(t, tbl.ToggleSorting("stock"), "unsortable columns are ignored")
	assert.Empty(t, tbl.Sorting())
	assert.ErrorIs(t, tbl.ToggleSorting("nope"), ErrUnknownColumn)
}

func TestSetSortingDropsUnknownColumns(t *testing.T) {
	tbl := newTestTable(t, Options[testMedicine]{})
	tbl.SetSorting(Sorting{{ColumnID: "bogus"}, {ColumnID: "name", Desc: true}, {ColumnID: "stock"}})
	assert.Equal(t, Sorting{{ColumnID: "name", Desc: true}}, tbl.Sorting())
}

func TestColumnFilterKeepsMatchingRows(t *testing.T) {
	tbl := newTestTable(t, Options[testMedicine]{})
	tbl.SetProps(testRows(), PaginationMeta{Page: 1, Limit: 10, Total: 3}, false, false)

	require.NoError(t, tbl.SetColumnFilter("category.name", []string{"Cold"}))
	rows := tbl.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "m3", rows[0].Key)

	require.NoError(t, tbl.SetColumnFilter("category.name", []string{"Allergy"}))
	assert.Equal(t, ModeEmpty, tbl.Mode())

	tbl.ResetFilters()
	assert.Len(t, tbl.Rows(), 3)
	assert.ErrorIs(t, tbl.SetColumnFilter("nope", []string{"x"}), ErrUnknownColumn)
}

func TestSelectionKeepsOrderAndPrunesStaleKeys(t *testing.T) {
	var changes [][]string
	tbl := newTestTable(t, Options[testMedicine]{
		OnSelectionChange: func(keys []string) { changes = append(changes, keys) },
	})
	tbl.SetProps(testRows(), PaginationMeta{Page: 1, Limit: 10, Total: 3}, false, false)

	tbl.SelectRows("m3", "m1", "missing")
	assert.Equal(t, []string{"m3", "m1"}, tbl.SelectedKeys())
	rows := tbl.SelectedRows()
	require.Len(t, rows, 2)
	assert.Equal(t, "Cough Syrup", rows[0].Name)
	assert.Equal(t, "Paracetamol", rows[1].Name)

	tbl.SetRowSelected("m3", false)
	assert.Equal(t, []string{"m1"}, tbl.SelectedKeys())

	tbl.SetProps(testRows()[1:], PaginationMeta{Page: 2, Limit: 10, Total: 3}, false, false)
	assert.Empty(t, tbl.SelectedKeys())
	assert.Len(t, changes, 2)
}

func TestRowKeyDefaultsToPosition(t *testing.T) {
	tbl, err := New(Options[testMedicine]{Columns: testColumns()})
	require.NoError(t, err)
	tbl.SetProps(testRows(), PaginationMeta{Page: 1, Limit: 10, Total: 3}, false, false)

	tbl.SelectRows("2")
	rows := tbl.SelectedRows()
	require.Len(t, rows, 1)
	assert.Equal(t, "m3", rows[0].ID)
}

func TestColumnVisibility(t *testing.T) {
	tbl := newTestTable(t, Options[testMedicine]{})
	tbl.SetProps(testRows(), PaginationMeta{Page: 1, Limit: 10, Total: 3}, false, false)

	require.NoError(t, tbl.SetColumnVisibility("price", false))
	require.NoError(t, tbl.SetColumnVisibility("name", false), "name is not hideable")
	assert.Equal(t, []string{"price"}, tbl.HiddenColumns())
	assert.Len(t, tbl.Body()[0].Cells, 3)

	tbl.HideColumns([]string{"category.name", "unknown"})
	assert.Equal(t, []string{"category.name", "price"}, tbl.HiddenColumns())
	assert.ErrorIs(t, tbl.SetColumnVisibility("unknown", false), ErrUnknownColumn)
}

func TestClickRow(t *testing.T) {
	var clicked []string
	tbl := newTestTable(t, Options[testMedicine]{
		OnRowClick: func(m testMedicine) { clicked = append(clicked, m.Name) },
	})
	tbl.SetProps(testRows(), PaginationMeta{Page: 1, Limit: 10, Total: 3}, false, false)

	assert.True(t, tbl.ClickRow("m2"))
	assert.False(t, tbl.ClickRow("zz"))
	assert.Equal(t, []string{"Aspirin"}, clicked)
}

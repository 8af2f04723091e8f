package datatable

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchFiresOnEnterAndOnClear(t *testing.T) {
	var searches []string
	tbl := newTestTable(t, Options[testMedicine]{Toolbar: ToolbarOptions[testMedicine]{
		OnSearch: func(term string) { searches = append(searches, term) },
	}})
	tb := tbl.Toolbar()

	for _, partial := range []string{"a", "as", "asp", "aspirin"} {
		tb.SetSearchTerm(partial)
	}
	assert.Empty(t, searches, "typing never searches")

	tb.KeyDown("a")
	tb.KeyDown("Enter")
	assert.Equal(t, []string{"aspirin"}, searches)

	tb.SetSearchTerm("")
	assert.Equal(t, []string{"aspirin", ""}, searches)

	tb.SetSearchTerm("")
	assert.Len(t, searches, 2, "already empty")
}

func TestServerSearchShowsBoxWithoutCallback(t *testing.T) {
	tbl := newTestTable(t, Options[testMedicine]{Toolbar: ToolbarOptions[testMedicine]{ServerSearch: true}})
	tb := tbl.Toolbar()
	assert.True(t, tb.SearchEnabled())

	tb.SetSearchTerm("aspirin")
	tb.KeyDown("Enter")
	tb.SetSearchTerm("")
	tb.Reset()
	assert.Empty(t, tb.SearchTerm())

	plain := newTestTable(t, Options[testMedicine]{})
	assert.False(t, plain.Toolbar().SearchEnabled())
}

func TestRestoreDoesNotSearch(t *testing.T) {
	called := false
	tbl := newTestTable(t, Options[testMedicine]{Toolbar: ToolbarOptions[testMedicine]{
		OnSearch: func(string) { called = true },
	}})

	tbl.Toolbar().Restore("zinc")
	assert.Equal(t, "zinc", tbl.Toolbar().SearchTerm())
	assert.False(t, called)
	assert.True(t, tbl.Toolbar().ResetVisible())
}

func TestChangeFacet(t *testing.T) {
	var changes [][]string
	tbl := newTestTable(t, Options[testMedicine]{Toolbar: ToolbarOptions[testMedicine]{
		FilterableColumns: []FilterableColumn{
			{ID: "category.name", Title: "Category"},
			{ID: "price", Title: "Price", Multi: true},
		},
		OnFilterChange: func(id string, values []string) { changes = append(changes, append([]string{id}, values...)) },
	}})
	tbl.SetProps(testRows(), PaginationMeta{Page: 1, Limit: 10, Total: 3}, false, false)
	tb := tbl.Toolbar()

	require.NoError(t, tb.ChangeFacet("category.name", []string{"Pain", "Cold"}))
	assert.Equal(t, []string{"Cold"}, tbl.FilterValues("category.name"))

	require.NoError(t, tb.ChangeFacet("price", []string{"3", "7.25"}))
	assert.Equal(t, []string{"3", "7.25"}, tbl.FilterValues("price"))
	assert.Len(t, tbl.Rows(), 1)

	assert.ErrorIs(t, tb.ChangeFacet("stock", []string{"1"}), ErrUnknownColumn)
	assert.Equal(t, [][]string{{"category.name", "Cold"}, {"price", "3", "7.25"}}, changes)
}

func newBulkTable(t *testing.T, policy ClearPolicy, handler func(context.Context, []testMedicine) error) *Table[testMedicine] {
	t.Helper()
	tbl := newTestTable(t, Options[testMedicine]{Toolbar: ToolbarOptions[testMedicine]{
		BulkActions: []BulkAction[testMedicine]{{Label: "Delete", Handler: handler}},
		ClearPolicy: policy,
	}})
	tbl.SetProps(testRows(), PaginationMeta{Page: 1, Limit: 10, Total: 3}, false, false)
	return tbl
}

func TestInvokeBulkPassesSelectedRowsAndClears(t *testing.T) {
	var got []string
	tbl := newBulkTable(t, ClearAlways, func(_ context.Context, rows []testMedicine) error {
		for _, r := range rows {
			got = append(got, r.ID)
		}
		return nil
	})
	tb := tbl.Toolbar()
	assert.False(t, tb.BulkEnabled())

	tbl.SelectRows("m2", "m3")
	assert.True(t, tb.BulkEnabled())
	require.NoError(t, tb.InvokeBulk(context.Background(), "Delete"))

	assert.Equal(t, []string{"m2", "m3"}, got)
	assert.Empty(t, tbl.SelectedKeys())
	assert.False(t, tb.BulkEnabled())
}

func TestInvokeBulkClearsOnFailure(t *testing.T) {
	boom := errors.New("backend down")
	tbl := newBulkTable(t, ClearAlways, func(context.Context, []testMedicine) error { return boom })
	tbl.SelectRows("m1")

	assert.ErrorIs(t, tbl.Toolbar().InvokeBulk(context.Background(), "Delete"), boom)
	assert.Empty(t, tbl.SelectedKeys())
}

func TestInvokeBulkClearsOnPanic(t *testing.T) {
	tbl := newBulkTable(t, ClearAlways, func(context.Context, []testMedicine) error { panic("handler bug") })
	tbl.SelectRows("m1")

	assert.Panics(t, func() { _ = tbl.Toolbar().InvokeBulk(context.Background(), "Delete") })
	assert.Empty(t, tbl.SelectedKeys())
}

func TestInvokeBulkClearOnSuccessKeepsSelectionOnFailure(t *testing.T) {
	tbl := newBulkTable(t, ClearOnSuccess, func(context.Context, []testMedicine) error { return errors.New("nope") })
	tbl.SelectRows("m1")

	assert.Error(t, tbl.Toolbar().InvokeBulk(context.Background(), "Delete"))
	assert.Equal(t, []string{"m1"}, tbl.SelectedKeys())
}

func TestInvokeBulkRejectsEmptySelectionAndUnknownAction(t *testing.T) {
	called := false
	tbl := newBulkTable(t, ClearAlways, func(context.Context, []testMedicine) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, tbl.Toolbar().InvokeBulk(context.Background(), "Delete"), ErrEmptySelection)
	tbl.SelectRows("m1")
	assert.ErrorIs(t, tbl.Toolbar().InvokeBulk(context.Background(), "Archive"), ErrUnknownAction)
	assert.False(t, called)
}

func TestResetClearsFiltersSelectionAndTerm(t *testing.T) {
	var searches []string
	tbl := newTestTable(t, Options[testMedicine]{Toolbar: ToolbarOptions[testMedicine]{
		OnSearch:          func(term string) { searches = append(searches, term) },
		FilterableColumns: []FilterableColumn{{ID: "category.name"}},
	}})
	tbl.SetProps(testRows(), PaginationMeta{Page: 1, Limit: 10, Total: 3}, false, false)
	tb := tbl.Toolbar()
	assert.False(t, tb.ResetVisible())

	require.NoError(t, tb.ChangeFacet("category.name", []string{"Pain"}))
	tbl.SelectRows("m1")
	tb.SetSearchTerm("para")
	require.True(t, tb.ResetVisible())

	tb.Reset()
	assert.Empty(t, tbl.ColumnFilters())
	assert.Empty(t, tbl.SelectedKeys())
	assert.Equal(t, "", tb.SearchTerm())
	assert.Equal(t, []string{""}, searches)
	assert.False(t, tb.ResetVisible())
}

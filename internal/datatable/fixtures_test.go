package datatable

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"maragu.dev/gomponents"
)

type testCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type testMedicine struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Price    float64       `json:"price"`
	Stock    int           `json:"stock"`
	Category *testCategory `json:"category"`
	Extra    map[string]any
}

func testColumns() []Column[testMedicine] {
	return []Column[testMedicine]{
		{AccessorKey: "name", Header: "Name", Sortable: true},
		{AccessorKey: "category.name", Header: "Category", Sortable: true, Hideable: true},
		{AccessorKey: "price", Header: "Price", Sortable: true, Hideable: true},
		{AccessorKey: "stock", Header: "Stock"},
	}
}

func testRows() []testMedicine {
	pain := &testCategory{ID: "c1", Name: "Pain"}
	cold := &testCategory{ID: "c2", Name: "Cold"}
	return []testMedicine{
		{ID: "m1", Name: "Paracetamol", Price: 4.5, Stock: 10, Category: pain},
		{ID: "m2", Name: "Aspirin", Price: 3, Stock: 0, Category: pain},
		{ID: "m3", Name: "Cough Syrup", Price: 7.25, Stock: 4, Category: cold},
	}
}

func newTestTable(t *testing.T, opts Options[testMedicine]) *Table[testMedicine] {
	t.Helper()
	if opts.Columns == nil {
		opts.Columns = testColumns()
	}
	if opts.RowKey == nil {
		opts.RowKey = func(m testMedicine) string { return m.ID }
	}
	tbl, err := New(opts)
	require.NoError(t, err)
	return tbl
}

func render(t *testing.T, node gomponents.Node) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, node.Render(&b))
	return b.String()
}

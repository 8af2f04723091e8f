package category

import (
	"maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/georgemunganga/pharmacy-storefront/internal/datatable"
	"github.com/georgemunganga/pharmacy-storefront/internal/web"
)

const tableID = "categories-table"

func columns() []datatable.Column[Category] {
	return []datatable.Column[Category]{
		{AccessorKey: "name", Header: "Name", Sortable: true},
		{
			ID:     "id",
			Header: "ID",
			Cell:   func(c Category) gomponents.Node { return datatable.FieldCopy(c.ID, 8) },
		},
		{AccessorKey: "createdAt", Header: "Created", Sortable: true, Hideable: true},
	}
}

func createForm() gomponents.Node {
	return html.Form(html.Class("card inline-form"), html.Method("post"), html.Action("/admin-dashboard/categories"),
		web.Field("New category", "name", web.TextInput("text", "name", "", html.Required(), html.Placeholder("e.g. Antibiotics"))),
		html.Button(html.Type("submit"), html.Class("button primary"), gomponents.Text("Add Category")),
	)
}

func page(table gomponents.Node) gomponents.Node {
	return html.Section(
		html.H1(gomponents.Text("Categories")),
		createForm(),
		table,
	)
}

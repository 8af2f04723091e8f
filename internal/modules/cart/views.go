package cart

import (
	"strconv"

	"maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/georgemunganga/pharmacy-storefront/internal/datatable"
	"github.com/georgemunganga/pharmacy-storefront/internal/web"
)

const tableID = "cart-table"

func columns() []datatable.Column[Item] {
	return []datatable.Column[Item]{
		{
			AccessorKey: "medicine.name",
			Header:      "Medicine",
			Cell: func(it Item) gomponents.Node {
				return html.A(html.Href("/medicine/"+it.MedicineID), gomponents.Text(it.Medicine.Name))
			},
		},
		{
			AccessorKey: "medicine.price",
			Header:      "Price",
			Cell:        func(it Item) gomponents.Node { return gomponents.Text(web.Money(it.Medicine.Price)) },
		},
		{ID: "quantity", Header: "Quantity", Cell: quantityForm},
		{
			ID:       "subtotal",
			Header:   "Subtotal",
			Accessor: func(it Item) any { return it.Subtotal() },
			Cell:     func(it Item) gomponents.Node { return gomponents.Text(web.Money(it.Subtotal())) },
		},
		datatable.ActionsColumn("actions", func(it Item) []datatable.RowAction {
			return []datatable.RowAction{{Label: "Remove", URL: "/cart/items/" + it.ID + "/delete", Class: "danger"}}
		}),
	}
}

func quantityForm(it Item) gomponents.Node {
	return html.Form(html.Class("inline"), html.Method("post"), html.Action("/cart/items/"+it.ID),
		html.Input(html.Type("number"), html.Name("quantity"), html.Min("0"), html.Value(strconv.Itoa(it.Quantity)),
			html.Aria("label", "Quantity")),
		html.Button(html.Type("submit"), html.Class("button small"), gomponents.Text("Update")),
	)
}

func page(c *Cart, table gomponents.Node) gomponents.Node {
	if len(c.Items) == 0 {
		return html.Section(html.Class("empty-state"),
			html.H1(gomponents.Text("Your cart is empty")),
			html.A(html.Href("/shop"), html.Class("button"), gomponents.Text("Browse medicines")),
		)
	}
	return html.Div(html.Class("cart"),
		table,
		html.Aside(html.Class("panel checkout"),
			html.H2(gomponents.Text("Order Summary")),
			html.P(gomponents.Textf("%d items", c.Count())),
			html.P(html.Class("total"), gomponents.Text("Total: "), html.Strong(gomponents.Text(web.Money(c.Total())))),
			html.Form(html.Method("post"), html.Action("/checkout"),
				web.Field("Shipping Address", "address",
					html.Textarea(html.ID("address"), html.Name("address"), html.Required(), html.Rows("3"))),
				html.P(html.Class("muted"), gomponents.Text("Payment: Cash on Delivery")),
				html.Button(html.Type("submit"), html.Class("button primary"), gomponents.Text("Place Order")),
			),
		),
	)
}

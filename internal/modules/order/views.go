package order

import (
	"maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/georgemunganga/pharmacy-storefront/internal/datatable"
	"github.com/georgemunganga/pharmacy-storefront/internal/web"
)

const tableID = "orders-table"

func statusOptions() []datatable.FilterOption {
	opts := make([]datatable.FilterOption, len(Statuses))
	for i, s := range Statuses {
		opts[i] = datatable.FilterOption{Label: string(s), Value: string(s)}
	}
	return opts
}

func totalColumn() datatable.Column[Order] {
	return datatable.Column[Order]{
		AccessorKey: "totalAmount",
		Header:      "Total",
		Sortable:    true,
		Cell:        func(o Order) gomponents.Node { return gomponents.Text(web.Money(o.TotalAmount)) },
	}
}

func dateColumn() datatable.Column[Order] {
	return datatable.Column[Order]{AccessorKey: "createdAt", Header: "Created At", Sortable: true, Hideable: true}
}

func badge(s Status) gomponents.Node { return web.Badge(string(s), s.Variant()) }

func columns(scope Scope, returnTo string) []datatable.Column[Order] {
	idColumn := datatable.Column[Order]{
		ID:     "id",
		Header: "Order",
		Cell:   func(o Order) gomponents.Node { return datatable.FieldCopy(o.ID, 8) },
	}
	switch scope {
	case ScopeCustomer:
		return []datatable.Column[Order]{
			idColumn,
			{
				ID:     "items",
				Header: "Items",
				Accessor: func(o Order) any { return quantity(o) },
				Sortable: true,
			},
			totalColumn(),
			{AccessorKey: "status", Header: "Status", Sortable: true, Cell: func(o Order) gomponents.Node { return badge(o.Status) }},
			dateColumn(),
		}
	case ScopeSeller:
		return []datatable.Column[Order]{
			idColumn,
			{AccessorKey: "customerName", Header: "Customer", Sortable: true},
			totalColumn(),
			{
				AccessorKey: "status",
				Header:      "Status",
				Sortable:    true,
				Cell:        func(o Order) gomponents.Node { return statusSelect(o, returnTo) },
			},
			dateColumn(),
		}
	}
	return []datatable.Column[Order]{
		{AccessorKey: "customerName", Header: "Customer", Sortable: true},
		totalColumn(),
		{
			AccessorKey: "status",
			Header:      "Status",
			Sortable:    true,
			Cell:        func(o Order) gomponents.Node { return nextStatus(o, returnTo) },
		},
		dateColumn(),
	}
}

// nextStatus is the admin status cell: the badge and, while the order is
// still moving, a button to advance it.
func nextStatus(o Order, returnTo string) gomponents.Node {
	_, ok := o.Status.Next()
	return html.Div(html.Class("status-cell"),
		badge(o.Status),
		gomponents.If(ok, web.PostButton("/admin-dashboard/orders/"+o.ID+"/advance", "Next Status", "button small",
			web.Hidden("return", returnTo))),
	)
}

// statusSelect lets a seller move an order to any status its lifecycle
// allows.
func statusSelect(o Order, returnTo string) gomponents.Node {
	next := validTransitions[o.Status]
	if len(next) == 0 {
		return badge(o.Status)
	}
	opts := []gomponents.Node{html.Option(html.Value(string(o.Status)), html.Selected(), gomponents.Text(string(o.Status)))}
	for _, s := range next {
		opts = append(opts, html.Option(html.Value(string(s)), gomponents.Text(string(s))))
	}
	return html.Form(html.Class("inline status-form"), html.Method("post"), html.Action("/seller-dashboard/orders/"+o.ID+"/status"),
		web.Hidden("return", returnTo),
		html.Select(html.Name("status"), html.Aria("label", "Update Status"), gomponents.Group(opts)),
		html.Button(html.Type("submit"), html.Class("button small"), gomponents.Text("Update")),
	)
}

func quantity(o Order) int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

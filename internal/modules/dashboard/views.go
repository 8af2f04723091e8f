package dashboard

import (
	"strconv"

	"maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/georgemunganga/pharmacy-storefront/internal/datatable"
	"github.com/georgemunganga/pharmacy-storefront/internal/modules/order"
	"github.com/georgemunganga/pharmacy-storefront/internal/web"
)

const recentID = "recent-orders"

func count(n int) string { return strconv.Itoa(n) }

func overview(title string, cards []gomponents.Node, failed bool, rest ...gomponents.Node) gomponents.Node {
	return html.Section(html.Class("overview"),
		html.H1(gomponents.Text(title)),
		gomponents.If(failed, html.P(html.Class("flash error"), html.Role("alert"),
			gomponents.Text("Some figures could not be loaded."))),
		html.Div(html.Class("stat-grid"), gomponents.Group(cards)),
		gomponents.Group(rest),
	)
}

func customerCards(s CustomerStats) []gomponents.Node {
	return []gomponents.Node{
		web.StatCard("Total Orders", count(s.Orders)),
		web.StatCard("In Progress", count(s.InProgress)),
		web.StatCard("Delivered", count(s.Delivered)),
		web.StatCard("Total Spent", web.Money(s.Spent)),
	}
}

func sellerCards(s SellerStats) []gomponents.Node {
	return []gomponents.Node{
		web.StatCard("Products", count(s.Products)),
		web.StatCard("Low Stock", count(s.LowStock)),
		web.StatCard("Orders", count(s.Orders)),
		web.StatCard("Pending", count(s.Pending)),
		web.StatCard("Revenue", web.Money(s.Revenue)),
	}
}

func adminCards(s AdminStats) []gomponents.Node {
	cards := []gomponents.Node{
		web.StatCard("Users", count(s.Users)),
		web.StatCard("Medicines", count(s.Medicines)),
		web.StatCard("Categories", count(s.Categories)),
		web.StatCard("Orders", count(s.Orders)),
	}
	for _, st := range order.Statuses {
		cards = append(cards, web.StatCard(string(st), count(s.ByStatus[string(st)])))
	}
	return cards
}

func recentColumns(withCustomer bool) []datatable.Column[order.Order] {
	cols := []datatable.Column[order.Order]{{
		ID:     "id",
		Header: "Order",
		Cell:   func(o order.Order) gomponents.Node { return datatable.FieldCopy(o.ID, 8) },
	}}
	if withCustomer {
		cols = append(cols, datatable.Column[order.Order]{AccessorKey: "customerName", Header: "Customer"})
	}
	return append(cols,
		datatable.Column[order.Order]{
			AccessorKey: "totalAmount",
			Header:      "Total",
			Cell:        func(o order.Order) gomponents.Node { return gomponents.Text(web.Money(o.TotalAmount)) },
		},
		datatable.Column[order.Order]{
			AccessorKey: "status",
			Header:      "Status",
			Cell:        func(o order.Order) gomponents.Node { return web.Badge(string(o.Status), o.Status.Variant()) },
		},
		datatable.Column[order.Order]{AccessorKey: "createdAt", Header: "Created At"},
	)
}

// recentTable renders a short order table. With lazyURL set the table is
// drawn empty and fetches its rows after the page loads.
func recentTable(orders []order.Order, withCustomer, failed bool, lazyURL string) (gomponents.Node, error) {
	tbl, err := datatable.New(datatable.Options[order.Order]{
		Columns:      recentColumns(withCustomer),
		RowKey:       func(o order.Order) string { return o.ID },
		SkeletonRows: 3,
		Toolbar:      datatable.ToolbarOptions[order.Order]{Hidden: true},
	})
	if err != nil {
		return nil, err
	}
	tbl.SetProps(orders, datatable.PaginationMeta{Page: 1, Limit: max(len(orders), 1), Total: len(orders)}, lazyURL != "", failed)
	return datatable.Render(tbl, nil, datatable.RenderOptions{
		ID:             recentID,
		Title:          "Recent Orders",
		Subtitle:       "The latest orders.",
		HidePagination: true,
		LazyURL:        lazyURL,
	}), nil
}

func allOrders(href string) gomponents.Node {
	return html.P(html.A(html.Href(href), gomponents.Text("View all orders")))
}

package medicine

import (
	"net/url"
	"strconv"

	"maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	"maragu.dev/gomponents/html"

	"github.com/georgemunganga/pharmacy-storefront/internal/datatable"
	"github.com/georgemunganga/pharmacy-storefront/internal/modules/category"
	"github.com/georgemunganga/pharmacy-storefront/internal/web"
)

const (
	shopGridID     = "shop-grid"
	productTableID = "products-table"
)

type shopView struct {
	items      []Medicine
	failed     bool
	categories []datatable.FilterOption
	query      datatable.QueryState
	minPrice   string
	maxPrice   string
	sort       string
	pager      *datatable.Pager
}

var shopSorts = []datatable.FilterOption{
	{Label: "Newest", Value: ""},
	{Label: "Price: low to high", Value: "price.asc"},
	{Label: "Price: high to low", Value: "price.desc"},
	{Label: "Name", Value: "name.asc"},
}

var categoryIcons = []string{"💊", "🩺", "🧪", "🩹", "🌿", "❤️", "🧠", "🧬"}

func homePage(cats []category.Category, featured []Medicine) gomponents.Node {
	return html.Div(html.Class("home"),
		html.Section(html.Class("hero"),
			html.H1(gomponents.Text("Your trusted online pharmacy")),
			html.P(gomponents.Text("Genuine medicines from verified sellers, delivered to your door.")),
			html.A(html.Class("button"), html.Href("/shop"), gomponents.Text("Shop Now")),
		),
		categoryTiles(cats),
		featuredSection(featured),
	)
}

func categoryTiles(cats []category.Category) gomponents.Node {
	tiles := []gomponents.Node{categoryTile("All", "/shop", categoryIcons[0], true)}
	for i, c := range cats {
		tiles = append(tiles, categoryTile(c.Name, "/shop?categoryId="+url.QueryEscape(c.ID), categoryIcons[i%len(categoryIcons)], false))
	}
	return html.Section(html.Class("home-categories"),
		html.Div(html.Class("section-head"),
			html.H2(gomponents.Text("Shop by Category")),
			html.A(html.Href("/shop"), gomponents.Text("View all")),
		),
		html.Div(html.Class("category-tiles"), gomponents.Group(tiles)),
	)
}

func categoryTile(name, href, icon string, highlight bool) gomponents.Node {
	class := "category-tile"
	if highlight {
		class += " highlight"
	}
	return html.A(html.Class(class), html.Href(href),
		html.Span(html.Class("icon"), gomponents.Text(icon)),
		html.Span(gomponents.Text(name)),
	)
}

// featuredSection is empty when nothing is featured.
func featuredSection(items []Medicine) gomponents.Node {
	if len(items) == 0 {
		return nil
	}
	cards := make([]gomponents.Node, len(items))
	for i, m := range items {
		cards[i] = card(m)
	}
	return html.Section(html.Class("featured"),
		html.H2(gomponents.Text("Featured Medicines")),
		html.P(html.Class("muted"), gomponents.Text("Hand-picked medicines just for you")),
		html.Div(html.Class("medicine-grid"), gomponents.Group(cards)),
	)
}

func shopPage(v shopView) gomponents.Node {
	return html.Div(html.Class("shop"),
		html.Aside(html.Class("shop-sidebar"),
			html.H2(gomponents.Text("Categories")),
			categoryLinks(v),
		),
		shopGrid(v),
	)
}

func categoryLinks(v shopView) gomponents.Node {
	current := v.query.Filter("categoryId")
	items := []gomponents.Node{html.Li(categoryLink(v.pager, "All", "", current == ""))}
	for _, c := range v.categories {
		items = append(items, html.Li(categoryLink(v.pager, c.Label, c.Value, current == c.Value)))
	}
	return html.Ul(html.Class("category-list"), gomponents.Group(items))
}

func categoryLink(p *datatable.Pager, label, id string, active bool) gomponents.Node {
	href := p.HrefWith(map[string]string{"categoryId": id, datatable.ParamPage: "1"})
	return html.A(html.Href(href), hx.Get(href), hx.Target("#"+shopGridID),
		gomponents.If(active, html.Aria("current", "true")),
		gomponents.Text(label))
}

// shopGrid is also the htmx fragment for search, filter and page changes.
func shopGrid(v shopView) gomponents.Node {
	var content gomponents.Node
	switch {
	case v.failed:
		content = html.Div(html.Class("error-panel"), html.Role("alert"),
			html.H3(gomponents.Text("Something went wrong")),
			html.P(gomponents.Text("There was an error loading the data.")),
			html.A(html.Class("button"), html.Href(v.pager.Location()), gomponents.Text("Try Again")))
	case len(v.items) == 0:
		content = html.P(html.Class("empty"), gomponents.Text("No medicines found."))
	default:
		cards := make([]gomponents.Node, len(v.items))
		for i, m := range v.items {
			cards[i] = card(m)
		}
		content = html.Div(html.Class("medicine-grid"), gomponents.Group(cards))
	}

	return html.Div(html.ID(shopGridID), html.Class("shop-main"),
		hx.Target("#"+shopGridID), hx.Swap("outerHTML"), gomponents.Attr("hx-push-url", "true"),
		shopFilters(v),
		content,
		gomponents.If(!v.failed && len(v.items) > 0, datatable.PageNav(v.pager)),
	)
}

func shopFilters(v shopView) gomponents.Node {
	sortOpts := make([]gomponents.Node, len(shopSorts))
	for i, s := range shopSorts {
		sortOpts[i] = html.Option(html.Value(s.Value), gomponents.If(s.Value == v.sort, html.Selected()), gomponents.Text(s.Label))
	}
	return html.Form(html.Class("shop-filters"), html.Method("get"), html.Action(v.pager.Path()),
		hx.Get(v.pager.Path()), hx.Trigger("submit, change from:select"),
		gomponents.If(v.query.Filter("categoryId") != "", web.Hidden("categoryId", v.query.Filter("categoryId"))),
		html.Input(html.Type("search"), html.Name(datatable.ParamSearch), html.Value(v.query.Search),
			html.Placeholder("Search medicines..."), html.Aria("label", "Search medicines")),
		html.Input(html.Type("number"), html.Name("minPrice"), html.Value(v.minPrice), html.Min("0"), html.Step("0.01"),
			html.Placeholder("Min ৳"), html.Aria("label", "Minimum price")),
		html.Input(html.Type("number"), html.Name("maxPrice"), html.Value(v.maxPrice), html.Min("0"), html.Step("0.01"),
			html.Placeholder("Max ৳"), html.Aria("label", "Maximum price")),
		html.Select(html.Name(datatable.ParamSort), html.Aria("label", "Sort"), gomponents.Group(sortOpts)),
		html.Button(html.Type("submit"), html.Class("button"), gomponents.Text("Apply")),
	)
}

func card(m Medicine) gomponents.Node {
	href := "/medicine/" + m.ID
	return html.Article(html.Class("medicine-card"),
		html.A(html.Href(href),
			image(m),
			html.H3(gomponents.Text(m.Name)),
		),
		gomponents.If(m.Category != nil, html.P(html.Class("muted"), gomponents.Text(categoryName(m)))),
		html.P(html.Class("price"), gomponents.Text(web.Money(m.Price))),
		stockBadge(m),
		gomponents.If(m.IsFeatured, web.Badge("Featured", "info")),
	)
}

func image(m Medicine) gomponents.Node {
	if m.ImageURL == "" {
		return html.Div(html.Class("medicine-image placeholder"), gomponents.Text(datatable.Initials(m.Name)))
	}
	return html.Img(html.Class("medicine-image"), html.Src(m.ImageURL), html.Alt(m.Name), html.Loading("lazy"))
}

func stockBadge(m Medicine) gomponents.Node {
	if m.InStock() {
		return web.Badge("In stock", "success")
	}
	return web.Badge("Out of stock", "danger")
}

func categoryName(m Medicine) string {
	if m.Category == nil {
		return ""
	}
	return m.Category.Name
}

func detailPage(m *Medicine, related []Medicine, viewer *web.Viewer, reviews gomponents.Node) gomponents.Node {
	return html.Section(html.Class("medicine-detail"),
		html.Div(html.Class("detail-main"),
			image(*m),
			html.Div(
				html.H1(gomponents.Text(m.Name)),
				gomponents.If(m.Category != nil, html.P(html.Class("muted"), gomponents.Text(categoryName(*m)))),
				html.P(html.Class("price"), gomponents.Text(web.Money(m.Price))),
				stockBadge(*m),
				html.P(gomponents.Text(m.Description)),
				buyBox(m, viewer),
			),
		),
		gomponents.If(len(related) > 0, html.Div(html.Class("related"),
			html.H2(gomponents.Text("More in this category")),
			html.Div(html.Class("medicine-grid"), gomponents.Map(related, card)),
		)),
		reviews,
	)
}

func buyBox(m *Medicine, viewer *web.Viewer) gomponents.Node {
	switch {
	case viewer == nil:
		return html.A(html.Class("button primary"), html.Href(web.LoginTarget("/medicine/"+m.ID)),
			gomponents.Text("Log in to buy"))
	case !viewer.Is(web.RoleCustomer):
		return nil
	case !m.InStock():
		return html.Button(html.Class("button"), html.Disabled(), gomponents.Text("Out of stock"))
	}
	return html.Form(html.Class("buy-box"), html.Method("post"), html.Action("/cart/items"),
		web.Hidden("medicineId", m.ID),
		web.Hidden("return", "/medicine/"+m.ID),
		web.Field("Quantity", "quantity", web.TextInput("number", "quantity", "1",
			html.Min("1"), html.Max(strconv.Itoa(m.Stock)))),
		html.Button(html.Type("submit"), html.Class("button primary"), gomponents.Text("Add to Cart")),
	)
}

func productColumns(returnTo string) []datatable.Column[Medicine] {
	return []datatable.Column[Medicine]{
		{AccessorKey: "name", Header: "Name", Sortable: true},
		{
			AccessorKey: "categoryId",
			Header:      "Category",
			Hideable:    true,
			Cell:        func(m Medicine) gomponents.Node { return gomponents.Text(categoryName(m)) },
		},
		{
			AccessorKey: "price",
			Header:      "Price",
			Sortable:    true,
			Cell:        func(m Medicine) gomponents.Node { return gomponents.Text(web.Money(m.Price)) },
		},
		{AccessorKey: "stock", Header: "Stock", Sortable: true, Hideable: true},
		{
			ID:       "featured",
			Header:   "Featured",
			Hideable: true,
			Cell: func(m Medicine) gomponents.Node {
				return gomponents.If(m.IsFeatured, web.Badge("Featured", "info"))
			},
		},
		{AccessorKey: "createdAt", Header: "Added", Sortable: true, Hideable: true},
		datatable.ActionsColumn("actions", func(m Medicine) []datatable.RowAction {
			return []datatable.RowAction{{
				Label:   "Delete",
				URL:     "/seller-dashboard/products/" + m.ID + "/delete",
				Class:   "danger",
				Confirm: "Delete " + m.Name + "?",
				Fields:  map[string]string{"return": returnTo},
			}}
		}),
	}
}

type formView struct {
	title      string
	action     string
	submit     string
	input      Input
	errs       ValidationError
	categories []datatable.FilterOption
}

func productForm(v formView) gomponents.Node {
	opts := []gomponents.Node{html.Option(html.Value(""), gomponents.Text("Select a category"))}
	for _, c := range v.categories {
		opts = append(opts, html.Option(html.Value(c.Value), gomponents.If(c.Value == v.input.CategoryID, html.Selected()),
			gomponents.Text(c.Label)))
	}
	price := ""
	if v.input.Price > 0 {
		price = strconv.FormatFloat(v.input.Price, 'f', 2, 64)
	}

	return html.Section(
		html.H1(gomponents.Text(v.title)),
		html.Form(html.Class("card product-form"), html.Method("post"), html.Action(v.action),
			gomponents.If(v.errs["form"] != "", html.P(html.Class("flash error"), gomponents.Text(v.errs["form"]))),
			field(v, "Name", "name", web.TextInput("text", "name", v.input.Name, html.Required())),
			field(v, "Description", "description",
				html.Textarea(html.ID("description"), html.Name("description"), html.Rows("4"), gomponents.Text(v.input.Description))),
			field(v, "Price", "price", web.TextInput("number", "price", price, html.Min("0"), html.Step("0.01"), html.Required())),
			field(v, "Stock", "stock", web.TextInput("number", "stock", strconv.Itoa(v.input.Stock), html.Min("0"))),
			field(v, "Image URL", "imageUrl", web.TextInput("url", "imageUrl", v.input.ImageURL)),
			field(v, "Category", "categoryId", html.Select(html.ID("categoryId"), html.Name("categoryId"), gomponents.Group(opts))),
			html.Label(html.Class("checkbox"),
				html.Input(html.Type("checkbox"), html.Name("isFeatured"), html.Value("true"),
					gomponents.If(v.input.IsFeatured, html.Checked())),
				gomponents.Text("Featured"),
			),
			html.Div(html.Class("form-actions"),
				html.A(html.Class("button"), html.Href("/seller-dashboard/products"), gomponents.Text("Cancel")),
				html.Button(html.Type("submit"), html.Class("button primary"), gomponents.Text(v.submit)),
			),
		),
	)
}

func field(v formView, label, name string, control gomponents.Node) gomponents.Node {
	msg := v.errs[name]
	return html.Div(html.Class("field"),
		html.Label(html.For(name), gomponents.Text(label)),
		control,
		gomponents.If(msg != "", html.P(html.Class("field-error"), gomponents.Text(msg))),
	)
}

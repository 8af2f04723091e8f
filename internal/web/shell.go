package web

import (
	"strconv"
	"strings"

	"maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

// Roles known to the navigation.
const (
	RoleAdmin    = "ADMIN"
	RoleSeller   = "SELLER"
	RoleCustomer = "CUSTOMER"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// LoginURL is where anonymous visitors are sent to sign in.
var LoginURL = "/login"

// Layout is the page shell around a page body.
type Layout struct {
	Title  string
	Viewer *Viewer
	Flash  *Flash
	Path   string
	// Sidebar replaces the public navigation on dashboard pages.
	Sidebar []NavLink
	Body    gomponents.Node
}

type NavLink struct {
	Label string
	Href  string
}

// Shell renders a complete HTML document.
func Shell(p Layout) gomponents.Node {
	title := "MediStore"
	if p.Title != "" {
		title = p.Title + " | MediStore"
	}
	main := []gomponents.Node{html.Class("content")}
	if p.Flash != nil {
		main = append(main, html.Div(html.Class("flash "+string(p.Flash.Kind)), html.Role("status"),
			gomponents.Text(p.Flash.Message)))
	}
	main = append(main, p.Body)

	body := html.Main(main...)
	if len(p.Sidebar) > 0 {
		body = html.Div(html.Class("dashboard"),
			html.Aside(html.Class("sidebar"), html.Nav(navList(p.Sidebar, p.Path))),
			body,
		)
	}

	return html.Doctype(html.HTML(html.Lang("en"),
		html.Head(
			html.Meta(html.Charset("utf-8")),
			html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1")),
			html.TitleEl(gomponents.Text(title)),
			html.Link(html.Rel("stylesheet"), html.Href("/static/app.css")),
			html.Script(html.Src(htmxSrc), gomponents.Attr("defer")),
		),
		html.Body(
			topBar(p.Viewer, p.Path),
			body,
			html.Footer(html.Class("site-footer"), gomponents.Text("MediStore - your online pharmacy")),
		),
	))
}

func topBar(v *Viewer, path string) gomponents.Node {
	links := []NavLink{{Label: "Shop", Href: "/shop"}, {Label: "Blog", Href: "/blogs"}}
	switch {
	case v.Is(RoleAdmin):
		links = append(links, NavLink{Label: "Admin", Href: "/admin-dashboard"})
	case v.Is(RoleSeller):
		links = append(links, NavLink{Label: "Seller", Href: "/seller-dashboard"})
	case v != nil:
		links = append(links, NavLink{Label: "Cart", Href: "/cart"}, NavLink{Label: "Dashboard", Href: "/dashboard"})
	}

	var account gomponents.Node
	if v == nil {
		account = html.A(html.Class("button"), html.Href(LoginURL), gomponents.Text("Log in"))
	} else {
		account = html.Form(html.Method("post"), html.Action("/logout"), html.Class("account"),
			html.Span(gomponents.Text(v.Name)),
			html.Button(html.Type("submit"), html.Class("link"), gomponents.Text("Log out")),
		)
	}
	return html.Header(html.Class("top-bar"),
		html.A(html.Class("brand"), html.Href("/"), gomponents.Text("MediStore")),
		html.Nav(navList(links, path)),
		account,
	)
}

func navList(links []NavLink, path string) gomponents.Node {
	items := make([]gomponents.Node, 0, len(links))
	for _, l := range links {
		active := path == l.Href || (l.Href != "/" && strings.HasPrefix(path, l.Href+"/"))
		items = append(items, html.Li(html.A(html.Href(l.Href),
			gomponents.If(active, html.Aria("current", "page")),
			gomponents.Text(l.Label))))
	}
	return html.Ul(items...)
}

// ErrorBody is the body of an error page.
func ErrorBody(status int, message string) gomponents.Node {
	return html.Section(html.Class("error-page"),
		html.H1(gomponents.Text(strconv.Itoa(status))),
		html.P(gomponents.Text(message)),
		html.A(html.Class("button"), html.Href("/"), gomponents.Text("Back to the shop")),
	)
}

package blog

import (
	"strconv"

	"maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	"maragu.dev/gomponents/html"

	"github.com/georgemunganga/pharmacy-storefront/internal/datatable"
	"github.com/georgemunganga/pharmacy-storefront/internal/web"
)

const (
	gridID        = "blog-grid"
	excerptLength = 160
)

type listView struct {
	posts  []Post
	failed bool
	search string
	pager  *datatable.Pager
}

func listPage(v listView) gomponents.Node {
	return html.Div(html.Class("blog"),
		html.H1(gomponents.Text("Health Blog")),
		html.P(html.Class("muted"), gomponents.Text("Tips and news about medicines and everyday care.")),
		grid(v),
	)
}

// grid is also the htmx fragment for search and page changes.
func grid(v listView) gomponents.Node {
	var content gomponents.Node
	switch {
	case v.failed:
		content = html.Div(html.Class("error-panel"), html.Role("alert"),
			html.H3(gomponents.Text("Something went wrong")),
			html.P(gomponents.Text("There was an error loading the data.")),
			html.A(html.Class("button"), html.Href(v.pager.Location()), gomponents.Text("Try Again")))
	case len(v.posts) == 0:
		content = html.P(html.Class("empty"), gomponents.Text("No posts found."))
	default:
		cards := make([]gomponents.Node, len(v.posts))
		for i, p := range v.posts {
			cards[i] = card(p)
		}
		content = html.Div(html.Class("blog-grid"), gomponents.Group(cards))
	}

	return html.Div(html.ID(gridID),
		hx.Target("#"+gridID), hx.Swap("outerHTML"), gomponents.Attr("hx-push-url", "true"),
		html.Form(html.Class("search"), html.Method("get"), html.Action(v.pager.Path()),
			hx.Get(v.pager.Path()), hx.Trigger("submit"),
			html.Input(html.Type("search"), html.Name(datatable.ParamSearch), html.Value(v.search),
				html.Placeholder("Search posts..."), html.Aria("label", "Search posts")),
		),
		content,
		gomponents.If(!v.failed && len(v.posts) > 0, datatable.PageNav(v.pager)),
	)
}

func card(p Post) gomponents.Node {
	return html.Article(html.Class("blog-card"),
		html.A(html.Href("/blogs/"+p.ID),
			thumbnail(p),
			html.H3(gomponents.Text(p.Title)),
		),
		gomponents.If(p.IsFeatured, web.Badge("Featured", "info")),
		tags(p.Tags),
		html.P(html.Class("muted"), gomponents.Text(datatable.Truncate(p.Content, excerptLength))),
		html.Footer(html.Class("muted"),
			html.Span(gomponents.Text(datatable.FormatValue(p.CreatedAt))),
			html.Span(gomponents.Text(strconv.Itoa(p.Views)+" views")),
		),
	)
}

func thumbnail(p Post) gomponents.Node {
	if p.Thumbnail == "" {
		return html.Div(html.Class("blog-thumb placeholder"), gomponents.Text("No Image"))
	}
	return html.Img(html.Class("blog-thumb"), html.Src(p.Thumbnail), html.Alt(p.Title), html.Loading("lazy"))
}

func tags(list []string) gomponents.Node {
	if len(list) == 0 {
		return nil
	}
	items := make([]gomponents.Node, len(list))
	for i, t := range list {
		items[i] = web.Badge("#"+t, "secondary")
	}
	return html.Div(html.Class("tags"), gomponents.Group(items))
}

func detailPage(p *Post) gomponents.Node {
	var date string
	if !p.CreatedAt.IsZero() {
		date = p.CreatedAt.Format("January 2, 2006")
	}
	return html.Article(html.Class("blog-post"),
		html.H1(gomponents.Text(p.Title)),
		html.Div(html.Class("muted post-meta"),
			gomponents.If(date != "", html.Span(gomponents.Text(date))),
			html.Span(gomponents.Textf("%d views", p.Views)),
			html.Span(gomponents.Textf("%d comments", p.Count.Comments)),
		),
		gomponents.If(p.Thumbnail != "", html.Img(html.Class("post-image"), html.Src(p.Thumbnail), html.Alt(p.Title))),
		html.Div(html.Class("card post-body"), gomponents.Text(p.Content)),
		tags(p.Tags),
		html.A(html.Href("/blogs"), gomponents.Text("← All posts")),
	)
}

package datatable

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	"maragu.dev/gomponents/html"
)

const DefaultContainerID = "data-table"

// RenderOptions controls the markup around a table.
type RenderOptions struct {
	// ID of the container element, which htmx requests swap in place.
	ID       string
	Title    string
	Subtitle string
	// BulkURL receives the bulk form: one "selected" value per row and the
	// chosen "action".
	BulkURL        string
	HidePagination bool
	// LazyURL is fetched once the container loads. Use it with a table in
	// the loading state to stream the data in after the page shell.
	LazyURL string
}

// Render draws the table, its toolbar and page navigation. Links keep every
// query parameter of the pager's location; htmx requests replace the
// container, and navigation without scripts falls back to plain links and
// forms.
func Render[T any](t *Table[T], p *Pager, opts RenderOptions) gomponents.Node {
	if p == nil {
		p = NewPager(nil, t.Meta(), nil)
	}
	if opts.ID == "" {
		opts.ID = DefaultContainerID
	}
	r := renderer[T]{t: t, p: p, opts: opts}

	attrs := []gomponents.Node{
		html.ID(opts.ID),
		html.Class("data-table"),
		hx.Target("#" + opts.ID),
		hx.Swap("outerHTML"),
		gomponents.Attr("hx-sync", "this:replace"),
		html.Data("mode", t.Mode().String()),
	}
	if t.Mode() == ModeLoading && opts.LazyURL != "" {
		attrs = append(attrs, hx.Get(opts.LazyURL), hx.Trigger("load"), gomponents.Attr("hx-push-url", "false"))
	} else {
		attrs = append(attrs, gomponents.Attr("hx-push-url", "true"))
	}

	if t.Mode() == ModeError {
		return html.Div(gomponents.Group(attrs), r.errorPanel())
	}
	return html.Div(gomponents.Group(attrs),
		r.heading(),
		r.toolbar(),
		html.Div(html.Class("table-wrapper"),
			html.Table(r.head(), r.body()),
		),
		gomponents.If(!opts.HidePagination, r.pagination()),
	)
}

type renderer[T any] struct {
	t    *Table[T]
	p    *Pager
	opts RenderOptions
}

func (r renderer[T]) bulk() bool { return len(r.t.toolbar.BulkActions()) > 0 }

func (r renderer[T]) bulkFormID() string { return r.opts.ID + "-bulk" }

func (r renderer[T]) heading() gomponents.Node {
	if r.opts.Title == "" {
		return nil
	}
	subtitle := r.opts.Subtitle
	if subtitle == "" {
		subtitle = "Here's a list of your " + r.opts.Title + "!"
	}
	return html.Header(html.Class("data-table-header"),
		html.H2(gomponents.Text(r.opts.Title)),
		html.P(html.Class("muted"), gomponents.Text(subtitle)),
	)
}

func (r renderer[T]) errorPanel() gomponents.Node {
	return html.Div(html.Class("error-panel"), html.Role("alert"),
		html.H3(gomponents.Text("Something went wrong")),
		html.P(gomponents.Text("There was an error loading the data.")),
		html.A(html.Class("button"), html.Href(r.p.Location()), hx.Get(r.p.Location()),
			gomponents.Text("Try Again")),
	)
}

func (r renderer[T]) toolbar() gomponents.Node {
	tb := r.t.toolbar
	if !tb.Visible() {
		return nil
	}
	left := []gomponents.Node{html.Class("toolbar-left")}
	if tb.SearchEnabled() {
		left = append(left, r.searchForm())
	}
	for _, fc := range tb.Facets() {
		left = append(left, r.facetForm(fc))
	}
	if r.bulk() {
		left = append(left, r.bulkForm())
	}
	if tb.ResetVisible() {
		left = append(left, r.resetLink())
	}

	right := []gomponents.Node{html.Class("toolbar-right")}
	if tb.ViewOptions() {
		right = append(right, r.viewOptions())
	}
	if cb := tb.CreateButton(); cb != nil {
		right = append(right, html.A(html.Class("button primary"), html.Href(cb.Href), gomponents.Text(cb.Label)))
	}

	return html.Div(html.Class("toolbar"), html.Div(left...), html.Div(right...))
}

func (r renderer[T]) searchForm() gomponents.Node {
	return html.Form(html.Class("search"), html.Method("get"), html.Action(r.p.Path()),
		gomponents.Group(hiddenInputs(r.p.query, ParamSearch, ParamPage, ParamSelected)),
		html.Input(html.Type("search"), html.Name(ParamSearch),
			html.Value(r.t.toolbar.SearchTerm()),
			html.Placeholder(r.t.toolbar.Placeholder()),
			html.Aria("label", "Search"),
			hx.Get(r.p.Path()),
			hx.Trigger("search"),
			hx.Include("closest form"),
		),
	)
}

func (r renderer[T]) facetForm(fc FilterableColumn) gomponents.Node {
	active := r.t.FilterValues(fc.ID)
	inputType := "radio"
	if fc.Multi {
		inputType = "checkbox"
	}
	options := make([]gomponents.Node, 0, len(fc.Options)+1)
	if !fc.Multi {
		options = append(options, facetOption(inputType, fc.ID, FilterOption{Label: "All"}, len(active) == 0))
	}
	for _, opt := range fc.Options {
		options = append(options, facetOption(inputType, fc.ID, opt, slices.Contains(active, opt.Value)))
	}
	return html.Form(html.Class("facet"), html.Method("get"), html.Action(r.p.Path()),
		hx.Get(r.p.Path()), hx.Trigger("change"),
		gomponents.Group(hiddenInputs(r.p.query, fc.ID, ParamPage, ParamSelected)),
		html.Details(
			html.Summary(gomponents.Text(fc.Title),
				gomponents.If(len(active) > 0, html.Span(html.Class("badge"), gomponents.Text(strconv.Itoa(len(active)))))),
			html.Div(html.Class("facet-options"), gomponents.Group(options)),
			gomponents.El("noscript", html.Button(html.Type("submit"), gomponents.Text("Apply"))),
		),
	)
}

func facetOption(inputType, name string, opt FilterOption, checked bool) gomponents.Node {
	return html.Label(
		html.Input(html.Type(inputType), html.Name(name), html.Value(opt.Value), gomponents.If(checked, html.Checked())),
		gomponents.Text(opt.Label),
	)
}

func (r renderer[T]) bulkForm() gomponents.Node {
	tb := r.t.toolbar
	enabled := tb.BulkEnabled()
	buttons := make([]gomponents.Node, 0, len(tb.BulkActions()))
	for _, a := range tb.BulkActions() {
		buttons = append(buttons, html.Button(html.Type("submit"), html.Name("action"), html.Value(a.Label),
			html.Class(strings.TrimSpace("button "+a.Variant)),
			gomponents.If(!enabled, html.Disabled()),
			gomponents.If(a.Confirm != "", gomponents.Attr("onclick", "return confirm("+jsString(a.Confirm)+")")),
			gomponents.Text(a.Label),
		))
	}
	back := r.p.HrefValues(func(q url.Values) { q.Del(ParamSelected) })
	return html.Form(html.ID(r.bulkFormID()), html.Class("bulk"), html.Method("post"), html.Action(r.opts.BulkURL),
		html.Input(html.Type("hidden"), html.Name("return"), html.Value(back)),
		html.Span(html.Class("muted"), gomponents.Textf("%d selected", len(r.t.selection))),
		gomponents.Group(buttons),
	)
}

func (r renderer[T]) resetLink() gomponents.Node {
	href := r.p.HrefValues(func(q url.Values) {
		q.Del(ParamSearch)
		q.Del(ParamSelected)
		for _, fc := range r.t.toolbar.Facets() {
			q.Del(fc.ID)
		}
		q.Set(ParamPage, "1")
	})
	return html.A(html.Class("button ghost"), html.Href(href), hx.Get(href), gomponents.Text("Reset"))
}

func (r renderer[T]) viewOptions() gomponents.Node {
	hidden := r.t.HiddenColumns()
	items := []gomponents.Node{}
	for _, c := range r.t.columns {
		if !c.Hideable {
			continue
		}
		next := slices.DeleteFunc(slices.Clone(hidden), func(id string) bool { return id == c.ID })
		visible := r.t.IsColumnVisible(c.ID)
		if visible {
			next = append(next, c.ID)
		}
		href := r.p.HrefWith(map[string]string{ParamHide: strings.Join(next, ",")})
		items = append(items, html.Li(html.A(html.Href(href), hx.Get(href),
			html.Role("menuitemcheckbox"), html.Aria("checked", strconv.FormatBool(visible)),
			gomponents.Text(columnTitle(c.Column)),
		)))
	}
	return html.Details(html.Class("view-options"),
		html.Summary(gomponents.Text("View")),
		html.Ul(items...),
	)
}

func (r renderer[T]) head() gomponents.Node {
	cells := []gomponents.Node{}
	if r.bulk() {
		cells = append(cells, html.Th(html.Class("select"), r.selectAll()))
	}
	for _, c := range r.t.visibleColumns() {
		cells = append(cells, r.headerCell(c))
	}
	return html.THead(html.Tr(cells...))
}

func (r renderer[T]) selectAll() gomponents.Node {
	rows := r.t.Rows()
	keys := make([]string, 0, len(rows))
	all := len(rows) > 0
	for _, row := range rows {
		keys = append(keys, row.Key)
		all = all && row.Selected
	}
	if all {
		keys = nil
	}
	href := r.selectionHref(keys)
	return html.Input(html.Type("checkbox"), html.Aria("label", "Select all"),
		gomponents.If(all, html.Checked()),
		gomponents.If(len(rows) == 0 || r.t.Mode() != ModeData, html.Disabled()),
		hx.Get(href), hx.Trigger("change"), gomponents.Attr("hx-push-url", "false"),
	)
}

func (r renderer[T]) selectionHref(keys []string) string {
	return r.p.HrefValues(func(q url.Values) {
		q.Del(ParamSelected)
		for _, key := range keys {
			q.Add(ParamSelected, key)
		}
	})
}

func (r renderer[T]) headerCell(c column[T]) gomponents.Node {
	title := columnTitle(c.Column)
	if !c.Sortable || c.value == nil {
		return html.Th(classOf(c.Class), gomponents.Text(c.Header))
	}
	sorted, desc := r.t.SortDirection(c.ID)
	ariaSort, arrow := "none", "↕"
	if sorted && desc {
		ariaSort, arrow = "descending", "↓"
	} else if sorted {
		ariaSort, arrow = "ascending", "↑"
	}
	href := r.p.HrefWith(map[string]string{ParamSort: r.t.NextSorting(c.ID).String()})
	return html.Th(classOf(c.Class), html.Aria("sort", ariaSort),
		html.A(html.Class("sort"), html.Href(href), hx.Get(href),
			gomponents.Text(title), html.Span(html.Class("arrow"), gomponents.Text(arrow))),
	)
}

// width is the number of header cells: the visible columns plus the select
// column when bulk actions exist. Placeholder rows are laid out to match it.
func (r renderer[T]) width() int {
	n := len(r.t.visibleColumns())
	if r.bulk() {
		n++
	}
	return n
}

func (r renderer[T]) body() gomponents.Node {
	extra := 0
	if r.bulk() {
		extra = 1
	}
	switch r.t.Mode() {
	case ModeLoading:
		rows := make([]gomponents.Node, 0, r.t.SkeletonRows())
		for range r.t.Body() {
			cells := make([]gomponents.Node, r.width())
			for i := range cells {
				cells[i] = html.Td(html.Class("skeleton"), html.Span(html.Class("skeleton-bar")))
			}
			rows = append(rows, html.Tr(html.Class("placeholder"), gomponents.Group(cells)))
		}
		return html.TBody(rows...)
	case ModeEmpty:
		cell := r.t.Body()[0].Cells[0]
		return html.TBody(html.Tr(html.Class("placeholder"),
			html.Td(html.Class("empty"), html.ColSpan(strconv.Itoa(max(r.width(), 1))), gomponents.Text(cell.Text)),
		))
	}

	visible := r.t.visibleColumns()
	rows := r.t.Rows()
	out := make([]gomponents.Node, 0, len(rows))
	for _, row := range rows {
		cells := make([]gomponents.Node, 0, len(visible)+extra)
		if r.bulk() {
			cells = append(cells, html.Td(html.Class("select"), r.rowCheckbox(row)))
		}
		for _, c := range visible {
			var content gomponents.Node
			if c.Cell != nil {
				content = c.Cell(row.Original)
			} else {
				content = gomponents.Text(c.text(row.Original))
			}
			cells = append(cells, html.Td(classOf(c.Class), content))
		}
		var classes []string
		attrs := []gomponents.Node{html.Data("key", row.Key)}
		if row.Selected {
			classes = append(classes, "selected")
			attrs = append(attrs, html.Aria("selected", "true"))
		}
		if r.t.opts.RowHref != nil {
			classes = append(classes, "clickable")
			attrs = append(attrs, html.Data("href", r.t.opts.RowHref(row.Original)),
				gomponents.Attr("onclick", "if(!event.target.closest('a,button,input,summary,form'))location.href=this.dataset.href"))
		}
		if len(classes) > 0 {
			attrs = append(attrs, html.Class(strings.Join(classes, " ")))
		}
		out = append(out, html.Tr(gomponents.Group(attrs), gomponents.Group(cells)))
	}
	return html.TBody(out...)
}

func (r renderer[T]) rowCheckbox(row Row[T]) gomponents.Node {
	keys := r.t.SelectedKeys()
	if row.Selected {
		keys = slices.DeleteFunc(keys, func(k string) bool { return k == row.Key })
	} else {
		keys = append(keys, row.Key)
	}
	href := r.selectionHref(keys)
	return html.Input(html.Type("checkbox"), html.Name(ParamSelected), html.Value(row.Key),
		gomponents.Attr("form", r.bulkFormID()),
		html.Aria("label", "Select row"),
		gomponents.If(row.Selected, html.Checked()),
		hx.Get(href), hx.Trigger("change"), gomponents.Attr("hx-push-url", "false"),
	)
}

func (r renderer[T]) pagination() gomponents.Node { return PageNav(r.p) }

// PageNav is the page navigation for p on its own, for paginated views that
// are not tables.
func PageNav(p *Pager) gomponents.Node {
	items := []gomponents.Node{pageLink("Previous", p.Href(p.Current()-1), !p.CanPrevious(), false)}
	for _, m := range p.Window() {
		if m.Ellipsis {
			items = append(items, html.Li(html.Span(html.Class("ellipsis"), html.Aria("hidden", "true"), gomponents.Text("…"))))
			continue
		}
		items = append(items, pageLink(strconv.Itoa(m.Page), p.Href(m.Page), false, m.Page == p.Current()))
	}
	items = append(items, pageLink("Next", p.Href(p.Current()+1), !p.CanNext(), false))

	return html.Nav(html.Class("pagination"), html.Aria("label", "pagination"),
		html.Span(html.Class("muted"),
			gomponents.Textf("Page %d of %d · %d total", p.Current(), p.TotalPages(), p.Meta().Total)),
		html.Ul(items...),
	)
}

func pageLink(label, href string, disabled, current bool) gomponents.Node {
	if disabled {
		return html.Li(html.Span(html.Class("page disabled"), html.Aria("disabled", "true"), gomponents.Text(label)))
	}
	if current {
		return html.Li(html.Span(html.Class("page active"), html.Aria("current", "page"), gomponents.Text(label)))
	}
	return html.Li(html.A(html.Class("page"), html.Href(href), hx.Get(href), gomponents.Text(label)))
}

func hiddenInputs(q url.Values, skip ...string) []gomponents.Node {
	keys := make([]string, 0, len(q))
	for key := range q {
		if !slices.Contains(skip, key) {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)
	var out []gomponents.Node
	for _, key := range keys {
		for _, value := range q[key] {
			out = append(out, html.Input(html.Type("hidden"), html.Name(key), html.Value(value)))
		}
	}
	return out
}

func columnTitle[T any](c Column[T]) string {
	if c.Header != "" {
		return c.Header
	}
	return c.ID
}

func classOf(class string) gomponents.Node {
	if class == "" {
		return nil
	}
	return html.Class(class)
}

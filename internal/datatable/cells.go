package datatable

import (
	"strings"
	"unicode/utf8"

	"maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

// RowAction is one entry of a row's action menu. Actions post a form to URL
// so they work without scripts.
type RowAction struct {
	Label   string
	URL     string
	Class   string
	Confirm string
	Fields  map[string]string
}

// ActionsColumn adds a trailing column with a per-row action menu.
func ActionsColumn[T any](id string, actions func(T) []RowAction) Column[T] {
	return Column[T]{
		ID:    id,
		Class: "actions",
		Cell: func(row T) gomponents.Node {
			list := actions(row)
			if len(list) == 0 {
				return nil
			}
			items := make([]gomponents.Node, 0, len(list))
			for _, a := range list {
				items = append(items, html.Li(rowActionForm(a)))
			}
			return html.Details(html.Class("row-actions"),
				html.Summary(html.Aria("label", "Open menu"), gomponents.Text("⋯")),
				html.Ul(items...),
			)
		},
	}
}

func rowActionForm(a RowAction) gomponents.Node {
	fields := make([]gomponents.Node, 0, len(a.Fields))
	for name, value := range a.Fields {
		fields = append(fields, html.Input(html.Type("hidden"), html.Name(name), html.Value(value)))
	}
	return html.Form(html.Method("post"), html.Action(a.URL),
		gomponents.Group(fields),
		html.Button(html.Type("submit"), html.Class(strings.TrimSpace("link "+a.Class)),
			gomponents.If(a.Confirm != "", gomponents.Attr("onclick", "return confirm("+jsString(a.Confirm)+")")),
			gomponents.Text(a.Label),
		),
	)
}

// FieldCopy shows value, cut to limit characters when limit > 0, next to a
// button that copies the full value.
func FieldCopy(value string, limit int) gomponents.Node {
	return html.Span(html.Class("field-copy"),
		html.Code(html.Title(value), gomponents.Text(Truncate(value, limit))),
		html.Button(html.Type("button"), html.Class("copy"),
			html.Data("copy", value),
			gomponents.Attr("onclick", "navigator.clipboard.writeText(this.dataset.copy)"),
			html.Aria("label", "Copy"),
			gomponents.Text("Copy"),
		),
	)
}

// UserInfo shows an avatar with initials, the user's name and email.
func UserInfo(name, email, image string, hideName bool) gomponents.Node {
	avatar := html.Span(html.Class("avatar"), gomponents.Text(Initials(name)))
	if image != "" {
		avatar = html.Img(html.Class("avatar"), html.Src(image), html.Alt(name))
	}
	return html.Div(html.Class("user-info"),
		avatar,
		html.Div(
			gomponents.If(!hideName, html.Strong(html.Title(name), gomponents.Text(Truncate(name, 20)))),
			html.Small(html.Title(email), gomponents.Text(Truncate(email, 20))),
		),
	)
}

// Truncate cuts s to limit runes followed by "...". A non-positive limit
// leaves s unchanged.
func Truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + "..."
}

// Initials returns up to two upper-case initials of name.
func Initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteString(strings.ToUpper(string(r)))
		if utf8.RuneCountInString(b.String()) >= 2 {
			break
		}
	}
	if b.Len() == 0 {
		return "?"
	}
	return b.String()
}

func jsString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)
	return "'" + r.Replace(s) + "'"
}

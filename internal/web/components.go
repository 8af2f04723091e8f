package web

import (
	"strconv"

	"maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

// Money formats an amount in the store currency.
func Money(amount float64) string {
	return "৳" + strconv.FormatFloat(amount, 'f', 2, 64)
}

// Field is a labelled form control.
func Field(label, name string, control gomponents.Node) gomponents.Node {
	return html.Div(html.Class("field"),
		html.Label(html.For(name), gomponents.Text(label)),
		control,
	)
}

// TextInput is a text-like input with id and name set to name.
func TextInput(inputType, name, value string, extra ...gomponents.Node) gomponents.Node {
	return html.Input(html.Type(inputType), html.ID(name), html.Name(name), html.Value(value), gomponents.Group(extra))
}

// StatCard is one figure of a dashboard overview.
func StatCard(label, value string) gomponents.Node {
	return html.Div(html.Class("stat-card"),
		html.Span(html.Class("muted"), gomponents.Text(label)),
		html.Strong(gomponents.Text(value)),
	)
}

// Badge is a small status label.
func Badge(text, variant string) gomponents.Node {
	return html.Span(html.Class("badge "+variant), gomponents.Text(text))
}

// PostButton is a form with a single submit button.
func PostButton(action, label, class string, fields ...gomponents.Node) gomponents.Node {
	return html.Form(html.Method("post"), html.Action(action), html.Class("inline"),
		gomponents.Group(fields),
		html.Button(html.Type("submit"), html.Class(class), gomponents.Text(label)),
	)
}

// Hidden is a hidden form input.
func Hidden(name, value string) gomponents.Node {
	return html.Input(html.Type("hidden"), html.Name(name), html.Value(value))
}

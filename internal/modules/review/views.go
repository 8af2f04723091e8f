package review

import (
	"strconv"
	"strings"

	"maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/georgemunganga/pharmacy-storefront/internal/datatable"
	"github.com/georgemunganga/pharmacy-storefront/internal/web"
)

// Stars renders a 1..5 rating as filled and empty stars.
func Stars(rating int) string {
	rating = min(max(rating, 0), 5)
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

// Section lists a medicine's reviews with the viewer's write controls.
func Section(medicineID string, reviews []Review, failed bool, viewer *web.Viewer) gomponents.Node {
	returnTo := "/medicine/" + medicineID + "#reviews"
	var list gomponents.Node
	switch {
	case failed:
		list = html.P(html.Class("muted"), gomponents.Text("Reviews could not be loaded."))
	case len(reviews) == 0:
		list = html.P(html.Class("muted"), gomponents.Text("No reviews yet"))
	default:
		items := make([]gomponents.Node, len(reviews))
		for i, r := range reviews {
			items[i] = item(r, viewer, returnTo)
		}
		list = html.Div(html.Class("review-list"), gomponents.Group(items))
	}

	return html.Section(html.ID("reviews"), html.Class("reviews"),
		html.H2(gomponents.Text("Reviews")),
		gomponents.If(len(reviews) > 0, html.P(html.Class("muted"),
			gomponents.Textf("%.1f out of 5 · %d reviews", Average(reviews), len(reviews)))),
		list,
		gomponents.If(viewer.Is(web.RoleCustomer), form("/medicine/"+medicineID+"/reviews", "Write a Review", Input{Rating: 5}, returnTo)),
	)
}

func item(r Review, viewer *web.Viewer, returnTo string) gomponents.Node {
	name := "Anonymous"
	if r.User != nil && r.User.Name != "" {
		name = r.User.Name
	}
	own := viewer != nil && viewer.ID == r.UserID
	return html.Article(html.Class("review"),
		html.Header(
			html.Strong(gomponents.Text(name)),
			html.Span(html.Class("muted"), gomponents.Text(datatable.FormatValue(r.CreatedAt))),
			html.Span(html.Class("stars"), html.Aria("label", strconv.Itoa(r.Rating)+" out of 5"), gomponents.Text(Stars(r.Rating))),
		),
		gomponents.If(r.Comment != "", html.P(gomponents.Text(r.Comment))),
		gomponents.If(own, html.Div(html.Class("review-actions"),
			html.Details(
				html.Summary(gomponents.Text("Edit")),
				form("/reviews/"+r.ID+"/update", "Update Review", Input{Rating: r.Rating, Comment: r.Comment}, returnTo),
			),
			web.PostButton("/reviews/"+r.ID+"/delete", "Delete", "link danger", web.Hidden("return", returnTo)),
		)),
	)
}

func form(action, submit string, in Input, returnTo string) gomponents.Node {
	opts := make([]gomponents.Node, 0, 5)
	for n := 5; n >= 1; n-- {
		opts = append(opts, html.Option(html.Value(strconv.Itoa(n)), gomponents.If(n == in.Rating, html.Selected()),
			gomponents.Text(Stars(n))))
	}
	return html.Form(html.Class("review-form"), html.Method("post"), html.Action(action),
		web.Hidden("return", returnTo),
		web.Field("Rating", "rating", html.Select(html.ID("rating"), html.Name("rating"), gomponents.Group(opts))),
		web.Field("Comment", "comment", html.Textarea(html.ID("comment"), html.Name("comment"), html.Rows("3"),
			html.MaxLength(strconv.Itoa(maxComment)), gomponents.Text(in.Comment))),
		html.Button(html.Type("submit"), html.Class("button primary"), gomponents.Text(submit)),
	)
}

package user

import (
	"maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/georgemunganga/pharmacy-storefront/internal/datatable"
	"github.com/georgemunganga/pharmacy-storefront/internal/web"
)

const tableID = "users-table"

var (
	roleOptions = []datatable.FilterOption{
		{Label: "Admin", Value: web.RoleAdmin},
		{Label: "Seller", Value: web.RoleSeller},
		{Label: "Customer", Value: web.RoleCustomer},
	}
	statusOptions = []datatable.FilterOption{
		{Label: "Active", Value: StatusActive},
		{Label: "Banned", Value: StatusBanned},
	}
)

func statusBadge(u User) gomponents.Node {
	if u.Banned() {
		return web.Badge(StatusBanned, "danger")
	}
	return web.Badge(StatusActive, "success")
}

func columns(actorID, returnTo string) []datatable.Column[User] {
	return []datatable.Column[User]{
		{
			ID:          "user",
			Header:      "User",
			AccessorKey: "name",
			Sortable:    true,
			Cell:        func(u User) gomponents.Node { return datatable.UserInfo(u.Name, u.Email, u.Image, false) },
		},
		{AccessorKey: "role", Header: "Role", Sortable: true, Cell: func(u User) gomponents.Node { return web.Badge(u.Role, "outline") }},
		{AccessorKey: "status", Header: "Status", Sortable: true, Cell: statusBadge},
		{AccessorKey: "createdAt", Header: "Joined", Sortable: true, Hideable: true},
		datatable.ActionsColumn("actions", func(u User) []datatable.RowAction {
			if u.ID == actorID {
				return nil
			}
			toggle := datatable.RowAction{
				Label:  "Ban",
				URL:    "/admin-dashboard/users/" + u.ID + "/status",
				Class:  "danger",
				Fields: map[string]string{"status": StatusBanned, "return": returnTo},
			}
			if u.Banned() {
				toggle.Label, toggle.Class = "Activate", ""
				toggle.Fields["status"] = StatusActive
			}
			return []datatable.RowAction{toggle, {
				Label:   "Delete",
				URL:     "/admin-dashboard/users/" + u.ID + "/delete",
				Class:   "danger",
				Confirm: "Delete " + u.Email + "? This cannot be undone.",
				Fields:  map[string]string{"return": returnTo},
			}}
		}),
	}
}

type profileView struct {
	user    User
	errs    map[string]string
}

func profilePage(v profileView) gomponents.Node {
	return html.Section(
		html.H1(gomponents.Text("Profile")),
		html.Div(html.Class("card profile"),
			datatable.UserInfo(v.user.Name, v.user.Email, v.user.Image, false),
			html.P(web.Badge(v.user.Role, "outline")),
		),
		html.Form(html.Class("card"), html.Method("post"), html.Action("/dashboard/profile"),
			gomponents.If(v.errs["form"] != "", html.P(html.Class("flash error"), gomponents.Text(v.errs["form"]))),
			profileField(v, "Name", "name", web.TextInput("text", "name", v.user.Name, html.Required())),
			profileField(v, "Image URL", "image", web.TextInput("url", "image", v.user.Image)),
			web.Field("Email", "email", web.TextInput("email", "email", v.user.Email, html.Disabled())),
			html.Div(html.Class("form-actions"),
				html.Button(html.Type("submit"), html.Class("button primary"), gomponents.Text("Save Changes")),
			),
		),
	)
}

func profileField(v profileView, label, name string, control gomponents.Node) gomponents.Node {
	msg := v.errs[name]
	return html.Div(html.Class("field"),
		html.Label(html.For(name), gomponents.Text(label)),
		control,
		gomponents.If(msg != "", html.P(html.Class("field-error"), gomponents.Text(msg))),
	)
}

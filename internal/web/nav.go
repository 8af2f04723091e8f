package web

import (
	"net/http"
	"net/url"
	"strings"
)

// Dashboard navigation per role.
var (
	CustomerNav = []NavLink{
		{Label: "Overview", Href: "/dashboard"},
		{Label: "My Orders", Href: "/dashboard/orders"},
		{Label: "Profile", Href: "/dashboard/profile"},
	}
	SellerNav = []NavLink{
		{Label: "Overview", Href: "/seller-dashboard"},
		{Label: "Products", Href: "/seller-dashboard/products"},
		{Label: "Add Product", Href: "/seller-dashboard/add-product"},
		{Label: "Orders", Href: "/seller-dashboard/orders"},
	}
	AdminNav = []NavLink{
		{Label: "Overview", Href: "/admin-dashboard"},
		{Label: "Users", Href: "/admin-dashboard/users"},
		{Label: "Orders", Href: "/admin-dashboard/orders"},
		{Label: "Categories", Href: "/admin-dashboard/categories"},
	}
)

// LoginTarget is LoginURL with a redirect back to target.
func LoginTarget(target string) string {
	sep := "?"
	if strings.Contains(LoginURL, "?") {
		sep = "&"
	}
	return LoginURL + sep + "redirect=" + url.QueryEscape(target)
}

// RedirectLogin sends the browser to sign in and come back to this page.
func RedirectLogin(w http.ResponseWriter, r *http.Request) {
	Redirect(w, r, LoginTarget(r.URL.RequestURI()))
}

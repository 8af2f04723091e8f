package web

import (
	"bytes"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"maragu.dev/gomponents"

	"github.com/georgemunganga/pharmacy-storefront/internal/logger"
)

// IsHTMX reports whether r was issued by htmx for a partial swap.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true" && r.Header.Get("HX-Boosted") != "true"
}

// HTML renders node with the given status. Rendering happens before the
// header is written so a failure still produces a 500.
func HTML(w http.ResponseWriter, status int, node gomponents.Node) {
	var buf bytes.Buffer
	if err := node.Render(&buf); err != nil {
		logger.Log.WithError(err).Error("render failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Page renders a full document, or only fragment when htmx asks for a
// partial and a fragment is given.
func Page(w http.ResponseWriter, r *http.Request, status int, p Layout, fragment gomponents.Node) {
	if fragment != nil && IsHTMX(r) {
		w.Header().Set("Vary", "HX-Request")
		HTML(w, status, fragment)
		return
	}
	if p.Viewer == nil {
		p.Viewer = ViewerFrom(r.Context())
	}
	if p.Flash == nil {
		p.Flash = PopFlash(w, r)
	}
	p.Path = r.URL.Path
	HTML(w, status, Shell(p))
}

// Redirect sends the browser to target. htmx requests get HX-Location so
// the swap follows the redirect instead of embedding the next page.
func Redirect(w http.ResponseWriter, r *http.Request, target string) {
	if IsHTMX(r) {
		w.Header().Set("HX-Location", target)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// Back redirects to the form's "return" field when it is a local path, or
// to fallback.
func Back(w http.ResponseWriter, r *http.Request, fallback string) {
	target := r.FormValue("return")
	if !LocalPath(target) {
		target = fallback
	}
	Redirect(w, r, target)
}

// LocalPath reports whether target stays on this site. Browsers treat a
// backslash like a slash and drop tabs and newlines, so "/\host" and
// "/\t/host" lead off-site and are refused.
func LocalPath(target string) bool {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return false
	}
	if strings.ContainsAny(target, "\\\t\r\n") {
		return false
	}
	u, err := url.Parse(target)
	return err == nil && u.Scheme == "" && u.Host == "" && u.User == nil
}

// Error renders an error page with a short message.
func Error(w http.ResponseWriter, r *http.Request, status int, message string) {
	Page(w, r, status, Layout{
		Title: http.StatusText(status),
		Body:  ErrorBody(status, message),
	}, nil)
}

// FormInt reads an integer form value, or fallback when missing or invalid.
func FormInt(r *http.Request, name string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(r.FormValue(name)))
	if err != nil {
		return fallback
	}
	return n
}

// FormFloat reads a float form value, or fallback when missing or invalid.
func FormFloat(r *http.Request, name string, fallback float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue(name)), 64)
	if err != nil {
		return fallback
	}
	return f
}

// ReturnQuery parses the query of the form's "return" location. Bulk and
// row action forms carry it so the posted page can be reloaded.
func ReturnQuery(r *http.Request) url.Values {
	u, err := url.Parse(r.FormValue("return"))
	if err != nil {
		return url.Values{}
	}
	return u.Query()
}

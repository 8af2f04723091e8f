package auth

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/georgemunganga/pharmacy-storefront/internal/backend"
	"github.com/georgemunganga/pharmacy-storefront/internal/logger"
	"github.com/georgemunganga/pharmacy-storefront/internal/web"
)

// CacheCookie holds the signed copy of the last session lookup.
const CacheCookie = "ms_session"

// Middleware resolves sessions and guards role-scoped routes.
type Middleware struct {
	service Service
	ttl     time.Duration
}

func NewMiddleware(service Service, ttl time.Duration) *Middleware {
	return &Middleware{service: service, ttl: ttl}
}

// LoadSession attaches the browser's credentials and, when signed in, the
// user to the request context. Auth service failures degrade to anonymous.
func (m *Middleware) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookies := authCookies(r)
		ctx := backend.WithCredentials(r.Context(), backend.Credentials{Cookie: cookies})

		var cached string
		if c, err := r.Cookie(CacheCookie); err == nil {
			cached = c.Value
		}

		user, fresh, err := m.service.Current(ctx, cookies, cached)
		if err != nil {
			logger.Log.WithError(err).WithField("path", r.URL.Path).Warn("session lookup failed")
		}
		switch {
		case fresh != "":
			http.SetCookie(w, &http.Cookie{
				Name:     CacheCookie,
				Value:    fresh,
				Path:     "/",
				MaxAge:   int(m.ttl.Seconds()),
				HttpOnly: true,
				Secure:   secureRequest(r),
				SameSite: http.SameSiteLaxMode,
			})
		case user == nil && cached != "":
			ExpireCache(w)
		}

		if user != nil {
			ctx = backend.WithCredentials(ctx, backend.Credentials{Cookie: cookies, Token: user.SessionToken})
			ctx = SetUserContext(ctx, user)
			ctx = web.WithViewer(ctx, user.Viewer())
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole sends anonymous visitors to the login page and answers 403 to
// users holding none of roles.
func (m *Middleware) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r.Context())
			if user == nil {
				web.RedirectLogin(w, r)
				return
			}
			if !slices.Contains(roles, user.Role) {
				web.Error(w, r, http.StatusForbidden, "You do not have access to this page.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ExpireCache drops the session cache cookie.
func ExpireCache(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: CacheCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
}

// secureRequest reports whether the browser reached us over https, directly
// or through a proxy that says so.
func secureRequest(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// authCookies is the request's Cookie header without the storefront's own
// cookies.
func authCookies(r *http.Request) string {
	var parts []string
	for _, c := range r.Cookies() {
		if c.Name == CacheCookie || c.Name == "flash" {
			continue
		}
		parts = append(parts, c.Name+"="+c.Value)
	}
	return strings.Join(parts, "; ")
}

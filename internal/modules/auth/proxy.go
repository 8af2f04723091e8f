package auth

import (
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/georgemunganga/pharmacy-storefront/internal/logger"
)

// NewProxy forwards browser auth calls to the auth service mounted at
// target. Any response that changes auth cookies also expires the session
// cache so the next page load sees the new session.
func NewProxy(target *url.URL) http.Handler {
	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
			pr.Out.Host = target.Host
		},
		ModifyResponse: func(resp *http.Response) error {
			if len(resp.Header.Values("Set-Cookie")) > 0 {
				expired := &http.Cookie{Name: CacheCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true}
				resp.Header.Add("Set-Cookie", expired.String())
			}
			return nil
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Log.WithError(err).WithField("path", r.URL.Path).Error("auth proxy failed")
			http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		},
	}
}

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/pharmacy-storefront/internal/logger"
	"github.com/georgemunganga/pharmacy-storefront/internal/web"
)

type Handler struct {
	service Service
	proxy   http.Handler
}

func NewHandler(service Service, proxy http.Handler) *Handler {
	return &Handler{service: service, proxy: proxy}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Handle("/api/auth/*", http.StripPrefix("/api/auth", h.proxy))
	r.Post("/logout", h.Logout)
}

// Logout revokes the session at the auth service and drops the cache.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if UserFromContext(r.Context()) != nil {
		if err := h.service.SignOut(r.Context()); err != nil {
			logger.Log.WithError(err).Warn("sign out failed")
		}
	}
	ExpireCache(w)
	web.SetFlash(w, web.FlashSuccess, "You have been signed out.")
	web.Redirect(w, r, "/")
}

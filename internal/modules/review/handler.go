package review

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/pharmacy-storefront/internal/backend"
	"github.com/georgemunganga/pharmacy-storefront/internal/logger"
	"github.com/georgemunganga/pharmacy-storefront/internal/modules/auth"
	"github.com/georgemunganga/pharmacy-storefront/internal/web"
)

// Handler accepts review writes from customers. Reviews are shown on the
// medicine page.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router, mw *auth.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireRole(web.RoleCustomer))
		r.Post("/medicine/{id}/reviews", h.create)
		r.Post("/reviews/{id}/update", h.update)
		r.Post("/reviews/{id}/delete", h.delete)
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	_, err := h.service.Create(r.Context(), id, inputFrom(r))
	h.done(w, r, err, "Thanks for your review!", "/medicine/"+id)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	_, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), inputFrom(r))
	h.done(w, r, err, "Review updated.", "/shop")
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	h.done(w, r, err, "Review deleted.", "/shop")
}

func (h *Handler) done(w http.ResponseWriter, r *http.Request, err error, success, fallback string) {
	switch {
	case err == nil:
		web.SetFlash(w, web.FlashSuccess, success)
	case errors.Is(err, ErrInvalidRating):
		web.SetFlash(w, web.FlashError, "Choose a rating from 1 to 5.")
	default:
		logger.Log.WithError(err).WithField("path", r.URL.Path).Warn("review write failed")
		web.SetFlash(w, web.FlashError, backend.Message(err, "Could not save your review."))
	}
	web.Back(w, r, fallback)
}

func inputFrom(r *http.Request) Input {
	return Input{Rating: web.FormInt(r, "rating", 0), Comment: r.FormValue("comment")}
}

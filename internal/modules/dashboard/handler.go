package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/pharmacy-storefront/internal/logger"
	"github.com/georgemunganga/pharmacy-storefront/internal/modules/auth"
	"github.com/georgemunganga/pharmacy-storefront/internal/modules/order"
	"github.com/georgemunganga/pharmacy-storefront/internal/web"
)

const recentLimit = 5

// Handler serves the overview page of each dashboard.
type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router, mw *auth.Middleware) {
	r.With(mw.RequireRole(web.RoleCustomer)).Get("/dashboard", h.customer)

	r.Group(func(r chi.Router) {
		r.Use(mw.RequireRole(web.RoleSeller))
		r.Get("/seller-dashboard", h.seller)
		r.Get("/seller-dashboard/recent-orders", h.sellerRecent)
	})

	r.With(mw.RequireRole(web.RoleAdmin)).Get("/admin-dashboard", h.admin)
}

func (h *Handler) customer(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Customer(r.Context())
	if err != nil {
		logger.Log.WithError(err).Warn("customer overview")
		stats = &CustomerStats{}
	}
	recent, rerr := h.service.RecentOrders(r.Context(), order.ScopeCustomer, recentLimit)
	if rerr != nil {
		logger.Log.WithError(rerr).Warn("recent orders")
	}
	table, terr := recentTable(recent, false, rerr != nil, "")
	if terr != nil {
		web.Error(w, r, http.StatusInternalServerError, "Could not build the overview.")
		return
	}
	body := overview("Dashboard", customerCards(*stats), err != nil, table, allOrders("/dashboard/orders"))
	web.Page(w, r, http.StatusOK, web.Layout{Title: "Dashboard", Sidebar: web.CustomerNav, Body: body}, nil)
}

func (h *Handler) seller(w http.ResponseWriter, r *http.Request) {
	var sellerID string
	if u := auth.UserFromContext(r.Context()); u != nil {
		sellerID = u.ID
	}
	stats, err := h.service.Seller(r.Context(), sellerID)
	if err != nil {
		logger.Log.WithError(err).Warn("seller overview")
		stats = &SellerStats{}
	}
	table, terr := recentTable(nil, true, false, "/seller-dashboard/recent-orders")
	if terr != nil {
		web.Error(w, r, http.StatusInternalServerError, "Could not build the overview.")
		return
	}
	body := overview("Seller Dashboard", sellerCards(*stats), err != nil, table, allOrders("/seller-dashboard/orders"))
	web.Page(w, r, http.StatusOK, web.Layout{Title: "Seller Dashboard", Sidebar: web.SellerNav, Body: body}, nil)
}

// sellerRecent is the lazily loaded recent orders table.
func (h *Handler) sellerRecent(w http.ResponseWriter, r *http.Request) {
	recent, err := h.service.RecentOrders(r.Context(), order.ScopeSeller, recentLimit)
	if err != nil {
		logger.Log.WithError(err).Warn("recent orders")
	}
	table, terr := recentTable(recent, true, err != nil, "")
	if terr != nil {
		web.Error(w, r, http.StatusInternalServerError, "Could not build the overview.")
		return
	}
	web.HTML(w, http.StatusOK, table)
}

func (h *Handler) admin(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Admin(r.Context())
	if err != nil {
		logger.Log.WithError(err).Warn("admin overview")
		stats = &AdminStats{}
	}
	body := overview("Admin Dashboard", adminCards(*stats), err != nil)
	web.Page(w, r, http.StatusOK, web.Layout{Title: "Admin Dashboard", Sidebar: web.AdminNav, Body: body}, nil)
}

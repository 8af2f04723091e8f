package order

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/pharmacy-storefront/internal/backend"
	"github.com/georgemunganga/pharmacy-storefront/internal/datatable"
	"github.com/georgemunganga/pharmacy-storefront/internal/logger"
	"github.com/georgemunganga/pharmacy-storefront/internal/modules/auth"
	"github.com/georgemunganga/pharmacy-storefront/internal/web"
)

// Handler exposes the order tables of every dashboard.
type Handler struct {
	service Service
	codec   datatable.QueryCodec
}

func NewHandler(service Service, codec datatable.QueryCodec) *Handler {
	codec.FilterKeys = []string{"status"}
	return &Handler{service: service, codec: codec}
}

func (h *Handler) RegisterRoutes(r chi.Router, mw *auth.Middleware) {
	r.With(mw.RequireRole(web.RoleCustomer)).Get("/dashboard/orders", h.customerOrders)

	r.Group(func(r chi.Router) {
		r.Use(mw.RequireRole(web.RoleSeller))
		r.Get("/seller-dashboard/orders", h.sellerOrders)
		r.Post("/seller-dashboard/orders/{id}/status", h.updateStatus)
	})

	r.Group(func(r chi.Router) {
		r.Use(mw.RequireRole(web.RoleAdmin))
		r.Get("/admin-dashboard/orders", h.adminOrders)
		r.Post("/admin-dashboard/orders/bulk", h.bulk)
		r.Post("/admin-dashboard/orders/{id}/advance", h.advance)
	})
}

func (h *Handler) customerOrders(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, ScopeCustomer, "My Orders", web.CustomerNav, datatable.RenderOptions{
		Title:    "orders",
		Subtitle: "Track the status of everything you have ordered.",
	})
}

func (h *Handler) sellerOrders(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, ScopeSeller, "Orders", web.SellerNav, datatable.RenderOptions{Title: "orders"})
}

func (h *Handler) adminOrders(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, ScopeAll, "Orders", web.AdminNav, datatable.RenderOptions{
		Title:   "orders",
		BulkURL: "/admin-dashboard/orders/bulk",
	})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, scope Scope, title string, nav []web.NavLink, opts datatable.RenderOptions) {
	q := h.codec.Decode(r.URL.Query())
	tbl, err := h.table(r, scope, q)
	if err != nil {
		web.Error(w, r, http.StatusInternalServerError, "Could not build the order table.")
		return
	}
	opts.ID = tableID
	node := datatable.Render(tbl, datatable.NewPager(tbl, tbl.Meta(), r.URL), opts)
	web.Page(w, r, http.StatusOK, web.Layout{Title: title, Sidebar: nav, Body: node}, node)
}

// table loads one page of orders in scope for q.
func (h *Handler) table(r *http.Request, scope Scope, q datatable.QueryState) (*datatable.Table[Order], error) {
	list, err := h.service.List(r.Context(), scope, q)
	if err != nil {
		logger.Log.WithError(err).WithField("scope", scope).Error("list orders")
	}

	opts := datatable.Options[Order]{
		Columns: columns(scope, r.URL.RequestURI()),
		RowKey:  func(o Order) string { return o.ID },
		Toolbar: datatable.ToolbarOptions[Order]{ShowViewOptions: true},
	}
	if scope == ScopeAll {
		opts.Toolbar.ServerSearch = true
		opts.Toolbar.SearchPlaceholder = "Search by customer..."
		opts.Toolbar.FilterableColumns = []datatable.FilterableColumn{
			{ID: "status", Title: "Status", Options: statusOptions(), Multi: true},
		}
		opts.Toolbar.BulkActions = []datatable.BulkAction[Order]{{
			Label:   "Next Status",
			Handler: func(ctx context.Context, rows []Order) error { return h.service.AdvanceMany(ctx, rows) },
		}}
	}
	tbl, terr := datatable.New(opts)
	if terr != nil {
		return nil, terr
	}

	meta := datatable.PaginationMeta{Page: q.Page, Limit: q.Limit}
	var data []Order
	if list != nil {
		data, meta = list.Data, list.Meta
	}
	tbl.SetProps(data, meta, false, err != nil)
	tbl.Restore(q)
	return tbl, nil
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	status := Status(r.FormValue("status"))
	_, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), status)
	h.statusChanged(w, r, err, "/seller-dashboard/orders")
}

func (h *Handler) advance(w http.ResponseWriter, r *http.Request) {
	_, err := h.service.Advance(r.Context(), chi.URLParam(r, "id"))
	h.statusChanged(w, r, err, "/admin-dashboard/orders")
}

func (h *Handler) statusChanged(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case err == nil:
		web.SetFlash(w, web.FlashSuccess, "Order status updated")
	case errors.Is(err, ErrInvalidTransition):
		web.SetFlash(w, web.FlashError, "That status change is not allowed.")
	case backend.IsNotFound(err):
		web.SetFlash(w, web.FlashError, "Order not found.")
	default:
		logger.Log.WithError(err).Warn("update order status")
		web.SetFlash(w, web.FlashError, backend.Message(err, "Failed to update order status"))
	}
	web.Back(w, r, fallback)
}

func (h *Handler) bulk(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		web.Error(w, r, http.StatusBadRequest, "Invalid form.")
		return
	}
	q := h.codec.Decode(web.ReturnQuery(r))
	q.Selected = r.PostForm[datatable.ParamSelected]

	tbl, err := h.table(r, ScopeAll, q)
	if err != nil {
		web.Error(w, r, http.StatusInternalServerError, "Could not build the order table.")
		return
	}
	n := len(tbl.SelectedKeys())
	err = tbl.Toolbar().InvokeBulk(r.Context(), r.PostForm.Get("action"))
	switch {
	case errors.Is(err, datatable.ErrEmptySelection):
		web.SetFlash(w, web.FlashError, "Select at least one order.")
	case err != nil:
		logger.Log.WithError(err).Warn("bulk advance orders")
		web.SetFlash(w, web.FlashError, "Some orders could not be updated.")
	default:
		web.SetFlash(w, web.FlashSuccess, fmt.Sprintf("Updated %d orders.", n))
	}
	web.Back(w, r, "/admin-dashboard/orders")
}

package cart

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/pharmacy-storefront/internal/backend"
	"github.com/georgemunganga/pharmacy-storefront/internal/datatable"
	"github.com/georgemunganga/pharmacy-storefront/internal/logger"
	"github.com/georgemunganga/pharmacy-storefront/internal/modules/auth"
	"github.com/georgemunganga/pharmacy-storefront/internal/modules/order"
	"github.com/georgemunganga/pharmacy-storefront/internal/web"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router, mw *auth.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireRole(web.RoleCustomer))
		r.Get("/cart", h.show)
		r.Post("/cart/items", h.add)
		r.Post("/cart/items/{id}", h.update)
		r.Post("/cart/items/{id}/delete", h.remove)
		r.Post("/checkout", h.checkout)
	})
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.Get(r.Context())
	if err != nil {
		logger.Log.WithError(err).Error("load cart")
		web.Error(w, r, http.StatusBadGateway, "Could not load your cart.")
		return
	}

	tbl, err := datatable.New(datatable.Options[Item]{
		Columns: columns(),
		RowKey:  func(it Item) string { return it.ID },
		Toolbar: datatable.ToolbarOptions[Item]{Hidden: true},
	})
	if err != nil {
		web.Error(w, r, http.StatusInternalServerError, "Could not build the cart.")
		return
	}
	tbl.SetProps(c.Items, datatable.PaginationMeta{Page: 1, Limit: max(len(c.Items), 1), Total: len(c.Items)}, false, false)
	node := datatable.Render(tbl, nil, datatable.RenderOptions{
		ID:             tableID,
		Title:          "Shopping Cart",
		Subtitle:       "Review your items before checkout.",
		HidePagination: true,
	})

	web.Page(w, r, http.StatusOK, web.Layout{Title: "Cart", Body: page(c, node)}, nil)
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	err := h.service.Add(r.Context(), r.FormValue("medicineId"), web.FormInt(r, "quantity", 1))
	if err != nil {
		logger.Log.WithError(err).Warn("add to cart")
		web.SetFlash(w, web.FlashError, backend.Message(err, "Could not add to cart."))
	} else {
		web.SetFlash(w, web.FlashSuccess, "Added to cart")
	}
	web.Back(w, r, "/cart")
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	if err := h.service.SetQuantity(r.Context(), chi.URLParam(r, "id"), web.FormInt(r, "quantity", 1)); err != nil {
		logger.Log.WithError(err).Warn("update cart item")
		web.SetFlash(w, web.FlashError, backend.Message(err, "Could not update the cart."))
	}
	web.Redirect(w, r, "/cart")
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Remove(r.Context(), chi.URLParam(r, "id")); err != nil && !backend.IsNotFound(err) {
		logger.Log.WithError(err).Warn("remove cart item")
		web.SetFlash(w, web.FlashError, backend.Message(err, "Could not remove the item."))
	} else {
		web.SetFlash(w, web.FlashSuccess, "Item removed")
	}
	web.Redirect(w, r, "/cart")
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	_, err := h.service.Checkout(r.Context(), r.FormValue("address"))
	switch {
	case err == nil:
		web.SetFlash(w, web.FlashSuccess, "Order placed successfully")
		web.Redirect(w, r, "/dashboard/orders")
		return
	case errors.Is(err, ErrEmptyCart):
		web.SetFlash(w, web.FlashError, "Your cart is empty.")
	case errors.Is(err, order.ErrAddressRequired):
		web.SetFlash(w, web.FlashError, "Please enter a shipping address.")
	case errors.Is(err, ErrOutOfStock):
		web.SetFlash(w, web.FlashError, "Some items are no longer in stock.")
	default:
		logger.Log.WithError(err).Error("checkout")
		web.SetFlash(w, web.FlashError, backend.Message(err, "Failed to place order"))
	}
	web.Redirect(w, r, "/cart")
}

package category

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/pharmacy-storefront/internal/backend"
	"github.com/georgemunganga/pharmacy-storefront/internal/datatable"
	"github.com/georgemunganga/pharmacy-storefront/internal/logger"
	"github.com/georgemunganga/pharmacy-storefront/internal/modules/auth"
	"github.com/georgemunganga/pharmacy-storefront/internal/web"
)

// Handler serves the admin category pages.
type Handler struct {
	service Service
	codec   datatable.QueryCodec
}

func NewHandler(service Service, codec datatable.QueryCodec) *Handler {
	return &Handler{service: service, codec: codec}
}

func (h *Handler) RegisterRoutes(r chi.Router, mw *auth.Middleware) {
	r.Route("/admin-dashboard/categories", func(r chi.Router) {
		r.Use(mw.RequireRole(web.RoleAdmin))
		r.Get("/", h.list)
		r.Post("/", h.create)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := h.codec.Decode(r.URL.Query())
	all, err := h.service.List(r.Context())
	if err != nil {
		logger.Log.WithError(err).Error("list categories")
	}
	rows, meta := datatable.Paginate(matching(all, q.Search), q)

	tbl, err2 := datatable.New(datatable.Options[Category]{
		Columns: columns(),
		RowKey:  func(c Category) string { return c.ID },
		Toolbar: datatable.ToolbarOptions[Category]{
			ServerSearch:      true,
			SearchPlaceholder: "Search categories...",
			ShowViewOptions:   true,
		},
	})
	if err2 != nil {
		web.Error(w, r, http.StatusInternalServerError, "Could not build the category table.")
		return
	}
	tbl.SetProps(rows, meta, false, err != nil)
	tbl.Restore(q)

	node := datatable.Render(tbl, datatable.NewPager(tbl, tbl.Meta(), r.URL), datatable.RenderOptions{
		ID:    tableID,
		Title: "categories",
	})
	web.Page(w, r, http.StatusOK, web.Layout{Title: "Categories", Sidebar: web.AdminNav, Body: page(node)}, node)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.Create(r.Context(), r.FormValue("name"))
	switch {
	case errors.Is(err, ErrNameRequired):
		web.SetFlash(w, web.FlashError, "Category name is required.")
	case err != nil:
		logger.Log.WithError(err).Warn("create category")
		web.SetFlash(w, web.FlashError, backend.Message(err, "Could not create the category."))
	default:
		web.SetFlash(w, web.FlashSuccess, "Category \""+c.Name+"\" created.")
	}
	web.Redirect(w, r, "/admin-dashboard/categories")
}

func matching(list []Category, term string) []Category {
	if term == "" {
		return list
	}
	term = strings.ToLower(term)
	out := make([]Category, 0, len(list))
	for _, c := range list {
		if strings.Contains(strings.ToLower(c.Name), term) {
			out = append(out, c)
		}
	}
	return out
}

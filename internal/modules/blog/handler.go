package blog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/pharmacy-storefront/internal/backend"
	"github.com/georgemunganga/pharmacy-storefront/internal/datatable"
	"github.com/georgemunganga/pharmacy-storefront/internal/logger"
	"github.com/georgemunganga/pharmacy-storefront/internal/web"
)

type Handler struct {
	service Service
	codec   datatable.QueryCodec
}

func NewHandler(service Service, codec datatable.QueryCodec) *Handler {
	return &Handler{service: service, codec: codec}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/blogs", h.list)
	r.Get("/blogs/{id}", h.detail)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := h.codec.Decode(r.URL.Query())
	list, err := h.service.List(r.Context(), q)
	if err != nil {
		logger.Log.WithError(err).Error("list posts")
	}

	v := listView{failed: err != nil, search: q.Search}
	meta := datatable.PaginationMeta{Page: q.Page, Limit: q.Limit}
	if list != nil {
		v.posts, meta = list.Data, list.Meta
	}
	v.pager = datatable.NewPager(nil, meta, r.URL)

	web.Page(w, r, http.StatusOK, web.Layout{Title: "Blog", Body: listPage(v)}, grid(v))
}

func (h *Handler) detail(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	switch {
	case backend.IsNotFound(err):
		web.Error(w, r, http.StatusNotFound, "Post not found")
	case err != nil:
		logger.Log.WithError(err).Error("load post")
		web.Error(w, r, http.StatusBadGateway, "Could not load this post.")
	default:
		web.Page(w, r, http.StatusOK, web.Layout{Title: p.Title, Body: detailPage(p)}, nil)
	}
}

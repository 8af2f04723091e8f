package medicine

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/georgemunganga/pharmacy-storefront/internal/backend"
	"github.com/georgemunganga/pharmacy-storefront/internal/datatable"
	"github.com/georgemunganga/pharmacy-storefront/internal/logger"
	"github.com/georgemunganga/pharmacy-storefront/internal/modules/auth"
	"github.com/georgemunganga/pharmacy-storefront/internal/modules/category"
	"github.com/georgemunganga/pharmacy-storefront/internal/modules/review"
	"github.com/georgemunganga/pharmacy-storefront/internal/web"
)

const (
	relatedLimit  = 4
	featuredLimit = 10
)

// Handler serves the shop and the seller's product pages.
type Handler struct {
	service    Service
	categories category.Service
	reviews    review.Service
	codec      datatable.QueryCodec
}

func NewHandler(service Service, categories category.Service, reviews review.Service, codec datatable.QueryCodec) *Handler {
	codec.FilterKeys = []string{"categoryId"}
	return &Handler{service: service, categories: categories, reviews: reviews, codec: codec}
}

func (h *Handler) RegisterRoutes(r chi.Router, mw *auth.Middleware) {
	r.Get("/", h.home)
	r.Get("/shop", h.shop)
	r.Get("/medicine/{id}", h.detail)

	r.Group(func(r chi.Router) {
		r.Use(mw.RequireRole(web.RoleSeller))
		r.Get("/seller-dashboard/products", h.products)
		r.Post("/seller-dashboard/products/bulk", h.bulk)
		r.Post("/seller-dashboard/products/{id}/delete", h.delete)
		r.Get("/seller-dashboard/add-product", h.newProduct)
		r.Post("/seller-dashboard/add-product", h.createProduct)
		r.Get("/seller-dashboard/edit-product/{id}", h.editProduct)
		r.Post("/seller-dashboard/edit-product/{id}", h.updateProduct)
	})
}

// home shows the category tiles and the featured medicines. Either section
// is left out when its read fails.
func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var (
		cats     []category.Category
		featured []Medicine
		g        errgroup.Group
	)
	g.Go(func() error {
		var err error
		if cats, err = h.categories.List(ctx); err != nil {
			logger.Log.WithError(err).Warn("home categories")
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if featured, err = h.service.Featured(ctx, featuredLimit); err != nil {
			logger.Log.WithError(err).Warn("featured medicines")
		}
		return nil
	})
	_ = g.Wait()

	web.Page(w, r, http.StatusOK, web.Layout{Title: "MediStore", Body: homePage(cats, featured)}, nil)
}

func (h *Handler) shop(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query()
	q := h.codec.Decode(raw)
	f := FilterFrom(q)
	f.MinPrice = positiveFloat(raw.Get("minPrice"))
	f.MaxPrice = positiveFloat(raw.Get("maxPrice"))

	list, err := h.service.List(r.Context(), f)
	if err != nil {
		logger.Log.WithError(err).Error("list medicines")
	}
	cats, cerr := h.categories.Options(r.Context())
	if cerr != nil {
		logger.Log.WithError(cerr).Warn("list categories")
	}

	v := shopView{
		failed:     err != nil,
		categories: cats,
		query:      q,
		minPrice:   raw.Get("minPrice"),
		maxPrice:   raw.Get("maxPrice"),
		sort:       raw.Get(datatable.ParamSort),
	}
	meta := datatable.PaginationMeta{Page: q.Page, Limit: q.Limit}
	if list != nil {
		v.items, meta = list.Data, list.Meta
	}
	v.pager = datatable.NewPager(nil, meta, r.URL)

	web.Page(w, r, http.StatusOK, web.Layout{Title: "Shop", Body: shopPage(v)}, shopGrid(v))
}

func (h *Handler) detail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	m, err := h.service.Get(r.Context(), id)
	if err != nil {
		notFoundOr(w, r, err, "Could not load this medicine.")
		return
	}

	related, err := h.service.Related(r.Context(), m, relatedLimit)
	if err != nil {
		logger.Log.WithError(err).WithField("medicine", id).Warn("related medicines")
	}
	reviews, rerr := h.reviews.ForMedicine(r.Context(), id)
	if rerr != nil {
		logger.Log.WithError(rerr).WithField("medicine", id).Warn("list reviews")
	}
	viewer := web.ViewerFrom(r.Context())

	body := detailPage(m, related, viewer, review.Section(id, reviews, rerr != nil, viewer))
	web.Page(w, r, http.StatusOK, web.Layout{Title: m.Name, Body: body}, nil)
}

func (h *Handler) products(w http.ResponseWriter, r *http.Request) {
	q := h.codec.Decode(r.URL.Query())
	tbl, err := h.productTable(r, q)
	if err != nil {
		web.Error(w, r, http.StatusInternalServerError, "Could not build the product table.")
		return
	}
	node := datatable.Render(tbl, datatable.NewPager(tbl, tbl.Meta(), r.URL), datatable.RenderOptions{
		ID:      productTableID,
		Title:   "products",
		BulkURL: "/seller-dashboard/products/bulk",
	})
	web.Page(w, r, http.StatusOK, web.Layout{Title: "Products", Sidebar: web.SellerNav, Body: node}, node)
}

// productTable loads the signed-in seller's page of products for q.
func (h *Handler) productTable(r *http.Request, q datatable.QueryState) (*datatable.Table[Medicine], error) {
	ctx := r.Context()
	f := FilterFrom(q)
	if v := web.ViewerFrom(ctx); v != nil {
		f.SellerID = v.ID
	}
	list, err := h.service.List(ctx, f)
	if err != nil {
		logger.Log.WithError(err).Error("list seller products")
	}
	cats, cerr := h.categories.Options(ctx)
	if cerr != nil {
		logger.Log.WithError(cerr).Warn("list categories")
	}

	tbl, terr := datatable.New(datatable.Options[Medicine]{
		Columns: productColumns(r.URL.RequestURI()),
		RowKey:  func(m Medicine) string { return m.ID },
		RowHref: func(m Medicine) string { return "/seller-dashboard/edit-product/" + m.ID },
		Toolbar: datatable.ToolbarOptions[Medicine]{
			ServerSearch:      true,
			SearchPlaceholder: "Search products...",
			FilterableColumns: []datatable.FilterableColumn{{ID: "categoryId", Title: "Category", Options: cats}},
			BulkActions: []datatable.BulkAction[Medicine]{{
				Label:   "Delete",
				Variant: "danger",
				Confirm: "Delete the selected products?",
				Handler: func(ctx context.Context, rows []Medicine) error { return h.service.DeleteMany(ctx, rows) },
			}},
			ShowViewOptions: true,
			CreateButton:    &datatable.CreateButton{Label: "Add Product", Href: "/seller-dashboard/add-product"},
		},
	})
	if terr != nil {
		return nil, terr
	}

	meta := datatable.PaginationMeta{Page: q.Page, Limit: q.Limit}
	var data []Medicine
	if list != nil {
		data, meta = list.Data, list.Meta
	}
	tbl.SetProps(data, meta, false, err != nil)
	tbl.Restore(q)
	return tbl, nil
}

func (h *Handler) bulk(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		web.Error(w, r, http.StatusBadRequest, "Invalid form.")
		return
	}
	q := h.codec.Decode(web.ReturnQuery(r))
	q.Selected = r.PostForm[datatable.ParamSelected]

	tbl, err := h.productTable(r, q)
	if err != nil {
		web.Error(w, r, http.StatusInternalServerError, "Could not build the product table.")
		return
	}
	n := len(tbl.SelectedKeys())
	err = tbl.Toolbar().InvokeBulk(r.Context(), r.PostForm.Get("action"))
	switch {
	case errors.Is(err, datatable.ErrEmptySelection):
		web.SetFlash(w, web.FlashError, "Select at least one product.")
	case err != nil:
		logger.Log.WithError(err).Warn("bulk delete products")
		web.SetFlash(w, web.FlashError, "Some products could not be deleted.")
	default:
		web.SetFlash(w, web.FlashSuccess, fmt.Sprintf("Deleted %d products.", n))
	}
	web.Back(w, r, "/seller-dashboard/products")
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	m, ok := h.ownProduct(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), m.ID); err != nil {
		logger.Log.WithError(err).Warn("delete product")
		web.SetFlash(w, web.FlashError, backend.Message(err, "Could not delete the product."))
	} else {
		web.SetFlash(w, web.FlashSuccess, "Product deleted.")
	}
	web.Back(w, r, "/seller-dashboard/products")
}

func (h *Handler) newProduct(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, formView{
		title:  "Add Product",
		action: "/seller-dashboard/add-product",
		submit: "Create Product",
	})
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	in := inputFrom(r)
	_, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.formFailed(w, r, err, formView{
			title:  "Add Product",
			action: "/seller-dashboard/add-product",
			submit: "Create Product",
			input:  in,
		})
		return
	}
	web.SetFlash(w, web.FlashSuccess, "Product created.")
	web.Redirect(w, r, "/seller-dashboard/products")
}

func (h *Handler) editProduct(w http.ResponseWriter, r *http.Request) {
	m, ok := h.ownProduct(w, r)
	if !ok {
		return
	}
	h.renderForm(w, r, http.StatusOK, formView{
		title:  "Edit " + m.Name,
		action: "/seller-dashboard/edit-product/" + m.ID,
		submit: "Save Changes",
		input: Input{
			Name:        m.Name,
			Description: m.Description,
			Price:       m.Price,
			Stock:       m.Stock,
			ImageURL:    m.ImageURL,
			IsFeatured:  m.IsFeatured,
			CategoryID:  m.CategoryID,
		},
	})
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	m, ok := h.ownProduct(w, r)
	if !ok {
		return
	}
	in := inputFrom(r)
	if _, err := h.service.Update(r.Context(), m.ID, in); err != nil {
		h.formFailed(w, r, err, formView{
			title:  "Edit " + m.Name,
			action: "/seller-dashboard/edit-product/" + m.ID,
			submit: "Save Changes",
			input:  in,
		})
		return
	}
	web.SetFlash(w, web.FlashSuccess, "Product updated.")
	web.Redirect(w, r, "/seller-dashboard/products")
}

// ownProduct loads the product in the URL and answers 404 unless the
// signed-in seller listed it.
func (h *Handler) ownProduct(w http.ResponseWriter, r *http.Request) (*Medicine, bool) {
	m, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		notFoundOr(w, r, err, "Could not load this product.")
		return nil, false
	}
	if v := web.ViewerFrom(r.Context()); v == nil || m.SellerID != v.ID {
		web.Error(w, r, http.StatusNotFound, "Product not found.")
		return nil, false
	}
	return m, true
}

func (h *Handler) formFailed(w http.ResponseWriter, r *http.Request, err error, v formView) {
	var verr ValidationError
	switch {
	case errors.As(err, &verr):
		v.errs = verr
	case backend.IsUnauthorized(err):
		web.RedirectLogin(w, r)
		return
	default:
		logger.Log.WithError(err).Warn("save product")
		v.errs = ValidationError{"form": backend.Message(err, "Could not save the product.")}
	}
	h.renderForm(w, r, http.StatusUnprocessableEntity, v)
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, v formView) {
	cats, err := h.categories.Options(r.Context())
	if err != nil {
		logger.Log.WithError(err).Warn("list categories")
	}
	v.categories = cats
	web.Page(w, r, status, web.Layout{Title: v.title, Sidebar: web.SellerNav, Body: productForm(v)}, nil)
}

func inputFrom(r *http.Request) Input {
	return Input{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Price:       web.FormFloat(r, "price", 0),
		Stock:       web.FormInt(r, "stock", 0),
		ImageURL:    r.FormValue("imageUrl"),
		IsFeatured:  r.FormValue("isFeatured") == "true",
		CategoryID:  r.FormValue("categoryId"),
	}
}

func notFoundOr(w http.ResponseWriter, r *http.Request, err error, message string) {
	switch {
	case backend.IsNotFound(err):
		web.Error(w, r, http.StatusNotFound, "Medicine not found.")
	case backend.IsUnauthorized(err):
		web.RedirectLogin(w, r)
	default:
		logger.Log.WithError(err).Error(message)
		web.Error(w, r, http.StatusBadGateway, message)
	}
}

func positiveFloat(raw string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}

package medicine

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/pharmacy-storefront/internal/backend"
	"github.com/georgemunganga/pharmacy-storefront/internal/datatable"
	"github.com/georgemunganga/pharmacy-storefront/internal/modules/auth"
	"github.com/georgemunganga/pharmacy-storefront/internal/modules/category"
	"github.com/georgemunganga/pharmacy-storefront/internal/modules/review"
	"github.com/georgemunganga/pharmacy-storefront/internal/web"
)

type fakeRepo struct {
	items     []Medicine
	listErr   error
	getErr    error
	deleteErr map[string]error
	filters   []Filter
	created   []Input
	updated   map[string]Input
	deleted   []string
	gets      int
}

func (f *fakeRepo) List(ctx context.Context, flt Filter) (*backend.List[Medicine], error) {
	f.filters = append(f.filters, flt)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return &backend.List[Medicine]{
		Data: f.items,
		Meta: datatable.PaginationMeta{Page: flt.Page, Limit: flt.Limit, Total: len(f.items)},
	}, nil
}

func (f *fakeRepo) Get(ctx context.Context, id string) (*Medicine, error) {
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, m := range f.items {
		if m.ID == id {
			return &m, nil
		}
	}
	return nil, &backend.Error{Op: "medicines.get", Status: http.StatusNotFound, Message: "Medicine not found"}
}

func (f *fakeRepo) ByCategory(ctx context.Context, categoryID string) ([]Medicine, error) {
	var out []Medicine
	for _, m := range f.items {
		if m.CategoryID == categoryID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeRepo) Create(ctx context.Context, in Input) (*Medicine, error) {
	f.created = append(f.created, in)
	return &Medicine{ID: "new", Name: in.Name}, nil
}

func (f *fakeRepo) Update(ctx context.Context, id string, in Input) (*Medicine, error) {
	if f.updated == nil {
		f.updated = map[string]Input{}
	}
	f.updated[id] = in
	return &Medicine{ID: id, Name: in.Name}, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr[id]
}

type fakeCategories struct{}

func (fakeCategories) List(ctx context.Context) ([]category.Category, error) {
	return []category.Category{{ID: "c1", Name: "Pain Relief"}, {ID: "c2", Name: "Cold & Flu"}}, nil
}

func (fakeCategories) Create(ctx context.Context, req category.CreateRequest) (*category.Category, error) {
	return nil, errors.New("not used")
}

type fakeReviews struct{ list []review.Review }

func (f fakeReviews) ForMedicine(ctx context.Context, id string) ([]review.Review, error) {
	return f.list, nil
}
func (fakeReviews) Create(ctx context.Context, id string, in review.Input) (*review.Review, error) {
	return nil, nil
}
func (fakeReviews) Update(ctx context.Context, id string, in review.Input) (*review.Review, error) {
	return nil, nil
}
func (fakeReviews) Delete(ctx context.Context, id string) error { return nil }

func sample() []Medicine {
	pain := &category.Category{ID: "c1", Name: "Pain Relief"}
	return []Medicine{
		{ID: "m1", Name: "Paracetamol 500mg", Price: 12, Stock: 40, CategoryID: "c1", Category: pain, SellerID: "s1"},
		{ID: "m2", Name: "Ibuprofen 200mg", Price: 18.5, Stock: 0, CategoryID: "c1", Category: pain, SellerID: "s1", IsFeatured: true},
		{ID: "m3", Name: "Napa Extra", Price: 25, Stock: 9, CategoryID: "c1", Category: pain, SellerID: "s2"},
	}
}

func newRouter(repo Repository) http.Handler {
	r := chi.NewRouter()
	NewHandler(
		NewService(repo),
		category.NewService(fakeCategories{}),
		review.NewService(fakeReviews{}),
		datatable.QueryCodec{DefaultLimit: 12, MaxLimit: 50},
	).RegisterRoutes(r, auth.NewMiddleware(nil, time.Minute))
	return r
}

func as(req *http.Request, id, role string) *http.Request {
	ctx := auth.SetUserContext(req.Context(), &auth.User{ID: id, Role: role})
	ctx = web.WithViewer(ctx, &web.Viewer{ID: id, Role: role, Name: "Test"})
	return req.WithContext(ctx)
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestFilterFrom(t *testing.T) {
	codec := datatable.QueryCodec{DefaultLimit: 10, FilterKeys: []string{"categoryId"}}
	v, _ := url.ParseQuery("page=3&search=napa&categoryId=c1&sort=price.desc")
	f := FilterFrom(codec.Decode(v))
	assert.Equal(t, Filter{
		ListParams: backend.ListParams{Page: 3, Limit: 10, Search: "napa"},
		CategoryID: "c1",
		SortBy:     "price",
		SortOrder:  "desc",
	}, f)

	v, _ = url.ParseQuery("sort=seller.asc")
	assert.Empty(t, FilterFrom(codec.Decode(v)).SortBy)
}

func TestServiceValidation(t *testing.T) {
	repo := &fakeRepo{}
	_, err := NewService(repo).Create(context.Background(), Input{Name: "  ", Price: 0, Stock: -1})
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr, 4)
	assert.Empty(t, repo.created)

	_, err = NewService(repo).Create(context.Background(), Input{Name: " Napa ", Price: 5, CategoryID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, "Napa", repo.created[0].Name)
}

func TestServiceListSwapsInvertedPriceRange(t *testing.T) {
	repo := &fakeRepo{}
	_, err := NewService(repo).List(context.Background(), Filter{MinPrice: 50, MaxPrice: 10})
	require.NoError(t, err)
	assert.Equal(t, 10.0, repo.filters[0].MinPrice)
	assert.Equal(t, 50.0, repo.filters[0].MaxPrice)
}

func TestRelatedSkipsSelfAndLimits(t *testing.T) {
	repo := &fakeRepo{items: sample()}
	m := sample()[0]
	related, err := NewService(repo).Related(context.Background(), &m, 1)
	require.NoError(t, err)
	require.Len(t, related, 1)
	assert.Equal(t, "m2", related[0].ID)
}

func TestDeleteManyJoinsFailures(t *testing.T) {
	repo := &fakeRepo{deleteErr: map[string]error{"m2": errors.New("in an order")}}
	err := NewService(repo).DeleteMany(context.Background(), sample())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Ibuprofen 200mg: in an order")
	assert.Equal(t, []string{"m1", "m2", "m3"}, repo.deleted)
}

func TestCachedRepositoryEvictsOnWrite(t *testing.T) {
	inner := &fakeRepo{items: sample()}
	repo, err := NewCachedRepository(inner, 16, time.Minute, nil)
	require.NoError(t, err)

	for range 2 {
		_, err := repo.Get(context.Background(), "m1")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, inner.gets)

	_, err = repo.Update(context.Background(), "m1", Input{Name: "x"})
	require.NoError(t, err)
	_, err = repo.Get(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.gets)
}

func TestShopRendersGridAndFilters(t *testing.T) {
	repo := &fakeRepo{items: sample()}
	rec := httptest.NewRecorder()
	newRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/shop?search=napa&categoryId=c1&minPrice=5&maxPrice=abc&sort=price.asc", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Paracetamol 500mg")
	assert.Contains(t, body, "৳18.50")
	assert.Contains(t, body, "Out of stock")
	assert.Contains(t, body, "Cold &amp; Flu")
	assert.Contains(t, body, "Page 1 of 1")

	require.Len(t, repo.filters, 1)
	f := repo.filters[0]
	assert.Equal(t, "napa", f.Search)
	assert.Equal(t, "c1", f.CategoryID)
	assert.Equal(t, 5.0, f.MinPrice)
	assert.Zero(t, f.MaxPrice)
	assert.Equal(t, "price", f.SortBy)
	assert.Equal(t, "asc", f.SortOrder)
	assert.Equal(t, 12, f.Limit)
}

func TestFeaturedKeepsFlaggedMedicines(t *testing.T) {
	repo := &fakeRepo{items: sample()}
	list, err := NewService(repo).Featured(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "m2", list[0].ID)
	require.Len(t, repo.filters, 1)
	assert.True(t, repo.filters[0].Featured)
}

func TestHomeShowsCategoriesAndFeatured(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(&fakeRepo{items: sample()}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Shop by Category")
	assert.Contains(t, body, `href="/shop?categoryId=c2"`)
	assert.Contains(t, body, "Cold &amp; Flu")
	assert.Contains(t, body, "Featured Medicines")
	assert.Contains(t, body, "Ibuprofen 200mg")
	assert.NotContains(t, body, "Paracetamol 500mg")
}

func TestHomeWithoutFeatured(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(&fakeRepo{listErr: errors.New("down")}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Shop by Category")
	assert.NotContains(t, rec.Body.String(), "Featured Medicines")
}

func TestShopFragmentForHTMX(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/shop?page=2", nil)
	req.Header.Set("HX-Request", "true")
	newRouter(&fakeRepo{}).ServeHTTP(rec, req)

	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, `<div id="shop-grid"`))
	assert.Contains(t, body, "No medicines found.")
}

func TestShopShowsErrorPanel(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(&fakeRepo{listErr: errors.New("down")}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/shop", nil))
	assert.Contains(t, rec.Body.String(), "There was an error loading the data.")
}

func TestDetail(t *testing.T) {
	h := newRouter(&fakeRepo{items: sample()})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, as(httptest.NewRequest(http.MethodGet, "/medicine/m1", nil), "u1", web.RoleCustomer))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<h1>Paracetamol 500mg</h1>")
	assert.Contains(t, body, "Add to Cart")
	assert.Contains(t, body, "More in this category")
	assert.Contains(t, body, "No reviews yet")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/medicine/m1", nil))
	assert.Contains(t, rec.Body.String(), "Log in to buy")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/medicine/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Medicine not found.")
}

func TestSellerProductsScopedToSeller(t *testing.T) {
	repo := &fakeRepo{items: sample()[:2]}
	rec := httptest.NewRecorder()
	newRouter(repo).ServeHTTP(rec, as(httptest.NewRequest(http.MethodGet, "/seller-dashboard/products?categoryId=c1", nil), "s1", web.RoleSeller))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, repo.filters, 1)
	assert.Equal(t, "s1", repo.filters[0].SellerID)
	assert.Equal(t, "c1", repo.filters[0].CategoryID)

	body := rec.Body.String()
	assert.Contains(t, body, `id="products-table"`)
	assert.Contains(t, body, `action="/seller-dashboard/products/bulk"`)
	assert.Contains(t, body, `data-href="/seller-dashboard/edit-product/m1"`)
	assert.Contains(t, body, "Add Product")
}

func TestSellerBulkDeleteSelected(t *testing.T) {
	repo := &fakeRepo{items: sample()[:2]}
	form := url.Values{
		"action":   {"Delete"},
		"selected": {"m2", "m9"},
		"return":   {"/seller-dashboard/products?page=1"},
	}
	rec := httptest.NewRecorder()
	newRouter(repo).ServeHTTP(rec, as(postForm("/seller-dashboard/products/bulk", form), "s1", web.RoleSeller))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/seller-dashboard/products?page=1", rec.Header().Get("Location"))
	assert.Equal(t, []string{"m2"}, repo.deleted)
}

func TestSellerBulkDeleteNeedsSelection(t *testing.T) {
	repo := &fakeRepo{items: sample()[:2]}
	rec := httptest.NewRecorder()
	newRouter(repo).ServeHTTP(rec, as(postForm("/seller-dashboard/products/bulk", url.Values{"action": {"Delete"}}), "s1", web.RoleSeller))

	assert.Equal(t, "/seller-dashboard/products", rec.Header().Get("Location"))
	assert.Empty(t, repo.deleted)
	require.Len(t, rec.Result().Cookies(), 1)
	assert.Contains(t, rec.Result().Cookies()[0].Value, "error")
}

func TestDeleteProductOnlyForOwner(t *testing.T) {
	repo := &fakeRepo{items: sample()}
	h := newRouter(repo)
	form := url.Values{"return": {"/seller-dashboard/products?page=2"}}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, as(postForm("/seller-dashboard/products/m3/delete", form), "s1", web.RoleSeller))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, repo.deleted)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, as(postForm("/seller-dashboard/products/m1/delete", form), "s1", web.RoleSeller))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/seller-dashboard/products?page=2", rec.Header().Get("Location"))
	assert.Equal(t, []string{"m1"}, repo.deleted)
}

func TestCreateProduct(t *testing.T) {
	repo := &fakeRepo{}
	h := newRouter(repo)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, as(postForm("/seller-dashboard/add-product", url.Values{"name": {""}, "price": {"0"}}), "s1", web.RoleSeller))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Name is required.")
	assert.Contains(t, rec.Body.String(), "Choose a category.")
	assert.Empty(t, repo.created)

	form := url.Values{"name": {"Napa"}, "price": {"4.5"}, "stock": {"20"}, "categoryId": {"c1"}, "isFeatured": {"true"}}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, as(postForm("/seller-dashboard/add-product", form), "s1", web.RoleSeller))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []Input{{Name: "Napa", Price: 4.5, Stock: 20, CategoryID: "c1", IsFeatured: true}}, repo.created)
}

func TestEditProductOnlyForOwner(t *testing.T) {
	repo := &fakeRepo{items: sample()}
	h := newRouter(repo)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, as(httptest.NewRequest(http.MethodGet, "/seller-dashboard/edit-product/m3", nil), "s1", web.RoleSeller))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, as(httptest.NewRequest(http.MethodGet, "/seller-dashboard/edit-product/m1", nil), "s1", web.RoleSeller))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="12.00"`)

	form := url.Values{"name": {"Paracetamol 650mg"}, "price": {"14"}, "stock": {"30"}, "categoryId": {"c1"}}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, as(postForm("/seller-dashboard/edit-product/m1", form), "s1", web.RoleSeller))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "Paracetamol 650mg", repo.updated["m1"].Name)
}

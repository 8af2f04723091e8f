package order

import (
	"context"
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
	"github.com/georgemunganga/pharmacy-storefront/internal/web"
)

type fakeRepo struct {
	orders  []Order
	paged   bool
	params  []ListParams
	scopes  []Scope
	placed  []PlaceOrderRequest
	updates map[string]Status
}

func (f *fakeRepo) Create(ctx context.Context, req PlaceOrderRequest) (*Order, error) {
	f.placed = append(f.placed, req)
	return &Order{ID: "o-new", Status: StatusProcessing}, nil
}

func (f *fakeRepo) List(ctx context.Context, scope Scope, p ListParams) (*backend.List[Order], error) {
	f.scopes = append(f.scopes, scope)
	f.params = append(f.params, p)
	out := &backend.List[Order]{Data: f.orders}
	if f.paged {
		out.Meta = datatable.PaginationMeta{Page: p.Page, Limit: p.Limit, Total: len(f.orders)}
	}
	return out, nil
}

func (f *fakeRepo) Get(ctx context.Context, id string) (*Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, &backend.Error{Status: http.StatusNotFound, Message: "Order not found"}
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error) {
	if f.updates == nil {
		f.updates = map[string]Status{}
	}
	f.updates[id] = req.Status
	return &Order{ID: id, Status: req.Status}, nil
}

func sample() []Order {
	at := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	return []Order{
		{ID: "o1", CustomerName: "Rahim", TotalAmount: 120, Status: StatusProcessing, CreatedAt: at,
			Items: []Item{{Quantity: 2}, {Quantity: 1}}},
		{ID: "o2", CustomerName: "Nila", TotalAmount: 45.5, Status: StatusShipped, CreatedAt: at},
		{ID: "o3", CustomerName: "Karim", TotalAmount: 80, Status: StatusDelivered, CreatedAt: at},
		{ID: "o4", CustomerName: "Sadia", TotalAmount: 10, Status: StatusCancelled, CreatedAt: at},
	}
}

func TestStatusLifecycle(t *testing.T) {
	next, ok := StatusProcessing.Next()
	assert.True(t, ok)
	assert.Equal(t, StatusShipped, next)
	next, ok = StatusShipped.Next()
	assert.True(t, ok)
	assert.Equal(t, StatusDelivered, next)
	_, ok = StatusDelivered.Next()
	assert.False(t, ok)
	_, ok = StatusCancelled.Next()
	assert.False(t, ok)

	assert.True(t, StatusProcessing.CanBecome(StatusCancelled))
	assert.False(t, StatusProcessing.CanBecome(StatusDelivered))
	assert.False(t, StatusDelivered.CanBecome(StatusCancelled))
}

func TestPlaceOrderValidation(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.PlaceOrder(ctx, PlaceOrderRequest{Address: " ", Items: []Line{{MedicineID: "m1", Quantity: 1}}})
	assert.ErrorIs(t, err, ErrAddressRequired)
	_, err = svc.PlaceOrder(ctx, PlaceOrderRequest{Address: "Dhaka"})
	assert.ErrorIs(t, err, ErrEmptyOrder)
	_, err = svc.PlaceOrder(ctx, PlaceOrderRequest{Address: "Dhaka", Items: []Line{{MedicineID: "m1"}}})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Empty(t, repo.placed)

	_, err = svc.PlaceOrder(ctx, PlaceOrderRequest{Address: " House 4, Dhaka ", Items: []Line{{MedicineID: "m1", Quantity: 2}}})
	require.NoError(t, err)
	assert.Equal(t, "House 4, Dhaka", repo.placed[0].Address)
}

func TestListPaginatesWholeLists(t *testing.T) {
	repo := &fakeRepo{orders: sample()}
	list, err := NewService(repo).List(context.Background(), ScopeCustomer, datatable.QueryState{Page: 2, Limit: 3})
	require.NoError(t, err)
	assert.Len(t, list.Data, 1)
	assert.Equal(t, datatable.PaginationMeta{Page: 2, Limit: 3, Total: 4}, list.Meta)
	assert.Empty(t, repo.params[0].Status)
}

func TestListSendsStatusFilterForAdmin(t *testing.T) {
	repo := &fakeRepo{orders: sample(), paged: true}
	q := datatable.QueryState{Page: 1, Limit: 10, Filters: map[string][]string{"status": {"SHIPPED", "DELIVERED"}}}
	_, err := NewService(repo).List(context.Background(), ScopeAll, q)
	require.NoError(t, err)
	assert.Equal(t, "SHIPPED,DELIVERED", repo.params[0].Status)
	assert.Equal(t, ScopeAll, repo.scopes[0])
}

func TestUpdateStatusEnforcesLifecycle(t *testing.T) {
	repo := &fakeRepo{orders: sample()}
	svc := NewService(repo)

	_, err := svc.UpdateStatus(context.Background(), "o3", StatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = svc.Advance(context.Background(), "o4")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, repo.updates)

	_, err = svc.UpdateStatus(context.Background(), "o1", StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, repo.updates["o1"])
}

func TestAdvanceManySkipsFinalOrders(t *testing.T) {
	repo := &fakeRepo{}
	require.NoError(t, NewService(repo).AdvanceMany(context.Background(), sample()))
	assert.Equal(t, map[string]Status{"o1": StatusShipped, "o2": StatusDelivered}, repo.updates)
}

func serve(repo Repository, req *http.Request, id, role string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	NewHandler(NewService(repo), datatable.QueryCodec{DefaultLimit: 10}).
		RegisterRoutes(r, auth.NewMiddleware(nil, time.Minute))
	req = req.WithContext(auth.SetUserContext(req.Context(), &auth.User{ID: id, Role: role}))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func post(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestAdminOrdersTable(t *testing.T) {
	repo := &fakeRepo{orders: sample(), paged: true}
	rec := serve(repo, httptest.NewRequest(http.MethodGet, "/admin-dashboard/orders", nil), "a1", web.RoleAdmin)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Here&#39;s a list of your orders!")
	assert.Contains(t, body, "৳45.50")
	assert.Equal(t, 2, strings.Count(body, `/advance"`))
	assert.Contains(t, body, `action="/admin-dashboard/orders/o1/advance"`)
	assert.Contains(t, body, `action="/admin-dashboard/orders/o2/advance"`)
	assert.Contains(t, body, `name="status"`)
	assert.Contains(t, body, `value="CANCELLED"`)
}

func TestAdminStatusFacetFiltersRows(t *testing.T) {
	repo := &fakeRepo{orders: sample(), paged: true}
	rec := serve(repo, httptest.NewRequest(http.MethodGet, "/admin-dashboard/orders?status=DELIVERED", nil), "a1", web.RoleAdmin)

	body := rec.Body.String()
	assert.Equal(t, "DELIVERED", repo.params[0].Status)
	assert.Contains(t, body, "Karim")
	assert.NotContains(t, body, "Rahim")
}

func TestAdminAdvanceAndBulk(t *testing.T) {
	repo := &fakeRepo{orders: sample(), paged: true}
	rec := serve(repo, post("/admin-dashboard/orders/o2/advance", url.Values{"return": {"/admin-dashboard/orders?page=1"}}), "a1", web.RoleAdmin)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin-dashboard/orders?page=1", rec.Header().Get("Location"))
	assert.Equal(t, StatusDelivered, repo.updates["o2"])

	repo = &fakeRepo{orders: sample(), paged: true}
	form := url.Values{"action": {"Next Status"}, "selected": {"o1", "o3"}, "return": {"/admin-dashboard/orders"}}
	rec = serve(repo, post("/admin-dashboard/orders/bulk", form), "a1", web.RoleAdmin)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, map[string]Status{"o1": StatusShipped}, repo.updates)
}

func TestSellerUpdateStatus(t *testing.T) {
	repo := &fakeRepo{orders: sample()}
	rec := serve(repo, httptest.NewRequest(http.MethodGet, "/seller-dashboard/orders", nil), "s1", web.RoleSeller)
	body := rec.Body.String()
	assert.Contains(t, body, `action="/seller-dashboard/orders/o1/status"`)
	assert.NotContains(t, body, `action="/seller-dashboard/orders/o3/status"`)

	rec = serve(repo, post("/seller-dashboard/orders/o3/status", url.Values{"status": {"PROCESSING"}}), "s1", web.RoleSeller)
	assert.Equal(t, "/seller-dashboard/orders", rec.Header().Get("Location"))
	assert.Empty(t, repo.updates)
	require.Len(t, rec.Result().Cookies(), 1)
	assert.Contains(t, rec.Result().Cookies()[0].Value, "not+allowed")

	serve(repo, post("/seller-dashboard/orders/o1/status", url.Values{"status": {"SHIPPED"}}), "s1", web.RoleSeller)
	assert.Equal(t, StatusShipped, repo.updates["o1"])
}

func TestCustomerOrders(t *testing.T) {
	repo := &fakeRepo{orders: sample()[:1]}
	rec := serve(repo, httptest.NewRequest(http.MethodGet, "/dashboard/orders", nil), "c1", web.RoleCustomer)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ScopeCustomer, repo.scopes[0])
	assert.Contains(t, rec.Body.String(), "<td>3</td>")
	assert.Contains(t, rec.Body.String(), "PROCESSING")

	rec = serve(repo, httptest.NewRequest(http.MethodGet, "/admin-dashboard/orders", nil), "c1", web.RoleCustomer)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/pharmacy-storefront/internal/datatable"
)

type medicine struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type medicineParams struct {
	ListParams
	CategoryID string `url:"categoryId,omitempty"`
}

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *Metrics) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	m := NewMetrics("test")
	return New(Options{BaseURL: srv.URL + "/", Retries: 2, RetryWait: time.Millisecond, Metrics: m}), m
}

func TestGetDecodesListAndForwardsCredentials(t *testing.T) {
	c, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/medicines", r.URL.Path)
		assert.Equal(t, "categoryId=c1&limit=10&page=2&search=zinc", r.URL.RawQuery)
		assert.Equal(t, "session=abc", r.Header.Get("Cookie"))
		assert.Equal(t, "tok", r.Header.Get("Authorization"))
		_, err := uuid.Parse(r.Header.Get("X-Request-ID"))
		assert.NoError(t, err)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []medicine{{ID: "m1", Name: "Zinc"}},
			"meta": map[string]int{"page": 2, "limit": 10, "total": 11},
		})
	})

	ctx := WithCredentials(context.Background(), Credentials{Cookie: "session=abc", Token: "tok"})
	var out List[medicine]
	params := medicineParams{ListParams: ListParams{Page: 2, Limit: 10, Search: "zinc"}, CategoryID: "c1"}
	require.NoError(t, c.Get(ctx, "medicines.list", "/medicines", params, &out))

	assert.Equal(t, []medicine{{ID: "m1", Name: "Zinc"}}, out.Data)
	assert.Equal(t, datatable.PaginationMeta{Page: 2, Limit: 10, Total: 11}, out.Meta)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("GET", "medicines.list", "200")))
}

func TestGetRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"data":{"id":"m1","name":"Zinc"}}`))
	})

	var out Item[medicine]
	require.NoError(t, c.Get(context.Background(), "medicines.get", "/medicines/m1", nil, &out))
	assert.Equal(t, "Zinc", out.Data.Name)
	assert.Equal(t, int32(3), calls.Load())
}

func TestWritesAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "SHIPPED", body["status"])
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusBadGateway)
	})

	err := c.Patch(context.Background(), "orders.status", "/orders/o1/status", map[string]string{"status": "SHIPPED"}, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, StatusOf(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		status  int
		body    string
		check   func(error) bool
		message string
	}{
		{http.StatusNotFound, `{"message":"Medicine not found"}`, IsNotFound, "Medicine not found"},
		{http.StatusUnauthorized, `{"message":"Unauthorized"}`, IsUnauthorized, "Unauthorized"},
		{http.StatusBadRequest, `{"message":["name is required","price must be positive"]}`, IsValidation, "name is required; price must be positive"},
		{http.StatusInternalServerError, `upstream exploded`, func(err error) bool { return StatusOf(err) == 500 }, "upstream exploded"},
	}
	for _, tt := range tests {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			_, _ = w.Write([]byte(tt.body))
		})
		err := c.Delete(context.Background(), "op", "/x", nil)
		require.Error(t, err)
		assert.True(t, tt.check(err), tt.body)
		assert.Equal(t, tt.message, Message(err, "fallback"))
	}
}

func TestTransportErrorKeepsOperation(t *testing.T) {
	c := New(Options{BaseURL: "http://127.0.0.1:1", Timeout: time.Second})
	err := c.Post(context.Background(), "cart.add", "/cart/items", map[string]int{"quantity": 1}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cart.add")
	assert.Equal(t, 0, StatusOf(err))
	assert.Equal(t, "fallback", Message(err, "fallback"))
}

func TestCanceledContextStopsBeforeSending(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { calls.Add(1) })
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, c.Get(ctx, "op", "/x", nil, nil))
	assert.Equal(t, int32(0), calls.Load())
}

func TestMetricsHandlerServesCounters(t *testing.T) {
	m := NewMetrics("storefront")
	m.CacheResult("categories", true)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `storefront_cache_lookups_total{cache="categories",result="hit"} 1`)
}

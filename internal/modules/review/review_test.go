package review

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/pharmacy-storefront/internal/backend"
	"github.com/georgemunganga/pharmacy-storefront/internal/modules/auth"
	"github.com/georgemunganga/pharmacy-storefront/internal/web"
)

type fakeRepo struct {
	created map[string]Input
	updated map[string]Input
	deleted []string
	err     error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{created: map[string]Input{}, updated: map[string]Input{}}
}

func (f *fakeRepo) ForMedicine(ctx context.Context, medicineID string) ([]Review, error) {
	return nil, f.err
}

func (f *fakeRepo) Create(ctx context.Context, medicineID string, in Input) (*Review, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created[medicineID] = in
	return &Review{ID: "r1", MedicineID: medicineID, Rating: in.Rating}, nil
}

func (f *fakeRepo) Update(ctx context.Context, id string, in Input) (*Review, error) {
	f.updated[id] = in
	return &Review{ID: id, Rating: in.Rating}, f.err
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func TestServiceValidatesRating(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Create(context.Background(), "m1", Input{Rating: rating})
		assert.ErrorIs(t, err, ErrInvalidRating)
	}
	_, err := svc.Create(context.Background(), "m1", Input{Rating: 4, Comment: "  works well  "})
	require.NoError(t, err)
	assert.Equal(t, Input{Rating: 4, Comment: "works well"}, repo.created["m1"])
}

func TestStarsAndAverage(t *testing.T) {
	assert.Equal(t, "★★★☆☆", Stars(3))
	assert.Equal(t, "★★★★★", Stars(9))
	assert.Equal(t, 0.0, Average(nil))
	assert.Equal(t, 4.5, Average([]Review{{Rating: 4}, {Rating: 5}}))
}

func TestSectionShowsOwnControls(t *testing.T) {
	reviews := []Review{
		{ID: "r1", Rating: 5, Comment: "Great", UserID: "u1", User: &Author{Name: "Rahim"}, CreatedAt: time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)},
		{ID: "r2", Rating: 3, Comment: "Okay", UserID: "u2", User: &Author{Name: "Nila"}},
	}
	var b strings.Builder
	require.NoError(t, Section("m1", reviews, false, &web.Viewer{ID: "u1", Role: web.RoleCustomer}).Render(&b))
	html := b.String()

	assert.Contains(t, html, "4.0 out of 5 · 2 reviews")
	assert.Contains(t, html, "Apr 2, 2025")
	assert.Contains(t, html, `action="/reviews/r1/update"`)
	assert.NotContains(t, html, `action="/reviews/r2/update"`)
	assert.Contains(t, html, "Write a Review")

	b.Reset()
	require.NoError(t, Section("m1", nil, false, nil).Render(&b))
	assert.Contains(t, b.String(), "No reviews yet")
	assert.NotContains(t, b.String(), "Write a Review")
}

func serve(t *testing.T, repo Repository, role, target, form string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	NewHandler(NewService(repo)).RegisterRoutes(r, auth.NewMiddleware(nil, time.Minute))

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = req.WithContext(auth.SetUserContext(req.Context(), &auth.User{ID: "u1", Role: role}))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateReviewRedirectsBack(t *testing.T) {
	repo := newFakeRepo()
	rec := serve(t, repo, web.RoleCustomer, "/medicine/m1/reviews", "rating=4&comment=Nice&return=%2Fmedicine%2Fm1%23reviews")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/medicine/m1#reviews", rec.Header().Get("Location"))
	assert.Equal(t, Input{Rating: 4, Comment: "Nice"}, repo.created["m1"])
}

func TestReviewWritesRequireCustomer(t *testing.T) {
	repo := newFakeRepo()
	rec := serve(t, repo, web.RoleSeller, "/reviews/r1/delete", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, repo.deleted)
}

func TestDeleteReviewReportsBackendError(t *testing.T) {
	repo := newFakeRepo()
	repo.err = &backend.Error{Op: "reviews.delete", Status: http.StatusForbidden, Message: "Not your review"}
	rec := serve(t, repo, web.RoleCustomer, "/reviews/r9/delete", "return=%2Fmedicine%2Fm1")

	assert.Equal(t, "/medicine/m1", rec.Header().Get("Location"))
	assert.Equal(t, []string{"r9"}, repo.deleted)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Contains(t, cookies[0].Value, "Not+your+review")
}

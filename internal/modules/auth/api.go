package auth

import (
	"context"

	"github.com/georgemunganga/pharmacy-storefront/internal/backend"
)

type apiRepo struct{ client *backend.Client }

// NewAPIRepository reads sessions through a client rooted at AUTH_URL.
func NewAPIRepository(client *backend.Client) Repository { return &apiRepo{client: client} }

func (r *apiRepo) GetSession(ctx context.Context) (*Session, error) {
	var s *Session
	if err := r.client.Get(ctx, "auth.get_session", "/get-session", nil, &s); err != nil {
		if backend.IsUnauthorized(err) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

func (r *apiRepo) SignOut(ctx context.Context) error {
	return r.client.Post(ctx, "auth.sign_out", "/sign-out", struct{}{}, nil)
}

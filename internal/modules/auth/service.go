package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Service resolves the signed-in user for a browser request.
type Service interface {
	// Current returns the user for the browser's auth cookies, or nil. cached
	// is the session cache cookie; when the user had to be fetched, a fresh
	// cache value is returned as well.
	Current(ctx context.Context, cookies, cached string) (*User, string, error)
	SignOut(ctx context.Context) error
}

type service struct {
	repo   Repository
	tokens tokenSigner
}

func NewService(repo Repository, secret string, ttl time.Duration) Service {
	return &service{repo: repo, tokens: tokenSigner{key: []byte(secret), ttl: ttl}}
}

func (s *service) Current(ctx context.Context, cookies, cached string) (*User, string, error) {
	if cookies == "" {
		return nil, "", nil
	}
	fp := fingerprint(cookies)
	if cached != "" {
		if u, err := s.tokens.parse(cached, fp); err == nil {
			return u, "", nil
		}
	}

	sess, err := s.repo.GetSession(ctx)
	if err != nil {
		return nil, "", err
	}
	if sess == nil || sess.User == nil || sess.User.Status == StatusBanned {
		return nil, "", nil
	}
	u := *sess.User
	u.SessionToken = sess.Session.Token
	fresh, err := s.tokens.sign(&u, fp)
	if err != nil {
		return &u, "", err
	}
	return &u, fresh, nil
}

func (s *service) SignOut(ctx context.Context) error {
	return s.repo.SignOut(ctx)
}

func fingerprint(cookies string) string {
	sum := sha256.Sum256([]byte(cookies))
	return hex.EncodeToString(sum[:8])
}

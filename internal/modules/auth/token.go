package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

var (
	errFingerprint = errors.New("session cache belongs to another login")
	errNoKey       = errors.New("session cache has no signing key")
)

type sessionClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Image string `json:"image,omitempty"`
	Token string `json:"tok,omitempty"`
	jwt.StandardClaims
}

// tokenSigner issues the short-lived session cache cookie. The Id claim
// carries a fingerprint of the auth service cookies so a new login on the
// same browser invalidates the cache. Without a key the cache is off: nothing
// is issued and every token is refused.
type tokenSigner struct {
	key []byte
	ttl time.Duration
}

func (s tokenSigner) sign(u *User, fingerprint string) (string, error) {
	if len(s.key) == 0 {
		return "", nil
	}
	claims := &sessionClaims{
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
		Image: u.Image,
		Token: u.SessionToken,
		StandardClaims: jwt.StandardClaims{
			Subject:   u.ID,
			Id:        fingerprint,
			ExpiresAt: time.Now().Add(s.ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.key)
}

func (s tokenSigner) parse(raw, fingerprint string) (*User, error) {
	if len(s.key) == 0 {
		return nil, errNoKey
	}
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.key, nil
	})
	if err != nil {
		return nil, err
	}
	if claims.Id != fingerprint {
		return nil, errFingerprint
	}
	return &User{
		ID:           claims.Subject,
		Name:         claims.Name,
		Email:        claims.Email,
		Role:         claims.Role,
		Image:        claims.Image,
		SessionToken: claims.Token,
	}, nil
}

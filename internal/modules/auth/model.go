package auth

import "github.com/georgemunganga/pharmacy-storefront/internal/web"

const StatusBanned = "BANNED"

// User is the signed-in account as reported by the auth service.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status,omitempty"`
	Image  string `json:"image,omitempty"`
	// SessionToken is forwarded to the backend as Authorization.
	SessionToken string `json:"-"`
}

func (u *User) Viewer() *web.Viewer {
	return &web.Viewer{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Image: u.Image}
}

// Session is the body of GET /get-session. The auth service answers null
// when the browser has no session.
type Session struct {
	User    *User `json:"user"`
	Session struct {
		Token string `json:"token"`
	} `json:"session"`
}

package user

import "time"

const (
	StatusActive = "ACTIVE"
	StatusBanned = "BANNED"
)

// User is an account as the admin dashboard sees it.
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"emailVerified"`
	Role          string    `json:"role"`
	Status        string    `json:"status"`
	Image         string    `json:"image,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (u User) Banned() bool { return u.Status == StatusBanned }

type ProfileRequest struct {
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

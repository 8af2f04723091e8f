package category

import "time"

// Category groups medicines in the shop.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateRequest struct {
	Name string `json:"name"`
}

package blog

import (
	"time"

	"github.com/georgemunganga/pharmacy-storefront/internal/backend"
)

// Post is a health article published by the backend.
type Post struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Thumbnail  string    `json:"thumbnail"`
	Tags       []string  `json:"tags"`
	Views      int       `json:"views"`
	IsFeatured bool      `json:"isFeatured"`
	CreatedAt  time.Time `json:"createdAt"`
	Count      struct {
		Comments int `json:"comments"`
	} `json:"_count"`
}

// ListParams narrows GET /posts.
type ListParams struct {
	backend.ListParams
	Featured bool `url:"isFeatured,omitempty"`
}

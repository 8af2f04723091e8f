package medicine

import (
	"time"

	"github.com/georgemunganga/pharmacy-storefront/internal/backend"
	"github.com/georgemunganga/pharmacy-storefront/internal/modules/category"
)

// Medicine is a product listed by a seller.
type Medicine struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Price       float64            `json:"price"`
	Stock       int                `json:"stock"`
	ImageURL    string             `json:"imageUrl"`
	IsFeatured  bool               `json:"isFeatured"`
	CategoryID  string             `json:"categoryId"`
	Category    *category.Category `json:"category,omitempty"`
	SellerID    string             `json:"sellerId"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

func (m Medicine) InStock() bool { return m.Stock > 0 }

// Input is the body of create and update requests.
type Input struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	IsFeatured  bool    `json:"isFeatured"`
	CategoryID  string  `json:"categoryId"`
}

// Filter narrows GET /medicines.
type Filter struct {
	backend.ListParams
	CategoryID string  `url:"categoryId,omitempty"`
	MinPrice   float64 `url:"minPrice,omitempty"`
	MaxPrice   float64 `url:"maxPrice,omitempty"`
	SortBy     string  `url:"sortBy,omitempty"`
	SortOrder  string  `url:"sortOrder,omitempty"`
	SellerID   string  `url:"sellerId,omitempty"`
	Featured   bool    `url:"isFeatured,omitempty"`
}

// Sort fields the backend understands.
var sortFields = map[string]string{
	"name":      "name",
	"price":     "price",
	"stock":     "stock",
	"createdAt": "createdAt",
}

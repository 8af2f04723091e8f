package order

import (
	"time"

	"github.com/georgemunganga/pharmacy-storefront/internal/backend"
)

// Status represents the lifecycle state of an order.
type Status string

const (
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

// Statuses in lifecycle order.
var Statuses = []Status{StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}

// validTransitions defines the allowed status state machine.
var validTransitions = map[Status][]Status{
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// Next is the status "Next Status" moves to. Only processing and shipped
// orders have one.
func (s Status) Next() (Status, bool) {
	switch s {
	case StatusProcessing:
		return StatusShipped, true
	case StatusShipped:
		return StatusDelivered, true
	}
	return "", false
}

// CanBecome reports whether an order in s may move to target.
func (s Status) CanBecome(target Status) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Badge variant per status.
func (s Status) Variant() string {
	switch s {
	case StatusProcessing:
		return "secondary"
	case StatusShipped:
		return "outline"
	case StatusDelivered:
		return "success"
	}
	return "danger"
}

type MedicineRef struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Item is one line of an order.
type Item struct {
	ID         string       `json:"id"`
	MedicineID string       `json:"medicineId"`
	Quantity   int          `json:"quantity"`
	Price      float64      `json:"price"`
	Medicine   *MedicineRef `json:"medicine,omitempty"`
}

// Order is a customer's purchase.
type Order struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customerId"`
	CustomerName string    `json:"customerName"`
	Address      string    `json:"address"`
	TotalAmount  float64   `json:"totalAmount"`
	Status       Status    `json:"status"`
	Items        []Item    `json:"items,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Line is a cart line to order.
type Line struct {
	MedicineID string `json:"medicineId"`
	Quantity   int    `json:"quantity"`
}

// PlaceOrderRequest is the payload for creating a new order.
type PlaceOrderRequest struct {
	Address string `json:"address"`
	Items   []Line `json:"items"`
}

// UpdateStatusRequest is the payload for moving an order to a new status.
type UpdateStatusRequest struct {
	Status Status `json:"status"`
}

// Scope selects whose orders a list shows.
type Scope int

const (
	ScopeCustomer Scope = iota
	ScopeSeller
	ScopeAll
)

func (s Scope) path() string {
	switch s {
	case ScopeCustomer:
		return "/orders/my-orders"
	case ScopeSeller:
		return "/orders/seller-orders"
	}
	return "/orders"
}

// ListParams narrows an order list. Status is honoured by the admin list.
type ListParams struct {
	backend.ListParams
	Status string `url:"status,omitempty"`
}

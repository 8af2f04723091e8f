package cart

import (
	"context"
	"errors"
	"strings"

	"github.com/georgemunganga/pharmacy-storefront/internal/backend"
	"github.com/georgemunganga/pharmacy-storefront/internal/logger"
	"github.com/georgemunganga/pharmacy-storefront/internal/modules/order"
)

var (
	ErrEmptyCart   = errors.New("cart is empty")
	ErrMissingItem = errors.New("medicine is required")
	ErrOutOfStock  = errors.New("not enough stock")
)

// Service defines cart business logic.
type Service interface {
	Get(ctx context.Context) (*Cart, error)
	Add(ctx context.Context, medicineID string, quantity int) error
	// SetQuantity changes a line; zero or less removes it.
	SetQuantity(ctx context.Context, itemID string, quantity int) error
	Remove(ctx context.Context, itemID string) error
	// Checkout orders every line in the cart and empties it.
	Checkout(ctx context.Context, address string) (*order.Order, error)
}

type service struct {
	repo   Repository
	orders order.Service
}

func NewService(repo Repository, orders order.Service) Service {
	return &service{repo: repo, orders: orders}
}

func (s *service) Get(ctx context.Context) (*Cart, error) { return s.repo.Get(ctx) }

func (s *service) Add(ctx context.Context, medicineID string, quantity int) error {
	medicineID = strings.TrimSpace(medicineID)
	if medicineID == "" {
		return ErrMissingItem
	}
	return s.repo.Add(ctx, AddRequest{MedicineID: medicineID, Quantity: max(quantity, 1)})
}

func (s *service) SetQuantity(ctx context.Context, itemID string, quantity int) error {
	if quantity < 1 {
		return s.repo.Remove(ctx, itemID)
	}
	return s.repo.Update(ctx, itemID, UpdateRequest{Quantity: quantity})
}

func (s *service) Remove(ctx context.Context, itemID string) error {
	return s.repo.Remove(ctx, itemID)
}

func (s *service) Checkout(ctx context.Context, address string) (*order.Order, error) {
	c, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if len(c.Items) == 0 {
		return nil, ErrEmptyCart
	}
	lines := make([]order.Line, 0, len(c.Items))
	for _, it := range c.Items {
		if it.Medicine.ID != "" && it.Quantity > it.Medicine.Stock {
			return nil, ErrOutOfStock
		}
		lines = append(lines, order.Line{MedicineID: it.MedicineID, Quantity: it.Quantity})
	}

	o, err := s.orders.PlaceOrder(ctx, order.PlaceOrderRequest{Address: address, Items: lines})
	if err != nil {
		return nil, err
	}
	for _, it := range c.Items {
		if err := s.repo.Remove(ctx, it.ID); err != nil && !backend.IsNotFound(err) {
			logger.Log.WithError(err).WithField("item", it.ID).Warn("clear cart after checkout")
		}
	}
	return o, nil
}

package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/georgemunganga/pharmacy-storefront/internal/backend"
	"github.com/georgemunganga/pharmacy-storefront/internal/datatable"
)

var (
	ErrEmptyOrder        = errors.New("order must contain at least one item")
	ErrAddressRequired   = errors.New("shipping address is required")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInvalidTransition = errors.New("order cannot move to that status")
)

// Service defines the order management business logic.
type Service interface {
	// PlaceOrder validates the lines and address and creates the order.
	PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error)

	// List returns one page of orders visible in scope.
	List(ctx context.Context, scope Scope, q datatable.QueryState) (*backend.List[Order], error)

	GetOrder(ctx context.Context, id string) (*Order, error)

	// UpdateStatus moves an order to status when the lifecycle allows it.
	UpdateStatus(ctx context.Context, id string, status Status) (*Order, error)

	// Advance moves an order to its next status.
	Advance(ctx context.Context, id string) (*Order, error)

	// AdvanceMany advances every order that has a next status and reports
	// the failures together.
	AdvanceMany(ctx context.Context, orders []Order) error
}

type service struct {
	repo Repository
}

// NewService creates a new order service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error) {
	req.Address = strings.TrimSpace(req.Address)
	if req.Address == "" {
		return nil, ErrAddressRequired
	}
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, l := range req.Items {
		if l.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
	}
	return s.repo.Create(ctx, req)
}

func (s *service) List(ctx context.Context, scope Scope, q datatable.QueryState) (*backend.List[Order], error) {
	p := ListParams{ListParams: backend.ParamsFrom(q)}
	if scope == ScopeAll {
		p.Status = strings.Join(q.Filters["status"], ",")
	}
	list, err := s.repo.List(ctx, scope, p)
	if err != nil {
		return nil, err
	}
	// The customer and seller lists come back whole.
	if list.Meta.Total == 0 && len(list.Data) > 0 {
		list.Data, list.Meta = datatable.Paginate(list.Data, q)
	}
	return list, nil
}

func (s *service) GetOrder(ctx context.Context, id string) (*Order, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) UpdateStatus(ctx context.Context, id string, status Status) (*Order, error) {
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !o.Status.CanBecome(status) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, o.Status, status)
	}
	return s.repo.UpdateStatus(ctx, id, UpdateStatusRequest{Status: status})
}

func (s *service) Advance(ctx context.Context, id string) (*Order, error) {
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	next, ok := o.Status.Next()
	if !ok {
		return nil, fmt.Errorf("%w: %s is final", ErrInvalidTransition, o.Status)
	}
	return s.repo.UpdateStatus(ctx, id, UpdateStatusRequest{Status: next})
}

func (s *service) AdvanceMany(ctx context.Context, orders []Order) error {
	var errs []error
	for _, o := range orders {
		next, ok := o.Status.Next()
		if !ok {
			continue
		}
		if _, err := s.repo.UpdateStatus(ctx, o.ID, UpdateStatusRequest{Status: next}); err != nil {
			errs = append(errs, fmt.Errorf("order %s: %w", o.ID, err))
		}
	}
	return errors.Join(errs...)
}

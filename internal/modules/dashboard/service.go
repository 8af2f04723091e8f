package dashboard

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/georgemunganga/pharmacy-storefront/internal/backend"
	"github.com/georgemunganga/pharmacy-storefront/internal/datatable"
	"github.com/georgemunganga/pharmacy-storefront/internal/modules/category"
	"github.com/georgemunganga/pharmacy-storefront/internal/modules/medicine"
	"github.com/georgemunganga/pharmacy-storefront/internal/modules/order"
	"github.com/georgemunganga/pharmacy-storefront/internal/modules/user"
)

// lowStock is the stock level under which a product is flagged.
const lowStock = 10

// window is how many rows are fetched when a figure needs the whole list.
const window = 500

type Orders interface {
	List(ctx context.Context, scope order.Scope, q datatable.QueryState) (*backend.List[order.Order], error)
}

type Medicines interface {
	List(ctx context.Context, f medicine.Filter) (*backend.List[medicine.Medicine], error)
}

type Users interface {
	List(ctx context.Context, q datatable.QueryState) (*backend.List[user.User], error)
}

type Categories interface {
	List(ctx context.Context) ([]category.Category, error)
}

// Service computes the overview figures of each dashboard.
type Service interface {
	Customer(ctx context.Context) (*CustomerStats, error)
	Seller(ctx context.Context, sellerID string) (*SellerStats, error)
	Admin(ctx context.Context) (*AdminStats, error)
	// RecentOrders is the first page of orders in scope.
	RecentOrders(ctx context.Context, scope order.Scope, limit int) ([]order.Order, error)
}

type service struct {
	orders     Orders
	medicines  Medicines
	users      Users
	categories Categories
}

func NewService(orders Orders, medicines Medicines, users Users, categories Categories) Service {
	return &service{orders: orders, medicines: medicines, users: users, categories: categories}
}

func (s *service) Customer(ctx context.Context) (*CustomerStats, error) {
	list, err := s.orders.List(ctx, order.ScopeCustomer, datatable.QueryState{Page: 1, Limit: window})
	if err != nil {
		return nil, err
	}
	out := &CustomerStats{Orders: list.Meta.Total}
	for _, o := range list.Data {
		switch o.Status {
		case order.StatusProcessing, order.StatusShipped:
			out.InProgress++
		case order.StatusDelivered:
			out.Delivered++
		}
		if o.Status != order.StatusCancelled {
			out.Spent += o.TotalAmount
		}
	}
	return out, nil
}

func (s *service) Seller(ctx context.Context, sellerID string) (*SellerStats, error) {
	out := &SellerStats{}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := s.medicines.List(ctx, medicine.Filter{
			ListParams: backend.ListParams{Page: 1, Limit: window},
			SellerID:   sellerID,
		})
		if err != nil {
			return err
		}
		out.Products = max(list.Meta.Total, len(list.Data))
		for _, m := range list.Data {
			if m.Stock < lowStock {
				out.LowStock++
			}
		}
		return nil
	})
	g.Go(func() error {
		list, err := s.orders.List(ctx, order.ScopeSeller, datatable.QueryState{Page: 1, Limit: window})
		if err != nil {
			return err
		}
		out.Orders = list.Meta.Total
		for _, o := range list.Data {
			if o.Status == order.StatusProcessing {
				out.Pending++
			}
			if o.Status == order.StatusDelivered {
				out.Revenue += o.TotalAmount
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) Admin(ctx context.Context) (*AdminStats, error) {
	out := &AdminStats{ByStatus: make(map[string]int, len(order.Statuses))}
	var mu sync.Mutex
	one := datatable.QueryState{Page: 1, Limit: 1}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := s.users.List(ctx, one)
		if err == nil {
			out.Users = list.Meta.Total
		}
		return err
	})
	g.Go(func() error {
		list, err := s.medicines.List(ctx, medicine.Filter{ListParams: backend.ListParams{Page: 1, Limit: 1}})
		if err == nil {
			out.Medicines = list.Meta.Total
		}
		return err
	})
	g.Go(func() error {
		cats, err := s.categories.List(ctx)
		out.Categories = len(cats)
		return err
	})
	g.Go(func() error {
		list, err := s.orders.List(ctx, order.ScopeAll, one)
		if err == nil {
			out.Orders = list.Meta.Total
		}
		return err
	})
	for _, st := range order.Statuses {
		g.Go(func() error {
			q := one.WithFilter("status", []string{string(st)})
			list, err := s.orders.List(ctx, order.ScopeAll, q)
			if err != nil {
				return err
			}
			mu.Lock()
			out.ByStatus[string(st)] = list.Meta.Total
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) RecentOrders(ctx context.Context, scope order.Scope, limit int) ([]order.Order, error) {
	list, err := s.orders.List(ctx, scope, datatable.QueryState{Page: 1, Limit: limit})
	if err != nil {
		return nil, err
	}
	return list.Data, nil
}

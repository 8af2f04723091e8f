package user

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/georgemunganga/pharmacy-storefront/internal/backend"
	"github.com/georgemunganga/pharmacy-storefront/internal/datatable"
)

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, q datatable.QueryState) (*backend.List[User], error) {
	list, err := s.repo.List(ctx, ListParams{
		ListParams: backend.ParamsFrom(q),
		Role:       strings.Join(q.Filters["role"], ","),
		Status:     strings.Join(q.Filters["status"], ","),
	})
	if err != nil {
		return nil, err
	}
	if list.Meta.Total == 0 && len(list.Data) > 0 {
		list.Data, list.Meta = datatable.Paginate(list.Data, q)
	}
	return list, nil
}

func (s *service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) UpdateProfile(ctx context.Context, id, name, image string) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	image = strings.TrimSpace(image)
	if image != "" {
		u, err := url.Parse(image)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, ErrInvalidImage
		}
	}
	return s.repo.UpdateProfile(ctx, id, ProfileRequest{Name: name, Image: image})
}

func (s *service) SetStatus(ctx context.Context, actorID, id, status string) (*User, error) {
	if status != StatusActive && status != StatusBanned {
		return nil, ErrInvalidStatus
	}
	if id == actorID {
		return nil, ErrOwnAccount
	}
	return s.repo.SetStatus(ctx, id, StatusRequest{Status: status})
}

func (s *service) BanMany(ctx context.Context, actorID string, users []User) error {
	var errs []error
	for _, u := range users {
		if u.Banned() || u.ID == actorID {
			continue
		}
		if _, err := s.repo.SetStatus(ctx, u.ID, StatusRequest{Status: StatusBanned}); err != nil {
			errs = append(errs, fmt.Errorf("ban %s: %w", u.ID, err))
		}
	}
	return errors.Join(errs...)
}

func (s *service) Delete(ctx context.Context, actorID, id string) error {
	if id == actorID {
		return ErrOwnAccount
	}
	return s.repo.Delete(ctx, id)
}

package catalog

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Name        string
	Description string
	BasePrice   float64
}

type UpdateRequest struct {
	Name        *string
	Description *string
	BasePrice   *float64
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Entry, error)
	GetByID(ctx context.Context, id string) (*Entry, error)
	List(ctx context.Context, filter Filter) ([]*Entry, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Entry, error)
	Delete(ctx context.Context, id string) error
	BasePrices(ctx context.Context, ids []string) (map[string]float64, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Entry, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if req.BasePrice < 0 {
		return nil, ErrNegativePrice
	}

	e := &Entry{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		BasePrice:   req.BasePrice,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Entry, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Entry, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Entry, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		e.Name = name
	}
	if req.Description != nil {
		e.Description = strings.TrimSpace(*req.Description)
	}
	if req.BasePrice != nil {
		if *req.BasePrice < 0 {
			return nil, ErrNegativePrice
		}
		e.BasePrice = *req.BasePrice
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) BasePrices(ctx context.Context, ids []string) (map[string]float64, error) {
	return s.repo.BasePrices(ctx, ids)
}

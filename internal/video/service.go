package video

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Title       string
	Description string
	URL         string
	Published   bool
}

type UpdateRequest struct {
	Title       *string
	Description *string
	URL         *string
	Published   *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Video, error)
	GetByID(ctx context.Context, id string) (*Video, error)
	List(ctx context.Context, filter Filter) ([]*Video, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Video, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Video, error) {
	v := &Video{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		URL:         strings.TrimSpace(req.URL),
		Published:   req.Published,
	}
	if v.Title == "" {
		return nil, ErrTitleRequired
	}
	if v.URL == "" {
		return nil, ErrURLRequired
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Video, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Video, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Video, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		v.Title = title
	}
	if req.Description != nil {
		v.Description = strings.TrimSpace(*req.Description)
	}
	if req.URL != nil {
		url := strings.TrimSpace(*req.URL)
		if url == "" {
			return nil, ErrURLRequired
		}
		v.URL = url
	}
	if req.Published != nil {
		v.Published = *req.Published
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

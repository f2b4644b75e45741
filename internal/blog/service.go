package blog

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Title        string
	Slug         string
	Excerpt      string
	Content      string
	CoverImageID *string
	Published    bool
}

type UpdateRequest struct {
	Title        *string
	Slug         *string
	Excerpt      *string
	Content      *string
	CoverImageID *string
	Published    *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Post, error)
	GetByID(ctx context.Context, id string) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	List(ctx context.Context, filter Filter) ([]*Post, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Post, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Create stores a post. Without an explicit slug one is derived from the title.
func (s *service) Create(ctx context.Context, req CreateRequest) (*Post, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = Slugify(title)
	}
	if !ValidSlug(slug) {
		return nil, ErrInvalidSlug
	}

	p := &Post{
		Title:        title,
		Slug:         slug,
		Excerpt:      strings.TrimSpace(req.Excerpt),
		Content:      req.Content,
		CoverImageID: req.CoverImageID,
		Published:    req.Published,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Post, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	return s.repo.GetBySlug(ctx, strings.ToLower(slug))
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Post, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Post, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		p.Title = title
	}
	if req.Slug != nil {
		slug := strings.TrimSpace(*req.Slug)
		if !ValidSlug(slug) {
			return nil, ErrInvalidSlug
		}
		p.Slug = slug
	}
	if req.Excerpt != nil {
		p.Excerpt = strings.TrimSpace(*req.Excerpt)
	}
	if req.Content != nil {
		p.Content = *req.Content
	}
	if req.CoverImageID != nil {
		// An empty id clears the cover image.
		if *req.CoverImageID == "" {
			p.CoverImageID = nil
		} else {
			p.CoverImageID = req.CoverImageID
		}
	}
	if req.Published != nil {
		p.Published = *req.Published
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

package shop

import (
	"context"
	"strings"

	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/query"
)

type CreateRequest struct {
	Title        string
	Make         string
	Model        string
	Year         int
	Mileage      int
	Price        float64
	FuelType     string
	Transmission string
	Description  string
	ImageIDs     []string
	Status       Status
}

type UpdateRequest struct {
	Title        *string
	Make         *string
	Model        *string
	Year         *int
	Mileage      *int
	Price        *float64
	FuelType     *string
	Transmission *string
	Description  *string
	ImageIDs     *[]string
	Status       *Status
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Listing, error)
	GetByID(ctx context.Context, id string) (*Listing, error)
	List(ctx context.Context, filter Filter) ([]*Listing, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Listing, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Listing, error) {
	status := req.Status
	if status == "" {
		status = StatusAvailable
	}

	l := &Listing{
		Title:        strings.TrimSpace(req.Title),
		Make:         strings.TrimSpace(req.Make),
		Model:        strings.TrimSpace(req.Model),
		Year:         req.Year,
		Mileage:      req.Mileage,
		Price:        req.Price,
		FuelType:     strings.TrimSpace(req.FuelType),
		Transmission: strings.TrimSpace(req.Transmission),
		Description:  strings.TrimSpace(req.Description),
		ImageIDs:     req.ImageIDs,
		Status:       status,
	}
	if err := validate(l); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func validate(l *Listing) error {
	switch {
	case l.Title == "":
		return ErrTitleRequired
	case l.Make == "" || l.Model == "" || l.Year <= 0:
		return ErrVehicleMissing
	case l.Price < 0:
		return ErrNegativePrice
	case !l.Status.Valid():
		return ErrInvalidStatus
	}
	return nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Listing, error) {
	return s.repo.GetByID(ctx, id)
}

// List defaults to the newest listings first.
func (s *service) List(ctx context.Context, filter Filter) ([]*Listing, int, error) {
	filters := []query.Filter{query.TextSearch{Term: filter.Search}}
	if filter.Status != "" {
		if !filter.Status.Valid() {
			return nil, 0, ErrInvalidStatus
		}
		filters = append(filters, query.Eq{Field: "status", Value: string(filter.Status)})
	}
	if m := strings.TrimSpace(filter.Make); m != "" {
		filters = append(filters, query.Eq{Field: "make", Value: strings.ToLower(m)})
	}
	if filter.MinPrice != nil || filter.MaxPrice != nil {
		r := query.Range{Field: "price"}
		if filter.MinPrice != nil {
			r.From = *filter.MinPrice
		}
		if filter.MaxPrice != nil {
			r.To = *filter.MaxPrice
		}
		filters = append(filters, r)
	}
	if filter.MinYear > 0 {
		filters = append(filters, query.Range{Field: "year", From: filter.MinYear})
	}

	sort := query.Sort{Field: filter.SortBy, Desc: filter.SortDesc}
	if sort.Field == "" {
		sort = query.Sort{Field: "createdAt", Desc: true}
	}

	return s.repo.List(ctx, query.Params{
		Filters: filters,
		Sort:    sort,
		Limit:   filter.Limit,
		Offset:  (filter.Page - 1) * filter.Limit,
	})
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Listing, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	trimInto := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	trimInto(&l.Title, req.Title)
	trimInto(&l.Make, req.Make)
	trimInto(&l.Model, req.Model)
	trimInto(&l.FuelType, req.FuelType)
	trimInto(&l.Transmission, req.Transmission)
	trimInto(&l.Description, req.Description)
	if req.Year != nil {
		l.Year = *req.Year
	}
	if req.Mileage != nil {
		l.Mileage = *req.Mileage
	}
	if req.Price != nil {
		l.Price = *req.Price
	}
	if req.ImageIDs != nil {
		l.ImageIDs = *req.ImageIDs
	}
	if req.Status != nil {
		l.Status = *req.Status
	}

	if err := validate(l); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

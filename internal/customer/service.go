package customer

import (
	"context"

	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/query"
)

type Service interface {
	List(ctx context.Context, filter Filter) ([]*Customer, int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// List defaults to the most recently active customers first.
func (s *service) List(ctx context.Context, filter Filter) ([]*Customer, int, error) {
	sort := query.Sort{Field: filter.SortBy, Desc: filter.SortDesc}
	if sort.Field == "" {
		sort = query.Sort{Field: "lastBookingAt", Desc: true}
	}

	return s.repo.List(ctx, query.Params{
		Filters: []query.Filter{query.TextSearch{Term: filter.Search}},
		Sort:    sort,
		Limit:   filter.Limit,
		Offset:  (filter.Page - 1) * filter.Limit,
	})
}

package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nekogravitycat/garage-booking-backend/internal/catalog"
	"github.com/nekogravitycat/garage-booking-backend/internal/logging"
	"github.com/nekogravitycat/garage-booking-backend/internal/metrics"
	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/query"
	"github.com/nekogravitycat/garage-booking-backend/internal/vehicle"
)

// Catalog is what bookings need from the service catalog.
type Catalog interface {
	BasePrices(ctx context.Context, ids []string) (map[string]float64, error)
	GetByID(ctx context.Context, id string) (*catalog.Entry, error)
}

// CreateRequest is a customer's booking draft.
type CreateRequest struct {
	Customer     Customer
	Vehicle      Vehicle
	ServiceIDs   []string
	OtherService string
}

// ListRequest holds the dashboard's list options.
type ListRequest struct {
	Search      string
	Status      []Status // any of
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	ServiceID   string
	Page        int
	Limit       int
	SortBy      string
	SortDesc    bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, req ListRequest) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Booking, error)
	Delete(ctx context.Context, id string) error
	Receipt(ctx context.Context, id string) ([]byte, error)
}

type service struct {
	repo    Repository
	catalog Catalog
	now     func() time.Time
}

func NewService(repo Repository, catalog Catalog) Service {
	return &service{repo: repo, catalog: catalog, now: time.Now}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	cust := Customer{
		Name:  strings.TrimSpace(req.Customer.Name),
		Email: strings.ToLower(strings.TrimSpace(req.Customer.Email)),
		Phone: strings.TrimSpace(req.Customer.Phone),
	}
	if cust.Name == "" || cust.Email == "" || cust.Phone == "" {
		return nil, ErrCustomerRequired
	}

	veh := Vehicle{
		Registration: vehicle.NormalizeRegistration(req.Vehicle.Registration),
		Make:         strings.TrimSpace(req.Vehicle.Make),
		Model:        strings.TrimSpace(req.Vehicle.Model),
		Year:         req.Vehicle.Year,
	}
	if veh.Registration == "" {
		return nil, ErrVehicleRequired
	}

	ids := uniqueIDs(req.ServiceIDs)
	other := strings.TrimSpace(req.OtherService)
	if len(ids) == 0 && other == "" {
		return nil, ErrNoServices
	}

	// Referenced ids are not required to exist; unknown ones add nothing.
	prices, err := s.catalog.BasePrices(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load service prices: %w", err)
	}
	var total float64
	for _, id := range ids {
		total += prices[id]
	}

	b := &Booking{
		Customer:     cust,
		Vehicle:      veh,
		ServiceIDs:   ids,
		OtherService: other,
		TotalPrice:   total,
		Status:       StatusNewRequest,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	metrics.BookingsCreatedTotal.Inc()
	logging.FromContext(ctx).Info().
		Str("booking_id", b.ID).
		Int("services", len(ids)).
		Float64("total_price", total).
		Msg("booking created")
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, req ListRequest) ([]*Booking, int, error) {
	filters := []query.Filter{query.TextSearch{Term: req.Search}}

	if len(req.Status) > 0 {
		or := make(query.Or, 0, len(req.Status))
		for _, st := range req.Status {
			if !st.Valid() {
				return nil, 0, ErrInvalidStatus
			}
			or = append(or, query.Eq{Field: "status", Value: string(st)})
		}
		filters = append(filters, or)
	}
	if req.CreatedFrom != nil || req.CreatedTo != nil {
		r := query.Range{Field: "createdAt"}
		if req.CreatedFrom != nil {
			r.From = *req.CreatedFrom
		}
		if req.CreatedTo != nil {
			r.To = *req.CreatedTo
		}
		filters = append(filters, r)
	}
	if req.ServiceID != "" {
		filters = append(filters, query.Eq{Field: "serviceIds", Value: req.ServiceID})
	}

	sort := query.Sort{Field: req.SortBy, Desc: req.SortDesc}
	if sort.Field == "" {
		sort = query.Sort{Field: "createdAt", Desc: true}
	}

	return s.repo.List(ctx, query.Params{
		Filters: filters,
		Sort:    sort,
		Limit:   req.Limit,
		Offset:  (req.Page - 1) * req.Limit,
	})
}

func (s *service) UpdateStatus(ctx context.Context, id string, status Status) (*Booking, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	modified, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if modified == 0 {
		return nil, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

// Receipt renders a PDF summary of the booking.
func (s *service) Receipt(ctx context.Context, id string) ([]byte, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(b.ServiceIDs))
	for _, sid := range b.ServiceIDs {
		entry, err := s.catalog.GetByID(ctx, sid)
		switch {
		case err == nil:
			names = append(names, entry.Name)
		case errors.Is(err, catalog.ErrNotFound):
			names = append(names, "Service no longer offered")
		default:
			return nil, fmt.Errorf("failed to load service %s: %w", sid, err)
		}
	}

	return RenderReceipt(b, names, s.now())
}

// uniqueIDs trims ids and drops blanks and repeats, keeping first occurrences.
func uniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.ToLower(strings.TrimSpace(id))
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

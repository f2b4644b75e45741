package catalog

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "service not found")
	ErrNameRequired  = apperror.New(http.StatusBadRequest, "name is required")
	ErrNegativePrice = apperror.New(http.StatusBadRequest, "basePrice must not be negative")
)

// Entry is a bookable service offered by the garage.
type Entry struct {
	ID          string
	Name        string
	Description string
	BasePrice   float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter defines filter options for listing entries.
type Filter struct {
	Search   string
	Page     int
	Limit    int
	SortBy   string
	SortDesc bool
}

package shop

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/query"
)

var (
	ErrNotFound       = apperror.New(http.StatusNotFound, "listing not found")
	ErrTitleRequired  = apperror.New(http.StatusBadRequest, "title is required")
	ErrVehicleMissing = apperror.New(http.StatusBadRequest, "make, model and year are required")
	ErrNegativePrice  = apperror.New(http.StatusBadRequest, "price must not be negative")
	ErrInvalidStatus  = apperror.New(http.StatusBadRequest, "invalid listing status")
	ErrInvalidSort    = apperror.New(http.StatusBadRequest, "invalid sort field")
)

type Status string

const (
	StatusAvailable Status = "available"
	StatusReserved  Status = "reserved"
	StatusSold      Status = "sold"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusReserved, StatusSold:
		return true
	}
	return false
}

// Listing is a used car offered for sale.
type Listing struct {
	ID           string
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
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Filter defines parameters for listing cars. Zero values mean no filter.
type Filter struct {
	Search   string
	Status   Status
	Make     string
	MinPrice *float64
	MaxPrice *float64
	MinYear  int
	Page     int
	Limit    int
	SortBy   string
	SortDesc bool
}

var Columns = query.Columns{
	"createdAt": {Expr: "l.created_at"},
	"price":     {Expr: "l.price"},
	"year":      {Expr: "l.year"},
	"mileage":   {Expr: "l.mileage"},
	"status":    {Expr: "l.status"},
	"make":      {Expr: "lower(l.make)"},
}

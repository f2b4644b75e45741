package booking

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/query"
	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/search"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrInvalidStatus    = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrCustomerRequired = apperror.New(http.StatusBadRequest, "customer name, email and phone are required")
	ErrVehicleRequired  = apperror.New(http.StatusBadRequest, "vehicle registration is required")
	ErrNoServices       = apperror.New(http.StatusBadRequest, "select at least one service or describe the work needed")
	ErrInvalidSort      = apperror.New(http.StatusBadRequest, "invalid sort field")
)

type Status string

// Any status may follow any other; there is no transition graph.
const (
	StatusNewRequest Status = "New Request"
	StatusContacted  Status = "Contacted"
	StatusBooked     Status = "Booked"
	StatusCompleted  Status = "Completed"
	StatusCancelled  Status = "Cancelled"
)

// Statuses lists every status in workflow order.
func Statuses() []Status {
	return []Status{StatusNewRequest, StatusContacted, StatusBooked, StatusCompleted, StatusCancelled}
}

func (s Status) Valid() bool {
	for _, v := range Statuses() {
		if s == v {
			return true
		}
	}
	return false
}

// Customer is captured once at creation and never changed.
type Customer struct {
	Name  string
	Email string
	Phone string
}

// Vehicle is the registration plus the lookup attributes known at creation.
type Vehicle struct {
	Registration string
	Make         string
	Model        string
	Year         int
}

type Booking struct {
	ID           string
	Customer     Customer
	Vehicle      Vehicle
	ServiceIDs   []string
	OtherService string
	// TotalPrice is the sum of base prices when the booking was made.
	TotalPrice float64
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Columns are the filterable and sortable booking fields.
var Columns = query.Columns{
	"status":       {Expr: "b.status"},
	"createdAt":    {Expr: "b.created_at"},
	"totalPrice":   {Expr: "b.total_price"},
	"customerName": {Expr: "b.customer_name"},
	"email":        {Expr: "b.customer_email"},
	"registration": {Expr: "b.vehicle_registration"},
	"serviceIds":   {Expr: "b.service_ids", Array: true},
}

// SearchSpec describes free-text search over bookings.
var SearchSpec = search.Spec{
	Table:     "bookings",
	IndexName: "bookings_search_idx",
	Columns: []string{
		"b.customer_name", "b.customer_email", "b.customer_phone",
		"b.vehicle_registration", "b.vehicle_make", "b.vehicle_model",
	},
}

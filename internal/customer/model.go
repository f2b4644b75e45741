package customer

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/query"
)

var ErrInvalidSort = apperror.New(http.StatusBadRequest, "invalid sort field")

// Customer is derived from bookings sharing the same name, email and phone.
// There is no customer table.
type Customer struct {
	Name          string
	Email         string
	Phone         string
	Registrations []string
	BookingCount  int
	// TotalSpent sums booking totals, leaving out cancelled bookings.
	TotalSpent     float64
	FirstBookingAt time.Time
	LastBookingAt  time.Time
}

// Filter defines filter options for listing customers.
type Filter struct {
	Search   string
	Page     int
	Limit    int
	SortBy   string
	SortDesc bool
}

// Columns are the sortable customer fields. Aggregates may only be sorted on.
var Columns = query.Columns{
	"name":           {Expr: "b.customer_name"},
	"email":          {Expr: "b.customer_email"},
	"bookingCount":   {Expr: "count(*)"},
	"totalSpent":     {Expr: "total_spent"},
	"firstBookingAt": {Expr: "min(b.created_at)"},
	"lastBookingAt":  {Expr: "max(b.created_at)"},
}

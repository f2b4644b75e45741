package http

import (
	"time"

	"github.com/nekogravitycat/garage-booking-backend/internal/customer"
	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/request"
)

type ListCustomersRequest struct {
	request.ListParams
	SortBy string `form:"sortBy" binding:"omitempty,oneof=name email bookingCount totalSpent firstBookingAt lastBookingAt"`
}

type CustomerResponse struct {
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Registrations  []string  `json:"registrations"`
	BookingCount   int       `json:"bookingCount"`
	TotalSpent     float64   `json:"totalSpent"`
	FirstBookingAt time.Time `json:"firstBookingAt"`
	LastBookingAt  time.Time `json:"lastBookingAt"`
}

func NewCustomerResponse(c *customer.Customer) CustomerResponse {
	regs := c.Registrations
	if regs == nil {
		regs = []string{}
	}
	return CustomerResponse{
		Name:           c.Name,
		Email:          c.Email,
		Phone:          c.Phone,
		Registrations:  regs,
		BookingCount:   c.BookingCount,
		TotalSpent:     c.TotalSpent,
		FirstBookingAt: c.FirstBookingAt,
		LastBookingAt:  c.LastBookingAt,
	}
}

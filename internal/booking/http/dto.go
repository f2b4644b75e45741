package http

import (
	"time"

	"github.com/nekogravitycat/garage-booking-backend/internal/booking"
	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/request"
)

// ListBookingsRequest defines query parameters for the dashboard list.
// status may repeat to match any of several statuses.
type ListBookingsRequest struct {
	request.ListParams
	Status      []string   `form:"status" binding:"omitempty,max=5,dive,booking_status"`
	CreatedFrom *time.Time `form:"createdFrom" time_format:"2006-01-02T15:04:05Z07:00"`
	CreatedTo   *time.Time `form:"createdTo" time_format:"2006-01-02T15:04:05Z07:00"`
	ServiceID   string     `form:"serviceId" binding:"omitempty,uuid"`
	SortBy      string     `form:"sortBy" binding:"omitempty,oneof=createdAt totalPrice status customerName"`
}

type CustomerPayload struct {
	Name  string `json:"name" binding:"required,max=100"`
	Email string `json:"email" binding:"required,email,max=254"`
	Phone string `json:"phone" binding:"required,min=7,max=20"`
}

type VehiclePayload struct {
	RegistrationNumber string `json:"registrationNumber" binding:"required,vrm"`
	Make               string `json:"make" binding:"max=50"`
	Model              string `json:"model" binding:"max=50"`
	YearOfManufacture  int    `json:"yearOfManufacture" binding:"omitempty,min=1900,max=2100"`
}

// CreateBookingRequest is the public booking form.
type CreateBookingRequest struct {
	Customer     CustomerPayload `json:"customer"`
	Vehicle      VehiclePayload  `json:"vehicle"`
	ServiceIDs   []string        `json:"serviceIds" binding:"omitempty,max=20,dive,uuid"`
	OtherService string          `json:"otherService" binding:"max=500"`
}

type UpdateBookingRequest struct {
	Status string `json:"status" binding:"required,booking_status"`
}

type CustomerResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type VehicleResponse struct {
	RegistrationNumber string `json:"registrationNumber"`
	Make               string `json:"make"`
	Model              string `json:"model"`
	YearOfManufacture  int    `json:"yearOfManufacture"`
}

type BookingResponse struct {
	ID           string           `json:"id"`
	Customer     CustomerResponse `json:"customer"`
	Vehicle      VehicleResponse  `json:"vehicle"`
	ServiceIDs   []string         `json:"serviceIds"`
	OtherService string           `json:"otherService"`
	TotalPrice   float64          `json:"totalPrice"`
	Status       string           `json:"status"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	serviceIDs := b.ServiceIDs
	if serviceIDs == nil {
		serviceIDs = []string{}
	}
	return BookingResponse{
		ID: b.ID,
		Customer: CustomerResponse{
			Name:  b.Customer.Name,
			Email: b.Customer.Email,
			Phone: b.Customer.Phone,
		},
		Vehicle: VehicleResponse{
			RegistrationNumber: b.Vehicle.Registration,
			Make:               b.Vehicle.Make,
			Model:              b.Vehicle.Model,
			YearOfManufacture:  b.Vehicle.Year,
		},
		ServiceIDs:   serviceIDs,
		OtherService: b.OtherService,
		TotalPrice:   b.TotalPrice,
		Status:       string(b.Status),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

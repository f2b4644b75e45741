package http

import (
	"github.com/go-playground/validator/v10"

	"github.com/nekogravitycat/garage-booking-backend/internal/booking"
	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/validation"
)

// RegisterValidators installs the "booking_status" binding tag. Statuses
// contain spaces, which oneof cannot express.
func RegisterValidators() error {
	return validation.Register("booking_status", func(fl validator.FieldLevel) bool {
		return booking.Status(fl.Field().String()).Valid()
	})
}

package http

import (
	"github.com/go-playground/validator/v10"

	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/validation"
	"github.com/nekogravitycat/garage-booking-backend/internal/vehicle"
)

// RegisterValidators installs the "vrm" binding tag for UK registration marks.
func RegisterValidators() error {
	return validation.Register("vrm", func(fl validator.FieldLevel) bool {
		return vehicle.ValidRegistration(fl.Field().String())
	})
}

package vehicle

import (
	"net/http"

	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/apperror"
)

var (
	ErrInvalidFormat = apperror.New(http.StatusBadRequest, "invalid registration number format")
	ErrNotFound      = apperror.New(http.StatusNotFound, "vehicle not found")
	ErrRateLimited   = apperror.New(http.StatusTooManyRequests, "vehicle lookup rate limited, try again later")
	ErrUpstream      = apperror.New(http.StatusBadGateway, "vehicle lookup service unavailable")
)

// Unknown is the placeholder for text attributes the registry did not return.
const Unknown = "Unknown"

// Vehicle is the normalized registry record. Every field is always set.
type Vehicle struct {
	RegistrationNumber string `json:"registrationNumber"`
	Make               string `json:"make"`
	Model              string `json:"model"`
	Colour             string `json:"colour"`
	FuelType           string `json:"fuelType"`
	EngineCapacity     int    `json:"engineCapacity"`
	YearOfManufacture  int    `json:"yearOfManufacture"`
	MotStatus          string `json:"motStatus"`
	TaxStatus          string `json:"taxStatus"`
	MotExpiryDate      string `json:"motExpiryDate"`
	TaxDueDate         string `json:"taxDueDate"`
}

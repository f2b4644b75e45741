package http

import (
	"time"

	"github.com/nekogravitycat/garage-booking-backend/internal/catalog"
	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/request"
)

type ListServicesRequest struct {
	request.ListParams
	SortBy string `form:"sortBy" binding:"omitempty,oneof=name basePrice createdAt"`
}

type CreateServiceRequest struct {
	Name        string   `json:"name" binding:"required,max=100"`
	Description string   `json:"description" binding:"max=2000"`
	BasePrice   *float64 `json:"basePrice" binding:"required,min=0"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=100"`
	Description *string  `json:"description" binding:"omitempty,max=2000"`
	BasePrice   *float64 `json:"basePrice" binding:"omitempty,min=0"`
}

type ServiceResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	BasePrice   float64   `json:"basePrice"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewServiceResponse(e *catalog.Entry) ServiceResponse {
	return ServiceResponse{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		BasePrice:   e.BasePrice,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

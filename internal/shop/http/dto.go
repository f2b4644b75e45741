package http

import (
	"time"

	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/garage-booking-backend/internal/shop"
)

type ListListingsRequest struct {
	request.ListParams
	Status   string   `form:"status" binding:"omitempty,oneof=available reserved sold"`
	Make     string   `form:"make" binding:"omitempty,max=50"`
	MinPrice *float64 `form:"minPrice" binding:"omitempty,min=0"`
	MaxPrice *float64 `form:"maxPrice" binding:"omitempty,min=0"`
	MinYear  int      `form:"minYear" binding:"omitempty,min=1900,max=2100"`
	SortBy   string   `form:"sortBy" binding:"omitempty,oneof=createdAt price year mileage make"`
}

type CreateListingRequest struct {
	Title        string   `json:"title" binding:"required,max=200"`
	Make         string   `json:"make" binding:"required,max=50"`
	Model        string   `json:"model" binding:"required,max=50"`
	Year         int      `json:"year" binding:"required,min=1900,max=2100"`
	Mileage      int      `json:"mileage" binding:"min=0"`
	Price        *float64 `json:"price" binding:"required,min=0"`
	FuelType     string   `json:"fuelType" binding:"max=30"`
	Transmission string   `json:"transmission" binding:"max=30"`
	Description  string   `json:"description" binding:"max=5000"`
	ImageIDs     []string `json:"imageIds" binding:"omitempty,max=30,dive,uuid"`
	Status       string   `json:"status" binding:"omitempty,oneof=available reserved sold"`
}

type UpdateListingRequest struct {
	Title        *string   `json:"title" binding:"omitempty,max=200"`
	Make         *string   `json:"make" binding:"omitempty,max=50"`
	Model        *string   `json:"model" binding:"omitempty,max=50"`
	Year         *int      `json:"year" binding:"omitempty,min=1900,max=2100"`
	Mileage      *int      `json:"mileage" binding:"omitempty,min=0"`
	Price        *float64  `json:"price" binding:"omitempty,min=0"`
	FuelType     *string   `json:"fuelType" binding:"omitempty,max=30"`
	Transmission *string   `json:"transmission" binding:"omitempty,max=30"`
	Description  *string   `json:"description" binding:"omitempty,max=5000"`
	ImageIDs     *[]string `json:"imageIds" binding:"omitempty,max=30,dive,uuid"`
	Status       *string   `json:"status" binding:"omitempty,oneof=available reserved sold"`
}

type ListingResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	Mileage      int       `json:"mileage"`
	Price        float64   `json:"price"`
	FuelType     string    `json:"fuelType"`
	Transmission string    `json:"transmission"`
	Description  string    `json:"description"`
	ImageIDs     []string  `json:"imageIds"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func NewListingResponse(l *shop.Listing) ListingResponse {
	images := l.ImageIDs
	if images == nil {
		images = []string{}
	}
	return ListingResponse{
		ID:           l.ID,
		Title:        l.Title,
		Make:         l.Make,
		Model:        l.Model,
		Year:         l.Year,
		Mileage:      l.Mileage,
		Price:        l.Price,
		FuelType:     l.FuelType,
		Transmission: l.Transmission,
		Description:  l.Description,
		ImageIDs:     images,
		Status:       string(l.Status),
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

package http

import (
	"time"

	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/garage-booking-backend/internal/video"
)

type ListVideosRequest struct {
	request.ListParams
	Published *bool  `form:"published"`
	SortBy    string `form:"sortBy" binding:"omitempty,oneof=createdAt title"`
}

type CreateVideoRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"max=2000"`
	URL         string `json:"url" binding:"required,url,max=500"`
	Published   bool   `json:"published"`
}

type UpdateVideoRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	URL         *string `json:"url" binding:"omitempty,url,max=500"`
	Published   *bool   `json:"published"`
}

type VideoResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewVideoResponse(v *video.Video) VideoResponse {
	return VideoResponse{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		URL:         v.URL,
		Published:   v.Published,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

package http

import (
	"time"

	"github.com/nekogravitycat/garage-booking-backend/internal/blog"
	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/request"
)

type ListPostsRequest struct {
	request.ListParams
	// Published is honoured for admins only; everyone else sees published posts.
	Published *bool  `form:"published"`
	SortBy    string `form:"sortBy" binding:"omitempty,oneof=createdAt updatedAt title"`
}

type CreatePostRequest struct {
	Title        string  `json:"title" binding:"required,max=200"`
	Slug         string  `json:"slug" binding:"omitempty,max=200"`
	Excerpt      string  `json:"excerpt" binding:"max=500"`
	Content      string  `json:"content" binding:"max=100000"`
	CoverImageID *string `json:"coverImageId" binding:"omitempty,uuid"`
	Published    bool    `json:"published"`
}

type UpdatePostRequest struct {
	Title   *string `json:"title" binding:"omitempty,max=200"`
	Slug    *string `json:"slug" binding:"omitempty,max=200"`
	Excerpt *string `json:"excerpt" binding:"omitempty,max=500"`
	Content *string `json:"content" binding:"omitempty,max=100000"`
	// An empty string removes the cover image.
	CoverImageID *string `json:"coverImageId" binding:"omitempty,uuid|len=0"`
	Published    *bool   `json:"published"`
}

type PostResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Excerpt      string    `json:"excerpt"`
	Content      string    `json:"content"`
	CoverImageID *string   `json:"coverImageId"`
	Published    bool      `json:"published"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func NewPostResponse(p *blog.Post) PostResponse {
	return PostResponse{
		ID:           p.ID,
		Title:        p.Title,
		Slug:         p.Slug,
		Excerpt:      p.Excerpt,
		Content:      p.Content,
		CoverImageID: p.CoverImageID,
		Published:    p.Published,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

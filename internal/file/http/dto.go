package http

import (
	"time"

	"github.com/nekogravitycat/garage-booking-backend/internal/file"
)

type FileResponse struct {
	ID           string    `json:"id"`
	OriginalName string    `json:"originalName"`
	ContentType  string    `json:"contentType"`
	Size         int64     `json:"size"`
	URL          string    `json:"url"`
	ThumbnailURL *string   `json:"thumbnailUrl"`
	CreatedAt    time.Time `json:"createdAt"`
}

func NewFileResponse(f *file.File) FileResponse {
	var thumb *string
	if f.ThumbnailKey != nil {
		t := file.ThumbnailURL(f.ID)
		thumb = &t
	}
	return FileResponse{
		ID:           f.ID,
		OriginalName: f.OriginalName,
		ContentType:  f.ContentType,
		Size:         f.Size,
		URL:          file.FileURL(f.ID),
		ThumbnailURL: thumb,
		CreatedAt:    f.CreatedAt,
	}
}

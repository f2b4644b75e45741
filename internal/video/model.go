package video

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "video not found")
	ErrTitleRequired = apperror.New(http.StatusBadRequest, "title is required")
	ErrURLRequired   = apperror.New(http.StatusBadRequest, "url is required")
)

// Video links an externally hosted clip to the public site.
type Video struct {
	ID          string
	Title       string
	Description string
	URL         string
	Published   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Filter struct {
	Search    string
	Published *bool
	Page      int
	Limit     int
	SortBy    string
	SortDesc  bool
}

package blog

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "blog post not found")
	ErrTitleRequired = apperror.New(http.StatusBadRequest, "title is required")
	ErrInvalidSlug   = apperror.New(http.StatusBadRequest, "slug may only contain lowercase letters, digits and single dashes")
	ErrSlugTaken     = apperror.New(http.StatusConflict, "slug already in use")
)

// Post is a blog article on the public site.
type Post struct {
	ID           string
	Title        string
	Slug         string
	Excerpt      string
	Content      string
	CoverImageID *string
	Published    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Filter defines parameters for listing posts.
type Filter struct {
	Search    string
	Published *bool
	Page      int
	Limit     int
	SortBy    string
	SortDesc  bool
}

var (
	slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	slugStrip   = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify derives a URL slug from a title.
func Slugify(title string) string {
	s := slugStrip.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}

func ValidSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}

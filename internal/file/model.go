package file

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/apperror"
)

// MaxUploadBytes caps a single upload.
const MaxUploadBytes = 10 << 20

// MaxImagePixels caps the decoded size of an upload. A small compressed file can
// declare dimensions that would need gigabytes once decoded.
const MaxImagePixels = 50_000_000

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "file not found")
	ErrNoThumbnail       = apperror.New(http.StatusNotFound, "thumbnail not available for this file")
	ErrTooLarge          = apperror.New(http.StatusRequestEntityTooLarge, "file exceeds the 10 MiB limit")
	ErrUnsupportedType   = apperror.New(http.StatusUnsupportedMediaType, "only JPEG, PNG and GIF images are accepted")
	ErrInvalidImage      = apperror.New(http.StatusBadRequest, "file is not a readable image")
	ErrImageTooLarge     = apperror.New(http.StatusRequestEntityTooLarge, "image exceeds 50 megapixels")
	ErrFileFieldRequired = apperror.New(http.StatusBadRequest, "file is required")
)

// allowedTypes maps accepted content types to the extension stored on disk.
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// File is the metadata of an uploaded image.
type File struct {
	ID           string
	OriginalName string
	ContentType  string
	Size         int64
	StorageKey   string
	ThumbnailKey *string
	UploadedBy   *string
	CreatedAt    time.Time
}

// FileURL returns the public URL for accessing a file by its ID.
func FileURL(id string) string {
	return "/v1/files/" + id
}

// ThumbnailURL returns the public URL for accessing a file's thumbnail by its ID.
func ThumbnailURL(id string) string {
	return "/v1/files/" + id + "/thumbnail"
}

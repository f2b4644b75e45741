package http

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/garage-booking-backend/internal/auth"
	"github.com/nekogravitycat/garage-booking-backend/internal/file"
	"github.com/nekogravitycat/garage-booking-backend/internal/logging"
	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/response"
)

// multipartOverhead leaves room for form boundaries around the file part.
const multipartOverhead = 1 << 20

type Handler struct {
	service file.Service
}

func NewHandler(service file.Service) *Handler {
	return &Handler{service: service}
}

// Upload accepts one image in the "file" form field.
func (h *Handler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, file.MaxUploadBytes+multipartOverhead)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, file.ErrTooLarge)
			return
		}
		response.Error(c, file.ErrFileFieldRequired)
		return
	}

	src, err := header.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer src.Close()

	var uploadedBy string
	if p, ok := auth.CurrentPrincipal(c); ok {
		uploadedBy = p.UserID
	}

	f, err := h.service.Upload(c.Request.Context(), file.UploadInput{
		Filename:   header.Filename,
		Content:    src,
		UploadedBy: uploadedBy,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewFileResponse(f))
}

// ServeFile streams the original image.
func (h *Handler) ServeFile(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid id", err)
		return
	}

	stream, f, err := h.service.Open(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	h.stream(c, stream, f.ContentType, f.OriginalName)
}

// ServeThumbnail streams the JPEG preview.
func (h *Handler) ServeThumbnail(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid id", err)
		return
	}

	stream, f, err := h.service.OpenThumbnail(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	h.stream(c, stream, "image/jpeg", f.OriginalName+"_thumb.jpg")
}

func (h *Handler) stream(c *gin.Context, src io.Reader, contentType, filename string) {
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": filename}))
	// Stored objects never change once written.
	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.Status(http.StatusOK)

	if _, err := io.Copy(c.Writer, src); err != nil {
		// Headers are already sent.
		logging.FromContext(c.Request.Context()).Warn().Err(err).Msg("file stream interrupted")
	}
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid id", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

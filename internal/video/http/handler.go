package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/garage-booking-backend/internal/auth"
	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/garage-booking-backend/internal/video"
)

type Handler struct {
	service video.Service
}

func NewHandler(service video.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListVideosRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	req.Normalize()

	published := req.Published
	if !auth.IsAdminRequest(c) {
		t := true
		published = &t
	}

	videos, total, err := h.service.List(c.Request.Context(), video.Filter{
		Search:    req.Search,
		Published: published,
		Page:      req.Page,
		Limit:     req.Limit,
		SortBy:    req.SortBy,
		SortDesc:  req.Desc(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]VideoResponse, len(videos))
	for i, v := range videos {
		items[i] = NewVideoResponse(v)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.Limit, total))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid id", err)
		return
	}

	v, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !v.Published && !auth.IsAdminRequest(c) {
		response.Error(c, video.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, NewVideoResponse(v))
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	v, err := h.service.Create(c.Request.Context(), video.CreateRequest{
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		Published:   req.Published,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewVideoResponse(v))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid id", err)
		return
	}

	var req UpdateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	v, err := h.service.Update(c.Request.Context(), uri.ID, video.UpdateRequest{
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		Published:   req.Published,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewVideoResponse(v))
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

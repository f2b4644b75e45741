package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nekogravitycat/garage-booking-backend/internal/auth"
	"github.com/nekogravitycat/garage-booking-backend/internal/blog"
	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/response"
)

type Handler struct {
	service blog.Service
}

func NewHandler(service blog.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListPostsRequest
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

	posts, total, err := h.service.List(c.Request.Context(), blog.Filter{
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

	items := make([]PostResponse, len(posts))
	for i, p := range posts {
		items[i] = NewPostResponse(p)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.Limit, total))
}

// Get resolves the path segment as an id when it parses as a UUID and as a
// slug otherwise. Drafts are hidden from everyone but admins.
func (h *Handler) Get(c *gin.Context) {
	key := c.Param("id")

	var (
		p   *blog.Post
		err error
	)
	if uuid.Validate(key) == nil {
		p, err = h.service.GetByID(c.Request.Context(), key)
	} else {
		p, err = h.service.GetBySlug(c.Request.Context(), key)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	if !p.Published && !auth.IsAdminRequest(c) {
		response.Error(c, blog.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, NewPostResponse(p))
}

func (h *Handler) Create(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	p, err := h.service.Create(c.Request.Context(), blog.CreateRequest{
		Title:        req.Title,
		Slug:         req.Slug,
		Excerpt:      req.Excerpt,
		Content:      req.Content,
		CoverImageID: req.CoverImageID,
		Published:    req.Published,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewPostResponse(p))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid id", err)
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	p, err := h.service.Update(c.Request.Context(), uri.ID, blog.UpdateRequest{
		Title:        req.Title,
		Slug:         req.Slug,
		Excerpt:      req.Excerpt,
		Content:      req.Content,
		CoverImageID: req.CoverImageID,
		Published:    req.Published,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewPostResponse(p))
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

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/garage-booking-backend/internal/shop"
)

type Handler struct {
	service shop.Service
}

func NewHandler(service shop.Service) *Handler {
	return &Handler{service: service}
}

// List shows every listing including sold ones, which the site badges.
func (h *Handler) List(c *gin.Context) {
	var req ListListingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	req.Normalize()

	listings, total, err := h.service.List(c.Request.Context(), shop.Filter{
		Search:   req.Search,
		Status:   shop.Status(req.Status),
		Make:     req.Make,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
		MinYear:  req.MinYear,
		Page:     req.Page,
		Limit:    req.Limit,
		SortBy:   req.SortBy,
		SortDesc: req.Desc(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ListingResponse, len(listings))
	for i, l := range listings {
		items[i] = NewListingResponse(l)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.Limit, total))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid id", err)
		return
	}

	l, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewListingResponse(l))
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	l, err := h.service.Create(c.Request.Context(), shop.CreateRequest{
		Title:        req.Title,
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		Mileage:      req.Mileage,
		Price:        *req.Price,
		FuelType:     req.FuelType,
		Transmission: req.Transmission,
		Description:  req.Description,
		ImageIDs:     req.ImageIDs,
		Status:       shop.Status(req.Status),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewListingResponse(l))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid id", err)
		return
	}

	var req UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	var status *shop.Status
	if req.Status != nil {
		s := shop.Status(*req.Status)
		status = &s
	}

	l, err := h.service.Update(c.Request.Context(), uri.ID, shop.UpdateRequest{
		Title:        req.Title,
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		Mileage:      req.Mileage,
		Price:        req.Price,
		FuelType:     req.FuelType,
		Transmission: req.Transmission,
		Description:  req.Description,
		ImageIDs:     req.ImageIDs,
		Status:       status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewListingResponse(l))
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

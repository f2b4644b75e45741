package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/garage-booking-backend/internal/customer"
	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/response"
)

type Handler struct {
	service customer.Service
}

func NewHandler(service customer.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListCustomersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	req.Normalize()

	customers, total, err := h.service.List(c.Request.Context(), customer.Filter{
		Search:   req.Search,
		Page:     req.Page,
		Limit:    req.Limit,
		SortBy:   req.SortBy,
		SortDesc: req.Desc(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]CustomerResponse, len(customers))
	for i, cu := range customers {
		items[i] = NewCustomerResponse(cu)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.Limit, total))
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/garage-booking-backend/internal/vehicle"
)

// LookupRequest is the body of POST /vehicle-lookup. Format errors are left to
// the gateway so they share its error message.
type LookupRequest struct {
	RegistrationNumber string `json:"registrationNumber" binding:"required,max=16"`
}

type Handler struct {
	gateway vehicle.Gateway
}

func NewHandler(gateway vehicle.Gateway) *Handler {
	return &Handler{gateway: gateway}
}

// Lookup resolves a registration mark through the vehicle registry.
func (h *Handler) Lookup(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	v, err := h.gateway.Lookup(c.Request.Context(), req.RegistrationNumber)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, v)
}

// RegisterRoutes registers the public lookup route behind the given limiter.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, limiter gin.HandlerFunc) {
	g.POST("/vehicle-lookup", limiter, h.Lookup)
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/garage-booking-backend/internal/metrics"
	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/garage-booking-backend/internal/pricing"
)

// EstimateRequest is the body of POST /estimates.
type EstimateRequest struct {
	ServiceTypes      []string `json:"serviceTypes" binding:"required,min=1,max=20,dive,required"`
	Make              string   `json:"make" binding:"max=50"`
	EngineCapacity    int      `json:"engineCapacity" binding:"min=0,max=10000"`
	YearOfManufacture int      `json:"yearOfManufacture" binding:"min=0"`
}

type Handler struct {
	calc *pricing.Calculator
}

func NewHandler(calc *pricing.Calculator) *Handler {
	return &Handler{calc: calc}
}

// Estimate prices the requested services for one vehicle.
func (h *Handler) Estimate(c *gin.Context) {
	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	est, err := h.calc.Estimate(req.ServiceTypes, req.Make, req.EngineCapacity, req.YearOfManufacture)
	if err != nil {
		response.Error(c, err)
		return
	}

	metrics.EstimatesTotal.Inc()
	c.JSON(http.StatusOK, est)
}

// ServiceTypes lists the priced service types.
func (h *Handler) ServiceTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.calc.ServiceTypes()})
}

func RegisterRoutes(g *gin.RouterGroup, h *Handler, limiter gin.HandlerFunc) {
	estimates := g.Group("/estimates")
	{
		estimates.POST("", limiter, h.Estimate)
		estimates.GET("/service-types", h.ServiceTypes)
	}
}

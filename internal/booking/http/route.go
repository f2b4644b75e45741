package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers booking routes. Creating a booking is public and
// rate limited; everything else is an admin route enforced by the gate.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, limiter gin.HandlerFunc) {
	bookings := g.Group("/bookings")
	{
		bookings.POST("", limiter, h.Create)
		bookings.GET("", h.List)
		bookings.GET("/:id", h.Get)
		bookings.GET("/:id/receipt", h.Receipt)
		bookings.PATCH("/:id", h.Update)
		bookings.DELETE("/:id", h.Delete)
	}
}

package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the service catalog. Mutations are admin routes
// enforced by the authorization gate.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	services := g.Group("/services")
	{
		services.GET("", h.List)
		services.GET("/:id", h.Get)
		services.POST("", h.Create)
		services.PATCH("/:id", h.Update)
		services.DELETE("/:id", h.Delete)
	}
}

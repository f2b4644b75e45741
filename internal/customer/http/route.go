package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the admin-only customer directory.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	g.GET("/customers", h.List)
}

package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers blog routes. Reads are public; mutations are
// admin routes enforced by the authorization gate.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	blogs := g.Group("/blogs")
	{
		blogs.GET("", h.List)
		blogs.GET("/:id", h.Get)
		blogs.POST("", h.Create)
		blogs.PATCH("/:id", h.Update)
		blogs.DELETE("/:id", h.Delete)
	}
}

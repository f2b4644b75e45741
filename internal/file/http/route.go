package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers file routes. Images are public; uploads and
// deletes are admin routes enforced by the authorization gate.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	files := g.Group("/files")
	{
		files.POST("", h.Upload)
		files.GET("/:id", h.ServeFile)
		files.GET("/:id/thumbnail", h.ServeThumbnail)
		files.DELETE("/:id", h.Delete)
	}
}

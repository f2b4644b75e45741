package http

import "github.com/gin-gonic/gin"

func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	videos := g.Group("/videos")
	{
		videos.GET("", h.List)
		videos.GET("/:id", h.Get)
		videos.POST("", h.Create)
		videos.PATCH("/:id", h.Update)
		videos.DELETE("/:id", h.Delete)
	}
}

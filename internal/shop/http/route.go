package http

import "github.com/gin-gonic/gin"

func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	shops := g.Group("/shops")
	{
		shops.GET("", h.List)
		shops.GET("/:id", h.Get)
		shops.POST("", h.Create)
		shops.PATCH("/:id", h.Update)
		shops.DELETE("/:id", h.Delete)
	}
}

package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers login, profile and user management routes.
// Access to /users is decided by the authorization gate.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, requireAuth gin.HandlerFunc) {
	g.POST("/auth/login", h.Login)

	me := g.Group("/me", requireAuth)
	{
		me.GET("", h.Me)
		me.PATCH("", h.UpdateMe)
	}

	users := g.Group("/users")
	{
		users.GET("", h.List)
		users.POST("", h.Create)
		users.GET("/:id", h.Get)
		users.PATCH("/:id", h.Update)
	}
}

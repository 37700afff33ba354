package subscription

import (
	"go-mandor/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	subs := r.Group("/subscription")
	subs.Use(middleware.AuthMiddleware())
	{
		subs.GET("", handler.Get)
		// Upgrades skip the action quota on purpose: an exhausted free
		// tier must still be able to pay its way out.
		subs.POST("/upgrade", middleware.RoleMiddleware("OWNER"), handler.Upgrade)
	}
}

package rbac

import (
	"go-mandor/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	rbac := r.Group("/rbac")
	rbac.Use(middleware.AuthMiddleware())
	{
		rbac.POST("/enforce", handler.Enforce)
		rbac.GET("/roles", handler.ListRoles)
		rbac.GET("/permissions", handler.ListPermissions)
	}
}

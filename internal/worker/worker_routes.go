package worker

import (
	"go-mandor/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	actionQuota gin.HandlerFunc,
) {
	workers := r.Group("/workers")
	workers.Use(middleware.AuthMiddleware())
	workers.Use(actionQuota)
	{
		workers.GET("", middleware.RBACAuthorize(rbacService, "worker", "read"), handler.GetAll)
		workers.GET("/options", middleware.RBACAuthorize(rbacService, "worker", "read"), handler.GetOptions)
		workers.GET("/:id", middleware.RBACAuthorize(rbacService, "worker", "read"), handler.GetById)
		workers.POST("", middleware.RBACAuthorize(rbacService, "worker", "create"), handler.Create)
		workers.PUT("/:id", middleware.RBACAuthorize(rbacService, "worker", "update"), handler.Update)
		workers.POST("/:id/deactivate", middleware.RBACAuthorize(rbacService, "worker", "update"), handler.Deactivate)
	}
}

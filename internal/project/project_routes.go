package project

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
	projects := r.Group("/projects")
	projects.Use(middleware.AuthMiddleware())
	projects.Use(actionQuota)
	{
		projects.GET("", middleware.RBACAuthorize(rbacService, "project", "read"), handler.GetAll)
		projects.GET("/:id", middleware.RBACAuthorize(rbacService, "project", "read"), handler.GetById)
		projects.POST("", middleware.RBACAuthorize(rbacService, "project", "create"), handler.Create)
		projects.PUT("/:id", middleware.RBACAuthorize(rbacService, "project", "update"), handler.Update)
		projects.DELETE("/:id", middleware.RBACAuthorize(rbacService, "project", "delete"), handler.Delete)
	}
}

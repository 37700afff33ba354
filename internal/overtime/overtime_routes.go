package overtime

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
	overtimes := r.Group("/overtimes")
	overtimes.Use(middleware.AuthMiddleware())
	overtimes.Use(actionQuota)
	{
		overtimes.GET("", middleware.RBACAuthorize(rbacService, "overtime", "read"), handler.GetAll)
		overtimes.GET("/:id", middleware.RBACAuthorize(rbacService, "overtime", "read"), handler.GetById)
		overtimes.POST("", middleware.RBACAuthorize(rbacService, "overtime", "create"), handler.Create)
		overtimes.PUT("/:id", middleware.RBACAuthorize(rbacService, "overtime", "update"), handler.Update)
		overtimes.DELETE("/:id", middleware.RBACAuthorize(rbacService, "overtime", "delete"), handler.Delete)
	}
}

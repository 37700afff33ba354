package attendance

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
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	attendances.Use(actionQuota)
	{
		attendances.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read"), handler.GetAll)
		attendances.POST("/check-in", middleware.RBACAuthorize(rbacService, "attendance", "create"), handler.CheckIn)
		attendances.POST("/check-out", middleware.RBACAuthorize(rbacService, "attendance", "create"), handler.CheckOut)
	}
}

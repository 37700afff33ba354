package kasbon

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
	kasbons := r.Group("/kasbons")
	kasbons.Use(middleware.AuthMiddleware())
	kasbons.Use(actionQuota)
	{
		kasbons.GET("", middleware.RBACAuthorize(rbacService, "kasbon", "read"), handler.GetAll)
		kasbons.GET("/:id", middleware.RBACAuthorize(rbacService, "kasbon", "read"), handler.GetById)
		kasbons.POST("", middleware.RBACAuthorize(rbacService, "kasbon", "create"), handler.Submit)
		kasbons.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "kasbon", "approve"), handler.Approve)
		kasbons.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "kasbon", "approve"), handler.Reject)
		kasbons.POST("/:id/mark-paid", middleware.RBACAuthorize(rbacService, "kasbon", "pay"), handler.MarkPaid)
		kasbons.POST("/reconcile", middleware.RBACAuthorize(rbacService, "kasbon", "approve"), handler.Reconcile)
		kasbons.DELETE("/:id", middleware.RBACAuthorize(rbacService, "kasbon", "delete"), handler.Delete)
	}
}

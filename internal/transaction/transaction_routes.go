package transaction

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
	transactions := r.Group("/transactions")
	transactions.Use(middleware.AuthMiddleware())
	transactions.Use(actionQuota)
	{
		transactions.GET("", middleware.RBACAuthorize(rbacService, "transaction", "read"), handler.GetAll)
		transactions.GET("/:id", middleware.RBACAuthorize(rbacService, "transaction", "read"), handler.GetById)
		transactions.POST("", middleware.RBACAuthorize(rbacService, "transaction", "create"), handler.Create)
		transactions.PATCH("/:id/status", middleware.RBACAuthorize(rbacService, "transaction", "update"), handler.UpdateStatus)
		transactions.DELETE("/:id", middleware.RBACAuthorize(rbacService, "transaction", "delete"), handler.Delete)
	}
}

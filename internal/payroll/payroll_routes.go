package payroll

import (
	"go-mandor/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	actionQuota gin.HandlerFunc,
	rdb *redis.Client,
) {
	payrolls := r.Group("/payrolls")
	payrolls.Use(middleware.AuthMiddleware())
	payrolls.Use(actionQuota)
	{
		payrolls.GET("", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetAll)
		payrolls.GET("/:id", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetById)
		payrolls.POST("/preview", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.Preview)
		if rdb != nil {
			payrolls.POST(
				"",
				middleware.Idempotency(rdb),
				middleware.RBACAuthorize(rbacService, "payroll", "create"),
				handler.Generate,
			)
		} else {
			payrolls.POST("", middleware.RBACAuthorize(rbacService, "payroll", "create"), handler.Generate)
		}
		payrolls.POST("/:id/mark-paid", middleware.RBACAuthorize(rbacService, "payroll", "pay"), handler.MarkPaid)
		payrolls.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, "payroll", "update"), handler.Cancel)
	}
}

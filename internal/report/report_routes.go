package report

import (
	"go-mandor/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware())
	{
		reports.GET("/cash-flow", middleware.RBACAuthorize(rbacService, "report", "read"), handler.CashFlow)
		reports.GET("/productivity", middleware.RBACAuthorize(rbacService, "report", "read"), handler.Productivity)
		reports.GET("/budget-utilization", middleware.RBACAuthorize(rbacService, "report", "read"), handler.BudgetUtilization)
	}
}

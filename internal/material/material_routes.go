package material

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
	materials := r.Group("/materials")
	materials.Use(middleware.AuthMiddleware())
	materials.Use(actionQuota)
	{
		materials.GET("", middleware.RBACAuthorize(rbacService, "material", "read"), handler.GetAll)
		materials.GET("/:id", middleware.RBACAuthorize(rbacService, "material", "read"), handler.GetById)
		materials.POST("", middleware.RBACAuthorize(rbacService, "material", "create"), handler.Create)
		materials.POST("/:id/stock-in", middleware.RBACAuthorize(rbacService, "material", "update"), handler.StockIn)
		materials.POST("/:id/stock-out", middleware.RBACAuthorize(rbacService, "material", "update"), handler.StockOut)
		materials.DELETE("/:id", middleware.RBACAuthorize(rbacService, "material", "delete"), handler.Delete)
	}
}

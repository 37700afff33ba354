package quota

import (
	"go-mandor/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	quotas := r.Group("/quota")
	quotas.Use(middleware.AuthMiddleware())
	{
		quotas.GET("/status", handler.GetStatus)
	}
}

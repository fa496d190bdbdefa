package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/construction_qa/internal/access"
	"github.com/construction_qa/internal/auth"
	"github.com/construction_qa/internal/handlers"
	"github.com/construction_qa/internal/models"
)

// SetupDashboardRoutes 设置仪表盘相关路由
func SetupDashboardRoutes(apiV1 *gin.RouterGroup, table *access.Table, h *handlers.DashboardHandler) {
	dashboard := apiV1.Group("/dashboard")
	dashboard.Use(auth.JWTMiddleware(), auth.RequireModule(table, models.ModuleDashboard))
	{
		dashboard.GET("/summary", h.GetSummary)
	}
}

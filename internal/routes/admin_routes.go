package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/construction_qa/internal/access"
	"github.com/construction_qa/internal/auth"
	"github.com/construction_qa/internal/handlers"
	"github.com/construction_qa/internal/models"
)

// SetupAdminRoutes 设置管理员相关路由
func SetupAdminRoutes(apiV1 *gin.RouterGroup, table *access.Table, h *handlers.AdminHandler) {
	admins := apiV1.Group("/admins")
	admins.Use(auth.JWTMiddleware(), auth.RequireModule(table, models.ModuleAdmin))
	{
		admins.GET("/get-all", h.GetAllAdmins)
		admins.GET("/get/:id", h.GetAdminByID)
		admins.POST("/create", h.CreateAdmin)
		admins.PUT("/update/:id", h.UpdateAdmin)
		admins.DELETE("/delete/:id", h.DeleteAdmin)
	}
}

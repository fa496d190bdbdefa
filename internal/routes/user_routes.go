package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/construction_qa/internal/access"
	"github.com/construction_qa/internal/auth"
	"github.com/construction_qa/internal/handlers"
	"github.com/construction_qa/internal/models"
)

// SetupUserRoutes 设置用户相关路由
func SetupUserRoutes(apiV1 *gin.RouterGroup, table *access.Table, h *handlers.UserHandler) {
	users := apiV1.Group("/users")
	users.Use(auth.JWTMiddleware(), auth.RequireModule(table, models.ModuleUsers))
	{
		users.GET("/get-all", h.GetAllUsers)
		users.GET("/get/:id", h.GetUserByID)
		users.POST("/create", h.CreateUser)
		users.PUT("/update/:id", h.UpdateUser)
		users.DELETE("/delete/:id", h.DeleteUser)
	}
}

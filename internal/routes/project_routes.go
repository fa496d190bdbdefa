package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/construction_qa/internal/access"
	"github.com/construction_qa/internal/auth"
	"github.com/construction_qa/internal/handlers"
	"github.com/construction_qa/internal/models"
)

// SetupProjectRoutes 设置项目相关路由
func SetupProjectRoutes(apiV1 *gin.RouterGroup, table *access.Table, h *handlers.ProjectHandler) {
	projects := apiV1.Group("/projects")
	projects.Use(auth.JWTMiddleware(), auth.RequireModule(table, models.ModuleProjects))
	{
		projects.GET("/get-all", h.GetAllProjects)
		projects.GET("/get/:id", h.GetProjectByID)
		projects.POST("/create", h.CreateProject)
		projects.PUT("/update/:id", h.UpdateProject)
		projects.DELETE("/delete/:id", h.DeleteProject)
	}
}

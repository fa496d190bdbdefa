package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/construction_qa/internal/access"
	"github.com/construction_qa/internal/auth"
	"github.com/construction_qa/internal/handlers"
	"github.com/construction_qa/internal/models"
)

// SetupIssueTypeRoutes 设置问题分类相关路由
func SetupIssueTypeRoutes(apiV1 *gin.RouterGroup, table *access.Table, h *handlers.IssueTypeHandler) {
	issueTypes := apiV1.Group("/issue-types")
	issueTypes.Use(auth.JWTMiddleware(), auth.RequireModule(table, models.ModuleIssueTypes))
	{
		issueTypes.GET("/get-all", h.GetAllIssueTypes)
		issueTypes.POST("/create", h.CreateIssueType)
		issueTypes.PUT("/update/:id", h.UpdateIssueType)
		issueTypes.DELETE("/delete/:id", h.DeleteIssueType)
	}
}

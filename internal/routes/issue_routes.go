package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/construction_qa/internal/access"
	"github.com/construction_qa/internal/auth"
	"github.com/construction_qa/internal/handlers"
	"github.com/construction_qa/internal/models"
)

// SetupIssueRoutes 设置问题相关路由。
// 模块门禁与角色视图：创建走 PROJECTS，角色工作流走 ISSUE_TYPES，删除与导出走 ADMIN。
func SetupIssueRoutes(apiV1 *gin.RouterGroup, table *access.Table, h *handlers.IssueHandler) {
	issues := apiV1.Group("/issues")
	issues.Use(auth.JWTMiddleware())
	{
		issues.GET("/get-all", auth.RequireModule(table, models.ModuleIssueTypes), h.GetAllIssues)
		issues.GET("/get/:id", auth.RequireModule(table, models.ModuleIssueTypes), h.GetIssueByID)
		issues.POST("/create", auth.RequireModule(table, models.ModuleProjects), h.CreateIssue)
		issues.PUT("/update/:id", auth.RequireModule(table, models.ModuleIssueTypes), h.UpdateIssue)
		issues.DELETE("/delete/:id", auth.RequireModule(table, models.ModuleAdmin), h.DeleteIssue)

		// 巡检团队
		inspector := issues.Group("/inspector")
		inspector.Use(auth.RequireModule(table, models.ModuleProjects))
		{
			inspector.GET("/issues", h.GetInspectorIssues)
			inspector.POST("/create/:projectId", h.CreateIssueForProject)
		}

		// 承包商团队
		contractor := issues.Group("/contractor")
		contractor.Use(auth.RequireModule(table, models.ModuleIssueTypes))
		{
			contractor.GET("/issues", h.GetAssignedIssues)
			contractor.PUT("/update-status/:issueId", h.UpdateIssueStatus)
		}

		// 分包商团队
		subContractor := issues.Group("/sub-contractor")
		subContractor.Use(auth.RequireModule(table, models.ModuleIssueTypes))
		{
			subContractor.GET("/issues", h.GetAssignedIssues)
			subContractor.PUT("/update-status/:issueId", h.UpdateIssueStatus)
		}

		// QA验收团队
		verify := issues.Group("/verify")
		verify.Use(auth.RequireModule(table, models.ModuleIssueTypes))
		{
			verify.GET("/issues", h.GetVerificationIssues)
			verify.PUT("/update-status/:issueId", h.UpdateIssueStatus)
		}

		// Excel 导出
		issues.GET("/export", auth.RequireModule(table, models.ModuleAdmin), h.ExportIssues)
	}
}

package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/construction_qa/internal/access"
	"github.com/construction_qa/internal/handlers"
)

// Handlers 聚合全部处理器，供路由注册使用
type Handlers struct {
	Auth      *handlers.AuthHandler
	Profile   *handlers.ProfileHandler
	Issue     *handlers.IssueHandler
	Project   *handlers.ProjectHandler
	Building  *handlers.BuildingHandler
	Unit      *handlers.UnitHandler
	Team      *handlers.TeamHandler
	User      *handlers.UserHandler
	Admin     *handlers.AdminHandler
	IssueType *handlers.IssueTypeHandler
	Dashboard *handlers.DashboardHandler
}

// SetupRoutes 初始化所有路由
func SetupRoutes(router *gin.Engine, table *access.Table, h Handlers) {
	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	apiV1 := api.Group("/v1")

	SetupAuthRoutes(apiV1, h.Auth)
	SetupProfileRoutes(apiV1, h.Profile)
	SetupIssueRoutes(apiV1, table, h.Issue)
	SetupProjectRoutes(apiV1, table, h.Project)
	SetupBuildingRoutes(apiV1, table, h.Building)
	SetupUnitRoutes(apiV1, table, h.Unit)
	SetupTeamRoutes(apiV1, table, h.Team)
	SetupUserRoutes(apiV1, table, h.User)
	SetupAdminRoutes(apiV1, table, h.Admin)
	SetupIssueTypeRoutes(apiV1, table, h.IssueType)
	SetupDashboardRoutes(apiV1, table, h.Dashboard)
}

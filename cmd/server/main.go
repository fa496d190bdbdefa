package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/construction_qa/configs"
	"github.com/construction_qa/internal/access"
	"github.com/construction_qa/internal/handlers"
	"github.com/construction_qa/internal/repositories"
	"github.com/construction_qa/internal/routes"
	"github.com/construction_qa/internal/services"
	"github.com/construction_qa/pkg/db"
)

func main() {
	// 加载配置
	configs.LoadConfig()

	// 初始化数据库连接
	db.InitDB()
	defer db.CloseDB()

	gormDB := db.GetDB()

	// 仓库层
	issueRepo := repositories.NewGormIssueRepository(gormDB)
	projectRepo := repositories.NewGormProjectRepository(gormDB)
	buildingRepo := repositories.NewGormBuildingRepository(gormDB)
	unitRepo := repositories.NewGormUnitRepository(gormDB)
	teamRepo := repositories.NewGormTeamRepository(gormDB)
	userRepo := repositories.NewGormUserRepository(gormDB)
	adminRepo := repositories.NewGormAdminRepository(gormDB)
	issueTypeRepo := repositories.NewGormIssueTypeRepository(gormDB)
	tokenRepo := repositories.NewGormTokenRepository(gormDB)

	// 启动时清理已过期令牌
	if deleted, err := tokenRepo.DeleteExpired(); err != nil {
		log.Printf("清理过期令牌失败: %v", err)
	} else if deleted > 0 {
		log.Printf("已清理 %d 条过期令牌", deleted)
	}

	// 访问控制表
	table := access.NewTable()

	// 服务层
	issueService := services.NewIssueService(issueRepo, projectRepo, unitRepo, userRepo, table)
	authService := services.NewAuthService(userRepo, adminRepo, tokenRepo)
	profileService := services.NewProfileService(userRepo, adminRepo)
	projectService := services.NewProjectService(projectRepo)
	buildingService := services.NewBuildingService(buildingRepo, projectRepo)
	unitService := services.NewUnitService(unitRepo, buildingRepo)
	teamService := services.NewTeamService(teamRepo)
	userService := services.NewUserService(userRepo, teamRepo, tokenRepo)
	adminService := services.NewAdminService(adminRepo, tokenRepo)
	issueTypeService := services.NewIssueTypeService(issueTypeRepo)
	dashboardService := services.NewDashboardService(issueRepo, userRepo)

	router := gin.Default()

	// 设置API路由
	routes.SetupRoutes(router, table, routes.Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		Profile:   handlers.NewProfileHandler(profileService),
		Issue:     handlers.NewIssueHandler(issueService),
		Project:   handlers.NewProjectHandler(projectService),
		Building:  handlers.NewBuildingHandler(buildingService),
		Unit:      handlers.NewUnitHandler(unitService),
		Team:      handlers.NewTeamHandler(teamService),
		User:      handlers.NewUserHandler(userService),
		Admin:     handlers.NewAdminHandler(adminService),
		IssueType: handlers.NewIssueTypeHandler(issueTypeService),
		Dashboard: handlers.NewDashboardHandler(dashboardService),
	})

	port := configs.AppConfig.ServerPort
	log.Printf("Server starting on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

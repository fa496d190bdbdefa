package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/construction_qa/internal/access"
	"github.com/construction_qa/internal/auth"
	"github.com/construction_qa/internal/handlers"
	"github.com/construction_qa/internal/models"
)

// SetupTeamRoutes 设置团队相关路由
func SetupTeamRoutes(apiV1 *gin.RouterGroup, table *access.Table, h *handlers.TeamHandler) {
	teams := apiV1.Group("/teams")
	teams.Use(auth.JWTMiddleware(), auth.RequireModule(table, models.ModuleTeams))
	{
		teams.GET("/get-all", h.GetAllTeams)
		teams.GET("/get/:id", h.GetTeamByID)
		teams.POST("/create", h.CreateTeam)
		teams.PUT("/update/:id", h.UpdateTeam)
		teams.DELETE("/delete/:id", h.DeleteTeam)
	}
}

package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/construction_qa/internal/access"
	"github.com/construction_qa/internal/auth"
	"github.com/construction_qa/internal/handlers"
	"github.com/construction_qa/internal/models"
)

// SetupBuildingRoutes 设置楼栋相关路由
func SetupBuildingRoutes(apiV1 *gin.RouterGroup, table *access.Table, h *handlers.BuildingHandler) {
	buildings := apiV1.Group("/buildings")
	buildings.Use(auth.JWTMiddleware(), auth.RequireModule(table, models.ModuleBuildings))
	{
		buildings.GET("/get-by-project/:projectId", h.GetBuildingsByProject)
		buildings.POST("/create", h.CreateBuilding)
		buildings.PUT("/update/:id", h.UpdateBuilding)
		buildings.DELETE("/delete/:id", h.DeleteBuilding)
	}
}

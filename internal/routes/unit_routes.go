package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/construction_qa/internal/access"
	"github.com/construction_qa/internal/auth"
	"github.com/construction_qa/internal/handlers"
	"github.com/construction_qa/internal/models"
)

// SetupUnitRoutes 设置单元相关路由
func SetupUnitRoutes(apiV1 *gin.RouterGroup, table *access.Table, h *handlers.UnitHandler) {
	units := apiV1.Group("/units")
	units.Use(auth.JWTMiddleware(), auth.RequireModule(table, models.ModuleUnits))
	{
		units.GET("/get-by-building/:buildingId", h.GetUnitsByBuilding)
		units.POST("/create", h.CreateUnit)
		units.PUT("/update/:id", h.UpdateUnit)
		units.DELETE("/delete/:id", h.DeleteUnit)
	}
}

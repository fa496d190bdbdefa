package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/construction_qa/internal/services"
	"github.com/construction_qa/pkg/utils"
)

// UnitHandler 封装了单元相关的 HTTP 处理逻辑
type UnitHandler struct {
	service services.UnitService
}

// NewUnitHandler 创建一个新的 UnitHandler 实例
func NewUnitHandler(service services.UnitService) *UnitHandler {
	return &UnitHandler{service: service}
}

// CreateUnitPayload 定义了创建单元请求的 JSON 结构体
type CreateUnitPayload struct {
	BuildingID  string   `json:"buildingId" binding:"required"`
	UnitNumber  string   `json:"unitNumber" binding:"required,max=50"`
	FloorNumber *int     `json:"floorNumber,omitempty"`
	Bedrooms    *int     `json:"bedrooms,omitempty" binding:"omitempty,min=0"`
	AreaSqft    *float64 `json:"areaSqft,omitempty" binding:"omitempty,min=0"`
}

// UpdateUnitPayload 定义了更新单元请求的 JSON 结构体
type UpdateUnitPayload struct {
	UnitNumber  *string  `json:"unitNumber,omitempty" binding:"omitempty,max=50"`
	FloorNumber *int     `json:"floorNumber,omitempty"`
	Bedrooms    *int     `json:"bedrooms,omitempty" binding:"omitempty,min=0"`
	AreaSqft    *float64 `json:"areaSqft,omitempty" binding:"omitempty,min=0"`
}

// CreateUnit godoc
// @Summary 创建单元
// @Description (楼栋, 单元号) 组合唯一，项目ID从楼栋继承
// @Tags Units
// @Accept json
// @Produce json
// @Param unit body CreateUnitPayload true "单元信息"
// @Success 201 {object} utils.SuccessResponse{data=models.Unit} "创建成功的单元对象"
// @Failure 404 {object} utils.APIErrorResponse "楼栋未找到"
// @Failure 409 {object} utils.APIErrorResponse "单元号已存在"
// @Router /units/create [post]
// @Security BearerAuth
func (h *UnitHandler) CreateUnit(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		utils.RespondUnauthorizedError(c)
		return
	}

	var payload CreateUnitPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	created, err := h.service.CreateUnit(caller, services.CreateUnitInput{
		BuildingID:  payload.BuildingID,
		UnitNumber:  payload.UnitNumber,
		FloorNumber: payload.FloorNumber,
		Bedrooms:    payload.Bedrooms,
		AreaSqft:    payload.AreaSqft,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBuildingNotFound):
			utils.RespondNotFoundError(c, "楼栋")
		case errors.Is(err, services.ErrUnitNumberExists):
			utils.RespondConflictError(c, err.Error())
		case errors.Is(err, services.ErrUnitNumberRequired):
			utils.RespondValidationError(c, err.Error())
		default:
			utils.RespondInternalServerError(c, "创建单元失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, created, "单元创建成功")
}

// GetUnitsByBuilding godoc
// @Summary 获取楼栋下的单元列表
// @Tags Units
// @Produce json
// @Param buildingId path string true "楼栋ID"
// @Success 200 {object} utils.SuccessResponse{data=[]models.Unit} "单元列表"
// @Router /units/get-by-building/{buildingId} [get]
// @Security BearerAuth
func (h *UnitHandler) GetUnitsByBuilding(c *gin.Context) {
	units, err := h.service.GetUnitsByBuildingID(c.Param("buildingId"))
	if err != nil {
		utils.RespondInternalServerError(c, "获取单元列表失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, units, "")
}

// UpdateUnit godoc
// @Summary 更新单元
// @Tags Units
// @Accept json
// @Produce json
// @Param id path string true "单元ID"
// @Param unit body UpdateUnitPayload true "待更新字段"
// @Success 200 {object} utils.SuccessResponse{data=models.Unit} "更新后的单元对象"
// @Failure 404 {object} utils.APIErrorResponse "单元未找到"
// @Failure 409 {object} utils.APIErrorResponse "单元号已存在"
// @Router /units/update/{id} [put]
// @Security BearerAuth
func (h *UnitHandler) UpdateUnit(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		utils.RespondUnauthorizedError(c)
		return
	}

	var payload UpdateUnitPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	updated, err := h.service.UpdateUnit(caller, c.Param("id"), services.UpdateUnitInput{
		UnitNumber:  payload.UnitNumber,
		FloorNumber: payload.FloorNumber,
		Bedrooms:    payload.Bedrooms,
		AreaSqft:    payload.AreaSqft,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnitNotFound):
			utils.RespondNotFoundError(c, "单元")
		case errors.Is(err, services.ErrUnitNumberExists):
			utils.RespondConflictError(c, err.Error())
		case errors.Is(err, services.ErrUnitNumberRequired):
			utils.RespondValidationError(c, err.Error())
		default:
			utils.RespondInternalServerError(c, "更新单元失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, updated, "单元更新成功")
}

// DeleteUnit godoc
// @Summary 删除单元
// @Description 引用该单元的问题保留，其 unitId 置空
// @Tags Units
// @Produce json
// @Param id path string true "单元ID"
// @Success 200 {object} utils.SuccessResponse "删除成功"
// @Failure 404 {object} utils.APIErrorResponse "单元未找到"
// @Router /units/delete/{id} [delete]
// @Security BearerAuth
func (h *UnitHandler) DeleteUnit(c *gin.Context) {
	if err := h.service.DeleteUnit(c.Param("id")); err != nil {
		if errors.Is(err, services.ErrUnitNotFound) {
			utils.RespondNotFoundError(c, "单元")
			return
		}
		utils.RespondInternalServerError(c, "删除单元失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, nil, "单元删除成功")
}

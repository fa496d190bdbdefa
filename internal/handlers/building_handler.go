package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/construction_qa/internal/services"
	"github.com/construction_qa/pkg/utils"
)

// BuildingHandler 封装了楼栋相关的 HTTP 处理逻辑
type BuildingHandler struct {
	service services.BuildingService
}

// NewBuildingHandler 创建一个新的 BuildingHandler 实例
func NewBuildingHandler(service services.BuildingService) *BuildingHandler {
	return &BuildingHandler{service: service}
}

// CreateBuildingPayload 定义了创建楼栋请求的 JSON 结构体
type CreateBuildingPayload struct {
	ProjectID    string  `json:"projectId" binding:"required"`
	BuildingCode string  `json:"buildingCode" binding:"required,max=50"`
	BuildingName string  `json:"buildingName" binding:"required,max=255"`
	Floors       *int    `json:"floors,omitempty" binding:"omitempty,min=1"`
	Address      *string `json:"address,omitempty"`
}

// UpdateBuildingPayload 定义了更新楼栋请求的 JSON 结构体
type UpdateBuildingPayload struct {
	BuildingName *string `json:"buildingName,omitempty" binding:"omitempty,max=255"`
	Floors       *int    `json:"floors,omitempty" binding:"omitempty,min=1"`
	Address      *string `json:"address,omitempty"`
}

// CreateBuilding godoc
// @Summary 创建楼栋
// @Description (项目, 楼栋编码) 组合唯一
// @Tags Buildings
// @Accept json
// @Produce json
// @Param building body CreateBuildingPayload true "楼栋信息"
// @Success 201 {object} utils.SuccessResponse{data=models.Building} "创建成功的楼栋对象"
// @Failure 404 {object} utils.APIErrorResponse "项目未找到"
// @Failure 409 {object} utils.APIErrorResponse "楼栋编码已存在"
// @Router /buildings/create [post]
// @Security BearerAuth
func (h *BuildingHandler) CreateBuilding(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		utils.RespondUnauthorizedError(c)
		return
	}

	var payload CreateBuildingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	created, err := h.service.CreateBuilding(caller, services.CreateBuildingInput{
		ProjectID:    payload.ProjectID,
		BuildingCode: payload.BuildingCode,
		BuildingName: payload.BuildingName,
		Floors:       payload.Floors,
		Address:      payload.Address,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			utils.RespondNotFoundError(c, "项目")
		case errors.Is(err, services.ErrBuildingCodeExists):
			utils.RespondConflictError(c, err.Error())
		case errors.Is(err, services.ErrBuildingCodeRequired), errors.Is(err, services.ErrBuildingNameRequired):
			utils.RespondValidationError(c, err.Error())
		default:
			utils.RespondInternalServerError(c, "创建楼栋失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, created, "楼栋创建成功")
}

// GetBuildingsByProject godoc
// @Summary 获取项目下的楼栋列表
// @Tags Buildings
// @Produce json
// @Param projectId path string true "项目ID"
// @Success 200 {object} utils.SuccessResponse{data=[]models.Building} "楼栋列表"
// @Router /buildings/get-by-project/{projectId} [get]
// @Security BearerAuth
func (h *BuildingHandler) GetBuildingsByProject(c *gin.Context) {
	buildings, err := h.service.GetBuildingsByProjectID(c.Param("projectId"))
	if err != nil {
		utils.RespondInternalServerError(c, "获取楼栋列表失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, buildings, "")
}

// UpdateBuilding godoc
// @Summary 更新楼栋
// @Description 楼栋编码创建后不可变更
// @Tags Buildings
// @Accept json
// @Produce json
// @Param id path string true "楼栋ID"
// @Param building body UpdateBuildingPayload true "待更新字段"
// @Success 200 {object} utils.SuccessResponse{data=models.Building} "更新后的楼栋对象"
// @Failure 404 {object} utils.APIErrorResponse "楼栋未找到"
// @Router /buildings/update/{id} [put]
// @Security BearerAuth
func (h *BuildingHandler) UpdateBuilding(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		utils.RespondUnauthorizedError(c)
		return
	}

	var payload UpdateBuildingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	updated, err := h.service.UpdateBuilding(caller, c.Param("id"), services.UpdateBuildingInput{
		BuildingName: payload.BuildingName,
		Floors:       payload.Floors,
		Address:      payload.Address,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBuildingNotFound):
			utils.RespondNotFoundError(c, "楼栋")
		case errors.Is(err, services.ErrBuildingNameRequired):
			utils.RespondValidationError(c, err.Error())
		default:
			utils.RespondInternalServerError(c, "更新楼栋失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, updated, "楼栋更新成功")
}

// DeleteBuilding godoc
// @Summary 删除楼栋
// @Description 楼栋下的单元级联删除
// @Tags Buildings
// @Produce json
// @Param id path string true "楼栋ID"
// @Success 200 {object} utils.SuccessResponse "删除成功"
// @Failure 404 {object} utils.APIErrorResponse "楼栋未找到"
// @Router /buildings/delete/{id} [delete]
// @Security BearerAuth
func (h *BuildingHandler) DeleteBuilding(c *gin.Context) {
	if err := h.service.DeleteBuilding(c.Param("id")); err != nil {
		if errors.Is(err, services.ErrBuildingNotFound) {
			utils.RespondNotFoundError(c, "楼栋")
			return
		}
		utils.RespondInternalServerError(c, "删除楼栋失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, nil, "楼栋删除成功")
}

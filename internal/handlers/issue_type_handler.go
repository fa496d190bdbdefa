package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/construction_qa/internal/services"
	"github.com/construction_qa/pkg/utils"
)

// IssueTypeHandler 封装了问题分类相关的 HTTP 处理逻辑
type IssueTypeHandler struct {
	service services.IssueTypeService
}

// NewIssueTypeHandler 创建一个新的 IssueTypeHandler 实例
func NewIssueTypeHandler(service services.IssueTypeService) *IssueTypeHandler {
	return &IssueTypeHandler{service: service}
}

// CreateIssueTypePayload 定义了创建问题分类请求的 JSON 结构体
type CreateIssueTypePayload struct {
	Category string `json:"category" binding:"required,max=100"`
	Type     string `json:"type" binding:"required,max=100"`
	Item     string `json:"item" binding:"required,max=255"`
}

// UpdateIssueTypePayload 定义了更新问题分类请求的 JSON 结构体
type UpdateIssueTypePayload struct {
	Category *string `json:"category,omitempty" binding:"omitempty,max=100"`
	Type     *string `json:"type,omitempty" binding:"omitempty,max=100"`
	Item     *string `json:"item,omitempty" binding:"omitempty,max=255"`
	Current  *bool   `json:"current,omitempty"`
}

// respondIssueTypeError 将问题分类服务层错误映射为 HTTP 响应
func respondIssueTypeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrIssueTypeNotFound):
		utils.RespondNotFoundError(c, "问题分类")
	case errors.Is(err, services.ErrIssueTypeCombExists):
		utils.RespondConflictError(c, err.Error())
	case errors.Is(err, services.ErrIssueTypeIncomplete):
		utils.RespondValidationError(c, err.Error())
	default:
		utils.RespondInternalServerError(c, fallback, err.Error())
	}
}

// CreateIssueType godoc
// @Summary 创建问题分类
// @Description (大类, 类型, 条目) 三元组唯一
// @Tags IssueTypes
// @Accept json
// @Produce json
// @Param issueType body CreateIssueTypePayload true "分类信息"
// @Success 201 {object} utils.SuccessResponse{data=models.IssueType} "创建成功的分类对象"
// @Failure 409 {object} utils.APIErrorResponse "分类组合已存在"
// @Router /issue-types/create [post]
// @Security BearerAuth
func (h *IssueTypeHandler) CreateIssueType(c *gin.Context) {
	var payload CreateIssueTypePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	created, err := h.service.CreateIssueType(services.CreateIssueTypeInput{
		Category: payload.Category,
		Type:     payload.Type,
		Item:     payload.Item,
	})
	if err != nil {
		respondIssueTypeError(c, err, "创建问题分类失败")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, created, "问题分类创建成功")
}

// GetAllIssueTypes godoc
// @Summary 获取问题分类列表
// @Tags IssueTypes
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]models.IssueType} "问题分类列表"
// @Router /issue-types/get-all [get]
// @Security BearerAuth
func (h *IssueTypeHandler) GetAllIssueTypes(c *gin.Context) {
	issueTypes, err := h.service.GetAllIssueTypes()
	if err != nil {
		utils.RespondInternalServerError(c, "获取问题分类列表失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, issueTypes, "")
}

// UpdateIssueType godoc
// @Summary 更新问题分类
// @Tags IssueTypes
// @Accept json
// @Produce json
// @Param id path string true "分类ID"
// @Param issueType body UpdateIssueTypePayload true "待更新字段"
// @Success 200 {object} utils.SuccessResponse{data=models.IssueType} "更新后的分类对象"
// @Failure 404 {object} utils.APIErrorResponse "问题分类未找到"
// @Router /issue-types/update/{id} [put]
// @Security BearerAuth
func (h *IssueTypeHandler) UpdateIssueType(c *gin.Context) {
	var payload UpdateIssueTypePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	updated, err := h.service.UpdateIssueType(c.Param("id"), services.UpdateIssueTypeInput{
		Category: payload.Category,
		Type:     payload.Type,
		Item:     payload.Item,
		Current:  payload.Current,
	})
	if err != nil {
		respondIssueTypeError(c, err, "更新问题分类失败")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, updated, "问题分类更新成功")
}

// DeleteIssueType godoc
// @Summary 删除问题分类
// @Tags IssueTypes
// @Produce json
// @Param id path string true "分类ID"
// @Success 200 {object} utils.SuccessResponse "删除成功"
// @Failure 404 {object} utils.APIErrorResponse "问题分类未找到"
// @Router /issue-types/delete/{id} [delete]
// @Security BearerAuth
func (h *IssueTypeHandler) DeleteIssueType(c *gin.Context) {
	if err := h.service.DeleteIssueType(c.Param("id")); err != nil {
		respondIssueTypeError(c, err, "删除问题分类失败")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, nil, "问题分类删除成功")
}

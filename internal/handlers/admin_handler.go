package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/construction_qa/internal/models"
	"github.com/construction_qa/internal/services"
	"github.com/construction_qa/pkg/utils"
)

// AdminHandler 封装了管理员相关的 HTTP 处理逻辑
type AdminHandler struct {
	service services.AdminService
}

// NewAdminHandler 创建一个新的 AdminHandler 实例
func NewAdminHandler(service services.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// CreateAdminPayload 定义了创建管理员请求的 JSON 结构体
type CreateAdminPayload struct {
	AdminUserName string `json:"adminUserName" binding:"required,max=255"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
}

// UpdateAdminPayload 定义了更新管理员请求的 JSON 结构体
type UpdateAdminPayload struct {
	AdminUserName *string `json:"adminUserName,omitempty" binding:"omitempty,max=255"`
	Email         *string `json:"email,omitempty" binding:"omitempty,email"`
	Password      *string `json:"password,omitempty" binding:"omitempty,min=8"`
}

// PagedAdminsData 定义了管理员列表的分页响应结构
type PagedAdminsData struct {
	Items      []models.Admin `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}

// respondAdminError 将管理员服务层错误映射为 HTTP 响应
func respondAdminError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrAdminNotFound):
		utils.RespondNotFoundError(c, "管理员")
	case errors.Is(err, services.ErrAdminEmailExists):
		utils.RespondConflictError(c, err.Error())
	case errors.Is(err, services.ErrAdminNameRequired),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, utils.ErrInvalidEmailFormat):
		utils.RespondValidationError(c, err.Error())
	default:
		utils.RespondInternalServerError(c, fallback, err.Error())
	}
}

// CreateAdmin godoc
// @Summary 创建管理员
// @Description 管理员邮箱全局唯一
// @Tags Admins
// @Accept json
// @Produce json
// @Param admin body CreateAdminPayload true "管理员信息"
// @Success 201 {object} utils.SuccessResponse{data=models.Admin} "创建成功的管理员对象"
// @Failure 409 {object} utils.APIErrorResponse "管理员邮箱已存在"
// @Router /admins/create [post]
// @Security BearerAuth
func (h *AdminHandler) CreateAdmin(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		utils.RespondUnauthorizedError(c)
		return
	}

	var payload CreateAdminPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	created, err := h.service.CreateAdmin(caller, services.CreateAdminInput{
		AdminUserName: payload.AdminUserName,
		Email:         payload.Email,
		Password:      payload.Password,
	})
	if err != nil {
		respondAdminError(c, err, "创建管理员失败")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, created, "管理员创建成功")
}

// GetAllAdmins godoc
// @Summary 获取管理员列表
// @Tags Admins
// @Produce json
// @Param pageNumber query int false "页码（1起）" default(1)
// @Param pageSize query int false "每页数量" default(10)
// @Success 200 {object} utils.SuccessResponse{data=PagedAdminsData} "管理员列表和分页信息"
// @Router /admins/get-all [get]
// @Security BearerAuth
func (h *AdminHandler) GetAllAdmins(c *gin.Context) {
	pageNumber, pageSize, err := bindPagination(c)
	if err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	admins, totalCount, hasNext, err := h.service.GetAllAdmins(pageNumber, pageSize)
	if err != nil {
		utils.RespondInternalServerError(c, "获取管理员列表失败", err.Error())
		return
	}

	utils.RespondSuccess(c, http.StatusOK, PagedAdminsData{
		Items: admins,
		Pagination: PaginationInfo{
			TotalCount: totalCount,
			HasNext:    hasNext,
			PageNumber: pageNumber,
			PageSize:   pageSize,
		},
	}, "")
}

// GetAdminByID godoc
// @Summary 获取管理员详情
// @Tags Admins
// @Produce json
// @Param id path string true "管理员ID"
// @Success 200 {object} utils.SuccessResponse{data=models.Admin} "管理员详情"
// @Failure 404 {object} utils.APIErrorResponse "管理员未找到"
// @Router /admins/get/{id} [get]
// @Security BearerAuth
func (h *AdminHandler) GetAdminByID(c *gin.Context) {
	admin, err := h.service.GetAdminByID(c.Param("id"))
	if err != nil {
		respondAdminError(c, err, "获取管理员失败")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, admin, "")
}

// UpdateAdmin godoc
// @Summary 更新管理员
// @Description 改密会作废该账号的全部刷新令牌
// @Tags Admins
// @Accept json
// @Produce json
// @Param id path string true "管理员ID"
// @Param admin body UpdateAdminPayload true "待更新字段"
// @Success 200 {object} utils.SuccessResponse{data=models.Admin} "更新后的管理员对象"
// @Failure 404 {object} utils.APIErrorResponse "管理员未找到"
// @Router /admins/update/{id} [put]
// @Security BearerAuth
func (h *AdminHandler) UpdateAdmin(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		utils.RespondUnauthorizedError(c)
		return
	}

	var payload UpdateAdminPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	updated, err := h.service.UpdateAdmin(caller, c.Param("id"), services.UpdateAdminInput{
		AdminUserName: payload.AdminUserName,
		Email:         payload.Email,
		Password:      payload.Password,
	})
	if err != nil {
		respondAdminError(c, err, "更新管理员失败")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, updated, "管理员更新成功")
}

// DeleteAdmin godoc
// @Summary 删除管理员
// @Tags Admins
// @Produce json
// @Param id path string true "管理员ID"
// @Success 200 {object} utils.SuccessResponse "删除成功"
// @Failure 404 {object} utils.APIErrorResponse "管理员未找到"
// @Router /admins/delete/{id} [delete]
// @Security BearerAuth
func (h *AdminHandler) DeleteAdmin(c *gin.Context) {
	if err := h.service.DeleteAdmin(c.Param("id")); err != nil {
		respondAdminError(c, err, "删除管理员失败")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, nil, "管理员删除成功")
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/construction_qa/internal/models"
	"github.com/construction_qa/internal/services"
	"github.com/construction_qa/pkg/utils"
)

// ProfileHandler 负责处理个人资料相关的HTTP请求
type ProfileHandler struct {
	service services.ProfileService
}

// NewProfileHandler 创建一个新的 ProfileHandler 实例
func NewProfileHandler(service services.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// UpdateProfilePayload 自助更新个人资料的请求体
type UpdateProfilePayload struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email" binding:"omitempty,email"`
}

// PagedProfilesData 分页的用户资料列表
type PagedProfilesData struct {
	Items      []models.User  `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}

// respondProfileError 将服务层错误映射为 HTTP 响应
func respondProfileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProfileNotFound):
		utils.RespondNotFoundError(c, "个人资料")
	case errors.Is(err, services.ErrProfileEmailExists):
		utils.RespondConflictError(c, services.ErrProfileEmailExists.Error())
	case errors.Is(err, services.ErrProfileForbidden):
		utils.RespondForbiddenError(c, services.ErrProfileForbidden.Error())
	case errors.Is(err, services.ErrFullNameRequired),
		errors.Is(err, utils.ErrInvalidEmailFormat):
		utils.RespondValidationError(c, err.Error())
	default:
		utils.RespondInternalServerError(c, "个人资料操作失败", err.Error())
	}
}

// GetProfile godoc
// @Summary 获取本人资料
// @Description 返回当前登录账号（用户或管理员）的资料
// @Tags Profile
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=services.Profile} "个人资料"
// @Failure 404 {object} utils.APIErrorResponse "资料未找到"
// @Router /profile/get-profile [get]
// @Security BearerAuth
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		utils.RespondUnauthorizedError(c)
		return
	}

	profile, err := h.service.GetProfile(caller)
	if err != nil {
		respondProfileError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, profile, "")
}

// UpdateProfile godoc
// @Summary 更新本人资料
// @Description 自助更新姓名与邮箱，邮箱全局唯一。角色与团队变更走用户管理接口。
// @Tags Profile
// @Accept json
// @Produce json
// @Param profile body UpdateProfilePayload true "待更新字段"
// @Success 200 {object} utils.SuccessResponse{data=services.Profile} "更新后的资料"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 409 {object} utils.APIErrorResponse "邮箱已被占用"
// @Router /profile/update-profile [put]
// @Security BearerAuth
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		utils.RespondUnauthorizedError(c)
		return
	}

	var payload UpdateProfilePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	updated, err := h.service.UpdateProfile(caller, services.UpdateProfileInput{
		FullName: payload.FullName,
		Email:    payload.Email,
	})
	if err != nil {
		respondProfileError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, updated, "个人资料更新成功")
}

// GetAllProfiles godoc
// @Summary 获取全部用户资料
// @Description 管理员分页浏览全部用户资料
// @Tags Profile
// @Produce json
// @Param pageNumber query int false "页码（1起）" default(1)
// @Param pageSize query int false "每页数量" default(10)
// @Success 200 {object} utils.SuccessResponse{data=PagedProfilesData} "用户资料列表和分页信息"
// @Failure 403 {object} utils.APIErrorResponse "非管理员"
// @Router /profile/get-all-profiles [get]
// @Security BearerAuth
func (h *ProfileHandler) GetAllProfiles(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		utils.RespondUnauthorizedError(c)
		return
	}

	pageNumber, pageSize, err := bindPagination(c)
	if err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	users, totalCount, hasNext, err := h.service.GetAllProfiles(caller, pageNumber, pageSize)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	utils.RespondSuccess(c, http.StatusOK, PagedProfilesData{
		Items: users,
		Pagination: PaginationInfo{
			TotalCount: totalCount,
			HasNext:    hasNext,
			PageNumber: pageNumber,
			PageSize:   pageSize,
		},
	}, "")
}

// GetProfileDetails godoc
// @Summary 获取指定用户的资料详情
// @Description 管理员按用户ID查看资料详情
// @Tags Profile
// @Produce json
// @Param userId path string true "用户ID"
// @Success 200 {object} utils.SuccessResponse{data=models.User} "用户资料"
// @Failure 403 {object} utils.APIErrorResponse "非管理员"
// @Failure 404 {object} utils.APIErrorResponse "资料未找到"
// @Router /profile/get-profile-details/{userId} [get]
// @Security BearerAuth
func (h *ProfileHandler) GetProfileDetails(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		utils.RespondUnauthorizedError(c)
		return
	}

	userID, ok := uuidParam(c, "userId")
	if !ok {
		return
	}

	user, err := h.service.GetProfileDetails(caller, userID)
	if err != nil {
		respondProfileError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, user, "")
}

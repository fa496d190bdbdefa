package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/construction_qa/internal/models"
	"github.com/construction_qa/internal/services"
	"github.com/construction_qa/pkg/utils"
)

// UserHandler 封装了用户相关的 HTTP 处理逻辑
type UserHandler struct {
	service services.UserService
}

// NewUserHandler 创建一个新的 UserHandler 实例
func NewUserHandler(service services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// CreateUserPayload 定义了创建用户请求的 JSON 结构体
type CreateUserPayload struct {
	FullName       string  `json:"fullName" binding:"required,max=255"`
	Email          string  `json:"email" binding:"required,email"`
	Password       string  `json:"password" binding:"required,min=8"`
	UserRole       string  `json:"userRole" binding:"required"`
	TeamID         *string `json:"teamId,omitempty"`
	IsProjectAdmin bool    `json:"isProjectAdmin,omitempty"`
	IsTeamAdmin    bool    `json:"isTeamAdmin,omitempty"`
}

// UpdateUserPayload 定义了更新用户请求的 JSON 结构体
type UpdateUserPayload struct {
	FullName       *string `json:"fullName,omitempty" binding:"omitempty,max=255"`
	Email          *string `json:"email,omitempty" binding:"omitempty,email"`
	Password       *string `json:"password,omitempty" binding:"omitempty,min=8"`
	UserRole       *string `json:"userRole,omitempty"`
	TeamID         *string `json:"teamId,omitempty"`
	IsProjectAdmin *bool   `json:"isProjectAdmin,omitempty"`
	IsTeamAdmin    *bool   `json:"isTeamAdmin,omitempty"`
}

// PagedUsersData 定义了用户列表的分页响应结构
type PagedUsersData struct {
	Items      []models.User  `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}

// respondUserError 将用户服务层错误映射为 HTTP 响应
func respondUserError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		utils.RespondNotFoundError(c, "用户")
	case errors.Is(err, services.ErrTeamNotFound):
		utils.RespondNotFoundError(c, "团队")
	case errors.Is(err, services.ErrUserEmailExists):
		utils.RespondConflictError(c, err.Error())
	case errors.Is(err, services.ErrFullNameRequired),
		errors.Is(err, services.ErrInvalidUserRole),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, utils.ErrInvalidEmailFormat):
		utils.RespondValidationError(c, err.Error())
	default:
		utils.RespondInternalServerError(c, fallback, err.Error())
	}
}

// CreateUser godoc
// @Summary 创建用户
// @Description 邮箱全局唯一，密码以 bcrypt 哈希存储
// @Tags Users
// @Accept json
// @Produce json
// @Param user body CreateUserPayload true "用户信息"
// @Success 201 {object} utils.SuccessResponse{data=models.User} "创建成功的用户对象"
// @Failure 409 {object} utils.APIErrorResponse "用户邮箱已存在"
// @Router /users/create [post]
// @Security BearerAuth
func (h *UserHandler) CreateUser(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		utils.RespondUnauthorizedError(c)
		return
	}

	var payload CreateUserPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	created, err := h.service.CreateUser(caller, services.CreateUserInput{
		FullName:       payload.FullName,
		Email:          payload.Email,
		Password:       payload.Password,
		UserRole:       payload.UserRole,
		TeamID:         payload.TeamID,
		IsProjectAdmin: payload.IsProjectAdmin,
		IsTeamAdmin:    payload.IsTeamAdmin,
	})
	if err != nil {
		respondUserError(c, err, "创建用户失败")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, created, "用户创建成功")
}

// GetAllUsers godoc
// @Summary 获取用户列表
// @Tags Users
// @Produce json
// @Param pageNumber query int false "页码（1起）" default(1)
// @Param pageSize query int false "每页数量" default(10)
// @Success 200 {object} utils.SuccessResponse{data=PagedUsersData} "用户列表和分页信息"
// @Router /users/get-all [get]
// @Security BearerAuth
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	pageNumber, pageSize, err := bindPagination(c)
	if err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	users, totalCount, hasNext, err := h.service.GetAllUsers(pageNumber, pageSize)
	if err != nil {
		utils.RespondInternalServerError(c, "获取用户列表失败", err.Error())
		return
	}

	utils.RespondSuccess(c, http.StatusOK, PagedUsersData{
		Items: users,
		Pagination: PaginationInfo{
			TotalCount: totalCount,
			HasNext:    hasNext,
			PageNumber: pageNumber,
			PageSize:   pageSize,
		},
	}, "")
}

// GetUserByID godoc
// @Summary 获取用户详情
// @Tags Users
// @Produce json
// @Param id path string true "用户ID"
// @Success 200 {object} utils.SuccessResponse{data=models.User} "用户详情"
// @Failure 404 {object} utils.APIErrorResponse "用户未找到"
// @Router /users/get/{id} [get]
// @Security BearerAuth
func (h *UserHandler) GetUserByID(c *gin.Context) {
	user, err := h.service.GetUserByID(c.Param("id"))
	if err != nil {
		respondUserError(c, err, "获取用户失败")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, user, "")
}

// UpdateUser godoc
// @Summary 更新用户
// @Description 改密会作废该用户的全部刷新令牌
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "用户ID"
// @Param user body UpdateUserPayload true "待更新字段"
// @Success 200 {object} utils.SuccessResponse{data=models.User} "更新后的用户对象"
// @Failure 404 {object} utils.APIErrorResponse "用户未找到"
// @Router /users/update/{id} [put]
// @Security BearerAuth
func (h *UserHandler) UpdateUser(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		utils.RespondUnauthorizedError(c)
		return
	}

	var payload UpdateUserPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	updated, err := h.service.UpdateUser(caller, c.Param("id"), services.UpdateUserInput{
		FullName:       payload.FullName,
		Email:          payload.Email,
		Password:       payload.Password,
		UserRole:       payload.UserRole,
		TeamID:         payload.TeamID,
		IsProjectAdmin: payload.IsProjectAdmin,
		IsTeamAdmin:    payload.IsTeamAdmin,
	})
	if err != nil {
		respondUserError(c, err, "更新用户失败")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, updated, "用户更新成功")
}

// DeleteUser godoc
// @Summary 删除用户
// @Description 物理删除，同时作废其全部刷新令牌
// @Tags Users
// @Produce json
// @Param id path string true "用户ID"
// @Success 200 {object} utils.SuccessResponse "删除成功"
// @Failure 404 {object} utils.APIErrorResponse "用户未找到"
// @Router /users/delete/{id} [delete]
// @Security BearerAuth
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.service.DeleteUser(c.Param("id")); err != nil {
		respondUserError(c, err, "删除用户失败")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, nil, "用户删除成功")
}

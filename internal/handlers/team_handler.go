package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/construction_qa/internal/models"
	"github.com/construction_qa/internal/services"
	"github.com/construction_qa/pkg/utils"
)

// TeamHandler 封装了团队相关的 HTTP 处理逻辑
type TeamHandler struct {
	service services.TeamService
}

// NewTeamHandler 创建一个新的 TeamHandler 实例
func NewTeamHandler(service services.TeamService) *TeamHandler {
	return &TeamHandler{service: service}
}

// CreateTeamPayload 定义了创建团队请求的 JSON 结构体
type CreateTeamPayload struct {
	TeamName      string  `json:"teamName" binding:"required,max=255"`
	TeamInitials  *string `json:"teamInitials,omitempty" binding:"omitempty,max=10"`
	TeamType      *string `json:"teamType,omitempty"`
	TeamAddress   *string `json:"teamAddress,omitempty"`
	TeamTelephone *string `json:"teamTelephone,omitempty"`
	TeamEmail     *string `json:"teamEmail,omitempty" binding:"omitempty,email"`
	TeamRole      string  `json:"teamRole,omitempty"`
}

// UpdateTeamPayload 定义了更新团队请求的 JSON 结构体
type UpdateTeamPayload struct {
	TeamName      *string `json:"teamName,omitempty" binding:"omitempty,max=255"`
	TeamInitials  *string `json:"teamInitials,omitempty" binding:"omitempty,max=10"`
	TeamType      *string `json:"teamType,omitempty"`
	TeamAddress   *string `json:"teamAddress,omitempty"`
	TeamTelephone *string `json:"teamTelephone,omitempty"`
	TeamEmail     *string `json:"teamEmail,omitempty" binding:"omitempty,email"`
	TeamRole      *string `json:"teamRole,omitempty"`
	Active        *bool   `json:"active,omitempty"`
}

// PagedTeamsData 定义了团队列表的分页响应结构
type PagedTeamsData struct {
	Items      []models.Team  `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}

// respondTeamError 将团队服务层错误映射为 HTTP 响应
func respondTeamError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrTeamNotFound):
		utils.RespondNotFoundError(c, "团队")
	case errors.Is(err, services.ErrTeamNameExists):
		utils.RespondConflictError(c, err.Error())
	case errors.Is(err, services.ErrTeamNameRequired), errors.Is(err, services.ErrInvalidTeamRole):
		utils.RespondValidationError(c, err.Error())
	default:
		utils.RespondInternalServerError(c, fallback, err.Error())
	}
}

// CreateTeam godoc
// @Summary 创建团队
// @Description 团队名称全局唯一
// @Tags Teams
// @Accept json
// @Produce json
// @Param team body CreateTeamPayload true "团队信息"
// @Success 201 {object} utils.SuccessResponse{data=models.Team} "创建成功的团队对象"
// @Failure 409 {object} utils.APIErrorResponse "团队名称已存在"
// @Router /teams/create [post]
// @Security BearerAuth
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		utils.RespondUnauthorizedError(c)
		return
	}

	var payload CreateTeamPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	created, err := h.service.CreateTeam(caller, services.CreateTeamInput{
		TeamName:      payload.TeamName,
		TeamInitials:  payload.TeamInitials,
		TeamType:      payload.TeamType,
		TeamAddress:   payload.TeamAddress,
		TeamTelephone: payload.TeamTelephone,
		TeamEmail:     payload.TeamEmail,
		TeamRole:      payload.TeamRole,
	})
	if err != nil {
		respondTeamError(c, err, "创建团队失败")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, created, "团队创建成功")
}

// GetAllTeams godoc
// @Summary 获取团队列表
// @Tags Teams
// @Produce json
// @Param pageNumber query int false "页码（1起）" default(1)
// @Param pageSize query int false "每页数量" default(10)
// @Success 200 {object} utils.SuccessResponse{data=PagedTeamsData} "团队列表和分页信息"
// @Router /teams/get-all [get]
// @Security BearerAuth
func (h *TeamHandler) GetAllTeams(c *gin.Context) {
	pageNumber, pageSize, err := bindPagination(c)
	if err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	teams, totalCount, hasNext, err := h.service.GetAllTeams(pageNumber, pageSize)
	if err != nil {
		utils.RespondInternalServerError(c, "获取团队列表失败", err.Error())
		return
	}

	utils.RespondSuccess(c, http.StatusOK, PagedTeamsData{
		Items: teams,
		Pagination: PaginationInfo{
			TotalCount: totalCount,
			HasNext:    hasNext,
			PageNumber: pageNumber,
			PageSize:   pageSize,
		},
	}, "")
}

// GetTeamByID godoc
// @Summary 获取团队详情
// @Tags Teams
// @Produce json
// @Param id path string true "团队ID"
// @Success 200 {object} utils.SuccessResponse{data=models.Team} "团队详情"
// @Failure 404 {object} utils.APIErrorResponse "团队未找到"
// @Router /teams/get/{id} [get]
// @Security BearerAuth
func (h *TeamHandler) GetTeamByID(c *gin.Context) {
	team, err := h.service.GetTeamByID(c.Param("id"))
	if err != nil {
		respondTeamError(c, err, "获取团队失败")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, team, "")
}

// UpdateTeam godoc
// @Summary 更新团队
// @Tags Teams
// @Accept json
// @Produce json
// @Param id path string true "团队ID"
// @Param team body UpdateTeamPayload true "待更新字段"
// @Success 200 {object} utils.SuccessResponse{data=models.Team} "更新后的团队对象"
// @Failure 404 {object} utils.APIErrorResponse "团队未找到"
// @Router /teams/update/{id} [put]
// @Security BearerAuth
func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		utils.RespondUnauthorizedError(c)
		return
	}

	var payload UpdateTeamPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	updated, err := h.service.UpdateTeam(caller, c.Param("id"), services.UpdateTeamInput{
		TeamName:      payload.TeamName,
		TeamInitials:  payload.TeamInitials,
		TeamType:      payload.TeamType,
		TeamAddress:   payload.TeamAddress,
		TeamTelephone: payload.TeamTelephone,
		TeamEmail:     payload.TeamEmail,
		TeamRole:      payload.TeamRole,
		Active:        payload.Active,
	})
	if err != nil {
		respondTeamError(c, err, "更新团队失败")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, updated, "团队更新成功")
}

// DeleteTeam godoc
// @Summary 删除团队
// @Description 团队成员保留，其 teamId 置空
// @Tags Teams
// @Produce json
// @Param id path string true "团队ID"
// @Success 200 {object} utils.SuccessResponse "删除成功"
// @Failure 404 {object} utils.APIErrorResponse "团队未找到"
// @Router /teams/delete/{id} [delete]
// @Security BearerAuth
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	if err := h.service.DeleteTeam(c.Param("id")); err != nil {
		respondTeamError(c, err, "删除团队失败")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, nil, "团队删除成功")
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/construction_qa/internal/models"
	"github.com/construction_qa/internal/services"
	"github.com/construction_qa/pkg/export"
	"github.com/construction_qa/pkg/utils"
)

// IssueHandler 封装了问题相关的 HTTP 处理逻辑
type IssueHandler struct {
	service services.IssueService
}

// NewIssueHandler 创建一个新的 IssueHandler 实例
func NewIssueHandler(service services.IssueService) *IssueHandler {
	return &IssueHandler{service: service}
}

// CreateIssuePayload 定义了创建问题请求的 JSON 结构体。
// projectId 在巡检路由下取自路径参数，故不在绑定层强制。
type CreateIssuePayload struct {
	ProjectID string `json:"projectId"`
	UnitID    string `json:"unitId" binding:"required"`
	Title     string `json:"title" binding:"required,max=500"`

	Description   *string `json:"description,omitempty"`
	Priority      string  `json:"priority,omitempty" binding:"omitempty,oneof=Low Medium High"`
	DueDate       *string `json:"dueDate,omitempty"`
	CreatedByTeam *string `json:"createdByTeam,omitempty"`
	AssignedTeam  *string `json:"assignedTeam,omitempty"`
	AssignedUser  *string `json:"assignedUser,omitempty"`

	MediaBase64      *string `json:"mediaBase64,omitempty"`
	MediaContentType *string `json:"mediaContentType,omitempty"`
	Comments         *string `json:"comments,omitempty"`
	Category         *string `json:"category,omitempty"`
	IssueType        *string `json:"issueType,omitempty"`
	IssueItem        *string `json:"issueItem,omitempty"`
	Location         *string `json:"location,omitempty"`
}

// UpdateIssuePayload 定义了通用更新请求的 JSON 结构体。
// version 必填：乐观并发控制要求回传读取时的版本号。
type UpdateIssuePayload struct {
	Version int64 `json:"version" binding:"required,min=1"`

	Title        *string `json:"title,omitempty" binding:"omitempty,max=500"`
	Description  *string `json:"description,omitempty"`
	Priority     *string `json:"priority,omitempty" binding:"omitempty,oneof=Low Medium High"`
	Status       *string `json:"status,omitempty"`
	DueDate      *string `json:"dueDate,omitempty"`
	AssignedTeam *string `json:"assignedTeam,omitempty"`
	AssignedUser *string `json:"assignedUser,omitempty"`

	MediaBase64      *string `json:"mediaBase64,omitempty"`
	MediaContentType *string `json:"mediaContentType,omitempty"`
	Comments         *string `json:"comments,omitempty"`
	Category         *string `json:"category,omitempty"`
	IssueType        *string `json:"issueType,omitempty"`
	IssueItem        *string `json:"issueItem,omitempty"`
	Location         *string `json:"location,omitempty"`
}

// UpdateIssueStatusPayload 定义了状态流转请求的 JSON 结构体
type UpdateIssueStatusPayload struct {
	Status   string  `json:"status" binding:"required"`
	Version  int64   `json:"version" binding:"required,min=1"`
	Comments *string `json:"comments,omitempty"`
}

// PagedIssuesData 定义了问题列表的分页响应结构
type PagedIssuesData struct {
	Items      []models.Issue `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}

// respondIssueError 将服务层错误映射为 HTTP 响应
func respondIssueError(c *gin.Context, err error) {
	var transitionErr *services.TransitionError
	var statusErr *services.StatusNotAllowedError
	switch {
	case errors.Is(err, services.ErrIssueNotFound):
		utils.RespondNotFoundError(c, "问题")
	case errors.Is(err, services.ErrProjectNotFound):
		utils.RespondNotFoundError(c, "项目")
	case errors.Is(err, services.ErrUnitNotFound):
		utils.RespondNotFoundError(c, "单元")
	case errors.Is(err, services.ErrIssueVersionConflict):
		utils.RespondConflictError(c, services.ErrIssueVersionConflict.Error())
	case errors.Is(err, services.ErrNotAssignee):
		utils.RespondForbiddenError(c, services.ErrNotAssignee.Error())
	case errors.As(err, &statusErr):
		utils.RespondAPIError(c, http.StatusBadRequest, statusErr.Error(), nil)
	case errors.As(err, &transitionErr):
		utils.RespondAPIError(c, http.StatusBadRequest, transitionErr.Error(), nil)
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrUnitRequired),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidPriority):
		utils.RespondValidationError(c, err.Error())
	default:
		utils.RespondInternalServerError(c, "问题操作失败", err.Error())
	}
}

// parseDueDate 解析可选的截止日期参数
func parseDueDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := utils.ParseDate(*raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetAllIssues godoc
// @Summary 获取问题列表
// @Description 分页获取全部问题，按创建时间降序
// @Tags Issues
// @Accept json
// @Produce json
// @Param pageNumber query int false "页码（1起）" default(1)
// @Param pageSize query int false "每页数量" default(10)
// @Success 200 {object} utils.SuccessResponse{data=PagedIssuesData} "问题列表和分页信息"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /issues/get-all [get]
// @Security BearerAuth
func (h *IssueHandler) GetAllIssues(c *gin.Context) {
	pageNumber, pageSize, err := bindPagination(c)
	if err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	issues, totalCount, hasNext, err := h.service.GetAllIssues(pageNumber, pageSize)
	if err != nil {
		utils.RespondInternalServerError(c, "获取问题列表失败", err.Error())
		return
	}

	utils.RespondSuccess(c, http.StatusOK, PagedIssuesData{
		Items: issues,
		Pagination: PaginationInfo{
			TotalCount: totalCount,
			HasNext:    hasNext,
			PageNumber: pageNumber,
			PageSize:   pageSize,
		},
	}, "")
}

// GetIssueByID godoc
// @Summary 获取问题详情
// @Tags Issues
// @Accept json
// @Produce json
// @Param id path string true "问题ID"
// @Success 200 {object} utils.SuccessResponse{data=models.Issue} "问题详情"
// @Failure 404 {object} utils.APIErrorResponse "问题未找到"
// @Router /issues/get/{id} [get]
// @Security BearerAuth
func (h *IssueHandler) GetIssueByID(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	issue, err := h.service.GetIssueByID(id)
	if err != nil {
		respondIssueError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, issue, "")
}

// CreateIssue godoc
// @Summary 创建问题
// @Description 创建一条整改问题。无论请求中传入何种状态，新问题始终以 Open 状态创建。
// @Tags Issues
// @Accept json
// @Produce json
// @Param issue body CreateIssuePayload true "问题信息"
// @Success 201 {object} utils.SuccessResponse{data=models.Issue} "创建成功的问题对象"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误或数据校验失败"
// @Failure 404 {object} utils.APIErrorResponse "项目或单元未找到"
// @Router /issues/create [post]
// @Security BearerAuth
func (h *IssueHandler) CreateIssue(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		utils.RespondUnauthorizedError(c)
		return
	}

	var payload CreateIssuePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}
	if payload.ProjectID == "" {
		utils.RespondValidationError(c, "projectId 不能为空")
		return
	}
	h.createIssueFromPayload(c, caller, payload)
}

// CreateIssueForProject godoc
// @Summary 巡检创建问题
// @Description 巡检团队在指定项目下创建问题，项目ID取自路径参数
// @Tags Issues
// @Accept json
// @Produce json
// @Param projectId path string true "项目ID"
// @Param issue body CreateIssuePayload true "问题信息（projectId以路径参数为准）"
// @Success 201 {object} utils.SuccessResponse{data=models.Issue} "创建成功的问题对象"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Router /issues/inspector/create/{projectId} [post]
// @Security BearerAuth
func (h *IssueHandler) CreateIssueForProject(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		utils.RespondUnauthorizedError(c)
		return
	}

	var payload CreateIssuePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}
	// 路径中的项目ID优先于请求体
	payload.ProjectID = c.Param("projectId")
	h.createIssueFromPayload(c, caller, payload)
}

func (h *IssueHandler) createIssueFromPayload(c *gin.Context, caller services.Caller, payload CreateIssuePayload) {
	dueDate, err := parseDueDate(payload.DueDate)
	if err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	created, err := h.service.CreateIssue(caller, services.CreateIssueInput{
		ProjectID:     payload.ProjectID,
		UnitID:        payload.UnitID,
		Title:         payload.Title,
		Description:   payload.Description,
		Priority:      payload.Priority,
		DueDate:       dueDate,
		CreatedByTeam: payload.CreatedByTeam,
		AssignedTeam:  payload.AssignedTeam,
		AssignedUser:  payload.AssignedUser,

		MediaBase64:      payload.MediaBase64,
		MediaContentType: payload.MediaContentType,
		Comments:         payload.Comments,
		Category:         payload.Category,
		IssueType:        payload.IssueType,
		IssueItem:        payload.IssueItem,
		Location:         payload.Location,
	})
	if err != nil {
		respondIssueError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, created, "问题创建成功")
}

// UpdateIssue godoc
// @Summary 更新问题
// @Description 通用字段更新，需携带读取时的版本号。状态变更同样经过状态机校验。
// @Tags Issues
// @Accept json
// @Produce json
// @Param id path string true "问题ID"
// @Param issue body UpdateIssuePayload true "待更新字段"
// @Success 200 {object} utils.SuccessResponse{data=models.Issue} "更新后的问题对象"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误或非法的状态流转"
// @Failure 403 {object} utils.APIErrorResponse "非被指派方"
// @Failure 404 {object} utils.APIErrorResponse "问题未找到"
// @Failure 409 {object} utils.APIErrorResponse "版本冲突"
// @Router /issues/update/{id} [put]
// @Security BearerAuth
func (h *IssueHandler) UpdateIssue(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		utils.RespondUnauthorizedError(c)
		return
	}

	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var payload UpdateIssuePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}
	dueDate, err := parseDueDate(payload.DueDate)
	if err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	updated, err := h.service.UpdateIssue(caller, id, services.UpdateIssueInput{
		Version:      payload.Version,
		Title:        payload.Title,
		Description:  payload.Description,
		Priority:     payload.Priority,
		Status:       payload.Status,
		DueDate:      dueDate,
		AssignedTeam: payload.AssignedTeam,
		AssignedUser: payload.AssignedUser,

		MediaBase64:      payload.MediaBase64,
		MediaContentType: payload.MediaContentType,
		Comments:         payload.Comments,
		Category:         payload.Category,
		IssueType:        payload.IssueType,
		IssueItem:        payload.IssueItem,
		Location:         payload.Location,
	})
	if err != nil {
		respondIssueError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, updated, "问题更新成功")
}

// DeleteIssue godoc
// @Summary 删除问题
// @Description 物理删除问题，仅管理员可用
// @Tags Issues
// @Accept json
// @Produce json
// @Param id path string true "问题ID"
// @Success 200 {object} utils.SuccessResponse "删除成功"
// @Failure 404 {object} utils.APIErrorResponse "问题未找到"
// @Router /issues/delete/{id} [delete]
// @Security BearerAuth
func (h *IssueHandler) DeleteIssue(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteIssue(id); err != nil {
		respondIssueError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, nil, "问题删除成功")
}

// GetInspectorIssues godoc
// @Summary 巡检视图
// @Description 获取当前巡检用户创建的问题列表
// @Tags Issues
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]models.Issue} "问题列表"
// @Router /issues/inspector/issues [get]
// @Security BearerAuth
func (h *IssueHandler) GetInspectorIssues(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		utils.RespondUnauthorizedError(c)
		return
	}
	issues, err := h.service.ListIssuesByInspector(caller)
	if err != nil {
		utils.RespondInternalServerError(c, "获取问题列表失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, issues, "")
}

// GetAssignedIssues godoc
// @Summary 承包商/分包商视图
// @Description 获取指派给当前用户或其团队的问题列表
// @Tags Issues
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]models.Issue} "问题列表"
// @Router /issues/contractor/issues [get]
// @Security BearerAuth
func (h *IssueHandler) GetAssignedIssues(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		utils.RespondUnauthorizedError(c)
		return
	}
	issues, err := h.service.ListAssignedIssues(caller)
	if err != nil {
		utils.RespondInternalServerError(c, "获取问题列表失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, issues, "")
}

// GetVerificationIssues godoc
// @Summary QA验收视图
// @Description 获取指派给当前QA用户或其团队、处于待验收阶段的问题列表
// @Tags Issues
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]models.Issue} "问题列表"
// @Router /issues/verify/issues [get]
// @Security BearerAuth
func (h *IssueHandler) GetVerificationIssues(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		utils.RespondUnauthorizedError(c)
		return
	}
	issues, err := h.service.ListIssuesForVerification(caller)
	if err != nil {
		utils.RespondInternalServerError(c, "获取问题列表失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, issues, "")
}

// UpdateIssueStatus godoc
// @Summary 问题状态流转
// @Description 承包商/分包商/QA/管理员共用的状态流转入口，所有流转经过同一张状态表校验
// @Tags Issues
// @Accept json
// @Produce json
// @Param issueId path string true "问题ID"
// @Param payload body UpdateIssueStatusPayload true "目标状态与版本号"
// @Success 200 {object} utils.SuccessResponse{data=models.Issue} "更新后的问题对象"
// @Failure 400 {object} utils.APIErrorResponse "非法的状态流转"
// @Failure 403 {object} utils.APIErrorResponse "非被指派方"
// @Failure 404 {object} utils.APIErrorResponse "问题未找到"
// @Failure 409 {object} utils.APIErrorResponse "版本冲突"
// @Router /issues/contractor/update-status/{issueId} [put]
// @Security BearerAuth
func (h *IssueHandler) UpdateIssueStatus(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		utils.RespondUnauthorizedError(c)
		return
	}

	issueID, ok := uuidParam(c, "issueId")
	if !ok {
		return
	}

	var payload UpdateIssueStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	updated, err := h.service.UpdateIssueStatus(caller, issueID, payload.Status, payload.Version, payload.Comments)
	if err != nil {
		respondIssueError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, updated, "状态更新成功")
}

// ExportIssues godoc
// @Summary 导出问题清单
// @Description 以 Excel 文件形式导出全部问题
// @Tags Issues
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary "Excel 文件"
// @Failure 500 {object} utils.APIErrorResponse "导出失败"
// @Router /issues/export [get]
// @Security BearerAuth
func (h *IssueHandler) ExportIssues(c *gin.Context) {
	issues, err := h.service.GetAllForExport()
	if err != nil {
		utils.RespondInternalServerError(c, "导出问题失败", err.Error())
		return
	}

	data, err := export.GenerateIssueExport(issues)
	if err != nil {
		utils.RespondInternalServerError(c, "生成Excel失败", err.Error())
		return
	}

	filename := fmt.Sprintf("issues_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

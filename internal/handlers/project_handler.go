package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/construction_qa/internal/models"
	"github.com/construction_qa/internal/services"
	"github.com/construction_qa/pkg/utils"
)

// ProjectHandler 封装了项目相关的 HTTP 处理逻辑
type ProjectHandler struct {
	service services.ProjectService
}

// NewProjectHandler 创建一个新的 ProjectHandler 实例
func NewProjectHandler(service services.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// CreateProjectPayload 定义了创建项目请求的 JSON 结构体
type CreateProjectPayload struct {
	ProjectCode string  `json:"projectCode" binding:"required,max=100"`
	ProjectName string  `json:"projectName" binding:"required,max=255"`
	Description *string `json:"description,omitempty"`
	ClientName  *string `json:"clientName,omitempty" binding:"omitempty,max=255"`
}

// UpdateProjectPayload 定义了更新项目请求的 JSON 结构体
type UpdateProjectPayload struct {
	ProjectName *string `json:"projectName,omitempty" binding:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
	ClientName  *string `json:"clientName,omitempty" binding:"omitempty,max=255"`
}

// PagedProjectsData 定义了项目列表的分页响应结构
type PagedProjectsData struct {
	Items      []models.Project `json:"items"`
	Pagination PaginationInfo   `json:"pagination"`
}

// CreateProject godoc
// @Summary 创建项目
// @Description 项目编码全局唯一
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body CreateProjectPayload true "项目信息"
// @Success 201 {object} utils.SuccessResponse{data=models.Project} "创建成功的项目对象"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 409 {object} utils.APIErrorResponse "项目编码已存在"
// @Router /projects/create [post]
// @Security BearerAuth
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		utils.RespondUnauthorizedError(c)
		return
	}

	var payload CreateProjectPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	created, err := h.service.CreateProject(caller, services.CreateProjectInput{
		ProjectCode: payload.ProjectCode,
		ProjectName: payload.ProjectName,
		Description: payload.Description,
		ClientName:  payload.ClientName,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectCodeExists):
			utils.RespondConflictError(c, err.Error())
		case errors.Is(err, services.ErrProjectCodeRequired), errors.Is(err, services.ErrProjectNameRequired):
			utils.RespondValidationError(c, err.Error())
		default:
			utils.RespondInternalServerError(c, "创建项目失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, created, "项目创建成功")
}

// GetAllProjects godoc
// @Summary 获取项目列表
// @Tags Projects
// @Produce json
// @Param pageNumber query int false "页码（1起）" default(1)
// @Param pageSize query int false "每页数量" default(10)
// @Success 200 {object} utils.SuccessResponse{data=PagedProjectsData} "项目列表和分页信息"
// @Router /projects/get-all [get]
// @Security BearerAuth
func (h *ProjectHandler) GetAllProjects(c *gin.Context) {
	pageNumber, pageSize, err := bindPagination(c)
	if err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	projects, totalCount, hasNext, err := h.service.GetAllProjects(pageNumber, pageSize)
	if err != nil {
		utils.RespondInternalServerError(c, "获取项目列表失败", err.Error())
		return
	}

	utils.RespondSuccess(c, http.StatusOK, PagedProjectsData{
		Items: projects,
		Pagination: PaginationInfo{
			TotalCount: totalCount,
			HasNext:    hasNext,
			PageNumber: pageNumber,
			PageSize:   pageSize,
		},
	}, "")
}

// GetProjectByID godoc
// @Summary 获取项目详情
// @Tags Projects
// @Produce json
// @Param id path string true "项目ID"
// @Success 200 {object} utils.SuccessResponse{data=models.Project} "项目详情"
// @Failure 404 {object} utils.APIErrorResponse "项目未找到"
// @Router /projects/get/{id} [get]
// @Security BearerAuth
func (h *ProjectHandler) GetProjectByID(c *gin.Context) {
	project, err := h.service.GetProjectByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			utils.RespondNotFoundError(c, "项目")
			return
		}
		utils.RespondInternalServerError(c, "获取项目失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, project, "")
}

// UpdateProject godoc
// @Summary 更新项目
// @Description 项目编码创建后不可变更
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "项目ID"
// @Param project body UpdateProjectPayload true "待更新字段"
// @Success 200 {object} utils.SuccessResponse{data=models.Project} "更新后的项目对象"
// @Failure 404 {object} utils.APIErrorResponse "项目未找到"
// @Router /projects/update/{id} [put]
// @Security BearerAuth
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		utils.RespondUnauthorizedError(c)
		return
	}

	var payload UpdateProjectPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	updated, err := h.service.UpdateProject(caller, c.Param("id"), services.UpdateProjectInput{
		ProjectName: payload.ProjectName,
		Description: payload.Description,
		ClientName:  payload.ClientName,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			utils.RespondNotFoundError(c, "项目")
		case errors.Is(err, services.ErrProjectNameRequired):
			utils.RespondValidationError(c, err.Error())
		default:
			utils.RespondInternalServerError(c, "更新项目失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, updated, "项目更新成功")
}

// DeleteProject godoc
// @Summary 删除项目
// @Description 项目下的楼栋、单元与问题级联删除
// @Tags Projects
// @Produce json
// @Param id path string true "项目ID"
// @Success 200 {object} utils.SuccessResponse "删除成功"
// @Failure 404 {object} utils.APIErrorResponse "项目未找到"
// @Router /projects/delete/{id} [delete]
// @Security BearerAuth
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	if err := h.service.DeleteProject(c.Param("id")); err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			utils.RespondNotFoundError(c, "项目")
			return
		}
		utils.RespondInternalServerError(c, "删除项目失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, nil, "项目删除成功")
}

package services

import (
	"errors"
	"strings"
	"time"

	"github.com/construction_qa/internal/models"
	"github.com/construction_qa/internal/repositories"
	"github.com/construction_qa/pkg/utils"
)

// ErrProjectCodeExists 表示项目编码已被占用
var ErrProjectCodeExists = errors.New("项目编码已存在")

// ErrProjectCodeRequired 表示项目编码不能为空
var ErrProjectCodeRequired = errors.New("项目编码不能为空")

// ErrProjectNameRequired 表示项目名称不能为空
var ErrProjectNameRequired = errors.New("项目名称不能为空")

// CreateProjectInput 定义创建项目所需的字段
type CreateProjectInput struct {
	ProjectCode string
	ProjectName string
	Description *string
	ClientName  *string
}

// UpdateProjectInput 定义更新项目可修改的字段，nil 表示不修改
type UpdateProjectInput struct {
	ProjectName *string
	Description *string
	ClientName  *string
}

// ProjectService 定义了项目服务的接口
type ProjectService interface {
	CreateProject(caller Caller, input CreateProjectInput) (*models.Project, error)
	GetProjectByID(id string) (*models.Project, error)
	GetAllProjects(pageNumber, pageSize int) ([]models.Project, int64, bool, error)
	UpdateProject(caller Caller, id string, input UpdateProjectInput) (*models.Project, error)
	// DeleteProject 删除项目，楼栋/单元/问题级联删除
	DeleteProject(id string) error
}

// projectService 是 ProjectService 的实现
type projectService struct {
	repo repositories.ProjectRepository
}

// NewProjectService 创建一个新的 projectService 实例
func NewProjectService(repo repositories.ProjectRepository) ProjectService {
	return &projectService{repo: repo}
}

// CreateProject 创建项目，项目编码全局唯一
func (s *projectService) CreateProject(caller Caller, input CreateProjectInput) (*models.Project, error) {
	code := strings.TrimSpace(input.ProjectCode)
	if code == "" {
		return nil, ErrProjectCodeRequired
	}
	name := strings.TrimSpace(input.ProjectName)
	if name == "" {
		return nil, ErrProjectNameRequired
	}

	// 先查重，给出明确错误而不是依赖数据库唯一索引报错
	if existing, err := s.repo.FindByCode(code); err != nil && !errors.Is(err, repositories.ErrRecordNotFound) {
		return nil, err
	} else if existing != nil {
		return nil, ErrProjectCodeExists
	}

	project := &models.Project{
		DocumentStatus: models.DocumentStatusActive,
		ProjectCode:    code,
		ProjectName:    name,
		Description:    input.Description,
		ClientName:     input.ClientName,
		CreatedUser:    caller.ID,
		UpdatedUser:    caller.ID,
		UpdatedAt:      time.Now(),
	}

	created, err := s.repo.CreateProject(project)
	if err != nil {
		if errors.Is(err, repositories.ErrProjectCodeExists) {
			return nil, ErrProjectCodeExists
		}
		return nil, err
	}
	return created, nil
}

// GetProjectByID 根据ID获取项目
func (s *projectService) GetProjectByID(id string) (*models.Project, error) {
	project, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return project, nil
}

// GetAllProjects 分页获取项目列表
func (s *projectService) GetAllProjects(pageNumber, pageSize int) ([]models.Project, int64, bool, error) {
	projects, totalCount, err := s.repo.GetAllProjects(pageNumber, pageSize)
	if err != nil {
		return nil, 0, false, err
	}
	hasNext := utils.HasNextPage(totalCount, pageNumber, pageSize)
	return projects, totalCount, hasNext, nil
}

// UpdateProject 更新项目字段（项目编码创建后不可变更）
func (s *projectService) UpdateProject(caller Caller, id string, input UpdateProjectInput) (*models.Project, error) {
	updates := map[string]interface{}{
		"updated_user": caller.ID,
		"updated_at":   time.Now(),
	}
	if input.ProjectName != nil {
		name := strings.TrimSpace(*input.ProjectName)
		if name == "" {
			return nil, ErrProjectNameRequired
		}
		updates["project_name"] = name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.ClientName != nil {
		updates["client_name"] = *input.ClientName
	}

	updated, err := s.repo.UpdateProject(id, updates)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return updated, nil
}

// DeleteProject 删除项目
func (s *projectService) DeleteProject(id string) error {
	if err := s.repo.DeleteProject(id); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return err
	}
	return nil
}

package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/construction_qa/internal/models"
	"github.com/construction_qa/pkg/utils"
)

// ProjectRepository 定义了项目数据仓库的接口
type ProjectRepository interface {
	CreateProject(project *models.Project) (*models.Project, error)
	FindByID(id string) (*models.Project, error)
	FindByCode(code string) (*models.Project, error)
	GetAllProjects(pageNumber, pageSize int) ([]models.Project, int64, error)
	UpdateProject(id string, updates map[string]interface{}) (*models.Project, error)
	// DeleteProject 物理删除项目；楼栋、单元与问题依赖外键级联删除
	DeleteProject(id string) error
}

// gormProjectRepository 是 ProjectRepository 的 GORM 实现
type gormProjectRepository struct {
	db *gorm.DB
}

// NewGormProjectRepository 创建一个新的 gormProjectRepository 实例
func NewGormProjectRepository(db *gorm.DB) ProjectRepository {
	return &gormProjectRepository{db: db}
}

// CreateProject 在数据库中创建一条项目记录，项目编号唯一
func (r *gormProjectRepository) CreateProject(project *models.Project) (*models.Project, error) {
	// 预先检查项目编号是否已存在
	var existing models.Project
	if err := r.db.Where("project_code = ?", project.ProjectCode).First(&existing).Error; err == nil {
		return nil, ErrProjectCodeExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := r.db.Create(project).Error; err != nil {
		// 并发创建时由数据库唯一索引兜底
		if strings.Contains(strings.ToLower(err.Error()), "unique constraint") {
			return nil, ErrProjectCodeExists
		}
		return nil, err
	}
	return project, nil
}

// FindByID 根据主键查询项目
func (r *gormProjectRepository) FindByID(id string) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &project, nil
}

// FindByCode 根据项目编号查询项目
func (r *gormProjectRepository) FindByCode(code string) (*models.Project, error) {
	var project models.Project
	if err := r.db.Where("project_code = ?", code).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &project, nil
}

// GetAllProjects 分页查询项目列表，返回列表与总数
func (r *gormProjectRepository) GetAllProjects(pageNumber, pageSize int) ([]models.Project, int64, error) {
	var totalCount int64
	if err := r.db.Model(&models.Project{}).Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	var projects []models.Project
	offset := utils.PaginationOffset(pageNumber, pageSize)
	if err := r.db.Order("created_at desc").Limit(pageSize).Offset(offset).Find(&projects).Error; err != nil {
		return nil, 0, err
	}
	return projects, totalCount, nil
}

// UpdateProject 更新项目字段
func (r *gormProjectRepository) UpdateProject(id string, updates map[string]interface{}) (*models.Project, error) {
	result := r.db.Model(&models.Project{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}
	return r.FindByID(id)
}

// DeleteProject 物理删除项目
func (r *gormProjectRepository) DeleteProject(id string) error {
	result := r.db.Delete(&models.Project{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

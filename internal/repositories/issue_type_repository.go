package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/construction_qa/internal/models"
)

// IssueTypeRepository 定义了问题分类数据仓库的接口
type IssueTypeRepository interface {
	CreateIssueType(issueType *models.IssueType) (*models.IssueType, error)
	FindByID(id string) (*models.IssueType, error)
	GetAllIssueTypes() ([]models.IssueType, error)
	UpdateIssueType(id string, updates map[string]interface{}) (*models.IssueType, error)
	DeleteIssueType(id string) error
}

// gormIssueTypeRepository 是 IssueTypeRepository 的 GORM 实现
type gormIssueTypeRepository struct {
	db *gorm.DB
}

// NewGormIssueTypeRepository 创建一个新的 gormIssueTypeRepository 实例
func NewGormIssueTypeRepository(db *gorm.DB) IssueTypeRepository {
	return &gormIssueTypeRepository{db: db}
}

// CreateIssueType 创建问题分类，(大类, 类型, 条目) 三元组唯一
func (r *gormIssueTypeRepository) CreateIssueType(issueType *models.IssueType) (*models.IssueType, error) {
	var existing models.IssueType
	err := r.db.Where("category = ? AND type = ? AND item = ?",
		issueType.Category, issueType.Type, issueType.Item).First(&existing).Error
	if err == nil {
		return nil, ErrIssueTypeCombExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := r.db.Create(issueType).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique constraint") {
			return nil, ErrIssueTypeCombExists
		}
		return nil, err
	}
	return issueType, nil
}

// FindByID 根据主键查询问题分类
func (r *gormIssueTypeRepository) FindByID(id string) (*models.IssueType, error) {
	var issueType models.IssueType
	if err := r.db.First(&issueType, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &issueType, nil
}

// GetAllIssueTypes 查询全部有效的问题分类（分类表数据量小，不分页）
func (r *gormIssueTypeRepository) GetAllIssueTypes() ([]models.IssueType, error) {
	var issueTypes []models.IssueType
	if err := r.db.Where("current = ?", true).
		Order("category asc, type asc, item asc").Find(&issueTypes).Error; err != nil {
		return nil, err
	}
	return issueTypes, nil
}

// UpdateIssueType 更新问题分类字段
func (r *gormIssueTypeRepository) UpdateIssueType(id string, updates map[string]interface{}) (*models.IssueType, error) {
	result := r.db.Model(&models.IssueType{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}
	return r.FindByID(id)
}

// DeleteIssueType 物理删除问题分类
func (r *gormIssueTypeRepository) DeleteIssueType(id string) error {
	result := r.db.Delete(&models.IssueType{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

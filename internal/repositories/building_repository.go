package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/construction_qa/internal/models"
)

// BuildingRepository 定义了楼栋数据仓库的接口
type BuildingRepository interface {
	CreateBuilding(building *models.Building) (*models.Building, error)
	FindByID(id string) (*models.Building, error)
	GetBuildingsByProjectID(projectID string) ([]models.Building, error)
	UpdateBuilding(id string, updates map[string]interface{}) (*models.Building, error)
	DeleteBuilding(id string) error
}

// gormBuildingRepository 是 BuildingRepository 的 GORM 实现
type gormBuildingRepository struct {
	db *gorm.DB
}

// NewGormBuildingRepository 创建一个新的 gormBuildingRepository 实例
func NewGormBuildingRepository(db *gorm.DB) BuildingRepository {
	return &gormBuildingRepository{db: db}
}

// CreateBuilding 在数据库中创建一条楼栋记录，(项目, 楼栋编号) 组合唯一
func (r *gormBuildingRepository) CreateBuilding(building *models.Building) (*models.Building, error) {
	var existing models.Building
	err := r.db.Where("project_id = ? AND building_code = ?", building.ProjectID, building.BuildingCode).
		First(&existing).Error
	if err == nil {
		return nil, ErrBuildingCodeExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := r.db.Create(building).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique constraint") {
			return nil, ErrBuildingCodeExists
		}
		return nil, err
	}
	return building, nil
}

// FindByID 根据主键查询楼栋
func (r *gormBuildingRepository) FindByID(id string) (*models.Building, error) {
	var building models.Building
	if err := r.db.First(&building, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &building, nil
}

// GetBuildingsByProjectID 查询项目下的全部楼栋
func (r *gormBuildingRepository) GetBuildingsByProjectID(projectID string) ([]models.Building, error) {
	var buildings []models.Building
	if err := r.db.Where("project_id = ?", projectID).Order("building_code asc").Find(&buildings).Error; err != nil {
		return nil, err
	}
	return buildings, nil
}

// UpdateBuilding 更新楼栋字段
func (r *gormBuildingRepository) UpdateBuilding(id string, updates map[string]interface{}) (*models.Building, error) {
	result := r.db.Model(&models.Building{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}
	return r.FindByID(id)
}

// DeleteBuilding 物理删除楼栋，单元依赖外键级联删除
func (r *gormBuildingRepository) DeleteBuilding(id string) error {
	result := r.db.Delete(&models.Building{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/construction_qa/internal/models"
)

// UnitRepository 定义了单元数据仓库的接口
type UnitRepository interface {
	CreateUnit(unit *models.Unit) (*models.Unit, error)
	FindByID(id string) (*models.Unit, error)
	GetUnitsByBuildingID(buildingID string) ([]models.Unit, error)
	UpdateUnit(id string, updates map[string]interface{}) (*models.Unit, error)
	// DeleteUnit 删除单元，同时把引用该单元的问题 unit_id 置空（问题保留）
	DeleteUnit(id string) error
}

// gormUnitRepository 是 UnitRepository 的 GORM 实现
type gormUnitRepository struct {
	db *gorm.DB
}

// NewGormUnitRepository 创建一个新的 gormUnitRepository 实例
func NewGormUnitRepository(db *gorm.DB) UnitRepository {
	return &gormUnitRepository{db: db}
}

// CreateUnit 在数据库中创建一条单元记录，(楼栋, 单元号) 组合唯一
func (r *gormUnitRepository) CreateUnit(unit *models.Unit) (*models.Unit, error) {
	var existing models.Unit
	err := r.db.Where("building_id = ? AND unit_number = ?", unit.BuildingID, unit.UnitNumber).
		First(&existing).Error
	if err == nil {
		return nil, ErrUnitNumberExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := r.db.Create(unit).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique constraint") {
			return nil, ErrUnitNumberExists
		}
		return nil, err
	}
	return unit, nil
}

// FindByID 根据主键查询单元
func (r *gormUnitRepository) FindByID(id string) (*models.Unit, error) {
	var unit models.Unit
	if err := r.db.First(&unit, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &unit, nil
}

// GetUnitsByBuildingID 查询楼栋下的全部单元
func (r *gormUnitRepository) GetUnitsByBuildingID(buildingID string) ([]models.Unit, error) {
	var units []models.Unit
	if err := r.db.Where("building_id = ?", buildingID).Order("unit_number asc").Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

// UpdateUnit 更新单元字段
func (r *gormUnitRepository) UpdateUnit(id string, updates map[string]interface{}) (*models.Unit, error) {
	result := r.db.Model(&models.Unit{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}
	return r.FindByID(id)
}

// DeleteUnit 在一个事务内先把引用问题的 unit_id 置空，再删除单元。
// 问题记录必须在单元删除后继续存在（业务要求）。
func (r *gormUnitRepository) DeleteUnit(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var unit models.Unit
		if err := tx.First(&unit, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}

		if err := tx.Model(&models.Issue{}).
			Where("unit_id = ?", id).
			Updates(map[string]interface{}{"unit_id": nil, "unit_number": nil}).Error; err != nil {
			return err
		}

		return tx.Delete(&unit).Error
	})
}

package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/construction_qa/internal/models"
	"github.com/construction_qa/pkg/utils"
)

// AdminRepository 定义了管理员数据仓库的接口
type AdminRepository interface {
	CreateAdmin(admin *models.Admin) (*models.Admin, error)
	FindByID(id string) (*models.Admin, error)
	FindByEmail(email string) (*models.Admin, error)
	GetAllAdmins(pageNumber, pageSize int) ([]models.Admin, int64, error)
	UpdateAdmin(id string, updates map[string]interface{}) (*models.Admin, error)
	DeleteAdmin(id string) error
}

// gormAdminRepository 是 AdminRepository 的 GORM 实现
type gormAdminRepository struct {
	db *gorm.DB
}

// NewGormAdminRepository 创建一个新的 gormAdminRepository 实例
func NewGormAdminRepository(db *gorm.DB) AdminRepository {
	return &gormAdminRepository{db: db}
}

// CreateAdmin 在数据库中创建一条管理员记录，邮箱唯一
func (r *gormAdminRepository) CreateAdmin(admin *models.Admin) (*models.Admin, error) {
	var existing models.Admin
	if err := r.db.Where("email = ?", admin.Email).First(&existing).Error; err == nil {
		return nil, ErrAdminEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := r.db.Create(admin).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique constraint") {
			return nil, ErrAdminEmailExists
		}
		return nil, err
	}
	return admin, nil
}

// FindByID 根据主键查询管理员
func (r *gormAdminRepository) FindByID(id string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.First(&admin, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// FindByEmail 根据邮箱查询管理员（登录入口）
func (r *gormAdminRepository) FindByEmail(email string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.Where("email = ?", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// GetAllAdmins 分页查询管理员列表
func (r *gormAdminRepository) GetAllAdmins(pageNumber, pageSize int) ([]models.Admin, int64, error) {
	var totalCount int64
	if err := r.db.Model(&models.Admin{}).Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	var admins []models.Admin
	offset := utils.PaginationOffset(pageNumber, pageSize)
	if err := r.db.Order("created_at desc").Limit(pageSize).Offset(offset).Find(&admins).Error; err != nil {
		return nil, 0, err
	}
	return admins, totalCount, nil
}

// UpdateAdmin 更新管理员字段
func (r *gormAdminRepository) UpdateAdmin(id string, updates map[string]interface{}) (*models.Admin, error) {
	result := r.db.Model(&models.Admin{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}
	return r.FindByID(id)
}

// DeleteAdmin 物理删除管理员
func (r *gormAdminRepository) DeleteAdmin(id string) error {
	result := r.db.Delete(&models.Admin{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/construction_qa/internal/models"
	"github.com/construction_qa/pkg/utils"
)

// UserRepository 定义了用户数据仓库的接口
type UserRepository interface {
	CreateUser(user *models.User) (*models.User, error)
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	GetAllUsers(pageNumber, pageSize int) ([]models.User, int64, error)
	UpdateUser(id string, updates map[string]interface{}) (*models.User, error)
	DeleteUser(id string) error
}

// gormUserRepository 是 UserRepository 的 GORM 实现
type gormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository 创建一个新的 gormUserRepository 实例
func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

// CreateUser 在数据库中创建一条用户记录，邮箱唯一
func (r *gormUserRepository) CreateUser(user *models.User) (*models.User, error) {
	var existing models.User
	if err := r.db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return nil, ErrUserEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := r.db.Create(user).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique constraint") {
			return nil, ErrUserEmailExists
		}
		return nil, err
	}
	return user, nil
}

// FindByID 根据主键查询用户
func (r *gormUserRepository) FindByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmail 根据邮箱查询用户（登录入口）
func (r *gormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetAllUsers 分页查询用户列表
func (r *gormUserRepository) GetAllUsers(pageNumber, pageSize int) ([]models.User, int64, error) {
	var totalCount int64
	if err := r.db.Model(&models.User{}).Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	offset := utils.PaginationOffset(pageNumber, pageSize)
	if err := r.db.Order("created_at desc").Limit(pageSize).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, totalCount, nil
}

// UpdateUser 更新用户字段
func (r *gormUserRepository) UpdateUser(id string, updates map[string]interface{}) (*models.User, error) {
	result := r.db.Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}
	return r.FindByID(id)
}

// DeleteUser 物理删除用户
func (r *gormUserRepository) DeleteUser(id string) error {
	result := r.db.Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

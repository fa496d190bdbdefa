package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/construction_qa/internal/models"
)

// TokenRepository 定义了令牌数据仓库的接口，持久化刷新令牌
type TokenRepository interface {
	SaveToken(token *models.Token) (*models.Token, error)
	FindByToken(tokenString string, tokenType string) (*models.Token, error)
	BlacklistToken(tokenString string) error
	BlacklistAllForAccount(accountID string) error
	// DeleteExpired 清理已过期令牌，启动时或定期调用
	DeleteExpired() (int64, error)
}

// gormTokenRepository 是 TokenRepository 的 GORM 实现
type gormTokenRepository struct {
	db *gorm.DB
}

// NewGormTokenRepository 创建一个新的 gormTokenRepository 实例
func NewGormTokenRepository(db *gorm.DB) TokenRepository {
	return &gormTokenRepository{db: db}
}

// SaveToken 持久化一条令牌记录
func (r *gormTokenRepository) SaveToken(token *models.Token) (*models.Token, error) {
	if err := r.db.Create(token).Error; err != nil {
		return nil, err
	}
	return token, nil
}

// FindByToken 根据令牌内容与类型查询未拉黑的记录
func (r *gormTokenRepository) FindByToken(tokenString string, tokenType string) (*models.Token, error) {
	var token models.Token
	err := r.db.Where("token = ? AND type = ? AND blacklisted = ?", tokenString, tokenType, false).
		First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &token, nil
}

// BlacklistToken 拉黑指定令牌（登出）
func (r *gormTokenRepository) BlacklistToken(tokenString string) error {
	result := r.db.Model(&models.Token{}).
		Where("token = ?", tokenString).
		Update("blacklisted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// BlacklistAllForAccount 拉黑账号名下全部令牌（改密/禁用场景）
func (r *gormTokenRepository) BlacklistAllForAccount(accountID string) error {
	return r.db.Model(&models.Token{}).
		Where("account_id = ?", accountID).
		Update("blacklisted", true).Error
}

// DeleteExpired 删除已过期令牌
func (r *gormTokenRepository) DeleteExpired() (int64, error) {
	result := r.db.Where("expires < ?", time.Now()).Delete(&models.Token{})
	return result.RowsAffected, result.Error
}

package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/construction_qa/internal/models"
	"github.com/construction_qa/pkg/utils"
)

// TeamRepository 定义了团队数据仓库的接口
type TeamRepository interface {
	CreateTeam(team *models.Team) (*models.Team, error)
	FindByID(id string) (*models.Team, error)
	GetAllTeams(pageNumber, pageSize int) ([]models.Team, int64, error)
	UpdateTeam(id string, updates map[string]interface{}) (*models.Team, error)
	DeleteTeam(id string) error
}

// gormTeamRepository 是 TeamRepository 的 GORM 实现
type gormTeamRepository struct {
	db *gorm.DB
}

// NewGormTeamRepository 创建一个新的 gormTeamRepository 实例
func NewGormTeamRepository(db *gorm.DB) TeamRepository {
	return &gormTeamRepository{db: db}
}

// CreateTeam 在数据库中创建一条团队记录，团队名称唯一
func (r *gormTeamRepository) CreateTeam(team *models.Team) (*models.Team, error) {
	var existing models.Team
	if err := r.db.Where("team_name = ?", team.TeamName).First(&existing).Error; err == nil {
		return nil, ErrTeamNameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := r.db.Create(team).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique constraint") {
			return nil, ErrTeamNameExists
		}
		return nil, err
	}
	return team, nil
}

// FindByID 根据主键查询团队
func (r *gormTeamRepository) FindByID(id string) (*models.Team, error) {
	var team models.Team
	if err := r.db.First(&team, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &team, nil
}

// GetAllTeams 分页查询团队列表
func (r *gormTeamRepository) GetAllTeams(pageNumber, pageSize int) ([]models.Team, int64, error) {
	var totalCount int64
	if err := r.db.Model(&models.Team{}).Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	var teams []models.Team
	offset := utils.PaginationOffset(pageNumber, pageSize)
	if err := r.db.Order("team_name asc").Limit(pageSize).Offset(offset).Find(&teams).Error; err != nil {
		return nil, 0, err
	}
	return teams, totalCount, nil
}

// UpdateTeam 更新团队字段
func (r *gormTeamRepository) UpdateTeam(id string, updates map[string]interface{}) (*models.Team, error) {
	result := r.db.Model(&models.Team{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}
	return r.FindByID(id)
}

// DeleteTeam 物理删除团队，成员的 team_id 由外键置空
func (r *gormTeamRepository) DeleteTeam(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var team models.Team
		if err := tx.First(&team, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}

		if err := tx.Model(&models.User{}).
			Where("team_id = ?", id).
			Update("team_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&team).Error
	})
}

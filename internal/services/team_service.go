package services

import (
	"errors"
	"strings"
	"time"

	"github.com/construction_qa/internal/models"
	"github.com/construction_qa/internal/repositories"
	"github.com/construction_qa/pkg/utils"
)

var (
	ErrTeamNotFound     = errors.New("团队未找到")
	ErrTeamNameExists   = errors.New("团队名称已存在")
	ErrTeamNameRequired = errors.New("团队名称不能为空")
	ErrInvalidTeamRole  = errors.New("非法的团队角色")
)

// CreateTeamInput 定义创建团队所需的字段
type CreateTeamInput struct {
	TeamName      string
	TeamInitials  *string
	TeamType      *string
	TeamAddress   *string
	TeamTelephone *string
	TeamEmail     *string
	TeamRole      string
}

// UpdateTeamInput 定义更新团队可修改的字段，nil 表示不修改
type UpdateTeamInput struct {
	TeamName      *string
	TeamInitials  *string
	TeamType      *string
	TeamAddress   *string
	TeamTelephone *string
	TeamEmail     *string
	TeamRole      *string
	Active        *bool
}

// TeamService 定义了团队服务的接口
type TeamService interface {
	CreateTeam(caller Caller, input CreateTeamInput) (*models.Team, error)
	GetTeamByID(id string) (*models.Team, error)
	GetAllTeams(pageNumber, pageSize int) ([]models.Team, int64, bool, error)
	UpdateTeam(caller Caller, id string, input UpdateTeamInput) (*models.Team, error)
	// DeleteTeam 删除团队，成员的 team_id 置空，成员保留
	DeleteTeam(id string) error
}

// teamService 是 TeamService 的实现
type teamService struct {
	repo repositories.TeamRepository
}

// NewTeamService 创建一个新的 teamService 实例
func NewTeamService(repo repositories.TeamRepository) TeamService {
	return &teamService{repo: repo}
}

// CreateTeam 创建团队，团队名称全局唯一
func (s *teamService) CreateTeam(caller Caller, input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.TeamName)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	role := models.RoleContractor
	if input.TeamRole != "" {
		if !models.IsValidRole(input.TeamRole) {
			return nil, ErrInvalidTeamRole
		}
		role = models.UserRole(input.TeamRole)
	}

	team := &models.Team{
		DocumentStatus: true,
		TeamName:       name,
		TeamInitials:   input.TeamInitials,
		TeamType:       input.TeamType,
		TeamAddress:    input.TeamAddress,
		TeamTelephone:  input.TeamTelephone,
		TeamEmail:      input.TeamEmail,
		TeamRole:       role,
		Active:         true,
		CreatedUser:    caller.ID,
		UpdatedUser:    caller.ID,
		UpdatedAt:      time.Now(),
	}

	created, err := s.repo.CreateTeam(team)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNameExists) {
			return nil, ErrTeamNameExists
		}
		return nil, err
	}
	return created, nil
}

// GetTeamByID 根据ID获取团队
func (s *teamService) GetTeamByID(id string) (*models.Team, error) {
	team, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

// GetAllTeams 分页获取团队列表
func (s *teamService) GetAllTeams(pageNumber, pageSize int) ([]models.Team, int64, bool, error) {
	teams, totalCount, err := s.repo.GetAllTeams(pageNumber, pageSize)
	if err != nil {
		return nil, 0, false, err
	}
	hasNext := utils.HasNextPage(totalCount, pageNumber, pageSize)
	return teams, totalCount, hasNext, nil
}

// UpdateTeam 更新团队字段
func (s *teamService) UpdateTeam(caller Caller, id string, input UpdateTeamInput) (*models.Team, error) {
	updates := map[string]interface{}{
		"updated_user": caller.ID,
		"updated_at":   time.Now(),
	}
	if input.TeamName != nil {
		name := strings.TrimSpace(*input.TeamName)
		if name == "" {
			return nil, ErrTeamNameRequired
		}
		updates["team_name"] = name
	}
	if input.TeamRole != nil {
		if !models.IsValidRole(*input.TeamRole) {
			return nil, ErrInvalidTeamRole
		}
		updates["team_role"] = *input.TeamRole
	}
	if input.TeamInitials != nil {
		updates["team_initials"] = *input.TeamInitials
	}
	if input.TeamType != nil {
		updates["team_type"] = *input.TeamType
	}
	if input.TeamAddress != nil {
		updates["team_address"] = *input.TeamAddress
	}
	if input.TeamTelephone != nil {
		updates["team_telephone"] = *input.TeamTelephone
	}
	if input.TeamEmail != nil {
		updates["team_email"] = *input.TeamEmail
	}
	if input.Active != nil {
		updates["active"] = *input.Active
	}

	updated, err := s.repo.UpdateTeam(id, updates)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		if errors.Is(err, repositories.ErrTeamNameExists) {
			return nil, ErrTeamNameExists
		}
		return nil, err
	}
	return updated, nil
}

// DeleteTeam 删除团队
func (s *teamService) DeleteTeam(id string) error {
	if err := s.repo.DeleteTeam(id); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrTeamNotFound
		}
		return err
	}
	return nil
}

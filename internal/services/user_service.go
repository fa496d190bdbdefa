package services

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/construction_qa/internal/models"
	"github.com/construction_qa/internal/repositories"
	"github.com/construction_qa/pkg/utils"
)

var (
	ErrUserNotFound     = errors.New("用户未找到")
	ErrUserEmailExists  = errors.New("用户邮箱已存在")
	ErrInvalidUserRole  = errors.New("非法的用户角色")
	ErrPasswordTooShort = errors.New("密码长度不能少于8位")
	ErrFullNameRequired = errors.New("用户姓名不能为空")
)

const minPasswordLength = 8

// CreateUserInput 定义创建用户所需的字段
type CreateUserInput struct {
	FullName       string
	Email          string
	Password       string
	UserRole       string
	TeamID         *string
	IsProjectAdmin bool
	IsTeamAdmin    bool
}

// UpdateUserInput 定义更新用户可修改的字段，nil 表示不修改
type UpdateUserInput struct {
	FullName       *string
	Email          *string
	Password       *string
	UserRole       *string
	TeamID         *string
	IsProjectAdmin *bool
	IsTeamAdmin    *bool
}

// UserService 定义了用户服务的接口
type UserService interface {
	CreateUser(caller Caller, input CreateUserInput) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	GetAllUsers(pageNumber, pageSize int) ([]models.User, int64, bool, error)
	UpdateUser(caller Caller, id string, input UpdateUserInput) (*models.User, error)
	DeleteUser(id string) error
}

// userService 是 UserService 的实现
type userService struct {
	repo      repositories.UserRepository
	teamRepo  repositories.TeamRepository
	tokenRepo repositories.TokenRepository
}

// NewUserService 创建一个新的 userService 实例
func NewUserService(
	repo repositories.UserRepository,
	teamRepo repositories.TeamRepository,
	tokenRepo repositories.TokenRepository,
) UserService {
	return &userService{repo: repo, teamRepo: teamRepo, tokenRepo: tokenRepo}
}

// CreateUser 创建用户，邮箱全局唯一，密码以 bcrypt 哈希存储
func (s *userService) CreateUser(caller Caller, input CreateUserInput) (*models.User, error) {
	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		return nil, ErrFullNameRequired
	}
	if !utils.ValidateEmailFormat(input.Email) {
		return nil, utils.ErrInvalidEmailFormat
	}
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if !models.IsValidRole(input.UserRole) {
		return nil, ErrInvalidUserRole
	}

	// 指定了团队时团队必须存在
	if input.TeamID != nil && *input.TeamID != "" {
		if _, err := s.teamRepo.FindByID(*input.TeamID); err != nil {
			if errors.Is(err, repositories.ErrRecordNotFound) {
				return nil, ErrTeamNotFound
			}
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		DocumentStatus: models.DocumentStatusActive,
		FullName:       fullName,
		Email:          strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash:   string(hash),
		UserRole:       models.UserRole(input.UserRole),
		TeamID:         input.TeamID,
		IsProjectAdmin: input.IsProjectAdmin,
		IsTeamAdmin:    input.IsTeamAdmin,
		CreatedUser:    caller.ID,
		UpdatedUser:    caller.ID,
		UpdatedAt:      time.Now(),
	}

	created, err := s.repo.CreateUser(user)
	if err != nil {
		if errors.Is(err, repositories.ErrUserEmailExists) {
			return nil, ErrUserEmailExists
		}
		return nil, err
	}
	return created, nil
}

// GetUserByID 根据ID获取用户
func (s *userService) GetUserByID(id string) (*models.User, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetAllUsers 分页获取用户列表
func (s *userService) GetAllUsers(pageNumber, pageSize int) ([]models.User, int64, bool, error) {
	users, totalCount, err := s.repo.GetAllUsers(pageNumber, pageSize)
	if err != nil {
		return nil, 0, false, err
	}
	hasNext := utils.HasNextPage(totalCount, pageNumber, pageSize)
	return users, totalCount, hasNext, nil
}

// UpdateUser 更新用户字段。改密会拉黑该用户全部刷新令牌。
func (s *userService) UpdateUser(caller Caller, id string, input UpdateUserInput) (*models.User, error) {
	updates := map[string]interface{}{
		"updated_user": caller.ID,
		"updated_at":   time.Now(),
	}
	if input.FullName != nil {
		fullName := strings.TrimSpace(*input.FullName)
		if fullName == "" {
			return nil, ErrFullNameRequired
		}
		updates["full_name"] = fullName
	}
	if input.Email != nil {
		if !utils.ValidateEmailFormat(*input.Email) {
			return nil, utils.ErrInvalidEmailFormat
		}
		updates["email"] = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	passwordChanged := false
	if input.Password != nil {
		if len(*input.Password) < minPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password_hash"] = string(hash)
		passwordChanged = true
	}
	if input.UserRole != nil {
		if !models.IsValidRole(*input.UserRole) {
			return nil, ErrInvalidUserRole
		}
		updates["user_role"] = *input.UserRole
	}
	if input.TeamID != nil {
		if *input.TeamID != "" {
			if _, err := s.teamRepo.FindByID(*input.TeamID); err != nil {
				if errors.Is(err, repositories.ErrRecordNotFound) {
					return nil, ErrTeamNotFound
				}
				return nil, err
			}
		}
		updates["team_id"] = *input.TeamID
	}
	if input.IsProjectAdmin != nil {
		updates["is_project_admin"] = *input.IsProjectAdmin
	}
	if input.IsTeamAdmin != nil {
		updates["is_team_admin"] = *input.IsTeamAdmin
	}

	updated, err := s.repo.UpdateUser(id, updates)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		if errors.Is(err, repositories.ErrUserEmailExists) {
			return nil, ErrUserEmailExists
		}
		return nil, err
	}

	if passwordChanged {
		if err := s.tokenRepo.BlacklistAllForAccount(id); err != nil {
			return nil, err
		}
	}
	return updated, nil
}

// DeleteUser 物理删除用户，并拉黑其全部刷新令牌
func (s *userService) DeleteUser(id string) error {
	if err := s.repo.DeleteUser(id); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.tokenRepo.BlacklistAllForAccount(id)
}

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
	ErrAdminNotFound     = errors.New("管理员未找到")
	ErrAdminEmailExists  = errors.New("管理员邮箱已存在")
	ErrAdminNameRequired = errors.New("管理员姓名不能为空")
)

// CreateAdminInput 定义创建管理员所需的字段
type CreateAdminInput struct {
	AdminUserName string
	Email         string
	Password      string
}

// UpdateAdminInput 定义更新管理员可修改的字段，nil 表示不修改
type UpdateAdminInput struct {
	AdminUserName *string
	Email         *string
	Password      *string
}

// AdminService 定义了管理员服务的接口
type AdminService interface {
	CreateAdmin(caller Caller, input CreateAdminInput) (*models.Admin, error)
	GetAdminByID(id string) (*models.Admin, error)
	GetAllAdmins(pageNumber, pageSize int) ([]models.Admin, int64, bool, error)
	UpdateAdmin(caller Caller, id string, input UpdateAdminInput) (*models.Admin, error)
	DeleteAdmin(id string) error
}

// adminService 是 AdminService 的实现
type adminService struct {
	repo      repositories.AdminRepository
	tokenRepo repositories.TokenRepository
}

// NewAdminService 创建一个新的 adminService 实例
func NewAdminService(repo repositories.AdminRepository, tokenRepo repositories.TokenRepository) AdminService {
	return &adminService{repo: repo, tokenRepo: tokenRepo}
}

// CreateAdmin 创建管理员账号，邮箱全局唯一
func (s *adminService) CreateAdmin(caller Caller, input CreateAdminInput) (*models.Admin, error) {
	name := strings.TrimSpace(input.AdminUserName)
	if name == "" {
		return nil, ErrAdminNameRequired
	}
	if !utils.ValidateEmailFormat(input.Email) {
		return nil, utils.ErrInvalidEmailFormat
	}
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &models.Admin{
		DocumentStatus: true,
		AdminUserName:  name,
		AdminUserType:  string(models.RoleSuperAdmin),
		Email:          strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash:   string(hash),
		CreatedUser:    caller.ID,
		UpdatedUser:    caller.ID,
		UpdatedAt:      time.Now(),
	}

	created, err := s.repo.CreateAdmin(admin)
	if err != nil {
		if errors.Is(err, repositories.ErrAdminEmailExists) {
			return nil, ErrAdminEmailExists
		}
		return nil, err
	}
	return created, nil
}

// GetAdminByID 根据ID获取管理员
func (s *adminService) GetAdminByID(id string) (*models.Admin, error) {
	admin, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return admin, nil
}

// GetAllAdmins 分页获取管理员列表
func (s *adminService) GetAllAdmins(pageNumber, pageSize int) ([]models.Admin, int64, bool, error) {
	admins, totalCount, err := s.repo.GetAllAdmins(pageNumber, pageSize)
	if err != nil {
		return nil, 0, false, err
	}
	hasNext := utils.HasNextPage(totalCount, pageNumber, pageSize)
	return admins, totalCount, hasNext, nil
}

// UpdateAdmin 更新管理员字段。改密会拉黑该账号全部刷新令牌。
func (s *adminService) UpdateAdmin(caller Caller, id string, input UpdateAdminInput) (*models.Admin, error) {
	updates := map[string]interface{}{
		"updated_user": caller.ID,
		"updated_at":   time.Now(),
	}
	if input.AdminUserName != nil {
		name := strings.TrimSpace(*input.AdminUserName)
		if name == "" {
			return nil, ErrAdminNameRequired
		}
		updates["admin_user_name"] = name
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

	updated, err := s.repo.UpdateAdmin(id, updates)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		if errors.Is(err, repositories.ErrAdminEmailExists) {
			return nil, ErrAdminEmailExists
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

// DeleteAdmin 物理删除管理员，并拉黑其全部刷新令牌
func (s *adminService) DeleteAdmin(id string) error {
	if err := s.repo.DeleteAdmin(id); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrAdminNotFound
		}
		return err
	}
	return s.tokenRepo.BlacklistAllForAccount(id)
}

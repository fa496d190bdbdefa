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
	ErrProfileNotFound    = errors.New("个人资料未找到")
	ErrProfileEmailExists = errors.New("邮箱已被其他账号使用")
	// ErrProfileForbidden 非管理员访问管理员专属的资料接口
	ErrProfileForbidden = errors.New("仅管理员可查看其他用户的资料")
)

// Profile 是调用者本人的账号视图，普通用户与管理员共用同一结构
type Profile struct {
	ID       string          `json:"id"`
	FullName string          `json:"fullName"`
	Email    string          `json:"email"`
	Role     models.UserRole `json:"role"`
	IsAdmin  bool            `json:"isAdmin"`

	TeamID         *string `json:"teamId,omitempty"`
	IsProjectAdmin bool    `json:"isProjectAdmin"`
	IsTeamAdmin    bool    `json:"isTeamAdmin"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpdateProfileInput 定义自助更新可修改的字段，nil 表示不修改。
// 角色、团队与权限位不在此修改，走管理员的用户管理接口。
type UpdateProfileInput struct {
	FullName *string
	Email    *string
}

// ProfileService 定义了个人资料服务的接口
type ProfileService interface {
	// GetProfile 获取调用者本人的资料
	GetProfile(caller Caller) (*Profile, error)
	// UpdateProfile 更新调用者本人的姓名/邮箱，邮箱全局唯一
	UpdateProfile(caller Caller, input UpdateProfileInput) (*Profile, error)
	// GetAllProfiles 管理员分页浏览全部用户资料
	GetAllProfiles(caller Caller, pageNumber, pageSize int) ([]models.User, int64, bool, error)
	// GetProfileDetails 管理员查看指定用户的资料详情
	GetProfileDetails(caller Caller, userID string) (*models.User, error)
}

// profileService 是 ProfileService 的实现
type profileService struct {
	userRepo  repositories.UserRepository
	adminRepo repositories.AdminRepository
}

// NewProfileService 创建一个新的 profileService 实例
func NewProfileService(userRepo repositories.UserRepository, adminRepo repositories.AdminRepository) ProfileService {
	return &profileService{userRepo: userRepo, adminRepo: adminRepo}
}

func profileFromUser(user *models.User) *Profile {
	return &Profile{
		ID:             user.ID,
		FullName:       user.FullName,
		Email:          user.Email,
		Role:           user.UserRole,
		TeamID:         user.TeamID,
		IsProjectAdmin: user.IsProjectAdmin,
		IsTeamAdmin:    user.IsTeamAdmin,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

func profileFromAdmin(admin *models.Admin) *Profile {
	return &Profile{
		ID:        admin.ID,
		FullName:  admin.AdminUserName,
		Email:     admin.Email,
		Role:      models.RoleSuperAdmin,
		IsAdmin:   true,
		CreatedAt: admin.CreatedAt,
		UpdatedAt: admin.UpdatedAt,
	}
}

// GetProfile 获取调用者本人的资料。
// 调用者ID先在用户表解析，不存在时回落到管理员表。
func (s *profileService) GetProfile(caller Caller) (*Profile, error) {
	user, err := s.userRepo.FindByID(caller.ID)
	if err == nil {
		return profileFromUser(user), nil
	}
	if !errors.Is(err, repositories.ErrRecordNotFound) {
		return nil, err
	}

	admin, err := s.adminRepo.FindByID(caller.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profileFromAdmin(admin), nil
}

// UpdateProfile 更新调用者本人的资料
func (s *profileService) UpdateProfile(caller Caller, input UpdateProfileInput) (*Profile, error) {
	updates := map[string]interface{}{
		"updated_user": caller.ID,
		"updated_at":   time.Now(),
	}

	fullName := ""
	if input.FullName != nil {
		fullName = strings.TrimSpace(*input.FullName)
		if fullName == "" {
			return nil, ErrFullNameRequired
		}
	}

	email := ""
	if input.Email != nil {
		if !utils.ValidateEmailFormat(*input.Email) {
			return nil, utils.ErrInvalidEmailFormat
		}
		email = strings.ToLower(strings.TrimSpace(*input.Email))
	}

	// 账号可能在用户表或管理员表，先确定归属再更新
	if _, err := s.userRepo.FindByID(caller.ID); err == nil {
		if fullName != "" {
			updates["full_name"] = fullName
		}
		if email != "" {
			if err := s.checkUserEmailAvailable(email, caller.ID); err != nil {
				return nil, err
			}
			updates["email"] = email
		}
		updated, err := s.userRepo.UpdateUser(caller.ID, updates)
		if err != nil {
			if errors.Is(err, repositories.ErrUserEmailExists) {
				return nil, ErrProfileEmailExists
			}
			return nil, err
		}
		return profileFromUser(updated), nil
	} else if !errors.Is(err, repositories.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.adminRepo.FindByID(caller.ID); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	if fullName != "" {
		updates["admin_user_name"] = fullName
	}
	if email != "" {
		if err := s.checkAdminEmailAvailable(email, caller.ID); err != nil {
			return nil, err
		}
		updates["email"] = email
	}
	updated, err := s.adminRepo.UpdateAdmin(caller.ID, updates)
	if err != nil {
		if errors.Is(err, repositories.ErrAdminEmailExists) {
			return nil, ErrProfileEmailExists
		}
		return nil, err
	}
	return profileFromAdmin(updated), nil
}

// checkUserEmailAvailable 校验邮箱未被其他用户占用
func (s *profileService) checkUserEmailAvailable(email, selfID string) error {
	existing, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return ErrProfileEmailExists
	}
	return nil
}

// checkAdminEmailAvailable 校验邮箱未被其他管理员占用
func (s *profileService) checkAdminEmailAvailable(email, selfID string) error {
	existing, err := s.adminRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return ErrProfileEmailExists
	}
	return nil
}

// GetAllProfiles 管理员分页浏览全部用户资料
func (s *profileService) GetAllProfiles(caller Caller, pageNumber, pageSize int) ([]models.User, int64, bool, error) {
	if caller.Role != models.RoleSuperAdmin {
		return nil, 0, false, ErrProfileForbidden
	}
	users, totalCount, err := s.userRepo.GetAllUsers(pageNumber, pageSize)
	if err != nil {
		return nil, 0, false, err
	}
	hasNext := utils.HasNextPage(totalCount, pageNumber, pageSize)
	return users, totalCount, hasNext, nil
}

// GetProfileDetails 管理员查看指定用户的资料详情
func (s *profileService) GetProfileDetails(caller Caller, userID string) (*models.User, error) {
	if caller.Role != models.RoleSuperAdmin {
		return nil, ErrProfileForbidden
	}
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return user, nil
}

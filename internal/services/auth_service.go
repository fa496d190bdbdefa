package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/construction_qa/configs"
	"github.com/construction_qa/internal/auth"
	"github.com/construction_qa/internal/models"
	"github.com/construction_qa/internal/repositories"
)

var (
	ErrInvalidCredentials  = errors.New("无效的邮箱或密码")
	ErrInvalidRefreshToken = errors.New("刷新令牌无效或已失效")
)

// TokenPair 一次签发的访问令牌与刷新令牌
type TokenPair struct {
	AccessToken   string    `json:"accessToken"`
	AccessExpires time.Time `json:"accessExpires"`
	RefreshToken  string    `json:"refreshToken"`
}

// AuthAccount 登录成功后返回的账号信息
type AuthAccount struct {
	ID       string          `json:"id"`
	FullName string          `json:"fullName"`
	Email    string          `json:"email"`
	Role     models.UserRole `json:"role"`
	IsAdmin  bool            `json:"isAdmin"`
	TeamID   *string         `json:"teamId,omitempty"`
}

// AuthService 定义了认证服务的接口。
// 管理员与普通用户共用同一登录入口，管理员优先匹配。
type AuthService interface {
	Login(email, password string) (*AuthAccount, *TokenPair, error)
	// Refresh 校验刷新令牌并轮换：旧令牌拉黑，签发新令牌对。
	Refresh(refreshToken string) (*TokenPair, error)
	// Logout 将访问令牌JTI加入拒绝名单，并拉黑账号持有的刷新令牌。
	Logout(jti string, expiresAt time.Time, accountID string) error
}

// authService 是 AuthService 的实现
type authService struct {
	userRepo  repositories.UserRepository
	adminRepo repositories.AdminRepository
	tokenRepo repositories.TokenRepository
}

// NewAuthService 创建一个新的 authService 实例
func NewAuthService(
	userRepo repositories.UserRepository,
	adminRepo repositories.AdminRepository,
	tokenRepo repositories.TokenRepository,
) AuthService {
	return &authService{userRepo: userRepo, adminRepo: adminRepo, tokenRepo: tokenRepo}
}

// Login 验证邮箱密码并签发令牌对
func (s *authService) Login(email, password string) (*AuthAccount, *TokenPair, error) {
	account, err := s.resolveAccount(email)
	if err != nil {
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.passwordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokenPair(account.AuthAccount)
	if err != nil {
		return nil, nil, err
	}
	return &account.AuthAccount, pair, nil
}

// resolvedAccount 附带密码哈希的账号信息，不出服务层
type resolvedAccount struct {
	AuthAccount
	passwordHash string
}

// resolveAccount 先查管理员表再查用户表，两边都未命中返回统一的凭证错误
func (s *authService) resolveAccount(email string) (*resolvedAccount, error) {
	admin, err := s.adminRepo.FindByEmail(email)
	if err == nil {
		return &resolvedAccount{
			AuthAccount: AuthAccount{
				ID:       admin.ID,
				FullName: admin.AdminUserName,
				Email:    admin.Email,
				Role:     models.RoleSuperAdmin,
				IsAdmin:  true,
			},
			passwordHash: admin.PasswordHash,
		}, nil
	}
	if !errors.Is(err, repositories.ErrRecordNotFound) {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return &resolvedAccount{
		AuthAccount: AuthAccount{
			ID:       user.ID,
			FullName: user.FullName,
			Email:    user.Email,
			Role:     user.UserRole,
			IsAdmin:  user.UserRole == models.RoleSuperAdmin,
			TeamID:   user.TeamID,
		},
		passwordHash: user.PasswordHash,
	}, nil
}

// issueTokenPair 签发访问令牌与刷新令牌，刷新令牌落库
func (s *authService) issueTokenPair(account AuthAccount) (*TokenPair, error) {
	accessExpires := time.Now().Add(time.Duration(configs.AppConfig.AccessExpireMinutes) * time.Minute)
	accessToken, err := signToken(account, accessExpires, models.TokenTypeAccess)
	if err != nil {
		return nil, err
	}

	refreshExpires := time.Now().Add(time.Duration(configs.AppConfig.RefreshExpireDays) * 24 * time.Hour)
	refreshToken, err := signToken(account, refreshExpires, models.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	if _, err := s.tokenRepo.SaveToken(&models.Token{
		Token:     refreshToken,
		AccountID: account.ID,
		Type:      models.TokenTypeRefresh,
		Expires:   refreshExpires,
	}); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:   accessToken,
		AccessExpires: accessExpires,
		RefreshToken:  refreshToken,
	}, nil
}

// signToken 生成带角色声明的 HS256 JWT
func signToken(account AuthAccount, expiresAt time.Time, tokenType string) (string, error) {
	claims := &auth.Claims{
		UserID: account.ID,
		Email:  account.Email,
		Role:   string(account.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   account.Email,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "construction_qa",
			Audience:  jwt.ClaimStrings{tokenType},
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.AppConfig.JWTSecret))
}

// Refresh 校验并轮换刷新令牌
func (s *authService) Refresh(refreshToken string) (*TokenPair, error) {
	// 先查库：令牌必须存在且未拉黑
	stored, err := s.tokenRepo.FindByToken(refreshToken, models.TokenTypeRefresh)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if time.Now().After(stored.Expires) {
		return nil, ErrInvalidRefreshToken
	}

	// 再验签
	claims := &auth.Claims{}
	parsed, err := jwt.ParseWithClaims(refreshToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(configs.AppConfig.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidRefreshToken
	}

	account, err := s.accountByID(claims.UserID)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	// 轮换：旧刷新令牌立即作废
	if err := s.tokenRepo.BlacklistToken(refreshToken); err != nil && !errors.Is(err, repositories.ErrRecordNotFound) {
		return nil, err
	}
	return s.issueTokenPair(*account)
}

// accountByID 刷新场景下按ID重建账号信息
func (s *authService) accountByID(id string) (*AuthAccount, error) {
	admin, err := s.adminRepo.FindByID(id)
	if err == nil {
		return &AuthAccount{
			ID:       admin.ID,
			FullName: admin.AdminUserName,
			Email:    admin.Email,
			Role:     models.RoleSuperAdmin,
			IsAdmin:  true,
		}, nil
	}
	if !errors.Is(err, repositories.ErrRecordNotFound) {
		return nil, err
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return &AuthAccount{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		Role:     user.UserRole,
		IsAdmin:  user.UserRole == models.RoleSuperAdmin,
		TeamID:   user.TeamID,
	}, nil
}

// Logout 作废当前访问令牌与账号名下的刷新令牌
func (s *authService) Logout(jti string, expiresAt time.Time, accountID string) error {
	auth.AddToDenylist(jti, expiresAt)
	return s.tokenRepo.BlacklistAllForAccount(accountID)
}

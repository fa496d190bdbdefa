package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/construction_qa/internal/auth"
	"github.com/construction_qa/internal/services"
	"github.com/construction_qa/pkg/utils"
)

// AuthHandler 封装了认证相关的 HTTP 处理逻辑
type AuthHandler struct {
	service services.AuthService
}

// NewAuthHandler 创建一个新的 AuthHandler 实例
func NewAuthHandler(service services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// LoginRequest 登录请求体
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应体
type LoginResponse struct {
	AccessToken  string               `json:"accessToken"`
	RefreshToken string               `json:"refreshToken"`
	ExpiresAt    time.Time            `json:"expiresAt"`
	User         services.AuthAccount `json:"user"`
}

// RefreshRequest 刷新令牌请求体
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// Login godoc
// @Summary 登录
// @Description 验证邮箱密码并返回访问令牌与刷新令牌。管理员与普通用户共用此入口。
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "登录凭证"
// @Success 200 {object} utils.SuccessResponse{data=LoginResponse} "登录成功"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 401 {object} utils.APIErrorResponse "无效的邮箱或密码"
// @Failure 500 {object} utils.APIErrorResponse "无法生成Token"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	account, pair, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.RespondUnauthorizedError(c, services.ErrInvalidCredentials.Error())
			return
		}
		utils.RespondInternalServerError(c, "无法生成Token", err.Error())
		return
	}

	utils.RespondSuccess(c, http.StatusOK, LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.AccessExpires,
		User:         *account,
	}, "登录成功")
}

// Refresh godoc
// @Summary 刷新令牌
// @Description 用有效的刷新令牌换取新的令牌对，旧刷新令牌立即作废
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body RefreshRequest true "刷新令牌"
// @Success 200 {object} utils.SuccessResponse{data=services.TokenPair} "新令牌对"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 401 {object} utils.APIErrorResponse "刷新令牌无效或已失效"
// @Router /auth/refresh-token [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	pair, err := h.service.Refresh(req.RefreshToken)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRefreshToken) {
			utils.RespondUnauthorizedError(c, services.ErrInvalidRefreshToken.Error())
			return
		}
		utils.RespondInternalServerError(c, "刷新令牌失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, pair, "令牌刷新成功")
}

// Logout godoc
// @Summary 登出
// @Description 作废当前访问令牌与账号名下的刷新令牌
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse "成功登出"
// @Failure 400 {object} utils.APIErrorResponse "错误的请求 (例如，上下文中缺少JTI或EXP)"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	principal, hasPrincipal := auth.CurrentPrincipal(c)
	jtiVal, jtiExists := c.Get("jti")
	expVal, expExists := c.Get("exp")

	if !hasPrincipal || !jtiExists || !expExists {
		utils.RespondAPIError(c, http.StatusBadRequest, "Logout context error: JTI or EXP not found in context", nil)
		return
	}

	jti, okJTI := jtiVal.(string)
	exp, okEXP := expVal.(time.Time)
	if !okJTI || jti == "" {
		utils.RespondAPIError(c, http.StatusBadRequest, "Logout context error: Invalid JTI", nil)
		return
	}
	if !okEXP {
		utils.RespondAPIError(c, http.StatusBadRequest, "Logout context error: Invalid EXP", nil)
		return
	}

	if err := h.service.Logout(jti, exp, principal.ID); err != nil {
		utils.RespondInternalServerError(c, "登出失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, nil, "成功登出")
}

package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/construction_qa/internal/auth"
	"github.com/construction_qa/internal/handlers"
)

// SetupAuthRoutes 设置认证相关路由
func SetupAuthRoutes(apiV1 *gin.RouterGroup, h *handlers.AuthHandler) {
	// 公共认证路由组 (登录/刷新令牌)
	publicAuthGroup := apiV1.Group("/auth")
	{
		// POST /api/v1/auth/login
		publicAuthGroup.POST("/login", h.Login)
		// POST /api/v1/auth/refresh-token
		publicAuthGroup.POST("/refresh-token", h.Refresh)
	}

	// 受保护的认证路由组 (登出)
	protectedAuthGroup := apiV1.Group("/auth")
	protectedAuthGroup.Use(auth.JWTMiddleware())
	{
		// POST /api/v1/auth/logout
		protectedAuthGroup.POST("/logout", h.Logout)
	}
}

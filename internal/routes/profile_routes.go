package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/construction_qa/internal/auth"
	"github.com/construction_qa/internal/handlers"
)

// SetupProfileRoutes 设置个人资料相关路由。
// 只要求登录，不设模块门禁：本人资料对任何角色可见，
// 管理员专属的两个接口在服务层校验角色。
func SetupProfileRoutes(apiV1 *gin.RouterGroup, h *handlers.ProfileHandler) {
	profile := apiV1.Group("/profile")
	profile.Use(auth.JWTMiddleware())
	{
		profile.GET("/get-profile", h.GetProfile)
		profile.PUT("/update-profile", h.UpdateProfile)
		profile.GET("/get-all-profiles", h.GetAllProfiles)
		profile.GET("/get-profile-details/:userId", h.GetProfileDetails)
	}
}

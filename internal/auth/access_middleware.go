package auth

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/construction_qa/internal/access"
	"github.com/construction_qa/internal/models"
)

// RequireModule 返回模块级授权网关中间件：
// 调用者角色不在模块允许集合内时拒绝请求。
// 访问表由外部注入，本中间件只做只读查询。
func RequireModule(table *access.Table, module models.Module) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			// 正常情况下 JWTMiddleware 已经拦截了未认证请求，这里兜底
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization Error: missing authenticated principal"})
			return
		}

		if !table.CanAccessModule(principal.Role, module) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": fmt.Sprintf("Access Denied: %s cannot access %s module", principal.Role, module),
			})
			return
		}

		c.Next()
	}
}

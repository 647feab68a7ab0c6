package middleware

import (
	"WeTube/internal/authz"
	"WeTube/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireCapability 放在RequireAuth后面，没有对应能力返回403
func RequireCapability(authorizer *authz.Authorizer, capability authz.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "用户未认证"})
			return
		}
		if !authorizer.Authorize(user, capability).Allowed() {
			logger.Log.WithField("user_id", user.ID).WithField("capability", capability).Warn("权限不足")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "需要管理员权限"})
			return
		}
		c.Next()
	}
}

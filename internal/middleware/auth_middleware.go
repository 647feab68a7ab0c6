package middleware

import (
	"WeTube/internal/auth"
	"WeTube/internal/model"
	"WeTube/pkg/logger"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	ctxKeyUser     = "currentUser"
	ctxKeyIdentity = "identity"
)

// RequireAuth 必须登录：1、取Authorization头 2、校验"Bearer [token]" 3、校验签名和过期 4、查出用户放进context
func RequireAuth(resolver *auth.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := resolve(c, resolver)
		if !ok {
			return
		}
		switch id.State {
		case auth.Authenticated:
			c.Set(ctxKeyIdentity, id)
			c.Set(ctxKeyUser, id.User)
			// 放行，继续处理请求
			c.Next()
			return
		case auth.Anonymous:
			// 立刻Abort，阻止后续的任何处理器被执行
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrMissingToken.Error()})
			return
		}

		message := auth.ErrInvalidToken.Error()
		switch {
		case errors.Is(id.Reason, auth.ErrMalformedToken):
			message = auth.ErrMalformedToken.Error()
		case errors.Is(id.Reason, auth.ErrUnknownUser):
			message = auth.ErrUnknownUser.Error()
		}
		logger.Log.WithField("ip", c.ClientIP()).WithError(id.Reason).Info("拒绝了无效的授权令牌")
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
	}
}

// OptionalAuth 可选登录：令牌无效不拒绝，按匿名处理
func OptionalAuth(resolver *auth.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := resolve(c, resolver)
		if !ok {
			return
		}
		if id.State == auth.Ignored {
			logger.Log.WithField("ip", c.ClientIP()).WithError(id.Reason).Debug("忽略了无效的授权令牌，按匿名处理")
		}
		c.Set(ctxKeyIdentity, id)
		if id.IsAuthenticated() {
			c.Set(ctxKeyUser, id.User)
		}
		c.Next()
	}
}

// resolve 查用户时数据库出错是500，不能当成令牌无效
func resolve(c *gin.Context, resolver *auth.Resolver) (auth.Identity, bool) {
	id, err := resolver.Resolve(c.GetHeader("Authorization"))
	if err != nil {
		logger.Log.WithField("ip", c.ClientIP()).WithError(err).Error("解析登录用户失败")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return auth.Identity{}, false
	}
	return id, true
}

// CurrentUser 没有登录返回nil
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(ctxKeyUser)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}

// CurrentIdentity 没经过鉴权中间件时返回Anonymous
func CurrentIdentity(c *gin.Context) auth.Identity {
	v, ok := c.Get(ctxKeyIdentity)
	if !ok {
		return auth.Identity{State: auth.Anonymous}
	}
	id, _ := v.(auth.Identity)
	return id
}

package middleware

import (
	"WeTube/pkg/logger"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const HeaderClientKey = "x-client-key"

// ClientKey 所有请求都要带上正确的x-client-key，exempt里的路径前缀除外（文档、静态文件、监控）
func ClientKey(key string, exempt ...string) gin.HandlerFunc {
	expected := []byte(key)
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range exempt {
			if path == prefix || strings.HasPrefix(path, strings.TrimRight(prefix, "/")+"/") {
				c.Next()
				return
			}
		}
		got := []byte(c.GetHeader(HeaderClientKey))
		if len(expected) == 0 || subtle.ConstantTimeCompare(got, expected) != 1 {
			logger.Log.WithField("ip", c.ClientIP()).WithField("path", path).Warn("客户端密钥校验失败")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "无效的客户端密钥"})
			return
		}
		c.Next()
	}
}

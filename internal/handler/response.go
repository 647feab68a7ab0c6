package handler

import (
	"WeTube/internal/middleware"
	"WeTube/internal/model"
	"WeTube/internal/service"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorResponse 定义了标准的API错误响应结构
type ErrorResponse struct {
	Error string `json:"error"`
}

// sendErrorResponse 是一个辅助函数，用于发送标准格式的错误响应
func sendErrorResponse(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, ErrorResponse{Error: message})
}

// respondServiceError 把service的哨兵错误映射成状态码；业务拒绝记Warn，其余记Error并只返回fallback
func respondServiceError(c *gin.Context, logCtx *logrus.Entry, err error, fallback string) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrDuplicate),
		errors.Is(err, service.ErrSelfSubscription):
		code = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUnauthenticated):
		code = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		code = http.StatusNotFound
	}

	if code == http.StatusInternalServerError {
		logCtx.WithError(err).Error(fallback)
		message := fallback
		if errors.Is(err, service.ErrStorage) {
			message = service.ErrStorage.Error()
		}
		sendErrorResponse(c, code, message)
		return
	}
	logCtx.WithError(err).Warn(fallback)
	sendErrorResponse(c, code, err.Error())
}

// currentUser RequireAuth之后一定能拿到，拿不到说明路由配错了
func currentUser(c *gin.Context) (*model.User, bool) {
	user := middleware.CurrentUser(c)
	if user == nil {
		sendErrorResponse(c, http.StatusUnauthorized, "用户未认证")
		return nil, false
	}
	return user, true
}

// viewerID 可选鉴权的路由用，匿名和令牌无效都是0
func viewerID(c *gin.Context) uint64 {
	return middleware.CurrentIdentity(c).UserID()
}

// parseIDParam c.Param拿到的是string，转成uint64
func parseIDParam(c *gin.Context, name, message string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		sendErrorResponse(c, http.StatusBadRequest, message)
		return 0, false
	}
	return id, true
}

// queryInt 在URL的查询参数里找key，没有或解析失败就返回默认值
func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	if err != nil {
		return def
	}
	return v
}

// formValue 区分“没传”和“传了空字符串”，部分更新要用
func formValue(c *gin.Context, key string) *string {
	v, ok := c.GetPostForm(key)
	if !ok {
		return nil
	}
	return &v
}

// formFile 字段不存在返回nil
func formFile(c *gin.Context, key string) *multipart.FileHeader {
	fh, err := c.FormFile(key)
	if err != nil {
		return nil
	}
	return fh
}

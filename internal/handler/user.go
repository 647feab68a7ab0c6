package handler

import (
	"WeTube/internal/dto"
	"WeTube/internal/service"
	"WeTube/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

type UserHandler interface {
	Signup(c *gin.Context)
	Login(c *gin.Context)
	CheckUsername(c *gin.Context)
	CheckNickname(c *gin.Context)
	UpdateProfile(c *gin.Context)
	GetProfile(c *gin.Context)
}

// 对Service进行封装
type userHandler struct {
	UserService service.UserService
}

func NewUserHandler(userService service.UserService) UserHandler {
	return &userHandler{UserService: userService}
}

// 注册时前端一次提交的全部资料，必填项在service里检查
type SignupRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Nickname     string `json:"nickname"`
	BirthDate    string `json:"birthDate"`
	PhoneNumber  string `json:"phoneNumber"`
	Gender       string `json:"gender"`
	ZipCode      string `json:"zipCode"`
	Address1     string `json:"address1"`
	Address2     string `json:"address2"`
	ProfileImage string `json:"profileImage"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CheckUsernameRequest struct {
	Username string `json:"username"`
}

type CheckNicknameRequest struct {
	Nickname string `json:"nickname"`
}

// @Summary 注册
// @Tags auth
// @Router /api/auth/signup [post]
func (h *userHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.WithError(err).Warn("注册参数解析失败")
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	logCtx := logger.Log.WithField("username", req.Username)
	logCtx.Info("开始处理注册请求")

	user, err := h.UserService.Signup(service.SignupInput{
		Username:     req.Username,
		Email:        req.Email,
		Password:     req.Password,
		Nickname:     req.Nickname,
		BirthDate:    req.BirthDate,
		PhoneNumber:  req.PhoneNumber,
		Gender:       req.Gender,
		ZipCode:      req.ZipCode,
		Address1:     req.Address1,
		Address2:     req.Address2,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		respondServiceError(c, logCtx, err, "注册失败")
		return
	}
	logCtx.WithField("user_id", user.ID).Info("注册成功")
	c.JSON(http.StatusCreated, gin.H{
		"message": "注册成功",
		"data":    gin.H{"id": user.ID},
	})
}

// @Summary 登录
// @Tags auth
// @Router /api/auth/login [post]
func (h *userHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "用户名和密码不能为空")
		return
	}
	logCtx := logger.Log.WithField("username", req.Username).WithField("ip", c.ClientIP())

	token, user, err := h.UserService.Login(req.Username, req.Password)
	if err != nil {
		respondServiceError(c, logCtx, err, "登录失败")
		return
	}
	logCtx.WithField("user_id", user.ID).Info("登录成功")
	c.JSON(http.StatusOK, gin.H{
		"message": "登录成功",
		"data": gin.H{
			"token": token,
			"user":  dto.ToUserProfile(user),
		},
	})
}

// @Summary 检查用户名是否可用
// @Tags auth
// @Router /api/auth/check-username [post]
func (h *userHandler) CheckUsername(c *gin.Context) {
	var req CheckUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.WithError(err).Warn("检查用户名参数解析失败")
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	available, err := h.UserService.IsUsernameAvailable(req.Username)
	if err != nil {
		respondServiceError(c, logger.Log.WithField("username", req.Username), err, "检查用户名失败")
		return
	}
	c.JSON(http.StatusOK, availability(available, "用户名"))
}

// @Summary 检查昵称是否可用
// @Tags auth
// @Router /api/auth/check-nickname [post]
func (h *userHandler) CheckNickname(c *gin.Context) {
	var req CheckNicknameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.WithError(err).Warn("检查昵称参数解析失败")
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	available, err := h.UserService.IsNicknameAvailable(req.Nickname)
	if err != nil {
		respondServiceError(c, logger.Log.WithField("nickname", req.Nickname), err, "检查昵称失败")
		return
	}
	c.JSON(http.StatusOK, availability(available, "昵称"))
}

func availability(available bool, what string) gin.H {
	message := what + "可以使用"
	if !available {
		message = what + "已被使用"
	}
	return gin.H{
		"message": message,
		"data":    gin.H{"is_available": available},
	}
}

// @Summary 修改个人资料（multipart，只改传了的字段）
// @Tags auth
// @Router /api/auth/profile [patch]
func (h *userHandler) UpdateProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	logCtx := logger.Log.WithField("user_id", user.ID)
	logCtx.Info("开始处理修改资料请求")

	update := service.ProfileUpdate{
		Nickname:    formValue(c, "nickname"),
		PhoneNumber: formValue(c, "phoneNumber"),
		ZipCode:     formValue(c, "zipCode"),
		Address1:    formValue(c, "address1"),
		Address2:    formValue(c, "address2"),
		BirthDate:   formValue(c, "birthDate"),
		Gender:      formValue(c, "gender"),
	}
	updated, err := h.UserService.UpdateProfile(c.Request.Context(), user.ID, update, formFile(c, "profileImage"))
	if err != nil {
		respondServiceError(c, logCtx, err, "修改资料失败")
		return
	}
	logCtx.Info("资料修改成功")
	c.JSON(http.StatusOK, gin.H{
		"message": "资料修改成功",
		"data":    dto.ToUserProfile(updated),
	})
}

// @Summary 当前登录用户
// @Tags auth
// @Router /api/auth/me [get]
func (h *userHandler) GetProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "获取用户信息成功",
		"data":    dto.ToUserProfile(user),
	})
}

package handler

import (
	"WeTube/internal/dto"
	"WeTube/internal/service"
	"WeTube/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AdminHandler interface {
	Dashboard(c *gin.Context)
	ListUsers(c *gin.Context)
	ListVideos(c *gin.Context)
	DeleteVideo(c *gin.Context)
}

type adminHandler struct {
	AdminService service.AdminService
}

func NewAdminHandler(adminService service.AdminService) AdminHandler {
	return &adminHandler{AdminService: adminService}
}

// @Summary 后台统计
// @Tags admin
// @Router /api/admin/stats [get]
func (h *adminHandler) Dashboard(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	stats, err := h.AdminService.Dashboard(user)
	if err != nil {
		respondServiceError(c, logger.Log.WithField("user_id", user.ID), err, "获取统计数据失败")
		return
	}
	recentUsers := make([]dto.AdminUserResponse, 0, len(stats.RecentUsers))
	for i := range stats.RecentUsers {
		recentUsers = append(recentUsers, dto.ToAdminUserResponse(&stats.RecentUsers[i]))
	}
	recentVideos := make([]dto.AdminVideoResponse, 0, len(stats.RecentVideos))
	for i := range stats.RecentVideos {
		recentVideos = append(recentVideos, dto.ToAdminVideoResponse(&stats.RecentVideos[i], 0))
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "获取统计数据成功",
		"data": dto.DashboardResponse{
			TotalUsers:       stats.TotalUsers,
			TotalVideos:      stats.TotalVideos,
			TotalViews:       stats.TotalViews,
			PendingInquiries: stats.PendingInquiries,
			RecentUsers:      recentUsers,
			RecentVideos:     recentVideos,
		},
	})
}

// @Summary 用户管理列表（每页10条）
// @Tags admin
// @Router /api/admin/users [get]
func (h *adminHandler) ListUsers(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	list, err := h.AdminService.ListUsers(user, queryInt(c, "page", 1))
	if err != nil {
		respondServiceError(c, logger.Log.WithField("user_id", user.ID), err, "获取用户列表失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "获取用户列表成功",
		"data": gin.H{
			"users":       dto.ToAdminUserResponses(list.Users),
			"total":       list.Total,
			"page":        list.Page.Page,
			"total_pages": list.Page.TotalPages(list.Total),
		},
	})
}

// @Summary 视频管理列表（每页10条）
// @Tags admin
// @Router /api/admin/videos [get]
func (h *adminHandler) ListVideos(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	list, err := h.AdminService.ListVideos(user, queryInt(c, "page", 1))
	if err != nil {
		respondServiceError(c, logger.Log.WithField("user_id", user.ID), err, "获取视频列表失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "获取视频列表成功",
		"data": gin.H{
			"videos":      dto.ToAdminVideoResponses(list.Videos),
			"total":       list.Total,
			"page":        list.Page.Page,
			"total_pages": list.Page.TotalPages(list.Total),
		},
	})
}

// @Summary 删除视频（物理删除，文件异步清理）
// @Tags admin
// @Router /api/admin/videos/{id} [delete]
func (h *adminHandler) DeleteVideo(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	videoID, ok := parseIDParam(c, "id", "无效的视频ID")
	if !ok {
		return
	}
	logCtx := logger.Log.WithField("user_id", user.ID).WithField("video_id", videoID)
	if err := h.AdminService.DeleteVideo(c.Request.Context(), user, videoID); err != nil {
		respondServiceError(c, logCtx, err, "删除视频失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "视频已删除"})
}

package handler

import (
	"WeTube/internal/dto"
	"WeTube/internal/service"
	"WeTube/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

type NoticeHandler interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type noticeHandler struct {
	NoticeService service.NoticeService
}

func NewNoticeHandler(noticeService service.NoticeService) NoticeHandler {
	return &noticeHandler{NoticeService: noticeService}
}

type CreateNoticeRequest struct {
	Title   string `json:"title" binding:"required,notblank"`
	Content string `json:"content" binding:"required,notblank"`
}

// 指针区分没传和传了空值
type UpdateNoticeRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// @Summary 公告列表
// @Tags notices
// @Router /api/notices [get]
func (h *noticeHandler) List(c *gin.Context) {
	page := service.NewPage(queryInt(c, "page", 1), queryInt(c, "limit", service.DefaultPageLimit), service.DefaultPageLimit, service.MaxVideoLimit)
	list, err := h.NoticeService.List(page)
	if err != nil {
		respondServiceError(c, logger.Log.WithField("ip", c.ClientIP()), err, "获取公告列表失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "获取公告列表成功",
		"data": gin.H{
			"notices":     dto.ToNoticeResponses(list.Notices),
			"total":       list.Total,
			"page":        list.Page.Page,
			"total_pages": list.Page.TotalPages(list.Total),
		},
	})
}

// @Summary 公告详情（浏览数+1）
// @Tags notices
// @Router /api/notices/{id} [get]
func (h *noticeHandler) Get(c *gin.Context) {
	noticeID, ok := parseIDParam(c, "id", "无效的公告ID")
	if !ok {
		return
	}
	notice, err := h.NoticeService.View(noticeID)
	if err != nil {
		respondServiceError(c, logger.Log.WithField("notice_id", noticeID), err, "获取公告失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "获取公告成功",
		"data":    dto.ToNoticeResponse(notice),
	})
}

// @Summary 发布公告（管理员）
// @Tags notices
// @Router /api/notices [post]
func (h *noticeHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req CreateNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "标题和内容不能为空")
		return
	}
	logCtx := logger.Log.WithField("user_id", user.ID)
	notice, err := h.NoticeService.Create(user, req.Title, req.Content)
	if err != nil {
		respondServiceError(c, logCtx, err, "发布公告失败")
		return
	}
	logCtx.WithField("notice_id", notice.ID).Info("公告发布成功")
	c.JSON(http.StatusCreated, gin.H{
		"message": "公告发布成功",
		"data":    dto.ToNoticeResponse(notice),
	})
}

// @Summary 修改公告（管理员）
// @Tags notices
// @Router /api/notices/{id} [patch]
func (h *noticeHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	noticeID, ok := parseIDParam(c, "id", "无效的公告ID")
	if !ok {
		return
	}
	var req UpdateNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	logCtx := logger.Log.WithField("user_id", user.ID).WithField("notice_id", noticeID)
	notice, err := h.NoticeService.Update(user, noticeID, service.NoticeUpdate{Title: req.Title, Content: req.Content})
	if err != nil {
		respondServiceError(c, logCtx, err, "修改公告失败")
		return
	}
	logCtx.Info("公告修改成功")
	c.JSON(http.StatusOK, gin.H{
		"message": "公告修改成功",
		"data":    dto.ToNoticeResponse(notice),
	})
}

// @Summary 删除公告（管理员）
// @Tags notices
// @Router /api/notices/{id} [delete]
func (h *noticeHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	noticeID, ok := parseIDParam(c, "id", "无效的公告ID")
	if !ok {
		return
	}
	logCtx := logger.Log.WithField("user_id", user.ID).WithField("notice_id", noticeID)
	if err := h.NoticeService.Delete(user, noticeID); err != nil {
		respondServiceError(c, logCtx, err, "删除公告失败")
		return
	}
	logCtx.Info("公告已删除")
	c.JSON(http.StatusOK, gin.H{"message": "公告已删除"})
}

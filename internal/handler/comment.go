package handler

import (
	"WeTube/internal/dto"
	"WeTube/internal/service"
	"WeTube/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

type CommentHandler interface {
	CreateComment(c *gin.Context)
	GetComments(c *gin.Context)
	DeleteComment(c *gin.Context)
}

type commentHandler struct {
	CommentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) CommentHandler {
	return &commentHandler{CommentService: commentService}
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,notblank"`
}

// @Summary 发表评论
// @Tags comments
// @Router /api/videos/{id}/comments [post]
func (h *commentHandler) CreateComment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	videoID, ok := parseIDParam(c, "id", "无效的视频ID")
	if !ok {
		return
	}
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "评论内容不能为空") // 400
		return
	}

	// 正式进入业务前，将logger格式整理好
	logCtx := logger.Log.WithField("user_id", user.ID).WithField("video_id", videoID)
	logCtx.Info("开始创建评论")
	comment, err := h.CommentService.CreateComment(user.ID, videoID, req.Content)
	if err != nil {
		respondServiceError(c, logCtx, err, "评论失败")
		return
	}
	// 业务成功，打上返回的comment的ID
	logCtx.WithField("comment_id", comment.ID).Info("评论创建成功")
	c.JSON(http.StatusCreated, gin.H{ //201
		"message": "评论成功",
		"data":    dto.ToCommentResponse(comment),
	})
}

// @Summary 视频的评论列表（最新在前）
// @Tags comments
// @Router /api/videos/{id}/comments [get]
func (h *commentHandler) GetComments(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id", "无效的视频ID")
	if !ok {
		return
	}
	comments, err := h.CommentService.GetComments(videoID)
	if err != nil {
		respondServiceError(c, logger.Log.WithField("video_id", videoID), err, "获取评论列表失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "获取评论列表成功",
		"data":    dto.ToCommentResponses(comments),
	})
}

// @Summary 删除评论（作者本人或管理员）
// @Tags comments
// @Router /api/comments/{id} [delete]
func (h *commentHandler) DeleteComment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	commentID, ok := parseIDParam(c, "id", "无效的评论ID")
	if !ok {
		return
	}
	logCtx := logger.Log.WithField("user_id", user.ID).WithField("comment_id", commentID)
	if err := h.CommentService.DeleteComment(user, commentID); err != nil {
		respondServiceError(c, logCtx, err, "删除评论失败")
		return
	}
	logCtx.Info("评论已删除")
	c.JSON(http.StatusOK, gin.H{"message": "评论已删除"})
}

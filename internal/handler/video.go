package handler

import (
	"WeTube/internal/dto"
	"WeTube/internal/service"
	"WeTube/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

type VideoHandler interface {
	CreateVideo(c *gin.Context)
	GetVideos(c *gin.Context)
	SearchVideos(c *gin.Context)
	GetVideoByID(c *gin.Context)
	ToggleLike(c *gin.Context)

	GetHistory(c *gin.Context)
	GetLikedVideos(c *gin.Context)
	GetSubscribedVideos(c *gin.Context)
}

type videoHandler struct {
	VideoService service.VideoService
}

func NewVideoHandler(videoService service.VideoService) VideoHandler {
	return &videoHandler{VideoService: videoService}
}

// @Summary 上传视频（multipart：video、thumbnail、title、description、hashtags）
// @Tags videos
// @Router /api/videos [post]
func (h *videoHandler) CreateVideo(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	// 蛇形命名法（日志聚合平台ELK、前端JavaScript）
	logCtx := logger.Log.WithField("author_id", user.ID)
	logCtx.Info("开始处理发布视频请求")

	video, err := h.VideoService.CreateVideo(c.Request.Context(), user.ID, service.CreateVideoInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Hashtags:    service.ParseHashtags(c.PostForm("hashtags")),
		Video:       formFile(c, "video"),
		Thumbnail:   formFile(c, "thumbnail"),
	})
	if err != nil {
		respondServiceError(c, logCtx, err, "发布视频失败")
		return
	}
	// 没有赋值，临时追加上下文，避免污染后续其他日志
	logCtx.WithField("video_id", video.ID).Info("视频发布成功")

	c.JSON(http.StatusCreated, gin.H{ // 使用201 Created状态码，更符合RESTful规范
		"message": "视频发布成功",
		"data":    dto.ToVideoResponse(video),
	})
}

// @Summary 视频列表（最新在前）
// @Tags videos
// @Router /api/videos [get]
func (h *videoHandler) GetVideos(c *gin.Context) {
	// 攻击溯源，用户分析，问题排查
	logCtx := logger.Log.WithField("ip", c.ClientIP())

	page := service.NewPage(queryInt(c, "page", 1), queryInt(c, "limit", service.DefaultVideoLimit), service.DefaultVideoLimit, service.MaxVideoLimit)
	list, err := h.VideoService.ListVideos(c.Request.Context(), page)
	if err != nil {
		respondServiceError(c, logCtx, err, "获取视频列表失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "成功获取视频列表",
		"data":    videoPage(list),
	})
}

// @Summary 搜索视频（标题或简介）
// @Tags videos
// @Router /api/videos/search [get]
func (h *videoHandler) SearchVideos(c *gin.Context) {
	keyword := c.Query("q")
	logCtx := logger.Log.WithField("q", keyword)

	page := service.NewPage(queryInt(c, "page", 1), queryInt(c, "limit", service.DefaultVideoLimit), service.DefaultVideoLimit, service.MaxVideoLimit)
	list, err := h.VideoService.SearchVideos(keyword, page)
	if err != nil {
		respondServiceError(c, logCtx, err, "搜索视频失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "搜索成功",
		"data":    videoPage(list),
	})
}

func videoPage(list *service.VideoList) dto.VideoPageResponse {
	return dto.VideoPageResponse{
		Videos:     dto.ToVideoResponses(list.Videos),
		Total:      list.Total,
		Page:       list.Page.Page,
		TotalPages: list.Page.TotalPages(list.Total),
	}
}

// @Summary 视频详情（浏览数+1，登录用户记录观看历史）
// @Tags videos
// @Router /api/videos/{id} [get]
func (h *videoHandler) GetVideoByID(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id", "无效的视频ID")
	if !ok {
		return
	}
	viewer := viewerID(c)
	logCtx := logger.Log.WithField("video_id", videoID).WithField("user_id", viewer)

	detail, err := h.VideoService.GetVideo(videoID, viewer)
	if err != nil {
		respondServiceError(c, logCtx, err, "获取视频失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "获取视频成功",
		"data": dto.VideoDetailResponse{
			VideoResponse:   dto.ToVideoResponse(detail.Video),
			IsLiked:         detail.IsLiked,
			IsSubscribed:    detail.IsSubscribed,
			SubscriberCount: detail.SubscriberCount,
		},
	})
}

// @Summary 点赞/取消点赞
// @Tags videos
// @Router /api/videos/{id}/like [post]
func (h *videoHandler) ToggleLike(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	videoID, ok := parseIDParam(c, "id", "无效的视频ID")
	if !ok {
		return
	}
	logCtx := logger.Log.WithField("user_id", user.ID).WithField("video_id", videoID)

	result, err := h.VideoService.ToggleLike(user.ID, videoID)
	if err != nil {
		respondServiceError(c, logCtx, err, "点赞操作失败")
		return
	}
	message := "取消点赞成功"
	if result.IsLiked {
		message = "点赞成功"
	}
	logCtx.WithField("is_liked", result.IsLiked).Info(message)
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data": gin.H{
			"is_liked":   result.IsLiked,
			"like_count": result.LikeCount,
		},
	})
}

// @Summary 观看历史
// @Tags videos
// @Router /api/videos/history [get]
func (h *videoHandler) GetHistory(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	histories, err := h.VideoService.History(user.ID)
	if err != nil {
		respondServiceError(c, logger.Log.WithField("user_id", user.ID), err, "获取观看历史失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "获取观看历史成功",
		"data":    dto.ToHistoryResponses(histories),
	})
}

// @Summary 点赞过的视频
// @Tags videos
// @Router /api/videos/liked [get]
func (h *videoHandler) GetLikedVideos(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	videos, err := h.VideoService.LikedVideos(user.ID)
	if err != nil {
		respondServiceError(c, logger.Log.WithField("user_id", user.ID), err, "获取点赞视频失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "获取点赞视频成功",
		"data":    dto.ToVideoResponses(videos),
	})
}

// @Summary 订阅频道的视频
// @Tags videos
// @Router /api/videos/subscribed [get]
func (h *videoHandler) GetSubscribedVideos(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	videos, err := h.VideoService.SubscribedVideos(user.ID)
	if err != nil {
		respondServiceError(c, logger.Log.WithField("user_id", user.ID), err, "获取订阅视频失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "获取订阅视频成功",
		"data":    dto.ToVideoResponses(videos),
	})
}

package handler

import (
	"WeTube/internal/dto"
	"WeTube/internal/service"
	"WeTube/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ChannelHandler interface {
	ToggleSubscription(c *gin.Context)
	GetChannel(c *gin.Context)
}

type channelHandler struct {
	SubscriptionService service.SubscriptionService
}

func NewChannelHandler(subscriptionService service.SubscriptionService) ChannelHandler {
	return &channelHandler{SubscriptionService: subscriptionService}
}

// @Summary 订阅/取消订阅频道
// @Tags subscriptions
// @Router /api/subscriptions/{channelId} [post]
func (h *channelHandler) ToggleSubscription(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	channelID, ok := parseIDParam(c, "channelId", "无效的频道ID")
	if !ok {
		return
	}
	logCtx := logger.Log.WithField("user_id", user.ID).WithField("channel_id", channelID)

	result, err := h.SubscriptionService.ToggleSubscription(user.ID, channelID)
	if err != nil {
		respondServiceError(c, logCtx, err, "订阅操作失败")
		return
	}
	message := "已取消订阅"
	if result.IsSubscribed {
		message = "订阅成功"
	}
	logCtx.WithField("is_subscribed", result.IsSubscribed).Info(message)
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data": gin.H{
			"is_subscribed":    result.IsSubscribed,
			"subscriber_count": result.SubscriberCount,
		},
	})
}

// @Summary 频道页
// @Tags channels
// @Router /api/channels/{id} [get]
func (h *channelHandler) GetChannel(c *gin.Context) {
	channelID, ok := parseIDParam(c, "id", "无效的频道ID")
	if !ok {
		return
	}
	logCtx := logger.Log.WithField("channel_id", channelID)

	page, err := h.SubscriptionService.GetChannel(channelID, viewerID(c))
	if err != nil {
		respondServiceError(c, logCtx, err, "获取频道失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "获取频道成功",
		"data": gin.H{
			"channel":          dto.ToChannelOwner(page.Owner),
			"subscriber_count": page.SubscriberCount,
			"video_count":      page.VideoCount,
			"is_subscribed":    page.IsSubscribed,
			"videos":           dto.ToVideoResponses(page.Videos),
		},
	})
}

package dto

import (
	"WeTube/internal/model"
	"time"
)

type HashtagResponse struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type VideoResponse struct {
	ID           uint64            `json:"id"`
	CreatedAt    time.Time         `json:"created_at"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	VideoURL     string            `json:"video_url"`
	ThumbnailURL string            `json:"thumbnail_url"`
	Views        uint64            `json:"views"`
	LikeCount    uint64            `json:"like_count"`
	Hashtags     []HashtagResponse `json:"hashtags"`
	Author       AuthorSummary     `json:"author"`
}

// ToVideoResponse 把DB模型转换为API响应模型，Author没有preload时只带ID
func ToVideoResponse(video *model.Video) VideoResponse {
	resp := VideoResponse{
		ID:           video.ID,
		CreatedAt:    video.CreatedAt,
		Title:        video.Title,
		Description:  video.Description,
		VideoURL:     video.VideoURL,
		ThumbnailURL: video.ThumbnailURL,
		Views:        video.Views,
		LikeCount:    video.LikeCount,
		Hashtags:     make([]HashtagResponse, 0, len(video.Hashtags)),
		Author:       ToAuthorSummary(&video.Author, video.AuthorID),
	}
	for _, tag := range video.Hashtags {
		resp.Hashtags = append(resp.Hashtags, HashtagResponse{ID: tag.ID, Name: tag.Name})
	}
	return resp
}

func ToVideoResponses(videos []model.Video) []VideoResponse {
	// 返回空数组而不是null
	response := make([]VideoResponse, 0, len(videos))
	for i := range videos {
		response = append(response, ToVideoResponse(&videos[i]))
	}
	return response
}

type VideoDetailResponse struct {
	VideoResponse
	IsLiked         bool  `json:"is_liked"`
	IsSubscribed    bool  `json:"is_subscribed"`
	SubscriberCount int64 `json:"subscriber_count"`
}

type HistoryResponse struct {
	VideoResponse
	ViewedAt time.Time `json:"viewed_at"`
}

func ToHistoryResponses(histories []model.VideoHistory) []HistoryResponse {
	response := make([]HistoryResponse, 0, len(histories))
	for i := range histories {
		response = append(response, HistoryResponse{
			VideoResponse: ToVideoResponse(&histories[i].Video),
			ViewedAt:      histories[i].ViewedAt,
		})
	}
	return response
}

// VideoPageResponse 分页列表的外层
type VideoPageResponse struct {
	Videos     []VideoResponse `json:"videos"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
}

package dto

import (
	"WeTube/internal/model"
	"WeTube/internal/repository"
	"time"
)

type AdminUserResponse struct {
	ID           uint64    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Nickname     string    `json:"nickname"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	VideoCount   int64     `json:"video_count"`
	CommentCount int64     `json:"comment_count"`
}

func ToAdminUserResponse(u *model.User) AdminUserResponse {
	return AdminUserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Nickname:  u.Nickname,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func ToAdminUserResponses(rows []repository.UserWithCounts) []AdminUserResponse {
	response := make([]AdminUserResponse, 0, len(rows))
	for i := range rows {
		resp := ToAdminUserResponse(&rows[i].User)
		resp.VideoCount = rows[i].VideoCount
		resp.CommentCount = rows[i].CommentCount
		response = append(response, resp)
	}
	return response
}

type AdminVideoAuthor struct {
	ID       uint64 `json:"id"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}

type AdminVideoResponse struct {
	ID           uint64           `json:"id"`
	Title        string           `json:"title"`
	ThumbnailURL string           `json:"thumbnail_url"`
	Views        uint64           `json:"views"`
	LikeCount    uint64           `json:"like_count"`
	CommentCount int64            `json:"comment_count"`
	CreatedAt    time.Time        `json:"created_at"`
	Author       AdminVideoAuthor `json:"author"`
}

func ToAdminVideoResponse(v *model.Video, commentCount int64) AdminVideoResponse {
	return AdminVideoResponse{
		ID:           v.ID,
		Title:        v.Title,
		ThumbnailURL: v.ThumbnailURL,
		Views:        v.Views,
		LikeCount:    v.LikeCount,
		CommentCount: commentCount,
		CreatedAt:    v.CreatedAt,
		Author:       AdminVideoAuthor{ID: v.AuthorID, Nickname: v.Author.Nickname, Email: v.Author.Email},
	}
}

func ToAdminVideoResponses(rows []repository.VideoWithCounts) []AdminVideoResponse {
	response := make([]AdminVideoResponse, 0, len(rows))
	for i := range rows {
		response = append(response, ToAdminVideoResponse(&rows[i].Video, rows[i].CommentCount))
	}
	return response
}

type DashboardResponse struct {
	TotalUsers       int64                `json:"total_users"`
	TotalVideos      int64                `json:"total_videos"`
	TotalViews       int64                `json:"total_views"`
	PendingInquiries int64                `json:"pending_inquiries"`
	RecentUsers      []AdminUserResponse  `json:"recent_users"`
	RecentVideos     []AdminVideoResponse `json:"recent_videos"`
}

package dto

import (
	"WeTube/internal/model"
	"time"
)

type CommentResponse struct {
	ID        uint64        `json:"id"`
	VideoID   uint64        `json:"video_id"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
	Author    AuthorSummary `json:"author"`
}

func ToCommentResponse(comment *model.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		VideoID:   comment.VideoID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		Author:    ToAuthorSummary(&comment.Author, comment.AuthorID),
	}
}

func ToCommentResponses(comments []model.Comment) []CommentResponse {
	response := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		response = append(response, ToCommentResponse(&comments[i]))
	}
	return response
}

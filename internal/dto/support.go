package dto

import (
	"WeTube/internal/model"
	"time"
)

type NoticeResponse struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ViewCount uint64    `json:"view_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToNoticeResponse(n *model.Notice) NoticeResponse {
	return NoticeResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		ViewCount: n.ViewCount,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func ToNoticeResponses(notices []model.Notice) []NoticeResponse {
	response := make([]NoticeResponse, 0, len(notices))
	for i := range notices {
		response = append(response, ToNoticeResponse(&notices[i]))
	}
	return response
}

type InquiryAuthor struct {
	ID       uint64 `json:"id"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}

type InquiryResponse struct {
	ID           uint64         `json:"id"`
	Title        string         `json:"title"`
	Content      string         `json:"content"`
	Answer       *string        `json:"answer"`
	IsAnswered   bool           `json:"is_answered"`
	AnsweredAt   *time.Time     `json:"answered_at"`
	AnswerStatus string         `json:"answer_status"`
	CreatedAt    time.Time      `json:"created_at"`
	Author       *InquiryAuthor `json:"author,omitempty"`
}

// ToInquiryResponse withAuthor为true时带上作者（管理员视角）
func ToInquiryResponse(q *model.Inquiry, withAuthor bool) InquiryResponse {
	resp := InquiryResponse{
		ID:           q.ID,
		Title:        q.Title,
		Content:      q.Content,
		Answer:       q.Answer,
		IsAnswered:   q.IsAnswered,
		AnsweredAt:   q.AnsweredAt,
		AnswerStatus: string(q.AnswerStatus),
		CreatedAt:    q.CreatedAt,
	}
	if withAuthor && q.Author.ID != 0 {
		resp.Author = &InquiryAuthor{ID: q.Author.ID, Nickname: q.Author.Nickname, Email: q.Author.Email}
	}
	return resp
}

func ToInquiryResponses(inquiries []model.Inquiry, withAuthor bool) []InquiryResponse {
	response := make([]InquiryResponse, 0, len(inquiries))
	for i := range inquiries {
		response = append(response, ToInquiryResponse(&inquiries[i], withAuthor))
	}
	return response
}

package model

import "time"

type Notice struct {
	BaseModel
	Title     string `gorm:"size:200;not null"`
	Content   string `gorm:"type:text;not null"`
	ViewCount uint64 `gorm:"not null;default:0"`
}

// AnswerStatus 询问的答复状态：未答复 -> 已答复 -> 已清除（清除后等同未答复，可以再次答复）
type AnswerStatus string

const (
	AnswerUnanswered AnswerStatus = "UNANSWERED"
	AnswerAnswered   AnswerStatus = "ANSWERED"
	AnswerCleared    AnswerStatus = "CLEARED"
)

type Inquiry struct {
	BaseModel
	AuthorID uint64 `gorm:"not null;index"`
	Title    string `gorm:"size:200;not null"`
	Content  string `gorm:"type:text;not null"`

	// 这三个字段 + AnswerStatus 总是一起改
	Answer       *string `gorm:"type:text"`
	IsAnswered   bool    `gorm:"not null;default:false;index"`
	AnsweredAt   *time.Time
	AnswerStatus AnswerStatus `gorm:"size:16;not null;default:UNANSWERED"`

	Author User `gorm:"foreignKey:AuthorID"`
}

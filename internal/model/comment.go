package model

type Comment struct {
	BaseModel
	VideoID  uint64 `gorm:"not null;index"`
	AuthorID uint64 `gorm:"not null;index"`
	// TEXT 可以放很长的评论
	Content string `gorm:"type:text;not null"`

	Author User  `gorm:"foreignKey:AuthorID"`
	Video  Video `gorm:"foreignKey:VideoID"`
}

func (Comment) TableName() string {
	return "comments"
}

package model

// Video 视频元数据，文件本身在对象存储里，这里只存URL和key
type Video struct {
	BaseModel
	AuthorID    uint64 `gorm:"not null;index"`
	Title       string `gorm:"size:200;not null"`
	Description string `gorm:"type:text"`

	VideoURL     string `gorm:"size:500;not null"`
	VideoKey     string `gorm:"size:300"`
	ThumbnailURL string `gorm:"size:500;not null"`
	ThumbnailKey string `gorm:"size:300"`

	// 冗余计数，由业务代码维护，LikeCount必须和video_likes在同一个事务里变
	Views     uint64 `gorm:"not null;default:0"`
	LikeCount uint64 `gorm:"not null;default:0"`

	Author   User      `gorm:"foreignKey:AuthorID;references:ID"`
	Hashtags []Hashtag `gorm:"many2many:video_hashtags;"`
}

// Hashtag 第一次用到时才创建（connect or create）
type Hashtag struct {
	ID   uint64 `gorm:"primarykey"`
	Name string `gorm:"size:64;uniqueIndex;not null"`
}

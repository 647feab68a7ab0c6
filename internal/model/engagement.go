package model

import "time"

// 下面三张关联表都不带DeletedAt：软删除会让联合唯一索引挡住“再次点赞/订阅”，所以一律硬删除

// VideoLike 用户与视频的点赞关系，联合唯一索引保证一个用户对一个视频只能点赞一次
type VideoLike struct {
	ID        uint64 `gorm:"primarykey"`
	UserID    uint64 `gorm:"not null;uniqueIndex:idx_like_user_video"`
	VideoID   uint64 `gorm:"not null;uniqueIndex:idx_like_user_video;index"`
	CreatedAt time.Time

	Video Video `gorm:"foreignKey:VideoID"`
}

func (VideoLike) TableName() string {
	return "video_likes"
}

// Subscription 订阅者 -> 频道（频道就是另一个用户）
type Subscription struct {
	ID           uint64 `gorm:"primarykey"`
	SubscriberID uint64 `gorm:"not null;uniqueIndex:idx_sub_pair"`
	ChannelID    uint64 `gorm:"not null;uniqueIndex:idx_sub_pair;index"`
	CreatedAt    time.Time
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// VideoHistory 观看记录，同一用户同一视频只有一行，重复观看只刷新ViewedAt
type VideoHistory struct {
	ID       uint64    `gorm:"primarykey"`
	UserID   uint64    `gorm:"not null;uniqueIndex:idx_history_user_video"`
	VideoID  uint64    `gorm:"not null;uniqueIndex:idx_history_user_video;index"`
	ViewedAt time.Time `gorm:"not null;index"`

	Video Video `gorm:"foreignKey:VideoID"`
}

func (VideoHistory) TableName() string {
	return "video_histories"
}

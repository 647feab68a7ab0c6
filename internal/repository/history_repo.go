package repository

import (
	"WeTube/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HistoryRepository interface {
	// 同一用户同一视频只保留一行，再看一次只刷新viewed_at
	Upsert(userID, videoID uint64, viewedAt time.Time) error
	// 最近看过的在前
	ListByUser(userID uint64) ([]model.VideoHistory, error)

	WithTx(tx *gorm.DB) HistoryRepository
}

type historyRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) WithTx(tx *gorm.DB) HistoryRepository {
	return &historyRepository{db: tx}
}

func (r *historyRepository) Upsert(userID, videoID uint64, viewedAt time.Time) error {
	history := &model.VideoHistory{UserID: userID, VideoID: videoID, ViewedAt: viewedAt}
	// mysql: INSERT ... ON DUPLICATE KEY UPDATE viewed_at = VALUES(viewed_at)
	// postgres/sqlite: INSERT ... ON CONFLICT (user_id, video_id) DO UPDATE SET viewed_at = excluded.viewed_at
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"viewed_at"}),
	}).Create(history).Error
}

func (r *historyRepository) ListByUser(userID uint64) ([]model.VideoHistory, error) {
	var histories []model.VideoHistory
	err := r.db.
		Preload("Video.Author").
		Where("user_id = ?", userID).
		Order("viewed_at desc").Order("id desc").
		Find(&histories).Error
	if err != nil {
		return nil, err
	}
	result := histories[:0]
	for _, h := range histories {
		if h.Video.ID != 0 {
			result = append(result, h)
		}
	}
	return result, nil
}

package repository

import (
	"WeTube/internal/model"

	"gorm.io/gorm"
)

type LikeRepository interface {
	Exists(userID, videoID uint64) (bool, error)
	Create(like *model.VideoLike) error
	Delete(userID, videoID uint64) error
	// 用户点过赞的视频，最近点赞的在前
	ListLikedVideos(userID uint64) ([]model.Video, error)
	CountByVideo(videoID uint64) (int64, error)

	WithTx(tx *gorm.DB) LikeRepository
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) WithTx(tx *gorm.DB) LikeRepository {
	return &likeRepository{db: tx}
}

func (r *likeRepository) Exists(userID, videoID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&model.VideoLike{}).Where("user_id = ? AND video_id = ?", userID, videoID).Count(&count).Error
	return count > 0, err
}

func (r *likeRepository) Create(like *model.VideoLike) error {
	return r.db.Create(like).Error
}

// VideoLike没有DeletedAt，这里就是物理删除
func (r *likeRepository) Delete(userID, videoID uint64) error {
	return r.db.Where("user_id = ? AND video_id = ?", userID, videoID).Delete(&model.VideoLike{}).Error
}

func (r *likeRepository) ListLikedVideos(userID uint64) ([]model.Video, error) {
	var likes []model.VideoLike
	err := r.db.
		Preload("Video.Author").
		Where("user_id = ?", userID).
		Order("created_at desc").Order("id desc").
		Find(&likes).Error
	if err != nil {
		return nil, err
	}
	videos := make([]model.Video, 0, len(likes))
	for _, like := range likes {
		// 视频已被删除时Preload不到，跳过
		if like.Video.ID != 0 {
			videos = append(videos, like.Video)
		}
	}
	return videos, nil
}

func (r *likeRepository) CountByVideo(videoID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&model.VideoLike{}).Where("video_id = ?", videoID).Count(&count).Error
	return count, err
}

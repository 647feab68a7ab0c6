package repository

import (
	"WeTube/internal/model"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *model.Comment) error
	FindByID(commentID uint64) (*model.Comment, error)
	// 一个视频下的全部评论，最新的在前
	ListByVideo(videoID uint64) ([]model.Comment, error)
	Delete(commentID uint64) error

	WithTx(tx *gorm.DB) CommentRepository
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// WithTx 返回一个新的、使用事务的 commentRepository 实例
func (r *commentRepository) WithTx(tx *gorm.DB) CommentRepository {
	return &commentRepository{db: tx}
}

func (r *commentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

// 利用commentID找comment，顺便把作者Preload进去
func (r *commentRepository) FindByID(commentID uint64) (*model.Comment, error) {
	var result model.Comment
	err := r.db.Preload("Author").First(&result, commentID).Error
	if err != nil {
		return nil, err // 如果有错（包括没找到），直接返回
	}
	return &result, nil
}

func (r *commentRepository) ListByVideo(videoID uint64) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.
		Preload("Author"). // 预加载评论的作者信息
		Where("video_id = ?", videoID).
		Order("created_at desc").Order("id desc").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) Delete(commentID uint64) error {
	return r.db.Delete(&model.Comment{}, commentID).Error
}

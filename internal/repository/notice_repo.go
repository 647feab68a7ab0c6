package repository

import (
	"WeTube/internal/model"

	"gorm.io/gorm"
)

type NoticeRepository interface {
	Create(notice *model.Notice) error
	FindByID(noticeID uint64) (*model.Notice, error)
	List(offset, limit int) ([]model.Notice, int64, error)
	// 返回影响行数，0说明公告不存在
	IncrementViewCount(noticeID uint64) (int64, error)
	UpdateFields(noticeID uint64, fields map[string]interface{}) error
	Delete(noticeID uint64) (int64, error)

	WithTx(tx *gorm.DB) NoticeRepository
}

type noticeRepository struct {
	db *gorm.DB
}

func NewNoticeRepository(db *gorm.DB) NoticeRepository {
	return &noticeRepository{db: db}
}

func (r *noticeRepository) WithTx(tx *gorm.DB) NoticeRepository {
	return &noticeRepository{db: tx}
}

func (r *noticeRepository) Create(notice *model.Notice) error {
	return r.db.Create(notice).Error
}

func (r *noticeRepository) FindByID(noticeID uint64) (*model.Notice, error) {
	var notice model.Notice
	if err := r.db.First(&notice, noticeID).Error; err != nil {
		return nil, err
	}
	return &notice, nil
}

func (r *noticeRepository) List(offset, limit int) ([]model.Notice, int64, error) {
	var total int64
	if err := r.db.Model(&model.Notice{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var notices []model.Notice
	err := r.db.Order("created_at desc").Order("id desc").Offset(offset).Limit(limit).Find(&notices).Error
	return notices, total, err
}

func (r *noticeRepository) IncrementViewCount(noticeID uint64) (int64, error) {
	result := r.db.Model(&model.Notice{}).Where("id = ?", noticeID).UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	return result.RowsAffected, result.Error
}

func (r *noticeRepository) UpdateFields(noticeID uint64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.Model(&model.Notice{}).Where("id = ?", noticeID).Updates(fields).Error
}

func (r *noticeRepository) Delete(noticeID uint64) (int64, error) {
	result := r.db.Delete(&model.Notice{}, noticeID)
	return result.RowsAffected, result.Error
}

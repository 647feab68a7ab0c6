package repository

import (
	"WeTube/internal/model"

	"gorm.io/gorm"
)

type InquiryRepository interface {
	Create(inquiry *model.Inquiry) error
	FindByID(inquiryID uint64) (*model.Inquiry, error)
	ListByAuthor(authorID uint64, offset, limit int) ([]model.Inquiry, int64, error)
	// 管理员看全部，带上作者
	ListAll(offset, limit int) ([]model.Inquiry, int64, error)
	// 答复相关的四个字段整体写入
	SaveAnswer(inquiry *model.Inquiry) error
	CountPending() (int64, error)

	WithTx(tx *gorm.DB) InquiryRepository
}

type inquiryRepository struct {
	db *gorm.DB
}

func NewInquiryRepository(db *gorm.DB) InquiryRepository {
	return &inquiryRepository{db: db}
}

func (r *inquiryRepository) WithTx(tx *gorm.DB) InquiryRepository {
	return &inquiryRepository{db: tx}
}

func (r *inquiryRepository) Create(inquiry *model.Inquiry) error {
	return r.db.Create(inquiry).Error
}

func (r *inquiryRepository) FindByID(inquiryID uint64) (*model.Inquiry, error) {
	var inquiry model.Inquiry
	if err := r.db.Preload("Author").First(&inquiry, inquiryID).Error; err != nil {
		return nil, err
	}
	return &inquiry, nil
}

func (r *inquiryRepository) ListByAuthor(authorID uint64, offset, limit int) ([]model.Inquiry, int64, error) {
	return r.list(r.db.Model(&model.Inquiry{}).Where("author_id = ?", authorID), offset, limit)
}

func (r *inquiryRepository) ListAll(offset, limit int) ([]model.Inquiry, int64, error) {
	return r.list(r.db.Model(&model.Inquiry{}), offset, limit)
}

func (r *inquiryRepository) list(query *gorm.DB, offset, limit int) ([]model.Inquiry, int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var inquiries []model.Inquiry
	err := query.Session(&gorm.Session{}).
		Preload("Author").
		Order("created_at desc").Order("id desc").
		Offset(offset).Limit(limit).
		Find(&inquiries).Error
	return inquiries, total, err
}

func (r *inquiryRepository) SaveAnswer(inquiry *model.Inquiry) error {
	// Select指定列，nil也会被写成NULL
	return r.db.Model(&model.Inquiry{}).
		Where("id = ?", inquiry.ID).
		Select("answer", "is_answered", "answered_at", "answer_status").
		Updates(map[string]interface{}{
			"answer":        inquiry.Answer,
			"is_answered":   inquiry.IsAnswered,
			"answered_at":   inquiry.AnsweredAt,
			"answer_status": inquiry.AnswerStatus,
		}).Error
}

// 未答复 = is_answered为false，包括被清除答复的
func (r *inquiryRepository) CountPending() (int64, error) {
	var count int64
	err := r.db.Model(&model.Inquiry{}).Where("is_answered = ?", false).Count(&count).Error
	return count, err
}

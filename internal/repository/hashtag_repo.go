package repository

import (
	"WeTube/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HashtagRepository interface {
	// 按名字查，不存在就创建（connect or create）
	FindOrCreate(names []string) ([]model.Hashtag, error)
	WithTx(tx *gorm.DB) HashtagRepository
}

type hashtagRepository struct {
	db *gorm.DB
}

func NewHashtagRepository(db *gorm.DB) HashtagRepository {
	return &hashtagRepository{db: db}
}

func (r *hashtagRepository) WithTx(tx *gorm.DB) HashtagRepository {
	return &hashtagRepository{db: tx}
}

func (r *hashtagRepository) FindOrCreate(names []string) ([]model.Hashtag, error) {
	tags := make([]model.Hashtag, 0, len(names))
	for _, name := range names {
		// 已存在就什么都不做，不会报唯一键冲突，postgres事务也不会因此失效
		err := r.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&model.Hashtag{Name: name}).Error
		if err != nil {
			return nil, err
		}
		tag := model.Hashtag{}
		if err := r.db.Where("name = ?", name).First(&tag).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

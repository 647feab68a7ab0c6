package repository

import (
	"WeTube/internal/model"

	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	Exists(subscriberID, channelID uint64) (bool, error)
	Create(sub *model.Subscription) error
	Delete(subscriberID, channelID uint64) error
	CountSubscribers(channelID uint64) (int64, error)

	WithTx(tx *gorm.DB) SubscriptionRepository
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) WithTx(tx *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: tx}
}

func (r *subscriptionRepository) Exists(subscriberID, channelID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error
	return count > 0, err
}

func (r *subscriptionRepository) Create(sub *model.Subscription) error {
	return r.db.Create(sub).Error
}

func (r *subscriptionRepository) Delete(subscriberID, channelID uint64) error {
	return r.db.Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).Delete(&model.Subscription{}).Error
}

func (r *subscriptionRepository) CountSubscribers(channelID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).Where("channel_id = ?", channelID).Count(&count).Error
	return count, err
}

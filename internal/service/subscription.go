package service

import (
	"WeTube/internal/data"
	"WeTube/internal/metrics"
	"WeTube/internal/model"
	"WeTube/internal/repository"
	"fmt"
)

type SubscriptionResult struct {
	IsSubscribed    bool
	SubscriberCount int64
}

// ChannelPage 频道页：频道主资料 + 视频 + 订阅状态
type ChannelPage struct {
	Owner           *model.User
	Videos          []model.Video
	VideoCount      int64
	SubscriberCount int64
	IsSubscribed    bool
}

type SubscriptionService interface {
	ToggleSubscription(subscriberID, channelID uint64) (*SubscriptionResult, error)
	// viewerID为0表示匿名
	GetChannel(channelID, viewerID uint64) (*ChannelPage, error)
}

type subscriptionService struct {
	repos *data.Repositories
	uow   data.UnitOfWork
}

func NewSubscriptionService(repos *data.Repositories, uow data.UnitOfWork) SubscriptionService {
	return &subscriptionService{repos: repos, uow: uow}
}

// 订阅切换：1、不能订阅自己 2、频道必须存在 3、在一个事务里切换并重新计数
func (s *subscriptionService) ToggleSubscription(subscriberID, channelID uint64) (*SubscriptionResult, error) {
	if subscriberID == channelID {
		return nil, ErrSelfSubscription
	}
	result := &SubscriptionResult{}
	err := s.uow.Execute(func(repos *data.TransactionalRepositories) error {
		if _, err := repos.UserRepo.FindByID(channelID); err != nil {
			if repository.IsNotFound(err) {
				return fmt.Errorf("%w: 频道不存在", ErrNotFound)
			}
			return err
		}
		subscribed, err := repos.SubscriptionRepo.Exists(subscriberID, channelID)
		if err != nil {
			return err
		}
		if subscribed {
			err = repos.SubscriptionRepo.Delete(subscriberID, channelID)
		} else {
			err = repos.SubscriptionRepo.Create(&model.Subscription{SubscriberID: subscriberID, ChannelID: channelID})
			// 同一用户并发点了两次订阅
			if repository.IsDuplicate(err) {
				err = fmt.Errorf("%w: 已经订阅过该频道", ErrDuplicate)
			}
		}
		if err != nil {
			return err
		}
		result.IsSubscribed = !subscribed
		result.SubscriberCount, err = repos.SubscriptionRepo.CountSubscribers(channelID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if result.IsSubscribed {
		metrics.SubscriptionTogglesTotal.WithLabelValues("subscribe").Inc()
	} else {
		metrics.SubscriptionTogglesTotal.WithLabelValues("unsubscribe").Inc()
	}
	return result, nil
}

func (s *subscriptionService) GetChannel(channelID, viewerID uint64) (*ChannelPage, error) {
	owner, err := s.repos.UserRepo.FindByID(channelID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("%w: 频道不存在", ErrNotFound)
		}
		return nil, err
	}
	page := &ChannelPage{Owner: owner}
	if page.Videos, err = s.repos.VideoRepo.ListByAuthor(channelID); err != nil {
		return nil, err
	}
	page.VideoCount = int64(len(page.Videos))
	if page.SubscriberCount, err = s.repos.SubscriptionRepo.CountSubscribers(channelID); err != nil {
		return nil, err
	}
	if viewerID != 0 && viewerID != channelID {
		if page.IsSubscribed, err = s.repos.SubscriptionRepo.Exists(viewerID, channelID); err != nil {
			return nil, err
		}
	}
	return page, nil
}

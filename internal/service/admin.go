package service

import (
	"WeTube/internal/authz"
	"WeTube/internal/data"
	"WeTube/internal/model"
	"WeTube/internal/repository"
	"WeTube/pkg/logger"
	"context"
	"fmt"
)

const dashboardRecent = 5

type DashboardStats struct {
	TotalUsers       int64
	TotalVideos      int64
	TotalViews       int64
	PendingInquiries int64
	RecentUsers      []model.User
	RecentVideos     []model.Video
}

type AdminUserList struct {
	Users []repository.UserWithCounts
	Total int64
	Page  Page
}

type AdminVideoList struct {
	Videos []repository.VideoWithCounts
	Total  int64
	Page   Page
}

type AdminService interface {
	Dashboard(actor *model.User) (*DashboardStats, error)
	ListUsers(actor *model.User, page int) (*AdminUserList, error)
	ListVideos(actor *model.User, page int) (*AdminVideoList, error)
	DeleteVideo(ctx context.Context, actor *model.User, videoID uint64) error
}

type adminService struct {
	repos      *data.Repositories
	uow        data.UnitOfWork
	authorizer *authz.Authorizer
	publisher  MediaPublisher
	cache      *repository.VideoPageCache
}

func NewAdminService(repos *data.Repositories, uow data.UnitOfWork, authorizer *authz.Authorizer, publisher MediaPublisher, cache *repository.VideoPageCache) AdminService {
	return &adminService{
		repos:      repos,
		uow:        uow,
		authorizer: authorizer,
		publisher:  publisher,
		cache:      cache,
	}
}

func (s *adminService) require(actor *model.User, capability authz.Capability) error {
	if !s.authorizer.Authorize(actor, capability).Allowed() {
		return fmt.Errorf("%w: 需要管理员权限", ErrForbidden)
	}
	return nil
}

// Dashboard 几个统计放在同一个事务里读，数字之间是一致的
func (s *adminService) Dashboard(actor *model.User) (*DashboardStats, error) {
	if err := s.require(actor, authz.AdminAccess); err != nil {
		return nil, err
	}
	stats := &DashboardStats{}
	err := s.uow.Execute(func(repos *data.TransactionalRepositories) error {
		var err error
		if stats.TotalUsers, err = repos.UserRepo.Count(); err != nil {
			return err
		}
		if stats.TotalVideos, err = repos.VideoRepo.Count(); err != nil {
			return err
		}
		if stats.TotalViews, err = repos.VideoRepo.SumViews(); err != nil {
			return err
		}
		if stats.PendingInquiries, err = repos.InquiryRepo.CountPending(); err != nil {
			return err
		}
		if stats.RecentUsers, err = repos.UserRepo.FindRecent(dashboardRecent); err != nil {
			return err
		}
		stats.RecentVideos, err = repos.VideoRepo.FindRecent(dashboardRecent)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *adminService) ListUsers(actor *model.User, page int) (*AdminUserList, error) {
	if err := s.require(actor, authz.AdminAccess); err != nil {
		return nil, err
	}
	p := NewPage(page, AdminPageSize, AdminPageSize, AdminPageSize)
	users, total, err := s.repos.UserRepo.ListWithCounts(p.Offset(), p.Limit)
	if err != nil {
		return nil, err
	}
	return &AdminUserList{Users: users, Total: total, Page: p}, nil
}

func (s *adminService) ListVideos(actor *model.User, page int) (*AdminVideoList, error) {
	if err := s.require(actor, authz.AdminAccess); err != nil {
		return nil, err
	}
	p := NewPage(page, AdminPageSize, AdminPageSize, AdminPageSize)
	videos, total, err := s.repos.VideoRepo.ListWithCounts(p.Offset(), p.Limit)
	if err != nil {
		return nil, err
	}
	return &AdminVideoList{Videos: videos, Total: total, Page: p}, nil
}

// DeleteVideo 物理删除视频和它的全部关联数据，提交后再把文件交给清理队列
func (s *adminService) DeleteVideo(ctx context.Context, actor *model.User, videoID uint64) error {
	if err := s.require(actor, authz.VideoDeleteAny); err != nil {
		return err
	}
	var deleted *model.Video
	err := s.uow.Execute(func(repos *data.TransactionalRepositories) error {
		video, err := repos.VideoRepo.FindByIDForUpdate(videoID)
		if err != nil {
			if repository.IsNotFound(err) {
				return fmt.Errorf("%w: 视频不存在", ErrNotFound)
			}
			return err
		}
		if err := repos.VideoRepo.DeleteCascade(video); err != nil {
			return err
		}
		deleted = video
		return nil
	})
	if err != nil {
		return err
	}

	s.publisher.PublishCleanup(ctx, ReasonVideoDeleted, deleted.VideoKey, deleted.ThumbnailKey)
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.Log.WithError(err).Warn("视频列表缓存失效失败")
	}
	logger.Log.WithField("video_id", videoID).WithField("admin_id", actor.ID).Info("管理员删除了视频")
	return nil
}

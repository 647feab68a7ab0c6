package service

import (
	"WeTube/internal/data"
	"WeTube/internal/metrics"
	"WeTube/internal/model"
	"WeTube/internal/repository"
	"WeTube/internal/storage"
	"WeTube/pkg/logger"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

type CreateVideoInput struct {
	Title       string
	Description string
	Hashtags    []string
	Video       *multipart.FileHeader
	Thumbnail   *multipart.FileHeader
}

// VideoList 一页视频
type VideoList struct {
	Videos []model.Video
	Total  int64
	Page   Page
}

// VideoDetail 视频详情，带上当前用户视角的状态
type VideoDetail struct {
	Video           *model.Video
	IsLiked         bool
	IsSubscribed    bool
	SubscriberCount int64
}

type LikeResult struct {
	IsLiked   bool
	LikeCount uint64
}

type VideoService interface {
	CreateVideo(ctx context.Context, authorID uint64, in CreateVideoInput) (*model.Video, error)
	ListVideos(ctx context.Context, page Page) (*VideoList, error)
	SearchVideos(keyword string, page Page) (*VideoList, error)
	// viewerID为0表示匿名
	GetVideo(videoID, viewerID uint64) (*VideoDetail, error)
	ToggleLike(userID, videoID uint64) (*LikeResult, error)

	History(userID uint64) ([]model.VideoHistory, error)
	LikedVideos(userID uint64) ([]model.Video, error)
	SubscribedVideos(userID uint64) ([]model.Video, error)
}

type videoService struct {
	repos     *data.Repositories
	uow       data.UnitOfWork
	store     storage.ObjectStore
	publisher MediaPublisher
	cache     *repository.VideoPageCache

	// 缓存击穿时，同一页只放一个请求去查库
	sf  singleflight.Group
	now func() time.Time
}

func NewVideoService(repos *data.Repositories, uow data.UnitOfWork, store storage.ObjectStore, publisher MediaPublisher, cache *repository.VideoPageCache) VideoService {
	return &videoService{
		repos:     repos,
		uow:       uow,
		store:     store,
		publisher: publisher,
		cache:     cache,
		now:       time.Now,
	}
}

// 发布视频：1、校验两个文件 2、并行上传 3、在一个事务里解析标签并创建视频 4、写库失败就把已上传的文件交给清理队列
func (s *videoService) CreateVideo(ctx context.Context, authorID uint64, in CreateVideoInput) (*model.Video, error) {
	if in.Video == nil || in.Thumbnail == nil {
		return nil, fmt.Errorf("%w: 视频和缩略图文件都必须上传", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: 标题不能为空", ErrInvalidInput)
	}
	// 先校验再上传，避免一个合法一个不合法时白传一个
	if err := storage.VideoRule.Check(in.Video); err != nil {
		return nil, uploadError(err)
	}
	if err := storage.ThumbnailRule.Check(in.Thumbnail); err != nil {
		return nil, uploadError(err)
	}

	videoObj, thumbObj, err := s.uploadPair(ctx, in.Video, in.Thumbnail)
	if err != nil {
		metrics.VideoUploadsTotal.WithLabelValues("storage_error").Inc()
		return nil, err
	}

	video := &model.Video{
		AuthorID:     authorID,
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		VideoURL:     videoObj.URL,
		VideoKey:     videoObj.Key,
		ThumbnailURL: thumbObj.URL,
		ThumbnailKey: thumbObj.Key,
	}
	err = s.uow.Execute(func(repos *data.TransactionalRepositories) error {
		tags, err := repos.HashtagRepo.FindOrCreate(in.Hashtags)
		if err != nil {
			return err
		}
		video.Hashtags = tags
		return repos.VideoRepo.Create(video)
	})
	if err != nil {
		metrics.VideoUploadsTotal.WithLabelValues("db_error").Inc()
		s.publisher.PublishCleanup(ctx, ReasonUploadRollback, videoObj.Key, thumbObj.Key)
		return nil, err
	}
	metrics.VideoUploadsTotal.WithLabelValues("success").Inc()

	s.invalidateList(ctx)
	return s.repos.VideoRepo.FindByID(video.ID)
}

// uploadPair 两个文件并行上传，任意一个失败就把另一个成功的交给清理队列
func (s *videoService) uploadPair(ctx context.Context, videoFH, thumbFH *multipart.FileHeader) (storage.Object, storage.Object, error) {
	var videoObj, thumbObj storage.Object
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		obj, err := storage.Upload(gctx, s.store, storage.VideoRule, videoFH)
		videoObj = obj
		return err
	})
	g.Go(func() error {
		obj, err := storage.Upload(gctx, s.store, storage.ThumbnailRule, thumbFH)
		thumbObj = obj
		return err
	})
	if err := g.Wait(); err != nil {
		s.publisher.PublishCleanup(ctx, ReasonUploadRollback, videoObj.Key, thumbObj.Key)
		return storage.Object{}, storage.Object{}, uploadError(err)
	}
	return videoObj, thumbObj, nil
}

func (s *videoService) invalidateList(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.Log.WithError(err).Warn("视频列表缓存失效失败")
	}
}

// 视频列表：先读缓存，未命中时用singleflight合并并发回源
func (s *videoService) ListVideos(ctx context.Context, page Page) (*VideoList, error) {
	cached, ok, err := s.cache.Get(ctx, page.Page, page.Limit)
	if err != nil {
		// Redis出错不影响主流程，直接查库
		metrics.VideoListCacheTotal.WithLabelValues("error").Inc()
		logger.Log.WithError(err).Warn("读取视频列表缓存失败")
	}
	if ok {
		metrics.VideoListCacheTotal.WithLabelValues("hit").Inc()
		s.refreshCounters(cached.Videos)
		return &VideoList{Videos: cached.Videos, Total: cached.Total, Page: page}, nil
	}
	if s.cache.Enabled() {
		metrics.VideoListCacheTotal.WithLabelValues("miss").Inc()
	}

	key := fmt.Sprintf("%d:%d", page.Page, page.Limit)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		videos, total, err := s.repos.VideoRepo.ListLatest(page.Offset(), page.Limit)
		if err != nil {
			return nil, err
		}
		result := &repository.VideoPage{Videos: videos, Total: total}
		if err := s.cache.Set(ctx, page.Page, page.Limit, result); err != nil {
			logger.Log.WithError(err).Warn("写入视频列表缓存失败")
		}
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	result := v.(*repository.VideoPage)
	return &VideoList{Videos: result.Videos, Total: result.Total, Page: page}, nil
}

// refreshCounters 缓存只在上传和删除时失效，浏览数和点赞数每次从库里补最新值
func (s *videoService) refreshCounters(videos []model.Video) {
	ids := make([]uint64, 0, len(videos))
	for _, v := range videos {
		ids = append(ids, v.ID)
	}
	counters, err := s.repos.VideoRepo.CountersByIDs(ids)
	if err != nil {
		// 拿不到就用缓存里的旧值
		logger.Log.WithError(err).Warn("刷新视频计数失败")
		return
	}
	for i := range videos {
		if c, ok := counters[videos[i].ID]; ok {
			videos[i].Views = c.Views
			videos[i].LikeCount = c.LikeCount
		}
	}
}

func (s *videoService) SearchVideos(keyword string, page Page) (*VideoList, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, fmt.Errorf("%w: 搜索关键字不能为空", ErrInvalidInput)
	}
	videos, total, err := s.repos.VideoRepo.Search(keyword, page.Offset(), page.Limit)
	if err != nil {
		return nil, err
	}
	return &VideoList{Videos: videos, Total: total, Page: page}, nil
}

// 视频详情：1、浏览数+1（不去重） 2、登录用户写观看记录 3、查点赞、订阅状态
func (s *videoService) GetVideo(videoID, viewerID uint64) (*VideoDetail, error) {
	affected, err := s.repos.VideoRepo.IncrementViews(videoID)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: 视频不存在", ErrNotFound)
	}
	video, err := s.repos.VideoRepo.FindByID(videoID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("%w: 视频不存在", ErrNotFound)
		}
		return nil, err
	}

	detail := &VideoDetail{Video: video}
	detail.SubscriberCount, err = s.repos.SubscriptionRepo.CountSubscribers(video.AuthorID)
	if err != nil {
		return nil, err
	}
	if viewerID == 0 {
		return detail, nil
	}

	if err := s.repos.HistoryRepo.Upsert(viewerID, videoID, s.now()); err != nil {
		// 观看记录写失败不影响看视频
		logger.Log.WithError(err).WithField("user_id", viewerID).WithField("video_id", videoID).Warn("写入观看记录失败")
	}
	if detail.IsLiked, err = s.repos.LikeRepo.Exists(viewerID, videoID); err != nil {
		return nil, err
	}
	if viewerID != video.AuthorID {
		if detail.IsSubscribed, err = s.repos.SubscriptionRepo.Exists(viewerID, video.AuthorID); err != nil {
			return nil, err
		}
	}
	return detail, nil
}

// 点赞切换：在一个事务里先锁住视频行，再判断是否点过赞，点赞记录和计数一起变
func (s *videoService) ToggleLike(userID, videoID uint64) (*LikeResult, error) {
	result := &LikeResult{}
	err := s.uow.Execute(func(repos *data.TransactionalRepositories) error {
		if _, err := repos.VideoRepo.FindByIDForUpdate(videoID); err != nil {
			if repository.IsNotFound(err) {
				return fmt.Errorf("%w: 视频不存在", ErrNotFound)
			}
			return err
		}
		liked, err := repos.LikeRepo.Exists(userID, videoID)
		if err != nil {
			return err
		}
		if liked {
			if err := repos.LikeRepo.Delete(userID, videoID); err != nil {
				return err
			}
			if err := repos.VideoRepo.DecrementLikeCount(videoID); err != nil {
				return err
			}
		} else {
			if err := repos.LikeRepo.Create(&model.VideoLike{UserID: userID, VideoID: videoID}); err != nil {
				return err
			}
			if err := repos.VideoRepo.IncrementLikeCount(videoID); err != nil {
				return err
			}
		}
		// 重新读一次拿到最新计数，还在同一个事务里
		video, err := repos.VideoRepo.FindByIDForUpdate(videoID)
		if err != nil {
			return err
		}
		result.IsLiked = !liked
		result.LikeCount = video.LikeCount
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result.IsLiked {
		metrics.LikeTogglesTotal.WithLabelValues("like").Inc()
	} else {
		metrics.LikeTogglesTotal.WithLabelValues("unlike").Inc()
	}
	return result, nil
}

func (s *videoService) History(userID uint64) ([]model.VideoHistory, error) {
	return s.repos.HistoryRepo.ListByUser(userID)
}

func (s *videoService) LikedVideos(userID uint64) ([]model.Video, error) {
	return s.repos.LikeRepo.ListLikedVideos(userID)
}

func (s *videoService) SubscribedVideos(userID uint64) ([]model.Video, error) {
	return s.repos.VideoRepo.ListBySubscriber(userID)
}

// ParseHashtags 接受JSON数组字符串或逗号分隔的列表，去掉#前缀、空白和重复
func ParseHashtags(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var parts []string
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &parts); err != nil {
			parts = strings.Split(strings.Trim(raw, "[]"), ",")
		}
	} else {
		parts = strings.Split(raw, ",")
	}

	seen := make(map[string]struct{}, len(parts))
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		tag := strings.TrimSpace(strings.Trim(strings.TrimSpace(p), `"`))
		tag = strings.TrimSpace(strings.TrimLeft(tag, "#"))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

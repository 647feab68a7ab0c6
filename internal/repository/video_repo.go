package repository

import (
	"WeTube/internal/model"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VideoWithCounts 管理后台的视频列表行
type VideoWithCounts struct {
	model.Video
	CommentCount int64
}

// VideoCounters 浏览数和点赞数，列表缓存命中后用它覆盖旧值
type VideoCounters struct {
	ID        uint64
	Views     uint64
	LikeCount uint64
}

type VideoRepository interface {
	Create(video *model.Video) error
	FindByID(videoID uint64) (*model.Video, error)
	// 带锁的查找
	FindByIDForUpdate(videoID uint64) (*model.Video, error)
	// 返回影响行数，0说明视频不存在
	IncrementViews(videoID uint64) (int64, error)
	IncrementLikeCount(videoID uint64) error
	DecrementLikeCount(videoID uint64) error

	ListLatest(offset, limit int) ([]model.Video, int64, error)
	Search(keyword string, offset, limit int) ([]model.Video, int64, error)
	ListByAuthor(authorID uint64) ([]model.Video, error)
	// 订阅的频道发布的视频
	ListBySubscriber(subscriberID uint64) ([]model.Video, error)

	// 只查计数列，不存在的ID不会出现在结果里
	CountersByIDs(videoIDs []uint64) (map[uint64]VideoCounters, error)

	Count() (int64, error)
	SumViews() (int64, error)
	FindRecent(limit int) ([]model.Video, error)
	ListWithCounts(offset, limit int) ([]VideoWithCounts, int64, error)
	// 物理删除视频以及点赞、观看记录、评论、标签关联
	DeleteCascade(video *model.Video) error

	WithTx(tx *gorm.DB) VideoRepository
}

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

// WithTx 返回一个新的、使用事务的 videoRepository 实例
func (r *videoRepository) WithTx(tx *gorm.DB) VideoRepository {
	return &videoRepository{db: tx}
}

// Create 连同Hashtags一起写入，Hashtags需要事先解析好（带ID），gorm只会补关联表
func (r *videoRepository) Create(video *model.Video) error {
	return r.db.Omit("Hashtags.*").Create(video).Error
}

// 利用videoID找视频，preload其中的Author和Hashtags
func (r *videoRepository) FindByID(videoID uint64) (*model.Video, error) {
	var video model.Video
	err := r.db.Preload("Author").Preload("Hashtags").First(&video, videoID).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) FindByIDForUpdate(videoID uint64) (*model.Video, error) {
	var video model.Video
	// SELECT * FROM `videos` WHERE `id` = ? LIMIT 1 FOR UPDATE;
	// FOR UPDATE锁的生命周期和事务绑定，会持续到整个Execute包裹的事务结束
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&video, videoID).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) IncrementViews(videoID uint64) (int64, error) {
	// UPDATE `videos` SET `views` = `views` + 1 WHERE id = ?
	result := r.db.Model(&model.Video{}).Where("id = ?", videoID).UpdateColumn("views", gorm.Expr("views + ?", 1))
	return result.RowsAffected, result.Error
}

func (r *videoRepository) IncrementLikeCount(videoID uint64) error {
	// 使用GORM的表达式来执行原子更新：UPDATE `videos` SET `like_count` = `like_count` + 1 WHERE id = ?
	return r.db.Model(&model.Video{}).Where("id = ?", videoID).UpdateColumn("like_count", gorm.Expr("like_count + ?", 1)).Error
}

func (r *videoRepository) DecrementLikeCount(videoID uint64) error {
	// UPDATE `videos` SET `like_count` = `like_count` - 1 WHERE id = ? AND like_count > 0
	return r.db.Model(&model.Video{}).Where("id = ? AND like_count > 0", videoID).UpdateColumn("like_count", gorm.Expr("like_count - ?", 1)).Error
}

// 按时间倒序分页，预加载作者
func (r *videoRepository) ListLatest(offset, limit int) ([]model.Video, int64, error) {
	return r.paginate(r.db.Model(&model.Video{}), offset, limit)
}

// 标题或简介包含关键字，不区分大小写；关键字里的 % 和 _ 按普通字符匹配
func (r *videoRepository) Search(keyword string, offset, limit int) ([]model.Video, int64, error) {
	pattern := "%" + escapeLike(strings.ToLower(keyword)) + "%"
	query := r.db.Model(&model.Video{}).
		Where("(LOWER(title) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!')", pattern, pattern)
	return r.paginate(query, offset, limit)
}

// MySQL字符串里反斜杠本身是转义符，用 ! 作LIKE的转义符三种库写法一致
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (r *videoRepository) paginate(query *gorm.DB, offset, limit int) ([]model.Video, int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var videos []model.Video
	err := query.Session(&gorm.Session{}).
		Preload("Author").
		Order("created_at desc").Order("id desc").
		Offset(offset).Limit(limit).
		Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

func (r *videoRepository) ListByAuthor(authorID uint64) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.Preload("Author").Where("author_id = ?", authorID).Order("created_at desc").Order("id desc").Find(&videos).Error
	return videos, err
}

func (r *videoRepository) ListBySubscriber(subscriberID uint64) ([]model.Video, error) {
	var videos []model.Video
	channels := r.db.Model(&model.Subscription{}).Select("channel_id").Where("subscriber_id = ?", subscriberID)
	err := r.db.Preload("Author").
		Where("author_id IN (?)", channels).
		Order("created_at desc").Order("id desc").
		Find(&videos).Error
	return videos, err
}

func (r *videoRepository) CountersByIDs(videoIDs []uint64) (map[uint64]VideoCounters, error) {
	result := make(map[uint64]VideoCounters, len(videoIDs))
	if len(videoIDs) == 0 {
		return result, nil
	}
	var rows []VideoCounters
	err := r.db.Model(&model.Video{}).
		Select("id, views, like_count").
		Where("id IN ?", videoIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.ID] = row
	}
	return result, nil
}

func (r *videoRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Video{}).Count(&count).Error
	return count, err
}

func (r *videoRepository) SumViews() (int64, error) {
	var sum int64
	err := r.db.Model(&model.Video{}).Select("COALESCE(SUM(views), 0)").Scan(&sum).Error
	return sum, err
}

func (r *videoRepository) FindRecent(limit int) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.Preload("Author").Order("created_at desc").Order("id desc").Limit(limit).Find(&videos).Error
	return videos, err
}

// 管理后台：分页视频列表，带作者和评论数
func (r *videoRepository) ListWithCounts(offset, limit int) ([]VideoWithCounts, int64, error) {
	videos, total, err := r.paginate(r.db.Model(&model.Video{}), offset, limit)
	if err != nil {
		return nil, 0, err
	}
	if len(videos) == 0 {
		return []VideoWithCounts{}, total, nil
	}
	ids := make([]uint64, 0, len(videos))
	for _, v := range videos {
		ids = append(ids, v.ID)
	}
	commentCounts, err := countGroupBy(r.db.Model(&model.Comment{}), "video_id", ids)
	if err != nil {
		return nil, 0, err
	}
	result := make([]VideoWithCounts, 0, len(videos))
	for _, v := range videos {
		result = append(result, VideoWithCounts{Video: v, CommentCount: commentCounts[v.ID]})
	}
	return result, total, nil
}

// DeleteCascade 要放在事务里调用，否则中途失败会留下半删的数据
func (r *videoRepository) DeleteCascade(video *model.Video) error {
	if err := r.db.Where("video_id = ?", video.ID).Delete(&model.VideoLike{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("video_id = ?", video.ID).Delete(&model.VideoHistory{}).Error; err != nil {
		return err
	}
	if err := r.db.Unscoped().Where("video_id = ?", video.ID).Delete(&model.Comment{}).Error; err != nil {
		return err
	}
	if err := r.db.Model(video).Association("Hashtags").Clear(); err != nil {
		return err
	}
	return r.db.Unscoped().Delete(&model.Video{}, video.ID).Error
}

package service

import (
	"WeTube/internal/model"
	"WeTube/internal/repository"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func uploadInput(t *testing.T, title, hashtags string) CreateVideoInput {
	t.Helper()
	return CreateVideoInput{
		Title:       title,
		Description: "desc",
		Hashtags:    ParseHashtags(hashtags),
		Video:       fileHeader(t, "video", "clip.mp4", "video/mp4", []byte("fake-mp4")),
		Thumbnail:   fileHeader(t, "thumbnail", "thumb.jpg", "image/jpeg", []byte("fake-jpg")),
	}
}

func TestVideoService_CreateVideo(t *testing.T) {
	e := newTestEnv(t)
	svc := e.videoService(nil)
	author := e.user(t, "alice", model.RoleUser)

	video, err := svc.CreateVideo(context.Background(), author.ID, uploadInput(t, "First", `["#go", "web", "go"]`))
	if err != nil {
		t.Fatalf("上传失败: %v", err)
	}
	if !strings.HasPrefix(video.VideoKey, "videos/") || !e.store.has(video.VideoKey) {
		t.Errorf("视频文件没有写入存储: %s", video.VideoKey)
	}
	if !strings.HasPrefix(video.ThumbnailKey, "thumbnails/") || !e.store.has(video.ThumbnailKey) {
		t.Errorf("缩略图没有写入存储: %s", video.ThumbnailKey)
	}
	if video.Author.ID != author.ID {
		t.Error("返回的视频应该带作者")
	}
	if len(video.Hashtags) != 2 {
		t.Fatalf("期望2个标签, 实际 %+v", video.Hashtags)
	}

	// 第二个视频复用已有标签
	if _, err := svc.CreateVideo(context.Background(), author.ID, uploadInput(t, "Second", "go")); err != nil {
		t.Fatal(err)
	}
	var tagCount int64
	e.db.Model(&model.Hashtag{}).Count(&tagCount)
	if tagCount != 2 {
		t.Fatalf("标签应该复用, 实际有 %d 个", tagCount)
	}
}

func TestVideoService_CreateVideoValidation(t *testing.T) {
	e := newTestEnv(t)
	svc := e.videoService(nil)
	author := e.user(t, "alice", model.RoleUser)

	missing := uploadInput(t, "t", "")
	missing.Thumbnail = nil
	if _, err := svc.CreateVideo(context.Background(), author.ID, missing); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("缺缩略图应该是ErrInvalidInput, 实际 %v", err)
	}

	badType := uploadInput(t, "t", "")
	badType.Video = fileHeader(t, "video", "clip.avi", "video/x-msvideo", []byte("avi"))
	if _, err := svc.CreateVideo(context.Background(), author.ID, badType); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("不支持的视频格式应该是ErrInvalidInput, 实际 %v", err)
	}
	if len(e.store.objects) != 0 {
		t.Fatal("校验失败时不应该上传任何文件")
	}
}

func TestVideoService_CreateVideoStorageFailure(t *testing.T) {
	e := newTestEnv(t)
	e.store.failPrefix = "thumbnails/"
	svc := e.videoService(nil)
	author := e.user(t, "alice", model.RoleUser)

	_, err := svc.CreateVideo(context.Background(), author.ID, uploadInput(t, "t", ""))
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("期望ErrStorage, 实际 %v", err)
	}
	call, ok := e.publisher.last()
	if !ok || call.Reason != ReasonUploadRollback || len(call.Keys) != 1 || !strings.HasPrefix(call.Keys[0], "videos/") {
		t.Fatalf("已上传的视频文件应该交给清理队列: %+v", call)
	}
	var count int64
	e.db.Model(&model.Video{}).Count(&count)
	if count != 0 {
		t.Fatal("上传失败不应该写库")
	}
}

func TestVideoService_GetVideo(t *testing.T) {
	e := newTestEnv(t)
	svc := e.videoService(nil)
	author := e.user(t, "alice", model.RoleUser)
	viewer := e.user(t, "bob", model.RoleUser)
	video := e.video(t, author.ID, "hello")

	detail, err := svc.GetVideo(video.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	if detail.Video.Views != 1 || detail.IsLiked || detail.IsSubscribed {
		t.Fatalf("匿名访问结果不对: %+v", detail)
	}
	if histories, _ := e.repos.HistoryRepo.ListByUser(viewer.ID); len(histories) != 0 {
		t.Fatal("匿名访问不应该写观看记录")
	}

	if _, err := svc.ToggleLike(viewer.ID, video.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := NewSubscriptionService(e.repos, e.uow).ToggleSubscription(viewer.ID, author.ID); err != nil {
		t.Fatal(err)
	}

	detail, err = svc.GetVideo(video.ID, viewer.ID)
	if err != nil {
		t.Fatal(err)
	}
	if detail.Video.Views != 2 {
		t.Errorf("每次访问都要+1, 实际 %d", detail.Video.Views)
	}
	if !detail.IsLiked || !detail.IsSubscribed || detail.SubscriberCount != 1 {
		t.Errorf("登录用户的状态不对: %+v", detail)
	}
	histories, err := svc.History(viewer.ID)
	if err != nil || len(histories) != 1 || histories[0].VideoID != video.ID {
		t.Fatalf("应该有一条观看记录: %+v %v", histories, err)
	}

	// 作者看自己的视频，浏览数照加
	detail, err = svc.GetVideo(video.ID, author.ID)
	if err != nil {
		t.Fatal(err)
	}
	if detail.Video.Views != 3 || detail.IsSubscribed {
		t.Errorf("作者访问结果不对: %+v", detail)
	}

	if _, err := svc.GetVideo(404, 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("不存在的视频应该是ErrNotFound, 实际 %v", err)
	}
}

func TestVideoService_ToggleLike(t *testing.T) {
	e := newTestEnv(t)
	svc := e.videoService(nil)
	author := e.user(t, "alice", model.RoleUser)
	video := e.video(t, author.ID, "hello")

	first, err := svc.ToggleLike(author.ID, video.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !first.IsLiked || first.LikeCount != 1 {
		t.Fatalf("第一次应该是点赞: %+v", first)
	}
	liked, _ := svc.LikedVideos(author.ID)
	if len(liked) != 1 {
		t.Fatalf("点赞列表应该有1个视频, 实际 %d", len(liked))
	}

	second, err := svc.ToggleLike(author.ID, video.ID)
	if err != nil {
		t.Fatal(err)
	}
	if second.IsLiked || second.LikeCount != 0 {
		t.Fatalf("第二次应该是取消: %+v", second)
	}
	if n, _ := e.repos.LikeRepo.CountByVideo(video.ID); n != 0 {
		t.Fatalf("点赞记录应该被删掉, 实际 %d", n)
	}

	if _, err := svc.ToggleLike(author.ID, 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("不存在的视频应该是ErrNotFound, 实际 %v", err)
	}
}

func TestVideoService_SearchVideos(t *testing.T) {
	e := newTestEnv(t)
	svc := e.videoService(nil)
	author := e.user(t, "alice", model.RoleUser)
	e.video(t, author.ID, "Golang")
	e.video(t, author.ID, "cats")

	if _, err := svc.SearchVideos("  ", NewPage(1, 12, DefaultVideoLimit, MaxVideoLimit)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("空关键字应该是ErrInvalidInput, 实际 %v", err)
	}
	list, err := svc.SearchVideos("golang", NewPage(1, 12, DefaultVideoLimit, MaxVideoLimit))
	if err != nil {
		t.Fatal(err)
	}
	if list.Total != 1 || list.Videos[0].Title != "Golang" {
		t.Fatalf("搜索结果不对: %+v", list)
	}
}

func TestVideoService_ListVideosUsesCache(t *testing.T) {
	e := newTestEnv(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	cache := repository.NewVideoPageCache(rdb)
	svc := e.videoService(cache)
	author := e.user(t, "alice", model.RoleUser)
	e.video(t, author.ID, "one")
	ctx := context.Background()
	page := NewPage(1, 12, DefaultVideoLimit, MaxVideoLimit)

	first, err := svc.ListVideos(ctx, page)
	if err != nil || first.Total != 1 {
		t.Fatalf("第一次查询: %+v %v", first, err)
	}

	// 直接写库绕过了失效，应该还是读到缓存
	e.video(t, author.ID, "two")
	cached, err := svc.ListVideos(ctx, page)
	if err != nil || cached.Total != 1 {
		t.Fatalf("应该命中缓存: %+v %v", cached, err)
	}

	// 走服务上传会让缓存失效
	if _, err := svc.CreateVideo(ctx, author.ID, uploadInput(t, "three", "")); err != nil {
		t.Fatal(err)
	}
	fresh, err := svc.ListVideos(ctx, page)
	if err != nil || fresh.Total != 3 {
		t.Fatalf("上传后应该重新查库: %+v %v", fresh, err)
	}
	if fresh.Videos[0].Title != "three" {
		t.Errorf("最新的应该在最前, 实际 %s", fresh.Videos[0].Title)
	}
}

func TestVideoService_CachedListShowsFreshCounters(t *testing.T) {
	e := newTestEnv(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	svc := e.videoService(repository.NewVideoPageCache(rdb))
	author := e.user(t, "alice", model.RoleUser)
	viewer := e.user(t, "bob", model.RoleUser)
	video := e.video(t, author.ID, "one")
	ctx := context.Background()
	page := NewPage(1, 12, DefaultVideoLimit, MaxVideoLimit)

	if _, err := svc.ListVideos(ctx, page); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if _, err := svc.GetVideo(video.ID, 0); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := svc.ToggleLike(viewer.ID, video.ID); err != nil {
		t.Fatal(err)
	}

	list, err := svc.ListVideos(ctx, page)
	if err != nil {
		t.Fatal(err)
	}
	if len(list.Videos) != 1 {
		t.Fatalf("期望1个视频, 实际 %d", len(list.Videos))
	}
	if got := list.Videos[0]; got.Views != 2 || got.LikeCount != 1 {
		t.Fatalf("缓存命中也应该是最新计数, views=%d likes=%d", got.Views, got.LikeCount)
	}
}

func TestVideoService_SubscribedVideos(t *testing.T) {
	e := newTestEnv(t)
	svc := e.videoService(nil)
	alice := e.user(t, "alice", model.RoleUser)
	bob := e.user(t, "bob", model.RoleUser)
	e.video(t, bob.ID, "bob-video")
	e.video(t, alice.ID, "alice-video")
	if _, err := NewSubscriptionService(e.repos, e.uow).ToggleSubscription(alice.ID, bob.ID); err != nil {
		t.Fatal(err)
	}

	videos, err := svc.SubscribedVideos(alice.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(videos) != 1 || videos[0].Title != "bob-video" {
		t.Fatalf("订阅视频不对: %+v", videos)
	}
}

func TestParseHashtags(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"", nil},
		{`["go","web"]`, []string{"go", "web"}},
		{`["#go", " #go ", "web"]`, []string{"go", "web"}},
		{"go, web ,#tips", []string{"go", "web", "tips"}},
		{"#,  ,", []string{}},
		{`[go, "web"`, []string{"go", "web"}},
	}
	for _, tt := range tests {
		got := ParseHashtags(tt.raw)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseHashtags(%q) = %v, 期望 %v", tt.raw, got, tt.want)
		}
	}
}

func TestPage(t *testing.T) {
	tests := []struct {
		page, limit int
		wantPage    int
		wantLimit   int
	}{
		{0, 0, 1, 12},
		{-3, 5, 1, 5},
		{2, 100, 2, 50},
	}
	for _, tt := range tests {
		p := NewPage(tt.page, tt.limit, DefaultVideoLimit, MaxVideoLimit)
		if p.Page != tt.wantPage || p.Limit != tt.wantLimit {
			t.Errorf("NewPage(%d,%d) = %+v", tt.page, tt.limit, p)
		}
	}
	p := NewPage(3, 10, DefaultPageLimit, MaxVideoLimit)
	if p.Offset() != 20 {
		t.Errorf("Offset 期望20, 实际 %d", p.Offset())
	}
	if p.TotalPages(21) != 3 || p.TotalPages(0) != 0 {
		t.Errorf("TotalPages 不对: %d %d", p.TotalPages(21), p.TotalPages(0))
	}
}

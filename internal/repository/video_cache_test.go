package repository

import (
	"WeTube/internal/model"
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func newTestCache(t *testing.T) (*VideoPageCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewVideoPageCache(rdb), mr
}

func TestVideoPageCache_SetGet(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	if _, hit, err := cache.Get(ctx, 1, 12); hit || err != nil {
		t.Fatalf("空缓存不应该命中: hit=%v err=%v", hit, err)
	}
	page := &VideoPage{Videos: []model.Video{{Title: "hello"}}, Total: 1}
	if err := cache.Set(ctx, 1, 12, page); err != nil {
		t.Fatal(err)
	}
	got, hit, err := cache.Get(ctx, 1, 12)
	if err != nil || !hit {
		t.Fatalf("写入后应该命中: hit=%v err=%v", hit, err)
	}
	if got.Total != 1 || got.Videos[0].Title != "hello" {
		t.Fatalf("缓存内容不对: %+v", got)
	}
	if _, hit, _ := cache.Get(ctx, 2, 12); hit {
		t.Fatal("不同页不应该命中")
	}
}

func TestVideoPageCache_InvalidateBumpsVersion(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, 1, 12, &VideoPage{Total: 3}); err != nil {
		t.Fatal(err)
	}
	if err := cache.Invalidate(ctx); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := cache.Get(ctx, 1, 12); hit {
		t.Fatal("失效后不应该再命中旧版本")
	}
	if v, _ := mr.Get(keyVideoListVersion); v != "1" {
		t.Fatalf("版本号应该是1, 实际 %q", v)
	}
	// 旧key留着等过期
	if !mr.Exists("video:list:v0:1:12") {
		t.Fatal("旧版本的key应该还在")
	}
}

func TestVideoPageCache_Disabled(t *testing.T) {
	var cache *VideoPageCache
	ctx := context.Background()
	if cache.Enabled() {
		t.Fatal("nil缓存应该是关闭的")
	}
	if err := cache.Set(ctx, 1, 12, &VideoPage{}); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := cache.Get(ctx, 1, 12); hit || err != nil {
		t.Fatalf("关闭时不应该命中: hit=%v err=%v", hit, err)
	}
	if err := cache.Invalidate(ctx); err != nil {
		t.Fatal(err)
	}
}

func TestVideoPageCache_RedisDown(t *testing.T) {
	cache, mr := newTestCache(t)
	mr.Close()
	if _, hit, err := cache.Get(context.Background(), 1, 12); hit || err == nil {
		t.Fatalf("Redis挂了应该返回错误且不命中: hit=%v err=%v", hit, err)
	}
}

package repository

import (
	"WeTube/internal/model"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyVideoListVersion = "video:list:version"

// VideoPage 是缓存里存的一页视频
type VideoPage struct {
	Videos []model.Video `json:"videos"`
	Total  int64         `json:"total"`
}

// VideoPageCache 视频列表页缓存。rdb为nil时所有操作都是空操作，调用方不用判断
// 失效不逐个删key，而是把版本号加一，旧版本的key自然过期
type VideoPageCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewVideoPageCache(rdb *redis.Client) *VideoPageCache {
	return &VideoPageCache{rdb: rdb, ttl: time.Minute}
}

func (c *VideoPageCache) Enabled() bool {
	return c != nil && c.rdb != nil
}

func (c *VideoPageCache) version(ctx context.Context) (int64, error) {
	v, err := c.rdb.Get(ctx, keyVideoListVersion).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return v, err
}

func (c *VideoPageCache) keyPage(version int64, page, limit int) string {
	return fmt.Sprintf("video:list:v%d:%d:%d", version, page, limit)
}

// Get 命中返回(page, true)；未命中或Redis出错返回(nil, false)，出错时err非空
func (c *VideoPageCache) Get(ctx context.Context, page, limit int) (*VideoPage, bool, error) {
	if !c.Enabled() {
		return nil, false, nil
	}
	version, err := c.version(ctx)
	if err != nil {
		return nil, false, err
	}
	raw, err := c.rdb.Get(ctx, c.keyPage(version, page, limit)).Bytes()
	if err == redis.Nil {
		return nil, false, nil // 缓存不存在，但是Redis正常工作
	} else if err != nil {
		return nil, false, err
	}
	var result VideoPage
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, false, err
	}
	return &result, true, nil
}

func (c *VideoPageCache) Set(ctx context.Context, page, limit int, result *VideoPage) error {
	if !c.Enabled() {
		return nil
	}
	version, err := c.version(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}
	// 过期时间加上随机性防止缓存雪崩
	expiration := c.ttl + time.Duration(rand.Intn(30))*time.Second
	return c.rdb.Set(ctx, c.keyPage(version, page, limit), raw, expiration).Err()
}

// Invalidate 上传或删除视频后调用
func (c *VideoPageCache) Invalidate(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Incr(ctx, keyVideoListVersion).Err()
}

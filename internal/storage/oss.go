package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/sirupsen/logrus"
	gobreaker "github.com/sony/gobreaker/v2"
)

type OSSConfig struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	Bucket     string
	PublicBase string // CDN或自定义域名，空的话用 https://bucket.endpoint
}

// OSSStore 阿里云OSS，所有调用都走熔断器，OSS挂了的时候快速失败而不是把请求全堵住
type OSSStore struct {
	bucket     *oss.Bucket
	publicBase string
	breaker    *gobreaker.CircuitBreaker[struct{}]
	log        logrus.FieldLogger
}

func NewOSSStore(cfg OSSConfig, log logrus.FieldLogger) (*OSSStore, error) {
	client, err := oss.New(cfg.Endpoint, cfg.AccessKey, cfg.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bucket, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("oss.Bucket(%s): %w", cfg.Bucket, err)
	}

	base := strings.TrimRight(cfg.PublicBase, "/")
	if base == "" {
		host := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "https://"), "http://")
		base = "https://" + cfg.Bucket + "." + host
	}

	return &OSSStore{
		bucket:     bucket,
		publicBase: base,
		breaker:    newBreaker("oss", log),
		log:        log,
	}, nil
}

func newBreaker(name string, log logrus.FieldLogger) *gobreaker.CircuitBreaker[struct{}] {
	return gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithField("breaker", name).Warnf("熔断器状态变化: %s -> %s", from, to)
		},
		// 调用方主动取消不算存储故障
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
}

func (s *OSSStore) execute(fn func() error) error {
	_, err := s.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return err
}

func (s *OSSStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	err := s.execute(func() error {
		return s.bucket.PutObject(key, r,
			oss.WithContext(ctx),
			oss.ContentType(contentType),
			oss.ContentLength(size),
			oss.ContentDisposition("inline"),
			oss.CacheControl("public, max-age=31536000, immutable"),
		)
	})
	if err != nil {
		return "", fmt.Errorf("上传 %s 失败: %w", key, err)
	}
	return s.publicBase + "/" + key, nil
}

// Delete OSS删除不存在的key也返回成功，所以重复消费清理消息没问题
func (s *OSSStore) Delete(ctx context.Context, key string) error {
	return s.execute(func() error {
		return s.bucket.DeleteObject(key, oss.WithContext(ctx))
	})
}

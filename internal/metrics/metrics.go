// Package metrics 暴露给 /metrics 的prometheus指标
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wetube_http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wetube_http_request_duration_seconds",
			Help:    "HTTP请求耗时",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	VideoUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wetube_video_uploads_total",
			Help: "视频上传次数，按结果区分",
		},
		[]string{"result"},
	)

	LikeTogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wetube_like_toggles_total",
			Help: "点赞切换次数，action=like|unlike",
		},
		[]string{"action"},
	)

	SubscriptionTogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wetube_subscription_toggles_total",
			Help: "订阅切换次数，action=subscribe|unsubscribe",
		},
		[]string{"action"},
	)

	SignupsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wetube_signups_total",
		Help: "注册成功的用户数",
	})

	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wetube_logins_total",
			Help: "登录次数，result=success|failure",
		},
		[]string{"result"},
	)

	VideoListCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wetube_video_list_cache_total",
			Help: "视频列表缓存命中情况，result=hit|miss|error",
		},
		[]string{"result"},
	)

	MediaCleanupTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wetube_media_cleanup_total",
			Help: "媒体清理消息，按阶段和结果区分",
		},
		[]string{"stage", "result"},
	)
)

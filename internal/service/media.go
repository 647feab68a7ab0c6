package service

import (
	"WeTube/internal/metrics"
	"WeTube/internal/storage"
	"WeTube/pkg/logger"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

const (
	// 遵循：项目名.业务领域.实体/功能
	QueueMediaCleanup = "wetube.media_cleanup.queue"

	ReasonUploadRollback = "upload_rollback"
	ReasonProfileReplace = "profile_replace"
	ReasonVideoDeleted   = "video_deleted"
)

// MediaCleanupMessage 需要从对象存储删除的key
type MediaCleanupMessage struct {
	Keys      []string  `json:"keys"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// MediaPublisher 把孤儿文件交给消费者异步删除，发布失败只记日志，不影响主流程
type MediaPublisher interface {
	PublishCleanup(ctx context.Context, reason string, keys ...string)
}

// NopMediaPublisher 没有配置RabbitMQ时使用
type NopMediaPublisher struct{}

func (NopMediaPublisher) PublishCleanup(_ context.Context, reason string, keys ...string) {
	if len(nonEmpty(keys)) > 0 {
		logger.Log.WithField("reason", reason).WithField("keys", keys).Warn("未启用消息队列，跳过对象清理")
	}
}

type amqpMediaPublisher struct {
	conn *amqp.Connection
}

// NewAMQPMediaPublisher conn需要事先声明好队列
func NewAMQPMediaPublisher(conn *amqp.Connection) MediaPublisher {
	return &amqpMediaPublisher{conn: conn}
}

func (p *amqpMediaPublisher) PublishCleanup(_ context.Context, reason string, keys ...string) {
	keys = nonEmpty(keys)
	if len(keys) == 0 {
		return
	}
	logCtx := logger.Log.WithField("reason", reason).WithField("keys", keys)
	if err := p.publish(MediaCleanupMessage{Keys: keys, Reason: reason, CreatedAt: time.Now()}); err != nil {
		// 文件会留在存储里，需要人工核对
		logCtx.WithError(err).Error("【严重】媒体清理消息投递失败")
		metrics.MediaCleanupTotal.WithLabelValues("publish", "failure").Inc()
		return
	}
	metrics.MediaCleanupTotal.WithLabelValues("publish", "success").Inc()
	logCtx.Info("媒体清理消息已投递")
}

// 为每一个消息建立一个单独的channel，消息之间互不影响
func (p *amqpMediaPublisher) publish(msg MediaCleanupMessage) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return ch.Publish(
		"",                // exchange默认交换机
		QueueMediaCleanup, // routing key
		false,             // mandatory
		false,             // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // 确保消息持久化
		})
}

func nonEmpty(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}

// CleanupOutcome 消费者根据它决定Ack还是Nack
type CleanupOutcome int

const (
	CleanupDone    CleanupOutcome = iota // 全部删除成功，Ack
	CleanupDiscard                       // 消息本身是坏的，重试也没用，Ack
	CleanupRetry                         // 存储出错，Nack并重新入队
)

// HandleCleanupMessage 逐个删除消息里的key，删除是幂等的，重新入队后全部重删也没关系
func HandleCleanupMessage(ctx context.Context, store storage.ObjectStore, body []byte) (CleanupOutcome, error) {
	var msg MediaCleanupMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		metrics.MediaCleanupTotal.WithLabelValues("consume", "discard").Inc()
		return CleanupDiscard, fmt.Errorf("消息JSON解析失败: %w", err)
	}
	for _, key := range nonEmpty(msg.Keys) {
		if err := store.Delete(ctx, key); err != nil {
			metrics.MediaCleanupTotal.WithLabelValues("consume", "failure").Inc()
			return CleanupRetry, fmt.Errorf("删除 %s 失败: %w", key, err)
		}
	}
	metrics.MediaCleanupTotal.WithLabelValues("consume", "success").Inc()
	return CleanupDone, nil
}

package main

import (
	"WeTube/internal/config"
	"WeTube/internal/service"
	"WeTube/internal/storage"
	"WeTube/pkg/logger"
	"WeTube/pkg/rabbitmq"
	"context"
	"log"
	"time"

	"github.com/streadway/amqp"
)

// 消费者进程：从RabbitMQ取媒体清理消息，把孤儿文件从对象存储里删掉
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}
	logger.InitLogger(cfg.Log.Level, cfg.Log.File)

	// 连接RabbitMQ
	rabbitMQConn, err := rabbitmq.InitRabbitMQ(cfg.AMQP.URL)
	if err != nil {
		logger.Log.Fatalf("消费者无法连接到RabbitMQ: %v", err)
	}
	defer rabbitMQConn.Close()
	if err := rabbitmq.DeclareDurableQueue(rabbitMQConn, service.QueueMediaCleanup); err != nil {
		logger.Log.Fatalf("声明队列失败: %v", err)
	}

	// 和API进程用同一套存储配置，本地存储时两个进程要共享uploads目录
	store, _, err := storage.Open(storage.OSSConfig{
		Endpoint:   cfg.OSS.Endpoint,
		AccessKey:  cfg.OSS.AccessKey,
		SecretKey:  cfg.OSS.SecretKey,
		Bucket:     cfg.OSS.Bucket,
		PublicBase: cfg.OSS.PublicBase,
	}, cfg.OSSEnabled(), "uploads", logger.Log)
	if err != nil {
		logger.Log.Fatalf("初始化对象存储失败: %v", err)
	}

	consumeMediaCleanup(rabbitMQConn, store)
}

// 媒体清理消费者：1、通过mq的TCP连接创建channel 2、注册消费者 3、逐条删除文件 4、按结果Ack/Nack
func consumeMediaCleanup(conn *amqp.Connection, store storage.ObjectStore) {
	ch, err := conn.Channel()
	if err != nil {
		logger.Log.Fatalf("无法打开Channel: %v", err)
	}
	defer ch.Close()

	// 一次最多拿10条未确认的消息，删除慢的时候不会把消息全囤在这个进程里
	if err := ch.Qos(10, 0, false); err != nil {
		logger.Log.Fatalf("设置Qos失败: %v", err)
	}

	msgs, err := ch.Consume(
		service.QueueMediaCleanup, // queue
		"",                        // consumer
		false,                     // auto-ack: 删完再手动确认
		false,                     // exclusive
		false,                     // no-local
		false,                     // no-wait
		nil,                       // args
	)
	if err != nil {
		logger.Log.Fatalf("无法注册媒体清理消费者: %v", err)
	}
	forever := make(chan bool)

	go func() {
		for d := range msgs {
			logCtx := logger.Log.WithField("body", string(d.Body)).WithField("redelivered", d.Redelivered)
			logCtx.Info("收到一条媒体清理消息")

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			outcome, err := service.HandleCleanupMessage(ctx, store, d.Body)
			cancel()

			switch outcome {
			case service.CleanupDiscard:
				// 永久性错误，Ack掉
				logCtx.WithError(err).Error("坏消息，直接丢弃")
				d.Ack(false)
			case service.CleanupRetry:
				logCtx.WithError(err).Error("删除文件失败，将进行重试")
				d.Nack(false, true)
			default:
				logCtx.Info("媒体文件已清理")
				d.Ack(false)
			}
		}
	}()
	logger.Log.Info(" [*] 等待媒体清理消息中. 按 CTRL+C 退出")
	// 没有发送者，这会阻止main函数退出
	<-forever
}

package main

import (
	"WeTube/internal/auth"
	"WeTube/internal/authz"
	"WeTube/internal/config"
	"WeTube/internal/data"
	"WeTube/internal/database"
	"WeTube/internal/handler"
	"WeTube/internal/middleware"
	"WeTube/internal/repository"
	"WeTube/internal/router"
	"WeTube/internal/service"
	"WeTube/internal/storage"
	"WeTube/pkg/logger"
	"WeTube/pkg/rabbitmq"
	"WeTube/pkg/redis"
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	// .env -> 默认值 -> 环境变量
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}
	// 初始化logger
	logger.InitLogger(cfg.Log.Level, cfg.Log.File)
	gin.SetMode(cfg.App.Mode)

	db, err := database.Open(cfg.DB)
	if err != nil {
		logger.Log.Fatalf("无法连接到数据库: %v", err)
	}
	logger.Log.WithField("driver", cfg.DB.Driver).Info("数据库连接并迁移成功")

	// Redis只用来缓存视频列表，没开就直接查库
	var pageCache *repository.VideoPageCache
	if cfg.Redis.Enabled {
		redisClient, err := redis.InitRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Log.Fatalf("无法连接到Redis: %v", err)
		}
		defer redisClient.Close()
		pageCache = repository.NewVideoPageCache(redisClient)
		logger.Log.Info("Redis连接成功")
	}

	// RabbitMQ只承载媒体文件清理，没开就不清理
	var publisher service.MediaPublisher = service.NopMediaPublisher{}
	if cfg.AMQP.Enabled {
		rabbitMQConn, err := rabbitmq.InitRabbitMQ(cfg.AMQP.URL)
		if err != nil {
			logger.Log.Fatalf("无法连接到RabbitMQ: %v", err)
		}
		defer rabbitMQConn.Close() // 确保程序退出时关闭连接
		if err := rabbitmq.DeclareDurableQueue(rabbitMQConn, service.QueueMediaCleanup); err != nil {
			logger.Log.Fatalf("声明队列失败: %v", err)
		}
		publisher = service.NewAMQPMediaPublisher(rabbitMQConn)
		logger.Log.Info("RabbitMQ连接成功")
	}

	store, uploadsDir, err := storage.Open(storage.OSSConfig{
		Endpoint:   cfg.OSS.Endpoint,
		AccessKey:  cfg.OSS.AccessKey,
		SecretKey:  cfg.OSS.SecretKey,
		Bucket:     cfg.OSS.Bucket,
		PublicBase: cfg.OSS.PublicBase,
	}, cfg.OSSEnabled(), "uploads", logger.Log)
	if err != nil {
		logger.Log.Fatalf("初始化对象存储失败: %v", err)
	}

	authorizer := authz.MustNew()
	if err := middleware.RegisterValidators(); err != nil {
		logger.Log.Fatalf("注册校验器失败: %v", err)
	}

	repos := data.NewRepositories(db)
	uow := data.NewUnitOfWork(db, repos)
	tokens := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.TTL)
	resolver := auth.NewResolver(tokens, repos.UserRepo)
	authLimiter := middleware.NewIPRateLimiter(cfg.Rate.LoginPerMinute)
	authLimiter.StartCleanup(time.Minute)
	defer authLimiter.Stop()

	userService := service.NewUserService(repos.UserRepo, tokens, store, publisher)
	videoService := service.NewVideoService(repos, uow, store, publisher, pageCache)
	commentService := service.NewCommentService(repos.CommentRepo, repos.VideoRepo, authorizer)
	subscriptionService := service.NewSubscriptionService(repos, uow)
	noticeService := service.NewNoticeService(repos.NoticeRepo, authorizer)
	inquiryService := service.NewInquiryService(repos.InquiryRepo, uow, authorizer)
	adminService := service.NewAdminService(repos, uow, authorizer, publisher, pageCache)

	r := router.SetupRouter(router.Options{
		ClientKey:   cfg.App.ClientKey,
		Resolver:    resolver,
		Authorizer:  authorizer,
		AuthLimiter: authLimiter,
		UploadsDir:  uploadsDir,
	}, router.Handlers{
		User:    handler.NewUserHandler(userService),
		Video:   handler.NewVideoHandler(videoService),
		Comment: handler.NewCommentHandler(commentService),
		Channel: handler.NewChannelHandler(subscriptionService),
		Notice:  handler.NewNoticeHandler(noticeService),
		Inquiry: handler.NewInquiryHandler(inquiryService),
		Admin:   handler.NewAdminHandler(adminService),
	})

	logger.Log.Printf("服务器将在: %s端口启动", cfg.App.Port)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		logger.Log.Fatalf("服务器启动失败: %v", err)
	}
}

package router

import (
	"WeTube/internal/auth"
	"WeTube/internal/authz"
	"WeTube/internal/handler"
	"WeTube/internal/middleware"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "WeTube/internal/docs"
)

type Handlers struct {
	User    handler.UserHandler
	Video   handler.VideoHandler
	Comment handler.CommentHandler
	Channel handler.ChannelHandler
	Notice  handler.NoticeHandler
	Inquiry handler.InquiryHandler
	Admin   handler.AdminHandler
}

type Options struct {
	ClientKey  string
	Resolver   *auth.Resolver
	Authorizer *authz.Authorizer

	// 登录注册限流
	AuthLimiter *middleware.IPRateLimiter

	// 非空时在 /uploads 下直接提供本地存储的文件
	UploadsDir string
}

func SetupRouter(opts Options, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.Metrics())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderClientKey},
		MaxAge:          12 * time.Hour,
	}))
	r.Use(middleware.ClientKey(opts.ClientKey, "/api-docs", "/uploads", "/metrics", "/ping"))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/api-docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/api-docs/doc.json"))))
	if opts.UploadsDir != "" {
		r.Static("/uploads", opts.UploadsDir)
	}

	requireAuth := middleware.RequireAuth(opts.Resolver)
	optionalAuth := middleware.OptionalAuth(opts.Resolver)
	limiter := opts.AuthLimiter
	if limiter == nil {
		limiter = middleware.NewIPRateLimiter(0)
	}

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", limiter.Middleware(), h.User.Signup)
			authGroup.POST("/login", limiter.Middleware(), h.User.Login)
			authGroup.POST("/check-username", h.User.CheckUsername)
			authGroup.POST("/check-nickname", h.User.CheckNickname)
			authGroup.PATCH("/profile", requireAuth, h.User.UpdateProfile)
			authGroup.GET("/me", requireAuth, h.User.GetProfile)
		}

		videoGroup := api.Group("/videos")
		{
			videoGroup.GET("", h.Video.GetVideos)
			videoGroup.POST("", requireAuth, h.Video.CreateVideo)
			videoGroup.GET("/search", h.Video.SearchVideos)
			videoGroup.GET("/history", requireAuth, h.Video.GetHistory)
			videoGroup.GET("/liked", requireAuth, h.Video.GetLikedVideos)
			videoGroup.GET("/subscribed", requireAuth, h.Video.GetSubscribedVideos)
			videoGroup.GET("/:id", optionalAuth, h.Video.GetVideoByID)
			videoGroup.POST("/:id/like", requireAuth, h.Video.ToggleLike)
			videoGroup.GET("/:id/comments", h.Comment.GetComments)
			videoGroup.POST("/:id/comments", requireAuth, h.Comment.CreateComment)
		}

		api.DELETE("/comments/:id", requireAuth, h.Comment.DeleteComment)
		api.POST("/subscriptions/:channelId", requireAuth, h.Channel.ToggleSubscription)
		api.GET("/channels/:id", optionalAuth, h.Channel.GetChannel)

		noticeGroup := api.Group("/notices")
		{
			canWrite := middleware.RequireCapability(opts.Authorizer, authz.NoticeWrite)
			noticeGroup.GET("", h.Notice.List)
			noticeGroup.GET("/:id", h.Notice.Get)
			noticeGroup.POST("", requireAuth, canWrite, h.Notice.Create)
			noticeGroup.PATCH("/:id", requireAuth, canWrite, h.Notice.Update)
			noticeGroup.DELETE("/:id", requireAuth, canWrite, h.Notice.Delete)
		}

		inquiryGroup := api.Group("/inquiries")
		inquiryGroup.Use(requireAuth)
		{
			canAnswer := middleware.RequireCapability(opts.Authorizer, authz.InquiryAnswer)
			inquiryGroup.POST("", h.Inquiry.Create)
			inquiryGroup.GET("", h.Inquiry.ListMine)
			inquiryGroup.GET("/all", middleware.RequireCapability(opts.Authorizer, authz.InquiryListAll), h.Inquiry.ListAll)
			inquiryGroup.GET("/:id", h.Inquiry.Get)
			inquiryGroup.PATCH("/:id/answer", canAnswer, h.Inquiry.Answer)
			inquiryGroup.DELETE("/:id/answer", canAnswer, h.Inquiry.ClearAnswer)
		}

		adminGroup := api.Group("/admin")
		adminGroup.Use(requireAuth, middleware.RequireCapability(opts.Authorizer, authz.AdminAccess))
		{
			adminGroup.GET("/stats", h.Admin.Dashboard)
			adminGroup.GET("/users", h.Admin.ListUsers)
			adminGroup.GET("/videos", h.Admin.ListVideos)
			adminGroup.DELETE("/videos/:id", h.Admin.DeleteVideo)
		}
	}

	return r
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qs3c/blog_web_server/config"
	"github.com/qs3c/blog_web_server/internal/api"
	"github.com/qs3c/blog_web_server/internal/api/handler"
	"github.com/qs3c/blog_web_server/internal/backend"
	"github.com/qs3c/blog_web_server/internal/database"
	"github.com/qs3c/blog_web_server/internal/pkg/cron"
	"github.com/qs3c/blog_web_server/internal/pkg/logger"
	"github.com/qs3c/blog_web_server/internal/pkg/oss"
	"github.com/qs3c/blog_web_server/internal/pkg/pubsub"
	"github.com/qs3c/blog_web_server/internal/pkg/queue"
	"github.com/qs3c/blog_web_server/internal/pkg/ws"
	"github.com/qs3c/blog_web_server/internal/repository"
	"github.com/qs3c/blog_web_server/internal/service"
	"github.com/qs3c/blog_web_server/internal/web"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Server.Mode)
	slog.SetDefault(log)

	// 初始化数据库（后台操作记录）
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	log.Info("database connected")

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Error("failed to connect redis", "error", err)
		os.Exit(1)
	}
	log.Info("redis connected")

	// 初始化 OSS（可选，未配置时图片交给后端保存）
	var images service.ImageStore
	if cfg.OSS.Enabled() {
		ossClient, err := oss.NewClient(&cfg.OSS)
		if err != nil {
			log.Warn("failed to init oss client, falling back to backend uploads", "error", err)
		} else {
			images = ossClient
			log.Info("oss client initialized")
		}
	}

	client := backend.New(&cfg.Backend)
	importQueue := queue.NewQueue(rdb, cfg.Queue.ImportQueue)
	publisher := pubsub.NewPublisher(rdb)
	hub := ws.NewHub(log)

	// 初始化 Repository 和 Service
	activityRepo := repository.NewActivityRepository(db)
	activityService := service.NewActivityService(activityRepo, publisher)
	commentService := service.NewCommentService(client, activityService, cfg)
	categoryService := service.NewCategoryService(client, activityService)
	marketingService := service.NewMarketingService(client, activityService)
	seoService := service.NewSEOService(client, activityService, cfg)
	analyticsService := service.NewAnalyticsService(client)
	notificationService := service.NewNotificationService(client)
	blogService := service.NewBlogService(client, commentService, categoryService, marketingService, seoService, cfg)

	// 初始化 Handler
	view := handler.NewView(cfg)
	handlers := &api.Handlers{
		View:        view,
		Blog:        handler.NewBlogHandler(view, blogService, commentService, service.NewNewsletterService(client)),
		Auth:        handler.NewAuthHandler(view, service.NewAuthService(client, cfg), cfg.Session),
		Admin:       handler.NewAdminHandler(view, analyticsService, activityService),
		Post:        handler.NewPostHandler(service.NewPostService(client, activityService)),
		Category:    handler.NewCategoryHandler(categoryService),
		Tag:         handler.NewTagHandler(service.NewTagService(client, activityService)),
		Publication: handler.NewPublicationHandler(marketingService),
		User:        handler.NewUserHandler(service.NewUserService(client, activityService)),
		Site:        handler.NewSiteHandler(seoService, analyticsService, notificationService),
		Comment:     handler.NewCommentHandler(commentService),
		Upload:      handler.NewUploadHandler(service.NewUploadService(client, images, importQueue, activityService, cfg)),
		Activity:    handler.NewActivityHandler(activityService),
		WebSocket:   handler.NewWebSocketHandler(hub, cfg.CORS),
	}

	tmpl, err := web.Templates()
	if err != nil {
		log.Error("failed to parse templates", "error", err)
		os.Exit(1)
	}
	router := api.NewRouter(handlers, tmpl, web.Static(), log, cfg)
	engine := router.Setup()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// redis 上的刷新和导入结果转发给在线的后台页面
	go func() {
		err := pubsub.NewSubscriber(rdb).Subscribe(ctx, hub.Relay())
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Error("event subscription stopped", "error", err)
		}
	}()

	// 定时任务：通知轮询 + 清理
	cronService := cron.NewService(hub, notificationService, activityService, cfg, log)
	cronService.Start()
	defer cronService.Stop()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	log.Info("server stopped")
}

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/qs3c/blog_web_server/config"
	"github.com/qs3c/blog_web_server/internal/backend"
	"github.com/qs3c/blog_web_server/internal/database"
	"github.com/qs3c/blog_web_server/internal/pkg/logger"
	"github.com/qs3c/blog_web_server/internal/pkg/pubsub"
	"github.com/qs3c/blog_web_server/internal/pkg/queue"
	"github.com/qs3c/blog_web_server/internal/repository"
	"github.com/qs3c/blog_web_server/internal/service"
	"github.com/qs3c/blog_web_server/internal/worker"
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

	// 初始化数据库
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

	// 初始化 Queue 和 Pub/Sub
	importQueue := queue.NewQueue(rdb, cfg.Queue.ImportQueue)
	publisher := pubsub.NewPublisher(rdb)
	activityService := service.NewActivityService(repository.NewActivityRepository(db), publisher)

	processor := worker.NewProcessor(backend.New(&cfg.Backend), publisher, activityService, log)

	// 创建 context 用于优雅关闭
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	workers := cfg.Queue.MaxWorkers
	if workers <= 0 {
		workers = 1
	}
	log.Info("worker started", "max_workers", workers, "queue", cfg.Queue.ImportQueue)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			wlog := log.With("worker", workerID)
			for {
				select {
				case <-ctx.Done():
					wlog.Info("worker shutting down")
					return
				default:
				}

				// 从队列获取任务
				job, err := importQueue.Pop(ctx, 5*time.Second)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					wlog.Error("failed to pop job", "error", err)
					continue
				}
				if job == nil {
					continue // 超时，继续等待
				}

				wlog.Info("processing import", "job_id", job.JobID, "user_id", job.UserID)
				if err := processor.Process(ctx, job); err != nil {
					wlog.Warn("import job failed", "job_id", job.JobID, "error", err)
				}
			}
		}(i)
	}

	<-ctx.Done()
	wg.Wait()
	log.Info("worker shutdown complete")
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/qs3c/blog_web_server/config"
	"github.com/qs3c/blog_web_server/internal/database"
	"github.com/qs3c/blog_web_server/internal/pkg/cron"
	"github.com/qs3c/blog_web_server/internal/pkg/logger"
	"github.com/qs3c/blog_web_server/internal/repository"
	"github.com/qs3c/blog_web_server/internal/service"
)

var (
	dryRun          = flag.Bool("dry-run", true, "Dry run mode, don't actually delete anything")
	uploadExpire    = flag.Int("upload-expire", 0, "Hours to keep import files (0 = use config)")
	retentionDays   = flag.Int("retention-days", 0, "Days to keep activity rows (0 = use config)")
	cleanUploads    = flag.Bool("clean-uploads", true, "Clean expired import files")
	cleanActivities = flag.Bool("clean-activities", true, "Prune activity rows past retention")
)

func main() {
	flag.Parse()

	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Server.Mode)
	log.Info("starting cleanup task", "dry_run", *dryRun)

	expireHours := cfg.Upload.ExpireHours
	if *uploadExpire > 0 {
		expireHours = *uploadExpire
	}
	retention := cfg.Activity.RetentionDays
	if *retentionDays > 0 {
		retention = *retentionDays
	}

	// 1. 清理过期的导入文件
	if *cleanUploads {
		count, size := cron.CleanupTempFiles(cfg.Upload.TempDir, time.Duration(expireHours)*time.Hour, *dryRun, log)
		log.Info("import files", "matched", count, "size", formatSize(size))
	}

	// 2. 清理过期的操作记录
	if *cleanActivities {
		db, err := database.NewMySQL(&cfg.Database)
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		activityService := service.NewActivityService(repository.NewActivityRepository(db), nil)

		n, err := activityService.Prune(context.Background(), retention, *dryRun)
		if err != nil {
			log.Error("failed to prune activities", "error", err)
			os.Exit(1)
		}
		log.Info("activity rows", "matched", n, "retention_days", retention)
	}

	if *dryRun {
		log.Info("dry run mode, nothing was deleted; run with -dry-run=false to delete")
	} else {
		log.Info("cleanup completed")
	}
}

// formatSize 格式化文件大小
func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

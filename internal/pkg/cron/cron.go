package cron

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/qs3c/blog_web_server/config"
	"github.com/qs3c/blog_web_server/internal/backend"
	"github.com/qs3c/blog_web_server/internal/model"
	"github.com/qs3c/blog_web_server/internal/pkg/logger"
	"github.com/qs3c/blog_web_server/internal/pkg/session"
	"github.com/qs3c/blog_web_server/internal/pkg/ws"
)

// Hub 在线后台用户
type Hub interface {
	Users() map[int64]string
	SendToUser(userID int64, msg *ws.Message) error
}

type NotificationSource interface {
	Unread(ctx context.Context) ([]model.Notification, error)
}

type ActivityPruner interface {
	Prune(ctx context.Context, retentionDays int, dryRun bool) (int64, error)
}

type Service struct {
	hub           Hub
	notifications NotificationSource
	activity      ActivityPruner
	cfg           *config.Config
	logger        *slog.Logger
	stopChan      chan struct{}
	stopOnce      sync.Once
}

func NewService(
	hub Hub,
	notifications NotificationSource,
	activity ActivityPruner,
	cfg *config.Config,
	log *slog.Logger,
) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		hub:           hub,
		notifications: notifications,
		activity:      activity,
		cfg:           cfg,
		logger:        log,
		stopChan:      make(chan struct{}),
	}
}

// Start 启动定时任务
func (s *Service) Start() {
	go s.runNotificationPoll()
	go s.runCleanup()
	s.logger.Info("cron service started",
		"poll_interval", s.cfg.Notification.PollInterval())
}

// Stop 停止定时任务
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
		s.logger.Info("cron service stopped")
	})
}

// runNotificationPoll 固定间隔轮询，不退避不抖动
func (s *Service) runNotificationPoll() {
	ticker := time.NewTicker(s.cfg.Notification.PollInterval())
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.PollNotifications(context.Background())
		}
	}
}

// PollNotifications 为每个在线用户拉取未读通知并推送，返回推送的用户数
func (s *Service) PollNotifications(ctx context.Context) int {
	if s.hub == nil || s.notifications == nil {
		return 0
	}

	sent := 0
	for userID, token := range s.hub.Users() {
		userCtx := session.WithSession(ctx, &session.Session{Token: token, UserID: userID})
		userCtx = logger.WithLogger(userCtx, s.logger.With("user_id", userID))

		items, err := s.notifications.Unread(userCtx)
		if err != nil {
			if errors.Is(err, backend.ErrUnauthorized) {
				// token 过期，等页面刷新后重新登录
				s.hub.SendToUser(userID, &ws.Message{Type: ws.TypeSessionExpired})
				continue
			}
			s.logger.Warn("notification poll failed", "user_id", userID, "error", err)
			continue
		}

		err = s.hub.SendToUser(userID, &ws.Message{
			Type: ws.TypeNotifications,
			Data: map[string]interface{}{
				"unread": len(items),
				"items":  items,
			},
		})
		if err != nil {
			s.logger.Warn("notification push failed", "user_id", userID, "error", err)
			continue
		}
		sent++
	}
	return sent
}

// runCleanup 每小时执行一次清理
func (s *Service) runCleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.Cleanup(context.Background())
		}
	}
}

// Cleanup 清理过期的导入暂存文件和超过保留期的操作记录
func (s *Service) Cleanup(ctx context.Context) {
	expireHours := s.cfg.Upload.ExpireHours
	if expireHours <= 0 {
		expireHours = 1
	}

	files, _ := CleanupTempFiles(s.cfg.Upload.TempDir, time.Duration(expireHours)*time.Hour, false, s.logger)

	var pruned int64
	if s.activity != nil {
		var err error
		pruned, err = s.activity.Prune(ctx, s.cfg.Activity.RetentionDays, false)
		if err != nil {
			s.logger.Error("activity prune failed", "error", err)
		}
	}

	if files > 0 || pruned > 0 {
		s.logger.Info("cleanup summary", "import_files", files, "activities", pruned)
	}
}

// CleanupTempFiles 删除 dir 下修改时间早于 expire 的文件，返回文件数和字节数
func CleanupTempFiles(dir string, expire time.Duration, dryRun bool, log *slog.Logger) (int, int64) {
	if dir == "" {
		return 0, 0
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("cleanup: failed to read dir", "dir", dir, "error", err)
		}
		return 0, 0
	}

	count := 0
	var size int64
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) <= expire {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if !dryRun {
			if err := os.Remove(path); err != nil {
				log.Warn("cleanup: failed to remove", "path", path, "error", err)
				continue
			}
		}
		count++
		size += info.Size()
	}
	return count, size
}

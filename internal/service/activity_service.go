package service

import (
	"context"
	"fmt"
	"time"

	"github.com/qs3c/blog_web_server/internal/model"
	"github.com/qs3c/blog_web_server/internal/pkg/logger"
	"github.com/qs3c/blog_web_server/internal/pkg/pagination"
	"github.com/qs3c/blog_web_server/internal/pkg/pubsub"
	"github.com/qs3c/blog_web_server/internal/pkg/session"
	"github.com/qs3c/blog_web_server/internal/repository"
)

// RefreshPublisher 通知其他打开的后台页面重新拉取数据
type RefreshPublisher interface {
	PublishRefresh(ctx context.Context, msg *pubsub.RefreshMessage) error
}

type ActivityService struct {
	repo      *repository.ActivityRepository
	publisher RefreshPublisher
}

func NewActivityService(repo *repository.ActivityRepository, publisher RefreshPublisher) *ActivityService {
	return &ActivityService{
		repo:      repo,
		publisher: publisher,
	}
}

// Record 记录一次后台变更并广播刷新事件，失败只记日志
func (s *ActivityService) Record(ctx context.Context, action, resource string, resourceID int64, detail string) {
	log := logger.FromContext(ctx)

	activity := &model.Activity{
		Action:   action,
		Resource: resource,
		Detail:   detail,
	}
	if resourceID > 0 {
		activity.ResourceID = fmt.Sprint(resourceID)
	}
	if sess, ok := session.FromContext(ctx); ok {
		activity.UserID = sess.UserID
		activity.Username = sess.Username
	}

	if err := s.repo.Create(activity); err != nil {
		log.Error("failed to record activity", "action", action, "resource", resource, "error", err)
	}

	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishRefresh(ctx, &pubsub.RefreshMessage{
		Resource:   resource,
		Action:     action,
		ResourceID: activity.ResourceID,
		UserID:     activity.UserID,
	})
	if err != nil {
		log.Error("failed to publish refresh", "resource", resource, "error", err)
	}
}

// List 分页获取操作记录
func (s *ActivityService) List(ctx context.Context, page, pageSize int, resource string) (*pagination.Page[*model.Activity], error) {
	page, pageSize = pagination.Normalize(page, pageSize, pagination.DefaultPageSize)

	items, total, err := s.repo.List(page, pageSize, resource)
	if err != nil {
		return nil, err
	}

	return &pagination.Page[*model.Activity]{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Recent 仪表盘展示的最近记录
func (s *ActivityService) Recent(ctx context.Context, limit int) ([]*model.Activity, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.repo.Recent(limit)
}

// Prune 删除超过保留期的记录，dryRun 时只统计
func (s *ActivityService) Prune(ctx context.Context, retentionDays int, dryRun bool) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	if dryRun {
		return s.repo.CountBefore(cutoff)
	}
	return s.repo.DeleteBefore(cutoff)
}

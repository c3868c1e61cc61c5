package service

import (
	"context"

	"github.com/qs3c/blog_web_server/internal/backend"
	"github.com/qs3c/blog_web_server/internal/model"
)

type NotificationService struct {
	client *backend.Client
}

func NewNotificationService(client *backend.Client) *NotificationService {
	return &NotificationService{client: client}
}

// Unread ctx 中会话用户的未读通知
func (s *NotificationService) Unread(ctx context.Context) ([]model.Notification, error) {
	items, err := s.client.UnreadNotifications(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Notification{}
	}
	return items, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id int64) error {
	if err := validateID("notification_id", id); err != nil {
		return err
	}
	return s.client.MarkNotificationRead(ctx, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	return s.client.MarkAllNotificationsRead(ctx)
}

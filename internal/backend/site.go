package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/qs3c/blog_web_server/internal/model"
	"github.com/qs3c/blog_web_server/internal/model/dto"
)

// SEO 站点 SEO 配置
func (c *Client) SEO(ctx context.Context) (*model.SEOConfig, error) {
	var cfg model.SEOConfig
	if err := c.get(ctx, "/seo", nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Client) UpdateSEO(ctx context.Context, req *dto.SEORequest) (*model.SEOConfig, error) {
	var cfg model.SEOConfig
	if err := c.put(ctx, "/seo", req, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// AnalyticsOverview 仪表盘统计，rng 取 7d / 30d / 90d
func (c *Client) AnalyticsOverview(ctx context.Context, rng string) (*model.AnalyticsOverview, error) {
	query := url.Values{}
	query.Set("range", rng)

	var overview model.AnalyticsOverview
	if err := c.get(ctx, "/analytics/overview", query, &overview); err != nil {
		return nil, err
	}
	return &overview, nil
}

// Subscribe 订阅邮件通讯
func (c *Client) Subscribe(ctx context.Context, req *dto.SubscribeRequest) error {
	return c.post(ctx, "/newsletter/subscribe", req, nil)
}

// UnreadNotifications 当前用户的未读通知
func (c *Client) UnreadNotifications(ctx context.Context) ([]model.Notification, error) {
	query := url.Values{}
	query.Set("unread", "true")

	var items []model.Notification
	if err := c.get(ctx, "/notifications", query, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id int64) error {
	return c.post(ctx, fmt.Sprintf("/notifications/%d/read", id), nil, nil)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.post(ctx, "/notifications/read-all", nil, nil)
}

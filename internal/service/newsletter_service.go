package service

import (
	"context"
	"strings"

	"github.com/qs3c/blog_web_server/internal/backend"
	"github.com/qs3c/blog_web_server/internal/model/dto"
)

type NewsletterService struct {
	client *backend.Client
}

func NewNewsletterService(client *backend.Client) *NewsletterService {
	return &NewsletterService{client: client}
}

// Subscribe 订阅邮件通讯，验证码 token 原样交给后端校验
func (s *NewsletterService) Subscribe(ctx context.Context, req *dto.SubscribeRequest) error {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateStruct(req); err != nil {
		return err
	}
	return s.client.Subscribe(ctx, req)
}

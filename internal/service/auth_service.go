package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/qs3c/blog_web_server/config"
	"github.com/qs3c/blog_web_server/internal/backend"
	"github.com/qs3c/blog_web_server/internal/model"
	"github.com/qs3c/blog_web_server/internal/model/dto"
	"github.com/qs3c/blog_web_server/internal/pkg/logger"
	"github.com/qs3c/blog_web_server/internal/pkg/session"
)

type AuthService struct {
	client *backend.Client
	cfg    *config.Config
}

func NewAuthService(client *backend.Client, cfg *config.Config) *AuthService {
	return &AuthService{
		client: client,
		cfg:    cfg,
	}
}

// Login 转发登录请求，返回可写入 cookie 的会话
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*session.Session, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	resp, err := s.client.Login(ctx, req)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) || errors.Is(err, backend.ErrBadRequest) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	sess, err := session.Parse(resp.Token, s.cfg.Session.JWTSecret)
	if err != nil {
		logger.FromContext(ctx).Error("backend issued unusable token", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrSessionInvalid, err)
	}

	// token 中缺少的字段用登录返回的用户信息补全
	if resp.User != nil {
		if sess.UserID == 0 {
			sess.UserID = resp.User.ID
		}
		if sess.Username == "" {
			sess.Username = resp.User.Username
		}
		if sess.Role == "" {
			sess.Role = resp.User.Role
		}
	}

	return sess, nil
}

// Me 当前用户信息
func (s *AuthService) Me(ctx context.Context) (*model.User, error) {
	return s.client.Me(ctx)
}

// Logout 通知后端注销，失败不影响本地清理 cookie
func (s *AuthService) Logout(ctx context.Context) {
	if _, ok := session.FromContext(ctx); !ok {
		return
	}
	if err := s.client.Logout(ctx); err != nil {
		logger.FromContext(ctx).Warn("backend logout failed", "error", err)
	}
}

package session

import (
	"context"
	"time"

	"github.com/qs3c/blog_web_server/internal/pkg/jwt"
)

// Session 当前请求的登录态，Token 原样转发给后端
type Session struct {
	Token     string
	UserID    int64
	Username  string
	Role      string
	ExpiresAt time.Time
}

// HasRole 角色判断，admin 拥有所有角色
func (s *Session) HasRole(role string) bool {
	if s == nil {
		return false
	}
	return s.Role == role || s.Role == "admin"
}

type ctxKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}

// WithToken 仅携带 token 的上下文（worker 等非 HTTP 场景）
func WithToken(ctx context.Context, token string) context.Context {
	return WithSession(ctx, &Session{Token: token})
}

// Parse 从 token 还原会话，secret 为空时不验签
func Parse(token, secret string) (*Session, error) {
	claims, err := jwt.Parse(token, secret)
	if err != nil {
		return nil, err
	}

	s := &Session{
		Token:    token,
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

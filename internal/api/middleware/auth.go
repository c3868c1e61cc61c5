package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/blog_web_server/config"
	"github.com/qs3c/blog_web_server/internal/pkg/logger"
	"github.com/qs3c/blog_web_server/internal/pkg/response"
	"github.com/qs3c/blog_web_server/internal/pkg/session"
)

const (
	SessionKey       = "session"
	sessionConfigKey = "sessionConfig"
)

// Session 从 cookie 还原登录态（不强制要求登录）
func Session(cfg config.SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(sessionConfigKey, cfg)

		token, err := c.Cookie(cfg.CookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		sess, err := session.Parse(token, cfg.JWTSecret)
		if err != nil {
			// 过期或损坏的 token 直接清掉
			ClearSession(c, cfg)
			c.Next()
			return
		}

		c.Set(SessionKey, sess)
		ctx := session.WithSession(c.Request.Context(), sess)
		ctx = logger.WithLogger(ctx, logger.FromContext(ctx).With("user_id", sess.UserID))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireSession 页面路由：未登录跳转登录页
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetSession(c); !ok {
			c.Redirect(http.StatusFound, LoginURL(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAPISession 接口路由：未登录返回认证错误和登录页地址
func RequireAPISession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetSession(c); !ok {
			response.AuthRedirect(c, LoginURL("/admin"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole 角色检查，需放在 RequireAPISession 之后
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, _ := GetSession(c)
		if !sess.HasRole(role) {
			response.PermissionError(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetSession 从上下文获取登录态
func GetSession(c *gin.Context) (*session.Session, bool) {
	v, exists := c.Get(SessionKey)
	if !exists {
		return nil, false
	}
	sess, ok := v.(*session.Session)
	return sess, ok && sess != nil
}

// SetSessionCookie 写入登录 cookie
func SetSessionCookie(c *gin.Context, cfg config.SessionConfig, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.CookieName, token, cfg.MaxAgeHours*3600, "/", cfg.CookieDomain, cfg.Secure, true)
}

// ClearSession 删除登录 cookie
func ClearSession(c *gin.Context, cfg config.SessionConfig) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.CookieName, "", -1, "/", cfg.CookieDomain, cfg.Secure, true)
}

// ExpireSession 后端返回 401 时清掉 cookie 和当前请求的登录态
func ExpireSession(c *gin.Context) {
	c.Set(SessionKey, nil)
	if v, ok := c.Get(sessionConfigKey); ok {
		if cfg, ok := v.(config.SessionConfig); ok {
			ClearSession(c, cfg)
		}
	}
}

// LoginURL 登录页地址，next 只接受站内路径
func LoginURL(next string) string {
	next = SafeNext(next)
	if next == "/" {
		return "/login"
	}
	return "/login?next=" + url.QueryEscape(next)
}

// SafeNext 过滤登录后的跳转地址，防止跳到站外
func SafeNext(next string) string {
	u, err := url.Parse(next)
	if err != nil || next == "" || u.IsAbs() || u.Host != "" {
		return "/"
	}
	if len(u.Path) == 0 || u.Path[0] != '/' || (len(u.Path) > 1 && u.Path[1] == '/') {
		return "/"
	}
	return u.RequestURI()
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/blog_web_server/config"
	"github.com/qs3c/blog_web_server/internal/api/middleware"
	"github.com/qs3c/blog_web_server/internal/model"
	"github.com/qs3c/blog_web_server/internal/model/dto"
	"github.com/qs3c/blog_web_server/internal/pkg/logger"
	"github.com/qs3c/blog_web_server/internal/pkg/response"
	"github.com/qs3c/blog_web_server/internal/service"
)

type AuthHandler struct {
	view        *View
	authService *service.AuthService
	sessionCfg  config.SessionConfig
}

func NewAuthHandler(view *View, authService *service.AuthService, sessionCfg config.SessionConfig) *AuthHandler {
	return &AuthHandler{
		view:        view,
		authService: authService,
		sessionCfg:  sessionCfg,
	}
}

// LoginPage 登录页，已登录直接跳转
// GET /login
func (h *AuthHandler) LoginPage(c *gin.Context) {
	next := middleware.SafeNext(c.DefaultQuery("next", "/admin"))
	if _, ok := middleware.GetSession(c); ok {
		c.Redirect(http.StatusFound, next)
		return
	}

	h.render(c, http.StatusOK, next, "", "")
}

// Login 登录表单
// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	next := middleware.SafeNext(c.DefaultPostForm("next", "/admin"))

	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.render(c, http.StatusBadRequest, next, req.Email, service.ErrInvalidRequest.Error())
		return
	}

	sess, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			h.render(c, http.StatusBadRequest, next, req.Email, "请填写有效的邮箱和密码")
		case errors.Is(err, service.ErrInvalidCredentials):
			h.render(c, http.StatusUnauthorized, next, req.Email, err.Error())
		default:
			logger.FromContext(c.Request.Context()).Error("login failed", "error", err)
			h.render(c, http.StatusBadGateway, next, req.Email, "登录服务暂不可用，请稍后再试")
		}
		return
	}

	middleware.SetSessionCookie(c, h.sessionCfg, sess.Token)
	logger.FromContext(c.Request.Context()).Info("user logged in", "user_id", sess.UserID)
	c.Redirect(http.StatusSeeOther, next)
}

// Logout 退出登录
// POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.authService.Logout(c.Request.Context())
	middleware.ClearSession(c, h.sessionCfg)
	c.Redirect(http.StatusSeeOther, withNotice("/", "logged_out"))
}

// Me 当前登录用户
// GET /admin/api/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.Me(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, user)
}

func (h *AuthHandler) render(c *gin.Context, status int, next, email, errMsg string) {
	h.view.Render(c, status, "login.html", gin.H{
		"Meta":  model.PageMeta{Title: "登录 | " + h.view.siteName},
		"Next":  next,
		"Email": email,
		"Error": errMsg,
	})
}

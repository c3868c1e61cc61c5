package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/blog_web_server/config"
	"github.com/qs3c/blog_web_server/internal/api/middleware"
	"github.com/qs3c/blog_web_server/internal/backend"
	"github.com/qs3c/blog_web_server/internal/model"
	"github.com/qs3c/blog_web_server/internal/pkg/logger"
	"github.com/qs3c/blog_web_server/internal/service"
)

// 页面顶部提示，通过 ?notice= 传递
var notices = map[string]string{
	"comment_posted":   "评论已提交",
	"comment_invalid":  "评论内容不完整，请检查后重试",
	"comment_failed":   "评论提交失败，请稍后再试",
	"subscribed":       "订阅成功",
	"subscribe_failed": "订阅失败，请检查邮箱后重试",
	"logged_out":       "已退出登录",
}

// View 渲染 HTML 页面，补齐布局需要的公共字段
type View struct {
	siteName string
}

func NewView(cfg *config.Config) *View {
	return &View{siteName: cfg.Site.Name}
}

func (v *View) Render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	sess, _ := middleware.GetSession(c)
	data["Session"] = sess
	data["SiteName"] = v.siteName
	data["Notice"] = notices[c.Query("notice")]
	if _, ok := data["Meta"]; !ok {
		data["Meta"] = model.PageMeta{Title: v.siteName}
	}
	for _, key := range []string{"Query", "Next", "Email", "Error"} {
		if _, ok := data[key]; !ok {
			data[key] = ""
		}
	}
	if _, ok := data["SectionErrors"]; !ok {
		data["SectionErrors"] = []string(nil)
	}

	c.HTML(status, name, data)
}

// Error 页面错误：401 清会话跳登录，其余渲染错误页
func (v *View) Error(c *gin.Context, err error) {
	switch {
	case errors.Is(err, backend.ErrUnauthorized):
		middleware.ExpireSession(c)
		c.Redirect(http.StatusFound, middleware.LoginURL(c.Request.URL.RequestURI()))
	case errors.Is(err, backend.ErrNotFound):
		v.errorPage(c, http.StatusNotFound, "页面不存在")
	case errors.Is(err, service.ErrInvalidRequest):
		v.errorPage(c, http.StatusBadRequest, "请求参数无效")
	case errors.Is(err, backend.ErrForbidden):
		v.errorPage(c, http.StatusForbidden, "没有权限访问该页面")
	default:
		logger.FromContext(c.Request.Context()).Error("page render failed",
			"route", c.FullPath(), "error", err)
		v.errorPage(c, http.StatusBadGateway, "服务暂时不可用，请稍后再试")
	}
}

func (v *View) errorPage(c *gin.Context, status int, message string) {
	v.Render(c, status, "error.html", gin.H{
		"Meta":    model.PageMeta{Title: message + " | " + v.siteName},
		"Status":  status,
		"Message": message,
	})
}

// NotFound 未匹配路由
func (v *View) NotFound(c *gin.Context) {
	v.errorPage(c, http.StatusNotFound, "页面不存在")
}

// redirectBack 表单提交后回到来源页面并带上提示
func redirectBack(c *gin.Context, fallback, notice string) {
	target := fallback
	if ref, err := url.Parse(c.GetHeader("Referer")); err == nil && ref.Path != "" {
		target = middleware.SafeNext(ref.Path)
	}
	c.Redirect(http.StatusSeeOther, withNotice(target, notice))
}

func withNotice(target, notice string) string {
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	q := u.Query()
	q.Set("notice", notice)
	u.RawQuery = q.Encode()
	return u.String()
}

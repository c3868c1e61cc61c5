package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/blog_web_server/internal/backend"
	"github.com/qs3c/blog_web_server/internal/model"
	"github.com/qs3c/blog_web_server/internal/pkg/logger"
	"github.com/qs3c/blog_web_server/internal/service"
)

const dashboardActivityLimit = 20

// AdminHandler 后台首页
type AdminHandler struct {
	view      *View
	analytics *service.AnalyticsService
	activity  *service.ActivityService
}

func NewAdminHandler(view *View, analytics *service.AnalyticsService, activity *service.ActivityService) *AdminHandler {
	return &AdminHandler{
		view:      view,
		analytics: analytics,
		activity:  activity,
	}
}

// Dashboard 统计概览 + 最近操作，任一块失败只降级该块
// GET /admin
func (h *AdminHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	var failed []string

	overview, err := h.analytics.Overview(ctx, c.DefaultQuery("range", service.DefaultAnalyticsRange))
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			h.view.Error(c, err)
			return
		}
		logger.FromContext(ctx).Warn("dashboard analytics degraded", "error", err)
		failed = append(failed, "analytics")
		overview = nil
	}

	activities, err := h.activity.Recent(ctx, dashboardActivityLimit)
	if err != nil {
		logger.FromContext(ctx).Warn("dashboard activities degraded", "error", err)
		failed = append(failed, "activities")
	}

	h.view.Render(c, http.StatusOK, "admin.html", gin.H{
		"Meta":          model.PageMeta{Title: "管理后台 | " + h.view.siteName},
		"Analytics":     overview,
		"Activities":    activities,
		"SectionErrors": failed,
	})
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/blog_web_server/internal/model/dto"
	"github.com/qs3c/blog_web_server/internal/pkg/response"
	"github.com/qs3c/blog_web_server/internal/service"
)

// SiteHandler SEO、统计、通知
type SiteHandler struct {
	seoService          *service.SEOService
	analyticsService    *service.AnalyticsService
	notificationService *service.NotificationService
}

func NewSiteHandler(
	seoService *service.SEOService,
	analyticsService *service.AnalyticsService,
	notificationService *service.NotificationService,
) *SiteHandler {
	return &SiteHandler{
		seoService:          seoService,
		analyticsService:    analyticsService,
		notificationService: notificationService,
	}
}

// GetSEO 站点 SEO 配置
// GET /admin/api/seo
func (h *SiteHandler) GetSEO(c *gin.Context) {
	seo, err := h.seoService.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, seo)
}

// UpdateSEO 更新 SEO 配置
// PUT /admin/api/seo
func (h *SiteHandler) UpdateSEO(c *gin.Context) {
	var req dto.SEORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	seo, err := h.seoService.Update(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "更新成功", seo)
}

// Analytics 统计概览
// GET /admin/api/analytics?range=7d
func (h *SiteHandler) Analytics(c *gin.Context) {
	overview, err := h.analyticsService.Overview(c.Request.Context(), c.DefaultQuery("range", service.DefaultAnalyticsRange))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, overview)
}

// Notifications 未读通知
// GET /admin/api/notifications
func (h *SiteHandler) Notifications(c *gin.Context) {
	items, err := h.notificationService.Unread(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{
		"unread": len(items),
		"items":  items,
	})
}

// MarkNotificationRead 标记单条已读
// POST /admin/api/notifications/:id/read
func (h *SiteHandler) MarkNotificationRead(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, nil)
}

// MarkAllNotificationsRead 全部标记已读
// POST /admin/api/notifications/read-all
func (h *SiteHandler) MarkAllNotificationsRead(c *gin.Context) {
	if err := h.notificationService.MarkAllRead(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, nil)
}

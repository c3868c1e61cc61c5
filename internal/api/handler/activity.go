package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/blog_web_server/internal/pkg/response"
	"github.com/qs3c/blog_web_server/internal/service"
)

type ActivityHandler struct {
	activityService *service.ActivityService
}

func NewActivityHandler(activityService *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// List 后台操作记录
// GET /admin/api/activities?resource=categories
func (h *ActivityHandler) List(c *gin.Context) {
	page, pageSize := pageParams(c)

	result, err := h.activityService.List(c.Request.Context(), page, pageSize, c.Query("resource"))
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Paged(c, *result)
}

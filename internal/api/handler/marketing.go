package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/blog_web_server/internal/model"
	"github.com/qs3c/blog_web_server/internal/model/dto"
	"github.com/qs3c/blog_web_server/internal/pkg/response"
	"github.com/qs3c/blog_web_server/internal/service"
)

type PublicationHandler struct {
	marketingService *service.MarketingService
}

func NewPublicationHandler(marketingService *service.MarketingService) *PublicationHandler {
	return &PublicationHandler{marketingService: marketingService}
}

// List 全部投放；带 location 时只返回当前生效的
// GET /admin/api/publications
func (h *PublicationHandler) List(c *gin.Context) {
	var (
		items []model.Publication
		err   error
	)
	if location := c.Query("location"); location != "" {
		items, err = h.marketingService.ForLocation(c.Request.Context(), location)
	} else {
		items, err = h.marketingService.List(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}
	if items == nil {
		items = []model.Publication{}
	}

	response.Success(c, items)
}

// Create 创建投放
// POST /admin/api/publications
func (h *PublicationHandler) Create(c *gin.Context) {
	var req dto.PublicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	pub, err := h.marketingService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "创建成功", pub)
}

// Update 更新投放
// PUT /admin/api/publications/:id
func (h *PublicationHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.PublicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	pub, err := h.marketingService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "更新成功", pub)
}

// Delete 删除投放
// DELETE /admin/api/publications/:id
func (h *PublicationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.marketingService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

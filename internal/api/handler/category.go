package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/blog_web_server/internal/model"
	"github.com/qs3c/blog_web_server/internal/model/dto"
	"github.com/qs3c/blog_web_server/internal/pkg/response"
	"github.com/qs3c/blog_web_server/internal/service"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// Tree 分类树
// GET /admin/api/categories
func (h *CategoryHandler) Tree(c *gin.Context) {
	tree, err := h.categoryService.Tree(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, emptyTree(tree))
}

// Options 扁平化的分类选项（带层级），用于下拉框
// GET /admin/api/categories/options
func (h *CategoryHandler) Options(c *gin.Context) {
	options, err := h.categoryService.Options(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, options)
}

// Create 创建分类
// POST /admin/api/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "创建成功", category)
}

// Update 更新分类
// PUT /admin/api/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "更新成功", category)
}

// Delete 删除分类
// DELETE /admin/api/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

// MoveUp 上移
// POST /admin/api/categories/:id/move-up
func (h *CategoryHandler) MoveUp(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	tree, err := h.categoryService.MoveUp(c.Request.Context(), id)
	h.reordered(c, tree, err)
}

// MoveDown 下移
// POST /admin/api/categories/:id/move-down
func (h *CategoryHandler) MoveDown(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	tree, err := h.categoryService.MoveDown(c.Request.Context(), id)
	h.reordered(c, tree, err)
}

// Move 拖拽到指定父分类下的指定位置
// POST /admin/api/categories/:id/move
func (h *CategoryHandler) Move(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.MoveCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	tree, err := h.categoryService.Move(c.Request.Context(), id, &req)
	h.reordered(c, tree, err)
}

// reordered 排序失败时仍返回重新拉取的树，页面以它为准
func (h *CategoryHandler) reordered(c *gin.Context, tree []*model.Category, err error) {
	if err != nil {
		if tree != nil {
			respondErrorWithData(c, err, tree)
			return
		}
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "排序已更新", emptyTree(tree))
}

func emptyTree(tree []*model.Category) []*model.Category {
	if tree == nil {
		return []*model.Category{}
	}
	return tree
}

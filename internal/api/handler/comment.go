package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/blog_web_server/internal/pkg/response"
	"github.com/qs3c/blog_web_server/internal/service"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// Like 点赞
// POST /comments/:id/like
func (h *CommentHandler) Like(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	counts, err := h.commentService.Like(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, counts)
}

// Dislike 踩
// POST /comments/:id/dislike
func (h *CommentHandler) Dislike(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	counts, err := h.commentService.Dislike(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, counts)
}

// Delete 删除评论
// DELETE /admin/api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/blog_web_server/internal/model/dto"
	"github.com/qs3c/blog_web_server/internal/pkg/logger"
	"github.com/qs3c/blog_web_server/internal/service"
)

// BlogHandler 前台页面和表单
type BlogHandler struct {
	view       *View
	blog       *service.BlogService
	comments   *service.CommentService
	newsletter *service.NewsletterService
}

func NewBlogHandler(
	view *View,
	blog *service.BlogService,
	comments *service.CommentService,
	newsletter *service.NewsletterService,
) *BlogHandler {
	return &BlogHandler{
		view:       view,
		blog:       blog,
		comments:   comments,
		newsletter: newsletter,
	}
}

// Home 首页
// GET /
func (h *BlogHandler) Home(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	query := c.Query("q")

	p, err := h.blog.Home(c.Request.Context(), page, query)
	if err != nil {
		h.view.Error(c, err)
		return
	}

	h.view.Render(c, http.StatusOK, "home.html", gin.H{
		"Page":          p,
		"Meta":          p.Meta,
		"Query":         query,
		"SectionErrors": p.SectionErrors,
	})
}

// Article 文章详情
// GET /posts/:slug
func (h *BlogHandler) Article(c *gin.Context) {
	commentPage, _ := strconv.Atoi(c.DefaultQuery("comments", "1"))

	p, err := h.blog.Article(c.Request.Context(), c.Param("slug"), commentPage)
	if err != nil {
		h.view.Error(c, err)
		return
	}

	h.view.Render(c, http.StatusOK, "post.html", gin.H{
		"Page":          p,
		"Meta":          p.Meta,
		"SectionErrors": p.SectionErrors,
	})
}

// Category 分类页
// GET /categories/:slug
func (h *BlogHandler) Category(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	p, err := h.blog.Category(c.Request.Context(), c.Param("slug"), page)
	if err != nil {
		h.view.Error(c, err)
		return
	}

	h.view.Render(c, http.StatusOK, "category.html", gin.H{
		"Page":          p,
		"Meta":          p.Meta,
		"SectionErrors": p.SectionErrors,
	})
}

// CreateComment 发表评论（表单）
// POST /posts/:slug/comments
func (h *BlogHandler) CreateComment(c *gin.Context) {
	slug := c.Param("slug")
	back := "/posts/" + slug

	postID, err := strconv.ParseInt(c.PostForm("post_id"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusSeeOther, withNotice(back, "comment_invalid"))
		return
	}

	req := dto.CreateCommentRequest{
		Body:         c.PostForm("body"),
		AuthorName:   c.PostForm("author_name"),
		AuthorEmail:  c.PostForm("author_email"),
		CaptchaToken: c.PostForm("captcha_token"),
	}
	// 空的 parent_id 表示一级评论
	if v := c.PostForm("parent_id"); v != "" {
		parentID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.Redirect(http.StatusSeeOther, withNotice(back, "comment_invalid"))
			return
		}
		req.ParentID = &parentID
	}

	comment, err := h.comments.Create(c.Request.Context(), postID, &req)
	if err != nil {
		notice := "comment_failed"
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			notice = "comment_invalid"
		default:
			logger.FromContext(c.Request.Context()).Warn("comment create failed", "post_id", postID, "error", err)
		}
		c.Redirect(http.StatusSeeOther, withNotice(back, notice))
		return
	}

	c.Redirect(http.StatusSeeOther, withNotice(back, "comment_posted")+fmt.Sprintf("#comment-%d", comment.ID))
}

// Subscribe 订阅邮件通讯（表单）
// POST /newsletter
func (h *BlogHandler) Subscribe(c *gin.Context) {
	req := dto.SubscribeRequest{
		Email:        c.PostForm("email"),
		CaptchaToken: c.PostForm("captcha_token"),
	}

	if err := h.newsletter.Subscribe(c.Request.Context(), &req); err != nil {
		if !errors.Is(err, service.ErrInvalidRequest) {
			logger.FromContext(c.Request.Context()).Warn("newsletter subscribe failed", "error", err)
		}
		redirectBack(c, "/", "subscribe_failed")
		return
	}

	redirectBack(c, "/", "subscribed")
}

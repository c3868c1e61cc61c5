package dto

import "github.com/qs3c/blog_web_server/internal/model"

// CreateCommentRequest 发表评论
type CreateCommentRequest struct {
	Body         string `json:"body" form:"body" validate:"required,min=1,max=2000"`
	ParentID     *int64 `json:"parent_id,omitempty" form:"parent_id" validate:"omitempty,gt=0"`
	AuthorName   string `json:"author_name" form:"author_name" validate:"required,max=50"`
	AuthorEmail  string `json:"author_email" form:"author_email" validate:"required,email,max=100"`
	CaptchaToken string `json:"captcha_token" form:"captcha_token" validate:"required"`
}

// CommentThread 组装好的评论树（当前页）
type CommentThread struct {
	Items    []*model.Comment `json:"items"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	// 父评论不在当前页的回复数
	Orphans int `json:"orphans"`
	// 父链成环、无法挂到任何根上的评论数
	Detached int `json:"detached"`
}

// ReactionResponse 点赞/踩之后的计数
type ReactionResponse struct {
	Likes    int `json:"likes"`
	Dislikes int `json:"dislikes"`
}

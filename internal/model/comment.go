package model

import (
	"time"
)

// Comment 后端返回的评论，Replies 只在渲染前由 commenttree 填充
type Comment struct {
	ID           int64     `json:"id"`
	ParentID     *int64    `json:"parent_id"`
	PostID       int64     `json:"post_id"`
	AuthorName   string    `json:"author_name"`
	AuthorEmail  string    `json:"author_email,omitempty"`
	AuthorAvatar string    `json:"author_avatar,omitempty"`
	Body         string    `json:"body"`
	Likes        int       `json:"likes"`
	Dislikes     int       `json:"dislikes"`
	CreatedAt    time.Time `json:"created_at"`

	Replies []*Comment `json:"replies,omitempty"`
}

// IsRoot 是否为一级评论
func (c *Comment) IsRoot() bool {
	return c.ParentID == nil
}

package model

import (
	"time"
)

const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
	PostStatusArchived  = "archived"
)

type Post struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Excerpt         string     `json:"excerpt"`
	Content         string     `json:"content"` // 富文本编辑器产出的 HTML
	CoverImage      string     `json:"cover_image,omitempty"`
	Status          string     `json:"status"`
	CategoryID      *int64     `json:"category_id"`
	Category        *Category  `json:"category,omitempty"`
	Tags            []Tag      `json:"tags,omitempty"`
	Author          *Author    `json:"author,omitempty"`
	MetaTitle       string     `json:"meta_title,omitempty"`
	MetaDescription string     `json:"meta_description,omitempty"`
	ViewCount       int64      `json:"view_count"`
	CommentCount    int64      `json:"comment_count"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Author 文章作者快照
type Author struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

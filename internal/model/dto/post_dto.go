package dto

import "time"

// PostRequest 创建/更新文章
type PostRequest struct {
	Title           string     `json:"title" validate:"required,max=200"`
	Slug            string     `json:"slug" validate:"required,slug,max=200"`
	Excerpt         string     `json:"excerpt" validate:"max=500"`
	Content         string     `json:"content" validate:"required"`
	CoverImage      string     `json:"cover_image,omitempty" validate:"omitempty,url"`
	Status          string     `json:"status" validate:"required,oneof=draft published archived"`
	CategoryID      *int64     `json:"category_id" validate:"omitempty,gt=0"`
	TagIDs          []int64    `json:"tag_ids" validate:"dive,gt=0"`
	MetaTitle       string     `json:"meta_title,omitempty" validate:"max=70"`
	MetaDescription string     `json:"meta_description,omitempty" validate:"max=160"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
}

// PostListQuery 文章列表筛选
type PostListQuery struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Status   string `form:"status" validate:"omitempty,oneof=draft published archived"`
	Category string `form:"category"` // 分类 slug
	Tag      string `form:"tag"`
	Query    string `form:"q" validate:"max=100"`
}

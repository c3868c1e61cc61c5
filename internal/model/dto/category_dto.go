package dto

// CategoryRequest 创建/更新分类
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=50"`
	Slug        string `json:"slug" validate:"required,slug,max=60"`
	Image       string `json:"image,omitempty" validate:"omitempty,url"`
	Description string `json:"description,omitempty" validate:"max=500"`
	ParentID    *int64 `json:"parent_id" validate:"omitempty,gt=0"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

// MoveCategoryRequest 拖拽到指定位置
type MoveCategoryRequest struct {
	ParentID *int64 `json:"parent_id" validate:"omitempty,gt=0"`
	Position int    `json:"position" validate:"gte=0"`
}

// ReorderRequest 发往后端的排序请求，一次只移动一个节点
type ReorderRequest struct {
	ParentID *int64 `json:"parent_id"`
	Position int    `json:"position"`
}

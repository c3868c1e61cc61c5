package model

// Category 分类节点，Children 由后端按树形返回
type Category struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	Slug         string      `json:"slug"`
	Image        string      `json:"image,omitempty"`
	Description  string      `json:"description,omitempty"`
	DisplayOrder int         `json:"display_order"`
	IsActive     bool        `json:"is_active"`
	ParentID     *int64      `json:"parent_id"`
	Level        int         `json:"level"`
	Children     []*Category `json:"children,omitempty"`
}

// SameParent 判断两个分类是否为同级
func SameParent(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

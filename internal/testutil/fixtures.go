package testutil

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/blog_web_server/internal/model"
)

// TestActivity 创建测试操作记录
func TestActivity(t *testing.T, db *gorm.DB, opts ...func(*model.Activity)) *model.Activity {
	t.Helper()

	activity := &model.Activity{
		UserID:     1,
		Username:   "admin",
		Action:     "update",
		Resource:   "posts",
		ResourceID: "1",
		CreatedAt:  time.Now(),
	}

	for _, opt := range opts {
		opt(activity)
	}

	if err := db.Create(activity).Error; err != nil {
		t.Fatalf("Failed to create test activity: %v", err)
	}

	return activity
}

// WithResource 设置资源类型
func WithResource(resource string) func(*model.Activity) {
	return func(a *model.Activity) {
		a.Resource = resource
	}
}

// WithAction 设置动作
func WithAction(action string) func(*model.Activity) {
	return func(a *model.Activity) {
		a.Action = action
	}
}

// WithCreatedAt 设置创建时间
func WithCreatedAt(at time.Time) func(*model.Activity) {
	return func(a *model.Activity) {
		a.CreatedAt = at
	}
}

// Int64Ptr 返回 int64 指针
func Int64Ptr(v int64) *int64 {
	return &v
}

// TestComment 构造评论（不入库，评论由后端保存）
func TestComment(id int64, parentID *int64, body string) *model.Comment {
	return &model.Comment{
		ID:         id,
		ParentID:   parentID,
		PostID:     1,
		AuthorName: "reader",
		Body:       body,
		CreatedAt:  time.Date(2024, 1, 1, 0, 0, int(id), 0, time.UTC),
	}
}

// TestCategory 构造分类节点
func TestCategory(id int64, parentID *int64, order int, children ...*model.Category) *model.Category {
	return &model.Category{
		ID:           id,
		Name:         "category",
		Slug:         "category",
		DisplayOrder: order,
		IsActive:     true,
		ParentID:     parentID,
		Children:     children,
	}
}

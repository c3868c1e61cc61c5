package model

import (
	"time"
)

// Activity 后台操作记录，保存在本地数据库
type Activity struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	UserID     int64     `gorm:"not null;index" json:"user_id"`
	Username   string    `gorm:"size:50" json:"username"`
	Action     string    `gorm:"size:30;not null" json:"action"`         // create, update, delete, reorder, import
	Resource   string    `gorm:"size:30;not null;index" json:"resource"` // posts, categories, ...
	ResourceID string    `gorm:"size:64" json:"resource_id"`
	Detail     string    `gorm:"type:text" json:"detail"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (Activity) TableName() string {
	return "activities"
}

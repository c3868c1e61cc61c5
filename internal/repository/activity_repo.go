package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/blog_web_server/internal/model"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create 写入一条操作记录
func (r *ActivityRepository) Create(activity *model.Activity) error {
	return r.db.Create(activity).Error
}

// List 分页获取操作记录，resource 为空时不过滤
func (r *ActivityRepository) List(page, pageSize int, resource string) ([]*model.Activity, int64, error) {
	var activities []*model.Activity
	var total int64

	query := r.db.Model(&model.Activity{})
	if resource != "" {
		query = query.Where("resource = ?", resource)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC, id DESC").Offset(offset).Limit(pageSize).Find(&activities).Error
	if err != nil {
		return nil, 0, err
	}

	return activities, total, nil
}

// Recent 最近 n 条记录，仪表盘使用
func (r *ActivityRepository) Recent(limit int) ([]*model.Activity, error) {
	var activities []*model.Activity
	err := r.db.Order("created_at DESC, id DESC").Limit(limit).Find(&activities).Error
	return activities, err
}

// CountBefore 统计早于 t 的记录数
func (r *ActivityRepository) CountBefore(t time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Activity{}).Where("created_at < ?", t).Count(&count).Error
	return count, err
}

// DeleteBefore 删除早于 t 的记录
func (r *ActivityRepository) DeleteBefore(t time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", t).Delete(&model.Activity{})
	return result.RowsAffected, result.Error
}

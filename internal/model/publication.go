package model

import (
	"time"
)

const (
	PublicationBanner = "banner"
	PublicationPopup  = "popup"
)

// Publication 营销投放（横幅 / 弹窗），按页面位置展示
type Publication struct {
	ID       int64      `json:"id"`
	Title    string     `json:"title"`
	Type     string     `json:"type"`
	Location string     `json:"location"`
	ImageURL string     `json:"image_url,omitempty"`
	LinkURL  string     `json:"link_url,omitempty"`
	Content  string     `json:"content,omitempty"`
	IsActive bool       `json:"is_active"`
	Priority int        `json:"priority"`
	StartsAt *time.Time `json:"starts_at,omitempty"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`
}

// LiveAt 在给定时间是否应展示
func (p *Publication) LiveAt(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	if p.StartsAt != nil && now.Before(*p.StartsAt) {
		return false
	}
	if p.EndsAt != nil && !now.Before(*p.EndsAt) {
		return false
	}
	return true
}

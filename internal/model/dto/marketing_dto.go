package dto

import "time"

// PublicationRequest 营销投放
type PublicationRequest struct {
	Title    string     `json:"title" validate:"required,max=100"`
	Type     string     `json:"type" validate:"required,oneof=banner popup"`
	Location string     `json:"location" validate:"required,max=50"`
	ImageURL string     `json:"image_url,omitempty" validate:"omitempty,url"`
	LinkURL  string     `json:"link_url,omitempty" validate:"omitempty,url"`
	Content  string     `json:"content,omitempty" validate:"max=2000"`
	IsActive bool       `json:"is_active"`
	Priority int        `json:"priority" validate:"gte=0,lte=100"`
	StartsAt *time.Time `json:"starts_at,omitempty"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`
}

package dto

type TagRequest struct {
	Name string `json:"name" validate:"required,max=30"`
	Slug string `json:"slug" validate:"required,slug,max=40"`
}

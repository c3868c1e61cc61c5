package dto

import "github.com/qs3c/blog_web_server/internal/model"

// LoginRequest 登录请求（表单或 JSON）
type LoginRequest struct {
	Email        string `json:"email" form:"email" validate:"required,email,max=100"`
	Password     string `json:"password" form:"password" validate:"required,min=6,max=72"`
	CaptchaToken string `json:"captcha_token" form:"captcha_token"`
}

// LoginResponse 后端登录返回
type LoginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

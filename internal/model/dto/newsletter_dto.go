package dto

// SubscribeRequest 订阅邮件通讯
type SubscribeRequest struct {
	Email        string `json:"email" form:"email" validate:"required,email,max=100"`
	CaptchaToken string `json:"captcha_token" form:"captcha_token" validate:"required"`
}

package dto

// SEORequest 站点 SEO 配置
type SEORequest struct {
	SiteTitle       string   `json:"site_title" validate:"required,max=70"`
	SiteDescription string   `json:"site_description" validate:"max=160"`
	Keywords        []string `json:"keywords" validate:"max=20,dive,max=30"`
	OGImage         string   `json:"og_image,omitempty" validate:"omitempty,url"`
	CanonicalURL    string   `json:"canonical_url,omitempty" validate:"omitempty,url"`
	RobotsTxt       string   `json:"robots_txt,omitempty" validate:"max=5000"`
	AnalyticsID     string   `json:"analytics_id,omitempty" validate:"max=50"`
}

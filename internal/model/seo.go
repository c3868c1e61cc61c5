package model

// SEOConfig 站点级 SEO 配置
type SEOConfig struct {
	SiteTitle       string   `json:"site_title"`
	SiteDescription string   `json:"site_description"`
	Keywords        []string `json:"keywords"`
	OGImage         string   `json:"og_image,omitempty"`
	CanonicalURL    string   `json:"canonical_url,omitempty"`
	RobotsTxt       string   `json:"robots_txt,omitempty"`
	AnalyticsID     string   `json:"analytics_id,omitempty"`
}

// PageMeta 单个页面最终输出的 meta 信息
type PageMeta struct {
	Title       string
	Description string
	Keywords    []string
	Image       string
	Canonical   string
}

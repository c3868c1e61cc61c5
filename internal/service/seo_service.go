package service

import (
	"context"
	"strings"

	"github.com/qs3c/blog_web_server/config"
	"github.com/qs3c/blog_web_server/internal/backend"
	"github.com/qs3c/blog_web_server/internal/model"
	"github.com/qs3c/blog_web_server/internal/model/dto"
)

type SEOService struct {
	client   *backend.Client
	activity *ActivityService
	cfg      *config.Config
}

func NewSEOService(client *backend.Client, activity *ActivityService, cfg *config.Config) *SEOService {
	return &SEOService{
		client:   client,
		activity: activity,
		cfg:      cfg,
	}
}

func (s *SEOService) Get(ctx context.Context) (*model.SEOConfig, error) {
	return s.client.SEO(ctx)
}

func (s *SEOService) Update(ctx context.Context, req *dto.SEORequest) (*model.SEOConfig, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	cfg, err := s.client.UpdateSEO(ctx, req)
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, "update", "seo", 0, "")
	return cfg, nil
}

// Defaults 后端 SEO 配置不可用时的站点默认值
func (s *SEOService) Defaults() *model.SEOConfig {
	return &model.SEOConfig{
		SiteTitle:       s.cfg.Site.Name,
		SiteDescription: s.cfg.Site.Description,
	}
}

// PageMeta 合并站点配置与页面自身信息
func PageMeta(site *model.SEOConfig, title, description, image, path string) model.PageMeta {
	meta := model.PageMeta{
		Title:       site.SiteTitle,
		Description: site.SiteDescription,
		Keywords:    site.Keywords,
		Image:       site.OGImage,
	}
	if title != "" {
		meta.Title = title
		if site.SiteTitle != "" {
			meta.Title = title + " | " + site.SiteTitle
		}
	}
	if description != "" {
		meta.Description = description
	}
	if image != "" {
		meta.Image = image
	}
	if site.CanonicalURL != "" {
		meta.Canonical = strings.TrimRight(site.CanonicalURL, "/") + path
	}
	return meta
}

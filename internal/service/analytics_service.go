package service

import (
	"context"
	"fmt"

	"github.com/qs3c/blog_web_server/internal/backend"
	"github.com/qs3c/blog_web_server/internal/model"
)

const DefaultAnalyticsRange = "7d"

type AnalyticsService struct {
	client *backend.Client
}

func NewAnalyticsService(client *backend.Client) *AnalyticsService {
	return &AnalyticsService{client: client}
}

// Overview 仪表盘数据，rng 为空时取 7d
func (s *AnalyticsService) Overview(ctx context.Context, rng string) (*model.AnalyticsOverview, error) {
	if rng == "" {
		rng = DefaultAnalyticsRange
	}
	if err := getValidator().Var(rng, "oneof=7d 30d 90d"); err != nil {
		return nil, fmt.Errorf("%w: range must be one of 7d, 30d, 90d", ErrInvalidRequest)
	}

	overview, err := s.client.AnalyticsOverview(ctx, rng)
	if err != nil {
		return nil, err
	}
	if overview.Range == "" {
		overview.Range = rng
	}
	return overview, nil
}

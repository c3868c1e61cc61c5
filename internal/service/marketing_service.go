package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/qs3c/blog_web_server/internal/backend"
	"github.com/qs3c/blog_web_server/internal/model"
	"github.com/qs3c/blog_web_server/internal/model/dto"
)

type MarketingService struct {
	client   *backend.Client
	activity *ActivityService
	now      func() time.Time
}

func NewMarketingService(client *backend.Client, activity *ActivityService) *MarketingService {
	return &MarketingService{
		client:   client,
		activity: activity,
		now:      time.Now,
	}
}

func (s *MarketingService) List(ctx context.Context) ([]model.Publication, error) {
	return s.client.ListPublications(ctx, "")
}

// ForLocation 某个页面位置当前应展示的投放，按优先级从高到低
func (s *MarketingService) ForLocation(ctx context.Context, location string) ([]model.Publication, error) {
	items, err := s.client.ListPublications(ctx, location)
	if err != nil {
		return nil, err
	}

	now := s.now()
	live := make([]model.Publication, 0, len(items))
	for i := range items {
		if items[i].Location == location && items[i].LiveAt(now) {
			live = append(live, items[i])
		}
	}
	sort.SliceStable(live, func(i, j int) bool {
		return live[i].Priority > live[j].Priority
	})
	return live, nil
}

func (s *MarketingService) Create(ctx context.Context, req *dto.PublicationRequest) (*model.Publication, error) {
	if err := validatePublication(req); err != nil {
		return nil, err
	}
	item, err := s.client.CreatePublication(ctx, req)
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, "create", "publications", item.ID, item.Title)
	return item, nil
}

func (s *MarketingService) Update(ctx context.Context, id int64, req *dto.PublicationRequest) (*model.Publication, error) {
	if err := validateID("publication_id", id); err != nil {
		return nil, err
	}
	if err := validatePublication(req); err != nil {
		return nil, err
	}
	item, err := s.client.UpdatePublication(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, "update", "publications", id, item.Title)
	return item, nil
}

func (s *MarketingService) Delete(ctx context.Context, id int64) error {
	if err := validateID("publication_id", id); err != nil {
		return err
	}
	if err := s.client.DeletePublication(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, "delete", "publications", id, "")
	return nil
}

func validatePublication(req *dto.PublicationRequest) error {
	if err := validateStruct(req); err != nil {
		return err
	}
	if req.StartsAt != nil && req.EndsAt != nil && !req.EndsAt.After(*req.StartsAt) {
		return fmt.Errorf("%w: ends_at must be after starts_at", ErrInvalidRequest)
	}
	return nil
}

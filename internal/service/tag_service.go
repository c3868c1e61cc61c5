package service

import (
	"context"

	"github.com/qs3c/blog_web_server/internal/backend"
	"github.com/qs3c/blog_web_server/internal/model"
	"github.com/qs3c/blog_web_server/internal/model/dto"
)

type TagService struct {
	client   *backend.Client
	activity *ActivityService
}

func NewTagService(client *backend.Client, activity *ActivityService) *TagService {
	return &TagService{
		client:   client,
		activity: activity,
	}
}

func (s *TagService) List(ctx context.Context) ([]model.Tag, error) {
	return s.client.ListTags(ctx)
}

func (s *TagService) Create(ctx context.Context, req *dto.TagRequest) (*model.Tag, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	tag, err := s.client.CreateTag(ctx, req)
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, "create", "tags", tag.ID, tag.Name)
	return tag, nil
}

func (s *TagService) Update(ctx context.Context, id int64, req *dto.TagRequest) (*model.Tag, error) {
	if err := validateID("tag_id", id); err != nil {
		return nil, err
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	tag, err := s.client.UpdateTag(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, "update", "tags", id, tag.Name)
	return tag, nil
}

func (s *TagService) Delete(ctx context.Context, id int64) error {
	if err := validateID("tag_id", id); err != nil {
		return err
	}
	if err := s.client.DeleteTag(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, "delete", "tags", id, "")
	return nil
}

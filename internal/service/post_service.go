package service

import (
	"context"

	"github.com/qs3c/blog_web_server/internal/backend"
	"github.com/qs3c/blog_web_server/internal/model"
	"github.com/qs3c/blog_web_server/internal/model/dto"
	"github.com/qs3c/blog_web_server/internal/pkg/pagination"
)

type PostService struct {
	client   *backend.Client
	activity *ActivityService
}

func NewPostService(client *backend.Client, activity *ActivityService) *PostService {
	return &PostService{
		client:   client,
		activity: activity,
	}
}

// List 文章列表（后台可按状态筛选）
func (s *PostService) List(ctx context.Context, q *dto.PostListQuery) (*pagination.Page[model.Post], error) {
	if err := validateStruct(q); err != nil {
		return nil, err
	}
	query := *q
	query.Page, query.PageSize = pagination.Normalize(q.Page, q.PageSize, pagination.DefaultPageSize)
	return s.client.ListPosts(ctx, &query)
}

func (s *PostService) Get(ctx context.Context, id int64) (*model.Post, error) {
	if err := validateID("post_id", id); err != nil {
		return nil, err
	}
	return s.client.PostByID(ctx, id)
}

func (s *PostService) Create(ctx context.Context, req *dto.PostRequest) (*model.Post, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	post, err := s.client.CreatePost(ctx, req)
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, "create", "posts", post.ID, post.Title)
	return post, nil
}

func (s *PostService) Update(ctx context.Context, id int64, req *dto.PostRequest) (*model.Post, error) {
	if err := validateID("post_id", id); err != nil {
		return nil, err
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	post, err := s.client.UpdatePost(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, "update", "posts", id, post.Title)
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, id int64) error {
	if err := validateID("post_id", id); err != nil {
		return err
	}
	if err := s.client.DeletePost(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, "delete", "posts", id, "")
	return nil
}

package service

import (
	"context"

	"github.com/qs3c/blog_web_server/config"
	"github.com/qs3c/blog_web_server/internal/backend"
	"github.com/qs3c/blog_web_server/internal/model"
	"github.com/qs3c/blog_web_server/internal/model/dto"
	"github.com/qs3c/blog_web_server/internal/pkg/commenttree"
	"github.com/qs3c/blog_web_server/internal/pkg/logger"
	"github.com/qs3c/blog_web_server/internal/pkg/pagination"
)

type CommentService struct {
	client   *backend.Client
	activity *ActivityService
	cfg      *config.Config
}

func NewCommentService(client *backend.Client, activity *ActivityService, cfg *config.Config) *CommentService {
	return &CommentService{
		client:   client,
		activity: activity,
		cfg:      cfg,
	}
}

// Thread 拉取一页评论并整理成回复树
func (s *CommentService) Thread(ctx context.Context, postID int64, page int) (*dto.CommentThread, error) {
	if err := validateID("post_id", postID); err != nil {
		return nil, err
	}
	page, pageSize := pagination.Normalize(page, s.cfg.Site.CommentPageSize, pagination.DefaultPageSize)

	result, err := s.client.ListComments(ctx, postID, page, pageSize)
	if err != nil {
		return nil, err
	}

	forest := commenttree.Organize(result.Items)
	if len(forest.Detached) > 0 {
		logger.FromContext(ctx).Warn("comments with cyclic parents skipped",
			"post_id", postID, "count", len(forest.Detached))
	}

	return &dto.CommentThread{
		Items:    forest.Roots,
		Total:    result.Total,
		Page:     page,
		PageSize: pageSize,
		Orphans:  commenttree.Count(forest.Orphans),
		Detached: len(forest.Detached),
	}, nil
}

// Create 发表评论或回复
func (s *CommentService) Create(ctx context.Context, postID int64, req *dto.CreateCommentRequest) (*model.Comment, error) {
	if err := validateID("post_id", postID); err != nil {
		return nil, err
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	return s.client.CreateComment(ctx, postID, req)
}

func (s *CommentService) Like(ctx context.Context, id int64) (*dto.ReactionResponse, error) {
	if err := validateID("comment_id", id); err != nil {
		return nil, err
	}
	return s.client.LikeComment(ctx, id)
}

func (s *CommentService) Dislike(ctx context.Context, id int64) (*dto.ReactionResponse, error) {
	if err := validateID("comment_id", id); err != nil {
		return nil, err
	}
	return s.client.DislikeComment(ctx, id)
}

// Delete 后台删除评论
func (s *CommentService) Delete(ctx context.Context, id int64) error {
	if err := validateID("comment_id", id); err != nil {
		return err
	}
	if err := s.client.DeleteComment(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, "delete", "comments", id, "")
	return nil
}

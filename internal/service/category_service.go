package service

import (
	"context"
	"fmt"

	"github.com/qs3c/blog_web_server/internal/backend"
	"github.com/qs3c/blog_web_server/internal/model"
	"github.com/qs3c/blog_web_server/internal/model/dto"
	"github.com/qs3c/blog_web_server/internal/pkg/categorytree"
	"github.com/qs3c/blog_web_server/internal/pkg/logger"
)

type CategoryService struct {
	client   *backend.Client
	activity *ActivityService
}

func NewCategoryService(client *backend.Client, activity *ActivityService) *CategoryService {
	return &CategoryService{
		client:   client,
		activity: activity,
	}
}

// Tree 拉取分类树，去掉重复节点并限制深度
func (s *CategoryService) Tree(ctx context.Context) ([]*model.Category, error) {
	raw, err := s.client.CategoryTree(ctx)
	if err != nil {
		return nil, err
	}

	tree, dropped := categorytree.Sanitize(raw, categorytree.DefaultMaxDepth)
	if dropped > 0 {
		logger.FromContext(ctx).Warn("category tree contains repeated or too deep nodes", "dropped", dropped)
	}
	return tree, nil
}

// Options 下拉框用的扁平列表
func (s *CategoryService) Options(ctx context.Context) ([]categorytree.Option, error) {
	tree, err := s.Tree(ctx)
	if err != nil {
		return nil, err
	}
	return categorytree.Flatten(tree), nil
}

func (s *CategoryService) BySlug(ctx context.Context, slug string) (*model.Category, error) {
	if slug == "" {
		return nil, fmt.Errorf("%w: empty slug", ErrInvalidRequest)
	}
	return s.client.CategoryBySlug(ctx, slug)
}

func (s *CategoryService) Create(ctx context.Context, req *dto.CategoryRequest) (*model.Category, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	category, err := s.client.CreateCategory(ctx, req)
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, "create", "categories", category.ID, category.Name)
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id int64, req *dto.CategoryRequest) (*model.Category, error) {
	if err := validateID("category_id", id); err != nil {
		return nil, err
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.ParentID != nil && *req.ParentID == id {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, categorytree.ErrInvalidMove)
	}
	category, err := s.client.UpdateCategory(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, "update", "categories", id, category.Name)
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if err := validateID("category_id", id); err != nil {
		return err
	}
	if err := s.client.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, "delete", "categories", id, "")
	return nil
}

// MoveUp 与前一个同级分类交换位置
func (s *CategoryService) MoveUp(ctx context.Context, id int64) ([]*model.Category, error) {
	return s.step(ctx, id, categorytree.Up)
}

// MoveDown 与后一个同级分类交换位置
func (s *CategoryService) MoveDown(ctx context.Context, id int64) ([]*model.Category, error) {
	return s.step(ctx, id, categorytree.Down)
}

func (s *CategoryService) step(ctx context.Context, id int64, dir categorytree.Direction) ([]*model.Category, error) {
	if err := validateID("category_id", id); err != nil {
		return nil, err
	}

	tree, err := s.Tree(ctx)
	if err != nil {
		return nil, err
	}

	parentID, position, err := categorytree.Neighbor(tree, id, dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	return s.reorder(ctx, id, parentID, position)
}

// Move 拖拽到 parent 下的 position 位置，parent 为空表示顶层
func (s *CategoryService) Move(ctx context.Context, id int64, req *dto.MoveCategoryRequest) ([]*model.Category, error) {
	if err := validateID("category_id", id); err != nil {
		return nil, err
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	tree, err := s.Tree(ctx)
	if err != nil {
		return nil, err
	}
	if err := categorytree.ValidateMove(tree, id, req.ParentID, req.Position); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	return s.reorder(ctx, id, req.ParentID, req.Position)
}

// reorder 只发一次变更请求，之后无论成败都重新拉取整棵树作为新的视图状态。
// 不加锁，并发排序以后端最后一次写入为准。
func (s *CategoryService) reorder(ctx context.Context, id int64, parentID *int64, position int) ([]*model.Category, error) {
	log := logger.FromContext(ctx)

	mutateErr := s.client.ReorderCategory(ctx, id, &dto.ReorderRequest{
		ParentID: parentID,
		Position: position,
	})
	if mutateErr != nil {
		log.Error("category reorder failed", "category_id", id, "position", position, "error", mutateErr)
	} else {
		detail := fmt.Sprintf("position=%d", position)
		if parentID != nil {
			detail = fmt.Sprintf("parent=%d %s", *parentID, detail)
		}
		s.activity.Record(ctx, "reorder", "categories", id, detail)
	}

	tree, err := s.Tree(ctx)
	if err != nil {
		log.Error("category refetch failed", "error", err)
		if mutateErr != nil {
			return nil, mutateErr
		}
		return nil, err
	}

	return tree, mutateErr
}

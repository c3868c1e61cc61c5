package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/qs3c/blog_web_server/internal/model"
	"github.com/qs3c/blog_web_server/internal/model/dto"
)

// CategoryTree 整棵分类树，children 由后端填充
func (c *Client) CategoryTree(ctx context.Context) ([]*model.Category, error) {
	var tree []*model.Category
	if err := c.get(ctx, "/categories/tree", nil, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

func (c *Client) CategoryBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var category model.Category
	if err := c.get(ctx, "/categories/slug/"+url.PathEscape(slug), nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) CreateCategory(ctx context.Context, req *dto.CategoryRequest) (*model.Category, error) {
	var category model.Category
	if err := c.post(ctx, "/categories", req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id int64, req *dto.CategoryRequest) (*model.Category, error) {
	var category model.Category
	if err := c.put(ctx, fmt.Sprintf("/categories/%d", id), req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/categories/%d", id))
}

// ReorderCategory 把一个分类移动到 parent 下的 position 位置
func (c *Client) ReorderCategory(ctx context.Context, id int64, req *dto.ReorderRequest) error {
	return c.patch(ctx, fmt.Sprintf("/categories/%d/reorder", id), req, nil)
}

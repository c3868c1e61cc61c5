package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/qs3c/blog_web_server/internal/model"
	"github.com/qs3c/blog_web_server/internal/model/dto"
	"github.com/qs3c/blog_web_server/internal/pkg/pagination"
)

// ListPosts 文章列表
func (c *Client) ListPosts(ctx context.Context, q *dto.PostListQuery) (*pagination.Page[model.Post], error) {
	query := pageQuery(q.Page, q.PageSize)
	setIf(query, "status", q.Status)
	setIf(query, "category", q.Category)
	setIf(query, "tag", q.Tag)
	setIf(query, "q", q.Query)

	var page pagination.Page[model.Post]
	if err := c.get(ctx, "/posts", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// PostBySlug 按 slug 获取已发布文章
func (c *Client) PostBySlug(ctx context.Context, slug string) (*model.Post, error) {
	var post model.Post
	if err := c.get(ctx, "/posts/slug/"+url.PathEscape(slug), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// PostByID 后台编辑时按 ID 获取
func (c *Client) PostByID(ctx context.Context, id int64) (*model.Post, error) {
	var post model.Post
	if err := c.get(ctx, fmt.Sprintf("/posts/%d", id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// RelatedPosts 同分类的相关文章
func (c *Client) RelatedPosts(ctx context.Context, id int64, limit int) ([]model.Post, error) {
	query := url.Values{}
	query.Set("limit", fmt.Sprint(limit))

	var posts []model.Post
	if err := c.get(ctx, fmt.Sprintf("/posts/%d/related", id), query, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) CreatePost(ctx context.Context, req *dto.PostRequest) (*model.Post, error) {
	var post model.Post
	if err := c.post(ctx, "/posts", req, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) UpdatePost(ctx context.Context, id int64, req *dto.PostRequest) (*model.Post, error) {
	var post model.Post
	if err := c.put(ctx, fmt.Sprintf("/posts/%d", id), req, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) DeletePost(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/posts/%d", id))
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

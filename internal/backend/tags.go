package backend

import (
	"context"
	"fmt"

	"github.com/qs3c/blog_web_server/internal/model"
	"github.com/qs3c/blog_web_server/internal/model/dto"
)

func (c *Client) ListTags(ctx context.Context) ([]model.Tag, error) {
	var tags []model.Tag
	if err := c.get(ctx, "/tags", nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (c *Client) CreateTag(ctx context.Context, req *dto.TagRequest) (*model.Tag, error) {
	var tag model.Tag
	if err := c.post(ctx, "/tags", req, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

func (c *Client) UpdateTag(ctx context.Context, id int64, req *dto.TagRequest) (*model.Tag, error) {
	var tag model.Tag
	if err := c.put(ctx, fmt.Sprintf("/tags/%d", id), req, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

func (c *Client) DeleteTag(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/tags/%d", id))
}

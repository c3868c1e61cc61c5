package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/qs3c/blog_web_server/internal/model"
	"github.com/qs3c/blog_web_server/internal/model/dto"
)

// ListPublications 营销投放列表，location 为空时返回全部
func (c *Client) ListPublications(ctx context.Context, location string) ([]model.Publication, error) {
	query := url.Values{}
	setIf(query, "location", location)

	var items []model.Publication
	if err := c.get(ctx, "/publications", query, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) CreatePublication(ctx context.Context, req *dto.PublicationRequest) (*model.Publication, error) {
	var item model.Publication
	if err := c.post(ctx, "/publications", req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdatePublication(ctx context.Context, id int64, req *dto.PublicationRequest) (*model.Publication, error) {
	var item model.Publication
	if err := c.put(ctx, fmt.Sprintf("/publications/%d", id), req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeletePublication(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/publications/%d", id))
}

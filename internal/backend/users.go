package backend

import (
	"context"
	"fmt"

	"github.com/qs3c/blog_web_server/internal/model"
	"github.com/qs3c/blog_web_server/internal/model/dto"
	"github.com/qs3c/blog_web_server/internal/pkg/pagination"
)

func (c *Client) ListUsers(ctx context.Context, page, pageSize int, role string) (*pagination.Page[model.User], error) {
	query := pageQuery(page, pageSize)
	setIf(query, "role", role)

	var result pagination.Page[model.User]
	if err := c.get(ctx, "/users", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*model.User, error) {
	var user model.User
	if err := c.put(ctx, fmt.Sprintf("/users/%d", id), req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/users/%d", id))
}

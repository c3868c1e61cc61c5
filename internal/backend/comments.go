package backend

import (
	"context"
	"fmt"

	"github.com/qs3c/blog_web_server/internal/model"
	"github.com/qs3c/blog_web_server/internal/model/dto"
	"github.com/qs3c/blog_web_server/internal/pkg/pagination"
)

// ListComments 文章评论（扁平列表，按页返回）
func (c *Client) ListComments(ctx context.Context, postID int64, page, pageSize int) (*pagination.Page[*model.Comment], error) {
	var result pagination.Page[*model.Comment]
	if err := c.get(ctx, fmt.Sprintf("/posts/%d/comments", postID), pageQuery(page, pageSize), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) CreateComment(ctx context.Context, postID int64, req *dto.CreateCommentRequest) (*model.Comment, error) {
	var comment model.Comment
	if err := c.post(ctx, fmt.Sprintf("/posts/%d/comments", postID), req, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *Client) LikeComment(ctx context.Context, id int64) (*dto.ReactionResponse, error) {
	return c.react(ctx, id, "like")
}

func (c *Client) DislikeComment(ctx context.Context, id int64) (*dto.ReactionResponse, error) {
	return c.react(ctx, id, "dislike")
}

func (c *Client) react(ctx context.Context, id int64, kind string) (*dto.ReactionResponse, error) {
	var resp dto.ReactionResponse
	if err := c.post(ctx, fmt.Sprintf("/comments/%d/%s", id, kind), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteComment(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/comments/%d", id))
}

package backend

import (
	"context"
	"io"
	"net/url"

	"github.com/qs3c/blog_web_server/internal/model/dto"
)

// UploadImage 未配置 OSS 时由后端保存图片
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (*dto.UploadImageResponse, error) {
	var resp dto.UploadImageResponse
	if err := c.upload(ctx, "/uploads/images", "file", filename, r, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ImportPosts 把表格转交给后端批量导入
func (c *Client) ImportPosts(ctx context.Context, filename string, r io.Reader) (*dto.ImportResult, error) {
	var result dto.ImportResult
	if err := c.upload(ctx, "/imports/posts", "file", filename, r, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ExportPosts 导出文章表格，format 为 xlsx 或 csv
func (c *Client) ExportPosts(ctx context.Context, format, status string) (*Download, error) {
	query := url.Values{}
	query.Set("format", format)
	setIf(query, "status", status)
	return c.download(ctx, "/exports/posts", query)
}

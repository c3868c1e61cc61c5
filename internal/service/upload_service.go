package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/qs3c/blog_web_server/config"
	"github.com/qs3c/blog_web_server/internal/backend"
	"github.com/qs3c/blog_web_server/internal/model/dto"
	"github.com/qs3c/blog_web_server/internal/pkg/queue"
	"github.com/qs3c/blog_web_server/internal/pkg/session"
)

// ImageStore 图片对象存储（OSS）
type ImageStore interface {
	UploadImage(data []byte, ext string) (string, error)
}

// ImportQueue 导入任务队列
type ImportQueue interface {
	Push(ctx context.Context, job *queue.ImportJob) error
}

type UploadService struct {
	client   *backend.Client
	images   ImageStore
	jobs     ImportQueue
	activity *ActivityService
	cfg      *config.Config
}

// NewUploadService images 为 nil 时图片交给后端保存
func NewUploadService(
	client *backend.Client,
	images ImageStore,
	jobs ImportQueue,
	activity *ActivityService,
	cfg *config.Config,
) *UploadService {
	return &UploadService{
		client:   client,
		images:   images,
		jobs:     jobs,
		activity: activity,
		cfg:      cfg,
	}
}

// UploadImage 上传编辑器配图或封面
func (s *UploadService) UploadImage(ctx context.Context, filename string, size int64, r io.Reader) (*dto.UploadImageResponse, error) {
	ext, err := checkFile(filename, size, s.cfg.Upload.MaxSize, s.cfg.Upload.ImageExtensions)
	if err != nil {
		return nil, err
	}

	if s.images == nil {
		return s.client.UploadImage(ctx, filename, r)
	}

	data, err := readLimited(r, s.cfg.Upload.MaxSize)
	if err != nil {
		return nil, err
	}

	url, err := s.images.UploadImage(data, ext)
	if err != nil {
		return nil, err
	}
	return &dto.UploadImageResponse{URL: url}, nil
}

// EnqueueImport 暂存表格并投递导入任务，结果通过 websocket 推送给发起人
func (s *UploadService) EnqueueImport(ctx context.Context, filename string, size int64, r io.Reader) (*dto.ImportJobResponse, error) {
	sess, ok := session.FromContext(ctx)
	if !ok {
		return nil, ErrSessionInvalid
	}

	ext, err := checkFile(filename, size, s.cfg.Upload.MaxImportSize, s.cfg.Upload.ImportExtensions)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.cfg.Upload.TempDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}

	jobID := uuid.NewString()
	path := filepath.Join(s.cfg.Upload.TempDir, jobID+ext)
	data, err := readLimited(r, s.cfg.Upload.MaxImportSize)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		os.Remove(path)
		return nil, err
	}

	job := &queue.ImportJob{
		JobID:     jobID,
		UserID:    sess.UserID,
		Username:  sess.Username,
		Token:     sess.Token,
		Resource:  "posts",
		FilePath:  path,
		Filename:  filepath.Base(filename),
		CreatedAt: time.Now(),
	}
	if err := s.jobs.Push(ctx, job); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to enqueue import: %w", err)
	}

	return &dto.ImportJobResponse{JobID: jobID}, nil
}

// Export 导出文章表格
func (s *UploadService) Export(ctx context.Context, format, status string) (*backend.Download, error) {
	if format == "" {
		format = "xlsx"
	}
	if err := getValidator().Var(format, "oneof=xlsx csv"); err != nil {
		return nil, fmt.Errorf("%w: format must be xlsx or csv", ErrInvalidRequest)
	}
	if status != "" {
		if err := getValidator().Var(status, "oneof=draft published archived"); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
	}
	return s.client.ExportPosts(ctx, format, status)
}

// checkFile 校验扩展名和大小，返回小写扩展名
func checkFile(filename string, size, maxSize int64, allowed []string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || !contains(allowed, ext) {
		return "", ErrUploadType
	}
	if maxSize > 0 && size > maxSize {
		return "", ErrUploadTooLarge
	}
	return ext, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}

// readLimited 读取全部内容，超过 maxSize 返回 ErrUploadTooLarge，maxSize <= 0 不限制
func readLimited(r io.Reader, maxSize int64) ([]byte, error) {
	if maxSize <= 0 {
		return io.ReadAll(r)
	}

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if n > maxSize {
		return nil, ErrUploadTooLarge
	}
	return buf.Bytes(), nil
}

package worker

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/qs3c/blog_web_server/internal/model/dto"
	"github.com/qs3c/blog_web_server/internal/pkg/logger"
	"github.com/qs3c/blog_web_server/internal/pkg/pubsub"
	"github.com/qs3c/blog_web_server/internal/pkg/queue"
	"github.com/qs3c/blog_web_server/internal/pkg/session"
)

const (
	StatusDone   = "done"
	StatusFailed = "failed"
)

// Importer 后端批量导入接口
type Importer interface {
	ImportPosts(ctx context.Context, filename string, r io.Reader) (*dto.ImportResult, error)
}

// ResultPublisher 把导入结果发给发起人
type ResultPublisher interface {
	PublishImportResult(ctx context.Context, msg *pubsub.ImportResultMessage) error
}

// Recorder 写操作记录并广播刷新
type Recorder interface {
	Record(ctx context.Context, action, resource string, resourceID int64, detail string)
}

// Processor 导入任务处理器
type Processor struct {
	importer  Importer
	publisher ResultPublisher
	recorder  Recorder
	logger    *slog.Logger
}

func NewProcessor(importer Importer, publisher ResultPublisher, recorder Recorder, log *slog.Logger) *Processor {
	if log == nil {
		log = slog.Default()
	}
	return &Processor{
		importer:  importer,
		publisher: publisher,
		recorder:  recorder,
		logger:    log,
	}
}

// Process 代表发起人把表格转交后端，无论成败都推送结果并删除暂存文件。
// 失败不重试，由用户重新上传。
func (p *Processor) Process(ctx context.Context, job *queue.ImportJob) error {
	log := p.logger.With("job_id", job.JobID, "user_id", job.UserID)
	ctx = logger.WithLogger(ctx, log)
	ctx = session.WithSession(ctx, &session.Session{
		Token:    job.Token,
		UserID:   job.UserID,
		Username: job.Username,
	})
	defer p.removeFile(job.FilePath, log)

	start := time.Now()
	result, err := p.importFile(ctx, job)
	if err != nil {
		log.Error("import failed", "error", err)
		p.publish(ctx, &pubsub.ImportResultMessage{
			UserID: job.UserID,
			JobID:  job.JobID,
			Status: StatusFailed,
			Error:  err.Error(),
		})
		return err
	}

	log.Info("import finished",
		"created", result.Created, "updated", result.Updated, "failed", result.Failed,
		"elapsed", time.Since(start).Round(time.Millisecond))

	p.publish(ctx, &pubsub.ImportResultMessage{
		UserID:  job.UserID,
		JobID:   job.JobID,
		Status:  StatusDone,
		Created: result.Created,
		Updated: result.Updated,
		Failed:  result.Failed,
		Errors:  result.Errors,
	})
	if p.recorder != nil {
		p.recorder.Record(ctx, "import", resourceOf(job), 0,
			fmt.Sprintf("%s created=%d updated=%d failed=%d", job.Filename, result.Created, result.Updated, result.Failed))
	}
	return nil
}

func (p *Processor) importFile(ctx context.Context, job *queue.ImportJob) (*dto.ImportResult, error) {
	f, err := os.Open(job.FilePath)
	if err != nil {
		return nil, fmt.Errorf("暂存文件不存在或已过期: %w", err)
	}
	defer f.Close()

	return p.importer.ImportPosts(ctx, job.Filename, f)
}

func (p *Processor) publish(ctx context.Context, msg *pubsub.ImportResultMessage) {
	if p.publisher == nil {
		return
	}
	if err := p.publisher.PublishImportResult(ctx, msg); err != nil {
		p.logger.Warn("failed to publish import result", "job_id", msg.JobID, "error", err)
	}
}

func (p *Processor) removeFile(path string, log *slog.Logger) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Warn("failed to remove import file", "path", path, "error", err)
	}
}

func resourceOf(job *queue.ImportJob) string {
	if job.Resource == "" {
		return "posts"
	}
	return job.Resource
}

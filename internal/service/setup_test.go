package service

import (
	"context"
	"sync"
	"testing"

	"github.com/qs3c/blog_web_server/config"
	"github.com/qs3c/blog_web_server/internal/backend"
	"github.com/qs3c/blog_web_server/internal/pkg/pubsub"
	"github.com/qs3c/blog_web_server/internal/pkg/session"
	"github.com/qs3c/blog_web_server/internal/repository"
	"github.com/qs3c/blog_web_server/internal/testutil"
)

// recordingPublisher 记录广播的刷新事件
type recordingPublisher struct {
	mu       sync.Mutex
	messages []*pubsub.RefreshMessage
}

func (p *recordingPublisher) PublishRefresh(ctx context.Context, msg *pubsub.RefreshMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
	return nil
}

func (p *recordingPublisher) Messages() []*pubsub.RefreshMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*pubsub.RefreshMessage(nil), p.messages...)
}

type testEnv struct {
	fake      *testutil.FakeBackend
	client    *backend.Client
	repo      *repository.ActivityRepository
	activity  *ActivityService
	publisher *recordingPublisher
	cfg       *config.Config
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	fake := testutil.NewFakeBackend(t)
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	cfg := &config.Config{
		Backend: config.BackendConfig{BaseURL: fake.URL(), TimeoutSeconds: 5},
		Site:    config.SiteConfig{Name: "Blog", Description: "notes", PostsPageSize: 10, CommentPageSize: 50},
		Upload: config.UploadConfig{
			MaxSize:          1024,
			MaxImportSize:    2048,
			TempDir:          t.TempDir(),
			ImageExtensions:  []string{".jpg", ".png"},
			ImportExtensions: []string{".xlsx", ".csv"},
		},
	}

	repo := repository.NewActivityRepository(db)
	publisher := &recordingPublisher{}

	return &testEnv{
		fake:      fake,
		client:    backend.New(&cfg.Backend),
		repo:      repo,
		activity:  NewActivityService(repo, publisher),
		publisher: publisher,
		cfg:       cfg,
	}
}

// adminCtx 带管理员会话的上下文
func adminCtx() context.Context {
	return session.WithSession(context.Background(), &session.Session{
		Token:    "admin-token",
		UserID:   1,
		Username: "admin",
		Role:     "admin",
	})
}

package service

import (
	"context"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/blog_web_server/internal/pkg/queue"
	"github.com/qs3c/blog_web_server/internal/testutil"
)

type fakeImageStore struct {
	data []byte
	ext  string
}

func (f *fakeImageStore) UploadImage(data []byte, ext string) (string, error) {
	f.data = data
	f.ext = ext
	return "https://cdn.example.com/images/x" + ext, nil
}

func TestUploadService_UploadImage(t *testing.T) {
	t.Run("oss when configured", func(t *testing.T) {
		env := setupEnv(t)
		store := &fakeImageStore{}
		svc := NewUploadService(env.client, store, nil, env.activity, env.cfg)

		resp, err := svc.UploadImage(adminCtx(), "Cover.PNG", 3, strings.NewReader("png"))
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/images/x.png", resp.URL)
		assert.Equal(t, "png", string(store.data))
		assert.Equal(t, 0, env.fake.Total())
	})

	t.Run("backend otherwise", func(t *testing.T) {
		env := setupEnv(t)
		env.fake.JSON(http.MethodPost, "/uploads/images", http.StatusCreated, map[string]string{"url": "https://api/img/1.jpg"})
		svc := NewUploadService(env.client, nil, nil, env.activity, env.cfg)

		resp, err := svc.UploadImage(adminCtx(), "a.jpg", 3, strings.NewReader("jpg"))
		require.NoError(t, err)
		assert.Equal(t, "https://api/img/1.jpg", resp.URL)
	})

	t.Run("rejects type and size", func(t *testing.T) {
		env := setupEnv(t)
		svc := NewUploadService(env.client, &fakeImageStore{}, nil, env.activity, env.cfg)

		_, err := svc.UploadImage(adminCtx(), "a.exe", 3, strings.NewReader("exe"))
		assert.ErrorIs(t, err, ErrUploadType)

		_, err = svc.UploadImage(adminCtx(), "a.png", 4096, strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrUploadTooLarge)

		// 声明的大小不可信时按实际读取量判断
		_, err = svc.UploadImage(adminCtx(), "a.png", 1, strings.NewReader(strings.Repeat("x", 2000)))
		assert.ErrorIs(t, err, ErrUploadTooLarge)
	})
}

func TestUploadService_EnqueueImport(t *testing.T) {
	env := setupEnv(t)
	rdb, _ := testutil.SetupTestRedis(t)
	jobs := queue.NewQueue(rdb, "test_imports")
	svc := NewUploadService(env.client, nil, jobs, env.activity, env.cfg)

	t.Run("requires session", func(t *testing.T) {
		_, err := svc.EnqueueImport(context.Background(), "posts.xlsx", 4, strings.NewReader("data"))
		assert.ErrorIs(t, err, ErrSessionInvalid)
	})

	t.Run("rejects type", func(t *testing.T) {
		_, err := svc.EnqueueImport(adminCtx(), "posts.pdf", 4, strings.NewReader("data"))
		assert.ErrorIs(t, err, ErrUploadType)
	})

	t.Run("stores file and pushes job", func(t *testing.T) {
		resp, err := svc.EnqueueImport(adminCtx(), "posts.csv", 9, strings.NewReader("id,title\n"))
		require.NoError(t, err)
		assert.NotEmpty(t, resp.JobID)

		job, err := jobs.Pop(context.Background(), time.Second)
		require.NoError(t, err)
		require.NotNil(t, job)
		assert.Equal(t, resp.JobID, job.JobID)
		assert.Equal(t, int64(1), job.UserID)
		assert.Equal(t, "admin-token", job.Token)
		assert.Equal(t, "posts", job.Resource)
		assert.Equal(t, "posts.csv", job.Filename)

		data, err := os.ReadFile(job.FilePath)
		require.NoError(t, err)
		assert.Equal(t, "id,title\n", string(data))
	})
}

func TestUploadService_Export(t *testing.T) {
	env := setupEnv(t)
	svc := NewUploadService(env.client, nil, nil, env.activity, env.cfg)
	env.fake.Handle(http.MethodGet, "/exports/posts", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Write([]byte("xlsx"))
	})

	_, err := svc.Export(adminCtx(), "pdf", "")
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.Export(adminCtx(), "csv", "deleted")
	assert.ErrorIs(t, err, ErrInvalidRequest)

	dl, err := svc.Export(adminCtx(), "", "published")
	require.NoError(t, err)
	defer dl.Body.Close()

	reqs := env.fake.Requests(http.MethodGet, "/exports/posts")
	require.Len(t, reqs, 1)
	assert.Contains(t, reqs[0].Query, "format=xlsx")
	assert.Contains(t, reqs[0].Query, "status=published")
}

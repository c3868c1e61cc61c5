package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/blog_web_server/config"
	"github.com/qs3c/blog_web_server/internal/api/middleware"
	"github.com/qs3c/blog_web_server/internal/backend"
	"github.com/qs3c/blog_web_server/internal/model"
	"github.com/qs3c/blog_web_server/internal/pkg/jwt"
	"github.com/qs3c/blog_web_server/internal/pkg/queue"
	"github.com/qs3c/blog_web_server/internal/pkg/response"
	"github.com/qs3c/blog_web_server/internal/repository"
	"github.com/qs3c/blog_web_server/internal/service"
	"github.com/qs3c/blog_web_server/internal/testutil"
	"github.com/qs3c/blog_web_server/internal/web"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testJWTSecret = "handler-test-secret"

type testEnv struct {
	fake   *testutil.FakeBackend
	cfg    *config.Config
	engine *gin.Engine
	repo   *repository.ActivityRepository
	jobs   *queue.Queue
}

// setupEnv 用假后端、内存数据库和 miniredis 组装全部处理器
func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	fake := testutil.NewFakeBackend(t)
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })
	rdb, _ := testutil.SetupTestRedis(t)

	cfg := &config.Config{
		Backend: config.BackendConfig{BaseURL: fake.URL(), TimeoutSeconds: 5},
		Session: config.SessionConfig{CookieName: "token", MaxAgeHours: 24, JWTSecret: testJWTSecret},
		Site:    config.SiteConfig{Name: "Blog", PostsPageSize: 10, CommentPageSize: 50},
		Upload: config.UploadConfig{
			MaxSize:          1024,
			MaxImportSize:    2048,
			TempDir:          t.TempDir(),
			ImageExtensions:  []string{".jpg", ".png"},
			ImportExtensions: []string{".xlsx", ".csv"},
		},
	}

	client := backend.New(&cfg.Backend)
	repo := repository.NewActivityRepository(db)
	jobs := queue.NewQueue(rdb, "test:imports")

	activity := service.NewActivityService(repo, nil)
	comments := service.NewCommentService(client, activity, cfg)
	categories := service.NewCategoryService(client, activity)
	marketing := service.NewMarketingService(client, activity)
	seo := service.NewSEOService(client, activity, cfg)
	analytics := service.NewAnalyticsService(client)
	notifications := service.NewNotificationService(client)

	view := NewView(cfg)
	blog := NewBlogHandler(view, service.NewBlogService(client, comments, categories, marketing, seo, cfg), comments, service.NewNewsletterService(client))
	auth := NewAuthHandler(view, service.NewAuthService(client, cfg), cfg.Session)
	admin := NewAdminHandler(view, analytics, activity)
	posts := NewPostHandler(service.NewPostService(client, activity))
	category := NewCategoryHandler(categories)
	tags := NewTagHandler(service.NewTagService(client, activity))
	publications := NewPublicationHandler(marketing)
	users := NewUserHandler(service.NewUserService(client, activity))
	site := NewSiteHandler(seo, analytics, notifications)
	comment := NewCommentHandler(comments)
	upload := NewUploadHandler(service.NewUploadService(client, nil, jobs, activity, cfg))
	activities := NewActivityHandler(activity)

	tmpl, err := web.Templates()
	require.NoError(t, err)

	engine := gin.New()
	engine.Use(middleware.Session(cfg.Session))
	engine.SetHTMLTemplate(tmpl)
	engine.NoRoute(view.NotFound)

	engine.GET("/healthz", Healthz)
	engine.GET("/", blog.Home)
	engine.GET("/posts/:slug", blog.Article)
	engine.POST("/posts/:slug/comments", blog.CreateComment)
	engine.GET("/categories/:slug", blog.Category)
	engine.POST("/newsletter", blog.Subscribe)
	engine.POST("/comments/:id/like", comment.Like)
	engine.POST("/comments/:id/dislike", comment.Dislike)
	engine.GET("/login", auth.LoginPage)
	engine.POST("/login", auth.Login)
	engine.POST("/logout", auth.Logout)

	engine.GET("/admin", middleware.RequireSession(), admin.Dashboard)

	api := engine.Group("/admin/api", middleware.RequireAPISession())
	api.GET("/me", auth.Me)
	api.GET("/posts", posts.List)
	api.POST("/posts", posts.Create)
	api.GET("/posts/:id", posts.Get)
	api.PUT("/posts/:id", posts.Update)
	api.DELETE("/posts/:id", posts.Delete)
	api.GET("/categories", category.Tree)
	api.GET("/categories/options", category.Options)
	api.POST("/categories", category.Create)
	api.DELETE("/categories/:id", category.Delete)
	api.POST("/categories/:id/move-up", category.MoveUp)
	api.POST("/categories/:id/move-down", category.MoveDown)
	api.POST("/categories/:id/move", category.Move)
	api.GET("/tags", tags.List)
	api.POST("/tags", tags.Create)
	api.GET("/publications", publications.List)
	api.POST("/publications", publications.Create)
	api.GET("/users", middleware.RequireRole(model.RoleAdmin), users.List)
	api.DELETE("/users/:id", middleware.RequireRole(model.RoleAdmin), users.Delete)
	api.GET("/seo", site.GetSEO)
	api.PUT("/seo", site.UpdateSEO)
	api.GET("/analytics", site.Analytics)
	api.GET("/notifications", site.Notifications)
	api.POST("/notifications/read-all", site.MarkAllNotificationsRead)
	api.POST("/notifications/:id/read", site.MarkNotificationRead)
	api.DELETE("/comments/:id", comment.Delete)
	api.POST("/uploads/images", upload.Image)
	api.POST("/imports/posts", upload.Import)
	api.GET("/exports/posts", upload.Export)
	api.GET("/activities", activities.List)

	return &testEnv{
		fake:   fake,
		cfg:    cfg,
		engine: engine,
		repo:   repo,
		jobs:   jobs,
	}
}

func token(t *testing.T, userID int64, role string) string {
	t.Helper()
	tok, err := jwt.GenerateToken(userID, "user"+role, role, testJWTSecret, 1)
	require.NoError(t, err)
	return tok
}

type requestOption func(*http.Request)

func withToken(tok string) requestOption {
	return func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "token", Value: tok})
	}
}

func withHeader(key, value string) requestOption {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}

func (e *testEnv) do(method, path string, body io.Reader, opts ...requestOption) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	for _, opt := range opts {
		opt(req)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func (e *testEnv) doJSON(method, path string, body interface{}, opts ...requestOption) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		r = strings.NewReader(string(data))
	}
	opts = append(opts, withHeader("Content-Type", "application/json"))
	return e.do(method, path, r, opts...)
}

func (e *testEnv) form(path string, values map[string]string, opts ...requestOption) *httptest.ResponseRecorder {
	form := url.Values{}
	for k, v := range values {
		form.Set(k, v)
	}
	opts = append(opts, withHeader("Content-Type", "application/x-www-form-urlencoded"))
	return e.do(http.MethodPost, path, strings.NewReader(form.Encode()), opts...)
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func int64Ptr(v int64) *int64 { return &v }

// stubSidebar 公共区块的后端数据
func stubSidebar(fake *testutil.FakeBackend) {
	fake.JSON(http.MethodGet, "/categories/tree", http.StatusOK, []*model.Category{
		{ID: 1, Name: "Go", Slug: "go", DisplayOrder: 0},
	})
	fake.JSON(http.MethodGet, "/tags", http.StatusOK, []model.Tag{{ID: 1, Name: "gin", Slug: "gin"}})
	fake.JSON(http.MethodGet, "/publications", http.StatusOK, []model.Publication{})
	fake.JSON(http.MethodGet, "/seo", http.StatusOK, model.SEOConfig{SiteTitle: "Go Notes"})
}

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/blog_web_server/config"
	"github.com/qs3c/blog_web_server/internal/pkg/jwt"
	"github.com/qs3c/blog_web_server/internal/pkg/response"
	"github.com/qs3c/blog_web_server/internal/pkg/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testJWTSecret = "test-secret-key-for-middleware"

var testSessionConfig = config.SessionConfig{
	CookieName:  "token",
	MaxAgeHours: 24,
	JWTSecret:   testJWTSecret,
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	return resp
}

func newToken(t *testing.T, userID int64, role string) string {
	t.Helper()
	token, err := jwt.GenerateToken(userID, "user", role, testJWTSecret, 24)
	require.NoError(t, err)
	return token
}

func withCookie(req *http.Request, token string) *http.Request {
	req.AddCookie(&http.Cookie{Name: testSessionConfig.CookieName, Value: token})
	return req
}

func TestSession_ValidCookie(t *testing.T) {
	router := gin.New()
	router.Use(Session(testSessionConfig))
	router.GET("/test", func(c *gin.Context) {
		sess, ok := GetSession(c)
		require.True(t, ok)
		assert.Equal(t, int64(123), sess.UserID)
		assert.Equal(t, "editor", sess.Role)

		fromCtx, ok := session.FromContext(c.Request.Context())
		require.True(t, ok)
		assert.Equal(t, sess.Token, fromCtx.Token)
		c.Status(http.StatusOK)
	})

	req := withCookie(httptest.NewRequest("GET", "/test", nil), newToken(t, 123, "editor"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSession_NoCookie(t *testing.T) {
	router := gin.New()
	router.Use(Session(testSessionConfig))
	router.GET("/test", func(c *gin.Context) {
		_, ok := GetSession(c)
		assert.False(t, ok)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSession_InvalidCookieIsCleared(t *testing.T) {
	router := gin.New()
	router.Use(Session(testSessionConfig))
	router.GET("/test", func(c *gin.Context) {
		_, ok := GetSession(c)
		assert.False(t, ok)
		c.Status(http.StatusOK)
	})

	req := withCookie(httptest.NewRequest("GET", "/test", nil), "not-a-jwt")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.True(t, cookies[0].MaxAge < 0)
}

func TestRequireSession_RedirectsToLogin(t *testing.T) {
	router := gin.New()
	router.Use(Session(testSessionConfig))
	router.GET("/admin", RequireSession(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/admin", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?next=%2Fadmin", w.Header().Get("Location"))
}

func TestRequireAPISession(t *testing.T) {
	router := gin.New()
	router.Use(Session(testSessionConfig))
	router.GET("/admin/api/posts", RequireAPISession(), func(c *gin.Context) {
		response.Success(c, nil)
	})

	t.Run("anonymous", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/admin/api/posts", nil))

		resp := parseResponse(t, w)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, response.CodeAuthFailed, resp.Code)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "/login?next=%2Fadmin", data["redirect"])
	})

	t.Run("logged in", func(t *testing.T) {
		req := withCookie(httptest.NewRequest("GET", "/admin/api/posts", nil), newToken(t, 1, "editor"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, response.CodeSuccess, parseResponse(t, w).Code)
	})
}

func TestRequireRole(t *testing.T) {
	router := gin.New()
	router.Use(Session(testSessionConfig))
	router.GET("/users", RequireAPISession(), RequireRole("admin"), func(c *gin.Context) {
		response.Success(c, nil)
	})

	tests := []struct {
		name string
		role string
		code int
	}{
		{"admin passes", "admin", response.CodeSuccess},
		{"editor rejected", "editor", response.CodePermissionDenied},
		{"no role rejected", "", response.CodePermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withCookie(httptest.NewRequest("GET", "/users", nil), newToken(t, 1, tt.role))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.code, parseResponse(t, w).Code)
		})
	}
}

func TestSetAndClearSessionCookie(t *testing.T) {
	router := gin.New()
	router.GET("/set", func(c *gin.Context) {
		SetSessionCookie(c, testSessionConfig, "abc")
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/set", nil))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "abc", cookies[0].Value)
	assert.Equal(t, 24*3600, cookies[0].MaxAge)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
}

func TestSafeNext(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/admin", "/admin"},
		{"/posts/hello?page=2", "/posts/hello?page=2"},
		{"https://evil.com/x", "/"},
		{"//evil.com/x", "/"},
		{"relative", "/"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SafeNext(tt.in), tt.in)
	}
}

func TestLoginURL(t *testing.T) {
	assert.Equal(t, "/login", LoginURL(""))
	assert.Equal(t, "/login", LoginURL("/"))
	assert.Equal(t, "/login?next=%2Fadmin%3Ftab%3Dposts", LoginURL("/admin?tab=posts"))
}

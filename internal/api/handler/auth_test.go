package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/blog_web_server/internal/model"
	"github.com/qs3c/blog_web_server/internal/model/dto"
	"github.com/qs3c/blog_web_server/internal/pkg/response"
	"github.com/qs3c/blog_web_server/internal/pkg/session"
	"github.com/qs3c/blog_web_server/internal/testutil"
)

func TestLoginPage(t *testing.T) {
	env := setupEnv(t)

	t.Run("anonymous sees form", func(t *testing.T) {
		w := env.do(http.MethodGet, "/login?next=%2Fadmin%3Ftab%3Dposts", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `name="next" value="/admin?tab=posts"`)
	})

	t.Run("logged in is redirected", func(t *testing.T) {
		w := env.do(http.MethodGet, "/login", nil, withToken(token(t, 1, "admin")))

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/admin", w.Header().Get("Location"))
	})

	t.Run("external next is ignored", func(t *testing.T) {
		w := env.do(http.MethodGet, "/login?next=https://evil.com", nil)
		assert.Contains(t, w.Body.String(), `name="next" value="/"`)
	})
}

func TestLogin_Success(t *testing.T) {
	env := setupEnv(t)
	issued := token(t, 7, "editor")
	env.fake.JSON(http.MethodPost, "/auth/login", http.StatusOK, dto.LoginResponse{
		Token: issued,
		User:  &model.User{ID: 7, Username: "ed", Role: "editor"},
	})

	w := env.form("/login", map[string]string{
		"email":         "ed@example.com",
		"password":      "secret123",
		"captcha_token": "captcha",
		"next":          "/admin",
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.Equal(t, issued, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := setupEnv(t)
	env.fake.JSON(http.MethodPost, "/auth/login", http.StatusUnauthorized, map[string]string{"message": "bad password"})

	w := env.form("/login", map[string]string{"email": "ed@example.com", "password": "wrongpass"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "邮箱或密码错误")
	assert.Contains(t, w.Body.String(), `value="ed@example.com"`)
	assert.Empty(t, w.Result().Cookies())
}

func TestLogin_ValidationBeforeRequest(t *testing.T) {
	env := setupEnv(t)

	w := env.form("/login", map[string]string{"email": "not-an-email", "password": "x"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, env.fake.Total())
}

func TestLogout(t *testing.T) {
	env := setupEnv(t)
	env.fake.Handle(http.MethodPost, "/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	tok := token(t, 1, "admin")

	w := env.form("/logout", nil, withToken(tok))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/?notice=logged_out", w.Header().Get("Location"))

	reqs := env.fake.Requests(http.MethodPost, "/auth/logout")
	require.Len(t, reqs, 1)
	assert.Equal(t, "Bearer "+tok, reqs[0].Authorization)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
}

func TestAdmin_RequiresSession(t *testing.T) {
	env := setupEnv(t)

	w := env.do(http.MethodGet, "/admin", nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?next=%2Fadmin", w.Header().Get("Location"))
}

func TestAdminDashboard(t *testing.T) {
	env := setupEnv(t)
	env.fake.JSON(http.MethodGet, "/analytics/overview", http.StatusOK, model.AnalyticsOverview{Range: "7d", TotalPosts: 12})
	require.NoError(t, env.repo.Create(&model.Activity{
		UserID:    1,
		Username:  "admin",
		Action:    "reorder",
		Resource:  "categories",
		CreatedAt: time.Now(),
	}))

	w := env.do(http.MethodGet, "/admin", nil, withToken(token(t, 1, "admin")))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<strong>12</strong>")
	assert.Contains(t, body, "reorder categories")
}

func TestAdminDashboard_AnalyticsDegraded(t *testing.T) {
	env := setupEnv(t)
	env.fake.JSON(http.MethodGet, "/analytics/overview", http.StatusServiceUnavailable, nil)

	w := env.do(http.MethodGet, "/admin", nil, withToken(token(t, 1, "admin")))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "统计数据暂时无法加载")
	assert.Contains(t, w.Body.String(), `data-sections="analytics"`)
}

func TestAdminDashboard_BackendUnauthorized(t *testing.T) {
	env := setupEnv(t)
	env.fake.JSON(http.MethodGet, "/analytics/overview", http.StatusUnauthorized, map[string]string{"message": "expired"})

	w := env.do(http.MethodGet, "/admin", nil, withToken(token(t, 1, "admin")))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?next=%2Fadmin", w.Header().Get("Location"))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
}

func TestAPI_BackendUnauthorizedClearsSession(t *testing.T) {
	env := setupEnv(t)
	env.fake.JSON(http.MethodGet, "/auth/me", http.StatusUnauthorized, map[string]string{"message": "expired"})

	w := env.do(http.MethodGet, "/admin/api/me", nil, withToken(token(t, 1, "admin")))

	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeAuthFailed, resp.Code)
	assert.Equal(t, "/login?next=%2Fadmin", resp.Data.(map[string]interface{})["redirect"])

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
}

func TestAPI_Me(t *testing.T) {
	env := setupEnv(t)
	env.fake.Handle(http.MethodGet, "/auth/me", func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(w, http.StatusOK, model.User{ID: 1, Username: "root", Role: r.Header.Get("Authorization")})
	})
	tok := token(t, 1, "admin")

	w := env.do(http.MethodGet, "/admin/api/me", nil, withToken(tok))

	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "root", data["username"])
	assert.Equal(t, "Bearer "+tok, data["role"])
}

func TestSessionFromCookieReachesServices(t *testing.T) {
	env := setupEnv(t)
	tok := token(t, 3, "editor")

	sess, err := session.Parse(tok, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, int64(3), sess.UserID)

	env.fake.JSON(http.MethodGet, "/tags", http.StatusOK, []model.Tag{})
	env.do(http.MethodGet, "/admin/api/tags", nil, withToken(tok))

	reqs := env.fake.Requests(http.MethodGet, "/tags")
	require.Len(t, reqs, 1)
	assert.Equal(t, "Bearer "+tok, reqs[0].Authorization)
}

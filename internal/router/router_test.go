package router

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/natural-botanicals/internal/api/handler"
	"github.com/d60-Lab/natural-botanicals/internal/api/middleware"
	"github.com/d60-Lab/natural-botanicals/internal/cache"
	"github.com/d60-Lab/natural-botanicals/internal/repository"
	"github.com/d60-Lab/natural-botanicals/internal/service"
	"github.com/d60-Lab/natural-botanicals/internal/session"
	"github.com/d60-Lab/natural-botanicals/internal/web"
	"github.com/d60-Lab/natural-botanicals/pkg/response"
)

const (
	cookieName    = "nb_session"
	adminUser     = "admin"
	adminPassword = "secret"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	engine *gin.Engine
	db     *gorm.DB
}

func newTestApp(t *testing.T, limiter *middleware.RateLimiter) *testApp {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, repository.InitSchema(db))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	postCache := cache.NewPostCache(client, time.Minute)
	posts := service.NewPostService(repository.NewPostRepository(db), postCache)
	auth := service.NewAuthService(repository.NewUserRepository(db))
	require.NoError(t, auth.EnsureAdmin(context.Background(), adminUser, adminPassword, "Administrator"))

	sessions := session.NewManager(session.Config{Secret: "test-secret", Issuer: "test", TTL: time.Hour}, session.NewRedisRevoker(client))
	composer, err := web.NewComposer()
	require.NoError(t, err)

	if limiter == nil {
		limiter = middleware.NewRateLimiter(rate.Limit(1000), 1000)
	}
	h := handler.NewHandler(posts, auth, sessions, handler.CookieConfig{Name: cookieName}, func(ctx context.Context) error {
		return sqlDB.PingContext(ctx)
	})
	h.SetCacheStats(postCache.Stats)
	engine := Setup(h, composer, Options{
		Sessions:      sessions,
		SessionCookie: middleware.SessionCookie{Name: cookieName},
		SigninLimiter: limiter,
		Swagger:       true,
	})
	return &testApp{engine: engine, db: db}
}

func (a *testApp) do(t *testing.T, method, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *testApp) doJSON(t *testing.T, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *testApp) signIn(t *testing.T) *http.Cookie {
	t.Helper()
	w := a.do(t, http.MethodPost, "/signin", url.Values{"username": {adminUser}, "password": {adminPassword}}, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	for _, c := range w.Result().Cookies() {
		if c.Name == cookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

func postForm(title, body, author string) url.Values {
	return url.Values{"title": {title}, "body": {body}, "author": {author}}
}

func TestPublicPages(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do(t, http.MethodGet, "/", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "NATURAL BOTANICALS")
	assert.Contains(t, w.Body.String(), "SIGN IN!")
	assert.Contains(t, w.Body.String(), "&copy; Natural Botanicals")
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w = app.do(t, http.MethodGet, "/pages/apples", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "APPLES")

	w = app.do(t, http.MethodGet, "/pages/bananas", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodGet, "/no/such/page", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Not found")
}

func TestShopRequiresSignin(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do(t, http.MethodGet, "/pages/our_shop", nil, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/signin?next=%2Fpages%2Four_shop", w.Header().Get("Location"))

	cookie := app.signIn(t)
	w = app.do(t, http.MethodGet, "/pages/our_shop", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminRequiresSignin(t *testing.T) {
	app := newTestApp(t, nil)

	for _, path := range []string{"/admin", "/admin/posts", "/admin/articles/new", "/admin/posts/1/edit"} {
		w := app.do(t, http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusSeeOther, w.Code, path)
		assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "/signin?next="), path)
	}

	// 未登录的写操作不会落库
	w := app.do(t, http.MethodPost, "/admin/posts/new", postForm("Apples", "Healthy fruit", "Lyonchar"), nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	var n int64
	require.NoError(t, app.db.Table("posts").Count(&n).Error)
	assert.Zero(t, n)
}

func TestSigninAndSignout(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do(t, http.MethodPost, "/signin", url.Values{"username": {adminUser}, "password": {"wrong"}}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid username or password")
	assert.Contains(t, w.Body.String(), `value="admin"`)

	w = app.do(t, http.MethodPost, "/signin", url.Values{
		"username": {adminUser}, "password": {adminPassword}, "next": {"/admin/articles"},
	}, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/articles", w.Header().Get("Location"))

	cookie := app.signIn(t)
	assert.True(t, cookie.HttpOnly)

	w = app.do(t, http.MethodGet, "/admin", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Signed in as Administrator")
	assert.Contains(t, w.Body.String(), "SignOut")

	// 已登录访问登录页直接跳转
	w = app.do(t, http.MethodGet, "/signin", nil, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = app.do(t, http.MethodPost, "/signout", nil, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	// 吊销后旧 cookie 失效
	w = app.do(t, http.MethodGet, "/admin", nil, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestSigninOpenRedirect(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do(t, http.MethodPost, "/signin", url.Values{
		"username": {adminUser}, "password": {adminPassword}, "next": {"//evil.example"},
	}, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))
}

func TestSigninRateLimited(t *testing.T) {
	app := newTestApp(t, middleware.NewRateLimiter(rate.Every(time.Hour), 1))

	w := app.do(t, http.MethodPost, "/signin", url.Values{"username": {adminUser}, "password": {"wrong"}}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = app.do(t, http.MethodPost, "/signin", url.Values{"username": {adminUser}, "password": {adminPassword}}, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// 登录页本身不限流
	w = app.do(t, http.MethodGet, "/signin", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPostLifecycle(t *testing.T) {
	app := newTestApp(t, nil)
	cookie := app.signIn(t)

	w := app.do(t, http.MethodGet, "/admin/posts", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Nothing here yet.")

	w = app.do(t, http.MethodPost, "/admin/posts/new", postForm("Apples", "Healthy fruit", "Lyonchar"), cookie)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/posts?msg=created", w.Header().Get("Location"))

	w = app.do(t, http.MethodGet, "/admin/posts?msg=created", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Blog created successfully")
	assert.Contains(t, body, "<td>Apples</td>")
	assert.Contains(t, body, "<td>Healthy fruit</td>")
	assert.Contains(t, body, "<td>Lyonchar</td>")
	assert.Contains(t, body, `href="/admin/posts/1/edit"`)
	assert.Contains(t, body, `<form action="/admin/posts/1/delete" method="POST"`)

	w = app.do(t, http.MethodGet, "/admin/posts/1", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "written by Lyonchar")

	w = app.do(t, http.MethodGet, "/admin/posts/1/edit", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	body = w.Body.String()
	assert.Contains(t, body, `value="Apples"`)
	assert.Contains(t, body, ">Healthy fruit</textarea>")
	assert.Contains(t, body, `value="Lyonchar"`)
	assert.Contains(t, body, `action="/admin/posts/1/edit"`)

	w = app.do(t, http.MethodPost, "/admin/posts/1/edit", postForm("Apples V2", "Healthy fruit", "Lyonchar"), cookie)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/posts?msg=updated", w.Header().Get("Location"))

	w = app.do(t, http.MethodGet, "/admin/posts", nil, cookie)
	assert.Contains(t, w.Body.String(), "<td>Apples V2</td>")
	assert.NotContains(t, w.Body.String(), "<td>Apples</td>")

	// 公开博客同步可见
	w = app.do(t, http.MethodGet, "/blog", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Apples V2")

	w = app.do(t, http.MethodPost, "/admin/posts/1/delete", url.Values{}, cookie)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/posts?msg=deleted", w.Header().Get("Location"))

	w = app.do(t, http.MethodGet, "/admin/posts?msg=deleted", nil, cookie)
	assert.Contains(t, w.Body.String(), "Blog deleted")
	assert.Contains(t, w.Body.String(), "Nothing here yet.")
	assert.NotContains(t, w.Body.String(), "Apples V2")
}

func TestDeleteIgnoresGet(t *testing.T) {
	app := newTestApp(t, nil)
	cookie := app.signIn(t)

	w := app.do(t, http.MethodPost, "/admin/posts/new", postForm("Apples", "Healthy fruit", "Lyonchar"), cookie)
	require.Equal(t, http.StatusSeeOther, w.Code)

	// 链接跳转只能产生 GET，不得删除记录
	w = app.do(t, http.MethodGet, "/admin/posts/1/delete", nil, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodGet, "/admin/posts/1", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	var n int64
	require.NoError(t, app.db.Table("posts").Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestDashboardCounts(t *testing.T) {
	app := newTestApp(t, nil)
	cookie := app.signIn(t)

	app.do(t, http.MethodPost, "/admin/posts/new", postForm("Apples", "Healthy fruit", "Lyonchar"), cookie)
	app.do(t, http.MethodPost, "/admin/posts/new", postForm("Carrots", "Crunchy", "Lyonchar"), cookie)
	app.do(t, http.MethodPost, "/admin/articles/new", postForm("Oranges", "Citrus", "Lyonchar"), cookie)

	w := app.do(t, http.MethodGet, "/admin", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<td>Blogs</td><td>2</td>")
	assert.Contains(t, w.Body.String(), "<td>Articles</td><td>1</td>")
}

func TestKindsAreSeparate(t *testing.T) {
	app := newTestApp(t, nil)
	cookie := app.signIn(t)

	w := app.do(t, http.MethodPost, "/admin/articles/new", postForm("Oranges", "Citrus", "Lyonchar"), cookie)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/articles?msg=created", w.Header().Get("Location"))

	w = app.do(t, http.MethodGet, "/admin/articles", nil, cookie)
	assert.Contains(t, w.Body.String(), "<td>Oranges</td>")
	assert.Contains(t, w.Body.String(), "CREATE NEW ARTICLE")

	w = app.do(t, http.MethodGet, "/admin/posts", nil, cookie)
	assert.NotContains(t, w.Body.String(), "Oranges")

	w = app.do(t, http.MethodGet, "/admin/posts/1", nil, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = app.do(t, http.MethodGet, "/blog/1", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateValidation(t *testing.T) {
	app := newTestApp(t, nil)
	cookie := app.signIn(t)

	w := app.do(t, http.MethodPost, "/admin/posts/new", postForm("", "Healthy fruit", "Lyonchar"), cookie)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "please fill in every field")
	assert.Contains(t, body, ">Healthy fruit</textarea>")
	assert.Contains(t, body, `value="Lyonchar"`)

	w = app.do(t, http.MethodPost, "/admin/posts/new", postForm("   ", "  ", ""), cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPost, "/admin/posts/new", postForm(strings.Repeat("a", 256), "b", "c"), cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var n int64
	require.NoError(t, app.db.Table("posts").Count(&n).Error)
	assert.Zero(t, n)
}

func TestMalformedFormRejected(t *testing.T) {
	app := newTestApp(t, nil)
	cookie := app.signIn(t)

	for _, path := range []string{"/admin/posts/new", "/admin/posts/1/edit"} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("title=%zz&body=x&author=y"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(cookie)
		w := httptest.NewRecorder()
		app.engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Contains(t, w.Body.String(), "invalid form submission", path)
		assert.NotContains(t, w.Body.String(), "please fill in every field", path)
	}

	var n int64
	require.NoError(t, app.db.Table("posts").Count(&n).Error)
	assert.Zero(t, n)
}

func TestMarkupIsEscaped(t *testing.T) {
	app := newTestApp(t, nil)
	cookie := app.signIn(t)

	payload := "<script>alert(1)</script>"
	w := app.do(t, http.MethodPost, "/admin/posts/new", postForm(payload, payload, "Mallory"), cookie)
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = app.do(t, http.MethodGet, "/admin/posts", nil, cookie)
	assert.NotContains(t, w.Body.String(), payload)
	assert.Contains(t, w.Body.String(), "&lt;script&gt;alert(1)&lt;/script&gt;")

	w = app.do(t, http.MethodGet, "/admin/posts/1/edit", nil, cookie)
	assert.NotContains(t, w.Body.String(), payload)
	assert.Contains(t, w.Body.String(), "&lt;script&gt;")

	w = app.do(t, http.MethodGet, "/blog/1", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), payload)
}

func TestPublicBlogSanitizesBody(t *testing.T) {
	app := newTestApp(t, nil)
	cookie := app.signIn(t)

	w := app.do(t, http.MethodPost, "/admin/posts/new", postForm("Pineapples", "<b>Sweet</b><script>steal()</script>", "Lyonchar"), cookie)
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = app.do(t, http.MethodGet, "/blog/1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<b>Sweet</b>")
	assert.NotContains(t, w.Body.String(), "steal()")
}

func TestUnknownIDs(t *testing.T) {
	app := newTestApp(t, nil)
	cookie := app.signIn(t)

	for _, path := range []string{"/admin/posts/999", "/admin/posts/999/edit", "/admin/posts/abc/edit", "/admin/posts/0", "/blog/999", "/blog/abc"} {
		w := app.do(t, http.MethodGet, path, nil, cookie)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}

	// 更新、删除不存在的记录为空操作
	w := app.do(t, http.MethodPost, "/admin/posts/999/edit", postForm("Ghost", "Nothing", "Nobody"), cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	w = app.do(t, http.MethodPost, "/admin/posts/999/delete", url.Values{}, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	var n int64
	require.NoError(t, app.db.Table("posts").Count(&n).Error)
	assert.Zero(t, n)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) (response.Response, json.RawMessage) {
	t.Helper()
	var raw struct {
		response.Response
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	return raw.Response, raw.Data
}

func TestPostAPI(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.doJSON(t, http.MethodGet, "/api/v1/blogs", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, data := decode(t, w)
	assert.JSONEq(t, `[]`, string(data))

	w = app.doJSON(t, http.MethodPost, "/api/v1/blogs", `{"title":"Apples","body":"Healthy fruit","author":"Lyonchar"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	cookie := app.signIn(t)
	w = app.doJSON(t, http.MethodPost, "/api/v1/blogs", `{"title":"Apples","body":"Healthy fruit","author":"Lyonchar"}`, cookie)
	require.Equal(t, http.StatusCreated, w.Code)
	resp, data := decode(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)
	var created struct {
		ID    uint   `json:"id"`
		Kind  string `json:"kind"`
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(data, &created))
	assert.Equal(t, uint(1), created.ID)
	assert.Equal(t, "blog", created.Kind)

	w = app.doJSON(t, http.MethodGet, "/api/v1/blogs/1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Apples"`)

	w = app.doJSON(t, http.MethodGet, "/api/v1/articles/1", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.doJSON(t, http.MethodPut, "/api/v1/blogs/1", `{"title":"Apples V2","body":"Healthy fruit","author":"Lyonchar"}`, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	w = app.doJSON(t, http.MethodGet, "/api/v1/blogs", "", nil)
	assert.Contains(t, w.Body.String(), `"title":"Apples V2"`)

	w = app.doJSON(t, http.MethodPost, "/api/v1/blogs", `{"title":"","body":"x","author":"y"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp, _ = decode(t, w)
	assert.Equal(t, response.CodeBadRequest, resp.Code)

	w = app.doJSON(t, http.MethodPost, "/api/v1/blogs", `{not json`, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.doJSON(t, http.MethodDelete, "/api/v1/blogs/1", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	w = app.doJSON(t, http.MethodGet, "/api/v1/blogs/1", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.doJSON(t, http.MethodGet, "/api/v1/recipes", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","post_cache":{"hits":0,"misses":0}}`, w.Body.String())

	// 第一次列表回源，第二次命中缓存
	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, app.do(t, http.MethodGet, "/blog", nil, nil).Code)
	}
	w = app.do(t, http.MethodGet, "/health", nil, nil)
	assert.JSONEq(t, `{"status":"ok","post_cache":{"hits":1,"misses":1}}`, w.Body.String())
}

func TestHomeListsNewestFirst(t *testing.T) {
	app := newTestApp(t, nil)
	cookie := app.signIn(t)
	for i := 1; i <= 6; i++ {
		w := app.do(t, http.MethodPost, "/admin/posts/new", postForm(fmt.Sprintf("Entry %02d", i), "body", "Ann"), cookie)
		require.Equal(t, http.StatusSeeOther, w.Code)
	}

	body := app.do(t, http.MethodGet, "/", nil, nil).Body.String()
	assert.NotContains(t, body, "Entry 01")
	last := -1
	for i := 6; i >= 2; i-- {
		at := strings.Index(body, fmt.Sprintf("Entry %02d", i))
		require.NotEqual(t, -1, at, i)
		assert.Greater(t, at, last, i)
		last = at
	}
}

func TestSwaggerDoc(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do(t, http.MethodGet, "/swagger/doc.json", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/v1/{kind}")
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/natural-botanicals/internal/api/middleware"
	"github.com/d60-Lab/natural-botanicals/internal/model"
	"github.com/d60-Lab/natural-botanicals/internal/repository"
	"github.com/d60-Lab/natural-botanicals/internal/service"
	"github.com/d60-Lab/natural-botanicals/internal/session"
	"github.com/d60-Lab/natural-botanicals/internal/web"
	"github.com/d60-Lab/natural-botanicals/pkg/logger"
)

// CookieConfig 会话 cookie 参数，与 Session 中间件共用
type CookieConfig = middleware.SessionCookie

// Handler 聚合所有 HTTP 处理函数
type Handler struct {
	postService service.PostService
	authService service.AuthService
	sessions    *session.Manager
	cookie      CookieConfig
	ping        func(ctx context.Context) error
	cacheStats  func() (hits, misses int64)
}

// NewHandler wires the handlers. ping backs /health and may be nil.
func NewHandler(postService service.PostService, authService service.AuthService, sessions *session.Manager, cookie CookieConfig, ping func(ctx context.Context) error) *Handler {
	return &Handler{
		postService: postService,
		authService: authService,
		sessions:    sessions,
		cookie:      cookie,
		ping:        ping,
	}
}

// SetCacheStats 在 /health 中附带文章列表缓存命中数
func (h *Handler) SetCacheStats(stats func() (hits, misses int64)) {
	h.cacheStats = stats
}

const (
	kindKey     = "post_kind"
	basePathKey = "post_base_path"
)

// BindKind 路由组中间件：绑定该组操作的文章类型与后台路径
func BindKind(kind model.PostKind, basePath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(kindKey, kind)
		c.Set(basePathKey, basePath)
		c.Next()
	}
}

func boundKind(c *gin.Context) (model.PostKind, string) {
	kind, _ := c.Get(kindKey)
	k, _ := kind.(model.PostKind)
	if k == "" {
		k = model.KindBlog
	}
	return k, c.GetString(basePathKey)
}

// parseID 非数字或 0 视为不存在
func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) render(c *gin.Context, status int, page string, data web.PageData) {
	data.Session = middleware.CurrentIdentity(c)
	if data.Section == "" {
		data.Section = web.SectionPublic
	}
	c.HTML(status, page, data)
}

func (h *Handler) notFound(c *gin.Context, section web.Section) {
	h.render(c, http.StatusNotFound, web.PageNotFound, web.PageData{Title: "Not found", Section: section})
}

// fail renders NotFound for missing records and the generic error page for
// store failures.
func (h *Handler) fail(c *gin.Context, section web.Section, err error) {
	if errors.Is(err, repository.ErrPostNotFound) || errors.Is(err, service.ErrUnknownKind) {
		h.notFound(c, section)
		return
	}
	h.internal(c, err)
	h.render(c, http.StatusInternalServerError, web.PageError, web.PageData{Title: "Error", Section: section})
}

func (h *Handler) internal(c *gin.Context, err error) {
	_ = c.Error(err)
	logger.Error("request failed", zap.Error(err), zap.String("path", c.Request.URL.Path), zap.String("request_id", middleware.GetRequestID(c)))
	middleware.ReportError(c, err)
}

// NoRoute renders the 404 page for unknown paths.
func (h *Handler) NoRoute(c *gin.Context) {
	h.notFound(c, web.SectionPublic)
}

// Health 健康检查
// @Summary 健康检查
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	if h.ping != nil {
		if err := h.ping(c.Request.Context()); err != nil {
			logger.Warn("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	body := gin.H{"status": "ok"}
	if h.cacheStats != nil {
		hits, misses := h.cacheStats()
		body["post_cache"] = gin.H{"hits": hits, "misses": misses}
	}
	c.JSON(http.StatusOK, body)
}

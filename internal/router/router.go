package router

import (
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "github.com/d60-Lab/natural-botanicals/docs"
	"github.com/d60-Lab/natural-botanicals/internal/api/handler"
	"github.com/d60-Lab/natural-botanicals/internal/api/middleware"
	"github.com/d60-Lab/natural-botanicals/internal/model"
	"github.com/d60-Lab/natural-botanicals/internal/session"
	"github.com/d60-Lab/natural-botanicals/internal/web"
)

// Options 路由装配参数
type Options struct {
	Sessions      *session.Manager
	SessionCookie middleware.SessionCookie
	SigninLimiter *middleware.RateLimiter

	// TracingService 非空时挂载 otelgin
	TracingService string
	Sentry         bool
	Swagger        bool
}

// Setup 注册中间件与全部路由
func Setup(h *handler.Handler, composer *web.Composer, opts Options) *gin.Engine {
	r := gin.New()
	r.HTMLRender = composer

	if opts.TracingService != "" {
		r.Use(otelgin.Middleware(opts.TracingService))
	}
	r.Use(middleware.RequestID(), middleware.Logger(), middleware.Recovery())
	if opts.Sentry {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	r.Use(
		middleware.SecurityHeaders(),
		gzip.Gzip(gzip.DefaultCompression),
		middleware.Session(opts.Sessions, opts.SessionCookie),
	)

	r.GET("/health", h.Health)
	if opts.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// 公共页面
	r.GET("/", h.Home)
	r.GET("/pages/:topic", h.Topic)
	r.GET("/blog", h.Blog)
	r.GET("/blog/:id", h.BlogPost)

	signin := []gin.HandlerFunc{h.Signin}
	if opts.SigninLimiter != nil {
		signin = append([]gin.HandlerFunc{opts.SigninLimiter.Middleware()}, signin...)
	}
	r.GET("/signin", h.SigninForm)
	r.POST("/signin", signin...)
	r.POST("/signout", h.Signout)

	// 后台
	admin := r.Group("/admin", middleware.RequireAuth())
	admin.GET("", h.Dashboard)
	for _, section := range []struct {
		path string
		kind model.PostKind
	}{
		{path: "posts", kind: model.KindBlog},
		{path: "articles", kind: model.KindArticle},
	} {
		base := "/admin/" + section.path
		g := admin.Group("/"+section.path, handler.BindKind(section.kind, base))
		g.GET("", h.ListPosts)
		g.GET("/new", h.NewPostForm)
		g.POST("/new", h.CreatePost)
		g.GET("/:id", h.ShowPost)
		g.GET("/:id/edit", h.EditPostForm)
		g.POST("/:id/edit", h.UpdatePost)
		g.POST("/:id/delete", h.DeletePost)
	}

	// JSON API
	api := r.Group("/api/v1")
	api.GET("/:kind", h.APIListPosts)
	api.GET("/:kind/:id", h.APIGetPost)
	write := api.Group("", middleware.RequireAuthAPI())
	write.POST("/:kind", h.APICreatePost)
	write.PUT("/:kind/:id", h.APIUpdatePost)
	write.DELETE("/:kind/:id", h.APIDeletePost)

	r.NoRoute(h.NoRoute)
	return r
}

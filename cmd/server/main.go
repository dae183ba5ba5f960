// @title Natural Botanicals API
// @version 1.0
// @description Blog and article management for the Natural Botanicals site.
// @host localhost:8080
// @BasePath /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/d60-Lab/natural-botanicals/config"
	"github.com/d60-Lab/natural-botanicals/internal/api/handler"
	"github.com/d60-Lab/natural-botanicals/internal/api/middleware"
	"github.com/d60-Lab/natural-botanicals/internal/cache"
	"github.com/d60-Lab/natural-botanicals/internal/repository"
	"github.com/d60-Lab/natural-botanicals/internal/router"
	"github.com/d60-Lab/natural-botanicals/internal/service"
	"github.com/d60-Lab/natural-botanicals/internal/session"
	"github.com/d60-Lab/natural-botanicals/internal/web"
	"github.com/d60-Lab/natural-botanicals/pkg/database"
	"github.com/d60-Lab/natural-botanicals/pkg/logger"
	"github.com/d60-Lab/natural-botanicals/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	gin.SetMode(cfg.Server.Mode)

	sentryEnabled := cfg.Sentry.DSN != ""
	if sentryEnabled {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			Environment:      cfg.Sentry.Environment,
			EnableTracing:    cfg.Sentry.TracesSampleRate > 0,
			TracesSampleRate: cfg.Sentry.TracesSampleRate,
		}); err != nil {
			logger.Fatal("init sentry", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx := context.Background()
	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		logger.Fatal("init tracing", zap.Error(err))
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()
	if err := repository.InitSchema(db); err != nil {
		logger.Fatal("migrate schema", zap.Error(err))
	}

	// Redis 可选：文章列表缓存与会话吊销
	var (
		postCache *cache.PostCache
		revoker   session.Revoker
	)
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatal("connect redis", zap.Error(err), zap.String("addr", cfg.Redis.Addr))
		}
		postCache = cache.NewPostCache(rdb, cfg.Redis.PostCacheTTL)
		revoker = session.NewRedisRevoker(rdb)
	}

	postService := service.NewPostService(repository.NewPostRepository(db), postCache)
	authService := service.NewAuthService(repository.NewUserRepository(db))
	if err := authService.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.DisplayName); err != nil {
		logger.Fatal("ensure admin", zap.Error(err))
	}

	sessions := session.NewManager(session.Config{
		Secret: cfg.Session.Secret,
		Issuer: cfg.Session.Issuer,
		TTL:    cfg.Session.TTL,
	}, revoker)

	limiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimit.SigninRPS), cfg.RateLimit.SigninBurst)
	stopCleanup := make(chan struct{})
	go limiter.Run(time.Minute, stopCleanup)

	composer, err := web.NewComposer()
	if err != nil {
		logger.Fatal("parse templates", zap.Error(err))
	}

	cookie := handler.CookieConfig{Name: cfg.Session.CookieName, Secure: cfg.Session.Secure}
	h := handler.NewHandler(postService, authService, sessions, cookie,
		func(context.Context) error { return database.Ping(db) },
	)
	if postCache != nil {
		h.SetCacheStats(postCache.Stats)
	}

	tracingService := ""
	if cfg.Tracing.Enabled {
		tracingService = cfg.Tracing.ServiceName
	}
	engine := router.Setup(h, composer, router.Options{
		Sessions:       sessions,
		SessionCookie:  cookie,
		SigninLimiter:  limiter,
		TracingService: tracingService,
		Sentry:         sentryEnabled,
		Swagger:        cfg.Server.Mode != gin.ReleaseMode,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr), zap.String("db", cfg.Database.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	close(stopCleanup)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("tracing shutdown", zap.Error(err))
	}
	logger.Info("server exited")
}

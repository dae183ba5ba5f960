package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/natural-botanicals/pkg/logger"
)

// Recovery 捕获 panic，记录日志并返回 500。Sentry 上报由内层的 sentrygin 完成
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
					zap.String("request_id", GetRequestID(c)),
					zap.ByteString("stack", debug.Stack()),
				)
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}

// ReportError sends err to Sentry when a hub is attached to the request.
func ReportError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	if hub := sentrygin.GetHubFromContext(c); hub != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("request_id", GetRequestID(c))
			scope.SetExtra("path", c.Request.URL.Path)
			hub.CaptureException(fmt.Errorf("%s %s: %w", c.Request.Method, c.FullPath(), err))
		})
	}
}

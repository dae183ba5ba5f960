package middleware

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/natural-botanicals/internal/session"
	"github.com/d60-Lab/natural-botanicals/pkg/logger"
	"github.com/d60-Lab/natural-botanicals/pkg/response"
)

const identityKey = "identity"

// SessionCookie 会话 cookie 参数
type SessionCookie struct {
	Name   string
	Secure bool
}

// Write sets the cookie HttpOnly and SameSite=Lax. maxAge<0 deletes it.
func (sc SessionCookie) Write(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sc.Name, value, maxAge, "/", "", sc.Secure, true)
}

// Clear expires the cookie with the same attributes it was set with.
func (sc SessionCookie) Clear(c *gin.Context) { sc.Write(c, "", -1) }

// Session 解析会话 cookie，将 Identity 写入 gin 上下文与 request context
func Session(m *session.Manager, cookie SessionCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := session.Anonymous
		if token, err := c.Cookie(cookie.Name); err == nil && token != "" {
			parsed, err := m.Parse(c.Request.Context(), token)
			switch {
			case err == nil:
				id = parsed
			case errors.Is(err, session.ErrInvalidToken), errors.Is(err, session.ErrRevoked):
				// stale cookie, drop it
				cookie.Clear(c)
			default:
				logger.Warn("session check failed", zap.Error(err), zap.String("request_id", GetRequestID(c)))
			}
		}
		SetIdentity(c, id)
		c.Next()
	}
}

// SetIdentity stores id for the rest of the request.
func SetIdentity(c *gin.Context, id session.Identity) {
	c.Set(identityKey, id)
	c.Request = c.Request.WithContext(session.WithIdentity(c.Request.Context(), id))
}

// CurrentIdentity returns the identity resolved by Session.
func CurrentIdentity(c *gin.Context) session.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(session.Identity); ok {
			return id
		}
	}
	return session.FromContext(c.Request.Context())
}

// RequireAuth 未登录时跳转登录页
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentIdentity(c).Authenticated {
			c.Next()
			return
		}
		next := c.Request.URL.RequestURI()
		c.Redirect(http.StatusSeeOther, "/signin?next="+url.QueryEscape(next))
		c.Abort()
	}
}

// RequireAuthAPI answers 401 for unauthenticated JSON API calls.
func RequireAuthAPI() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentIdentity(c).Authenticated {
			c.Next()
			return
		}
		response.Unauthorized(c, "authentication required")
		c.Abort()
	}
}

// SafeNext keeps only local redirect targets.
func SafeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	return next
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/natural-botanicals/internal/api/middleware"
	"github.com/d60-Lab/natural-botanicals/internal/service"
	"github.com/d60-Lab/natural-botanicals/internal/web"
	"github.com/d60-Lab/natural-botanicals/pkg/logger"
)

const afterSignin = "/admin"

type signinForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
	Next     string `form:"next"`
}

// SigninForm 登录页
func (h *Handler) SigninForm(c *gin.Context) {
	next := middleware.SafeNext(c.Query("next"), afterSignin)
	if middleware.CurrentIdentity(c).Authenticated {
		c.Redirect(http.StatusSeeOther, next)
		return
	}
	h.render(c, http.StatusOK, web.PageSignin, web.PageData{Title: "Sign in", Next: next})
}

// Signin 校验账号并写入会话 cookie
func (h *Handler) Signin(c *gin.Context) {
	var form signinForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusBadRequest, web.PageSignin, web.PageData{Title: "Sign in", Error: "invalid sign-in request"})
		return
	}
	next := middleware.SafeNext(form.Next, afterSignin)

	user, err := h.authService.Authenticate(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			logger.Info("sign-in rejected", zap.String("username", form.Username), zap.String("ip", c.ClientIP()))
			h.render(c, http.StatusUnauthorized, web.PageSignin, web.PageData{
				Title:    "Sign in",
				Error:    "invalid username or password",
				Username: form.Username,
				Next:     next,
			})
			return
		}
		h.fail(c, web.SectionPublic, err)
		return
	}

	token, id, err := h.sessions.Issue(user.Username, user.DisplayName)
	if err != nil {
		h.fail(c, web.SectionPublic, err)
		return
	}
	h.cookie.Write(c, token, int(h.sessions.TTL().Seconds()))
	middleware.SetIdentity(c, id)
	logger.Info("signed in", zap.String("username", user.Username))
	c.Redirect(http.StatusSeeOther, next)
}

// Signout 清除会话
func (h *Handler) Signout(c *gin.Context) {
	id := middleware.CurrentIdentity(c)
	if id.Authenticated {
		if err := h.sessions.Revoke(c.Request.Context(), id); err != nil {
			logger.Warn("revoke session", zap.Error(err), zap.String("username", id.Username))
		}
		logger.Info("signed out", zap.String("username", id.Username))
	}
	h.cookie.Clear(c)
	c.Redirect(http.StatusSeeOther, "/")
}

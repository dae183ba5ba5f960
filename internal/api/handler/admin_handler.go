package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/natural-botanicals/internal/model"
	"github.com/d60-Lab/natural-botanicals/internal/service"
	"github.com/d60-Lab/natural-botanicals/internal/web"
	"github.com/d60-Lab/natural-botanicals/pkg/logger"
)

const genericFailure = "something went wrong, contact admin"

var flashMessages = map[string]string{
	"created": "%s created successfully",
	"updated": "%s updated successfully",
	"deleted": "%s deleted",
}

// Dashboard 后台首页
func (h *Handler) Dashboard(c *gin.Context) {
	counts := make(map[string]int64, 2)
	for _, kind := range []model.PostKind{model.KindBlog, model.KindArticle} {
		n, err := h.postService.Count(c.Request.Context(), kind)
		if err != nil {
			h.fail(c, web.SectionAdmin, err)
			return
		}
		counts[string(kind)] = n
	}
	h.render(c, http.StatusOK, web.PageAdminDashboard, web.PageData{Title: "Dashboard", Section: web.SectionAdmin, Counts: counts})
}

// ListPosts 文章表格
func (h *Handler) ListPosts(c *gin.Context) {
	kind, base := boundKind(c)
	posts, err := h.postService.List(c.Request.Context(), kind)
	if err != nil {
		h.internal(c, err)
		h.render(c, http.StatusInternalServerError, web.PageAdminPosts, web.PageData{
			Title: "All " + kind.Label() + "s", Section: web.SectionAdmin, Kind: kind, BasePath: base,
			Error: genericFailure,
		})
		return
	}
	data := web.PageData{Title: "All " + kind.Label() + "s", Section: web.SectionAdmin, Kind: kind, BasePath: base, Posts: posts}
	if msg, ok := flashMessages[c.Query("msg")]; ok {
		data.Flash = fmt.Sprintf(msg, kind.Label())
	}
	h.render(c, http.StatusOK, web.PageAdminPosts, data)
}

// ShowPost 查看单条记录
func (h *Handler) ShowPost(c *gin.Context) {
	kind, base := boundKind(c)
	post, ok := h.lookup(c, kind)
	if !ok {
		return
	}
	h.render(c, http.StatusOK, web.PageAdminPost, web.PageData{Title: post.Title, Section: web.SectionAdmin, Kind: kind, BasePath: base, Post: post})
}

// NewPostForm 创建表单
func (h *Handler) NewPostForm(c *gin.Context) {
	kind, base := boundKind(c)
	h.render(c, http.StatusOK, web.PageAdminPostForm, formPage(kind, base, base+"/new", false))
}

// CreatePost 提交创建
func (h *Handler) CreatePost(c *gin.Context) {
	kind, base := boundKind(c)
	page := formPage(kind, base, base+"/new", false)
	var in service.PostInput
	if err := c.ShouldBind(&in); err != nil {
		h.badForm(c, page, in, err)
		return
	}

	if _, err := h.postService.Create(c.Request.Context(), kind, in); err != nil {
		h.formFailure(c, page, in, err)
		return
	}
	c.Redirect(http.StatusSeeOther, base+"?msg=created")
}

// EditPostForm 预填的编辑表单；记录不存在时 404
func (h *Handler) EditPostForm(c *gin.Context) {
	kind, base := boundKind(c)
	post, ok := h.lookup(c, kind)
	if !ok {
		return
	}
	data := formPage(kind, base, fmt.Sprintf("%s/%d/edit", base, post.ID), true)
	data.Post = post
	data.Form = web.FormValues{Title: post.Title, Body: post.Body, Author: post.Author}
	h.render(c, http.StatusOK, web.PageAdminPostForm, data)
}

// UpdatePost 提交更新；id 不存在时为空操作
func (h *Handler) UpdatePost(c *gin.Context) {
	kind, base := boundKind(c)
	id, ok := parseID(c.Param("id"))
	if !ok {
		h.notFound(c, web.SectionAdmin)
		return
	}
	page := formPage(kind, base, fmt.Sprintf("%s/%d/edit", base, id), true)
	var in service.PostInput
	if err := c.ShouldBind(&in); err != nil {
		h.badForm(c, page, in, err)
		return
	}

	if err := h.postService.Update(c.Request.Context(), kind, id, in); err != nil {
		h.formFailure(c, page, in, err)
		return
	}
	c.Redirect(http.StatusSeeOther, base+"?msg=updated")
}

// DeletePost 删除后跳回列表；id 不存在时为空操作
func (h *Handler) DeletePost(c *gin.Context) {
	kind, base := boundKind(c)
	id, ok := parseID(c.Param("id"))
	if !ok {
		h.notFound(c, web.SectionAdmin)
		return
	}
	if err := h.postService.Delete(c.Request.Context(), kind, id); err != nil {
		h.fail(c, web.SectionAdmin, err)
		return
	}
	c.Redirect(http.StatusSeeOther, base+"?msg=deleted")
}

func (h *Handler) lookup(c *gin.Context, kind model.PostKind) (*model.Post, bool) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		h.notFound(c, web.SectionAdmin)
		return nil, false
	}
	post, err := h.postService.Get(c.Request.Context(), kind, id)
	if err != nil {
		h.fail(c, web.SectionAdmin, err)
		return nil, false
	}
	return post, true
}

func formPage(kind model.PostKind, base, action string, editing bool) web.PageData {
	title := "Create " + kind.Label()
	if editing {
		title = "Update " + kind.Label()
	}
	return web.PageData{
		Title:    title,
		Section:  web.SectionAdmin,
		Kind:     kind,
		BasePath: base,
		Action:   action,
		Editing:  editing,
	}
}

// badForm 请求体无法解析
func (h *Handler) badForm(c *gin.Context, data web.PageData, in service.PostInput, err error) {
	logger.Info("malformed post form", zap.Error(err), zap.String("path", c.Request.URL.Path))
	data.Form = web.FormValues{Title: in.Title, Body: in.Body, Author: in.Author}
	data.Error = "invalid form submission"
	h.render(c, http.StatusBadRequest, web.PageAdminPostForm, data)
}

// formFailure 重新渲染表单并保留已填写内容
func (h *Handler) formFailure(c *gin.Context, data web.PageData, in service.PostInput, err error) {
	data.Form = web.FormValues{Title: in.Title, Body: in.Body, Author: in.Author}

	var verr *service.ValidationError
	if errors.As(err, &verr) {
		data.FieldErrors = verr.Fields
		data.Error = "please fill in every field"
		h.render(c, http.StatusBadRequest, web.PageAdminPostForm, data)
		return
	}
	if errors.Is(err, service.ErrUnknownKind) {
		h.notFound(c, web.SectionAdmin)
		return
	}
	h.internal(c, err)
	data.Error = genericFailure
	h.render(c, http.StatusInternalServerError, web.PageAdminPostForm, data)
}

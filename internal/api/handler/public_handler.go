package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/natural-botanicals/internal/api/middleware"
	"github.com/d60-Lab/natural-botanicals/internal/model"
	"github.com/d60-Lab/natural-botanicals/internal/web"
	"github.com/d60-Lab/natural-botanicals/pkg/logger"
)

const homeRecentPosts = 5

// Home 首页，附最近的博客
func (h *Handler) Home(c *gin.Context) {
	data := web.PageData{Title: "Home"}
	posts, err := h.postService.List(c.Request.Context(), model.KindBlog)
	if err != nil {
		// 首页主体是静态内容，列表失败不影响渲染
		logger.Warn("home: list blog posts", zap.Error(err))
	} else {
		data.Posts = newestFirst(posts, homeRecentPosts)
	}
	h.render(c, http.StatusOK, web.PageHome, data)
}

// Topic 静态内容页
func (h *Handler) Topic(c *gin.Context) {
	topic, ok := web.LookupTopic(c.Param("topic"))
	if !ok {
		h.notFound(c, web.SectionPublic)
		return
	}
	if topic.RequiresAuth && !middleware.CurrentIdentity(c).Authenticated {
		c.Redirect(http.StatusSeeOther, "/signin?next="+url.QueryEscape(c.Request.URL.RequestURI()))
		return
	}
	h.render(c, http.StatusOK, web.PageTopic, web.PageData{Title: topic.Heading, Topic: topic})
}

// Blog 公开博客列表
func (h *Handler) Blog(c *gin.Context) {
	posts, err := h.postService.List(c.Request.Context(), model.KindBlog)
	if err != nil {
		h.fail(c, web.SectionPublic, err)
		return
	}
	h.render(c, http.StatusOK, web.PageBlog, web.PageData{Title: "Blog", Kind: model.KindBlog, Posts: posts})
}

// BlogPost 公开单篇博客
func (h *Handler) BlogPost(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		h.notFound(c, web.SectionPublic)
		return
	}
	post, err := h.postService.Get(c.Request.Context(), model.KindBlog, id)
	if err != nil {
		h.fail(c, web.SectionPublic, err)
		return
	}
	h.render(c, http.StatusOK, web.PageBlogPost, web.PageData{Title: post.Title, Kind: model.KindBlog, Post: post})
}

// newestFirst 取列表末尾 n 篇并倒序；列表按 id 升序
func newestFirst(posts []*model.Post, n int) []*model.Post {
	if len(posts) < n {
		n = len(posts)
	}
	out := make([]*model.Post, 0, n)
	for i := len(posts) - 1; i >= len(posts)-n; i-- {
		out = append(out, posts[i])
	}
	return out
}

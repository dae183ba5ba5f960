package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/natural-botanicals/internal/model"
	"github.com/d60-Lab/natural-botanicals/internal/repository"
	"github.com/d60-Lab/natural-botanicals/internal/service"
	"github.com/d60-Lab/natural-botanicals/pkg/response"
)

var apiKinds = map[string]model.PostKind{
	"blogs":    model.KindBlog,
	"articles": model.KindArticle,
}

func apiKind(c *gin.Context) (model.PostKind, bool) {
	kind, ok := apiKinds[c.Param("kind")]
	if !ok {
		response.NotFound(c, "unknown collection")
	}
	return kind, ok
}

func (h *Handler) apiError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		response.ValidationFailed(c, verr.Fields)
	case errors.Is(err, repository.ErrPostNotFound):
		response.NotFound(c, "post not found")
	case errors.Is(err, service.ErrUnknownKind):
		response.NotFound(c, "unknown collection")
	default:
		h.internal(c, err)
		response.InternalError(c, nil)
	}
}

// APIListPosts 文章列表
// @Summary 列出全部文章
// @Tags posts
// @Produce json
// @Param kind path string true "blogs 或 articles"
// @Success 200 {object} response.Response{data=[]model.Post}
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/{kind} [get]
func (h *Handler) APIListPosts(c *gin.Context) {
	kind, ok := apiKind(c)
	if !ok {
		return
	}
	posts, err := h.postService.List(c.Request.Context(), kind)
	if err != nil {
		h.apiError(c, err)
		return
	}
	if posts == nil {
		posts = []*model.Post{}
	}
	response.Success(c, posts)
}

// APIGetPost 查询单篇
// @Summary 查询文章
// @Tags posts
// @Produce json
// @Param kind path string true "blogs 或 articles"
// @Param id path int true "文章ID"
// @Success 200 {object} response.Response{data=model.Post}
// @Failure 404 {object} response.Response
// @Router /api/v1/{kind}/{id} [get]
func (h *Handler) APIGetPost(c *gin.Context) {
	kind, ok := apiKind(c)
	if !ok {
		return
	}
	id, ok := parseID(c.Param("id"))
	if !ok {
		response.NotFound(c, "post not found")
		return
	}
	post, err := h.postService.Get(c.Request.Context(), kind, id)
	if err != nil {
		h.apiError(c, err)
		return
	}
	response.Success(c, post)
}

// APICreatePost 创建文章
// @Summary 创建文章
// @Tags posts
// @Accept json
// @Produce json
// @Param kind path string true "blogs 或 articles"
// @Param request body service.PostInput true "文章内容"
// @Success 201 {object} response.Response{data=model.Post}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/{kind} [post]
func (h *Handler) APICreatePost(c *gin.Context) {
	kind, ok := apiKind(c)
	if !ok {
		return
	}
	var in service.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	post, err := h.postService.Create(c.Request.Context(), kind, in)
	if err != nil {
		h.apiError(c, err)
		return
	}
	response.Created(c, post)
}

// APIUpdatePost 更新文章
// @Summary 更新文章
// @Tags posts
// @Accept json
// @Produce json
// @Param kind path string true "blogs 或 articles"
// @Param id path int true "文章ID"
// @Param request body service.PostInput true "文章内容"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/{kind}/{id} [put]
func (h *Handler) APIUpdatePost(c *gin.Context) {
	kind, ok := apiKind(c)
	if !ok {
		return
	}
	id, ok := parseID(c.Param("id"))
	if !ok {
		response.NotFound(c, "post not found")
		return
	}
	var in service.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.postService.Update(c.Request.Context(), kind, id, in); err != nil {
		h.apiError(c, err)
		return
	}
	response.Success(c, nil)
}

// APIDeletePost 删除文章
// @Summary 删除文章
// @Tags posts
// @Produce json
// @Param kind path string true "blogs 或 articles"
// @Param id path int true "文章ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/{kind}/{id} [delete]
func (h *Handler) APIDeletePost(c *gin.Context) {
	kind, ok := apiKind(c)
	if !ok {
		return
	}
	id, ok := parseID(c.Param("id"))
	if !ok {
		response.NotFound(c, "post not found")
		return
	}
	if err := h.postService.Delete(c.Request.Context(), kind, id); err != nil {
		h.apiError(c, err)
		return
	}
	response.Success(c, nil)
}

package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/d60-Lab/natural-botanicals/internal/cache"
	"github.com/d60-Lab/natural-botanicals/internal/model"
	"github.com/d60-Lab/natural-botanicals/internal/repository"
	"github.com/d60-Lab/natural-botanicals/pkg/logger"
)

var (
	ErrUnknownKind = errors.New("unknown post kind")
	ErrValidation  = errors.New("validation failed")
)

// PostInput 创建/更新文章的表单
type PostInput struct {
	Title  string `form:"title" json:"title" validate:"required,max=255"`
	Body   string `form:"body" json:"body" validate:"required"`
	Author string `form:"author" json:"author" validate:"required,max=100"`
}

func (in *PostInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	if strings.TrimSpace(in.Body) == "" {
		in.Body = ""
	}
}

// ValidationError 字段级校验失败
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range []string{"title", "body", "author"} {
		if msg, ok := e.Fields[f]; ok {
			parts = append(parts, msg)
		}
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// PostService 文章服务
type PostService interface {
	List(ctx context.Context, kind model.PostKind) ([]*model.Post, error)
	Get(ctx context.Context, kind model.PostKind, id uint) (*model.Post, error)
	Create(ctx context.Context, kind model.PostKind, in PostInput) (*model.Post, error)
	Update(ctx context.Context, kind model.PostKind, id uint, in PostInput) error
	Delete(ctx context.Context, kind model.PostKind, id uint) error
	Count(ctx context.Context, kind model.PostKind) (int64, error)
}

type postService struct {
	repo     repository.PostRepository
	cache    *cache.PostCache
	validate *validator.Validate
}

// NewPostService creates the service; postCache may be nil.
func NewPostService(repo repository.PostRepository, postCache *cache.PostCache) PostService {
	return &postService{repo: repo, cache: postCache, validate: validator.New()}
}

func (s *postService) List(ctx context.Context, kind model.PostKind) ([]*model.Post, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}
	// 先取版本再查库：查库期间若有写入，回填会被丢弃
	var (
		version   int64
		cacheable bool
	)
	if s.cache != nil {
		posts, err := s.cache.Get(ctx, kind)
		if err == nil {
			return posts, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			logger.Warn("post cache read failed", zap.String("kind", string(kind)), zap.Error(err))
		}
		if version, err = s.cache.Version(ctx, kind); err != nil {
			logger.Warn("post cache version read failed", zap.String("kind", string(kind)), zap.Error(err))
		} else {
			cacheable = true
		}
	}

	posts, err := s.repo.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	if cacheable {
		if err := s.cache.Set(ctx, kind, version, posts); err != nil && !errors.Is(err, cache.ErrStale) {
			logger.Warn("post cache write failed", zap.String("kind", string(kind)), zap.Error(err))
		}
	}
	return posts, nil
}

func (s *postService) Get(ctx context.Context, kind model.PostKind, id uint) (*model.Post, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}
	return s.repo.GetByID(ctx, kind, id)
}

func (s *postService) Create(ctx context.Context, kind model.PostKind, in PostInput) (*model.Post, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}
	if err := s.check(&in); err != nil {
		return nil, err
	}
	post := &model.Post{Kind: kind, Title: in.Title, Body: in.Body, Author: in.Author}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}
	s.invalidate(ctx, kind)
	logger.Info("post created", zap.String("kind", string(kind)), zap.Uint("id", post.ID))
	return post, nil
}

func (s *postService) Update(ctx context.Context, kind model.PostKind, id uint, in PostInput) error {
	if !kind.Valid() {
		return ErrUnknownKind
	}
	if err := s.check(&in); err != nil {
		return err
	}
	post := &model.Post{ID: id, Kind: kind, Title: in.Title, Body: in.Body, Author: in.Author}
	if err := s.repo.Update(ctx, post); err != nil {
		return err
	}
	s.invalidate(ctx, kind)
	logger.Info("post updated", zap.String("kind", string(kind)), zap.Uint("id", id))
	return nil
}

func (s *postService) Delete(ctx context.Context, kind model.PostKind, id uint) error {
	if !kind.Valid() {
		return ErrUnknownKind
	}
	if err := s.repo.Delete(ctx, kind, id); err != nil {
		return err
	}
	s.invalidate(ctx, kind)
	logger.Info("post deleted", zap.String("kind", string(kind)), zap.Uint("id", id))
	return nil
}

func (s *postService) Count(ctx context.Context, kind model.PostKind) (int64, error) {
	if !kind.Valid() {
		return 0, ErrUnknownKind
	}
	return s.repo.Count(ctx, kind)
}

func (s *postService) check(in *PostInput) error {
	in.normalize()
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			fields[name] = name + " is required"
		case "max":
			fields[name] = name + " must be at most " + fe.Param() + " characters"
		default:
			fields[name] = name + " is invalid"
		}
	}
	return &ValidationError{Fields: fields}
}

// invalidate 写操作后清除列表缓存，保证读到最新数据
func (s *postService) invalidate(ctx context.Context, kind model.PostKind) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, kind); err != nil {
		logger.Warn("post cache invalidate failed", zap.String("kind", string(kind)), zap.Error(err))
	}
}

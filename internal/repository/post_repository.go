package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/d60-Lab/natural-botanicals/internal/model"
)

var (
	// ErrPostNotFound 按 id 查询无匹配记录
	ErrPostNotFound = errors.New("post not found")
	// ErrStoreUnavailable 连接或查询失败
	ErrStoreUnavailable = errors.New("store unavailable")
)

// PostRepository 文章仓储接口
type PostRepository interface {
	// List 按 id 升序返回某类全部文章
	List(ctx context.Context, kind model.PostKind) ([]*model.Post, error)

	// GetByID 根据 id 查询，不存在时返回 ErrPostNotFound
	GetByID(ctx context.Context, kind model.PostKind, id uint) (*model.Post, error)

	// Create 创建文章，id 由数据库分配并回写
	Create(ctx context.Context, post *model.Post) error

	// Update 覆盖 title/body/author，id 不存在时为空操作
	Update(ctx context.Context, post *model.Post) error

	// Delete 删除文章，id 不存在时为空操作
	Delete(ctx context.Context, kind model.PostKind, id uint) error

	// Count 统计某类文章数量
	Count(ctx context.Context, kind model.PostKind) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建文章仓储
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) List(ctx context.Context, kind model.PostKind) ([]*model.Post, error) {
	var posts []*model.Post
	err := r.db.WithContext(ctx).
		Where("kind = ?", kind).
		Order("id ASC").
		Find(&posts).Error
	if err != nil {
		return nil, storeErr("list posts", err)
	}
	return posts, nil
}

func (r *postRepository) GetByID(ctx context.Context, kind model.PostKind, id uint) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).Where("id = ? AND kind = ?", id, kind).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, storeErr("get post", err)
	}
	return &post, nil
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return storeErr("create post", err)
	}
	return nil
}

func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	err := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ? AND kind = ?", post.ID, post.Kind).
		Updates(map[string]interface{}{
			"title":  post.Title,
			"body":   post.Body,
			"author": post.Author,
		}).Error
	if err != nil {
		return storeErr("update post", err)
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, kind model.PostKind, id uint) error {
	err := r.db.WithContext(ctx).
		Where("id = ? AND kind = ?", id, kind).
		Delete(&model.Post{}).Error
	if err != nil {
		return storeErr("delete post", err)
	}
	return nil
}

func (r *postRepository) Count(ctx context.Context, kind model.PostKind) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Post{}).Where("kind = ?", kind).Count(&count).Error
	if err != nil {
		return 0, storeErr("count posts", err)
	}
	return count, nil
}

// InitSchema 初始化数据库表结构
func InitSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Post{}, &model.User{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}

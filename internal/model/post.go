package model

import "time"

// PostKind 区分博客与文章，二者共用 posts 表
type PostKind string

const (
	KindBlog    PostKind = "blog"
	KindArticle PostKind = "article"
)

// Valid reports whether k is a known kind.
func (k PostKind) Valid() bool {
	return k == KindBlog || k == KindArticle
}

// Label 页面展示用名称
func (k PostKind) Label() string {
	switch k {
	case KindArticle:
		return "Article"
	default:
		return "Blog"
	}
}

// Post 内容主体
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Kind      PostKind  `json:"kind" gorm:"type:varchar(16);index:idx_post_kind;not null"`
	Title     string    `json:"title" gorm:"type:varchar(255);not null"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	Author    string    `json:"author" gorm:"type:varchar(100);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Post) TableName() string { return "posts" }

package web

import (
	"github.com/d60-Lab/natural-botanicals/internal/model"
	"github.com/d60-Lab/natural-botanicals/internal/session"
)

// Section selects the header fragment.
type Section string

const (
	SectionPublic Section = "public"
	SectionAdmin  Section = "admin"
)

// Page names understood by the Composer.
const (
	PageHome           = "home"
	PageTopic          = "topic"
	PageBlog           = "blog"
	PageBlogPost       = "blog_post"
	PageSignin         = "signin"
	PageAdminDashboard = "admin_dashboard"
	PageAdminPosts     = "admin_posts"
	PageAdminPost      = "admin_post"
	PageAdminPostForm  = "admin_post_form"
	PageNotFound       = "not_found"
	PageError          = "error"
)

// FormValues 表单回填值
type FormValues struct {
	Title  string
	Body   string
	Author string
}

// PageData is the payload every page template receives.
type PageData struct {
	Title   string
	Section Section
	Session session.Identity

	Flash string
	Error string

	Kind     model.PostKind
	BasePath string // /admin/posts, /admin/articles
	Post     *model.Post
	Posts    []*model.Post

	Action      string
	Editing     bool
	Form        FormValues
	FieldErrors map[string]string

	Topic  *Topic
	Counts map[string]int64

	Username string // sign-in form pre-fill
	Next     string
}

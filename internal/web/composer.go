// Package web composes HTML pages from the shared header and footer
// fragments plus a page-specific body.
package web

import (
	"embed"
	"fmt"
	"html"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin/render"
	"github.com/microcosm-cc/bluemonday"
)

//go:embed templates
var templateFS embed.FS

const rootTemplate = "base"

// Composer holds one parsed template set per page. It implements
// render.HTMLRender so gin handlers can call c.HTML(status, page, data).
type Composer struct {
	pages map[string]*template.Template
}

// NewComposer parses the embedded layouts and pages.
func NewComposer() (*Composer, error) {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	plain := bluemonday.StrictPolicy()

	funcs := template.FuncMap{
		"inc":   func(i int) int { return i + 1 },
		"upper": strings.ToUpper,
		// 公共博客页允许有限 HTML，其他位置一律转义
		"sanitize": func(s string) template.HTML {
			return template.HTML(policy.Sanitize(s))
		},
		// 摘要取纯文本再截断，避免截出未闭合的标签
		"excerpt": func(s string, n int) string {
			s = strings.TrimSpace(html.UnescapeString(plain.Sanitize(s)))
			r := []rune(s)
			if len(r) <= n {
				return s
			}
			return string(r[:n]) + "…"
		},
	}

	layouts, err := fs.Glob(templateFS, "templates/layout/*.tmpl")
	if err != nil {
		return nil, err
	}
	pageFiles, err := fs.Glob(templateFS, "templates/pages/*.tmpl")
	if err != nil {
		return nil, err
	}

	c := &Composer{pages: make(map[string]*template.Template, len(pageFiles))}
	for _, pf := range pageFiles {
		name := strings.TrimSuffix(path.Base(pf), ".tmpl")
		files := append(append([]string{}, layouts...), pf)
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, files...)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		c.pages[name] = t
	}
	return c, nil
}

func (c *Composer) has(page string) bool {
	_, ok := c.pages[page]
	return ok
}

// Render writes the composed document for page to w.
func (c *Composer) Render(w io.Writer, page string, data interface{}) error {
	t, ok := c.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	return t.ExecuteTemplate(w, rootTemplate, data)
}

// Instance implements render.HTMLRender.
func (c *Composer) Instance(page string, data interface{}) render.Render {
	t, ok := c.pages[page]
	if !ok {
		return missingPage(page)
	}
	return render.HTML{Template: t, Name: rootTemplate, Data: data}
}

type missingPage string

func (m missingPage) Render(http.ResponseWriter) error {
	return fmt.Errorf("unknown page %q", string(m))
}

func (missingPage) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}

// Package assets embeds the files deployed with every built site and the page
// templates shared by the site build and the preview server.
package assets

import (
	"embed"
	"io/fs"
	"path"
)

// JSFile is the comment form script, relative to the static tree. Sites serve
// the static tree under /assets.
const JSFile = "js/staticman_comments.js"

//go:embed static templates
var files embed.FS

// Pages maps a page template name to the template files it is assembled from.
// The first file holds the top-level {{template "layout" .}} call.
var Pages = map[string][]string{
	"index.html": {"index.html", "layout.html"},
	"post.html":  {"post.html", "layout.html", "comments.html"},
	"error.html": {"error.html", "layout.html"},
}

// Static 静态资源，路径形如 js/staticman_comments.js
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// ReadStatic 读取静态资源，name 相对于静态资源根目录
func ReadStatic(name string) ([]byte, error) {
	return fs.ReadFile(files, path.Join("static", name))
}

// PageSources 返回页面模板的源文本，顺序与 Pages 中一致
func PageSources(page string) ([]string, error) {
	names, ok := Pages[page]
	if !ok {
		return nil, fs.ErrNotExist
	}
	sources := make([]string, 0, len(names))
	for _, name := range names {
		b, err := fs.ReadFile(files, path.Join("templates", name))
		if err != nil {
			return nil, err
		}
		sources = append(sources, string(b))
	}
	return sources, nil
}

package models

import (
	"html/template"
	"time"
)

// CommentsSuffix 评论目录后缀：posts/hello.md 的评论位于 posts/hello.md.comments/
const CommentsSuffix = ".comments"

type Post struct {
	SourcePath string        `json:"source_path"`
	Title      string        `json:"title"`
	Slug       string        `json:"slug"`
	Date       time.Time     `json:"date"`
	Content    string        `json:"-"` // Markdown body without front matter
	Body       template.HTML `json:"-"`

	// 非源文件字段，由评论插件在扫描后填充
	Comments []ThreadedComment `json:"comments"`
}

// CommentsDir 该文章的评论目录
func (p *Post) CommentsDir() string {
	return p.SourcePath + CommentsSuffix
}

// URL 站内路径
func (p *Post) URL() string {
	return "/posts/" + p.Slug + "/"
}

// CommentCount 评论数量
func (p *Post) CommentCount() int {
	return len(p.Comments)
}

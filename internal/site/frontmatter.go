package site

import (
	"bytes"
	"fmt"
	"path/filepath"
	"staticcomments/internal/models"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/gosimple/slug"
	"gopkg.in/yaml.v3"
)

var fmDelim = []byte("---")

type frontMatter struct {
	Title string `yaml:"title"`
	Slug  string `yaml:"slug"`
	Date  string `yaml:"date"`
}

// splitFrontMatter separates a leading "---" delimited YAML block from the body.
// Without one, the whole input is the body.
func splitFrontMatter(data []byte) (meta, body []byte) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	first, rest, found := bytes.Cut(data, []byte("\n"))
	if !found || !bytes.Equal(bytes.TrimSpace(first), fmDelim) {
		return nil, data
	}
	for offset := 0; offset < len(rest); {
		line, _, _ := bytes.Cut(rest[offset:], []byte("\n"))
		if bytes.Equal(bytes.TrimSpace(line), fmDelim) {
			end := offset + len(line)
			if end < len(rest) {
				end++ // newline
			}
			return rest[:offset], rest[end:]
		}
		offset += len(line) + 1
	}
	return nil, data
}

// ParsePost 解析文章源文件：可选的 YAML front matter + Markdown 正文
func ParsePost(path string, data []byte) (*models.Post, error) {
	meta, body := splitFrontMatter(data)

	var fm frontMatter
	if len(meta) > 0 {
		if err := yaml.Unmarshal(meta, &fm); err != nil {
			return nil, fmt.Errorf("%s: front matter: %w", path, err)
		}
	}

	post := &models.Post{
		SourcePath: path,
		Title:      strings.TrimSpace(fm.Title),
		Slug:       strings.TrimSpace(fm.Slug),
		Content:    string(body),
	}
	if post.Title == "" {
		base := filepath.Base(path)
		post.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if post.Slug == "" {
		post.Slug = slug.Make(post.Title)
	}
	if post.Slug == "" {
		base := filepath.Base(path)
		post.Slug = slug.Make(strings.TrimSuffix(base, filepath.Ext(base)))
	}
	if !slug.IsSlug(post.Slug) {
		return nil, fmt.Errorf("%s: invalid slug %q", path, post.Slug)
	}
	if d := strings.TrimSpace(fm.Date); d != "" {
		t, err := dateparse.ParseIn(d, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%s: date %q: %w", path, d, err)
		}
		post.Date = t
	}
	return post, nil
}

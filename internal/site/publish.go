package site

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"staticcomments/internal/assets"
	"staticcomments/internal/models"
	"staticcomments/internal/utils"

	"go.uber.org/zap"
)

// LoadPageTemplate 组装页面模板：页面文件 + 布局 + 公共片段
func LoadPageTemplate(page string) (*template.Template, error) {
	sources, err := assets.PageSources(page)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", page, err)
	}
	tmpl := template.New(page).Funcs(utils.TemplateFuncs())
	for _, src := range sources {
		if tmpl, err = tmpl.Parse(src); err != nil {
			return nil, fmt.Errorf("template %s: %w", page, err)
		}
	}
	return tmpl, nil
}

// PageData 页面模板公共数据
func (s *Site) PageData(title string) map[string]any {
	return map[string]any{
		"SiteTitle":  s.Config.SiteTitle,
		"Title":      title,
		"FormAction": s.Config.CommentFormAction,
	}
}

// PostData 文章页模板数据
func (s *Site) PostData(p *models.Post) map[string]any {
	data := s.PageData(p.Title)
	data["Post"] = p
	return data
}

// IndexData 首页模板数据
func (s *Site) IndexData() map[string]any {
	data := s.PageData("")
	data["Posts"] = s.Timeline
	return data
}

// RenderBodies 渲染所有文章正文
func (s *Site) RenderBodies() error {
	for _, p := range s.Timeline {
		body, err := utils.RenderPostMarkdown(p.Content)
		if err != nil {
			return fmt.Errorf("render %s: %w", p.SourcePath, err)
		}
		p.Body = body
	}
	return nil
}

// Render 将所有文章和首页写入输出目录
func (s *Site) Render(ctx context.Context) error {
	postTmpl, err := LoadPageTemplate("post.html")
	if err != nil {
		return err
	}
	indexTmpl, err := LoadPageTemplate("index.html")
	if err != nil {
		return err
	}
	if err := s.RenderBodies(); err != nil {
		return err
	}

	out := s.Config.OutputPath()
	for _, p := range s.Timeline {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(out, "posts", p.Slug, "index.html")
		if err := writePage(path, postTmpl, s.PostData(p)); err != nil {
			return err
		}
		s.logger.Debug("wrote post", zap.String("path", path), zap.Int("comments", len(p.Comments)))
	}
	if err := writePage(filepath.Join(out, "index.html"), indexTmpl, s.IndexData()); err != nil {
		return err
	}

	s.logger.Info("rendered site", zap.String("output", out), zap.Int("posts", len(s.Timeline)))
	return s.Emit(SignalRendered)
}

func writePage(path string, tmpl *template.Template, data map[string]any) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("execute %s: %w", path, err)
	}
	return WriteFile(path, buf.Bytes())
}

// WriteFile 写入输出文件，必要时创建目录
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

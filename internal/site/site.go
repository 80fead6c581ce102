// Package site is the build host: it scans posts, runs lifecycle signal
// handlers and publishes the rendered pages.
package site

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"staticcomments/internal/config"
	"staticcomments/internal/models"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Signal names emitted during a build.
const (
	SignalScanned  = "scanned"  // after Scan filled the timeline
	SignalRendered = "rendered" // after Render wrote every page
)

// Handler 生命周期信号处理函数
type Handler func(s *Site) error

type Site struct {
	Config   *config.Config
	Timeline []*models.Post // newest first

	logger *zap.Logger

	mu       sync.Mutex
	handlers map[string][]Handler
	bySlug   map[string]*models.Post
}

func New(cfg *config.Config, logger *zap.Logger) *Site {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Site{
		Config:   cfg,
		logger:   logger,
		handlers: make(map[string][]Handler),
		bySlug:   make(map[string]*models.Post),
	}
}

// Connect 注册信号处理函数，按注册顺序执行
func (s *Site) Connect(signal string, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[signal] = append(s.handlers[signal], h)
}

// Emit 触发信号，第一个失败的处理函数会中止后续处理
func (s *Site) Emit(signal string) error {
	s.mu.Lock()
	handlers := append([]Handler(nil), s.handlers[signal]...)
	s.mu.Unlock()

	s.logger.Debug("emit signal", zap.String("signal", signal), zap.Int("handlers", len(handlers)))
	for _, h := range handlers {
		if err := h(s); err != nil {
			return fmt.Errorf("%s: %w", signal, err)
		}
	}
	return nil
}

// Scan 扫描文章目录下的 *.md 文件，重建时间线
func (s *Site) Scan() error {
	root := s.Config.PostsPath()
	var posts []*models.Post

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		// Ignore hidden directories and comment directories
		if d.IsDir() && path != root && (strings.HasPrefix(d.Name(), ".") || strings.HasSuffix(d.Name(), models.CommentsSuffix)) {
			return filepath.SkipDir
		}
		if d.IsDir() || strings.ToLower(filepath.Ext(path)) != ".md" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		post, err := ParsePost(path, data)
		if err != nil {
			return err
		}
		posts = append(posts, post)
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan %s: %w", root, err)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].Date.Equal(posts[j].Date) {
			return posts[i].Date.After(posts[j].Date)
		}
		return posts[i].Slug < posts[j].Slug
	})

	bySlug := make(map[string]*models.Post, len(posts))
	for _, p := range posts {
		if other, found := bySlug[p.Slug]; found {
			return fmt.Errorf("posts %s and %s share slug %q", other.SourcePath, p.SourcePath, p.Slug)
		}
		bySlug[p.Slug] = p
	}

	s.mu.Lock()
	s.Timeline = posts
	s.bySlug = bySlug
	s.mu.Unlock()

	s.logger.Info("scanned posts", zap.String("dir", root), zap.Int("posts", len(posts)))
	return s.Emit(SignalScanned)
}

// PostBySlug 按 slug 查找文章，不存在时返回 nil
func (s *Site) PostBySlug(slug string) *models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bySlug[slug]
}

// Build 完整构建：扫描 + 渲染输出
func (s *Site) Build(ctx context.Context) error {
	if err := s.Scan(); err != nil {
		return err
	}
	return s.Render(ctx)
}

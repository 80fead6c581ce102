package services

import (
	"context"
	"fmt"
	"path/filepath"
	"staticcomments/internal/assets"
	"staticcomments/internal/config"
	"staticcomments/internal/models"
	"staticcomments/internal/site"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CommentService 评论插件：扫描后为每篇文章加载并整理评论，渲染后部署前端脚本和评论 RSS
type CommentService struct {
	cfg    *config.Config
	logger *zap.Logger
}

func NewCommentService(cfg *config.Config, logger *zap.Logger) *CommentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommentService{cfg: cfg, logger: logger}
}

// NewSite 创建挂载了评论插件的站点
func NewSite(cfg *config.Config, logger *zap.Logger) *site.Site {
	s := site.New(cfg, logger)
	NewCommentService(cfg, logger).Register(s)
	return s
}

// Register 挂载到站点的生命周期信号
func (s *CommentService) Register(st *site.Site) {
	st.Connect(site.SignalScanned, s.ProcessSite)
	st.Connect(site.SignalRendered, s.Deploy)
}

// ProcessPost 加载并整理单篇文章的评论
func (s *CommentService) ProcessPost(p *models.Post) error {
	comments, err := LoadDirectory(p.CommentsDir())
	if err != nil {
		return err
	}
	threaded, err := Thread(comments)
	if err != nil {
		return err
	}
	p.Comments = threaded
	return nil
}

// ProcessSite 并发处理所有文章，每个 goroutine 只修改自己的文章
func (s *CommentService) ProcessSite(st *site.Site) error {
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(max(s.cfg.Workers, 1))

	for _, p := range st.Timeline {
		p := p
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			err := s.ProcessPost(p)
			if err == nil {
				s.logger.Debug("threaded comments", zap.String("post", p.SourcePath), zap.Int("comments", len(p.Comments)))
				return nil
			}
			p.Comments = nil
			if s.cfg.FailOnCommentError {
				return fmt.Errorf("comments for %s: %w", p.SourcePath, err)
			}
			s.logger.Warn("rendering post without comments",
				zap.String("post", p.SourcePath),
				zap.Error(err),
			)
			return nil
		})
	}
	return g.Wait()
}

// Deploy 复制前端脚本并生成评论 RSS
func (s *CommentService) Deploy(st *site.Site) error {
	out := s.cfg.OutputPath()

	js, err := assets.ReadStatic(assets.JSFile)
	if err != nil {
		return err
	}
	jsPath := filepath.Join(out, "assets", filepath.FromSlash(assets.JSFile))
	if err := site.WriteFile(jsPath, js); err != nil {
		return fmt.Errorf("deploy %s: %w", jsPath, err)
	}

	feed, err := RenderFeed(s.cfg, st.Timeline, s.cfg.FeedLimit)
	if err != nil {
		return err
	}
	feedPath := filepath.Join(out, "comments.xml")
	if err := site.WriteFile(feedPath, feed); err != nil {
		return fmt.Errorf("deploy %s: %w", feedPath, err)
	}

	s.logger.Info("deployed comment assets", zap.String("script", jsPath), zap.String("feed", feedPath))
	return nil
}

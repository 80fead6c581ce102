package main

import (
	"log"
	"staticcomments/internal/config"
	"staticcomments/internal/logging"
	"staticcomments/internal/middleware"
	"staticcomments/internal/router"
	"staticcomments/internal/services"
	"staticcomments/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load .env file and environment
	cfg := config.Load()

	logger, err := logging.New(cfg.Debug)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if err := utils.ConfigureRenderCache(cfg.RenderCacheSize); err != nil {
		logger.Fatal("render cache", zap.Error(err))
	}

	// 扫描文章并整理评论，预览时不写输出目录
	s := services.NewSite(cfg, logger)
	if err := s.Scan(); err != nil {
		logger.Fatal("scan site", zap.Error(err))
	}
	if err := s.RenderBodies(); err != nil {
		logger.Fatal("render posts", zap.Error(err))
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(logger))

	// Load Templates using Multitemplate to avoid collision and allow handler names
	renderer, err := router.LoadTemplates()
	if err != nil {
		logger.Fatal("load templates", zap.Error(err))
	}
	r.HTMLRender = renderer

	router.RegisterRoutes(r, s)

	logger.Info("preview server starting", zap.String("port", cfg.Port), zap.Int("posts", len(s.Timeline)))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	SiteDir   string // Root of the site source
	PostsDir  string // Relative to SiteDir unless absolute
	OutputDir string // Relative to SiteDir unless absolute

	SiteTitle string
	SiteURL   string

	// CommentFormAction Staticman 提交地址，为空时页面不显示评论表单
	CommentFormAction string

	// FailOnCommentError 评论加载或线程化失败时是否中止整个构建；
	// false 时该页面不显示评论并记录警告
	FailOnCommentError bool
	Workers            int
	RenderCacheSize    int
	FeedLimit          int

	Port  string
	Debug bool
}

// Default 默认配置
func Default() *Config {
	return &Config{
		SiteDir:            ".",
		PostsDir:           "posts",
		OutputDir:          "output",
		SiteTitle:          "Blog",
		SiteURL:            "http://localhost:8080",
		FailOnCommentError: true,
		Workers:            4,
		RenderCacheSize:    500,
		FeedLimit:          50,
		Port:               "8080",
	}
}

// Load 读取 .env（若存在）和环境变量
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}
	return FromEnv()
}

// FromEnv 只读取环境变量，未设置的项使用默认值
func FromEnv() *Config {
	cfg := Default()
	cfg.SiteDir = getEnv("SITE_DIR", cfg.SiteDir)
	cfg.PostsDir = getEnv("POSTS_DIR", cfg.PostsDir)
	cfg.OutputDir = getEnv("OUTPUT_DIR", cfg.OutputDir)
	cfg.SiteTitle = getEnv("SITE_TITLE", cfg.SiteTitle)
	cfg.SiteURL = strings.TrimSuffix(getEnv("SITE_URL", cfg.SiteURL), "/")
	cfg.CommentFormAction = getEnv("STATICMAN_ENDPOINT", cfg.CommentFormAction)
	cfg.FailOnCommentError = getBool("COMMENTS_FAIL_ON_ERROR", cfg.FailOnCommentError)
	cfg.Workers = getInt("BUILD_WORKERS", cfg.Workers)
	cfg.RenderCacheSize = getInt("RENDER_CACHE_SIZE", cfg.RenderCacheSize)
	cfg.FeedLimit = getLimit("FEED_LIMIT", cfg.FeedLimit)
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Debug = getBool("DEBUG", cfg.Debug)
	return cfg
}

// PostsPath 文章目录的完整路径
func (c *Config) PostsPath() string {
	return c.resolve(c.PostsDir)
}

// OutputPath 输出目录的完整路径
func (c *Config) OutputPath() string {
	return c.resolve(c.OutputDir)
}

func (c *Config) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(c.SiteDir, dir)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

// getLimit 允许 0，表示不限制
func getLimit(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"html/template"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultRenderCacheSize 默认缓存容量
const DefaultRenderCacheSize = 500

// RenderCache 渲染结果的本地 LRU 缓存，以源文本的 SHA-256 为键
type RenderCache struct {
	lruCache *lru.Cache[string, template.HTML]
}

var (
	cacheInstance *RenderCache
	cacheMu       sync.Mutex
)

// NewRenderCache 创建指定容量的缓存
func NewRenderCache(size int) (*RenderCache, error) {
	if size <= 0 {
		size = DefaultRenderCacheSize
	}
	l, err := lru.New[string, template.HTML](size)
	if err != nil {
		return nil, err
	}
	return &RenderCache{lruCache: l}, nil
}

// GetRenderCache 获取单例缓存实例
func GetRenderCache() *RenderCache {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	if cacheInstance == nil {
		c, err := NewRenderCache(DefaultRenderCacheSize)
		if err != nil {
			panic(err)
		}
		cacheInstance = c
	}
	return cacheInstance
}

// ConfigureRenderCache 按配置重建单例缓存，已缓存内容会被丢弃
func ConfigureRenderCache(size int) error {
	c, err := NewRenderCache(size)
	if err != nil {
		return err
	}
	cacheMu.Lock()
	cacheInstance = c
	cacheMu.Unlock()
	return nil
}

func cacheKey(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// Set 写入缓存
func (c *RenderCache) Set(source string, out template.HTML) {
	c.lruCache.Add(cacheKey(source), out)
}

// Get 读取缓存
func (c *RenderCache) Get(source string) (template.HTML, bool) {
	return c.lruCache.Get(cacheKey(source))
}

// Len 当前缓存条目数
func (c *RenderCache) Len() int {
	return c.lruCache.Len()
}

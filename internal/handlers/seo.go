package handlers

import (
	"fmt"
	"html"
	"net/http"
	"staticcomments/internal/services"
	"staticcomments/internal/site"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type SEOHandler struct {
	site *site.Site
}

func NewSEOHandler(s *site.Site) *SEOHandler {
	return &SEOHandler{site: s}
}

// RobotsTxt 返回robots.txt内容
func (h *SEOHandler) RobotsTxt(c *gin.Context) {
	content := fmt.Sprintf(`User-agent: *
Allow: /

# API 只用于预览
Disallow: /api/

Sitemap: %s/sitemap.xml
`, h.site.Config.SiteURL)

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.String(http.StatusOK, content)
}

// SitemapXML 动态生成sitemap.xml，文章的 lastmod 取最新评论时间
func (h *SEOHandler) SitemapXML(c *gin.Context) {
	siteURL := h.site.Config.SiteURL

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
`)
	fmt.Fprintf(&b, "  <url>\n    <loc>%s/</loc>\n    <changefreq>daily</changefreq>\n    <priority>1.0</priority>\n  </url>\n",
		html.EscapeString(siteURL))

	for _, post := range h.site.Timeline {
		lastmod := post.Date
		for _, comment := range post.Comments {
			if comment.Date.After(lastmod) {
				lastmod = comment.Date
			}
		}
		fmt.Fprintf(&b, "  <url>\n    <loc>%s</loc>\n", html.EscapeString(siteURL+post.URL()))
		if !lastmod.IsZero() {
			fmt.Fprintf(&b, "    <lastmod>%s</lastmod>\n", lastmod.UTC().Format(time.DateOnly))
		}
		b.WriteString("    <priority>0.7</priority>\n  </url>\n")
	}
	b.WriteString(`</urlset>`)

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.String(http.StatusOK, b.String())
}

// CommentsFeed 最新评论 RSS，与构建输出的 comments.xml 相同
func (h *SEOHandler) CommentsFeed(c *gin.Context) {
	data, err := services.RenderFeed(h.site.Config, h.site.Timeline, h.site.Config.FeedLimit)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", data)
}

package router

import (
	"net/http"
	"staticcomments/internal/assets"
	"staticcomments/internal/handlers"
	"staticcomments/internal/site"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, s *site.Site) {
	// Handlers
	previewHandler := handlers.NewPreviewHandler(s)
	seoHandler := handlers.NewSEOHandler(s)
	greetHandler := handlers.NewGreetHandler()

	// 页面 (Pages)
	r.GET("/", previewHandler.Index)            // 首页 - 文章列表
	r.GET("/posts/:slug/", previewHandler.Post) // 文章详情页 + 评论

	// API
	api := r.Group("/api")
	{
		api.GET("/posts/:slug/comments", previewHandler.Comments) // 文章评论 JSON
	}
	r.GET("/greet/:name", greetHandler.Greet)

	// SEO
	r.GET("/robots.txt", seoHandler.RobotsTxt)
	r.GET("/sitemap.xml", seoHandler.SitemapXML)
	r.GET("/comments.xml", seoHandler.CommentsFeed)

	// Static Assets
	r.StaticFS("/assets", http.FS(assets.Static()))

	r.NoRoute(previewHandler.NotFound)
}

package handlers

import (
	"net/http"
	"staticcomments/internal/models"
	"staticcomments/internal/site"

	"github.com/gin-gonic/gin"
)

// PreviewHandler 本地预览已扫描的站点
type PreviewHandler struct {
	site *site.Site
}

func NewPreviewHandler(s *site.Site) *PreviewHandler {
	return &PreviewHandler{site: s}
}

// Index 首页 - 文章列表
func (h *PreviewHandler) Index(c *gin.Context) {
	Render(c, h.site, http.StatusOK, "index.html", gin.H(h.site.IndexData()))
}

// Post 文章详情页，含嵌套评论
func (h *PreviewHandler) Post(c *gin.Context) {
	post := h.site.PostBySlug(c.Param("slug"))
	if post == nil {
		RenderError(c, h.site, http.StatusNotFound, "Post not found")
		return
	}
	Render(c, h.site, http.StatusOK, "post.html", gin.H(h.site.PostData(post)))
}

// Comments 文章评论 JSON，顺序与页面一致
func (h *PreviewHandler) Comments(c *gin.Context) {
	post := h.site.PostBySlug(c.Param("slug"))
	if post == nil {
		JSONError(c, http.StatusNotFound, "post not found")
		return
	}
	comments := post.Comments
	if comments == nil {
		comments = []models.ThreadedComment{}
	}
	c.JSON(http.StatusOK, gin.H{
		"post":     post.Slug,
		"count":    len(comments),
		"comments": comments,
	})
}

// NotFound 未匹配路由
func (h *PreviewHandler) NotFound(c *gin.Context) {
	RenderError(c, h.site, http.StatusNotFound, "Page not found")
}

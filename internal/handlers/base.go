package handlers

import (
	"net/http"
	"staticcomments/internal/site"

	"github.com/gin-gonic/gin"
)

// Render helper to inject common variables like site title and form action
func Render(c *gin.Context, s *site.Site, code int, name string, obj gin.H) {
	data := gin.H(s.PageData(""))
	for k, v := range obj {
		data[k] = v
	}
	data["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, data)
}

// Error helper
func RenderError(c *gin.Context, s *site.Site, code int, message string) {
	Render(c, s, code, "error.html", gin.H{"Title": http.StatusText(code), "Error": message})
}

// JSONError 统一的 API 错误返回
func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

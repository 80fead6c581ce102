package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

type GreetHandler struct {
	hostname string
}

func NewGreetHandler() *GreetHandler {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	return &GreetHandler{hostname: hostname}
}

// Greet 健康检查兼问候
func (h *GreetHandler) Greet(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Hello " + c.Param("name") + "!"},
		"info": gin.H{"hostname": h.hostname},
	})
}

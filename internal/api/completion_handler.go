package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeBuilder/internal/completion"
)

// CompletionHandler 是补全代理的 HTTP 入口。任何失败都以 500 {error} 返回。
type CompletionHandler struct {
	service *completion.Service
}

func NewCompletionHandler(service *completion.Service) *CompletionHandler {
	return &CompletionHandler{service: service}
}

func (h *CompletionHandler) Generate(c *gin.Context) {
	var req completion.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, completion.Response{Error: err.Error()})
		return
	}
	content, err := h.service.Complete(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, completion.Response{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, completion.Response{Content: content})
}

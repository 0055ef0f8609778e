package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeBuilder/internal/api/middleware"
	"resumeBuilder/internal/completion"
	"resumeBuilder/internal/metrics"
)

const (
	completionPath    = "/v1/generate"
	apiAllowedHeaders = "Authorization, Content-Type, X-Correlation-ID"
)

// NewRouter 构建 API 的 Gin 引擎，挂载公共中间件、健康检查与指标端点。
// 挂载在 API 内的补全代理沿用独立部署时的通配 CORS。
func NewRouter(logger *slog.Logger, allowedOrigins []string) *gin.Engine {
	router := newEngine(logger)
	apiCORS := middleware.CORSMiddleware(allowedOrigins, apiAllowedHeaders)
	proxyCORS := middleware.CORSMiddleware(nil, middleware.ProxyAllowedHeaders)
	router.Use(func(c *gin.Context) {
		if c.Request.URL.Path == completionPath {
			proxyCORS(c)
			return
		}
		apiCORS(c)
	})
	return router
}

// NewProxyRouter 构建独立部署的补全代理。
func NewProxyRouter(logger *slog.Logger, service *completion.Service) *gin.Engine {
	router := newEngine(logger)
	router.Use(middleware.CORSMiddleware(nil, middleware.ProxyAllowedHeaders))
	registerCompletion(router.Group("/v1"), service)
	return router
}

func newEngine(logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.CorrelationIDMiddleware(),
		middleware.SlogLoggerMiddleware(logger),
		metrics.GinMiddleware(),
		gin.Recovery(),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	return router
}

func registerCompletion(group *gin.RouterGroup, service *completion.Service) {
	h := NewCompletionHandler(service)
	group.POST("/generate", h.Generate)
	group.OPTIONS("/generate", func(c *gin.Context) { c.Status(http.StatusOK) })
}

package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "chronostat/internal/errors"
)

// NewRouter wires every API route onto a fresh gin engine
func NewRouter(h *Handler, maxBodyBytes int64) *gin.Engine {
	router := gin.New()
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		h.fail(c, apperrors.InternalError(fmt.Sprintf("panic: %v", recovered)))
		c.Abort()
	}), requestLogger(h), limitBody(maxBodyBytes))
	router.NoRoute(func(c *gin.Context) {
		h.fail(c, apperrors.NotFound(fmt.Sprintf("route %s %s", c.Request.Method, c.Request.URL.Path)))
	})

	router.GET("/healthz", h.Health)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/permutation", h.Permutation)
		v1.POST("/ttest/one-sample", h.OneSample)
		v1.POST("/ttest/paired", h.Paired)
		v1.POST("/analyses", h.Analyze)
	}
	return router
}

func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if n > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}

func requestLogger(h *Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		h.container.Logger.Debug("%s %s -> %d", c.Request.Method, c.Request.URL.Path, c.Writer.Status())
	}
}

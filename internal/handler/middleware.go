package handler

import (
	"fmt"
	"net/http"
	"time"

	"sketchui-backend/internal/metrics"
	"sketchui-backend/internal/model"
	"sketchui-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
)

// RequestID 为每个请求分配 ID，沿用客户端传入的 X-Request-ID
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLogger 用 logrus 记录访问日志
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logger.WithFields(logrus.Fields{
			"request_id": c.GetString(RequestIDKey),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
			"client_ip":  c.ClientIP(),
		})
		if len(c.Errors) > 0 {
			entry.Error(c.Errors.String())
			return
		}
		entry.Info("request completed")
	}
}

// Recovery 捕获 panic，按失败响应格式返回 500
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec any) {
		logger.WithFields(logrus.Fields{
			"request_id": c.GetString(RequestIDKey),
			"path":       c.Request.URL.Path,
		}).Errorf("请求处理 panic: %v", rec)
		metrics.GenerationTotal.WithLabelValues("unknown", metrics.ResultProviderError).Inc()
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			model.NewFailedGenerationResponse(fmt.Sprintf("internal error: %v", rec)))
	})
}

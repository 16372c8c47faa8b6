package utils

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"sketchui-backend/pkg/logger"

	"github.com/sirupsen/logrus"
)

// 请求体日志最多输出的字符数，图片 base64 很长
const maxLoggedBody = 512

var sensitiveHeaders = []string{
	"authorization",
	"x-api-key",
	"x-figma-token",
	"x-auth-token",
	"cookie",
}

// DebugTransport 记录出站请求和响应状态，用于排查提供方调用问题
type DebugTransport struct {
	base http.RoundTripper
}

// NewDebugTransport 包装 base，base 为 nil 时使用 http.DefaultTransport
func NewDebugTransport(base http.RoundTripper) *DebugTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &DebugTransport{base: base}
}

// RoundTrip 实现 http.RoundTripper 接口
func (t *DebugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	entry := logger.WithFields(logrus.Fields{
		"method": req.Method,
		"url":    req.URL.String(),
	})

	if req.Body != nil && req.Method == http.MethodPost {
		bodyBytes, err := io.ReadAll(req.Body)
		if err != nil {
			entry.Errorf("🚨 [Debug] 读取请求体失败: %v", err)
			return nil, err
		}
		// 恢复请求体，以免影响实际请求
		req.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		entry = entry.WithFields(logrus.Fields{
			"body_size": len(bodyBytes),
			"body":      logger.Truncate(string(bodyBytes), maxLoggedBody),
		})
	}

	entry.WithField("headers", RedactHeaders(req.Header)).Debug("🔍 [Debug] outbound request")

	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		entry.Errorf("🚨 [Debug] Request failed: %v", err)
		return resp, err
	}

	entry.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	}).Debug("🔍 [Debug] outbound response")
	return resp, nil
}

// RedactHeaders 返回可安全输出的请求头副本
func RedactHeaders(header http.Header) map[string]string {
	out := make(map[string]string, len(header))
	for name, values := range header {
		if isSensitiveHeader(name) {
			out[name] = "[REDACTED]"
			continue
		}
		out[name] = strings.Join(values, ", ")
	}
	return out
}

func isSensitiveHeader(name string) bool {
	for _, sensitive := range sensitiveHeaders {
		if strings.EqualFold(name, sensitive) {
			return true
		}
	}
	return false
}

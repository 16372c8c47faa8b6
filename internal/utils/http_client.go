package utils

import (
	"crypto/tls"
	"net/http"
	"time"
)

// NewHTTPClient 创建出站 HTTP 客户端。timeout 为 0 时不设置整体超时，
// debug 为 true 时记录请求详情（敏感请求头已脱敏）
func NewHTTPClient(timeout time.Duration, debug ...bool) *http.Client {
	var transport http.RoundTripper = &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: false,
		},
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	if len(debug) > 0 && debug[0] {
		transport = NewDebugTransport(transport)
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

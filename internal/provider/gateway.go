package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sketchui-backend/internal/config"
	"sketchui-backend/internal/metrics"
	"sketchui-backend/internal/model"
	"sketchui-backend/pkg/logger"

	"github.com/sirupsen/logrus"
)

// visionClient 接收一张图片和一段文本，返回模型的原始文本输出
type visionClient interface {
	Complete(ctx context.Context, image []byte, mimeType, prompt string) (string, error)
	// StructuredOutput 是否请求了 JSON 输出模式
	StructuredOutput() bool
}

// Gateway 根据 Provider 分发到对应的视觉模型
type Gateway struct {
	clients map[model.Provider]visionClient
}

// NewGateway 按配置创建各提供方客户端。未配置 API Key 的提供方不创建客户端，
// 调用时直接返回 ErrMissingCredential
func NewGateway(cfg *config.Config) *Gateway {
	g := &Gateway{clients: make(map[model.Provider]visionClient)}

	if cfg.OpenAI.APIKey != "" {
		logger.Infof("Using OpenAI Model: %s, API Key: %s...", cfg.OpenAI.Model, keyPrefix(cfg.OpenAI.APIKey))
		g.clients[model.ProviderOpenAI] = newOpenAIClient(cfg.OpenAI, cfg.DebugRequest)
	} else {
		logger.Warnf("OpenAI API Key 未设置")
	}

	if cfg.Anthropic.APIKey != "" {
		logger.Infof("Using Anthropic Model: %s, API Key: %s...", cfg.Anthropic.Model, keyPrefix(cfg.Anthropic.APIKey))
		g.clients[model.ProviderAnthropic] = newAnthropicClient(cfg.Anthropic, cfg.DebugRequest)
	} else {
		logger.Warnf("Anthropic API Key 未设置")
	}

	return g
}

// HasCredential 所选提供方是否已配置 API Key
func (g *Gateway) HasCredential(p model.Provider) bool {
	_, ok := g.clients[p]
	return ok
}

// StructuredMode 所选提供方是否使用结构化输出模式
func (g *Gateway) StructuredMode(p model.Provider) bool {
	c, ok := g.clients[p]
	return ok && c.StructuredOutput()
}

// Invoke 调用一次提供方并返回原始文本。不重试
func (g *Gateway) Invoke(ctx context.Context, p model.Provider, image []byte, mimeType, prompt string) (string, error) {
	client, ok := g.clients[p]
	if !ok {
		if p != model.ProviderOpenAI && p != model.ProviderAnthropic {
			return "", &ProviderError{Provider: p, Message: fmt.Sprintf("unknown provider %q", p)}
		}
		return "", NewMissingCredentialError(p)
	}

	entry := logger.WithFields(logrus.Fields{
		"provider":   p,
		"image_size": len(image),
		"mime_type":  mimeType,
		"prompt_len": len(prompt),
	})
	entry.Info("调用视觉模型")

	start := time.Now()
	raw, err := client.Complete(ctx, image, mimeType, prompt)
	elapsed := time.Since(start)

	if err != nil {
		metrics.ProviderDurationSeconds.WithLabelValues(p.String(), "error").Observe(elapsed.Seconds())
		var perr *ProviderError
		if !errors.As(err, &perr) {
			perr = &ProviderError{Provider: p, Message: err.Error(), Err: err}
		}
		entry.WithFields(logrus.Fields{
			"status":   perr.HTTPStatus,
			"duration": elapsed.String(),
		}).Errorf("视觉模型调用失败: %v", perr)
		return "", perr
	}

	metrics.ProviderDurationSeconds.WithLabelValues(p.String(), "success").Observe(elapsed.Seconds())
	entry.WithFields(logrus.Fields{
		"duration":     elapsed.String(),
		"response_len": len(raw),
	}).Debugf("模型原始输出(截断): %s", logger.Truncate(raw, 200))
	return raw, nil
}

func keyPrefix(key string) string {
	if len(key) > 3 {
		return key[:3]
	}
	return ""
}

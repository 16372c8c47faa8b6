package model

import (
	"fmt"
	"strings"
)

// Provider 标识一个视觉模型提供方
type Provider string

const (
	ProviderOpenAI    Provider = "gpt"
	ProviderAnthropic Provider = "claude"
)

// DefaultProvider 表单未指定 model 时使用
const DefaultProvider = ProviderOpenAI

// ParseProvider 将表单中的 model 字段映射到 Provider，空值返回默认提供方。
// 无法识别的取值同样返回默认提供方，并附带错误供调用方记录
func ParseProvider(key string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "":
		return DefaultProvider, nil
	case "gpt", "openai":
		return ProviderOpenAI, nil
	case "claude", "anthropic":
		return ProviderAnthropic, nil
	default:
		return DefaultProvider, fmt.Errorf("unsupported model %q", key)
	}
}

func (p Provider) String() string {
	return string(p)
}

// GenerationRequest 单次生成请求，由 handler 构造，处理完即丢弃
type GenerationRequest struct {
	Image          []byte
	MimeType       string
	Provider       Provider
	UseStyleTokens bool
	RequestID      string
}

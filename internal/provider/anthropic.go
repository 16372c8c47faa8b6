package provider

import (
	"context"
	"encoding/base64"
	"errors"

	"sketchui-backend/internal/config"
	"sketchui-backend/internal/model"
	"sketchui-backend/internal/utils"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// anthropicClient 通过 messages 接口调用，没有结构化输出模式
type anthropicClient struct {
	client    *anthropic.Client
	model     string
	maxTokens int
}

func newAnthropicClient(cfg config.AnthropicConfig, debug bool) *anthropicClient {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(utils.NewHTTPClient(cfg.Timeout, debug)),
		// SDK 默认会重试，这里只调用一次
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := anthropic.NewClient(opts...)

	return &anthropicClient{
		client:    &client,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

func (c *anthropicClient) StructuredOutput() bool {
	return false
}

func (c *anthropicClient) Complete(ctx context.Context, image []byte, mimeType, prompt string) (string, error) {
	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(c.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(prompt),
				anthropic.NewImageBlockBase64(mimeType, base64.StdEncoding.EncodeToString(image)),
			),
		},
	})
	if err != nil {
		return "", convertAnthropicError(err)
	}

	// 只取第一个文本块
	for _, block := range msg.Content {
		if b, ok := block.AsAny().(anthropic.TextBlock); ok {
			return b.Text, nil
		}
	}
	return "", &ProviderError{Provider: model.ProviderAnthropic, Message: "no text content in response"}
}

func convertAnthropicError(err error) *ProviderError {
	perr := &ProviderError{Provider: model.ProviderAnthropic, Message: err.Error(), Err: err}

	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		perr.HTTPStatus = apiErr.StatusCode
	}
	return perr
}

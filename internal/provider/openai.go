package provider

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"sketchui-backend/internal/config"
	"sketchui-backend/internal/model"
	"sketchui-backend/internal/utils"

	openai "github.com/sashabaranov/go-openai"
)

// openAIClient 通过 chat completions 接口调用，要求 json_object 输出
type openAIClient struct {
	client    *openai.Client
	model     string
	maxTokens int
}

func newOpenAIClient(cfg config.OpenAIConfig, debug bool) *openAIClient {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = utils.NewHTTPClient(cfg.Timeout, debug)

	return &openAIClient{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

func (c *openAIClient) StructuredOutput() bool {
	return true
}

func (c *openAIClient) Complete(ctx context.Context, image []byte, mimeType, prompt string) (string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: prompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURL,
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", convertOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return "", &ProviderError{Provider: model.ProviderOpenAI, Message: "no choices in response"}
	}

	return resp.Choices[0].Message.Content, nil
}

func convertOpenAIError(err error) *ProviderError {
	perr := &ProviderError{Provider: model.ProviderOpenAI, Message: err.Error(), Err: err}

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		perr.HTTPStatus = apiErr.HTTPStatusCode
		perr.Message = apiErr.Message
	case errors.As(err, &reqErr):
		perr.HTTPStatus = reqErr.HTTPStatusCode
	}
	return perr
}

package service

import (
	"context"

	"sketchui-backend/internal/config"
	"sketchui-backend/internal/model"
	"sketchui-backend/internal/parser"
	"sketchui-backend/internal/prompt"
	"sketchui-backend/internal/provider"
	"sketchui-backend/pkg/logger"

	"github.com/sirupsen/logrus"
)

// StyleSource 设计令牌来源，失败时返回空快照
type StyleSource interface {
	FetchSnapshot(ctx context.Context, projectID, credential string) model.StyleSnapshot
}

// ModelGateway 视觉模型调用入口
type ModelGateway interface {
	HasCredential(p model.Provider) bool
	StructuredMode(p model.Provider) bool
	Invoke(ctx context.Context, p model.Provider, image []byte, mimeType, prompt string) (string, error)
}

// GenerateService 串起样式获取、提示词构建、模型调用和结果解析
type GenerateService struct {
	gateway     ModelGateway
	styles      StyleSource
	figmaFileID string
	figmaToken  string
}

func NewGenerateService(gateway ModelGateway, styles StyleSource, figma config.FigmaConfig) *GenerateService {
	return &GenerateService{
		gateway:     gateway,
		styles:      styles,
		figmaFileID: figma.FileID,
		figmaToken:  figma.APIKey,
	}
}

// Generate 处理一次草图生成请求。
// 返回错误时为 *provider.ProviderError，其中缺少 API Key 的情况可用 errors.Is(err, provider.ErrMissingCredential) 判断
func (s *GenerateService) Generate(ctx context.Context, req *model.GenerationRequest) (model.GenerationResult, error) {
	entry := logger.WithFields(logrus.Fields{
		"request_id": req.RequestID,
		"provider":   req.Provider,
	})

	if !s.gateway.HasCredential(req.Provider) {
		entry.Errorf("%s API Key 未设置", req.Provider)
		return model.GenerationResult{}, provider.NewMissingCredentialError(req.Provider)
	}

	var snapshot *model.StyleSnapshot
	if req.UseStyleTokens && s.styles != nil {
		fetched := s.styles.FetchSnapshot(ctx, s.figmaFileID, s.figmaToken)
		snapshot = &fetched
		if fetched.IsEmpty() {
			entry.Warnf("未获取到设计系统样式，使用基础提示词")
		}
	}

	text := prompt.Build(req.UseStyleTokens, snapshot)
	entry.Debugf("提示词长度: %d", len(text))

	// 客户端断开不取消模型调用
	raw, err := s.gateway.Invoke(context.WithoutCancel(ctx), req.Provider, req.Image, req.MimeType, text)
	if err != nil {
		return model.GenerationResult{}, err
	}

	partial := parser.Extract(raw, s.gateway.StructuredMode(req.Provider))
	degraded := parser.IsFailure(partial)
	if degraded {
		entry.Warnf("模型输出无法解析，返回降级结果")
	} else if missing := parser.MissingFields(partial); len(missing) > 0 {
		entry.Warnf("模型输出缺少字段: %v", missing)
	}

	result := parser.Sanitize(partial)
	entry.WithFields(logrus.Fields{
		"device_type": result.DeviceType,
		"degraded":    degraded,
		"html_len":    len(result.HTML),
		"css_len":     len(result.CSS),
		"js_len":      len(result.JS),
	}).Infof("生成完成 analysis=%q reasoning=%q",
		logger.Truncate(result.Analysis, 200), logger.Truncate(result.Reasoning, 200))

	return result, nil
}

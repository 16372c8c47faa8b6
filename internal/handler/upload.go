package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"sketchui-backend/internal/metrics"
	"sketchui-backend/internal/model"
	"sketchui-backend/internal/provider"
	"sketchui-backend/pkg/logger"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// 表单字段名
const (
	formImage          = "image"
	formModel          = "model"
	formUseStyleTokens = "useStyleTokens"
	formUseFigmaStyles = "useFigmaStyles" // 旧版前端字段
)

// Generator 执行一次草图到代码的生成
type Generator interface {
	Generate(ctx context.Context, req *model.GenerationRequest) (model.GenerationResult, error)
}

type UploadHandler struct {
	generator      Generator
	maxUploadBytes int64
}

func NewUploadHandler(generator Generator, maxUploadBytes int64) *UploadHandler {
	return &UploadHandler{
		generator:      generator,
		maxUploadBytes: maxUploadBytes,
	}
}

// Upload 处理 POST /api/upload
func (h *UploadHandler) Upload(c *gin.Context) {
	requestID := c.GetString(RequestIDKey)

	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	image, mimeType, err := h.readImage(c)
	if err != nil {
		h.reject(c, err)
		return
	}

	p, err := model.ParseProvider(c.PostForm(formModel))
	if err != nil {
		logger.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warnf("%v，使用默认模型 %s", err, p)
	}

	req := &model.GenerationRequest{
		Image:          image,
		MimeType:       mimeType,
		Provider:       p,
		UseStyleTokens: styleFlag(c),
		RequestID:      requestID,
	}

	entry := logger.WithFields(logrus.Fields{
		"request_id":       requestID,
		"provider":         p,
		"mime_type":        mimeType,
		"image_size":       len(image),
		"use_style_tokens": req.UseStyleTokens,
	})
	entry.Info("收到草图上传")

	result, err := h.generator.Generate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, provider.ErrMissingCredential) {
			metrics.GenerationTotal.WithLabelValues(p.String(), metrics.ResultConfigError).Inc()
			c.JSON(http.StatusInternalServerError, model.ErrorResponse{
				Error: fmt.Sprintf("%s API key is not configured", providerName(p)),
			})
			return
		}

		entry.Errorf("生成失败: %v", err)
		metrics.GenerationTotal.WithLabelValues(p.String(), metrics.ResultProviderError).Inc()
		c.JSON(http.StatusInternalServerError, model.NewFailedGenerationResponse(err.Error()))
		return
	}

	metrics.GenerationTotal.WithLabelValues(p.String(), metrics.ResultSuccess).Inc()
	c.JSON(http.StatusOK, result)
}

// readImage 读取 image 字段并确定其 MIME 类型，返回的错误均为 400 错误
func (h *UploadHandler) readImage(c *gin.Context) ([]byte, string, error) {
	file, header, err := c.Request.FormFile(formImage)
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return nil, "", fmt.Errorf("image exceeds the %d byte upload limit", maxErr.Limit)
		case errors.Is(err, http.ErrMissingFile):
			return nil, "", errors.New("no image file provided")
		default:
			return nil, "", fmt.Errorf("failed to parse form data: %w", err)
		}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) == 0 {
		return nil, "", errors.New("no image file provided")
	}

	mimeType := mediaType(header.Header.Get("Content-Type"))
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = mediaType(mimetype.Detect(data).String())
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, "", fmt.Errorf("unsupported file type %q, only images are allowed", mimeType)
	}

	return data, mimeType, nil
}

func (h *UploadHandler) reject(c *gin.Context, err error) {
	logger.WithFields(logrus.Fields{
		"request_id": c.GetString(RequestIDKey),
	}).Warnf("请求参数错误: %v", err)
	metrics.GenerationTotal.WithLabelValues("unknown", metrics.ResultValidationError).Inc()
	c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
}

// styleFlag 读取 useStyleTokens，未提供时回退到 useFigmaStyles。无法解析的值视为 false
func styleFlag(c *gin.Context) bool {
	raw, ok := c.GetPostForm(formUseStyleTokens)
	if !ok {
		raw = c.PostForm(formUseFigmaStyles)
	}
	if raw == "" {
		return false
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		logger.Warnf("无法解析样式开关 %q，按 false 处理", raw)
		return false
	}
	return v
}

func mediaType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.ToLower(mt)
}

func providerName(p model.Provider) string {
	switch p {
	case model.ProviderOpenAI:
		return "OpenAI"
	case model.ProviderAnthropic:
		return "Anthropic"
	default:
		return p.String()
	}
}

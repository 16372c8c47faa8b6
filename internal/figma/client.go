package figma

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"sketchui-backend/internal/config"
	"sketchui-backend/internal/metrics"
	"sketchui-backend/internal/model"
	"sketchui-backend/internal/utils"
	"sketchui-backend/pkg/logger"
)

const defaultBaseURL = "https://api.figma.com/v1"

// Client 从 Figma 文件中提取设计令牌
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient 创建 Figma API 客户端
func NewClient(cfg config.FigmaConfig) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: utils.NewHTTPClient(cfg.Timeout),
		baseURL:    baseURL,
	}
}

// FetchSnapshot 获取设计系统快照。任何失败都返回空快照，不向调用方返回错误
func (c *Client) FetchSnapshot(ctx context.Context, projectID, credential string) model.StyleSnapshot {
	if projectID == "" || credential == "" {
		logger.Warnf("Figma 未配置 (file_id 设置: %v, token 设置: %v)，跳过样式获取", projectID != "", credential != "")
		metrics.StyleFetchTotal.WithLabelValues("skipped").Inc()
		return model.NewStyleSnapshot()
	}

	logger.Infof("Figma 文件信息获取中...")
	var file fileResponse
	if err := c.getJSON(ctx, "/files/"+url.PathEscape(projectID), credential, &file); err != nil {
		logger.Errorf("Figma 样式信息获取失败: %v", err)
		metrics.StyleFetchTotal.WithLabelValues("failed").Inc()
		return model.NewStyleSnapshot()
	}

	snapshot := extractStyles(&file)

	// 变量接口失败不影响已提取的样式
	var vars variablesResponse
	if err := c.getJSON(ctx, "/files/"+url.PathEscape(projectID)+"/variables/local", credential, &vars); err != nil {
		logger.Warnf("Figma 变量信息获取失败，继续处理: %v", err)
	} else {
		snapshot.Spacing = extractSpacing(&vars)
	}

	logger.Infof("Figma 样式获取成功: colors=%d typography=%d spacing=%d effects=%d",
		len(snapshot.Colors), len(snapshot.Typography), len(snapshot.Spacing), len(snapshot.Effects))
	metrics.StyleFetchTotal.WithLabelValues("success").Inc()
	return snapshot
}

func (c *Client) getJSON(ctx context.Context, path, credential string, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("X-Figma-Token", credential)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

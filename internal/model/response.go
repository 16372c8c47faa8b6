package model

// 设备类型
const (
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceDesktop = "desktop"
)

// GenerationResult 返回给调用方的生成结果，经过 Sanitize 后所有字段均非空
type GenerationResult struct {
	Analysis   string `json:"analysis"`
	Reasoning  string `json:"reasoning"`
	DeviceType string `json:"deviceType"`
	HTML       string `json:"html"`
	CSS        string `json:"css"`
	JS         string `json:"js"`
}

// PartialResult 模型输出解码后的原始对象，字段可能缺失或类型不符
type PartialResult map[string]any

// 模型输出中的字段名
const (
	FieldAnalysis   = "analysis"
	FieldReasoning  = "reasoning"
	FieldDeviceType = "deviceType"
	FieldHTML       = "html"
	FieldCSS        = "css"
	FieldJS         = "js"
)

// ResultFields 按输出契约顺序列出的六个字段
var ResultFields = []string{
	FieldAnalysis,
	FieldReasoning,
	FieldDeviceType,
	FieldHTML,
	FieldCSS,
	FieldJS,
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// FailedGenerationResponse 500 响应体，附带降级结果，前端无需单独的错误渲染路径
type FailedGenerationResponse struct {
	Error string `json:"error"`
	GenerationResult
}

// NewFailedGenerationResponse 根据错误信息构造降级响应
func NewFailedGenerationResponse(message string) FailedGenerationResponse {
	return FailedGenerationResponse{
		Error: message,
		GenerationResult: GenerationResult{
			Analysis:   "An error occurred",
			Reasoning:  "An error occurred during processing: " + message,
			DeviceType: DeviceDesktop,
			HTML:       "<div>An error occurred</div>",
			CSS:        "/* An error occurred */",
			JS:         "// An error occurred",
		},
	}
}

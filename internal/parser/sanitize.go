package parser

import (
	"strings"

	"sketchui-backend/internal/model"
)

// 字段缺失时的默认值
const (
	DefaultAnalysis  = "No analysis information available"
	DefaultReasoning = "No reasoning information available"
	DefaultHTML      = "<div>Failed to generate HTML code</div>"
	DefaultCSS       = "/* No style information available */"
	DefaultJS        = "// No script information available"
)

// Sanitize 补齐缺失字段，返回所有字段均非空的结果。
// 非字符串、null、空字符串都视为缺失；deviceType 不在三种取值内时归为 desktop。
func Sanitize(partial model.PartialResult) model.GenerationResult {
	return model.GenerationResult{
		Analysis:   stringField(partial, model.FieldAnalysis, DefaultAnalysis),
		Reasoning:  stringField(partial, model.FieldReasoning, DefaultReasoning),
		DeviceType: NormalizeDeviceType(stringField(partial, model.FieldDeviceType, model.DeviceDesktop)),
		HTML:       stringField(partial, model.FieldHTML, DefaultHTML),
		CSS:        stringField(partial, model.FieldCSS, DefaultCSS),
		JS:         stringField(partial, model.FieldJS, DefaultJS),
	}
}

// NormalizeDeviceType 将任意取值映射到 mobile / tablet / desktop
func NormalizeDeviceType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case model.DeviceMobile:
		return model.DeviceMobile
	case model.DeviceTablet:
		return model.DeviceTablet
	default:
		return model.DeviceDesktop
	}
}

func stringField(partial model.PartialResult, key, fallback string) string {
	value, ok := partial[key].(string)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// MissingFields 列出需要使用默认值的字段，用于日志
func MissingFields(partial model.PartialResult) []string {
	var missing []string
	for _, key := range model.ResultFields {
		if value, ok := partial[key].(string); !ok || strings.TrimSpace(value) == "" {
			missing = append(missing, key)
		}
	}
	return missing
}

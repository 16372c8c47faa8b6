package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"sketchui-backend/internal/metrics"
	"sketchui-backend/internal/model"
	"sketchui-backend/pkg/logger"
)

// 解析失败时返回的固定内容
const (
	FailureAnalysis = "parsing failed"
	FailureHTML     = "<div>Failed to generate HTML code</div>"
	FailureCSS      = "/* Failed to generate style information */"
	FailureJS       = "// Failed to generate script information"
)

var errNoJSONObject = errors.New("no JSON object found in model output")

// newlineReplacer 先把换行折叠成空格，其余控制字符随后删除
var newlineReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Extract 从模型输出中恢复 JSON 对象，永不返回错误。
// structured 为 true 时先尝试直接解析；失败或非结构化输出时截取第一个 '{' 到最后一个 '}'，
// 修复未转义的换行和控制字符后再解析。全部失败时返回固定的失败记录。
func Extract(raw string, structured bool) model.PartialResult {
	if structured {
		result, err := decodeObject(raw)
		if err == nil {
			metrics.ExtractionTotal.WithLabelValues(metrics.ExtractionDirect).Inc()
			return result
		}
		logger.Warnf("结构化输出直接解析失败，尝试修复: %v", err)
	}

	candidate, err := candidateSpan(raw)
	if err != nil {
		return failure(raw, err)
	}

	result, err := decodeObject(Repair(candidate))
	if err != nil {
		return failure(raw, err)
	}

	metrics.ExtractionTotal.WithLabelValues(metrics.ExtractionRepaired).Inc()
	return result
}

// candidateSpan 贪婪截取最外层花括号区间
func candidateSpan(text string) (string, error) {
	start := strings.Index(text, "{")
	if start == -1 {
		return "", errNoJSONObject
	}
	end := strings.LastIndex(text, "}")
	if end < start {
		return "", errNoJSONObject
	}
	return text[start : end+1], nil
}

// Repair 将换行替换为单个空格，并删除 U+0000–U+001F、U+007F–U+009F 控制字符。
// 字符串值中的换行因此变成空格，这是有损的。
func Repair(candidate string) string {
	collapsed := newlineReplacer.Replace(candidate)
	return strings.Map(func(r rune) rune {
		if r <= 0x1F || (r >= 0x7F && r <= 0x9F) {
			return -1
		}
		return r
	}, collapsed)
}

func decodeObject(text string) (model.PartialResult, error) {
	var result model.PartialResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, err
	}
	// 顶层为 null 时 Unmarshal 不报错
	if result == nil {
		return nil, fmt.Errorf("model output is not a JSON object")
	}
	return result, nil
}

func failure(raw string, err error) model.PartialResult {
	metrics.ExtractionTotal.WithLabelValues(metrics.ExtractionFailed).Inc()
	logger.Warnf("模型输出解析失败: %v, 原始内容(截断): %s", err, logger.Truncate(raw, 200))
	return FailureRecord(err)
}

// FailureRecord 构造解析失败时的固定记录
func FailureRecord(err error) model.PartialResult {
	return model.PartialResult{
		model.FieldAnalysis:   FailureAnalysis,
		model.FieldReasoning:  "failed to parse model response: " + err.Error(),
		model.FieldDeviceType: model.DeviceDesktop,
		model.FieldHTML:       FailureHTML,
		model.FieldCSS:        FailureCSS,
		model.FieldJS:         FailureJS,
	}
}

// IsFailure 判断是否为解析失败记录
func IsFailure(result model.PartialResult) bool {
	analysis, _ := result[model.FieldAnalysis].(string)
	html, _ := result[model.FieldHTML].(string)
	return analysis == FailureAnalysis && html == FailureHTML
}

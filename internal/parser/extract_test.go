package parser

import (
	"encoding/json"
	"strings"
	"testing"

	"sketchui-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractProseWrappedObject(t *testing.T) {
	raw := "Here is the result:\n" +
		`{"analysis":"a circle sketch","reasoning":"mapped to div","deviceType":"mobile","html":"<div class=\"circle\"></div>","css":".circle{border-radius:50%}","js":""}`

	result := Extract(raw, false)

	require.False(t, IsFailure(result))
	assert.Equal(t, "a circle sketch", result[model.FieldAnalysis])
	assert.Equal(t, "mapped to div", result[model.FieldReasoning])
	assert.Equal(t, "mobile", result[model.FieldDeviceType])
	assert.Equal(t, `<div class="circle"></div>`, result[model.FieldHTML])
	assert.Equal(t, ".circle{border-radius:50%}", result[model.FieldCSS])
	assert.Equal(t, "", result[model.FieldJS])
}

func TestExtractRepairsUnescapedNewlines(t *testing.T) {
	raw := "{\"analysis\":\"x\",\"reasoning\":\"y\",\"deviceType\":\"desktop\",\"html\":\"<div>\nhello\n</div>\",\"css\":\"\",\"js\":\"\"}"

	result := Extract(raw, false)

	require.False(t, IsFailure(result))
	assert.Equal(t, "<div> hello </div>", result[model.FieldHTML])

	sanitized := Sanitize(result)
	assert.Equal(t, "<div> hello </div>", sanitized.HTML)
	assert.Equal(t, DefaultCSS, sanitized.CSS)
	assert.Equal(t, DefaultJS, sanitized.JS)
	assert.Equal(t, "desktop", sanitized.DeviceType)
}

func TestExtractNotJSON(t *testing.T) {
	result := Extract("not json at all", false)

	require.True(t, IsFailure(result))
	assert.Equal(t, FailureAnalysis, result[model.FieldAnalysis])
	assert.Equal(t, model.DeviceDesktop, result[model.FieldDeviceType])
	assert.Contains(t, result[model.FieldReasoning], "no JSON object found")
}

func TestExtractStructuredDirectParse(t *testing.T) {
	raw := `{"analysis":"a","reasoning":"b","deviceType":"tablet","html":"<p>\n</p>","css":"p{}","js":"x()"}`

	result := Extract(raw, true)

	require.False(t, IsFailure(result))
	// 直接解析成功时不做任何修复，转义的换行保留
	assert.Equal(t, "<p>\n</p>", result[model.FieldHTML])
	assert.Equal(t, "tablet", result[model.FieldDeviceType])
}

func TestExtractStructuredFallsBackToRepair(t *testing.T) {
	raw := "```json\n{\"analysis\":\"a\",\"html\":\"<ul>\n<li>1</li>\n</ul>\"}\n```"

	result := Extract(raw, true)

	require.False(t, IsFailure(result))
	assert.Equal(t, "<ul> <li>1</li> </ul>", result[model.FieldHTML])
}

func TestExtractStripsControlCharacters(t *testing.T) {
	raw := "{\"analysis\":\"tab\there\",\"html\":\"bell\x07\u0085end\"}"

	result := Extract(raw, false)

	require.False(t, IsFailure(result))
	assert.Equal(t, "tabhere", result[model.FieldAnalysis])
	assert.Equal(t, "bellend", result[model.FieldHTML])
}

func TestExtractAlwaysReturnsOneOfTwoShapes(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"plain prose without braces",
		"} reversed braces {",
		`{"analysis": "truncated`,
		`{"analysis": "unbalanced "quote" inside"}`,
		`[1, 2, 3]`,
		`null`,
		`{"analysis":"ok"}`,
		"{\"html\":\"<div>\r\n</div>\"}",
		"prefix {\"a\":1} middle {\"b\":2} suffix",
		"{\x00\x01\x1f}",
	}

	for _, input := range inputs {
		for _, structured := range []bool{true, false} {
			var result model.PartialResult
			require.NotPanics(t, func() { result = Extract(input, structured) }, "input %q", input)
			require.NotNil(t, result, "input %q", input)

			if IsFailure(result) {
				assert.Len(t, result, len(model.ResultFields))
				assert.Equal(t, model.DeviceDesktop, result[model.FieldDeviceType])
				reasoning, _ := result[model.FieldReasoning].(string)
				assert.NotEmpty(t, reasoning)
			}
		}
	}
}

func TestExtractRoundTripWithProse(t *testing.T) {
	original := model.GenerationResult{
		Analysis:   "Landing page with hero and three cards",
		Reasoning:  "Rectangles became cards, the circle became an avatar",
		DeviceType: "desktop",
		HTML:       "<header class=\"top\">\n  <nav>Menu</nav>\n</header>\n<main>\n  <div class=\"card\">A</div>\n</main>",
		CSS:        ":root {\n  --gap: 16px;\n}\n.card {\n  display: grid;\n  gap: var(--gap);\n}",
		JS:         "document.querySelector('nav')\n  .addEventListener('click', () => {\n    console.log(\"open\");\n  });",
	}

	encoded, err := json.Marshal(original)
	require.NoError(t, err)
	// 模拟模型把代码块原样放进字符串值：转义的 \n 变回真实换行
	unescaped := strings.ReplaceAll(string(encoded), `\n`, "\n")
	raw := "Sure! Here is the generated UI.\n\n" + unescaped + "\n\nLet me know if you need changes."

	result := Sanitize(Extract(raw, false))

	collapse := func(s string) string { return strings.ReplaceAll(s, "\n", " ") }
	assert.Equal(t, original.Analysis, result.Analysis)
	assert.Equal(t, original.Reasoning, result.Reasoning)
	assert.Equal(t, original.DeviceType, result.DeviceType)
	assert.Equal(t, collapse(original.HTML), result.HTML)
	assert.Equal(t, collapse(original.CSS), result.CSS)
	assert.Equal(t, collapse(original.JS), result.JS)
}

func TestRepair(t *testing.T) {
	assert.Equal(t, `{"a":"x y z"}`, Repair("{\"a\":\"x\ny\r\nz\"}"))
	assert.Equal(t, `{"a":"b"}`, Repair("{\"a\":\"\x1bb\u009f\"}"))
	assert.Equal(t, `{"a":"日本語"}`, Repair(`{"a":"日本語"}`))
}

package figma

import (
	"fmt"
	"math"
	"strings"

	"sketchui-backend/internal/model"
)

// 节点 styles 字段中可能引用样式 ID 的键
var styleRefKeys = []string{"fill", "stroke", "text", "effect", "grid"}

// extractStyles 为每个已发布样式找到第一个引用它的节点，并按样式类型转换为令牌
func extractStyles(file *fileResponse) model.StyleSnapshot {
	snapshot := model.NewStyleSnapshot()

	for styleID, meta := range file.Styles {
		n := findNodeWithStyleID(&file.Document, styleID)
		if n == nil {
			continue
		}

		switch meta.StyleType {
		case "FILL":
			if len(n.Fills) > 0 && n.Fills[0].Type == "SOLID" && n.Fills[0].Color != nil {
				snapshot.Colors[meta.Name] = colorToken(*n.Fills[0].Color)
			}
		case "TEXT":
			if n.Style != nil {
				snapshot.Typography[meta.Name] = typographyToken(*n.Style)
			}
		case "EFFECT":
			if tokens := effectTokens(n.Effects); len(tokens) > 0 {
				snapshot.Effects[meta.Name] = tokens
			}
		}
	}

	return snapshot
}

// findNodeWithStyleID 深度优先查找第一个引用 styleID 的节点
func findNodeWithStyleID(n *node, styleID string) *node {
	for _, key := range styleRefKeys {
		if n.Styles[key] == styleID {
			return n
		}
	}
	for i := range n.Children {
		if found := findNodeWithStyleID(&n.Children[i], styleID); found != nil {
			return found
		}
	}
	return nil
}

func channel(v float64) int {
	return int(math.Round(v * 255))
}

func alpha(c color) float64 {
	if c.A == nil {
		return 1
	}
	return *c.A
}

func rgba(c color) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", channel(c.R), channel(c.G), channel(c.B), formatNumber(alpha(c)))
}

func colorToken(c color) model.ColorToken {
	return model.ColorToken{
		RGBA: rgba(c),
		Hex:  fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B)),
	}
}

func typographyToken(s typeStyle) model.TypographyToken {
	letterSpacing := "normal"
	if s.LetterSpacing != 0 {
		letterSpacing = formatNumber(s.LetterSpacing) + "px"
	}

	lineHeight := "normal"
	switch s.LineHeightUnit {
	case "PIXELS":
		if s.LineHeightPx > 0 {
			lineHeight = formatNumber(s.LineHeightPx) + "px"
		}
	case "FONT_SIZE_%":
		if s.LineHeightPercentFontSize > 0 {
			lineHeight = formatNumber(s.LineHeightPercentFontSize) + "%"
		}
	}

	return model.TypographyToken{
		FontFamily:    s.FontFamily,
		FontWeight:    formatNumber(s.FontWeight),
		FontSize:      formatNumber(s.FontSize) + "px",
		LetterSpacing: letterSpacing,
		LineHeight:    lineHeight,
	}
}

// effectTokens 只转换投影，其他效果类型忽略
func effectTokens(effects []effect) []model.EffectToken {
	var tokens []model.EffectToken
	for _, e := range effects {
		if e.Type != "DROP_SHADOW" || e.Color == nil {
			continue
		}
		if e.Visible != nil && !*e.Visible {
			continue
		}
		var offset vector
		if e.Offset != nil {
			offset = *e.Offset
		}
		tokens = append(tokens, model.EffectToken{
			Kind: "boxShadow",
			Value: fmt.Sprintf("%spx %spx %spx %s",
				formatNumber(offset.X), formatNumber(offset.Y), formatNumber(e.Radius), rgba(*e.Color)),
		})
	}
	return tokens
}

// extractSpacing 从名称包含 spacing 的变量集合中取默认模式下的数值
func extractSpacing(vars *variablesResponse) map[string]string {
	spacing := make(map[string]string)

	for _, collection := range vars.Meta.VariableCollections {
		if !strings.Contains(strings.ToLower(collection.Name), "spacing") {
			continue
		}
		modeID := collection.DefaultModeID
		if modeID == "" && len(collection.Modes) > 0 {
			modeID = collection.Modes[0].ModeID
		}

		for _, v := range vars.Meta.Variables {
			if v.VariableCollectionID != collection.ID {
				continue
			}
			if value, ok := v.ValuesByMode[modeID].(float64); ok {
				spacing[v.Name] = formatNumber(value) + "px"
			}
		}
	}

	return spacing
}

func formatNumber(v float64) string {
	return fmt.Sprintf("%g", v)
}

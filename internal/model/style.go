package model

// ColorToken 颜色样式
type ColorToken struct {
	RGBA string `json:"rgba"`
	Hex  string `json:"hex"`
}

// TypographyToken 文本样式，尺寸类字段已带单位
type TypographyToken struct {
	FontFamily    string `json:"fontFamily"`
	FontWeight    string `json:"fontWeight"`
	FontSize      string `json:"fontSize"`
	LetterSpacing string `json:"letterSpacing"`
	LineHeight    string `json:"lineHeight"`
}

// EffectToken 单个效果，Kind 如 boxShadow，Value 为 CSS 值
type EffectToken struct {
	Kind  string `json:"type"`
	Value string `json:"value"`
}

// StyleSnapshot 设计系统快照，每次请求新建，构造后不再修改
type StyleSnapshot struct {
	Colors     map[string]ColorToken      `json:"colors"`
	Typography map[string]TypographyToken `json:"typography"`
	Spacing    map[string]string          `json:"spacing"`
	Effects    map[string][]EffectToken   `json:"effects"`
}

// NewStyleSnapshot 返回各分类均为空的快照
func NewStyleSnapshot() StyleSnapshot {
	return StyleSnapshot{
		Colors:     make(map[string]ColorToken),
		Typography: make(map[string]TypographyToken),
		Spacing:    make(map[string]string),
		Effects:    make(map[string][]EffectToken),
	}
}

// IsEmpty 四个分类都没有内容时为 true
func (s *StyleSnapshot) IsEmpty() bool {
	if s == nil {
		return true
	}
	return len(s.Colors) == 0 && len(s.Typography) == 0 && len(s.Spacing) == 0 && len(s.Effects) == 0
}

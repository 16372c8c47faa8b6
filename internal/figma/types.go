package figma

// Figma REST API 响应中用到的部分字段

type fileResponse struct {
	Name     string               `json:"name"`
	Document node                 `json:"document"`
	Styles   map[string]styleMeta `json:"styles"`
}

type styleMeta struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	StyleType string `json:"styleType"`
}

type node struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Type     string            `json:"type"`
	Children []node            `json:"children"`
	Styles   map[string]string `json:"styles"`
	Fills    []paint           `json:"fills"`
	Style    *typeStyle        `json:"style"`
	Effects  []effect          `json:"effects"`
}

type color struct {
	R float64  `json:"r"`
	G float64  `json:"g"`
	B float64  `json:"b"`
	A *float64 `json:"a"`
}

type paint struct {
	Type  string `json:"type"`
	Color *color `json:"color"`
}

type typeStyle struct {
	FontFamily                string  `json:"fontFamily"`
	FontWeight                float64 `json:"fontWeight"`
	FontSize                  float64 `json:"fontSize"`
	LetterSpacing             float64 `json:"letterSpacing"`
	LineHeightPx              float64 `json:"lineHeightPx"`
	LineHeightPercentFontSize float64 `json:"lineHeightPercentFontSize"`
	LineHeightUnit            string  `json:"lineHeightUnit"`
}

type vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type effect struct {
	Type    string  `json:"type"`
	Visible *bool   `json:"visible"`
	Color   *color  `json:"color"`
	Offset  *vector `json:"offset"`
	Radius  float64 `json:"radius"`
}

type variablesResponse struct {
	Status int  `json:"status"`
	Error  bool `json:"error"`
	Meta   struct {
		Variables           map[string]variable           `json:"variables"`
		VariableCollections map[string]variableCollection `json:"variableCollections"`
	} `json:"meta"`
}

type variable struct {
	ID                   string         `json:"id"`
	Name                 string         `json:"name"`
	VariableCollectionID string         `json:"variableCollectionId"`
	ResolvedType         string         `json:"resolvedType"`
	ValuesByMode         map[string]any `json:"valuesByMode"`
}

type variableCollection struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	DefaultModeID string         `json:"defaultModeId"`
	Modes         []variableMode `json:"modes"`
}

type variableMode struct {
	ModeID string `json:"modeId"`
	Name   string `json:"name"`
}

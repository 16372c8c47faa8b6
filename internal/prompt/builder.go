package prompt

import (
	"fmt"
	"sort"
	"strings"

	"sketchui-backend/internal/model"
)

const basePrompt = `This hand-drawn sketch is a UI design. Based on this sketch, generate a UI that looks like a real website or application.

First, determine whether the sketch targets a smartphone, a tablet or a desktop. What matters is not the aspect ratio of the whole photo but the outline shape and proportions of the device (screen) drawn inside the sketch. For example:
- A tall, narrow rectangle indicates a smartphone
- A slightly tall, medium-sized rectangle indicates a tablet
- A wide, large rectangle indicates a desktop

The content and layout drawn in the sketch are also cues:
- Mobile-style navigation bars or hamburger menus
- Tablet-style split views or multiple columns
- Desktop-style wide layouts or menu bars

Always decide from the sketch content and the drawn device shape, and set the deviceType field to exactly one of "mobile", "tablet" or "desktop".

### Shape elements
Implement shapes drawn in the sketch (circles, rectangles, lines and so on) as real visual elements, never as text. In particular:
- Circles -> a div rendered as a circle (border-radius: 50%)
- Small circles or dots -> buttons, icons or dot navigation
- Rectangles -> cards, buttons or containers
- Lines -> dividers (hr), borders or outlines

For example, a hand-drawn circle is implemented like this:
` + "```html" + `
<div class="circle"></div>
` + "```" + `

` + "```css" + `
.circle {
  width: 50px;
  height: 50px;
  border-radius: 50%;
  background-color: #e0e0e0;
}
` + "```" + `

### Images
When the sketch depicts an image, do not insert a real image. Render a placeholder instead:
- Use an img element with an empty src or "#"
- Give it a light grey background (#f0f0f0, #e5e5e5 or similar)
- Add a thin light grey border (about 1px) if appropriate
- Size it according to its relative size in the sketch

Example:
` + "```html" + `
<div class="image-placeholder">
  <div class="placeholder-content">Image placeholder</div>
</div>
` + "```" + `

` + "```css" + `
.image-placeholder {
  background-color: #f0f0f0;
  border: 1px solid #e0e0e0;
  display: flex;
  align-items: center;
  justify-content: center;
  width: 100%;
  height: 200px;
}
.placeholder-content {
  color: #888;
  font-size: 14px;
}
` + "```" + `

### Element size and position
Carefully analyse the relative size and position of the elements in the sketch:
- Text size: follow the size and importance of the text in the sketch
- Button size: match how the buttons are drawn
- Layout balance: reproduce spacing and alignment faithfully
- Component hierarchy: keep the visual priority

When generating the code:
1. Keep the basic layout and placement of the sketch
2. Aim for a modern, polished style
3. Apply common UI patterns:
   - A fixed header (position: fixed/sticky)
   - A hamburger menu for navigation on mobile
   - Hover effects on buttons and links
   - Focus states on form elements
   - Scroll indicators on scrollable content
   - Working image galleries and sliders
4. Use modern layout techniques:
   - Flexbox
   - CSS Grid
   - CSS custom properties (variables)`

const designSystemIntro = `

### Design system
Generate the HTML and CSS using the following design system information retrieved from Figma.
The generated CSS should reference these values wherever possible.`

const designSystemOutro = `

When writing CSS, declare these Figma style names as CSS custom properties and reference them. For example:

` + "```css" + `
:root {
  /* colors */
  --color-primary: #3B82F6;
  --color-text-primary: #1F2937;

  /* typography */
  --typography-heading-1-font-size: 24px;
  --typography-heading-1-font-weight: 700;

  /* spacing */
  --spacing-s: 8px;
  --spacing-m: 16px;
}

.button {
  background-color: var(--color-primary);
  padding: var(--spacing-s) var(--spacing-m);
  font-size: var(--typography-body-regular-font-size);
}
` + "```" + `

Analyse the sketch this way and generate UI code that follows the design system above.`

const outputContract = `

IMPORTANT: respond with exactly one JSON object in the following format and nothing else. No explanations, no markdown fences:
{"analysis": "analysis of the sketch", "reasoning": "explanation of the conversion", "deviceType": "mobile/tablet/desktop", "html": "HTML code", "css": "CSS code", "js": "JavaScript code"}`

// 分类为空时的占位说明
const (
	noColors     = "// No color style information available"
	noTypography = "// No typography style information available"
	noSpacing    = "// No spacing style information available"
	noEffects    = "// No effect style information available"
)

// Build 组装发送给模型的提示词。纯函数，相同输入得到相同输出
func Build(useStyleTokens bool, snapshot *model.StyleSnapshot) string {
	var sb strings.Builder
	sb.WriteString(basePrompt)

	if useStyleTokens && !snapshot.IsEmpty() {
		sb.WriteString(designSystemIntro)
		writeSection(&sb, "Color styles", formatColors(snapshot.Colors), noColors)
		writeSection(&sb, "Typography styles", formatTypography(snapshot.Typography), noTypography)
		writeSection(&sb, "Spacing styles", formatSpacing(snapshot.Spacing), noSpacing)
		writeSection(&sb, "Effect styles", formatEffects(snapshot.Effects), noEffects)
		sb.WriteString(designSystemOutro)
	}

	sb.WriteString(outputContract)
	return sb.String()
}

func writeSection(sb *strings.Builder, title, body, placeholder string) {
	if body == "" {
		body = placeholder
	}
	fmt.Fprintf(sb, "\n\n## %s\n%s", title, body)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatColors(colors map[string]model.ColorToken) string {
	lines := make([]string, 0, len(colors))
	for _, name := range sortedKeys(colors) {
		c := colors[name]
		lines = append(lines, fmt.Sprintf("%s: %s (%s)", name, c.RGBA, c.Hex))
	}
	return strings.Join(lines, "\n")
}

func formatTypography(typography map[string]model.TypographyToken) string {
	blocks := make([]string, 0, len(typography))
	for _, name := range sortedKeys(typography) {
		t := typography[name]
		blocks = append(blocks, fmt.Sprintf(
			"%s:\n  font-family: %s\n  font-size: %s\n  font-weight: %s\n  line-height: %s\n  letter-spacing: %s",
			name, t.FontFamily, t.FontSize, t.FontWeight, t.LineHeight, t.LetterSpacing,
		))
	}
	return strings.Join(blocks, "\n\n")
}

func formatSpacing(spacing map[string]string) string {
	lines := make([]string, 0, len(spacing))
	for _, name := range sortedKeys(spacing) {
		lines = append(lines, fmt.Sprintf("%s: %s", name, spacing[name]))
	}
	return strings.Join(lines, "\n")
}

func formatEffects(effects map[string][]model.EffectToken) string {
	blocks := make([]string, 0, len(effects))
	for _, name := range sortedKeys(effects) {
		values := make([]string, 0, len(effects[name]))
		for _, e := range effects[name] {
			values = append(values, fmt.Sprintf("  %s: %s", e.Kind, e.Value))
		}
		blocks = append(blocks, name+":\n"+strings.Join(values, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

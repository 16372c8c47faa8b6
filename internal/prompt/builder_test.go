package prompt

import (
	"strings"
	"testing"

	"sketchui-backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func fullSnapshot() *model.StyleSnapshot {
	s := model.NewStyleSnapshot()
	s.Colors["Primary"] = model.ColorToken{RGBA: "rgba(59, 130, 246, 1)", Hex: "#3b82f6"}
	s.Colors["Accent"] = model.ColorToken{RGBA: "rgba(16, 185, 129, 1)", Hex: "#10b981"}
	s.Typography["Heading/H1"] = model.TypographyToken{
		FontFamily: "Inter", FontWeight: "700", FontSize: "24px", LetterSpacing: "normal", LineHeight: "32PIXELS",
	}
	s.Spacing["spacing/s"] = "8px"
	s.Effects["Shadow/Card"] = []model.EffectToken{{Kind: "boxShadow", Value: "0px 4px 8px rgba(0, 0, 0, 0.25)"}}
	return &s
}

func TestBuildWithoutStyleTokens(t *testing.T) {
	out := Build(false, fullSnapshot())

	assert.True(t, strings.HasPrefix(out, basePrompt))
	assert.True(t, strings.HasSuffix(out, outputContract))
	assert.NotContains(t, out, "### Design system")
}

func TestBuildContractAlwaysPresent(t *testing.T) {
	for _, out := range []string{Build(false, nil), Build(true, nil), Build(true, fullSnapshot())} {
		for _, field := range model.ResultFields {
			assert.Contains(t, out, `"`+field+`"`)
		}
		assert.True(t, strings.HasSuffix(out, outputContract))
	}
}

func TestBuildBaseCoversRules(t *testing.T) {
	out := Build(false, nil)

	assert.Contains(t, out, "border-radius: 50%")
	assert.Contains(t, out, "image-placeholder")
	assert.Contains(t, out, "CSS Grid")
	assert.Contains(t, out, `"mobile", "tablet" or "desktop"`)
}

func TestBuildEmptySnapshotSkipsSection(t *testing.T) {
	empty := model.NewStyleSnapshot()

	assert.Equal(t, Build(false, nil), Build(true, &empty))
	assert.Equal(t, Build(false, nil), Build(true, nil))
}

func TestBuildWithStyleTokens(t *testing.T) {
	out := Build(true, fullSnapshot())

	assert.Contains(t, out, "### Design system")
	assert.Contains(t, out, "Primary: rgba(59, 130, 246, 1) (#3b82f6)")
	assert.Contains(t, out, "Heading/H1:\n  font-family: Inter\n  font-size: 24px\n  font-weight: 700")
	assert.Contains(t, out, "spacing/s: 8px")
	assert.Contains(t, out, "Shadow/Card:\n  boxShadow: 0px 4px 8px rgba(0, 0, 0, 0.25)")
	assert.Contains(t, out, "--color-primary")
	// 颜色按名称排序
	assert.Less(t, strings.Index(out, "Accent:"), strings.Index(out, "Primary:"))
}

func TestBuildPartialSnapshotRendersPlaceholders(t *testing.T) {
	s := model.NewStyleSnapshot()
	s.Spacing["spacing/m"] = "16px"

	out := Build(true, &s)

	assert.Contains(t, out, "## Color styles\n"+noColors)
	assert.Contains(t, out, "## Typography styles\n"+noTypography)
	assert.Contains(t, out, "## Spacing styles\nspacing/m: 16px")
	assert.Contains(t, out, "## Effect styles\n"+noEffects)
}

func TestBuildDeterministic(t *testing.T) {
	first := Build(true, fullSnapshot())
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Build(true, fullSnapshot()))
	}
}

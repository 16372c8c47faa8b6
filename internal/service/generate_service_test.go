package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"sketchui-backend/internal/config"
	"sketchui-backend/internal/model"
	"sketchui-backend/internal/parser"
	"sketchui-backend/internal/provider"
	"sketchui-backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	credential bool
	structured bool
	raw        string
	err        error

	calls      int
	lastPrompt string
	lastMime   string
	ctxErr     error
}

func (g *fakeGateway) HasCredential(model.Provider) bool  { return g.credential }
func (g *fakeGateway) StructuredMode(model.Provider) bool { return g.structured }

func (g *fakeGateway) Invoke(ctx context.Context, _ model.Provider, _ []byte, mimeType, prompt string) (string, error) {
	g.calls++
	g.lastPrompt = prompt
	g.lastMime = mimeType
	g.ctxErr = ctx.Err()
	return g.raw, g.err
}

type fakeStyles struct {
	snapshot  model.StyleSnapshot
	calls     int
	projectID string
	token     string
}

func (s *fakeStyles) FetchSnapshot(_ context.Context, projectID, credential string) model.StyleSnapshot {
	s.calls++
	s.projectID = projectID
	s.token = credential
	return s.snapshot
}

func newRequest(useStyles bool) *model.GenerationRequest {
	return &model.GenerationRequest{
		Image:          []byte{0x89, 'P', 'N', 'G'},
		MimeType:       "image/png",
		Provider:       model.ProviderOpenAI,
		UseStyleTokens: useStyles,
		RequestID:      "req-1",
	}
}

var figmaCfg = config.FigmaConfig{APIKey: "figd-token", FileID: "FILE1"}

func TestGenerateStructuredSuccess(t *testing.T) {
	logs := captureLogs(t)
	gw := &fakeGateway{
		credential: true,
		structured: true,
		raw:        `{"analysis":"a","reasoning":"r","deviceType":"mobile","html":"<div/>","css":"div{}","js":"x()"}`,
	}
	styles := &fakeStyles{}
	svc := NewGenerateService(gw, styles, figmaCfg)

	result, err := svc.Generate(context.Background(), newRequest(false))
	require.NoError(t, err)

	assert.Equal(t, model.GenerationResult{
		Analysis: "a", Reasoning: "r", DeviceType: model.DeviceMobile,
		HTML: "<div/>", CSS: "div{}", JS: "x()",
	}, result)
	assert.Equal(t, 1, gw.calls)
	assert.Equal(t, "image/png", gw.lastMime)
	assert.Zero(t, styles.calls)
	assert.NotContains(t, gw.lastPrompt, "## Color styles")
	assert.Contains(t, logs.String(), `"degraded":false`)
	assert.NotContains(t, logs.String(), "返回降级结果")
}

func TestGenerateWithStyleTokens(t *testing.T) {
	snapshot := model.NewStyleSnapshot()
	snapshot.Colors["Primary"] = model.ColorToken{RGBA: "rgba(59, 130, 246, 1)", Hex: "#3b82f6"}

	gw := &fakeGateway{credential: true, raw: "Here you go:\n{\"analysis\":\"a\",\"deviceType\":\"Tablet\"}\nThanks"}
	styles := &fakeStyles{snapshot: snapshot}
	svc := NewGenerateService(gw, styles, figmaCfg)

	result, err := svc.Generate(context.Background(), newRequest(true))
	require.NoError(t, err)

	assert.Equal(t, 1, styles.calls)
	assert.Equal(t, "FILE1", styles.projectID)
	assert.Equal(t, "figd-token", styles.token)
	assert.Contains(t, gw.lastPrompt, "Primary")
	assert.Contains(t, gw.lastPrompt, "#3b82f6")

	assert.Equal(t, model.DeviceTablet, result.DeviceType)
	assert.Equal(t, "a", result.Analysis)
	assert.Equal(t, parser.DefaultReasoning, result.Reasoning)
	assert.Equal(t, parser.DefaultHTML, result.HTML)
}

func TestGenerateEmptySnapshotUsesBasePrompt(t *testing.T) {
	gw := &fakeGateway{credential: true, raw: `{}`}
	styles := &fakeStyles{snapshot: model.NewStyleSnapshot()}
	svc := NewGenerateService(gw, styles, figmaCfg)

	_, err := svc.Generate(context.Background(), newRequest(true))
	require.NoError(t, err)

	assert.Equal(t, 1, styles.calls)
	assert.NotContains(t, gw.lastPrompt, "## Color styles")
}

func TestGenerateMissingCredential(t *testing.T) {
	gw := &fakeGateway{}
	styles := &fakeStyles{}
	svc := NewGenerateService(gw, styles, figmaCfg)

	_, err := svc.Generate(context.Background(), newRequest(true))

	require.Error(t, err)
	assert.True(t, errors.Is(err, provider.ErrMissingCredential))
	assert.Zero(t, gw.calls)
	assert.Zero(t, styles.calls)
}

func TestGenerateProviderError(t *testing.T) {
	perr := &provider.ProviderError{Provider: model.ProviderOpenAI, HTTPStatus: 502, Message: "bad gateway"}
	gw := &fakeGateway{credential: true, err: perr}
	svc := NewGenerateService(gw, &fakeStyles{}, figmaCfg)

	_, err := svc.Generate(context.Background(), newRequest(false))

	var got *provider.ProviderError
	require.True(t, errors.As(err, &got))
	assert.Equal(t, 502, got.HTTPStatus)
	assert.False(t, errors.Is(err, provider.ErrMissingCredential))
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	require.NoError(t, logger.Init("info", "json"))
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(os.Stdout) })
	return &buf
}

func TestGenerateUnparseableOutputDegrades(t *testing.T) {
	logs := captureLogs(t)
	gw := &fakeGateway{credential: true, raw: "I cannot help with that."}
	svc := NewGenerateService(gw, &fakeStyles{}, figmaCfg)

	result, err := svc.Generate(context.Background(), newRequest(false))
	require.NoError(t, err)

	assert.Contains(t, logs.String(), "返回降级结果")
	assert.Contains(t, logs.String(), `"degraded":true`)

	assert.Equal(t, "parsing failed", result.Analysis)
	assert.True(t, strings.HasPrefix(result.Reasoning, "failed to parse model response"))
	assert.Equal(t, model.DeviceDesktop, result.DeviceType)
}

func TestGenerateIgnoresCallerCancellation(t *testing.T) {
	gw := &fakeGateway{credential: true, raw: `{"analysis":"a"}`}
	svc := NewGenerateService(gw, &fakeStyles{}, figmaCfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Generate(ctx, newRequest(false))
	require.NoError(t, err)
	assert.Equal(t, 1, gw.calls)
	assert.NoError(t, gw.ctxErr)
}

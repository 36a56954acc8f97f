package runtime

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/boost/internal/coach"
	"github.com/manav03panchal/boost/internal/config"
	"github.com/manav03panchal/boost/internal/output"
	"github.com/manav03panchal/boost/internal/timer"
)

type stubCoach struct{}

func (stubCoach) Chat(context.Context, string) string { return "hi" }
func (stubCoach) SuggestTasks(context.Context) []string { return []string{"a"} }
func (stubCoach) Insight(context.Context, any) string { return "good" }
func (stubCoach) Tips(context.Context) []string { return []string{"tip"} }

func newTestContext(t *testing.T, opts Options) *Context {
	t.Helper()
	t.Setenv(DataEnv, "")
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	ctx, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(func() { ctx.Close() })
	return ctx
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	assert.False(t, opts.InMemory)
	assert.Equal(t, output.FormatCLI, opts.Format)
	assert.Equal(t, output.ColorAuto, opts.ColorMode)
	assert.False(t, opts.Debug)
}

func TestNew(t *testing.T) {
	ctx := newTestContext(t, Options{InMemory: true})

	assert.NotNil(t, ctx.Config)
	assert.NotNil(t, ctx.Store)
	assert.NotNil(t, ctx.Workspace)
	assert.NotNil(t, ctx.Formatter)
	assert.NotEmpty(t, ctx.Workspace.Habits())
}

func TestNewWithOptions(t *testing.T) {
	ctx := newTestContext(t, Options{
		InMemory:  true,
		Format:    output.FormatJSON,
		ColorMode: output.ColorNever,
		Debug:     true,
	})

	assert.Equal(t, output.FormatJSON, ctx.Formatter.Format)
	assert.Equal(t, output.ColorNever, ctx.Formatter.ColorMode)
	assert.True(t, ctx.Debug)
}

func TestNewBackends(t *testing.T) {
	for _, backend := range []string{"badger", "sqlite", "file"} {
		t.Run(backend, func(t *testing.T) {
			ctx := newTestContext(t, Options{InMemory: true, Backend: backend})
			assert.Equal(t, backend, ctx.Store.Backend().Name())
		})
	}
}

func TestNewUnknownBackend(t *testing.T) {
	t.Setenv(DataEnv, "")
	_, err := New(Options{Config: config.Default(), InMemory: true, Backend: "mongo"})
	assert.Error(t, err)
}

func TestNewDataPathPersists(t *testing.T) {
	t.Setenv(DataEnv, "")
	dir := filepath.Join(t.TempDir(), "data")

	first, err := New(Options{Config: config.Default(), Backend: "file", DataPath: dir})
	require.NoError(t, err)
	_, err = first.Workspace.AddTask("Persisted", 10, "", "")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := New(Options{Config: config.Default(), Backend: "file", DataPath: dir})
	require.NoError(t, err)
	defer second.Close()
	assert.Equal(t, "Persisted", second.Workspace.Tasks()[0].Title)
}

func TestNewWithEnvVariable(t *testing.T) {
	t.Setenv(DataEnv, ":memory:")

	ctx, err := New(Options{Config: config.Default(), Backend: "sqlite"})
	require.NoError(t, err)
	defer ctx.Close()
	assert.NotNil(t, ctx.Workspace)
}

func TestNewWithEnvVariablePath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "env")
	t.Setenv(DataEnv, dir)

	ctx, err := New(Options{Config: config.Default(), Backend: "file"})
	require.NoError(t, err)
	defer ctx.Close()
	assert.Equal(t, dir, ctx.Config.Storage.Path)
}

func TestContextClose(t *testing.T) {
	t.Setenv(DataEnv, "")
	ctx, err := New(Options{Config: config.Default(), InMemory: true})
	require.NoError(t, err)
	assert.NoError(t, ctx.Close())
}

func TestContextCoachOverride(t *testing.T) {
	ctx := newTestContext(t, Options{InMemory: true, Coach: stubCoach{}})

	c := ctx.Coach(context.Background())
	assert.Equal(t, "hi", c.Chat(context.Background(), "hello"))
}

func TestContextCoachUnconfigured(t *testing.T) {
	ctx := newTestContext(t, Options{InMemory: true})

	c := ctx.Coach(context.Background())
	client, ok := c.(*coach.Client)
	require.True(t, ok)
	assert.False(t, client.Configured())
	assert.Same(t, client, ctx.Coach(context.Background()))
	assert.Equal(t, coach.ChatNoKeyReply, c.Chat(context.Background(), "hello"))
}

func TestContextNewTimer(t *testing.T) {
	cfg := config.Default()
	cfg.Timer.Focus = 50
	cfg.Timer.Break = 10
	ctx := newTestContext(t, Options{Config: cfg, InMemory: true})

	engine := ctx.NewTimer(timer.PolicyStop)
	assert.Equal(t, 50, engine.Minutes(timer.ModeFocus))
	assert.Equal(t, 10, engine.Minutes(timer.ModeBreak))
}

func TestContextFormatters(t *testing.T) {
	ctx := newTestContext(t, Options{InMemory: true, Format: output.FormatYAML})

	assert.NotNil(t, ctx.CLIFormatter())
	assert.NotNil(t, ctx.JSONFormatter())
	assert.False(t, ctx.IsJSON())
	assert.False(t, ctx.IsCLI())
	assert.True(t, ctx.IsStructured())
}

func TestContextIsJSON(t *testing.T) {
	ctx := newTestContext(t, Options{InMemory: true, Format: output.FormatJSON})
	assert.True(t, ctx.IsJSON())
	assert.True(t, ctx.IsStructured())

	ctx.Formatter.Format = output.FormatCLI
	assert.False(t, ctx.IsJSON())
	assert.True(t, ctx.IsCLI())
}

func TestContextDebugf(t *testing.T) {
	ctx := newTestContext(t, Options{InMemory: true, Debug: true})
	var buf bytes.Buffer
	ctx.Formatter.Writer = &buf

	ctx.Debugf("test %s", "message")
	assert.Contains(t, buf.String(), "[DEBUG] test message")

	buf.Reset()
	ctx.Debug = false
	ctx.Debugf("hidden")
	assert.Empty(t, buf.String())
}

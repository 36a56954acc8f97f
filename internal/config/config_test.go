package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/boost/internal/errors"
)

// clearEnv blanks every variable Load reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"BOOST_STORAGE_BACKEND", "BOOST_STORAGE_PATH",
		"BOOST_TIMER_FOCUS", "BOOST_TIMER_BREAK",
		"BOOST_LLM_PROVIDER", "BOOST_LLM_MODEL", "BOOST_LLM_APIKEY",
		"BOOST_LLM_BASEURL", "BOOST_LLM_TIMEOUT",
		"BOOST_LOG_LEVEL", "BOOST_LOG_JSON",
		"GEMINI_API_KEY", "API_KEY",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "badger", cfg.Storage.Backend)
	assert.Empty(t, cfg.Storage.Path)
	assert.Equal(t, 25, cfg.Timer.Focus)
	assert.Equal(t, 5, cfg.Timer.Break)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.False(t, cfg.Log.JSON)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultPath(t *testing.T) {
	path := DefaultPath()
	assert.Equal(t, "config.yaml", filepath.Base(path))
	assert.Equal(t, "boost", filepath.Base(filepath.Dir(path)))
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", `
storage:
  backend: sqlite
  path: /tmp/boost.db
timer:
  focus: 50
  break: 10
llm:
  provider: OpenAI
  model: gpt-4o
  timeout: 5s
log:
  level: debug
  json: true
`)

	cfg, err := Load(Options{File: path, SkipEnvFile: true})
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "/tmp/boost.db", cfg.Storage.Path)
	assert.Equal(t, 50, cfg.Timer.Focus)
	assert.Equal(t, 10, cfg.Timer.Break)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", "timer:\n  focus: 50\n")
	t.Setenv("BOOST_TIMER_FOCUS", "45")
	t.Setenv("BOOST_STORAGE_BACKEND", "file")

	cfg, err := Load(Options{File: path, SkipEnvFile: true})
	require.NoError(t, err)

	assert.Equal(t, 45, cfg.Timer.Focus)
	assert.Equal(t, 5, cfg.Timer.Break)
	assert.Equal(t, "file", cfg.Storage.Backend)
}

func TestLoadAPIKeyFallbacks(t *testing.T) {
	path := writeFile(t, "config.yaml", "log:\n  level: warn\n")

	t.Run("gemini key", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GEMINI_API_KEY", "gm-key")

		cfg, err := Load(Options{File: path, SkipEnvFile: true})
		require.NoError(t, err)
		assert.Equal(t, "gm-key", cfg.LLM.APIKey)
	})

	t.Run("generic key", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("API_KEY", "generic")

		cfg, err := Load(Options{File: path, SkipEnvFile: true})
		require.NoError(t, err)
		assert.Equal(t, "generic", cfg.LLM.APIKey)
	})

	t.Run("boost key wins", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("BOOST_LLM_APIKEY", "boost")
		t.Setenv("GEMINI_API_KEY", "gm-key")

		cfg, err := Load(Options{File: path, SkipEnvFile: true})
		require.NoError(t, err)
		assert.Equal(t, "boost", cfg.LLM.APIKey)
	})
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", "log:\n  level: warn\n")
	envFile := writeFile(t, ".env", "BOOST_TIMER_BREAK=15\n")
	t.Cleanup(func() { os.Unsetenv("BOOST_TIMER_BREAK") })

	cfg, err := Load(Options{File: path, EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.Timer.Break)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(Options{File: filepath.Join(t.TempDir(), "nope.yaml"), SkipEnvFile: true})
	require.Error(t, err)
	assert.True(t, errors.IsUserError(err))
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		key     string
	}{
		{"backend", "storage:\n  backend: mongo\n", "storage.backend"},
		{"focus", "timer:\n  focus: 0\n", "timer.focus"},
		{"break", "timer:\n  break: 500\n", "timer.break"},
		{"provider", "llm:\n  provider: bard\n", "llm.provider"},
		{"base url", "llm:\n  baseURL: not a url\n", "llm.baseURL"},
		{"level", "log:\n  level: loud\n", "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			path := writeFile(t, "config.yaml", tt.content)

			_, err := Load(Options{File: path, SkipEnvFile: true})
			require.Error(t, err)
			ue, ok := errors.AsUserError(err)
			require.True(t, ok)
			assert.Equal(t, tt.key, ue.Field)
			assert.NotEmpty(t, ue.Suggestion)
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Timer.Focus = 40
	cfg.LLM.Provider = "ollama"
	cfg.LLM.Timeout = 90 * time.Second
	require.NoError(t, cfg.Write(path))

	loaded, err := Load(Options{File: path, SkipEnvFile: true})
	require.NoError(t, err)
	assert.Equal(t, 40, loaded.Timer.Focus)
	assert.Equal(t, "ollama", loaded.LLM.Provider)
	assert.Equal(t, 90*time.Second, loaded.LLM.Timeout)
}

func TestMap(t *testing.T) {
	cfg := Default()
	cfg.LLM.APIKey = "secret"

	m := cfg.Map()
	llm, ok := m["llm"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "secret", llm["apiKey"])
	assert.Equal(t, "30s", llm["timeout"])
}

func TestGet(t *testing.T) {
	cfg := Default()

	v, err := cfg.Get("timer.focus")
	require.NoError(t, err)
	assert.Equal(t, 25, v)

	v, err = cfg.Get("LLM.APIKEY")
	require.NoError(t, err)
	assert.Equal(t, "", v)

	_, err = cfg.Get("timer.long")
	assert.True(t, errors.IsUserError(err))
}

func TestSet(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Set(path, "timer.focus", "50")
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Timer.Focus)
	assert.Equal(t, 5, cfg.Timer.Break)

	cfg, err = Set(path, "llm.timeout", "1m")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, cfg.LLM.Timeout)
	assert.Equal(t, 50, cfg.Timer.Focus, "earlier values are kept")

	loaded, err := Load(Options{File: path, SkipEnvFile: true})
	require.NoError(t, err)
	assert.Equal(t, 50, loaded.Timer.Focus)
	assert.Equal(t, time.Minute, loaded.LLM.Timeout)
}

func TestSetRejectsInvalid(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")

	_, err := Set(path, "timer.focus", "0")
	assert.True(t, errors.IsUserError(err))
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "invalid values are not written")

	_, err = Set(path, "storage.backend", "mongo")
	assert.True(t, errors.IsUserError(err))

	_, err = Set(path, "nope", "1")
	assert.True(t, errors.IsUserError(err))
}

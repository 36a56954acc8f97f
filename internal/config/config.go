// Package config loads Boost settings from defaults, an optional YAML file,
// a .env file and BOOST_* environment variables, in increasing precedence.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/manav03panchal/boost/internal/errors"
)

const (
	appName    = "boost"
	configName = "config"
	envPrefix  = "BOOST"
)

// Config holds every user-tunable setting.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Timer   TimerConfig   `mapstructure:"timer"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Log     LogConfig     `mapstructure:"log"`
}

// StorageConfig selects the record store backend.
type StorageConfig struct {
	// Backend is one of badger, sqlite or file.
	// Default: badger
	Backend string `mapstructure:"backend" validate:"oneof=badger sqlite file"`

	// Path overrides the backend's data location under the XDG data dir.
	Path string `mapstructure:"path"`
}

// TimerConfig holds the focus timer interval lengths in minutes.
type TimerConfig struct {
	// Default: 25
	Focus int `mapstructure:"focus" validate:"gte=1,lte=240"`

	// Default: 5
	Break int `mapstructure:"break" validate:"gte=1,lte=240"`
}

// LLMConfig configures the AI coach.
type LLMConfig struct {
	// Default: gemini
	Provider string `mapstructure:"provider" validate:"oneof=gemini openai ollama anthropic"`

	// Model overrides the provider's default model.
	Model string `mapstructure:"model"`

	// APIKey also falls back to GEMINI_API_KEY and API_KEY.
	APIKey string `mapstructure:"apiKey"`

	// BaseURL overrides the provider endpoint.
	BaseURL string `mapstructure:"baseURL" validate:"omitempty,url"`

	// Timeout bounds each coach request. Zero means no limit.
	// Default: 30s
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	// Default: warn
	Level string `mapstructure:"level" validate:"oneof=debug info warn warning error"`

	// JSON switches the log handler to JSON lines.
	JSON bool `mapstructure:"json"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: "badger",
		},
		Timer: TimerConfig{
			Focus: 25,
			Break: 5,
		},
		LLM: LLMConfig{
			Provider: "gemini",
			Timeout:  30 * time.Second,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Options controls where configuration is read from.
type Options struct {
	// File is an explicit config file. It must exist when set.
	File string
	// EnvFile is the dotenv file to load. Empty means ".env" in the working directory.
	EnvFile string
	// SkipEnvFile disables dotenv loading.
	SkipEnvFile bool
}

// DefaultPath returns the config file location following the XDG spec.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, configName+".yaml")
}

var validate = newValidator()

// newValidator reports field names by their config keys.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("mapstructure")
	})
	return v
}

// Load resolves the configuration. A missing default config file is not an
// error; a missing explicit one is.
func Load(opts Options) (*Config, error) {
	if !opts.SkipEnvFile {
		loadEnvFile(opts.EnvFile)
	}

	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("llm.apiKey", "BOOST_LLM_APIKEY", "GEMINI_API_KEY", "API_KEY"); err != nil {
		return nil, err
	}

	path := opts.File
	if path == "" {
		if _, err := os.Stat(DefaultPath()); err == nil {
			path = DefaultPath()
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewUserErrorWithField("config", path,
				fmt.Sprintf("cannot read config file: %v", err),
				"Check the path and YAML syntax, or run 'boost config init'.")
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.NewSystemErrorWithOp("load config", "cannot decode configuration", err)
	}
	cfg.LLM.Provider = strings.ToLower(cfg.LLM.Provider)
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadEnvFile loads a dotenv file. Variables already set in the
// environment win, and a missing file is ignored.
func loadEnvFile(path string) {
	if path == "" {
		path = ".env"
	}
	err := godotenv.Load(path)
	if err != nil && !stderrors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: cannot load %s: %v\n", path, err)
	}
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("timer.focus", d.Timer.Focus)
	v.SetDefault("timer.break", d.Timer.Break)
	v.SetDefault("llm.provider", d.LLM.Provider)
	v.SetDefault("llm.model", d.LLM.Model)
	v.SetDefault("llm.apiKey", d.LLM.APIKey)
	v.SetDefault("llm.baseURL", d.LLM.BaseURL)
	v.SetDefault("llm.timeout", d.LLM.Timeout)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.json", d.Log.JSON)
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return errors.NewSystemError("invalid configuration", err)
	}
	e := verrs[0]
	key := configKey(e.Namespace())
	return errors.NewUserErrorWithField(key, fmt.Sprint(e.Value()),
		fmt.Sprintf("invalid configuration value for %s", key),
		suggestionFor(key, e))
}

// configKey strips the root type from a namespace such as
// "Config.llm.provider".
func configKey(ns string) string {
	if _, key, ok := strings.Cut(ns, "."); ok {
		return key
	}
	return ns
}

func suggestionFor(key string, e validator.FieldError) string {
	switch {
	case e.Tag() == "oneof":
		return "Use one of: " + strings.ReplaceAll(e.Param(), " ", ", ")
	case strings.HasPrefix(key, "timer."):
		return "Timer lengths must be between 1 and 240 minutes."
	case e.Tag() == "url":
		return "Use a full URL such as http://localhost:11434."
	}
	return ""
}

// Map returns the configuration as nested maps keyed like the YAML file.
func (c *Config) Map() map[string]any {
	return map[string]any{
		"storage": map[string]any{
			"backend": c.Storage.Backend,
			"path":    c.Storage.Path,
		},
		"timer": map[string]any{
			"focus": c.Timer.Focus,
			"break": c.Timer.Break,
		},
		"llm": map[string]any{
			"provider": c.LLM.Provider,
			"model":    c.LLM.Model,
			"apiKey":   c.LLM.APIKey,
			"baseURL":  c.LLM.BaseURL,
			"timeout":  c.LLM.Timeout.String(),
		},
		"log": map[string]any{
			"level": c.Log.Level,
			"json":  c.Log.JSON,
		},
	}
}

// Write saves c as YAML to path, creating parent directories.
func (c *Config) Write(path string) error {
	data, err := yaml.Marshal(c.Map())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.NewSystemErrorWithOp("write config", "cannot create config directory", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.NewSystemErrorWithOp("write config", "cannot write config file", err)
	}
	return nil
}

// Keys lists the settable configuration keys.
var Keys = []string{
	"storage.backend", "storage.path",
	"timer.focus", "timer.break",
	"llm.provider", "llm.model", "llm.apiKey", "llm.baseURL", "llm.timeout",
	"log.level", "log.json",
}

// CanonicalKey matches key case-insensitively against Keys.
func CanonicalKey(key string) (string, bool) {
	for _, k := range Keys {
		if strings.EqualFold(k, strings.TrimSpace(key)) {
			return k, true
		}
	}
	return "", false
}

func unknownKey(key string) error {
	return errors.NewUserErrorWithField("key", key,
		"unknown configuration key",
		"Use one of: "+strings.Join(Keys, ", "))
}

// Get returns the value of a dotted key such as "timer.focus".
func (c *Config) Get(key string) (any, error) {
	canonical, ok := CanonicalKey(key)
	if !ok {
		return nil, unknownKey(key)
	}
	section, field, _ := strings.Cut(canonical, ".")
	return c.Map()[section].(map[string]any)[field], nil
}

// Set changes one key in the config file at path, validates the result and
// writes it back. A missing file starts from the defaults. Environment
// variables are not applied, so the file only holds what the user set.
func Set(path, key, value string) (*Config, error) {
	canonical, ok := CanonicalKey(key)
	if !ok {
		return nil, unknownKey(key)
	}

	v := viper.New()
	setDefaults(v, Default())
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewUserErrorWithField("config", path,
				fmt.Sprintf("cannot read config file: %v", err),
				"Fix the YAML syntax or recreate it with 'boost config init --force'.")
		}
	}
	v.Set(canonical, value)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.NewUserErrorWithField(canonical, value,
			fmt.Sprintf("invalid configuration value for %s", canonical), "")
	}
	cfg.LLM.Provider = strings.ToLower(cfg.LLM.Provider)
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Write(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

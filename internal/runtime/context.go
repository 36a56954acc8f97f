// Package runtime wires configuration, storage and output for one Boost
// command invocation.
package runtime

import (
	"context"
	"os"
	"strings"

	"github.com/manav03panchal/boost/internal/coach"
	"github.com/manav03panchal/boost/internal/config"
	"github.com/manav03panchal/boost/internal/logging"
	"github.com/manav03panchal/boost/internal/output"
	"github.com/manav03panchal/boost/internal/storage"
	"github.com/manav03panchal/boost/internal/timer"
	"github.com/manav03panchal/boost/internal/workspace"
)

// DataEnv overrides the data path. The value ":memory:" selects an
// in-memory store.
const DataEnv = "BOOST_DATA"

// Context holds the application runtime context.
type Context struct {
	Config    *config.Config
	Store     *storage.Store
	Workspace *workspace.Workspace
	Formatter *output.Formatter

	// Debug mode
	Debug bool

	coach coach.Coach
}

// Options configures the runtime context.
type Options struct {
	// Config is used as-is when set; otherwise ConfigFile is loaded.
	Config     *config.Config
	ConfigFile string

	Backend  string
	DataPath string
	InMemory bool

	Format    output.Format
	ColorMode output.ColorMode
	Debug     bool

	// Coach replaces the configured AI coach.
	Coach coach.Coach
	// WorkspaceOptions are passed to workspace.Open.
	WorkspaceOptions []workspace.Option
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		Format:    output.FormatCLI,
		ColorMode: output.ColorAuto,
	}
}

// New creates a new runtime context.
func New(opts Options) (*Context, error) {
	cfg := opts.Config
	if cfg == nil {
		loaded, err := config.Load(config.Options{File: opts.ConfigFile})
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	initLogging(cfg, opts.Debug)

	if opts.Backend != "" {
		cfg.Storage.Backend = strings.ToLower(opts.Backend)
	}
	if opts.DataPath != "" {
		cfg.Storage.Path = opts.DataPath
	}

	// Check for environment variable override
	if envPath := os.Getenv(DataEnv); envPath != "" {
		if envPath == ":memory:" {
			opts.InMemory = true
		} else {
			cfg.Storage.Path = envPath
		}
	}

	kind, err := storage.ParseKind(cfg.Storage.Backend)
	if err != nil {
		return nil, err
	}
	path := cfg.Storage.Path
	if path == "" && !opts.InMemory {
		path = storage.DefaultPath(kind)
	}

	backend, err := storage.OpenBackend(storage.Options{
		Kind:     kind,
		Path:     path,
		InMemory: opts.InMemory,
	})
	if err != nil {
		return nil, err
	}
	logging.DebugLog("storage opened", logging.KeyBackend, backend.Name(), logging.KeyPath, path)

	store := storage.NewStore(backend)
	ws, err := workspace.Open(store, opts.WorkspaceOptions...)
	if err != nil {
		store.Close()
		return nil, err
	}

	formatter := output.NewFormatter()
	formatter.Format = opts.Format
	formatter.ColorMode = opts.ColorMode

	return &Context{
		Config:    cfg,
		Store:     store,
		Workspace: ws,
		Formatter: formatter,
		Debug:     opts.Debug,
		coach:     opts.Coach,
	}, nil
}

func initLogging(cfg *config.Config, debug bool) {
	if debug {
		logging.InitDebug()
		return
	}
	lc := logging.DefaultConfig()
	if level, err := logging.ParseLevel(cfg.Log.Level); err == nil {
		lc.Level = level
	}
	lc.JSON = cfg.Log.JSON
	logging.Init(lc)
}

// Close closes the runtime context.
func (c *Context) Close() error {
	if cl, ok := c.coach.(*coach.Client); ok {
		cl.Close()
	}
	if c.Store != nil {
		return c.Store.Close()
	}
	return nil
}

// Coach returns the AI coach, creating it from the configuration on first use.
func (c *Context) Coach(ctx context.Context) coach.Coach {
	if c.coach != nil {
		return c.coach
	}

	provider, err := coach.ValidateProvider(c.Config.LLM.Provider)
	if err != nil {
		logging.Warn("invalid coach provider", logging.KeyProvider, c.Config.LLM.Provider, logging.KeyError, err)
		provider = coach.DefaultProvider
	}
	c.coach = coach.New(ctx, coach.Config{
		Provider: provider,
		Model:    c.Config.LLM.Model,
		APIKey:   c.Config.LLM.APIKey,
		BaseURL:  c.Config.LLM.BaseURL,
		Timeout:  c.Config.LLM.Timeout,
	})
	return c.coach
}

// NewTimer builds a focus timer using the configured interval lengths.
func (c *Context) NewTimer(policy timer.ExpiryPolicy) *timer.Engine {
	return timer.NewEngine(timer.Config{
		FocusMinutes: c.Config.Timer.Focus,
		BreakMinutes: c.Config.Timer.Break,
		Policy:       policy,
	})
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}

// JSONFormatter returns a JSON formatter.
func (c *Context) JSONFormatter() *output.JSONFormatter {
	return output.NewJSONFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.Format == output.FormatJSON
}

// IsStructured returns true for JSON and YAML output.
func (c *Context) IsStructured() bool {
	return c.Formatter.IsStructured()
}

// IsCLI returns true if output format is CLI.
func (c *Context) IsCLI() bool {
	return c.Formatter.Format == output.FormatCLI
}

// Debugf prints debug output if debug mode is enabled.
func (c *Context) Debugf(format string, args ...any) {
	if c.Debug {
		c.Formatter.Printf("[DEBUG] "+format+"\n", args...)
	}
}

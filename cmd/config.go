package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/boost/internal/config"
	"github.com/manav03panchal/boost/internal/errors"
	"github.com/manav03panchal/boost/internal/logging"
	"github.com/manav03panchal/boost/internal/output"
)

// configCmd represents the config command.
var configCmd = &cobra.Command{
	Use:     "config",
	Aliases: []string{"cfg", "settings"},
	Short:   "Manage application configuration",
	Long: `View and modify configuration. Settings are read from the config file,
a .env file in the working directory and BOOST_* environment variables, in
increasing precedence.

Keys:
  storage.backend   badger, sqlite or file
  storage.path      Data location (default under ~/.local/share/boost)
  timer.focus       Focus interval in minutes
  timer.break       Break interval in minutes
  llm.provider      gemini, openai, ollama or anthropic
  llm.model         Model name (default depends on provider)
  llm.apiKey        Provider API key
  llm.baseURL       Provider endpoint override
  llm.timeout       Coach request timeout, e.g. 30s
  log.level         debug, info, warn or error
  log.json          Log as JSON lines

Examples:
  boost config show
  boost config get timer.focus
  boost config set timer.focus 50
  boost config init`,
}

// Config flags.
var (
	configInitFlagForce bool
)

// configShowCmd prints the effective configuration.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

// configGetCmd gets one value.
var configGetCmd = &cobra.Command{
	Use:       "get KEY",
	Short:     "Get a configuration value",
	Args:      cobra.ExactArgs(1),
	ValidArgs: config.Keys,
	RunE:      runConfigGet,
}

// configSetCmd sets one value in the config file.
var configSetCmd = &cobra.Command{
	Use:         "set KEY VALUE",
	Short:       "Set a configuration value in the config file",
	Args:        cobra.ExactArgs(2),
	Annotations: map[string]string{annotationNoRuntime: "true"},
	RunE:        runConfigSet,
}

// configInitCmd writes a config file with the defaults.
var configInitCmd = &cobra.Command{
	Use:         "init",
	Short:       "Write a config file with the default settings",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNoRuntime: "true"},
	RunE:        runConfigInit,
}

// configPathCmd prints the config file location.
var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Print the config file location",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNoRuntime: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(configPath())
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitFlagForce, "force", false, "Overwrite an existing config file")
	configSetCmd.ValidArgsFunction = func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return config.Keys, cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// configPath returns --config when given, otherwise the XDG default.
func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.DefaultPath()
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	masked := logging.MaskMap(ctx.Config.Map())

	if ctx.IsStructured() {
		return ctx.Formatter.Structured(masked)
	}

	cli := ctx.CLIFormatter()
	cli.Title("Configuration")
	sections := make([]string, 0, len(masked))
	for s := range masked {
		sections = append(sections, s)
	}
	sort.Strings(sections)

	var rows []output.TableRow
	for _, s := range sections {
		fields, _ := masked[s].(map[string]any)
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			rows = append(rows, output.TableRow{Columns: []string{s + "." + k, fmt.Sprint(fields[k])}})
		}
	}
	cli.PrintTable([]string{"KEY", "VALUE"}, rows)
	cli.Println()
	cli.Muted("File: " + configPath())
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	value, err := ctx.Config.Get(args[0])
	if err != nil {
		return err
	}
	key, _ := config.CanonicalKey(args[0])
	if logging.IsSensitiveField(key) {
		value = logging.MaskValue(fmt.Sprint(value))
	}

	if ctx.IsStructured() {
		return ctx.Formatter.Structured(map[string]any{"key": key, "value": value})
	}
	ctx.Formatter.Println(value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path := configPath()
	cfg, err := config.Set(path, args[0], args[1])
	if err != nil {
		return err
	}
	key, _ := config.CanonicalKey(args[0])
	value, _ := cfg.Get(key)
	if logging.IsSensitiveField(key) {
		value = logging.MaskValue(fmt.Sprint(value))
	}
	cmd.Printf("Set %s = %v in %s\n", key, value, path)
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath()
	if _, err := os.Stat(path); err == nil && !configInitFlagForce {
		return errors.NewUserErrorWithField("config", path,
			"config file already exists", "Use --force to overwrite it.")
	}
	if err := config.Default().Write(path); err != nil {
		return err
	}
	cmd.Printf("Wrote default configuration to %s\n", path)
	return nil
}

// Package cmd provides the CLI commands for Boost.
//
// This software is a derivative work based on Zeit (https://github.com/mrusme/zeit)
// Original work copyright (c) マリウス (mrusme)
// Modifications copyright (c) Manav Panchal
//
// Licensed under the SEGV License, Version 1.0
// See LICENSE file for full license text.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/boost/internal/errors"
	"github.com/manav03panchal/boost/internal/logging"
	"github.com/manav03panchal/boost/internal/output"
	"github.com/manav03panchal/boost/internal/runtime"
	"github.com/manav03panchal/boost/internal/workspace"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagFormat  string
	flagColor   string
	flagDebug   bool
	flagConfig  string
	flagBackend string
	flagData    string
)

// Command annotations read by the root pre-run hook.
const (
	// annotationNoRuntime skips opening config and storage.
	annotationNoRuntime = "boost/no-runtime"
	// annotationNoSeed opens the workspace without installing default records.
	annotationNoSeed = "boost/no-seed"
)

// ctx is the shared runtime context.
var ctx *runtime.Context

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "boost",
	Short: "A command-line personal productivity dashboard",
	Long: `Boost keeps your tasks, work tickets, habits and focus sessions in one
place, and rewards steady progress with XP, levels and badges.

Examples:
  boost task add "Write weekly report" -d 45m -p high
  boost ticket move PROJ-101 review
  boost habit toggle "Morning Meditation"
  boost focus --focus 50m --break 10m
  boost stats`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for completion and help commands (but allow __complete for dynamic completions)
		if cmd.Context() != nil {
			cmd.SetContext(logging.WithCommand(cmd.Context(), cmd.CommandPath()))
		}
		if cmd.Name() == "completion" || cmd.Name() == "help" || cmd.Annotations[annotationNoRuntime] != "" {
			return nil
		}

		format, err := output.ParseFormat(flagFormat)
		if err != nil {
			return errors.NewUserErrorWithField("format", flagFormat, err.Error(), "Use --format cli, json, plain or yaml.")
		}
		colorMode, err := output.ParseColorMode(flagColor)
		if err != nil {
			return errors.NewUserErrorWithField("color", flagColor, err.Error(), "Use --color auto, always or never.")
		}

		// Create runtime context
		opts := runtime.DefaultOptions()
		opts.ConfigFile = flagConfig
		opts.Backend = flagBackend
		opts.DataPath = flagData
		opts.Format = format
		opts.ColorMode = colorMode
		opts.Debug = flagDebug
		if cmd.Annotations[annotationNoSeed] != "" {
			opts.WorkspaceOptions = append(opts.WorkspaceOptions, workspace.WithoutSeed())
		}

		ctx, err = runtime.New(opts)
		if err != nil {
			return err
		}
		ctx.Formatter.Writer = cmd.OutOrStdout()
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if ctx != nil {
			err := ctx.Close()
			ctx = nil
			return err
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: show today's overview
		return runToday(cmd, args)
	},
}

// runToday shows today's tasks and habits.
func runToday(cmd *cobra.Command, args []string) error {
	ws := ctx.Workspace
	today := ws.Today()
	tasks := ws.TasksOn(today)

	if ctx.IsStructured() {
		return ctx.Formatter.Structured(map[string]any{
			"date":   today,
			"tasks":  output.NewTasksResponse(tasks),
			"habits": output.NewHabitsResponse(ws.Habits()),
		})
	}

	cli := ctx.CLIFormatter()
	cli.Title(fmt.Sprintf("Today · %s", today))
	cli.PrintTasks(tasks)
	cli.Println()
	cli.PrintHabits(ws.Habits(), today)
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	err := rootCmd.ExecuteContext(logging.NewRunContext())
	if err != nil {
		printError(err)
	}
	// Post-run hooks are skipped when a command fails.
	if ctx != nil {
		_ = ctx.Close()
		ctx = nil
	}
	return err
}

// printError reports err in the active output format.
func printError(err error) {
	if ctx != nil && ctx.IsStructured() {
		_ = ctx.JSONFormatter().PrintError(err.Error(), errors.GetSuggestion(err))
		return
	}
	if flagDebug {
		fmt.Fprintln(os.Stderr, errors.FormatDebugError(err))
		return
	}
	fmt.Fprintln(os.Stderr, "Error: "+errors.FormatUserError(err))
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "cli",
		"Output format: cli, json, plain, yaml")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto",
		"Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "",
		"Config file (default ~/.config/boost/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "",
		"Storage backend: badger, sqlite, file")
	rootCmd.PersistentFlags().StringVar(&flagData, "data", "",
		"Data path for the storage backend")

	rootCmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{"cli", "json", "plain", "yaml"}, cobra.ShellCompDirectiveNoFileComp))
	rootCmd.RegisterFlagCompletionFunc("backend", cobra.FixedCompletions(
		[]string{"badger", "sqlite", "file"}, cobra.ShellCompDirectiveNoFileComp))

	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print version information",
	Annotations: map[string]string{annotationNoRuntime: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("boost %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
	},
}

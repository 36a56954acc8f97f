package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/boost/internal/logging"
	"github.com/manav03panchal/boost/internal/storage"
	"github.com/manav03panchal/boost/internal/tui"
)

// Dashboard flags.
var (
	dashboardFlagWatch    bool
	dashboardFlagInterval time.Duration
)

// dashboardCmd represents the dashboard command.
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash", "d", "tui"},
	Short:   "Open the interactive TUI dashboard",
	Long: `Open an interactive terminal dashboard.

The dashboard shows:
  - Today's tasks
  - Habits with the last seven days and streaks
  - The work board
  - Focus hours for the last seven days
  - Level, XP and badges

With --watch the dashboard picks up changes made by other boost commands:
the file backend is watched for changes, other backends are reloaded on
every refresh interval.

Keyboard Controls:
  tab     - Next panel
  ↑/↓     - Move the cursor
  space   - Toggle the task or habit, or advance the ticket
  m       - Move the ticket to the next column
  r       - Refresh data
  q       - Quit dashboard

Examples:
  boost dashboard
  boost dash --watch
  boost --backend file dash --watch`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	dashboardCmd.Flags().BoolVarP(&dashboardFlagWatch, "watch", "w", false, "Reload when data changes outside the dashboard")
	dashboardCmd.Flags().DurationVar(&dashboardFlagInterval, "interval", time.Second, "Refresh interval")
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	config := tui.DashboardConfig{
		Workspace:       ctx.Workspace,
		RefreshInterval: dashboardFlagInterval,
	}

	if dashboardFlagWatch {
		if fs, ok := ctx.Store.Backend().(*storage.FileStore); ok {
			watcher, err := tui.NewWatcher(fs.Dir())
			if err != nil {
				return err
			}
			defer watcher.Close()
			config.Watcher = watcher
		} else {
			logging.FromContext(cmd.Context()).Debug("backend cannot be watched, polling",
				logging.KeyBackend, ctx.Store.Backend().Name())
			config.Poll = true
		}
	}

	return tui.Run(config)
}

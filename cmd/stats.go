package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/boost/internal/analytics"
	"github.com/manav03panchal/boost/internal/output"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:     "stats",
	Aliases: []string{"stat", "xp"},
	Short:   "Show XP, level, weekly focus and badges",
	Long: `Show your progress: XP and level, focus hours for the last seven days,
tickets per board column, habit streaks and badges.

XP is earned for every focus minute, completed task and ticket, and habit
check-in. Every 1000 XP is a level.

Examples:
  boost stats
  boost stats --format json
  boost stats leaderboard`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

// leaderboardCmd shows the ranked board.
var leaderboardCmd = &cobra.Command{
	Use:     "leaderboard",
	Aliases: []string{"lb", "rank"},
	Short:   "Show where your XP ranks",
	Args:    cobra.NoArgs,
	RunE:    runLeaderboard,
}

func init() {
	statsCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	stats := output.NewStatsResponse(ctx.Workspace.Activity(), ctx.Workspace.Now())

	if ctx.IsStructured() {
		return ctx.Formatter.Structured(stats)
	}

	ctx.CLIFormatter().PrintStats(stats)
	return nil
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	board := analytics.Leaderboard(ctx.Workspace.Profile().Name, ctx.Workspace.Activity().XP())

	if ctx.IsStructured() {
		return ctx.Formatter.Structured(board)
	}

	cli := ctx.CLIFormatter()
	cli.Title("Leaderboard")
	cli.PrintLeaderboard(board)
	return nil
}

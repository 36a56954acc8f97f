package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/boost/internal/workspace"
)

// habitCmd represents the habit command.
var habitCmd = &cobra.Command{
	Use:     "habit",
	Aliases: []string{"habits", "h"},
	Short:   "Track daily habits and streaks",
	Long: `Mark habits done each day to build a streak. A streak counts consecutive
completed days ending today, or yesterday if today is not done yet.

Habits can be referred to by title or id.

Examples:
  boost habit
  boost habit add "Read 20 pages" --goal "Finish a book a month"
  boost habit toggle "Read 20 pages"
  boost habit toggle 9c41d2e0 --date yesterday`,
	RunE: runHabitList,
}

// Habit subcommand flags.
var (
	habitAddFlagGoal    string
	habitAddFlagColor   string
	habitToggleFlagDate string
)

var habitAddCmd = &cobra.Command{
	Use:   "add TITLE...",
	Short: "Start tracking a habit",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runHabitAdd,
}

var habitListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List habits with the last seven days",
	Args:    cobra.NoArgs,
	RunE:    runHabitList,
}

var habitToggleCmd = &cobra.Command{
	Use:     "toggle REF",
	Aliases: []string{"done", "check"},
	Short:   "Mark a habit done or not done for a day",
	Args:    cobra.ExactArgs(1),
	RunE:    runHabitToggle,
}

var habitRmCmd = &cobra.Command{
	Use:     "rm REF",
	Aliases: []string{"delete"},
	Short:   "Stop tracking a habit",
	Args:    cobra.ExactArgs(1),
	RunE:    runHabitRm,
}

func init() {
	habitAddCmd.Flags().StringVarP(&habitAddFlagGoal, "goal", "g", "", "What the habit is for")
	habitAddCmd.Flags().StringVarP(&habitAddFlagColor, "color", "c", "", "Color class, e.g. bg-emerald-500 (default: next in palette)")
	habitAddCmd.RegisterFlagCompletionFunc("color", cobra.FixedCompletions(
		workspace.HabitColors, cobra.ShellCompDirectiveNoFileComp))

	habitToggleCmd.Flags().StringVar(&habitToggleFlagDate, "date", "", "Day to toggle (default today)")

	habitCmd.AddCommand(habitAddCmd)
	habitCmd.AddCommand(habitListCmd)
	habitCmd.AddCommand(habitToggleCmd)
	habitCmd.AddCommand(habitRmCmd)
	rootCmd.AddCommand(habitCmd)
}

func runHabitAdd(cmd *cobra.Command, args []string) error {
	habit, err := ctx.Workspace.AddHabit(joinArgs(args), habitAddFlagGoal, habitAddFlagColor)
	if err != nil {
		return err
	}

	if ctx.IsStructured() {
		return ctx.JSONFormatter().PrintAction("created", "habit added", habit)
	}

	ctx.CLIFormatter().Success("Tracking " + habit.Title)
	return nil
}

func runHabitList(cmd *cobra.Command, args []string) error {
	habits := ctx.Workspace.Habits()

	if ctx.IsStructured() {
		return ctx.JSONFormatter().PrintHabits(habits)
	}

	cli := ctx.CLIFormatter()
	cli.Title("Habits")
	cli.PrintHabits(habits, ctx.Workspace.Today())
	return nil
}

func runHabitToggle(cmd *cobra.Command, args []string) error {
	day, err := parseDayFlag(habitToggleFlagDate)
	if err != nil {
		return err
	}

	habit, err := ctx.Workspace.ToggleHabit(args[0], day)
	if err != nil {
		return err
	}

	if ctx.IsStructured() {
		return ctx.JSONFormatter().PrintAction("updated", "habit toggled", habit)
	}

	cli := ctx.CLIFormatter()
	if habit.Done(day) {
		cli.Success(fmt.Sprintf("%s done for %s", habit.Title, day))
	} else {
		cli.Muted(fmt.Sprintf("%s unmarked for %s", habit.Title, day))
	}
	cli.Printf("  %d day streak\n", habit.Streak)
	return nil
}

func runHabitRm(cmd *cobra.Command, args []string) error {
	habit, err := ctx.Workspace.DeleteHabit(args[0])
	if err != nil {
		return err
	}

	if ctx.IsStructured() {
		return ctx.JSONFormatter().PrintAction("deleted", "habit deleted", habit)
	}

	ctx.CLIFormatter().Success("Stopped tracking " + habit.Title)
	return nil
}

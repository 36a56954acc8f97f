package cmd

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/boost/internal/errors"
	"github.com/manav03panchal/boost/internal/model"
	"github.com/manav03panchal/boost/internal/parser"
	"github.com/manav03panchal/boost/internal/validate"
	"github.com/manav03panchal/boost/internal/workspace"
)

// taskCmd represents the task command.
var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"tasks", "t"},
	Short:   "Manage daily tasks",
	Long: `Plan the day with small tasks. Each task has a time estimate and a priority
and belongs to one calendar day.

Examples:
  boost task
  boost task add "Write weekly report" -d 45m -p high
  boost task add "Book flights" --date tomorrow
  boost task done 3f2a
  boost task list --filter active
  boost task clear`,
	RunE: runTaskList,
}

// Task subcommand flags.
var (
	taskAddFlagDuration string
	taskAddFlagPriority string
	taskAddFlagDate     string

	taskListFlagDate   string
	taskListFlagAll    bool
	taskListFlagFilter string

	taskSuggestFlagAdd bool
)

// taskAddCmd adds a task.
var taskAddCmd = &cobra.Command{
	Use:   "add TITLE...",
	Short: "Add a task",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskAdd,
}

// taskListCmd lists tasks for a day.
var taskListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Args:    cobra.NoArgs,
	RunE:    runTaskList,
}

// taskDoneCmd toggles task completion.
var taskDoneCmd = &cobra.Command{
	Use:     "done ID...",
	Aliases: []string{"toggle"},
	Short:   "Toggle a task between open and completed",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runTaskDone,
}

// taskRmCmd deletes tasks.
var taskRmCmd = &cobra.Command{
	Use:     "rm ID...",
	Aliases: []string{"delete"},
	Short:   "Delete tasks",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runTaskRm,
}

// taskClearCmd removes completed tasks.
var taskClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every completed task",
	Args:  cobra.NoArgs,
	RunE:  runTaskClear,
}

// taskSuggestCmd asks the coach for task ideas.
var taskSuggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Ask the coach for three task ideas",
	Args:  cobra.NoArgs,
	RunE:  runTaskSuggest,
}

func init() {
	taskAddCmd.Flags().StringVarP(&taskAddFlagDuration, "duration", "d", "", "Estimate, e.g. 25m or 1h30m (default 15m)")
	taskAddCmd.Flags().StringVarP(&taskAddFlagPriority, "priority", "p", "medium", "Priority: high, medium, low")
	taskAddCmd.Flags().StringVar(&taskAddFlagDate, "date", "", "Day for the task (default today)")

	taskListCmd.Flags().StringVar(&taskListFlagDate, "date", "", "Day to list (default today)")
	taskListCmd.Flags().BoolVarP(&taskListFlagAll, "all", "a", false, "List tasks on every day")
	taskListCmd.Flags().StringVar(&taskListFlagFilter, "filter", "all", "Filter: all, active, completed")

	taskSuggestCmd.Flags().BoolVar(&taskSuggestFlagAdd, "add", false, "Add the suggestions as tasks for today")

	taskAddCmd.RegisterFlagCompletionFunc("priority", cobra.FixedCompletions(
		[]string{"high", "medium", "low"}, cobra.ShellCompDirectiveNoFileComp))
	taskListCmd.RegisterFlagCompletionFunc("filter", cobra.FixedCompletions(
		[]string{"all", "active", "completed"}, cobra.ShellCompDirectiveNoFileComp))

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskRmCmd)
	taskCmd.AddCommand(taskClearCmd)
	taskCmd.AddCommand(taskSuggestCmd)
	rootCmd.AddCommand(taskCmd)
}

// parseDayFlag resolves a --date value against the workspace clock.
func parseDayFlag(value string) (model.DayKey, error) {
	day, err := parser.ParseDay(value, ctx.Workspace.Now())
	if err != nil {
		return "", inputError(err)
	}
	return day, nil
}

// inputError converts parser errors to user errors with examples.
func inputError(err error) error {
	var ie *parser.InputError
	if stderrors.As(err, &ie) {
		return ie.ToUserError()
	}
	return err
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	title := joinArgs(args)

	minutes := 0
	if taskAddFlagDuration != "" {
		m, err := parser.ParseMinutes(taskAddFlagDuration)
		if err != nil {
			return inputError(err)
		}
		minutes = m
	}

	priority, err := validate.Priority(taskAddFlagPriority)
	if err != nil {
		return err
	}

	day, err := parseDayFlag(taskAddFlagDate)
	if err != nil {
		return err
	}

	task, err := ctx.Workspace.AddTask(title, minutes, priority, day)
	if err != nil {
		return err
	}

	if ctx.IsStructured() {
		return ctx.JSONFormatter().PrintAction("created", "task added", task)
	}

	cli := ctx.CLIFormatter()
	cli.Success(fmt.Sprintf("Added %s (%d min, %s)", task.Title, task.Duration, task.Priority))
	cli.Muted("  id " + model.ShortID(task.ID))
	return nil
}

func runTaskList(cmd *cobra.Command, args []string) error {
	ws := ctx.Workspace

	var tasks []model.Task
	var heading string
	if taskListFlagAll {
		tasks = ws.Tasks()
		heading = "All tasks"
	} else {
		day, err := parseDayFlag(taskListFlagDate)
		if err != nil {
			return err
		}
		tasks = ws.TasksOn(day)
		heading = "Tasks · " + day.String()
	}

	filter := workspace.TaskFilter(taskListFlagFilter)
	switch filter {
	case workspace.FilterAll, workspace.FilterActive, workspace.FilterCompleted:
	default:
		return errors.NewUserErrorWithField("filter", taskListFlagFilter,
			"unknown task filter", "Use --filter all, active or completed.")
	}
	tasks = workspace.Filter(tasks, filter)

	if ctx.IsStructured() {
		return ctx.JSONFormatter().PrintTasks(tasks)
	}

	cli := ctx.CLIFormatter()
	cli.Title(heading)
	cli.PrintTasks(tasks)
	return nil
}

func runTaskDone(cmd *cobra.Command, args []string) error {
	var toggled []model.Task
	for _, ref := range args {
		task, err := ctx.Workspace.ToggleTask(ref)
		if err != nil {
			return err
		}
		toggled = append(toggled, task)
	}

	if ctx.IsStructured() {
		return ctx.JSONFormatter().PrintAction("updated", fmt.Sprintf("%d task(s) toggled", len(toggled)), toggled)
	}

	cli := ctx.CLIFormatter()
	for _, t := range toggled {
		if t.Completed {
			cli.Success("Done: " + t.Title)
		} else {
			cli.Muted("Reopened: " + t.Title)
		}
	}
	return nil
}

func runTaskRm(cmd *cobra.Command, args []string) error {
	var removed []model.Task
	for _, ref := range args {
		task, err := ctx.Workspace.DeleteTask(ref)
		if err != nil {
			return err
		}
		removed = append(removed, task)
	}

	if ctx.IsStructured() {
		return ctx.JSONFormatter().PrintAction("deleted", fmt.Sprintf("%d task(s) deleted", len(removed)), removed)
	}

	cli := ctx.CLIFormatter()
	for _, t := range removed {
		cli.Success("Deleted: " + t.Title)
	}
	return nil
}

func runTaskClear(cmd *cobra.Command, args []string) error {
	n, err := ctx.Workspace.ClearCompleted()
	if err != nil {
		return err
	}

	if ctx.IsStructured() {
		return ctx.JSONFormatter().PrintAction("deleted", fmt.Sprintf("%d completed task(s) cleared", n), map[string]int{"count": n})
	}

	cli := ctx.CLIFormatter()
	if n == 0 {
		cli.Muted("No completed tasks")
		return nil
	}
	cli.Success(fmt.Sprintf("Cleared %d completed task(s)", n))
	return nil
}

func runTaskSuggest(cmd *cobra.Command, args []string) error {
	suggestions := ctx.Coach(cmd.Context()).SuggestTasks(cmd.Context())

	var added []model.Task
	if taskSuggestFlagAdd {
		for _, title := range suggestions {
			task, err := ctx.Workspace.AddTask(title, 0, model.PriorityMedium, "")
			if err != nil {
				return err
			}
			added = append(added, task)
		}
	}

	if ctx.IsStructured() {
		if taskSuggestFlagAdd {
			return ctx.JSONFormatter().PrintAction("created", fmt.Sprintf("%d task(s) added", len(added)), added)
		}
		return ctx.JSONFormatter().PrintList(suggestions)
	}

	cli := ctx.CLIFormatter()
	cli.Title("Suggested tasks")
	cli.PrintList(suggestions)
	if len(added) > 0 {
		cli.Success(fmt.Sprintf("Added %d task(s) for today", len(added)))
	}
	return nil
}

// joinArgs joins positional words into a single title.
func joinArgs(args []string) string {
	return strings.Join(args, " ")
}

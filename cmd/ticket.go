package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/boost/internal/model"
	"github.com/manav03panchal/boost/internal/validate"
	"github.com/manav03panchal/boost/internal/workspace"
)

// ticketCmd represents the ticket command.
var ticketCmd = &cobra.Command{
	Use:     "ticket",
	Aliases: []string{"tickets", "board"},
	Short:   "Manage the work board",
	Long: `Track work tickets across the board columns: To Do, In Progress, Review
and Done. Tickets are referred to by their code (PROJ-101) or by id.

Examples:
  boost ticket
  boost ticket add "Fix login redirect" --priority high --points 3
  boost ticket move PROJ-101 in-progress
  boost ticket edit PROJ-101 --assignee MP --tag backend
  boost ticket subtask add PROJ-101 "Write regression test"
  boost ticket subtask toggle PROJ-101 1`,
	RunE: runTicketList,
}

// Ticket subcommand flags.
var (
	ticketFlagDescription string
	ticketFlagPriority    string
	ticketFlagTag         string
	ticketFlagAssignee    string
	ticketFlagPoints      int
	ticketFlagDate        string
	ticketFlagTitle       string

	ticketListFlagVerbose bool
	ticketListFlagStatus  string
	ticketListFlagDate    string
)

// ticketAddCmd adds a ticket.
var ticketAddCmd = &cobra.Command{
	Use:   "add TITLE...",
	Short: "Add a ticket to the To Do column",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTicketAdd,
}

// ticketListCmd shows the board.
var ticketListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show the board",
	Args:    cobra.NoArgs,
	RunE:    runTicketList,
}

// ticketShowCmd shows one ticket.
var ticketShowCmd = &cobra.Command{
	Use:   "show REF",
	Short: "Show a ticket in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runTicketShow,
}

// ticketMoveCmd moves a ticket to another column.
var ticketMoveCmd = &cobra.Command{
	Use:   "move REF STATUS",
	Short: "Move a ticket to todo, in-progress, review or done",
	Args:  cobra.ExactArgs(2),
	RunE:  runTicketMove,
}

// ticketEditCmd edits ticket fields.
var ticketEditCmd = &cobra.Command{
	Use:   "edit REF",
	Short: "Edit a ticket",
	Args:  cobra.ExactArgs(1),
	RunE:  runTicketEdit,
}

// ticketRmCmd deletes a ticket.
var ticketRmCmd = &cobra.Command{
	Use:     "rm REF",
	Aliases: []string{"delete"},
	Short:   "Delete a ticket",
	Args:    cobra.ExactArgs(1),
	RunE:    runTicketRm,
}

// ticketSubtaskCmd groups checklist commands.
var ticketSubtaskCmd = &cobra.Command{
	Use:     "subtask",
	Aliases: []string{"sub"},
	Short:   "Manage a ticket's checklist",
}

var ticketSubtaskAddCmd = &cobra.Command{
	Use:   "add REF TITLE...",
	Short: "Add a checklist item",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runSubtaskAdd,
}

var ticketSubtaskToggleCmd = &cobra.Command{
	Use:   "toggle REF ITEM",
	Short: "Toggle a checklist item by position or id",
	Args:  cobra.ExactArgs(2),
	RunE:  runSubtaskToggle,
}

func init() {
	for _, c := range []*cobra.Command{ticketAddCmd, ticketEditCmd} {
		c.Flags().StringVar(&ticketFlagDescription, "desc", "", "Description")
		c.Flags().StringVarP(&ticketFlagPriority, "priority", "p", "medium", "Priority: high, medium, low")
		c.Flags().StringVar(&ticketFlagTag, "tag", "", "Tag, e.g. backend")
		c.Flags().StringVar(&ticketFlagAssignee, "assignee", "", "Assignee initials")
		c.Flags().IntVar(&ticketFlagPoints, "points", 0, "Story points: 1, 2, 3, 5, 8, 13, 21")
		c.Flags().StringVar(&ticketFlagDate, "date", "", "Ticket date (default today)")
		c.RegisterFlagCompletionFunc("priority", cobra.FixedCompletions(
			[]string{"high", "medium", "low"}, cobra.ShellCompDirectiveNoFileComp))
	}
	ticketEditCmd.Flags().StringVar(&ticketFlagTitle, "title", "", "New title")

	ticketListCmd.Flags().BoolVarP(&ticketListFlagVerbose, "verbose", "v", false, "Show subtasks")
	ticketListCmd.Flags().StringVar(&ticketListFlagStatus, "status", "", "Only show one column")
	ticketListCmd.Flags().StringVar(&ticketListFlagDate, "date", "", "Only show tickets dated this day")

	ticketMoveCmd.ValidArgsFunction = func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) != 1 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		statuses := make([]string, len(model.Statuses))
		for i, s := range model.Statuses {
			statuses[i] = string(s)
		}
		return statuses, cobra.ShellCompDirectiveNoFileComp
	}

	ticketSubtaskCmd.AddCommand(ticketSubtaskAddCmd)
	ticketSubtaskCmd.AddCommand(ticketSubtaskToggleCmd)

	ticketCmd.AddCommand(ticketAddCmd)
	ticketCmd.AddCommand(ticketListCmd)
	ticketCmd.AddCommand(ticketShowCmd)
	ticketCmd.AddCommand(ticketMoveCmd)
	ticketCmd.AddCommand(ticketEditCmd)
	ticketCmd.AddCommand(ticketRmCmd)
	ticketCmd.AddCommand(ticketSubtaskCmd)
	rootCmd.AddCommand(ticketCmd)
}

func runTicketAdd(cmd *cobra.Command, args []string) error {
	priority, err := validate.Priority(ticketFlagPriority)
	if err != nil {
		return err
	}
	if err := validate.StoryPoints(ticketFlagPoints); err != nil {
		return err
	}
	day, err := parseDayFlag(ticketFlagDate)
	if err != nil {
		return err
	}

	ticket, err := ctx.Workspace.AddTicket(workspace.TicketInput{
		Title:       joinArgs(args),
		Description: ticketFlagDescription,
		Priority:    priority,
		Tag:         ticketFlagTag,
		Assignee:    ticketFlagAssignee,
		StoryPoints: ticketFlagPoints,
		Date:        day,
	})
	if err != nil {
		return err
	}

	if ctx.IsStructured() {
		return ctx.JSONFormatter().PrintAction("created", "ticket added", ticket)
	}

	cli := ctx.CLIFormatter()
	cli.Success(fmt.Sprintf("Added %s %s", ticket.TicketID, ticket.Title))
	return nil
}

func runTicketList(cmd *cobra.Command, args []string) error {
	tickets := ctx.Workspace.Tickets()
	if ticketListFlagDate != "" {
		day, err := parseDayFlag(ticketListFlagDate)
		if err != nil {
			return err
		}
		tickets = ctx.Workspace.TicketsOn(day)
	}
	if ticketListFlagStatus != "" {
		status, err := validate.Status(ticketListFlagStatus)
		if err != nil {
			return err
		}
		tickets = workspace.Column(tickets, status)
	}

	if ctx.IsStructured() {
		return ctx.JSONFormatter().PrintBoard(tickets)
	}

	cli := ctx.CLIFormatter()
	cli.Title("Work Board")
	cli.PrintBoard(tickets, ticketListFlagVerbose)
	return nil
}

func runTicketShow(cmd *cobra.Command, args []string) error {
	i, err := ctx.Workspace.FindTicket(args[0])
	if err != nil {
		return err
	}
	ticket := ctx.Workspace.Tickets()[i]

	if ctx.IsStructured() {
		return ctx.Formatter.Structured(ticket)
	}
	ctx.CLIFormatter().PrintTicket(ticket)
	return nil
}

func runTicketMove(cmd *cobra.Command, args []string) error {
	status, err := validate.Status(args[1])
	if err != nil {
		return err
	}

	ticket, err := ctx.Workspace.MoveTicket(args[0], status)
	if err != nil {
		return err
	}

	if ctx.IsStructured() {
		return ctx.JSONFormatter().PrintAction("updated", "ticket moved", ticket)
	}

	ctx.CLIFormatter().Success(fmt.Sprintf("%s → %s", ticket.TicketID, ticket.Status.Label()))
	return nil
}

func runTicketEdit(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	var priority model.Priority
	if flags.Changed("priority") {
		p, err := validate.Priority(ticketFlagPriority)
		if err != nil {
			return err
		}
		priority = p
	}
	if flags.Changed("points") {
		if err := validate.StoryPoints(ticketFlagPoints); err != nil {
			return err
		}
	}
	var day model.DayKey
	if flags.Changed("date") {
		d, err := parseDayFlag(ticketFlagDate)
		if err != nil {
			return err
		}
		day = d
	}
	var title string
	if flags.Changed("title") {
		t, err := workspace.FormatTitle(ticketFlagTitle)
		if err != nil {
			return err
		}
		title = t
	}

	ticket, err := ctx.Workspace.UpdateTicket(args[0], func(t *model.WorkTicket) {
		if title != "" {
			t.Title = title
		}
		if flags.Changed("desc") {
			t.Description = validate.SanitizeNote(ticketFlagDescription)
		}
		if priority != "" {
			t.Priority = priority
		}
		if flags.Changed("tag") {
			t.Tag = strings.TrimSpace(ticketFlagTag)
		}
		if flags.Changed("assignee") {
			t.Assignee = validate.SanitizeAssignee(ticketFlagAssignee)
		}
		if flags.Changed("points") {
			t.StoryPoints = ticketFlagPoints
		}
		if day != "" {
			t.Date = day
		}
	})
	if err != nil {
		return err
	}

	if ctx.IsStructured() {
		return ctx.JSONFormatter().PrintAction("updated", "ticket updated", ticket)
	}

	ctx.CLIFormatter().Success("Updated " + ticket.TicketID)
	return nil
}

func runTicketRm(cmd *cobra.Command, args []string) error {
	ticket, err := ctx.Workspace.DeleteTicket(args[0])
	if err != nil {
		return err
	}

	if ctx.IsStructured() {
		return ctx.JSONFormatter().PrintAction("deleted", "ticket deleted", ticket)
	}

	ctx.CLIFormatter().Success(fmt.Sprintf("Deleted %s %s", ticket.TicketID, ticket.Title))
	return nil
}

func runSubtaskAdd(cmd *cobra.Command, args []string) error {
	sub, err := ctx.Workspace.AddSubtask(args[0], joinArgs(args[1:]))
	if err != nil {
		return err
	}

	if ctx.IsStructured() {
		return ctx.JSONFormatter().PrintAction("created", "subtask added", sub)
	}

	ctx.CLIFormatter().Success("Added subtask: " + sub.Title)
	return nil
}

func runSubtaskToggle(cmd *cobra.Command, args []string) error {
	sub, err := ctx.Workspace.ToggleSubtask(args[0], args[1])
	if err != nil {
		return err
	}

	if ctx.IsStructured() {
		return ctx.JSONFormatter().PrintAction("updated", "subtask toggled", sub)
	}

	cli := ctx.CLIFormatter()
	if sub.Completed {
		cli.Success("Checked: " + sub.Title)
	} else {
		cli.Muted("Unchecked: " + sub.Title)
	}
	return nil
}

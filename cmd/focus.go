package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/manav03panchal/boost/internal/logging"
	"github.com/manav03panchal/boost/internal/model"
	"github.com/manav03panchal/boost/internal/parser"
	"github.com/manav03panchal/boost/internal/timer"
	"github.com/manav03panchal/boost/internal/tui"
)

// Focus command flags.
var (
	focusFlagFocus string
	focusFlagBreak string
	focusFlagGoal  string
	focusFlagCycle bool
	focusFlagPlain bool

	focusLogFlagDate string
	focusLogFlagAll  bool
)

// focusCmd represents the focus command.
var focusCmd = &cobra.Command{
	Use:     "focus",
	Aliases: []string{"pomodoro", "pomo", "timer"},
	Short:   "Start a focus timer",
	Long: `Start a focus timer that alternates between focus and break intervals.

Every focus interval that runs to the end is saved as a completed session.
Quitting part way through a focus interval saves the elapsed minutes as a
stopped session. Breaks that run to the end are counted on your profile.

Keyboard Controls:
  SPACE  Start/Pause the timer
  R      Reset the current interval
  S      Switch between focus and break
  + / -  Lengthen or shorten the interval by 5 minutes while paused
  A      Toggle ambient sound
  Q      Quit

Without a terminal, or with --plain, the timer starts right away, prints a
status line and stops after one focus interval (or keeps cycling with --cycle).

Examples:
  boost focus
  boost focus --focus 50m --break 10m --goal "Draft the design doc"
  boost focus --plain --cycle
  boost focus log --all`,
	Args: cobra.NoArgs,
	RunE: runFocus,
}

// focusLogCmd lists recorded focus sessions.
var focusLogCmd = &cobra.Command{
	Use:     "log",
	Aliases: []string{"sessions"},
	Short:   "List focus sessions",
	Args:    cobra.NoArgs,
	RunE:    runFocusLog,
}

func init() {
	focusCmd.Flags().StringVar(&focusFlagFocus, "focus", "", "Focus interval length (default from config)")
	focusCmd.Flags().StringVar(&focusFlagBreak, "break", "", "Break interval length (default from config)")
	focusCmd.Flags().StringVarP(&focusFlagGoal, "goal", "g", "", "What this session is for")
	focusCmd.Flags().BoolVar(&focusFlagCycle, "cycle", false, "Start the next interval automatically")
	focusCmd.Flags().BoolVar(&focusFlagPlain, "plain", false, "Use a plain status line instead of the full screen timer")

	focusLogCmd.Flags().StringVar(&focusLogFlagDate, "date", "", "Day to list (default today)")
	focusLogCmd.Flags().BoolVarP(&focusLogFlagAll, "all", "a", false, "List every session")

	focusCmd.AddCommand(focusLogCmd)
	rootCmd.AddCommand(focusCmd)
}

// focusSummary is the structured result of a timer run.
type focusSummary struct {
	Completed   int    `json:"completed" yaml:"completed"`
	Breaks      int    `json:"breaks" yaml:"breaks"`
	Interrupted bool   `json:"interrupted" yaml:"interrupted"`
	Partial     int    `json:"partial_minutes,omitempty" yaml:"partial_minutes,omitempty"`
	Goal        string `json:"goal,omitempty" yaml:"goal,omitempty"`
}

func runFocus(cmd *cobra.Command, args []string) error {
	policy := timer.PolicySwitch
	if focusFlagCycle {
		policy = timer.PolicySwitchAndStart
	}

	interactive := !focusFlagPlain && !ctx.IsStructured() && isTerminal(os.Stdout) && isTerminal(os.Stdin)
	if !interactive && !focusFlagCycle {
		policy = timer.PolicyStop
	}

	engine := ctx.NewTimer(policy)
	if err := applyFocusLengths(engine); err != nil {
		return err
	}

	logging.FromContext(cmd.Context()).Debug("focus timer starting",
		"focus", engine.Minutes(timer.ModeFocus),
		"break", engine.Minutes(timer.ModeBreak),
		"interactive", interactive)

	if interactive {
		return runFocusInteractive(engine)
	}
	return runFocusPlain(cmd, engine)
}

// applyFocusLengths overrides the configured interval lengths from flags.
func applyFocusLengths(engine *timer.Engine) error {
	for mode, value := range map[timer.Mode]string{
		timer.ModeFocus: focusFlagFocus,
		timer.ModeBreak: focusFlagBreak,
	} {
		if value == "" {
			continue
		}
		minutes, err := parser.ParseMinutes(value)
		if err != nil {
			return inputError(err)
		}
		engine.SetDuration(mode, minutes)
	}
	return nil
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func runFocusInteractive(engine *timer.Engine) error {
	m, err := tui.RunFocus(tui.FocusConfig{
		Engine:    engine,
		Workspace: ctx.Workspace,
		Goal:      focusFlagGoal,
	})
	if err != nil {
		return err
	}
	if m.Err() != nil {
		return m.Err()
	}

	cli := ctx.CLIFormatter()
	if m.Completed() > 0 {
		cli.Success(fmt.Sprintf("Recorded %d focus session(s)", m.Completed()))
	}
	if m.Breaks() > 0 {
		cli.Muted(fmt.Sprintf("%d break(s) taken", m.Breaks()))
	}
	return nil
}

// runFocusPlain drives the engine from a ticker and prints one status line.
// It stops after one focus interval unless cycling, or on SIGINT/SIGTERM.
func runFocusPlain(cmd *cobra.Command, engine *timer.Engine) error {
	runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	display := timer.NewCountdownDisplay()
	display.Writer = cmd.OutOrStdout()
	display.UseColor = ctx.Formatter.IsColorEnabled()
	if ctx.IsStructured() {
		display.Writer = io.Discard
	}

	summary := focusSummary{Goal: focusFlagGoal}
	var saveErr error
	engine.OnExpire(func(ended timer.Mode, length time.Duration) {
		fmt.Fprintln(display.Writer)
		switch ended {
		case timer.ModeFocus:
			if _, ok, err := ctx.Workspace.RecordSession(int(length.Minutes()), focusFlagGoal, true); err != nil {
				saveErr = err
			} else if ok {
				summary.Completed++
			}
		case timer.ModeBreak:
			if _, err := ctx.Workspace.RecordBreak(); err != nil {
				saveErr = err
			} else {
				summary.Breaks++
			}
		}
		display.Print(display.RenderComplete(ended, ended.Opposite()))
	})

	runner := timer.NewRunner(engine, timer.DefaultInterval, func(st timer.State, expired bool) {
		if !expired {
			fmt.Fprintf(display.Writer, "\r%s", display.RenderLine(st))
		}
	})

	engine.Start()
	var err error
	if focusFlagCycle {
		err = runner.Run(runCtx)
	} else {
		_, err = runner.RunUntilExpiry(runCtx)
	}
	fmt.Fprintln(display.Writer)

	if err != nil && !stderrors.Is(err, context.Canceled) {
		return err
	}
	if err != nil {
		summary.Interrupted = true
		st := engine.State()
		engine.Pause()
		if st.Mode == timer.ModeFocus {
			minutes := int(engine.State().Elapsed().Minutes())
			if _, ok, rerr := ctx.Workspace.RecordSession(minutes, focusFlagGoal, false); rerr != nil {
				saveErr = rerr
			} else if ok {
				summary.Partial = minutes
			}
		}
	}
	if saveErr != nil {
		return saveErr
	}

	if ctx.IsStructured() {
		return ctx.JSONFormatter().PrintAction("completed", "focus timer finished", summary)
	}

	cli := ctx.CLIFormatter()
	if summary.Completed > 0 {
		cli.Success(fmt.Sprintf("Recorded %d focus session(s)", summary.Completed))
	}
	if summary.Partial > 0 {
		cli.Warning(fmt.Sprintf("Stopped early: saved %d min", summary.Partial))
	}
	return nil
}

func runFocusLog(cmd *cobra.Command, args []string) error {
	ws := ctx.Workspace

	var sessions []model.FocusSession
	heading := "All focus sessions"
	if focusLogFlagAll {
		sessions = ws.Sessions()
	} else {
		day, err := parseDayFlag(focusLogFlagDate)
		if err != nil {
			return err
		}
		sessions = ws.SessionsOn(day)
		heading = "Focus sessions · " + day.String()
	}

	if ctx.IsStructured() {
		return ctx.JSONFormatter().PrintSessions(sessions)
	}

	cli := ctx.CLIFormatter()
	cli.Title(heading)
	cli.PrintSessions(sessions)
	return nil
}

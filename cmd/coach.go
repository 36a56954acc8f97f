package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/boost/internal/analytics"
	"github.com/manav03panchal/boost/internal/coach"
)

// coachCmd represents the coach command.
var coachCmd = &cobra.Command{
	Use:     "coach",
	Aliases: []string{"ai", "jake"},
	Short:   "Talk to the AI productivity coach",
	Long: `Ask the AI coach for advice, task ideas, an insight on your week or tips.

The coach needs an LLM provider. Configure llm.provider and llm.apiKey in the
config file, or set BOOST_LLM_APIKEY (GEMINI_API_KEY also works for Gemini).
Without one the coach answers with canned replies.

Examples:
  boost coach chat "How do I stop procrastinating?"
  boost coach chat
  boost coach suggest
  boost coach insight
  boost coach tips`,
}

var coachChatCmd = &cobra.Command{
	Use:   "chat [MESSAGE...]",
	Short: "Chat with the coach; without a message, start an interactive session",
	RunE:  runCoachChat,
}

var coachSuggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Ask for three task ideas",
	Args:  cobra.NoArgs,
	RunE:  runTaskSuggest,
}

var coachInsightCmd = &cobra.Command{
	Use:   "insight",
	Short: "Get a one-line insight on your recent activity",
	Args:  cobra.NoArgs,
	RunE:  runCoachInsight,
}

var coachTipsCmd = &cobra.Command{
	Use:   "tips",
	Short: "Get three productivity tips",
	Args:  cobra.NoArgs,
	RunE:  runCoachTips,
}

// resetter is implemented by coaches that keep a chat history.
type resetter interface {
	Session() *coach.ChatSession
	Reset()
}

func init() {
	coachSuggestCmd.Flags().BoolVar(&taskSuggestFlagAdd, "add", false, "Add the suggestions as tasks for today")

	coachCmd.AddCommand(coachChatCmd)
	coachCmd.AddCommand(coachSuggestCmd)
	coachCmd.AddCommand(coachInsightCmd)
	coachCmd.AddCommand(coachTipsCmd)
	rootCmd.AddCommand(coachCmd)
}

func runCoachChat(cmd *cobra.Command, args []string) error {
	c := ctx.Coach(cmd.Context())

	if len(args) > 0 {
		reply := c.Chat(cmd.Context(), joinArgs(args))
		if ctx.IsStructured() {
			return ctx.JSONFormatter().PrintText(reply)
		}
		ctx.CLIFormatter().Println(reply)
		return nil
	}

	cli := ctx.CLIFormatter()
	cli.Title("Jake.0")
	cli.Muted("Type a message. /reset starts over, exit or Ctrl+D quits.")

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		cli.Print("> ")
		if !scanner.Scan() {
			cli.Println()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit", "/exit", "/quit":
			return nil
		case "/reset":
			turns := 0
			if r, ok := c.(resetter); ok {
				if s := r.Session(); s != nil {
					turns = s.Turns()
				}
				r.Reset()
			}
			cli.Muted(fmt.Sprintf("Conversation cleared (%d exchange(s)).", turns))
			continue
		}
		cli.Println(c.Chat(cmd.Context(), line))
		cli.Println()
	}
}

func runCoachInsight(cmd *cobra.Command, args []string) error {
	metrics := analytics.BuildMetrics(ctx.Workspace.Activity(), ctx.Workspace.Now())
	insight := ctx.Coach(cmd.Context()).Insight(cmd.Context(), metrics)

	if ctx.IsStructured() {
		return ctx.JSONFormatter().PrintText(insight)
	}
	ctx.CLIFormatter().Println(insight)
	return nil
}

func runCoachTips(cmd *cobra.Command, args []string) error {
	tips := ctx.Coach(cmd.Context()).Tips(cmd.Context())

	if ctx.IsStructured() {
		return ctx.JSONFormatter().PrintList(tips)
	}

	cli := ctx.CLIFormatter()
	cli.Title("Tips")
	cli.PrintList(tips)
	return nil
}

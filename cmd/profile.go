package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/boost/internal/model"
)

// profileCmd represents the profile command.
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit your profile",
	Long: `Your profile holds the name shown on the dashboard and leaderboard, and the
sound played when a timer interval ends.

Examples:
  boost profile
  boost profile set --name "Ada" --email ada@example.com
  boost profile set --sound bowl`,
	RunE: runProfileShow,
}

// Profile flags.
var (
	profileFlagName  string
	profileFlagEmail string
	profileFlagBio   string
	profileFlagSound string
)

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	Args:  cobra.NoArgs,
	RunE:  runProfileShow,
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields",
	Args:  cobra.NoArgs,
	RunE:  runProfileSet,
}

func init() {
	profileSetCmd.Flags().StringVar(&profileFlagName, "name", "", "Display name")
	profileSetCmd.Flags().StringVar(&profileFlagEmail, "email", "", "Email address")
	profileSetCmd.Flags().StringVar(&profileFlagBio, "bio", "", "Short bio")
	profileSetCmd.Flags().StringVar(&profileFlagSound, "sound", "", "Timer sound: chime, gong, digital, success, bowl")
	profileSetCmd.RegisterFlagCompletionFunc("sound", cobra.FixedCompletions(
		[]string{"chime", "gong", "digital", "success", "bowl"}, cobra.ShellCompDirectiveNoFileComp))

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	profile := ctx.Workspace.Profile()

	if ctx.IsStructured() {
		return ctx.Formatter.Structured(profile)
	}

	ctx.CLIFormatter().PrintProfile(profile)
	return nil
}

func runProfileSet(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if flags.NFlag() == 0 {
		return cmd.Help()
	}

	profile, err := ctx.Workspace.UpdateProfile(func(p *model.UserProfile) {
		if flags.Changed("name") {
			p.Name = strings.TrimSpace(profileFlagName)
		}
		if flags.Changed("email") {
			p.Email = strings.TrimSpace(profileFlagEmail)
		}
		if flags.Changed("bio") {
			p.Bio = strings.TrimSpace(profileFlagBio)
		}
		if flags.Changed("sound") {
			p.NotificationSound = model.NotificationSound(strings.ToLower(strings.TrimSpace(profileFlagSound)))
		}
	})
	if err != nil {
		return err
	}

	if ctx.IsStructured() {
		return ctx.JSONFormatter().PrintAction("updated", "profile updated", profile)
	}

	cli := ctx.CLIFormatter()
	cli.Success("Profile updated")
	cli.PrintProfile(profile)
	return nil
}

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change persisted defaults",
	Long: `Shows the defaults used by merge and watch. Flags given on the command
line override them for one run.

Use 'settings set <key> <value>' to change a default.`,
	Args: cobra.NoArgs,
	RunE: runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a default",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	st := NewStyles(cmd.OutOrStdout(), nil)
	cmd.Println(st.Title.Render("Current Settings"))
	cmd.Printf("Config file: %s\n", settingsService.Path())
	cmd.Println()

	cmd.Println("[Summary]")
	cmd.Printf("  Sentences: %d\n", settings.Sentences)
	if settings.MaxChars == 0 {
		cmd.Println("  Max chars: unlimited")
	} else {
		cmd.Printf("  Max chars: %d\n", settings.MaxChars)
	}
	cmd.Printf("  Fallback chars: %d\n", settings.FallbackChars)
	cmd.Println()

	cmd.Println("[Merge]")
	cmd.Printf("  Recursive: %s\n", yesNo(settings.Recursive))
	cmd.Printf("  Workers: %d\n", settings.Workers)
	cmd.Println()

	cmd.Println("[Index]")
	cmd.Printf("  Policy: %s\n", settings.IndexPolicy.Description())
	if settings.IndexPath == "" {
		cmd.Println("  Path: (next to the merged output)")
	} else {
		cmd.Printf("  Path: %s\n", settings.IndexPath)
	}
	cmd.Printf("  Digest: %s\n", yesNo(settings.WriteDigest))
	cmd.Println()

	cmd.Printf("%s\n", st.Muted.Render("Keys: "+strings.Join(settingsService.Keys(), ", ")))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/digestpdf/internal/core/domain"
	"github.com/custodia-labs/digestpdf/internal/core/ports/driving"
	"github.com/custodia-labs/digestpdf/internal/logger"
)

var watchFlags runFlags

var watchCmd = &cobra.Command{
	Use:   "watch <input-dir>",
	Short: "Re-run merge whenever the input PDFs change",
	Long: `Runs merge once, then again each time PDFs in the input directory are
created, changed, removed or renamed. Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchFlags.register(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchService == nil {
		return errors.New("watch service not configured")
	}

	settings, err := watchFlags.settings(cmd)
	if err != nil {
		return err
	}

	cmd.Printf("Watching %s...\n", args[0])
	err = watchService.Watch(cmd.Context(), driving.DigestRequest{
		InputDir: args[0],
		Settings: settings,
	}, func(report *domain.RunReport, runErr error) {
		cmd.Printf("\n[%s]\n", time.Now().Format(time.TimeOnly))
		if report != nil {
			printReport(cmd, report)
		}
		// A failed run does not stop watching.
		if runErr != nil {
			logger.Error("run failed: %v", runErr)
		}
	})
	if err != nil {
		return err
	}
	cmd.Println("Stopped watching.")
	return nil
}

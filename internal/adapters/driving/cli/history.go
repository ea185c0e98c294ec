package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/digestpdf/internal/core/services"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List past runs or show one run",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", services.DefaultHistoryLimit, "maximum number of runs")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	if len(args) == 1 {
		report, err := historyService.Show(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get run: %w", err)
		}
		st := NewStyles(cmd.OutOrStdout(), nil)
		cmd.Printf("%s %s\n", st.Title.Render("Run"), report.RunID)
		cmd.Printf("Started:  %s\n", report.StartedAt.Format("2006-01-02 15:04:05"))
		cmd.Printf("Duration: %s\n", report.Duration().Round(time.Millisecond))
		cmd.Printf("Input:    %s\n", report.InputDir)
		cmd.Println()
		printReport(cmd, report)
		return nil
	}

	runs, err := historyService.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}

	for i := range runs {
		r := &runs[i]
		cmd.Printf("%s  %s  %d/%d merged  %s\n",
			r.RunID,
			r.StartedAt.Format("2006-01-02 15:04:05"),
			r.Succeeded(), r.Total(),
			r.InputDir)
	}
	return nil
}

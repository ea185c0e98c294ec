package cli

import (
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/digestpdf/internal/core/domain"
	"github.com/custodia-labs/digestpdf/internal/core/ports/driving"
)

var mergeFlags runFlags

var mergeCmd = &cobra.Command{
	Use:   "merge <input-dir>",
	Short: "Merge the PDFs of a directory and summarise each file",
	Long: `Merges every PDF in the input directory, in natural filename order, into
one document with a bookmark per file. Each merged file gets an extractive
summary appended to the JSON index, and a plain-text digest is written
next to it.

Files that cannot be read or decrypted are skipped and reported.`,
	Args: cobra.ExactArgs(1),
	RunE: runMerge,
}

func init() {
	mergeFlags.register(mergeCmd)
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	if digestService == nil {
		return errors.New("digest service not configured")
	}

	settings, err := mergeFlags.settings(cmd)
	if err != nil {
		return err
	}

	report, err := digestService.Run(cmd.Context(), driving.DigestRequest{
		InputDir: args[0],
		Settings: settings,
	})
	if report != nil {
		printReport(cmd, report)
	}
	return err
}

// printReport writes the per-file outcomes and the run summary.
func printReport(cmd *cobra.Command, report *domain.RunReport) {
	st := NewStyles(cmd.OutOrStdout(), nil)

	for _, o := range report.Outcomes {
		name := o.RelPath
		if name == "" {
			name = filepath.Base(o.File)
		}
		switch o.Status {
		case domain.OutcomeSkipped:
			cmd.Printf("  %-8s %s  %s\n", st.Status(o), name, st.Muted.Render(o.Reason()))
		default:
			cmd.Printf("  %-8s %s  %s\n", st.Status(o), name,
				st.Muted.Render(pageRange(o.FirstPage, o.Pages)))
		}
	}

	if report.Succeeded() == 0 {
		cmd.Printf("%s\n", st.Error.Render("No files merged."))
		return
	}
	cmd.Println()
	cmd.Printf("%s %d of %d files into %s\n",
		st.Title.Render("Merged"), report.Succeeded(), report.Total(), report.OutputPath)
	cmd.Printf("Index: %s (%d records)\n", report.IndexPath, len(report.Records))
	if n := report.Fallbacks(); n > 0 {
		cmd.Printf("%s\n", st.Warning.Render(pluralise(n, "summary", "summaries")+" used the fallback excerpt"))
	}
}

func pageRange(first, pages int) string {
	switch {
	case first == 0:
		return ""
	case pages <= 1:
		return "p." + itoa(first)
	default:
		return "pp." + itoa(first) + "-" + itoa(first+pages-1)
	}
}

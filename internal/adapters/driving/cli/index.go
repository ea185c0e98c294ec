package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/digestpdf/internal/core/domain"
	"github.com/custodia-labs/digestpdf/internal/core/services"
)

var (
	indexPath   string
	indexFilter string
	indexJSON   bool
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Show records from the summary index",
	Long: `Prints the summary records stored in the JSON index. Without --index the
index configured in settings, or the one next to the default output, is read.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringVar(&indexPath, "index", "", "summary index path")
	indexCmd.Flags().StringVar(&indexFilter, "file", "", "only records whose file path contains this text")
	indexCmd.Flags().BoolVar(&indexJSON, "json", false, "output records as JSON")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	path := indexPath
	if path == "" {
		settings := domain.DefaultSettings()
		if settingsService != nil {
			stored, err := settingsService.Get()
			if err != nil {
				return fmt.Errorf("failed to get settings: %w", err)
			}
			settings = stored
		}
		paths, err := services.ResolvePaths(settings)
		if err != nil {
			return err
		}
		path = paths.Index
	}

	records, err := indexService.List(cmd.Context(), path, indexFilter)
	if err != nil {
		return fmt.Errorf("failed to read index: %w", err)
	}

	if indexJSON {
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal records: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(records) == 0 {
		cmd.Println("No records found.")
		return nil
	}

	st := NewStyles(cmd.OutOrStdout(), nil)
	for _, r := range records {
		cmd.Printf("%s  %s\n", st.Title.Render(r.Name), st.Muted.Render(r.File))
		meta := fmt.Sprintf("%s, %d pages, %s", r.Method, r.Pages, r.CreatedAt.Format("2006-01-02 15:04"))
		if r.Language != "" {
			meta = r.Language + ", " + meta
		}
		cmd.Printf("  %s\n", st.Muted.Render(meta))
		cmd.Printf("  %s\n\n", truncate(r.Summary, 300))
	}
	cmd.Printf("%s\n", pluralise(len(records), "record", "records"))
	return nil
}

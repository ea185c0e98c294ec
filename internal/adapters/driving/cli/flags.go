package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/digestpdf/internal/core/domain"
)

// runFlags are the per-run overrides shared by merge and watch.
type runFlags struct {
	output    string
	recursive bool
	sentences int
	maxChars  int
	index     string
	policy    string
	workers   int
	noDigest  bool
}

func (f *runFlags) register(cmd *cobra.Command) {
	d := domain.DefaultSettings()
	flags := cmd.Flags()
	flags.StringVarP(&f.output, "output", "o", d.OutputPath, "merged PDF path; a bare name goes under output/")
	flags.BoolVarP(&f.recursive, "recursive", "r", d.Recursive, "include PDFs in subdirectories")
	flags.IntVarP(&f.sentences, "sentences", "n", d.Sentences, "summary sentences per file")
	flags.IntVar(&f.maxChars, "max-chars", d.MaxChars, "characters of text summarised per file (0 = unlimited)")
	flags.StringVar(&f.index, "index", "", "summary index path (default next to the output)")
	flags.StringVar(&f.policy, "policy", string(d.IndexPolicy), "index policy: append or replace")
	flags.IntVar(&f.workers, "workers", d.Workers, "files processed concurrently")
	flags.BoolVar(&f.noDigest, "no-digest", false, "do not write summary.txt")
}

// settings overlays the flags the user set on the persisted settings.
func (f *runFlags) settings(cmd *cobra.Command) (domain.Settings, error) {
	s := domain.DefaultSettings()
	if settingsService != nil {
		stored, err := settingsService.Get()
		if err != nil {
			return s, fmt.Errorf("failed to get settings: %w", err)
		}
		s = stored
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		s.OutputPath = f.output
	}
	if flags.Changed("recursive") {
		s.Recursive = f.recursive
	}
	if flags.Changed("sentences") {
		s.Sentences = f.sentences
	}
	if flags.Changed("max-chars") {
		s.MaxChars = f.maxChars
	}
	if flags.Changed("index") {
		s.IndexPath = f.index
	}
	if flags.Changed("policy") {
		s.IndexPolicy = domain.IndexPolicy(f.policy)
	}
	if flags.Changed("workers") {
		s.Workers = f.workers
	}
	if flags.Changed("no-digest") {
		s.WriteDigest = !f.noDigest
	}
	s.Verbose = verbose

	return s, s.Validate()
}

// Package cli provides the cobra command tree for digestpdf.
package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/digestpdf/internal/core/ports/driving"
	"github.com/custodia-labs/digestpdf/internal/logger"
)

// version is set by the build.
var version = "dev"

var (
	verbose   bool
	configDir string
)

// Services are the driving ports the commands call.
type Services struct {
	Digest   driving.DigestService
	Watch    driving.WatchService
	Index    driving.IndexService
	History  driving.HistoryService
	Settings driving.SettingsService
}

// Bootstrap builds the services once flags are parsed. The returned
// function releases resources and may be nil.
type Bootstrap func(configDir string) (*Services, func() error, error)

var (
	digestService   driving.DigestService
	watchService    driving.WatchService
	indexService    driving.IndexService
	historyService  driving.HistoryService
	settingsService driving.SettingsService

	bootstrap Bootstrap
	cleanup   func() error
)

var rootCmd = &cobra.Command{
	Use:   "digestpdf",
	Short: "Merge a directory of PDFs and summarise each one",
	Long: `digestpdf merges every PDF in a directory into one bookmarked document
and records an extractive summary of each file in a JSON index.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print pipeline details to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.digestpdf)")
}

// SetServices installs the services directly, bypassing Bootstrap.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	digestService = s.Digest
	watchService = s.Watch
	indexService = s.Index
	historyService = s.History
	settingsService = s.Settings
}

// SetBootstrap registers the function that builds services for a command.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command. Commands stop when ctx is cancelled.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	return errors.Join(err, release())
}

// release frees what the last bootstrap acquired.
func release() error {
	if cleanup == nil {
		return nil
	}
	err := cleanup()
	cleanup = nil
	return err
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if bootstrap == nil || cmd.Name() == "version" {
		return nil
	}

	dir := configDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.New("cannot locate home directory; pass --config-dir")
		}
		dir = filepath.Join(home, ".digestpdf")
	}

	services, free, err := bootstrap(dir)
	if err != nil {
		return err
	}
	SetServices(services)
	cleanup = free
	return nil
}

// Command digestpdf merges a directory of PDFs into one bookmarked
// document and records an extractive summary of each file.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/digestpdf/internal/adapters/driven/config/file"
	"github.com/custodia-labs/digestpdf/internal/adapters/driven/merge"
	"github.com/custodia-labs/digestpdf/internal/adapters/driven/storage/jsonindex"
	"github.com/custodia-labs/digestpdf/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/digestpdf/internal/adapters/driving/cli"
	"github.com/custodia-labs/digestpdf/internal/connectors/filesystem"
	"github.com/custodia-labs/digestpdf/internal/core/ports/driven"
	"github.com/custodia-labs/digestpdf/internal/core/services"
	"github.com/custodia-labs/digestpdf/internal/logger"
	"github.com/custodia-labs/digestpdf/internal/normalisers/pdf"
	"github.com/custodia-labs/digestpdf/internal/postprocessors"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

// bootstrap wires adapters into services for one command.
func bootstrap(configDir string) (*cli.Services, func() error, error) {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	var closers []func() error

	// History is optional; a run proceeds without it.
	var history driven.RunHistoryStore
	store, err := sqlite.NewStore(filepath.Join(configDir, "data"))
	if err != nil {
		logger.Warn("run history disabled: %v", err)
	} else {
		history = store
		closers = append(closers, store.Close)
	}

	indexes := jsonindex.Factory{}
	opts := []services.DigestOption{
		services.WithDigestWriter(jsonindex.NewDigestWriter()),
		services.WithProgress(cli.StderrProgress()),
	}
	if history != nil {
		opts = append(opts, services.WithHistory(history))
	}

	digest := services.NewDigestService(
		filesystem.New(),
		pdf.New(),
		merge.New(),
		postprocessors.NewDefaultPipeline(),
		indexes,
		opts...,
	)

	watcher := filesystem.NewWatcher()
	closers = append(closers, watcher.Close)

	release := func() error {
		var errs []error
		for _, c := range closers {
			errs = append(errs, c())
		}
		return errors.Join(errs...)
	}

	return &cli.Services{
		Digest:   digest,
		Watch:    services.NewWatchService(digest, watcher, services.DefaultDebounce),
		Index:    services.NewIndexService(indexes),
		History:  services.NewHistoryService(history),
		Settings: services.NewSettingsService(configStore),
	}, release, nil
}

// Package cli implements the termdeck command-line interface.
//
// This package provides commands for building slide decks from Markdown,
// presenting them in the terminal, serving them over HTTP for preview, and
// managing the render cache. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - build: Render a Markdown file into a deck of slide files
//   - present: Step through a built deck in the terminal
//   - serve: Expose a built deck over HTTP for preview
//   - cache: Manage the render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/termdeck/termdeck/pkg/buildinfo"
	"github.com/termdeck/termdeck/pkg/cache"
)

// appName is the application name used for directories and display.
const appName = "termdeck"

// Execute runs the termdeck CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext. Default level is info; --verbose (-v) selects debug.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "Termdeck renders Markdown into terminal slide decks",
		Long:         `Termdeck is a CLI tool that renders a Markdown document into a deck of standalone terminal slides, with ANSI styling, centered headings, syntax-highlighted code, and per-slide footnotes.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newBuildCmd())
	root.AddCommand(newPresentCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCacheCmd())

	return root.ExecuteContext(ctx)
}

// newStore returns the render cache, or a null cache when disabled or when
// no cache directory can be resolved.
func newStore(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/termdeck/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

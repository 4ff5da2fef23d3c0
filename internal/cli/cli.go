// Package cli implements the graphscribe command-line interface.
//
// This package provides commands for rendering node-graph dumps as
// plain-text pseudocode transcripts, summarizing graph contents, exporting
// graphs to Graphviz formats, browsing entry points interactively, and
// running the HTTP API server. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - describe: Render a graph dump as a pseudocode transcript
//   - summary: Print a flat summary of variables, events, and calls
//   - export: Export a graph as DOT, SVG, or PNG
//   - browse: Interactively browse a graph's entry points
//   - serve: Run the HTTP API server
//   - cache: Manage the transcript cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/graphscribe/graphscribe/pkg/buildinfo"
	"github.com/graphscribe/graphscribe/pkg/cache"
)

// appName is the application name used for directories and display.
const appName = "graphscribe"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Graphscribe renders visual-scripting graphs as pseudocode",
		Long:         `Graphscribe is a CLI tool for turning node-graph dumps from visual scripting systems into readable pseudocode transcripts, making it easier to review and diff graph logic as text.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.describeCommand())
	root.AddCommand(c.summaryCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newLocalCache returns the cache used by the describe and summary
// commands. A missing cache never fails a command: any setup error
// degrades to the null cache.
func newLocalCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return fc
}

// cacheDir returns the cache directory using XDG standard (~/.cache/graphscribe/).
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

package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/graphscribe/graphscribe/pkg/cache"
	"github.com/graphscribe/graphscribe/pkg/describe"
	"github.com/graphscribe/graphscribe/pkg/errors"
	"github.com/graphscribe/graphscribe/pkg/graph"
)

// localCacheTTL is how long describe/summary results stay in the file cache.
const localCacheTTL = 24 * time.Hour

// describeCommand creates the describe command.
func (c *CLI) describeCommand() *cobra.Command {
	var output string
	var noCache, summary bool

	cmd := &cobra.Command{
		Use:   "describe [file]",
		Short: "Render a graph dump as a pseudocode transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if summary {
				return c.runText(cmd.Context(), args[0], output, noCache, cache.SummaryKey, describe.Summarize, "summary")
			}
			return c.runText(cmd.Context(), args[0], output, noCache, cache.TranscriptKey, describe.Describe, "transcript")
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the transcript to a file instead of stdout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the local result cache")
	cmd.Flags().BoolVar(&summary, "summary", false, "render the flat summary instead of the transcript")

	return cmd
}

// summaryCommand creates the summary command.
func (c *CLI) summaryCommand() *cobra.Command {
	var output string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "summary [file]",
		Short: "Print a flat summary of variables, events, and calls",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runText(cmd.Context(), args[0], output, noCache, cache.SummaryKey, describe.Summarize, "summary")
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the summary to a file instead of stdout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the local result cache")

	return cmd
}

// runText implements the shared describe/summary flow: load the graph,
// consult the local cache, render on a miss, and write the result to
// stdout or a file. Cache failures are logged and otherwise ignored.
func (c *CLI) runText(ctx context.Context, path, output string, noCache bool, keyFn func([]byte) string, renderFn func(graph.Graph) string, kind string) error {
	logger := loggerFromContext(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "read graph %s", path)
	}
	g, err := graph.UnmarshalGraph(data)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidGraph, err, "parse graph %s", path)
	}

	store := newLocalCache(noCache)
	defer store.Close()

	p := newProgress(logger)
	key := keyFn(data)

	var text string
	hit := false
	if cached, ok, err := store.Get(ctx, key); err != nil {
		logger.Debug("cache read failed", "key", key, "err", err)
	} else if ok {
		text = string(cached)
		hit = true
	}
	if !hit {
		text = renderFn(g)
		if err := store.Set(ctx, key, []byte(text), localCacheTTL); err != nil {
			logger.Debug("cache write failed", "key", key, "err", err)
		}
	}
	p.done(fmt.Sprintf("Rendered %s for %q", kind, g.Name))

	if output == "" {
		fmt.Println(text)
		return nil
	}
	if err := os.WriteFile(output, []byte(text+"\n"), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Wrote %s", kind)
	printFile(output)
	printStats(len(g.Nodes), len(describe.EntryNodes(g)), hit)
	printNextStep("Browse interactively", fmt.Sprintf("%s browse %s", appName, path))
	return nil
}

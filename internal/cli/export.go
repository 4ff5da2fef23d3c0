package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/graphscribe/graphscribe/pkg/describe"
	"github.com/graphscribe/graphscribe/pkg/errors"
	"github.com/graphscribe/graphscribe/pkg/graph"
	"github.com/graphscribe/graphscribe/pkg/render/dot"
)

// Supported export formats.
const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"
)

// exportCommand creates the export command for Graphviz output.
func (c *CLI) exportCommand() *cobra.Command {
	var output, format string
	var dataEdges bool

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export a graph as DOT, SVG, or PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			return c.runExport(cmd.Context(), args[0], output, format, dataEdges)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input name with new extension)")
	cmd.Flags().StringVarP(&format, "format", "f", formatDOT, "output format: dot (default), svg, png")
	cmd.Flags().BoolVar(&dataEdges, "data-edges", false, "include data-pin connections as dashed edges")

	return cmd
}

func validateFormat(format string) error {
	switch format {
	case formatDOT, formatSVG, formatPNG:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (expected dot, svg, or png)", format)
}

func (c *CLI) runExport(ctx context.Context, path, output, format string, dataEdges bool) error {
	g, err := graph.ReadGraphFile(path)
	if err != nil {
		return err
	}
	if output == "" {
		output = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + "." + format
	}

	source := dot.ToDOT(g, dot.Options{DataEdges: dataEdges})

	var out []byte
	switch format {
	case formatDOT:
		out = []byte(source)
	case formatSVG, formatPNG:
		spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s", strings.ToUpper(format)))
		spinner.Start()
		if format == formatSVG {
			out, err = dot.RenderSVG(source)
		} else {
			out, err = dot.RenderPNG(source)
		}
		if err != nil {
			spinner.StopWithError(fmt.Sprintf("Render failed: %v", err))
			return err
		}
		spinner.StopWithSuccess(fmt.Sprintf("Rendered %s", strings.ToUpper(format)))
	}

	if err := os.WriteFile(output, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Exported %q", g.Name)
	printFile(output)
	printStats(len(g.Nodes), len(describe.EntryNodes(g)), false)
	return nil
}

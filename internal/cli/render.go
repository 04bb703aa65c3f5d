package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/treelinehq/treeline/pkg/pipeline"
	"github.com/treelinehq/treeline/pkg/treefile"
)

// renderCommand creates the render command for producing output artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "render [tree.json|layout.json]",
		Short: "Render a tree to SVG, text, DOT, or JSON",
		Long: `Render a tree to one or more output formats.

The render command runs the full pipeline: it loads the tree, computes the
layout, and writes one file per requested format. Layouts and artifacts are
cached locally, so re-rendering an unchanged tree is instant.

A precomputed layout file (as written by the layout command) is also
accepted; the layout stage is skipped and the stored positions are
rendered as-is.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr, c.defaultFormats())
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], output, formats, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), text, dot, json (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-render even if cached")

	return cmd
}

// runRender executes the pipeline and writes one file per format.
// When input holds a precomputed layout, only the render stage runs.
func (c *CLI) runRender(ctx context.Context, input, output string, formats []string, noCache, refresh bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	// A layout file declares grid extents; a tree file doesn't, so it
	// fails layout validation and takes the full pipeline below.
	if l, err := treefile.ReadLayoutFile(input); err == nil {
		return c.renderLayout(ctx, runner, l, input, output, formats, refresh)
	}

	opts := pipeline.Options{
		InputPath: input,
		Formats:   formats,
		Refresh:   refresh,
		Logger:    c.Logger,
	}

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render %s: %w", input, err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	cached := res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit
	if err := c.writeArtifacts(res.Artifacts, input, output, formats); err != nil {
		return err
	}
	printStats(res.Stats.NodeCount, res.Stats.Width, res.Stats.Depth, cached)

	return nil
}

// renderLayout renders a precomputed layout, skipping load and layout.
func (c *CLI) renderLayout(ctx context.Context, runner *pipeline.Runner, l treefile.Layout, input, output string, formats []string, refresh bool) error {
	opts := pipeline.Options{
		Formats: formats,
		Refresh: refresh,
		Logger:  c.Logger,
	}

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	artifacts, cached, err := runner.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render %s: %w", input, err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := c.writeArtifacts(artifacts, input, output, formats); err != nil {
		return err
	}
	printStats(len(l.Nodes), l.Width, l.Depth, cached)

	return nil
}

// writeArtifacts writes one file per format and prints each path.
func (c *CLI) writeArtifacts(artifacts map[string][]byte, input, output string, formats []string) error {
	base := outputBase(output, input)

	printSuccess("Render complete")
	for _, format := range formats {
		path := base + "." + format
		if output != "" && len(formats) == 1 {
			path = output
		}
		if err := os.WriteFile(path, artifacts[format], 0644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

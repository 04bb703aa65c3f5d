package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/treelinehq/treeline/pkg/cache"
	"github.com/treelinehq/treeline/pkg/pipeline"
	"github.com/treelinehq/treeline/pkg/treefile"
)

// layoutCommand creates the layout command for computing tree layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "layout [tree.json]",
		Short: "Compute a tidy layout for a tree",
		Long: `Compute a tidy layout for a tree.

The layout command takes a tree.json file and computes grid coordinates for
every node. The output is a layout.json file (same format as 'render -f json')
that can be rendered with the 'render' or 'view' commands.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], output, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if cached")

	return cmd
}

// runLayout loads the tree, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input, output string, noCache, refresh bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{
		InputPath: input,
		Refresh:   refresh,
		Logger:    c.Logger,
	}

	t, err := runner.Load(ctx, opts)
	if err != nil {
		return fmt.Errorf("load tree %s: %w", input, err)
	}
	canonical, err := treefile.MarshalTree(t)
	if err != nil {
		return fmt.Errorf("serialize tree: %w", err)
	}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	l, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, t, cache.Hash(canonical), opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := treefile.WriteLayoutFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(t.NodeCount(), l.Width, l.Depth, cacheHit)
	printNewline()
	printNextStep("Render", "treeline render "+input)

	return nil
}

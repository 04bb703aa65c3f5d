package cli

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/treelinehq/treeline/pkg/pipeline"
	"github.com/treelinehq/treeline/pkg/treefile"
)

// viewCommand creates the view command for inspecting a tree in the terminal.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		noCache bool
		plain   bool
	)

	cmd := &cobra.Command{
		Use:   "view [tree.json]",
		Short: "View a tree layout in the terminal",
		Long: `View a tree layout in the terminal.

The view command computes the layout and shows it as a scrollable text
diagram. Use arrow keys (or hjkl) to pan, q to quit. With --plain the
diagram is printed directly to stdout instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(cmd.Context(), args[0], noCache, plain, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&plain, "plain", false, "print the diagram to stdout without the interactive viewer")

	return cmd
}

// runView renders the tree as text and either prints it or opens the viewer.
func (c *CLI) runView(ctx context.Context, input string, noCache, plain bool, out io.Writer) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{
		InputPath: input,
		Formats:   []string{treefile.FormatText},
		Logger:    c.Logger,
	}

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		return fmt.Errorf("view %s: %w", input, err)
	}
	diagram := string(res.Artifacts[treefile.FormatText])

	if plain {
		fmt.Fprint(out, diagram)
		return nil
	}

	title := fmt.Sprintf("%s · %d nodes · %dx%d", input,
		res.Stats.NodeCount, res.Stats.Width, res.Stats.Depth)
	model := newTreeViewModel(title, diagram)
	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

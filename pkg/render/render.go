package render

import (
	"context"

	"github.com/treelinehq/treeline/pkg/errors"
	"github.com/treelinehq/treeline/pkg/treefile"
)

// Render dispatches to the sink for the requested output format. Format
// names are the treefile.Format* constants; anything else is rejected
// with ErrCodeInvalidFormat.
func Render(ctx context.Context, l treefile.Layout, format string) ([]byte, error) {
	switch format {
	case treefile.FormatSVG:
		return RenderSVG(l), nil
	case treefile.FormatText:
		return RenderText(l), nil
	case treefile.FormatDOT:
		return []byte(ToDOT(l, DOTOptions{})), nil
	case treefile.FormatJSON:
		return treefile.MarshalLayout(l)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown output format: %q", format)
	}
}

// Formats lists the supported output format names.
func Formats() []string {
	return []string{treefile.FormatSVG, treefile.FormatText, treefile.FormatDOT, treefile.FormatJSON}
}

// RenderGraphviz produces an SVG drawn by Graphviz instead of the grid
// renderer: same structure, Graphviz's own aesthetics. Useful for
// comparing drawings side by side.
func RenderGraphviz(ctx context.Context, l treefile.Layout) ([]byte, error) {
	return RenderDOTSVG(ctx, ToDOT(l, DOTOptions{}))
}

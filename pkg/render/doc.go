// Package render draws computed tree layouts.
//
// # Overview
//
// This package contains the sinks that turn a [treefile.Layout] into
// viewable output:
//
//   - [RenderSVG]: grid-faithful SVG, the primary output
//   - [RenderText]: plain monospace text for terminals
//   - [ToDOT] / [RenderDOTSVG]: Graphviz DOT export and rendering
//   - [Render]: dispatch by format name
//
// # Grid Mapping
//
// The layout engine works on an abstract unit grid. [RenderSVG] maps one
// grid column to a fixed pixel cell and draws nodes at their cell centers,
// so the SVG is exactly the computed layout. [RenderText] does the same
// with character cells.
//
//	res, _ := layout.Compute(t)
//	svg := render.RenderSVG(treefile.FromResult(res, t))
//
// # Graphviz Export
//
// [ToDOT] emits the tree structure as DOT for external tooling. Graphviz
// applies its own layout to it, so positions may differ from the grid
// renderer; use it for interoperability, not fidelity.
//
//	dot := render.ToDOT(l, render.DOTOptions{})
//	svg, err := render.RenderDOTSVG(ctx, dot)
package render

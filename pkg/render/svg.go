package render

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/treelinehq/treeline/pkg/treefile"
)

// Default grid-to-pixel scaling. One layout column maps to cellWidth
// pixels and one depth level to cellHeight pixels.
const (
	defaultCellWidth  = 120.0
	defaultCellHeight = 90.0
	defaultMargin     = 40.0
	defaultFontSize   = 14.0
	nodeWidthRatio    = 0.75
	nodeHeightRatio   = 0.45
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	cellWidth  float64
	cellHeight float64
	margin     float64
	fontSize   float64
	showLabels bool
	showEdges  bool
}

// WithCellSize sets the pixel size of one grid cell.
func WithCellSize(w, h float64) SVGOption {
	return func(r *svgRenderer) { r.cellWidth, r.cellHeight = w, h }
}

// WithMargin sets the outer margin in pixels.
func WithMargin(m float64) SVGOption { return func(r *svgRenderer) { r.margin = m } }

// WithFontSize sets the label font size in pixels.
func WithFontSize(s float64) SVGOption { return func(r *svgRenderer) { r.fontSize = s } }

// WithoutLabels draws node boxes only.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.showLabels = false } }

// WithoutEdges suppresses the parent-child connector lines.
func WithoutEdges() SVGOption { return func(r *svgRenderer) { r.showEdges = false } }

// RenderSVG draws a computed layout as an SVG document. Grid coordinates
// map directly to pixel positions, so the drawing is exactly the layout
// the engine computed - nothing is re-laid-out here.
func RenderSVG(l treefile.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	width := float64(l.Width)*r.cellWidth + 2*r.margin
	height := float64(l.Depth)*r.cellHeight + 2*r.margin

	centers := make(map[string][2]float64, len(l.Nodes))
	for _, n := range l.Nodes {
		centers[n.ID] = [2]float64{
			r.margin + (float64(n.X)+0.5)*r.cellWidth,
			r.margin + (float64(n.Y)+0.5)*r.cellHeight,
		}
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	renderDefs(&buf)

	if r.showEdges {
		for _, e := range l.Edges {
			from, to := centers[e.From], centers[e.To]
			fmt.Fprintf(&buf, `  <line class="edge" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n",
				from[0], from[1], to[0], to[1])
		}
	}

	boxW := r.cellWidth * nodeWidthRatio
	boxH := r.cellHeight * nodeHeightRatio
	for _, n := range l.Nodes {
		c := centers[n.ID]
		fmt.Fprintf(&buf, `  <rect class="node" id="node-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="6"/>`+"\n",
			xmlEscape(n.ID), c[0]-boxW/2, c[1]-boxH/2, boxW, boxH)
	}

	if r.showLabels {
		for _, n := range l.Nodes {
			c := centers[n.ID]
			label := n.Label
			if label == "" {
				label = n.ID
			}
			fmt.Fprintf(&buf, `  <text class="label" x="%.1f" y="%.1f" font-size="%.0f">%s</text>`+"\n",
				c[0], c[1], r.fontSize, xmlEscape(label))
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		cellWidth:  defaultCellWidth,
		cellHeight: defaultCellHeight,
		margin:     defaultMargin,
		fontSize:   defaultFontSize,
		showLabels: true,
		showEdges:  true,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func renderDefs(buf *bytes.Buffer) {
	buf.WriteString(`  <style>
    .edge { stroke: #9ca3af; stroke-width: 1.5; }
    .node { fill: #ffffff; stroke: #374151; stroke-width: 1.5; }
    .label { fill: #111827; text-anchor: middle; dominant-baseline: central; font-family: ui-monospace, monospace; }
  </style>
`)
}

func xmlEscape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

package treefile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/treelinehq/treeline/pkg/layout"
	"github.com/treelinehq/treeline/pkg/tree"
)

// =============================================================================
// Layout - Computed Layout Format
// =============================================================================

// Layout is the serialization format for computed layouts: every node with
// its grid position, the edges between them, and the grid extents. It is
// what the API returns, what the cache stores, and what the JSON output
// format writes.
type Layout struct {
	Width int `json:"width" bson:"width"`
	Depth int `json:"depth" bson:"depth"`

	Nodes []PlacedNode `json:"nodes" bson:"nodes"`
	Edges []Edge       `json:"edges,omitempty" bson:"edges,omitempty"`

	Stats *LayoutStats `json:"stats,omitempty" bson:"stats,omitempty"`
}

// PlacedNode is a node with its final grid position. X and Y are unit grid
// coordinates: renderers scale them to pixels or character cells.
type PlacedNode struct {
	ID     string `json:"id" bson:"id"`
	Label  string `json:"label,omitempty" bson:"label,omitempty"`
	Parent string `json:"parent,omitempty" bson:"parent,omitempty"`
	X      int    `json:"x" bson:"x"`
	Y      int    `json:"y" bson:"y"`
}

// Edge is a parent-to-child link.
type Edge struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

// LayoutStats mirrors the layout engine's work counters; callers use it to
// report computation cost.
type LayoutStats struct {
	Nodes        int `json:"nodes" bson:"nodes"`
	ContourSteps int `json:"contour_steps" bson:"contour_steps"`
}

// =============================================================================
// Result → Layout Conversion
// =============================================================================

// FromResult flattens a computed layout into its serialization format.
// Nodes appear in pre-order; labels are taken from src when it carries the
// node, falling back to the ID. Edges follow the node order, parent first.
func FromResult(res *layout.Result, src *tree.Tree) Layout {
	out := Layout{
		Width: res.Width,
		Depth: res.Depth,
		Nodes: make([]PlacedNode, 0, len(res.Index)),
		Stats: &LayoutStats{
			Nodes:        res.Stats.Nodes,
			ContourSteps: res.Stats.ContourSteps,
		},
	}

	stack := []*layout.Node{res.Root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		pn := PlacedNode{ID: n.ID, X: n.X, Y: n.Y}
		if n.Parent != nil {
			pn.Parent = n.Parent.ID
			out.Edges = append(out.Edges, Edge{From: n.Parent.ID, To: n.ID})
		}
		if src != nil {
			if tn, ok := src.Node(n.ID); ok {
				pn.Label = tn.Label()
			}
		}
		out.Nodes = append(out.Nodes, pn)

		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
	return out
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// A layout without nodes, or with a node placed outside the declared
// width-by-depth grid, is rejected. Renderers index by position, so
// out-of-grid coordinates must never reach them.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if len(l.Nodes) == 0 {
		return Layout{}, fmt.Errorf("layout must contain nodes")
	}
	for _, n := range l.Nodes {
		if n.X < 0 || n.X >= l.Width || n.Y < 0 || n.Y >= l.Depth {
			return Layout{}, fmt.Errorf("node %q placed at (%d, %d) outside %dx%d grid",
				n.ID, n.X, n.Y, l.Width, l.Depth)
		}
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}

package layout

import "errors"

var (
	// ErrEmptyTree is returned by [Compute] when the source has no root.
	// There is no coordinate to assign.
	ErrEmptyTree = errors.New("empty tree")

	// ErrNotATree is returned by [Compute] when a node is reachable twice -
	// either the input contains a cycle or a node is shared between
	// branches. Both violate the rooted-tree contract.
	ErrNotATree = errors.New("input is not a tree")
)

// minSeparation is the horizontal gap enforced between adjacent subtrees at
// their closest point, and between adjacent siblings.
const minSeparation = 1

// Source describes a rooted ordered tree to be laid out. The layout engine
// never mutates the source; it mirrors the structure into its own [Node]
// tree. *tree.Tree satisfies Source.
type Source interface {
	// Root returns the ID of the root node, or an error when the tree is
	// empty or malformed.
	Root() (string, error)

	// Children returns the ordered child IDs of the node, left to right.
	// A leaf returns an empty slice.
	Children(id string) []string
}

// Stats reports the work done by a layout computation. ContourSteps grows
// linearly with the node count; the package tests rely on that to pin the
// asymptotic bound.
type Stats struct {
	Nodes         int
	ContourSteps  int
	SubtreeShifts int
}

// Result is a computed layout: the laid-out node tree plus an index by ID
// and the grid dimensions.
type Result struct {
	Root  *Node
	Index map[string]*Node

	// Width and Depth are the grid extents: final x values lie in
	// [0, Width) and y values in [0, Depth).
	Width int
	Depth int

	Stats Stats
}

// layouter carries per-computation state. Each call to Compute uses its
// own layouter, so concurrent computations on distinct sources are safe.
type layouter struct {
	stats Stats
}

// Compute assigns integer (x, y) grid coordinates to every node of src.
//
// y is the node's depth (root = 0). x is assigned by the classic two-pass
// linear-time algorithm: a post-order pass places each subtree relative to
// its own root using contour walks, threads and deferred modifiers, and a
// pre-order pass resolves the deferred modifiers into absolute positions.
// The result satisfies, for every valid input:
//
//   - all coordinates are integers, with the leftmost node at x = 0
//   - nodes at the same depth keep their left-to-right traversal order
//     with strictly increasing x
//   - adjacent subtrees are exactly one unit apart at their closest point
//   - a subtree's relative coordinates depend only on its own shape
//   - each parent is centered over its outermost children (midpoints on an
//     odd span round down)
//
// Compute returns ErrEmptyTree when src has no root and ErrNotATree when a
// node is reachable more than once.
func Compute(src Source) (*Result, error) {
	root, count, err := build(src)
	if err != nil {
		return nil, err
	}

	l := &layouter{}
	l.stats.Nodes = count

	l.firstWalk(root)
	res := l.secondWalk(root, count)
	res.Stats = l.stats
	return res, nil
}

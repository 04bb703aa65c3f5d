// Package layout computes tidy drawings of rooted ordered trees: an
// integer (x, y) grid position for every node, in time linear in the node
// count.
//
// The algorithm is the contour-based two-pass method in its fully general
// n-ary form. A post-order pass places every subtree relative to its own
// root: sibling subtrees are separated by walking their facing contours in
// lockstep, exhausted contours are threaded into their deeper neighbour so
// no level is ever scanned twice, and subtree moves are recorded as a
// deferred modifier on the subtree root rather than applied node by node.
// When a conflict is attributed to a non-adjacent sibling, the shift is
// spread evenly across the siblings in between. A pre-order pass then folds
// the deferred modifiers into absolute coordinates.
//
// # Aesthetics
//
// The computed drawing is planar and balanced:
//
//   - edges never cross; nodes at one depth keep their traversal order
//   - nodes of equal depth share a row (y = depth)
//   - adjacent subtrees touch at a one-unit gap, so drawings are as narrow
//     as those constraints allow
//   - parents are centered over their outermost children
//   - a subtree is drawn the same way wherever it appears
//
// Midpoints of even-width spans round down, keeping every coordinate an
// exact integer; the compensating half unit is never materialized.
//
// # Usage
//
//	t := tree.New()
//	t.AddNode(tree.Node{ID: "root"})
//	t.AddNode(tree.Node{ID: "a", Parent: "root"})
//	t.AddNode(tree.Node{ID: "b", Parent: "root"})
//
//	res, err := layout.Compute(t)
//	if err != nil {
//	    return err
//	}
//	pos := res.Index["a"] // pos.X, pos.Y
//
// # Limits
//
// The input must be a finite rooted tree: cyclic structures and nodes
// shared between branches are rejected with ErrNotATree, an empty source
// with ErrEmptyTree. General graphs and DAGs are out of scope.
//
// # Concurrency
//
// Compute is a pure function of its source; concurrent calls on distinct
// sources are safe. A Result is safe for concurrent reads.
package layout

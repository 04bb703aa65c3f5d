package layout

// Node is one node of the laid-out tree. The layout engine owns the Node
// tree it builds; callers keep it as the result. X and Y are final
// coordinates on the unit grid: Y is the depth (root = 0) and X is assigned
// so that the invariants documented in the package comment hold.
type Node struct {
	ID       string
	X, Y     int
	Children []*Node
	Parent   *Node

	// First-pass scratch. prelim is the tentative x relative to the node's
	// own subtree frame; mod is the deferred offset inherited by all
	// descendants. thread and ancestor are contour-walk shortcuts and are
	// stale once the second pass has run.
	prelim   int
	mod      int
	idx      int
	thread   *Node
	ancestor *Node

	// Pending even-spacing distribution for this node's children, encoded
	// as a difference array over child indices. Allocated on the first
	// conflict that spans intermediate siblings, consumed by executeShifts.
	stepDelta []int
	bias      []int

	// defaultAncestor is the fallback conflict attribution during the
	// left-to-right merge of this node's children.
	defaultAncestor *Node
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// leftSibling returns the child immediately left of n under the same
// parent, or nil for a leftmost child or the root.
func (n *Node) leftSibling() *Node {
	if n.Parent == nil || n.idx == 0 {
		return nil
	}
	return n.Parent.Children[n.idx-1]
}

// build constructs the Node tree mirroring src: one Node per source node,
// y set to depth, ancestor defaulting to self, everything else zero. The
// walk is iterative and tracks visited IDs, so cyclic or node-sharing
// inputs fail with ErrNotATree instead of looping.
func build(src Source) (*Node, int, error) {
	rootID, err := src.Root()
	if err != nil {
		return nil, 0, ErrEmptyTree
	}

	root := &Node{ID: rootID}
	root.ancestor = root

	seen := map[string]bool{rootID: true}
	count := 1
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		kids := src.Children(n.ID)
		if len(kids) == 0 {
			continue
		}
		n.Children = make([]*Node, len(kids))
		for i, id := range kids {
			if seen[id] {
				return nil, 0, ErrNotATree
			}
			seen[id] = true
			count++
			c := &Node{ID: id, Y: n.Y + 1, Parent: n, idx: i}
			c.ancestor = c
			n.Children[i] = c
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
	return root, count, nil
}

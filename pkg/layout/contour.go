package layout

// A side selects which silhouette of a subtree a contour traces.
type side int

const (
	leftSide side = iota
	rightSide
)

// contour walks one frontier of a subtree level by level, following the
// extreme child edge where one exists and the thread where it does not.
// mods carries the sum of modifiers of every node on the path so far,
// current node included, so the effective position of the current node is
// available without rescanning the path.
type contour struct {
	node *Node
	mods int
}

func newContour(n *Node) contour {
	return contour{node: n, mods: n.mod}
}

// peek returns the next node on the frontier without moving: the leftmost
// (or rightmost) child when the node has children, the thread otherwise,
// and nil at the tree's natural edge.
func (c contour) peek(s side) *Node {
	if len(c.node.Children) > 0 {
		if s == leftSide {
			return c.node.Children[0]
		}
		return c.node.Children[len(c.node.Children)-1]
	}
	return c.node.thread
}

// advance descends one level along the frontier. The caller must have
// checked peek(s) != nil. Crossing a thread picks up the modifier recorded
// on the threaded node, which keeps pos exact across subtree boundaries.
func (c *contour) advance(s side) {
	c.node = c.peek(s)
	c.mods += c.node.mod
}

// pos returns the effective x of the current node: its preliminary x plus
// the modifiers accumulated strictly above it on the contour path.
func (c contour) pos() int {
	return c.node.prelim + c.mods - c.node.mod
}

package layout

// firstWalk runs the post-order placement pass: leaves are placed against
// their left sibling, each subtree is merged into its siblings' block via
// apportion, pending conflict shifts are spread across intermediate
// siblings, and every parent is centered over its outermost children.
//
// The traversal uses an explicit stack so pathologically deep trees (depth
// close to the node count) cannot exhaust the call stack.
func (l *layouter) firstWalk(root *Node) {
	type frame struct {
		n      *Node
		placed bool
	}
	stack := []frame{{n: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !f.placed {
			stack = append(stack, frame{n: f.n, placed: true})
			for i := len(f.n.Children) - 1; i >= 0; i-- {
				stack = append(stack, frame{n: f.n.Children[i]})
			}
			continue
		}

		l.place(f.n)
	}
}

// place positions a node relative to its own subtree frame once all of its
// children are placed, then merges it against its left siblings.
func (l *layouter) place(n *Node) {
	if n.IsLeaf() {
		if w := n.leftSibling(); w != nil {
			n.prelim = w.prelim + minSeparation
		}
	} else {
		l.executeShifts(n)

		first := n.Children[0]
		last := n.Children[len(n.Children)-1]
		mid := (first.prelim + last.prelim) / 2 // prelims are non-negative; floors on odd spans

		if w := n.leftSibling(); w != nil {
			n.prelim = w.prelim + minSeparation
			n.mod = n.prelim - mid
		} else {
			n.prelim = mid
		}
	}

	if n.Parent == nil {
		return
	}
	if n.idx == 0 {
		n.Parent.defaultAncestor = n
		return
	}
	l.apportion(n)
}

// executeShifts applies the distribution queued by moveSubtree to n's
// children in a single left-to-right sweep: prefix-summing the difference
// array yields each child's total share, so the pass is linear in the
// number of children however many conflicts were recorded.
func (l *layouter) executeShifts(n *Node) {
	if n.stepDelta == nil {
		return
	}
	step, cur := 0, 0
	for i, c := range n.Children {
		step += n.stepDelta[i]
		cur += step + n.bias[i]
		if cur != 0 {
			c.prelim += cur
			c.mod += cur
		}
	}
	n.stepDelta, n.bias = nil, nil
}

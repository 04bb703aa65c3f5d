package layout

// secondWalk resolves final coordinates: a pre-order pass adds each node's
// accumulated ancestor modifiers to its preliminary x. Only additions
// happen here - all conflict resolution is finished by the first walk.
// A final sweep shifts the whole layout so the leftmost node sits at x = 0.
func (l *layouter) secondWalk(root *Node, count int) *Result {
	res := &Result{
		Root:  root,
		Index: make(map[string]*Node, count),
	}

	type frame struct {
		n    *Node
		mods int
	}
	minX, maxX, maxY := 0, 0, 0
	stack := []frame{{n: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := f.n
		n.X = n.prelim + f.mods
		res.Index[n.ID] = n

		if n.X < minX {
			minX = n.X
		}
		if n.X > maxX {
			maxX = n.X
		}
		if n.Y > maxY {
			maxY = n.Y
		}

		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{n: n.Children[i], mods: f.mods + n.mod})
		}
	}

	if minX != 0 {
		for _, n := range res.Index {
			n.X -= minX
		}
	}
	res.Width = maxX - minX + 1
	res.Depth = maxY + 1
	return res
}

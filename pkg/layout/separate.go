package layout

// apportion separates v's subtree from the already-merged block of its left
// siblings. It walks the right contour of the merged block and the left
// contour of v's subtree in lockstep, one level at a time, shifting v right
// whenever the gap at a level drops below one unit. The walk stops at the
// shallower frontier; levels below that cannot conflict.
//
// After the walk, whichever side ended first is threaded into the deeper
// side so that later walks cross the boundary in O(1), with the modifier
// difference between the two sides recorded on the threaded node.
func (l *layouter) apportion(v *Node) {
	w := v.leftSibling()
	if w == nil {
		return
	}
	parent := v.Parent

	ip, op := newContour(v), newContour(v)                  // inner and outer right-side contours
	im, om := newContour(w), newContour(parent.Children[0]) // inner and outer left-side contours

	for im.peek(rightSide) != nil && ip.peek(leftSide) != nil {
		im.advance(rightSide)
		ip.advance(leftSide)
		om.advance(leftSide)
		op.advance(rightSide)
		l.stats.ContourSteps++

		op.node.ancestor = v

		if shift := im.pos() - ip.pos() + 1; shift > 0 {
			l.moveSubtree(l.ancestorOf(im.node, v), v, shift)
			ip.mods += shift
			op.mods += shift
		}
	}

	// Thread the exhausted side into the survivor so future contour walks
	// continue past its natural depth.
	if im.peek(rightSide) != nil && op.peek(rightSide) == nil {
		op.node.thread = im.peek(rightSide)
		op.node.mod += im.mods - op.mods
	}
	if ip.peek(leftSide) != nil && om.peek(leftSide) == nil {
		om.node.thread = ip.peek(leftSide)
		om.node.mod += ip.mods - om.mods
		parent.defaultAncestor = v
	}
}

// ancestorOf resolves which sibling subtree a conflicting contour node
// belongs to. The redirectable ancestor reference answers in O(1) when it
// still points into the current sibling group; otherwise the conflict is
// attributed to the default ancestor.
func (l *layouter) ancestorOf(n, v *Node) *Node {
	if n.ancestor.Parent == v.Parent {
		return n.ancestor
	}
	return v.Parent.defaultAncestor
}

// moveSubtree shifts wp's subtree right by shift: two integer updates
// regardless of subtree size, which is what keeps the whole pass linear.
// The shift is additionally queued for even distribution across the
// siblings strictly between wm and wp; executeShifts applies it in one
// sweep once all of the parent's children are merged.
func (l *layouter) moveSubtree(wm, wp *Node, shift int) {
	l.stats.SubtreeShifts++

	a, b := wm.idx, wp.idx
	gaps := b - a
	portion, rem := shift/gaps, shift%gaps

	p := wp.Parent
	if gaps > 1 {
		if p.stepDelta == nil {
			p.stepDelta = make([]int, len(p.Children))
			p.bias = make([]int, len(p.Children))
		}
		// Each intermediate sibling j moves by roughly (j-a)/gaps of the
		// shift: a ramp of per-gap increments, with the remainder's extra
		// units given to the gaps nearest wp. Encoded as a difference
		// array so a conflict costs O(1) no matter how many siblings it
		// spans.
		p.stepDelta[a+1] += portion
		p.stepDelta[b] -= portion
		if rem > 0 {
			p.stepDelta[b-rem+1]++
			p.stepDelta[b]--
		}
		last := (gaps-1)*portion + max(rem-1, 0)
		p.bias[b] -= last
	}

	wp.prelim += shift
	wp.mod += shift
}

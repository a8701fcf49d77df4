package outline

// computeVisible walks the whole tree, skipping the contents of folded
// subtrees.
func (t *Tree) computeVisible() []NodeID {
	out := make([]NodeID, 0, len(t.nodes))
	return t.appendVisible(t.root, out)
}

func (t *Tree) appendVisible(n *Node, out []NodeID) []NodeID {
	for _, c := range n.children {
		out = append(out, c.ID)
		if !c.Folded {
			out = t.appendVisible(c, out)
		}
	}
	return out
}

// isShown reports whether every ancestor of the node is unfolded.
func (t *Tree) isShown(id NodeID) bool {
	n := t.nodes[id]
	if n == nil || n == t.root {
		return false
	}
	for p := t.nodes[n.parent]; p != nil && p != t.root; p = t.nodes[p.parent] {
		if p.Folded {
			return false
		}
	}
	return true
}

// SetFolded sets the fold flag, optionally on the whole subtree.
// Folding a leaf is allowed and has no visible effect.
func (t *Tree) SetFolded(id NodeID, folded, recursive bool) bool {
	n := t.nodes[id]
	if n == nil || n == t.root {
		return false
	}
	if recursive {
		var apply func(*Node)
		apply = func(m *Node) {
			m.Folded = folded
			for _, c := range m.children {
				apply(c)
			}
		}
		apply(n)
	} else {
		n.Folded = folded
	}
	t.markDirty(id)
	return true
}

// FoldToLevel folds every node with children at or below level l and
// unfolds everything above it. FoldToLevel(1) shows only top-level
// nodes; large l behaves like UnfoldAll.
func (t *Tree) FoldToLevel(l int) {
	t.Walk(func(n *Node, level int) bool {
		if n.HasChildren() {
			n.Folded = level >= l
		} else {
			n.Folded = false
		}
		return true
	})
	t.markDirty(t.root.ID)
}

func (t *Tree) UnfoldAll() {
	t.Walk(func(n *Node, level int) bool {
		n.Folded = false
		return true
	})
	t.markDirty(t.root.ID)
}

// FocusMode folds the document to level l, then reopens the path to
// id so the node and its ancestors stay visible.
func (t *Tree) FocusMode(id NodeID, l int) bool {
	n := t.nodes[id]
	if n == nil || n == t.root {
		return false
	}
	t.FoldToLevel(l)
	for p := t.nodes[n.parent]; p != nil && p != t.root; p = t.nodes[p.parent] {
		p.Folded = false
	}
	return true
}

// Visible returns the cached visible sequence, recomputing only the
// spans of subtrees dirtied since the last call. With nothing dirty
// it returns the cache untouched.
func (e *Engine) Visible() []NodeID {
	t := e.tree
	if e.visible == nil {
		e.visible = t.computeVisible()
		e.recomputes++
		clear(t.dirty)
		return e.visible
	}
	if len(t.dirty) == 0 {
		return e.visible
	}
	if _, rootDirty := t.dirty[t.root.ID]; rootDirty {
		e.visible = t.computeVisible()
		e.recomputes++
		clear(t.dirty)
		return e.visible
	}
	for id := range t.dirty {
		e.spliceVisible(id)
	}
	clear(t.dirty)
	return e.visible
}

// Recomputes counts full visible-sequence rebuilds, exposed so cache
// behavior is observable.
func (e *Engine) Recomputes() int { return e.recomputes }

// spliceVisible replaces the cached span of one subtree with a fresh
// computation. Roots that are hidden under a fold need no work; their
// span appears when the folded ancestor is itself refreshed.
func (e *Engine) spliceVisible(id NodeID) {
	t := e.tree
	n := t.nodes[id]
	pos := -1
	for i, v := range e.visible {
		if v == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		// Not on screen before the change. If it is shown now the
		// cache is stale in a way splicing cannot fix; rebuild.
		if n != nil && t.isShown(id) {
			e.visible = t.computeVisible()
			e.recomputes++
		}
		return
	}
	span := 1
	for pos+span < len(e.visible) && t.IsAncestor(id, e.visible[pos+span]) {
		span++
	}
	var fresh []NodeID
	if n != nil && t.isShown(id) {
		fresh = append(fresh, id)
		if !n.Folded {
			fresh = t.appendVisible(n, fresh)
		}
	}
	next := make([]NodeID, 0, len(e.visible)-span+len(fresh))
	next = append(next, e.visible[:pos]...)
	next = append(next, fresh...)
	next = append(next, e.visible[pos+span:]...)
	e.visible = next
}

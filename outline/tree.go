package outline

// attach inserts n under parent at index, clamping index to the
// sibling range.
func (t *Tree) attach(parent *Node, index int, n *Node) {
	if index < 0 || index > len(parent.children) {
		index = len(parent.children)
	}
	parent.children = append(parent.children, nil)
	copy(parent.children[index+1:], parent.children[index:])
	parent.children[index] = n
	n.parent = parent.ID
}

// detach removes n from its parent's child list without touching the
// id index. Returns the old parent and position.
func (t *Tree) detach(n *Node) (*Node, int) {
	p := t.nodes[n.parent]
	if p == nil {
		return nil, -1
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			n.parent = 0
			return p, i
		}
	}
	return nil, -1
}

// unregister drops the whole subtree from the id index.
func (t *Tree) unregister(n *Node) {
	delete(t.nodes, n.ID)
	for _, c := range n.children {
		t.unregister(c)
	}
}

// InsertAfter creates a new node as the next sibling of ref.
// A zero ref appends a top-level node.
func (t *Tree) InsertAfter(ref NodeID, text string, kind Kind, todo TodoState) (NodeID, bool) {
	parent := t.root
	index := len(t.root.children)
	if ref != 0 {
		r := t.nodes[ref]
		if r == nil || r == t.root {
			return 0, false
		}
		parent = t.nodes[r.parent]
		if parent == nil {
			return 0, false
		}
		index = t.IndexOf(ref) + 1
	}
	n := t.newNode(text, kind, todo)
	t.attach(parent, index, n)
	t.markDirty(parent.ID)
	t.touch()
	return n.ID, true
}

// InsertChild creates a new node as the last child of parent.
// A zero parent appends under the root.
func (t *Tree) InsertChild(parent NodeID, text string, kind Kind, todo TodoState) (NodeID, bool) {
	p := t.root
	if parent != 0 {
		p = t.nodes[parent]
		if p == nil {
			return 0, false
		}
	}
	n := t.newNode(text, kind, todo)
	t.attach(p, len(p.children), n)
	t.markDirty(p.ID)
	t.touch()
	return n.ID, true
}

// Remove deletes the node and its whole subtree. Returns the parent
// id as the changed root.
func (t *Tree) Remove(id NodeID) (NodeID, bool) {
	n := t.nodes[id]
	if n == nil || n == t.root {
		return 0, false
	}
	p, _ := t.detach(n)
	if p == nil {
		return 0, false
	}
	t.unregister(n)
	t.markDirty(p.ID)
	t.touch()
	return p.ID, true
}

// Move reattaches id under parent at index. Rejected when the target
// parent sits inside the moved subtree.
func (t *Tree) Move(id, parent NodeID, index int) bool {
	n := t.nodes[id]
	p := t.nodes[parent]
	if n == nil || p == nil || n == t.root {
		return false
	}
	if p == n || t.IsAncestor(id, parent) {
		return false
	}
	old, oldIdx := t.detach(n)
	if old == nil {
		return false
	}
	if old == p && oldIdx < index {
		index--
	}
	t.attach(p, index, n)
	// The dirty root must cover both the old and the new position, or
	// the visible-cache splice leaves stale entries behind.
	switch {
	case old == p, t.IsAncestor(old.ID, p.ID):
		t.markDirty(old.ID)
	case t.IsAncestor(p.ID, old.ID):
		t.markDirty(p.ID)
	default:
		t.markDirty(t.commonAncestor(old.ID, p.ID))
	}
	t.touch()
	return true
}

func (t *Tree) commonAncestor(a, b NodeID) NodeID {
	seen := make(map[NodeID]struct{})
	for n := t.nodes[a]; n != nil; n = t.nodes[n.parent] {
		seen[n.ID] = struct{}{}
	}
	for n := t.nodes[b]; n != nil; n = t.nodes[n.parent] {
		if _, ok := seen[n.ID]; ok {
			return n.ID
		}
	}
	return t.root.ID
}

func (t *Tree) SetText(id NodeID, text string) bool {
	n := t.nodes[id]
	if n == nil || n == t.root {
		return false
	}
	if n.Text == text {
		return true
	}
	n.Text = text
	t.markDirty(id)
	t.touch()
	return true
}

// SetTodo sets the checkbox state. TodoNone turns the node back into
// a plain item; any other state turns an item into a todo.
func (t *Tree) SetTodo(id NodeID, state TodoState) bool {
	n := t.nodes[id]
	if n == nil || n == t.root {
		return false
	}
	if state == TodoNone {
		n.Kind = KindItem
	} else {
		n.Kind = KindTodo
	}
	n.Todo = state
	t.markDirty(id)
	t.touch()
	return true
}

// moveRecord captures one applied structural move, for history.
type moveRecord struct {
	id         NodeID
	fromParent NodeID
	fromIndex  int
	toParent   NodeID
	toIndex    int
}

// topLevel drops ids that have an ancestor in the same set; those move
// with their ancestor.
func (t *Tree) topLevel(ids []NodeID) []NodeID {
	set := make(map[NodeID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	out := ids[:0:0]
	for _, id := range ids {
		n := t.nodes[id]
		if n == nil {
			continue
		}
		covered := false
		for p := n.parent; p != 0; {
			if _, ok := set[p]; ok {
				covered = true
				break
			}
			pn := t.nodes[p]
			if pn == nil {
				break
			}
			p = pn.parent
		}
		if !covered {
			out = append(out, id)
		}
	}
	return out
}

// Indent makes each id a child of its previous sibling, in document
// order. Ids without a previous sibling are skipped silently.
func (t *Tree) Indent(ids []NodeID) []moveRecord {
	var recs []moveRecord
	for _, id := range t.topLevel(t.DocumentOrder(ids)) {
		n := t.nodes[id]
		if n == nil {
			continue
		}
		idx := t.IndexOf(id)
		if idx <= 0 {
			continue
		}
		p := t.nodes[n.parent]
		prev := p.children[idx-1]
		rec := moveRecord{id: id, fromParent: p.ID, fromIndex: idx, toParent: prev.ID, toIndex: len(prev.children)}
		if t.Move(id, prev.ID, len(prev.children)) {
			recs = append(recs, rec)
		}
	}
	return recs
}

// Outdent makes each id the next sibling of its parent, in document
// order. Top-level ids are skipped silently.
func (t *Tree) Outdent(ids []NodeID) []moveRecord {
	var recs []moveRecord
	for _, id := range t.topLevel(t.DocumentOrder(ids)) {
		n := t.nodes[id]
		if n == nil {
			continue
		}
		p := t.nodes[n.parent]
		if p == nil || p == t.root {
			continue
		}
		gp := t.nodes[p.parent]
		if gp == nil {
			continue
		}
		toIdx := t.IndexOf(p.ID) + 1
		rec := moveRecord{id: id, fromParent: p.ID, fromIndex: t.IndexOf(id), toParent: gp.ID, toIndex: toIdx}
		if t.Move(id, gp.ID, toIdx) {
			recs = append(recs, rec)
		}
	}
	return recs
}

// MoveUp swaps the node with its previous sibling, subtree and all.
func (t *Tree) MoveUp(id NodeID) (moveRecord, bool) {
	idx := t.IndexOf(id)
	if idx <= 0 {
		return moveRecord{}, false
	}
	n := t.nodes[id]
	rec := moveRecord{id: id, fromParent: n.parent, fromIndex: idx, toParent: n.parent, toIndex: idx - 1}
	if !t.Move(id, n.parent, idx-1) {
		return moveRecord{}, false
	}
	return rec, true
}

// MoveDown swaps the node with its next sibling.
func (t *Tree) MoveDown(id NodeID) (moveRecord, bool) {
	n := t.nodes[id]
	if n == nil {
		return moveRecord{}, false
	}
	idx := t.IndexOf(id)
	p := t.nodes[n.parent]
	if idx < 0 || p == nil || idx >= len(p.children)-1 {
		return moveRecord{}, false
	}
	rec := moveRecord{id: id, fromParent: n.parent, fromIndex: idx, toParent: n.parent, toIndex: idx + 1}
	if !t.Move(id, n.parent, idx+2) {
		return moveRecord{}, false
	}
	return rec, true
}

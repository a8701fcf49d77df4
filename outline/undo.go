package outline

// DefaultHistoryLimit bounds the undo stack when no limit is
// configured.
const DefaultHistoryLimit = 50

// Snapshot is a detached copy of a subtree, keyed by the original
// ids. Ids are never reissued, so a snapshot can be grafted back as
// long as its nodes are absent from the tree.
type Snapshot struct {
	ID       NodeID
	Text     string
	Kind     Kind
	Todo     TodoState
	Folded   bool
	Children []*Snapshot
}

func (t *Tree) snapshot(n *Node) *Snapshot {
	s := &Snapshot{ID: n.ID, Text: n.Text, Kind: n.Kind, Todo: n.Todo, Folded: n.Folded}
	for _, c := range n.children {
		s.Children = append(s.Children, t.snapshot(c))
	}
	return s
}

// SnapshotOf copies the subtree rooted at id, nil for unknown ids.
func (t *Tree) SnapshotOf(id NodeID) *Snapshot {
	n := t.nodes[id]
	if n == nil {
		return nil
	}
	return t.snapshot(n)
}

// restore grafts a snapshot under parent at index, re-registering the
// original ids. The caller guarantees the ids are absent.
func (t *Tree) restore(s *Snapshot, parent *Node, index int) *Node {
	n := &Node{ID: s.ID, Text: s.Text, Kind: s.Kind, Todo: s.Todo, Folded: s.Folded}
	t.nodes[n.ID] = n
	for _, cs := range s.Children {
		t.restore(cs, n, len(n.children))
	}
	t.attach(parent, index, n)
	return n
}

type changeKind int

const (
	changeFields changeKind = iota
	changePlace
)

// nodeState is one side of a change: either the field values of a
// node that stays in place, or the placement and content of a whole
// subtree.
type nodeState struct {
	text string
	kind Kind
	todo TodoState

	present bool
	parent  NodeID
	index   int
	snap    *Snapshot
}

type change struct {
	kind   changeKind
	id     NodeID
	before nodeState
	after  nodeState
}

func fieldChange(n *Node, text string, kind Kind, todo TodoState) change {
	return change{
		kind:   changeFields,
		id:     n.ID,
		before: nodeState{text: n.Text, kind: n.Kind, todo: n.Todo},
		after:  nodeState{text: text, kind: kind, todo: todo},
	}
}

func placeChange(id NodeID, before, after nodeState) change {
	return change{kind: changePlace, id: id, before: before, after: after}
}

func placed(parent NodeID, index int, snap *Snapshot) nodeState {
	return nodeState{present: true, parent: parent, index: index, snap: snap}
}

func absent() nodeState {
	return nodeState{present: false}
}

// Action is one reversible user step. A batched command (indent over
// a multi-selection, a split, a merge) is a single action no matter
// how many nodes it touched.
type Action struct {
	changes []change
}

// applyState drives one change to the given side. The caller has
// already validated the action with canApply, so referenced nodes are
// guaranteed to exist by the time each change runs.
func (t *Tree) applyState(ch change, st nodeState) {
	switch ch.kind {
	case changeFields:
		n := t.nodes[ch.id]
		n.Text = st.text
		n.Kind = st.kind
		n.Todo = st.todo
		t.markDirty(ch.id)
		t.touch()
	case changePlace:
		cur := t.nodes[ch.id]
		if cur != nil {
			old, _ := t.detach(cur)
			t.unregister(cur)
			if old != nil {
				t.markDirty(old.ID)
			}
		}
		if !st.present {
			t.touch()
			return
		}
		p := t.nodes[st.parent]
		t.restore(st.snap, p, st.index)
		t.markDirty(p.ID)
		t.touch()
	}
}

// canApply checks every change of an action against the current tree
// before anything is mutated, so a stale entry is dropped whole
// instead of applied halfway or, worse, destroying the live node it
// detaches before a failed restore. Subtrees the action itself
// restores or removes along the way count toward later checks: the
// undo of a merge restores the merged node first and then reparents
// its children under the just-restored id.
func (t *Tree) canApply(a *Action, undo bool) bool {
	present := map[NodeID]bool{}
	exists := func(id NodeID) bool {
		if v, ok := present[id]; ok {
			return v
		}
		return t.nodes[id] != nil
	}
	var markGone func(id NodeID)
	markGone = func(id NodeID) {
		if n := t.nodes[id]; n != nil {
			for _, c := range n.children {
				markGone(c.ID)
			}
		}
		present[id] = false
	}
	var markRestored func(s *Snapshot)
	markRestored = func(s *Snapshot) {
		present[s.ID] = true
		for _, c := range s.Children {
			markRestored(c)
		}
	}
	check := func(ch change, st nodeState) bool {
		switch ch.kind {
		case changeFields:
			return exists(ch.id)
		case changePlace:
			markGone(ch.id)
			if !st.present {
				return true
			}
			if st.snap == nil || !exists(st.parent) {
				return false
			}
			markRestored(st.snap)
			return true
		}
		return false
	}
	if undo {
		for i := len(a.changes) - 1; i >= 0; i-- {
			if !check(a.changes[i], a.changes[i].before) {
				return false
			}
		}
		return true
	}
	for _, ch := range a.changes {
		if !check(ch, ch.after) {
			return false
		}
	}
	return true
}

// History is the bounded undo/redo stack. Recording evicts the oldest
// entry past the limit and always clears the redo side.
type History struct {
	limit int
	undos []*Action
	redos []*Action
}

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

func (h *History) Record(a *Action) {
	if a == nil || len(a.changes) == 0 {
		return
	}
	h.undos = append(h.undos, a)
	if len(h.undos) > h.limit {
		h.undos = h.undos[1:]
	}
	h.redos = nil
}

func (h *History) CanUndo() bool { return len(h.undos) > 0 }
func (h *History) CanRedo() bool { return len(h.redos) > 0 }

// Undo reverses the newest action. An entry whose referenced nodes
// are gone is dropped instead of applied; the rest of the stack stays
// usable.
func (h *History) Undo(t *Tree) bool {
	if len(h.undos) == 0 {
		return false
	}
	a := h.undos[len(h.undos)-1]
	h.undos = h.undos[:len(h.undos)-1]
	if !t.canApply(a, true) {
		return false
	}
	for i := len(a.changes) - 1; i >= 0; i-- {
		t.applyState(a.changes[i], a.changes[i].before)
	}
	h.redos = append(h.redos, a)
	return true
}

// Redo replays the newest undone action.
func (h *History) Redo(t *Tree) bool {
	if len(h.redos) == 0 {
		return false
	}
	a := h.redos[len(h.redos)-1]
	h.redos = h.redos[:len(h.redos)-1]
	if !t.canApply(a, false) {
		return false
	}
	for _, ch := range a.changes {
		t.applyState(ch, ch.after)
	}
	h.undos = append(h.undos, a)
	return true
}

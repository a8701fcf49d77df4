package outline

// StartEdit enters Editing mode on the focused node, seeding the
// draft with its text and the cursor at the end. With an empty
// document it first creates an empty top-level item.
func (e *Engine) StartEdit() bool {
	if e.mode == ModeEditing {
		return true
	}
	f := e.ensureFocus()
	if f == 0 {
		id, ok := e.tree.InsertAfter(0, "", KindItem, TodoNone)
		if !ok {
			return false
		}
		e.record(placeChange(id, absent(),
			placed(e.tree.Node(id).Parent(), e.tree.IndexOf(id), e.tree.SnapshotOf(id))))
		e.sel.SetFocus(id)
		f = id
	}
	return e.StartEditAt(f)
}

// StartEditAt enters Editing mode on an explicit node (double click).
func (e *Engine) StartEditAt(id NodeID) bool {
	n := e.tree.Node(id)
	if n == nil || n == e.tree.Root() {
		return false
	}
	e.sel.SetFocus(id)
	e.mode = ModeEditing
	e.editID = id
	e.draft = []rune(n.Text)
	e.cursor = len(e.draft)
	return true
}

// CommitEdit writes the draft back to the node and returns to Normal
// mode. Unchanged text records nothing.
func (e *Engine) CommitEdit() {
	if e.mode != ModeEditing {
		return
	}
	n := e.tree.Node(e.editID)
	if n != nil && n.Text != string(e.draft) {
		e.record(fieldChange(n, string(e.draft), n.Kind, n.Todo))
		e.tree.SetText(e.editID, string(e.draft))
	}
	e.mode = ModeNormal
	e.editID = 0
	e.draft = nil
	e.cursor = 0
}

// CancelEdit discards the draft and returns to Normal mode.
func (e *Engine) CancelEdit() {
	e.mode = ModeNormal
	e.editID = 0
	e.draft = nil
	e.cursor = 0
}

func (e *Engine) InsertRune(r rune) {
	if e.mode != ModeEditing {
		return
	}
	e.draft = append(e.draft, 0)
	copy(e.draft[e.cursor+1:], e.draft[e.cursor:])
	e.draft[e.cursor] = r
	e.cursor++
}

func (e *Engine) CursorLeft() {
	if e.cursor > 0 {
		e.cursor--
	}
}

func (e *Engine) CursorRight() {
	if e.cursor < len(e.draft) {
		e.cursor++
	}
}

func (e *Engine) CursorHome() { e.cursor = 0 }
func (e *Engine) CursorEnd()  { e.cursor = len(e.draft) }

// EditDelete removes the rune under the cursor.
func (e *Engine) EditDelete() {
	if e.mode != ModeEditing || e.cursor >= len(e.draft) {
		return
	}
	e.draft = append(e.draft[:e.cursor], e.draft[e.cursor+1:]...)
}

// EditBackspace removes the rune before the cursor. At offset 0 it
// merges the node into its previous sibling instead; on a first
// sibling it is a no-op.
func (e *Engine) EditBackspace() {
	if e.mode != ModeEditing {
		return
	}
	if e.cursor > 0 {
		e.draft = append(e.draft[:e.cursor-1], e.draft[e.cursor:]...)
		e.cursor--
		return
	}
	e.mergeWithPrevious()
}

// EditEnter splits the draft at the cursor: the left half stays, the
// right half becomes a new sibling. With the cursor at the end this
// is the plain create-next-node flow and editing continues on the new
// node; mid-text the split leaves editing on the original node. The
// commit and the insert land in a single history entry.
func (e *Engine) EditEnter() {
	if e.mode != ModeEditing {
		return
	}
	n := e.tree.Node(e.editID)
	if n == nil {
		e.CancelEdit()
		return
	}
	left := string(e.draft[:e.cursor])
	right := string(e.draft[e.cursor:])

	var changes []change
	if n.Text != left {
		changes = append(changes, fieldChange(n, left, n.Kind, n.Todo))
		e.tree.SetText(e.editID, left)
	}
	kind, todo := n.Kind, n.Todo
	if kind == KindTodo {
		todo = TodoPending
	}
	id, ok := e.tree.InsertAfter(e.editID, right, kind, todo)
	if !ok {
		e.record(changes...)
		e.CommitEdit()
		return
	}
	changes = append(changes, placeChange(id, absent(),
		placed(e.tree.Node(id).Parent(), e.tree.IndexOf(id), e.tree.SnapshotOf(id))))
	e.record(changes...)

	if right == "" {
		e.sel.SetFocus(id)
		e.editID = id
		e.draft = nil
		e.cursor = 0
	} else {
		e.draft = []rune(left)
		e.cursor = len(e.draft)
	}
}

// mergeWithPrevious appends this node's draft to the previous
// sibling, hands the children over to it, removes the node, and
// continues editing the merged text with the cursor at the seam.
func (e *Engine) mergeWithPrevious() {
	n := e.tree.Node(e.editID)
	if n == nil {
		e.CancelEdit()
		return
	}
	idx := e.tree.IndexOf(e.editID)
	if idx <= 0 {
		return
	}
	p := e.tree.Node(n.Parent())
	prev := p.Children()[idx-1]
	seam := len([]rune(prev.Text))
	merged := prev.Text + string(e.draft)

	var changes []change
	changes = append(changes, fieldChange(prev, merged, prev.Kind, prev.Todo))
	e.tree.SetText(prev.ID, merged)

	children := append([]*Node(nil), n.Children()...)
	for _, c := range children {
		from := placed(c.parent, e.tree.IndexOf(c.ID), e.tree.SnapshotOf(c.ID))
		if e.tree.Move(c.ID, prev.ID, len(prev.children)) {
			changes = append(changes, placeChange(c.ID, from,
				placed(prev.ID, e.tree.IndexOf(c.ID), e.tree.SnapshotOf(c.ID))))
		}
	}

	before := placed(n.Parent(), e.tree.IndexOf(n.ID), e.tree.SnapshotOf(n.ID))
	if _, ok := e.tree.Remove(n.ID); ok {
		changes = append(changes, placeChange(n.ID, before, absent()))
	}
	e.record(changes...)

	e.sel.SetFocus(prev.ID)
	e.editID = prev.ID
	e.draft = []rune(merged)
	e.cursor = seam
}

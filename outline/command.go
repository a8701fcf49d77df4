package outline

// Mode is the interaction mode of the engine. Normal mode navigates
// and restructures; Editing mode types into one node's draft text.
type Mode int

const (
	ModeNormal Mode = iota
	ModeEditing
)

// Dir is a navigation direction.
type Dir int

const (
	DirUp Dir = iota
	DirDown
	DirLeft
	DirRight
)

// Engine binds a tree, its selection, and the undo history behind the
// command-verb surface. One Engine per open document.
type Engine struct {
	tree *Tree
	sel  *Selection
	hist *History

	mode   Mode
	editID NodeID
	draft  []rune
	cursor int

	visible    []NodeID
	recomputes int
}

func NewEngine(t *Tree, historyLimit int) *Engine {
	e := &Engine{
		tree: t,
		sel:  NewSelection(),
		hist: NewHistory(historyLimit),
	}
	if vis := e.Visible(); len(vis) > 0 {
		e.sel.SetFocus(vis[0])
	}
	return e
}

func (e *Engine) Tree() *Tree           { return e.tree }
func (e *Engine) Selection() *Selection { return e.sel }
func (e *Engine) Mode() Mode            { return e.mode }
func (e *Engine) EditingID() NodeID     { return e.editID }
func (e *Engine) CanUndo() bool         { return e.hist.CanUndo() }
func (e *Engine) CanRedo() bool         { return e.hist.CanRedo() }

// Draft is the in-progress edit text and cursor position.
func (e *Engine) Draft() (string, int) {
	return string(e.draft), e.cursor
}

func (e *Engine) record(changes ...change) {
	e.hist.Record(&Action{changes: changes})
}

// visibleIndex locates id in the current visible sequence.
func (e *Engine) visibleIndex(id NodeID) int {
	for i, v := range e.Visible() {
		if v == id {
			return i
		}
	}
	return -1
}

// ensureFocus gives focus to the first visible node when nothing is
// focused, for example right after opening a document.
func (e *Engine) ensureFocus() NodeID {
	f := e.sel.Focused()
	if f != 0 && e.tree.Node(f) != nil {
		return f
	}
	vis := e.Visible()
	if len(vis) == 0 {
		return 0
	}
	e.sel.SetFocus(vis[0])
	return vis[0]
}

// MoveFocus moves focus one visible step for Up/Down. Left folds an
// open parent in place, otherwise climbs to the parent. Right unfolds
// a folded node in place, otherwise descends to the first child.
func (e *Engine) MoveFocus(d Dir) {
	f := e.ensureFocus()
	if f == 0 {
		return
	}
	switch d {
	case DirUp, DirDown:
		vis := e.Visible()
		i := e.visibleIndex(f)
		if i < 0 {
			return
		}
		if d == DirUp && i > 0 {
			e.sel.SetFocus(vis[i-1])
		} else if d == DirDown && i < len(vis)-1 {
			e.sel.SetFocus(vis[i+1])
		}
	case DirLeft:
		n := e.tree.Node(f)
		if n.HasChildren() && !n.Folded {
			e.foldNode(f, true)
			return
		}
		if p := n.Parent(); p != 0 && e.tree.Node(p) != e.tree.Root() {
			e.sel.SetFocus(p)
		}
	case DirRight:
		n := e.tree.Node(f)
		if !n.HasChildren() {
			return
		}
		if n.Folded {
			e.tree.SetFolded(f, false, false)
			return
		}
		e.sel.SetFocus(n.Children()[0].ID)
	}
}

// ExtendSelection grows the selection: Up/Down extend the contiguous
// visible range from the anchor, Left adds the parent of the
// shallowest selected node, Right adds the children one level below
// the deepest selected nodes.
func (e *Engine) ExtendSelection(d Dir) {
	f := e.ensureFocus()
	if f == 0 {
		return
	}
	switch d {
	case DirUp, DirDown:
		vis := e.Visible()
		i := e.visibleIndex(f)
		if i < 0 {
			return
		}
		target := f
		if d == DirUp && i > 0 {
			target = vis[i-1]
		} else if d == DirDown && i < len(vis)-1 {
			target = vis[i+1]
		}
		anchor := e.sel.Anchor()
		if anchor == 0 || e.tree.Node(anchor) == nil {
			anchor = f
		}
		e.sel.SetRange(anchor, target, vis)
	case DirLeft:
		shallow, level := NodeID(0), int(^uint(0)>>1)
		for _, id := range e.sel.IDs() {
			if l := e.tree.Level(id); l >= 0 && l < level {
				shallow, level = id, l
			}
		}
		if shallow == 0 {
			return
		}
		p := e.tree.Node(shallow).Parent()
		if p == 0 || e.tree.Node(p) == e.tree.Root() {
			return
		}
		e.sel.Extend(p)
		e.sel.focused = p
	case DirRight:
		deepest := -1
		for _, id := range e.sel.IDs() {
			if l := e.tree.Level(id); l > deepest {
				deepest = l
			}
		}
		for _, id := range e.sel.IDs() {
			if e.tree.Level(id) != deepest {
				continue
			}
			n := e.tree.Node(id)
			if n.Folded && n.HasChildren() {
				e.tree.SetFolded(id, false, false)
			}
			for _, c := range n.Children() {
				e.sel.Extend(c.ID)
			}
		}
	}
}

// FocusNode collapses the selection onto id (plain click).
func (e *Engine) FocusNode(id NodeID) {
	if e.tree.Node(id) == nil {
		return
	}
	e.sel.SetFocus(id)
}

// ToggleSelect flips membership of id (ctrl+click).
func (e *Engine) ToggleSelect(id NodeID) {
	if e.tree.Node(id) == nil {
		return
	}
	e.sel.Toggle(id)
}

// RangeSelect selects the visible range from the focused node to id
// (shift+click).
func (e *Engine) RangeSelect(id NodeID) {
	if e.tree.Node(id) == nil {
		return
	}
	anchor := e.ensureFocus()
	if anchor == 0 {
		anchor = id
	}
	e.sel.SetRange(anchor, id, e.Visible())
}

// foldNode folds or unfolds and keeps the selection visible: focus or
// members hidden by the fold collapse onto the folded node.
func (e *Engine) foldNode(id NodeID, folded bool) {
	if !e.tree.SetFolded(id, folded, false) {
		return
	}
	if folded && e.tree.IsAncestor(id, e.sel.Focused()) {
		e.sel.SetFocus(id)
	}
}

// ToggleFold flips the fold state of the focused node. The recursive
// variant applies the new state to the whole subtree.
func (e *Engine) ToggleFold(recursive bool) {
	f := e.ensureFocus()
	if f == 0 {
		return
	}
	e.ToggleFoldAt(f, recursive)
}

// ToggleFoldAt flips the fold state of an explicit node (mouse on the
// fold marker).
func (e *Engine) ToggleFoldAt(id NodeID, recursive bool) {
	n := e.tree.Node(id)
	if n == nil {
		return
	}
	folded := !n.Folded
	if recursive {
		e.tree.SetFolded(id, folded, true)
	} else {
		e.tree.SetFolded(id, folded, false)
	}
	if folded && e.tree.IsAncestor(id, e.sel.Focused()) {
		e.sel.SetFocus(id)
	}
}

// FoldToLevel is a bulk fold; focus hidden by it climbs to the
// nearest still-visible ancestor.
func (e *Engine) FoldToLevel(l int) {
	e.tree.FoldToLevel(l)
	e.reanchorFocus()
}

func (e *Engine) UnfoldAll() {
	e.tree.UnfoldAll()
}

// FocusMode folds everything to level l except the path to the
// focused node.
func (e *Engine) FocusMode(l int) {
	f := e.ensureFocus()
	if f == 0 {
		return
	}
	e.tree.FocusMode(f, l)
}

func (e *Engine) reanchorFocus() {
	f := e.sel.Focused()
	if f == 0 || e.tree.isShown(f) {
		return
	}
	n := e.tree.Node(f)
	for p := e.tree.Node(n.Parent()); p != nil && p != e.tree.Root(); p = e.tree.Node(p.Parent()) {
		if e.tree.isShown(p.ID) {
			e.sel.SetFocus(p.ID)
			return
		}
	}
	vis := e.Visible()
	if len(vis) > 0 {
		e.sel.SetFocus(vis[0])
	}
}

// CycleTodo advances every selected todo node one step:
// pending, in progress, complete, and around again. Unknown rejoins
// the cycle at pending. Plain items are left alone; converting them
// is SetTodo's job.
func (e *Engine) CycleTodo() {
	var changes []change
	for _, id := range e.tree.DocumentOrder(e.sel.IDs()) {
		n := e.tree.Node(id)
		if n == nil || n.Kind != KindTodo {
			continue
		}
		next := TodoPending
		switch n.Todo {
		case TodoPending:
			next = TodoInProgress
		case TodoInProgress:
			next = TodoComplete
		case TodoComplete, TodoUnknown:
			next = TodoPending
		}
		changes = append(changes, fieldChange(n, n.Text, KindTodo, next))
		e.tree.SetTodo(id, next)
	}
	e.record(changes...)
}

// SetTodo forces every selected node to one state. TodoNone converts
// todos back to plain items; any other state converts items to todos.
func (e *Engine) SetTodo(state TodoState) {
	var changes []change
	for _, id := range e.tree.DocumentOrder(e.sel.IDs()) {
		n := e.tree.Node(id)
		if n == nil {
			continue
		}
		kind := KindTodo
		if state == TodoNone {
			kind = KindItem
		}
		if n.Kind == kind && n.Todo == state {
			continue
		}
		changes = append(changes, fieldChange(n, n.Text, kind, state))
		e.tree.SetTodo(id, state)
	}
	e.record(changes...)
}

func (e *Engine) recordMoves(recs []moveRecord) {
	if len(recs) == 0 {
		return
	}
	changes := make([]change, 0, len(recs))
	for _, r := range recs {
		snap := e.tree.SnapshotOf(r.id)
		changes = append(changes, placeChange(r.id,
			placed(r.fromParent, r.fromIndex, snap),
			placed(r.toParent, r.toIndex, snap)))
	}
	e.record(changes...)
}

// Indent nests the selection one level deeper; nodes with no previous
// sibling stay put. One history entry for the whole batch.
func (e *Engine) Indent() {
	e.recordMoves(e.tree.Indent(e.sel.IDs()))
}

// Outdent lifts the selection one level up; top-level nodes stay put.
func (e *Engine) Outdent() {
	e.recordMoves(e.tree.Outdent(e.sel.IDs()))
}

// MoveUp swaps the focused node with its previous sibling.
func (e *Engine) MoveUp() {
	f := e.ensureFocus()
	if f == 0 {
		return
	}
	if rec, ok := e.tree.MoveUp(f); ok {
		e.recordMoves([]moveRecord{rec})
	}
}

// MoveDown swaps the focused node with its next sibling.
func (e *Engine) MoveDown() {
	f := e.ensureFocus()
	if f == 0 {
		return
	}
	if rec, ok := e.tree.MoveDown(f); ok {
		e.recordMoves([]moveRecord{rec})
	}
}

// SelectionRoots are the selected subtree roots in document order,
// with nested selections folded into their selected ancestor.
func (e *Engine) SelectionRoots() []NodeID {
	return e.tree.topLevel(e.tree.DocumentOrder(e.sel.IDs()))
}

// DeleteSelection removes the selected subtrees as one action and
// moves focus to the nearest surviving visible neighbor.
func (e *Engine) DeleteSelection() {
	roots := e.SelectionRoots()
	if len(roots) == 0 {
		return
	}
	vis := e.Visible()
	fallback := e.neighborAfter(vis, roots)
	var changes []change
	for _, id := range roots {
		n := e.tree.Node(id)
		if n == nil {
			continue
		}
		before := placed(n.Parent(), e.tree.IndexOf(id), e.tree.SnapshotOf(id))
		if _, ok := e.tree.Remove(id); ok {
			changes = append(changes, placeChange(id, before, absent()))
		}
	}
	e.record(changes...)
	e.sel.Prune(e.tree, fallback)
	if e.sel.Focused() == 0 {
		if v := e.Visible(); len(v) > 0 {
			e.sel.SetFocus(v[0])
		} else {
			e.sel.Clear()
		}
	}
}

// neighborAfter picks the first visible node after the doomed block,
// falling back to the one before it.
func (e *Engine) neighborAfter(vis []NodeID, doomed []NodeID) NodeID {
	gone := make(map[NodeID]struct{}, len(doomed))
	for _, id := range doomed {
		gone[id] = struct{}{}
	}
	covered := func(id NodeID) bool {
		if _, ok := gone[id]; ok {
			return true
		}
		for _, d := range doomed {
			if e.tree.IsAncestor(d, id) {
				return true
			}
		}
		return false
	}
	last := -1
	for i, id := range vis {
		if covered(id) {
			last = i
		}
	}
	for i := last + 1; i < len(vis); i++ {
		if !covered(vis[i]) {
			return vis[i]
		}
	}
	for i := last - 1; i >= 0; i-- {
		if !covered(vis[i]) {
			return vis[i]
		}
	}
	return 0
}

// Undo reverses the last recorded action.
func (e *Engine) Undo() bool {
	if e.mode == ModeEditing {
		return false
	}
	ok := e.hist.Undo(e.tree)
	e.sel.Prune(e.tree, 0)
	e.reanchorFocus()
	return ok
}

// Redo replays the last undone action.
func (e *Engine) Redo() bool {
	if e.mode == ModeEditing {
		return false
	}
	ok := e.hist.Redo(e.tree)
	e.sel.Prune(e.tree, 0)
	e.reanchorFocus()
	return ok
}

// PasteAfterFocused grafts the top-level nodes of src as siblings
// after the focused node, assigning fresh ids. Recorded as one
// action. With an empty document the nodes land at top level.
func (e *Engine) PasteAfterFocused(src *Tree) bool {
	if src == nil || len(src.Root().Children()) == 0 {
		return false
	}
	after := e.ensureFocus()
	var changes []change
	var lastID NodeID
	for _, top := range src.Root().Children() {
		id, ok := e.graftAfter(after, top)
		if !ok {
			continue
		}
		changes = append(changes, placeChange(id,
			absent(),
			placed(e.tree.Node(id).Parent(), e.tree.IndexOf(id), e.tree.SnapshotOf(id))))
		after = id
		lastID = id
	}
	if len(changes) == 0 {
		return false
	}
	e.record(changes...)
	e.sel.SetFocus(lastID)
	return true
}

// graftAfter deep-copies a foreign subtree next to ref with new ids.
func (e *Engine) graftAfter(ref NodeID, src *Node) (NodeID, bool) {
	id, ok := e.tree.InsertAfter(ref, src.Text, src.Kind, src.Todo)
	if !ok {
		return 0, false
	}
	var graftChildren func(parent NodeID, src *Node)
	graftChildren = func(parent NodeID, src *Node) {
		for _, c := range src.Children() {
			cid, ok := e.tree.InsertChild(parent, c.Text, c.Kind, c.Todo)
			if ok {
				graftChildren(cid, c)
			}
		}
	}
	graftChildren(id, src)
	return id, true
}

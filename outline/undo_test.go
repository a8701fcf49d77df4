package outline

import "testing"

func TestUndoRedoTextEdit(t *testing.T) {
	tr, ids := sample(t)
	e := NewEngine(tr, 0)
	e.FocusNode(ids["a"])
	e.StartEdit()
	for _, r := range "!" {
		e.InsertRune(r)
	}
	e.CommitEdit()
	if got := tr.Node(ids["a"]).Text; got != "a!" {
		t.Fatalf("text = %q, want %q", got, "a!")
	}

	if !e.Undo() {
		t.Fatal("undo failed")
	}
	if got := tr.Node(ids["a"]).Text; got != "a" {
		t.Errorf("after undo text = %q, want %q", got, "a")
	}
	if !e.Redo() {
		t.Fatal("redo failed")
	}
	if got := tr.Node(ids["a"]).Text; got != "a!" {
		t.Errorf("after redo text = %q, want %q", got, "a!")
	}
}

func TestUndoRestoresDeletedSubtree(t *testing.T) {
	tr, ids := sample(t)
	e := NewEngine(tr, 0)
	e.FocusNode(ids["b"])
	e.DeleteSelection()
	if tr.Node(ids["b"]) != nil || tr.Node(ids["c"]) != nil {
		t.Fatal("delete left nodes behind")
	}

	if !e.Undo() {
		t.Fatal("undo failed")
	}
	b := tr.Node(ids["b"])
	if b == nil {
		t.Fatal("subtree not restored")
	}
	if b.ID != ids["b"] {
		t.Errorf("restored id = %d, want original %d", b.ID, ids["b"])
	}
	if c := tr.Node(ids["c"]); c == nil || c.Parent() != ids["b"] {
		t.Error("restored subtree lost its child")
	}
	if tr.IndexOf(ids["b"]) != 0 {
		t.Errorf("restored at index %d, want 0", tr.IndexOf(ids["b"]))
	}
}

func TestBatchIndentIsOneHistoryEntry(t *testing.T) {
	tr, ids := sample(t)
	e := NewEngine(tr, 0)
	// d and e can both indent; one undo reverts both.
	e.Selection().SetFocus(ids["d"])
	e.Selection().Extend(ids["e"])
	e.Indent()
	if tr.Node(ids["d"]).Parent() != ids["b"] || tr.Node(ids["e"]).Parent() != ids["a"] {
		t.Fatalf("indent landed wrong: d->%d e->%d", tr.Node(ids["d"]).Parent(), tr.Node(ids["e"]).Parent())
	}

	if !e.Undo() {
		t.Fatal("undo failed")
	}
	if tr.Node(ids["d"]).Parent() != ids["a"] {
		t.Error("d not restored by the single undo")
	}
	if p := tr.Node(ids["e"]).Parent(); tr.Node(p) != tr.Root() {
		t.Error("e not restored by the single undo")
	}
	if e.Undo() {
		t.Error("second undo succeeded; batch recorded as two entries")
	}
}

func TestHistoryBounded(t *testing.T) {
	tr, ids := sample(t)
	e := NewEngine(tr, 3)
	for i := 0; i < 5; i++ {
		e.FocusNode(ids["a"])
		e.CycleTodo() // no-op on items
		e.SetTodo(TodoPending)
		e.SetTodo(TodoNone)
	}
	undone := 0
	for e.Undo() {
		undone++
	}
	if undone != 3 {
		t.Errorf("undid %d actions, want limit 3", undone)
	}
}

func TestRedoClearedByNewAction(t *testing.T) {
	tr, ids := sample(t)
	e := NewEngine(tr, 0)
	e.FocusNode(ids["a"])
	e.SetTodo(TodoPending)
	e.Undo()
	if !e.CanRedo() {
		t.Fatal("redo should be available after undo")
	}
	e.SetTodo(TodoComplete)
	if e.CanRedo() {
		t.Error("new action did not clear the redo stack")
	}
}

func TestInvalidEntryDropped(t *testing.T) {
	tr, ids := sample(t)
	h := NewHistory(10)

	// Record a fields change, then remove the node behind history's
	// back so the entry dangles.
	n := tr.Node(ids["e"])
	h.Record(&Action{changes: []change{fieldChange(n, "e2", KindItem, TodoNone)}})
	tr.SetText(ids["e"], "e2")
	tr.Remove(ids["e"])

	if h.Undo(tr) {
		t.Error("undo of a dangling entry reported success")
	}
	if h.CanUndo() {
		t.Error("dangling entry still on the stack")
	}
}

func TestDanglingRestoreLeavesLiveNodeIntact(t *testing.T) {
	tr, ids := sample(t)
	h := NewHistory(10)

	// A place entry whose restore target vanished behind history's
	// back must be dropped without touching the live node.
	snap := tr.SnapshotOf(ids["e"])
	h.Record(&Action{changes: []change{
		placeChange(ids["e"], placed(NodeID(9999), 0, snap), absent()),
	}})

	if h.Undo(tr) {
		t.Error("undo of a dangling place entry reported success")
	}
	if tr.Node(ids["e"]) == nil {
		t.Fatal("live node destroyed by a dropped history entry")
	}
	if h.CanUndo() {
		t.Error("dangling entry still on the stack")
	}
}

func TestDanglingBatchAppliesNothing(t *testing.T) {
	tr, ids := sample(t)
	h := NewHistory(10)

	// One valid change and one dangling change in the same action:
	// the whole action is dropped, not applied halfway.
	n := tr.Node(ids["a"])
	h.Record(&Action{changes: []change{
		placeChange(ids["e"], placed(NodeID(9999), 0, tr.SnapshotOf(ids["e"])), absent()),
		fieldChange(n, "a2", KindItem, TodoNone),
	}})
	tr.SetText(ids["a"], "a2")

	if h.Undo(tr) {
		t.Error("undo of a half-dangling action reported success")
	}
	if got := tr.Node(ids["a"]).Text; got != "a2" {
		t.Errorf("valid half of a dropped action was applied: text = %q", got)
	}
	if tr.Node(ids["e"]) == nil {
		t.Error("live node destroyed by the dropped action")
	}
}

func TestUndoMergeRestoresChildOrder(t *testing.T) {
	tr := NewTree()
	a, _ := tr.InsertChild(0, "alpha", KindItem, TodoNone)
	b, _ := tr.InsertChild(0, "beta", KindItem, TodoNone)
	c1, _ := tr.InsertChild(b, "one", KindItem, TodoNone)
	c2, _ := tr.InsertChild(b, "two", KindItem, TodoNone)

	e := NewEngine(tr, 0)
	e.StartEditAt(b)
	e.CursorHome()
	e.EditBackspace() // merge beta into alpha
	e.CommitEdit()

	an := tr.Node(a)
	if an.Text != "alphabeta" {
		t.Fatalf("merged text = %q", an.Text)
	}
	if tr.Node(b) != nil {
		t.Fatal("merged node still present")
	}
	wantOrder(t, texts(tr, childIDs(an)), "one", "two")

	if !e.Undo() {
		t.Fatal("undo failed")
	}
	if got := tr.Node(a).Text; got != "alpha" {
		t.Errorf("text = %q, want %q", got, "alpha")
	}
	bn := tr.Node(b)
	if bn == nil {
		t.Fatal("merged node not restored")
	}
	wantOrder(t, texts(tr, childIDs(bn)), "one", "two")
	if tr.Node(c1).Parent() != b || tr.Node(c2).Parent() != b {
		t.Error("children not returned to the restored node")
	}
}

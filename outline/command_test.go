package outline

import "testing"

func typeText(e *Engine, s string) {
	for _, r := range s {
		e.InsertRune(r)
	}
}

func TestStartEditOnEmptyDocumentCreatesNode(t *testing.T) {
	tr := NewTree()
	e := NewEngine(tr, 0)
	if !e.StartEdit() {
		t.Fatal("StartEdit failed on empty document")
	}
	typeText(e, "first")
	e.CommitEdit()
	if tr.Len() != 1 {
		t.Fatalf("Len = %d, want 1", tr.Len())
	}
	if got := tr.Root().Children()[0].Text; got != "first" {
		t.Errorf("text = %q, want %q", got, "first")
	}
}

func TestEnterAtEndCreatesSiblingAndKeepsEditing(t *testing.T) {
	tr, ids := sample(t)
	e := NewEngine(tr, 0)
	e.StartEditAt(ids["b"])
	e.EditEnter()
	if e.Mode() != ModeEditing {
		t.Fatal("left editing mode")
	}
	if e.EditingID() == ids["b"] {
		t.Fatal("still editing the old node")
	}
	typeText(e, "new")
	e.CommitEdit()

	a := tr.Node(ids["a"])
	wantOrder(t, texts(tr, childIDs(a)), "b", "new", "d")
	// Children stay with the original node.
	if tr.Node(ids["c"]).Parent() != ids["b"] {
		t.Error("children migrated to the new sibling")
	}
}

func TestEnterMidTextSplits(t *testing.T) {
	tr, ids := sample(t)
	e := NewEngine(tr, 0)
	tr.SetText(ids["d"], "hello world")
	e.StartEditAt(ids["d"])
	e.CursorHome()
	for i := 0; i < 5; i++ {
		e.CursorRight()
	}
	e.EditEnter()
	if e.EditingID() != ids["d"] {
		t.Fatal("mid-text split should keep editing the original node")
	}
	e.CommitEdit()

	a := tr.Node(ids["a"])
	wantOrder(t, texts(tr, childIDs(a)), "b", "hello", " world")

	// One undo reverts the whole split.
	if !e.Undo() {
		t.Fatal("undo failed")
	}
	wantOrder(t, texts(tr, childIDs(tr.Node(ids["a"]))), "b", "hello world")
}

func TestEnterOnTodoCreatesPendingSibling(t *testing.T) {
	tr, ids := sample(t)
	tr.SetTodo(ids["e"], TodoComplete)
	e := NewEngine(tr, 0)
	e.StartEditAt(ids["e"])
	e.EditEnter()
	id := e.EditingID()
	e.CommitEdit()
	n := tr.Node(id)
	if n.Kind != KindTodo || n.Todo != TodoPending {
		t.Errorf("new sibling kind=%d todo=%d, want pending todo", n.Kind, n.Todo)
	}
}

func TestBackspaceAtStartOfFirstSiblingIsNoOp(t *testing.T) {
	tr, ids := sample(t)
	e := NewEngine(tr, 0)
	e.StartEditAt(ids["b"])
	e.CursorHome()
	e.EditBackspace()
	if e.EditingID() != ids["b"] {
		t.Error("merge happened on a first sibling")
	}
	if tr.Len() != 5 {
		t.Errorf("Len = %d, want 5", tr.Len())
	}
}

func TestCancelEditDiscardsDraft(t *testing.T) {
	tr, ids := sample(t)
	e := NewEngine(tr, 0)
	e.StartEditAt(ids["a"])
	typeText(e, "zzz")
	e.CancelEdit()
	if got := tr.Node(ids["a"]).Text; got != "a" {
		t.Errorf("text = %q after cancel, want %q", got, "a")
	}
	if e.CanUndo() {
		t.Error("cancelled edit left a history entry")
	}
}

func TestCycleTodoOverSelection(t *testing.T) {
	tr, ids := sample(t)
	tr.SetTodo(ids["b"], TodoPending)
	tr.SetTodo(ids["d"], TodoComplete)
	e := NewEngine(tr, 0)
	e.Selection().SetFocus(ids["b"])
	e.Selection().Extend(ids["d"], ids["e"]) // e is a plain item

	e.CycleTodo()
	if got := tr.Node(ids["b"]).Todo; got != TodoInProgress {
		t.Errorf("b = %d, want in-progress", got)
	}
	if got := tr.Node(ids["d"]).Todo; got != TodoPending {
		t.Errorf("d = %d, want wrapped to pending", got)
	}
	if tr.Node(ids["e"]).Kind != KindItem {
		t.Error("cycle converted a plain item")
	}

	// The whole batch is one entry.
	if !e.Undo() {
		t.Fatal("undo failed")
	}
	if tr.Node(ids["b"]).Todo != TodoPending || tr.Node(ids["d"]).Todo != TodoComplete {
		t.Error("single undo did not revert the batch")
	}
}

func TestUnknownOnlyViaSetTodo(t *testing.T) {
	tr, ids := sample(t)
	tr.SetTodo(ids["e"], TodoUnknown)
	e := NewEngine(tr, 0)
	e.FocusNode(ids["e"])
	e.CycleTodo()
	if got := tr.Node(ids["e"]).Todo; got != TodoPending {
		t.Errorf("unknown cycled to %d, want pending", got)
	}
	e.SetTodo(TodoUnknown)
	if got := tr.Node(ids["e"]).Todo; got != TodoUnknown {
		t.Errorf("SetTodo(unknown) gave %d", got)
	}
}

func TestDeleteSelectionMovesFocusToNeighbor(t *testing.T) {
	tr, ids := sample(t)
	e := NewEngine(tr, 0)
	e.FocusNode(ids["b"])
	e.DeleteSelection()
	if e.Selection().Focused() != ids["d"] {
		t.Errorf("focus = %d, want next neighbor d", e.Selection().Focused())
	}

	e.FocusNode(ids["e"])
	e.DeleteSelection()
	if e.Selection().Focused() != ids["d"] {
		t.Errorf("focus = %d, want previous neighbor d", e.Selection().Focused())
	}
}

func TestPasteAfterFocused(t *testing.T) {
	tr, ids := sample(t)
	e := NewEngine(tr, 0)

	src := NewTree()
	p1, _ := src.InsertChild(0, "pasted", KindTodo, TodoPending)
	src.InsertChild(p1, "inner", KindItem, TodoNone)
	src.InsertChild(0, "second", KindItem, TodoNone)

	e.FocusNode(ids["e"])
	if !e.PasteAfterFocused(src) {
		t.Fatal("paste failed")
	}
	wantOrder(t, texts(tr, childIDs(tr.Root())), "a", "e", "pasted", "second")
	pasted := tr.Root().Children()[2]
	wantOrder(t, texts(tr, childIDs(pasted)), "inner")
	if pasted.Kind != KindTodo || pasted.Todo != TodoPending {
		t.Error("pasted node lost its todo state")
	}

	if !e.Undo() {
		t.Fatal("undo failed")
	}
	wantOrder(t, texts(tr, childIDs(tr.Root())), "a", "e")
}

func TestSelectionRootsFoldNestedSelections(t *testing.T) {
	tr, ids := sample(t)
	e := NewEngine(tr, 0)
	e.Selection().SetFocus(ids["c"])
	e.Selection().Extend(ids["a"], ids["e"])
	got := e.SelectionRoots()
	wantOrder(t, texts(tr, got), "a", "e")
}

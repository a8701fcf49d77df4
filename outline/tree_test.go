package outline

import "testing"

// sample builds:
//
//	a
//	    b
//	        c
//	    d
//	e
func sample(t *testing.T) (*Tree, map[string]NodeID) {
	t.Helper()
	tr := NewTree()
	ids := map[string]NodeID{}
	var ok bool
	if ids["a"], ok = tr.InsertChild(0, "a", KindItem, TodoNone); !ok {
		t.Fatal("insert a failed")
	}
	if ids["b"], ok = tr.InsertChild(ids["a"], "b", KindItem, TodoNone); !ok {
		t.Fatal("insert b failed")
	}
	if ids["c"], ok = tr.InsertChild(ids["b"], "c", KindItem, TodoNone); !ok {
		t.Fatal("insert c failed")
	}
	if ids["d"], ok = tr.InsertChild(ids["a"], "d", KindItem, TodoNone); !ok {
		t.Fatal("insert d failed")
	}
	if ids["e"], ok = tr.InsertChild(0, "e", KindItem, TodoNone); !ok {
		t.Fatal("insert e failed")
	}
	return tr, ids
}

func texts(tr *Tree, ids []NodeID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, tr.Node(id).Text)
	}
	return out
}

func wantOrder(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestLevels(t *testing.T) {
	tr, ids := sample(t)
	cases := []struct {
		name  string
		level int
	}{
		{"a", 1}, {"b", 2}, {"c", 3}, {"d", 2}, {"e", 1},
	}
	for _, c := range cases {
		if got := tr.Level(ids[c.name]); got != c.level {
			t.Errorf("Level(%s) = %d, want %d", c.name, got, c.level)
		}
	}
	if got := tr.Level(9999); got != -1 {
		t.Errorf("Level(unknown) = %d, want -1", got)
	}
}

func TestIDsNeverReused(t *testing.T) {
	tr, ids := sample(t)
	old := ids["e"]
	tr.Remove(old)
	id, ok := tr.InsertChild(0, "fresh", KindItem, TodoNone)
	if !ok {
		t.Fatal("insert failed")
	}
	if id == old {
		t.Fatalf("id %d was reused after removal", old)
	}
	if id <= old {
		t.Fatalf("new id %d not greater than retired id %d", id, old)
	}
}

func TestInsertAfter(t *testing.T) {
	tr, ids := sample(t)
	id, ok := tr.InsertAfter(ids["b"], "x", KindItem, TodoNone)
	if !ok {
		t.Fatal("InsertAfter failed")
	}
	a := tr.Node(ids["a"])
	wantOrder(t, texts(tr, childIDs(a)), "b", "x", "d")
	if tr.Node(id).Parent() != ids["a"] {
		t.Errorf("parent = %d, want %d", tr.Node(id).Parent(), ids["a"])
	}
}

func childIDs(n *Node) []NodeID {
	out := make([]NodeID, 0, len(n.Children()))
	for _, c := range n.Children() {
		out = append(out, c.ID)
	}
	return out
}

func TestRemoveDropsSubtree(t *testing.T) {
	tr, ids := sample(t)
	parent, ok := tr.Remove(ids["b"])
	if !ok {
		t.Fatal("Remove failed")
	}
	if parent != ids["a"] {
		t.Errorf("changed root = %d, want %d", parent, ids["a"])
	}
	if tr.Node(ids["b"]) != nil || tr.Node(ids["c"]) != nil {
		t.Error("removed subtree still indexed")
	}
	if tr.Len() != 3 {
		t.Errorf("Len = %d, want 3", tr.Len())
	}
}

func TestMoveRejectsCycle(t *testing.T) {
	tr, ids := sample(t)
	if tr.Move(ids["a"], ids["c"], 0) {
		t.Error("move into own descendant was allowed")
	}
	if tr.Move(ids["a"], ids["a"], 0) {
		t.Error("move under itself was allowed")
	}
}

func TestIndentOutdent(t *testing.T) {
	tr, ids := sample(t)

	// e has a previous sibling (a): it nests under it.
	recs := tr.Indent([]NodeID{ids["e"]})
	if len(recs) != 1 {
		t.Fatalf("indent applied %d moves, want 1", len(recs))
	}
	if tr.Node(ids["e"]).Parent() != ids["a"] {
		t.Errorf("e parent = %d, want a", tr.Node(ids["e"]).Parent())
	}

	// a is first at top level: silent no-op.
	if recs := tr.Indent([]NodeID{ids["a"]}); len(recs) != 0 {
		t.Errorf("indent of first sibling applied %d moves, want 0", len(recs))
	}

	// Outdent e back to top level, after a.
	recs = tr.Outdent([]NodeID{ids["e"]})
	if len(recs) != 1 {
		t.Fatalf("outdent applied %d moves, want 1", len(recs))
	}
	wantOrder(t, texts(tr, childIDs(tr.Root())), "a", "e")

	// Top-level node: silent no-op.
	if recs := tr.Outdent([]NodeID{ids["e"]}); len(recs) != 0 {
		t.Errorf("outdent at top level applied %d moves, want 0", len(recs))
	}
}

func TestIndentBatchAppliesRest(t *testing.T) {
	tr, ids := sample(t)
	// b is first among a's children and cannot indent; d can.
	recs := tr.Indent([]NodeID{ids["b"], ids["d"]})
	if len(recs) != 1 {
		t.Fatalf("applied %d moves, want 1", len(recs))
	}
	if tr.Node(ids["d"]).Parent() != ids["b"] {
		t.Errorf("d parent = %d, want b", tr.Node(ids["d"]).Parent())
	}
}

func TestIndentSkipsCoveredDescendants(t *testing.T) {
	tr, ids := sample(t)
	// Selecting b and its child c indents only b; c rides along.
	recs := tr.Indent([]NodeID{ids["b"], ids["c"]})
	if len(recs) != 0 {
		// b is a first sibling, so nothing should move at all.
		t.Fatalf("applied %d moves, want 0", len(recs))
	}
	if tr.Node(ids["c"]).Parent() != ids["b"] {
		t.Error("covered descendant was moved independently")
	}
}

func TestMoveUpDown(t *testing.T) {
	tr, ids := sample(t)
	if _, ok := tr.MoveUp(ids["a"]); ok {
		t.Error("MoveUp on first sibling succeeded")
	}
	if _, ok := tr.MoveDown(ids["e"]); ok {
		t.Error("MoveDown on last sibling succeeded")
	}
	if _, ok := tr.MoveDown(ids["a"]); !ok {
		t.Fatal("MoveDown failed")
	}
	wantOrder(t, texts(tr, childIDs(tr.Root())), "e", "a")
	// Subtree rides along.
	if tr.Node(ids["c"]).Parent() != ids["b"] {
		t.Error("subtree lost during sibling swap")
	}
	if _, ok := tr.MoveUp(ids["a"]); !ok {
		t.Fatal("MoveUp failed")
	}
	wantOrder(t, texts(tr, childIDs(tr.Root())), "a", "e")
}

func TestDocumentOrder(t *testing.T) {
	tr, ids := sample(t)
	got := tr.DocumentOrder([]NodeID{ids["e"], ids["c"], ids["a"], 9999})
	wantOrder(t, texts(tr, got), "a", "c", "e")
}

func TestSetTodoConverts(t *testing.T) {
	tr, ids := sample(t)
	tr.SetTodo(ids["a"], TodoPending)
	n := tr.Node(ids["a"])
	if n.Kind != KindTodo || n.Todo != TodoPending {
		t.Errorf("got kind=%d todo=%d, want todo/pending", n.Kind, n.Todo)
	}
	tr.SetTodo(ids["a"], TodoNone)
	if n.Kind != KindItem || n.Todo != TodoNone {
		t.Errorf("got kind=%d todo=%d, want item/none", n.Kind, n.Todo)
	}
}

func TestVersionBumpsOnMutation(t *testing.T) {
	tr, ids := sample(t)
	v := tr.Version()
	tr.SetText(ids["a"], "renamed")
	if tr.Version() == v {
		t.Error("version unchanged after SetText")
	}
	v = tr.Version()
	tr.SetFolded(ids["a"], true, false)
	if tr.Version() != v {
		t.Error("fold change bumped the content version")
	}
}

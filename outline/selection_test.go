package outline

import "testing"

func TestMoveFocusClampsAtEdges(t *testing.T) {
	tr, ids := sample(t)
	e := NewEngine(tr, 0)

	if e.Selection().Focused() != ids["a"] {
		t.Fatalf("initial focus = %d, want first visible", e.Selection().Focused())
	}
	e.MoveFocus(DirUp)
	if e.Selection().Focused() != ids["a"] {
		t.Error("focus moved above the first visible node")
	}
	for i := 0; i < 10; i++ {
		e.MoveFocus(DirDown)
	}
	if e.Selection().Focused() != ids["e"] {
		t.Errorf("focus = %d, want last visible e", e.Selection().Focused())
	}
}

func TestMoveFocusSkipsFoldedContent(t *testing.T) {
	tr, ids := sample(t)
	e := NewEngine(tr, 0)
	tr.SetFolded(ids["a"], true, false)
	e.MoveFocus(DirDown)
	if e.Selection().Focused() != ids["e"] {
		t.Errorf("focus = %d, want e (hidden nodes skipped)", e.Selection().Focused())
	}
}

func TestRightUnfoldsThenDescends(t *testing.T) {
	tr, ids := sample(t)
	e := NewEngine(tr, 0)
	tr.SetFolded(ids["a"], true, false)
	e.FocusNode(ids["a"])

	// First press: unfold in place.
	e.MoveFocus(DirRight)
	if tr.Node(ids["a"]).Folded {
		t.Fatal("right arrow did not unfold")
	}
	if e.Selection().Focused() != ids["a"] {
		t.Error("right arrow moved focus while unfolding")
	}

	// Second press: descend to first child.
	e.MoveFocus(DirRight)
	if e.Selection().Focused() != ids["b"] {
		t.Errorf("focus = %d, want first child b", e.Selection().Focused())
	}

	// On a leaf: no-op.
	e.FocusNode(ids["e"])
	e.MoveFocus(DirRight)
	if e.Selection().Focused() != ids["e"] {
		t.Error("right arrow on a leaf moved focus")
	}
}

func TestLeftFoldsThenClimbs(t *testing.T) {
	tr, ids := sample(t)
	e := NewEngine(tr, 0)
	e.FocusNode(ids["b"])

	// b is an open parent: fold in place.
	e.MoveFocus(DirLeft)
	if !tr.Node(ids["b"]).Folded {
		t.Fatal("left arrow did not fold the open parent")
	}
	if e.Selection().Focused() != ids["b"] {
		t.Error("left arrow moved focus while folding")
	}

	// Folded now: climb to parent.
	e.MoveFocus(DirLeft)
	if e.Selection().Focused() != ids["a"] {
		t.Errorf("focus = %d, want parent a", e.Selection().Focused())
	}

	// Top-level folded node: no-op.
	e.MoveFocus(DirLeft)
	e.MoveFocus(DirLeft)
	if e.Selection().Focused() != ids["a"] {
		t.Error("left arrow climbed past the top level")
	}
}

func TestExtendRange(t *testing.T) {
	tr, ids := sample(t)
	e := NewEngine(tr, 0)
	e.FocusNode(ids["b"])

	e.ExtendSelection(DirDown)
	e.ExtendSelection(DirDown)
	sel := e.Selection()
	if sel.Len() != 3 || !sel.Has(ids["b"]) || !sel.Has(ids["c"]) || !sel.Has(ids["d"]) {
		t.Fatalf("selection = %v, want b..d", texts(tr, sel.IDs()))
	}
	if sel.Focused() != ids["d"] {
		t.Errorf("focus = %d, want d", sel.Focused())
	}

	// Shrinking back toward the anchor.
	e.ExtendSelection(DirUp)
	if sel.Len() != 2 || sel.Has(ids["d"]) {
		t.Errorf("selection = %v, want b..c", texts(tr, sel.IDs()))
	}
	if sel.Anchor() != ids["b"] {
		t.Errorf("anchor = %d, want b", sel.Anchor())
	}
}

func TestHierarchicalExtend(t *testing.T) {
	tr, ids := sample(t)
	e := NewEngine(tr, 0)

	e.FocusNode(ids["c"])
	e.ExtendSelection(DirLeft)
	sel := e.Selection()
	if !sel.Has(ids["b"]) || sel.Focused() != ids["b"] {
		t.Fatalf("extend-left did not add the parent: %v", texts(tr, sel.IDs()))
	}
	e.ExtendSelection(DirLeft)
	if !sel.Has(ids["a"]) {
		t.Fatal("second extend-left did not climb a level")
	}

	e.FocusNode(ids["a"])
	e.ExtendSelection(DirRight)
	sel = e.Selection()
	if !sel.Has(ids["b"]) || !sel.Has(ids["d"]) {
		t.Fatalf("extend-right did not add children: %v", texts(tr, sel.IDs()))
	}
	if sel.Has(ids["c"]) {
		t.Error("extend-right skipped a level")
	}
	e.ExtendSelection(DirRight)
	if !sel.Has(ids["c"]) {
		t.Error("second extend-right did not reach grandchildren")
	}
}

func TestToggleSelect(t *testing.T) {
	tr, ids := sample(t)
	e := NewEngine(tr, 0)
	e.FocusNode(ids["a"])

	e.ToggleSelect(ids["e"])
	sel := e.Selection()
	if sel.Len() != 2 || sel.Focused() != ids["e"] {
		t.Fatalf("toggle-on: sel=%v focus=%d", texts(tr, sel.IDs()), sel.Focused())
	}

	// Toggling off the focused node hands focus to a survivor.
	e.ToggleSelect(ids["e"])
	if sel.Len() != 1 || sel.Focused() != ids["a"] {
		t.Fatalf("toggle-off: sel=%v focus=%d", texts(tr, sel.IDs()), sel.Focused())
	}

	// Toggling off the only member keeps the selection non-empty.
	e.ToggleSelect(ids["a"])
	if sel.Len() != 1 || sel.Focused() != ids["a"] {
		t.Error("toggling the only member emptied the selection")
	}
}

func TestRangeSelect(t *testing.T) {
	tr, ids := sample(t)
	e := NewEngine(tr, 0)
	e.FocusNode(ids["a"])
	e.RangeSelect(ids["d"])
	sel := e.Selection()
	if sel.Len() != 4 {
		t.Fatalf("selection = %v, want a..d", texts(tr, sel.IDs()))
	}
	if sel.Focused() != ids["d"] || sel.Anchor() != ids["a"] {
		t.Errorf("focus=%d anchor=%d, want d/a", sel.Focused(), sel.Anchor())
	}
}

package outline

import "testing"

func TestSearchChunked(t *testing.T) {
	tr := NewTree()
	var hit NodeID
	for i := 0; i < 10; i++ {
		text := "filler"
		if i == 7 {
			text = "the Needle here"
		}
		id, _ := tr.InsertChild(0, text, KindItem, TodoNone)
		if i == 7 {
			hit = id
		}
	}

	s := tr.NewSearch("needle", 0)
	steps := 0
	for !s.Step(3) {
		steps++
		if steps > 10 {
			t.Fatal("search never finished")
		}
	}
	matches := s.Matches()
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].ID != hit {
		t.Errorf("match id = %d, want %d", matches[0].ID, hit)
	}
	if matches[0].Offset != 4 {
		t.Errorf("offset = %d, want 4", matches[0].Offset)
	}
}

func TestSearchScope(t *testing.T) {
	tr, ids := sample(t)
	tr.SetText(ids["c"], "target")
	tr.SetText(ids["e"], "target")

	s := tr.NewSearch("target", ids["a"])
	for !s.Step(100) {
	}
	if len(s.Matches()) != 1 {
		t.Fatalf("got %d matches in subtree, want 1", len(s.Matches()))
	}
	if s.Matches()[0].ID != ids["c"] {
		t.Errorf("match = %d, want c", s.Matches()[0].ID)
	}
}

func TestSearchInvalidatedByMutation(t *testing.T) {
	tr, ids := sample(t)
	s := tr.NewSearch("a", 0)
	s.Step(1)
	tr.SetText(ids["e"], "changed")
	if s.Valid() {
		t.Fatal("search still valid after a content mutation")
	}
	if !s.Step(100) {
		t.Error("stepping a stale search should finish immediately")
	}
}

func TestSearchIgnoresFolds(t *testing.T) {
	tr, ids := sample(t)
	tr.SetFolded(ids["a"], true, false)
	s := tr.NewSearch("c", 0)
	for !s.Step(100) {
	}
	if len(s.Matches()) != 1 {
		t.Error("folded content should still be searchable")
	}
}

func TestSearchOffsetSurvivesWideCaseFolding(t *testing.T) {
	// "İ" lowercases to two runes under full case mapping; the match
	// offset must still count runes of the original text.
	tr := NewTree()
	id, _ := tr.InsertChild(0, "İstanbul note", KindItem, TodoNone)

	s := tr.NewSearch("NOTE", 0)
	for !s.Step(100) {
	}
	if len(s.Matches()) != 1 {
		t.Fatalf("got %d matches, want 1", len(s.Matches()))
	}
	m := s.Matches()[0]
	if m.ID != id || m.Offset != 9 {
		t.Errorf("match id=%d offset=%d, want id=%d offset=9", m.ID, m.Offset, id)
	}
}

func TestEmptyQueryIsDone(t *testing.T) {
	tr, _ := sample(t)
	s := tr.NewSearch("", 0)
	if !s.Done() || len(s.Matches()) != 0 {
		t.Error("empty query should finish with no matches")
	}
}

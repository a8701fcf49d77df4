package editor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"outliner/outline"
)

func TestDocumentLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.log")
	src := strings.Join([]string{
		"- groceries",
		"    [] milk",
		"    [x] bread",
		"- chores",
	}, "\n") + "\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	doc, err := NewDocumentFromFile(path, 50)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if doc.Eng.Tree().Len() != 4 {
		t.Fatalf("expected 4 nodes, got %d", doc.Eng.Tree().Len())
	}

	out := filepath.Join(dir, "copy.log")
	if err := doc.SaveAs(out); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if string(data) != src {
		t.Fatalf("round trip mismatch:\n%q\n%q", src, string(data))
	}
	if doc.Dirty {
		t.Fatalf("save should clear the dirty flag")
	}
	if doc.Path != out {
		t.Fatalf("save-as should retarget the document, got %q", doc.Path)
	}
}

func TestDocumentMissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.log")
	doc, err := NewDocumentFromFile(path, 50)
	if err != nil {
		t.Fatalf("expected empty document for missing file, got %v", err)
	}
	if doc.Eng.Tree().Len() != 0 {
		t.Fatalf("expected empty tree, got %d nodes", doc.Eng.Tree().Len())
	}
	if doc.Path != path {
		t.Fatalf("path should be kept for the eventual save")
	}
}

func TestDocumentCounts(t *testing.T) {
	doc := NewDocument(50)
	tr := doc.Eng.Tree()
	a, _ := tr.InsertAfter(0, "note", outline.KindItem, outline.TodoNone)
	tr.InsertChild(a, "open", outline.KindTodo, outline.TodoPending)
	tr.InsertChild(a, "done", outline.KindTodo, outline.TodoComplete)

	items, done, total := doc.Counts()
	if items != 3 || done != 1 || total != 2 {
		t.Fatalf("got items=%d done=%d total=%d", items, done, total)
	}
}

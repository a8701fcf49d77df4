package editor

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"outliner/config"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	wd := t.TempDir()
	prevWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd failed: %v", err)
	}
	if err := os.Chdir(wd); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prevWD) })
	return wd
}

func TestSaveSessionRemovesStaleFileWhenNoOpenFileTabs(t *testing.T) {
	wd := chdirTemp(t)

	stalePath := sessionPath(wd)
	if err := os.MkdirAll(filepath.Dir(stalePath), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(stalePath, []byte(`{"stale":true}`), 0o644); err != nil {
		t.Fatalf("write stale session failed: %v", err)
	}

	e := New(config.Default())
	e.SaveSession()

	if _, err := os.Stat(stalePath); !os.IsNotExist(err) {
		t.Fatalf("expected stale session file to be removed, stat err=%v", err)
	}
}

func TestSaveSessionWritesOpenFiles(t *testing.T) {
	wd := chdirTemp(t)

	e := New(config.Default())
	doc := NewDocument(config.Default().UndoLimit)
	doc.Path = filepath.Join(wd, "plan.log")
	e.docs = []*Document{doc}
	e.views[doc] = &DocView{scrollY: 3}
	e.activeTab = 0

	e.SaveSession()

	data, err := os.ReadFile(sessionPath(wd))
	if err != nil {
		t.Fatalf("expected session file, read failed: %v", err)
	}

	var got SessionData
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if got.ActiveTab != 0 || len(got.Files) != 1 || got.Files[0].Path != doc.Path {
		t.Fatalf("unexpected session data: %+v", got)
	}
	if got.Files[0].ScrollY != 3 {
		t.Fatalf("expected scroll offset 3, got %d", got.Files[0].ScrollY)
	}
}

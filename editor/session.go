package editor

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Sessions are keyed by working directory so each workspace reopens
// with its own set of notes.
type SessionData struct {
	WorkingDir string      `json:"working_dir"`
	ActiveTab  int         `json:"active_tab"`
	Files      []FileState `json:"files"`
}

type FileState struct {
	Path    string `json:"path"`
	ScrollY int    `json:"scroll_y"`
}

func sessionDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "loglog", "sessions")
}

func sessionPath(workDir string) string {
	hash := sha256.Sum256([]byte(workDir))
	return filepath.Join(sessionDir(), fmt.Sprintf("%x.json", hash[:8]))
}

func (e *Editor) SaveSession() {
	wd, err := os.Getwd()
	if err != nil {
		return
	}
	path := sessionPath(wd)

	session := SessionData{
		WorkingDir: wd,
		ActiveTab:  e.activeTab,
	}

	for _, doc := range e.docs {
		if doc.Path == "" {
			continue
		}
		fs := FileState{Path: doc.Path}
		if view := e.views[doc]; view != nil {
			fs.ScrollY = view.scrollY
		}
		session.Files = append(session.Files, fs)
	}

	if len(session.Files) == 0 {
		// No open file-backed tabs: clear any stale session so closed tabs don't return.
		_ = os.Remove(path)
		return
	}

	os.MkdirAll(sessionDir(), 0755)

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return
	}
	os.WriteFile(path, data, 0644)
}

func (e *Editor) RestoreSession() bool {
	wd, err := os.Getwd()
	if err != nil {
		return false
	}

	data, err := os.ReadFile(sessionPath(wd))
	if err != nil {
		return false
	}

	var session SessionData
	if err := json.Unmarshal(data, &session); err != nil {
		return false
	}
	if session.WorkingDir != wd {
		return false
	}

	restored := false
	for _, fs := range session.Files {
		if _, err := os.Stat(fs.Path); err != nil {
			continue
		}
		e.openFile(fs.Path)
		doc := e.activeDoc()
		if doc != nil && doc.Path == fs.Path {
			if view := e.activeView(); view != nil {
				view.scrollY = fs.ScrollY
			}
			restored = true
		}
	}

	if restored && session.ActiveTab >= 0 && session.ActiveTab < len(e.docs) {
		e.switchTab(session.ActiveTab)
	}

	return restored
}

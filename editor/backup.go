package editor

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const backupInterval = 30 * time.Second

type backupInfo struct {
	OriginalPath string `json:"original_path"`
	WorkDir      string `json:"work_dir"`
	Timestamp    string `json:"timestamp"`
}

func backupDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "loglog", "backups")
}

func backupPathForFile(originalPath string) string {
	h := sha256.Sum256([]byte(originalPath))
	name := fmt.Sprintf("%x.bak", h[:8])
	return filepath.Join(backupDir(), name)
}

func backupMetaPath(backupPath string) string {
	return backupPath + ".json"
}

func (e *Editor) startBackupTimer() {
	go func() {
		ticker := time.NewTicker(backupInterval)
		defer ticker.Stop()
		for {
			<-ticker.C
			if e.quit {
				return
			}
			e.saveBackups()
		}
	}()
}

func (e *Editor) saveBackups() {
	dir := backupDir()
	os.MkdirAll(dir, 0755)

	for _, doc := range e.docs {
		if !doc.Dirty || doc.Path == "" {
			continue
		}
		bpath := backupPathForFile(doc.Path)
		os.WriteFile(bpath, []byte(doc.Content()), 0644)

		meta := backupInfo{
			OriginalPath: doc.Path,
			WorkDir:      e.watchedRoot,
			Timestamp:    time.Now().Format(time.RFC3339),
		}
		metaData, _ := json.Marshal(meta)
		os.WriteFile(backupMetaPath(bpath), metaData, 0644)
	}
}

func (e *Editor) cleanBackup(path string) {
	if path == "" {
		return
	}
	bpath := backupPathForFile(path)
	os.Remove(bpath)
	os.Remove(backupMetaPath(bpath))
}

func (e *Editor) cleanAllBackups() {
	for _, doc := range e.docs {
		e.cleanBackup(doc.Path)
	}
}

// checkForBackups finds backups left by a crashed session in this
// working directory.
func (e *Editor) checkForBackups() []backupInfo {
	entries, err := os.ReadDir(backupDir())
	if err != nil {
		return nil
	}

	var found []backupInfo
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		metaPath := filepath.Join(backupDir(), entry.Name())
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}
		var info backupInfo
		if json.Unmarshal(data, &info) != nil {
			continue
		}
		if info.WorkDir != e.watchedRoot {
			continue
		}
		backupFile := strings.TrimSuffix(metaPath, ".json")
		if _, err := os.Stat(backupFile); err == nil {
			found = append(found, info)
		}
	}
	return found
}

// recoverBackup restores a backup file to the original path.
func (e *Editor) recoverBackup(info backupInfo) error {
	bpath := backupPathForFile(info.OriginalPath)
	data, err := os.ReadFile(bpath)
	if err != nil {
		return err
	}
	if err := os.WriteFile(info.OriginalPath, data, 0644); err != nil {
		return err
	}
	os.Remove(bpath)
	os.Remove(backupMetaPath(bpath))
	return nil
}

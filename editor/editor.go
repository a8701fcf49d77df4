package editor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"outliner/config"
	"outliner/highlight"
	"outliner/outline"
	"outliner/ui"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
)

type Component interface {
	Render(screen tcell.Screen, x, y, width, height int)
	HandleKey(ev *tcell.EventKey) bool
	HandleMouse(ev *tcell.EventMouse) bool
	IsFocused() bool
	SetFocused(bool)
}

type Editor struct {
	screen    tcell.Screen
	docs      []*Document
	activeTab int
	cfg       *config.Config

	fileTree  *ui.FileTree
	tabBar    *ui.TabBar
	statusBar *ui.StatusBar
	dialog    *ui.Dialog
	finder    *ui.NodeFinder

	highlight *highlight.Highlighter

	treeOpen  bool
	treeWidth int

	quit        bool
	quitPending bool   // true after first Ctrl+Q with unsaved changes
	focusTarget string // "outline" or "tree"

	// Scroll state per document
	views map[*Document]*DocView

	// Mouse click tracking
	mousePressX, mousePressY int
	mousePressed             bool
	lastClickTime            time.Time
	lastClickRow             int

	// File watching
	fileWatcher *fsnotify.Watcher
	watchedRoot string

	// Debounced autosave timers per document
	autosave map[*Document]*time.Timer

	// Incremental search driven by SearchStepEvent
	search    *outline.Search
	searchDoc *Document

	// Cursor blinking in edit mode
	cursorVisible bool
	lastBlinkTime time.Time

	// Temporary status messages
	statusMessageTime    time.Time
	statusMessageIsError bool
}

type DocView struct {
	scrollY int
}

// FileWatchEvent carries file system change notifications to the main event loop.
type FileWatchEvent struct {
	tcell.EventTime
	Path string
	Op   fsnotify.Op
}

// AutosaveEvent fires after the configured quiet period since the last edit.
type AutosaveEvent struct {
	tcell.EventTime
	Doc *Document
}

// SearchStepEvent asks the main loop to advance the running search by a chunk.
type SearchStepEvent struct {
	tcell.EventTime
}

func New(cfg *config.Config) *Editor {
	return &Editor{
		cfg:         cfg,
		highlight:   highlight.New(),
		treeOpen:    true,
		treeWidth:   cfg.TreeWidth,
		focusTarget: "outline",
		views:       make(map[*Document]*DocView),
		autosave:    make(map[*Document]*time.Timer),
	}
}

func (e *Editor) Run(files []string, isDirOpen bool) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}

	screen.EnableMouse()
	screen.EnablePaste()
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()

	e.screen = screen

	cwd, _ := os.Getwd()

	theme := e.cfg.GetTheme()

	e.tabBar = ui.NewTabBar()
	e.tabBar.Theme = theme
	e.tabBar.OnSwitch = func(idx int) { e.switchTab(idx) }
	e.tabBar.OnClose = func(idx int) { e.closeTab(idx) }

	e.fileTree = ui.NewFileTree(cwd)
	e.fileTree.Theme = theme
	e.fileTree.OnFileOpen = func(path string) {
		e.openFile(path)
		e.focusTarget = "outline"
		e.updateFocus()
	}

	e.statusBar = ui.NewStatusBar()
	e.statusBar.Theme = theme

	e.watchedRoot = cwd
	e.setupFileWatcher(screen)

	e.startBackupTimer()
	backups := e.checkForBackups()
	if len(backups) > 0 {
		for _, info := range backups {
			e.recoverBackup(info)
		}
		e.statusBar.Message = fmt.Sprintf("Recovered %d backup(s) from previous session", len(backups))
	}

	if len(files) > 0 {
		for _, f := range files {
			absPath, _ := filepath.Abs(f)
			e.openFile(absPath)
		}
	} else {
		if !e.RestoreSession() {
			if !isDirOpen {
				e.openEmptyDoc()
			} else {
				e.focusTarget = "tree"
			}
		}
	}

	e.updateFocus()

	e.cursorVisible = true
	e.lastBlinkTime = time.Now()
	blinkInterval := 500 * time.Millisecond

	for !e.quit {
		e.clearExpiredMessages()

		e.render()

		ev := screen.PollEvent()

		if time.Since(e.lastBlinkTime) >= blinkInterval {
			e.cursorVisible = !e.cursorVisible
			e.lastBlinkTime = time.Now()
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			e.handleKey(ev)
		case *tcell.EventMouse:
			e.handleMouse(ev)
		case *FileWatchEvent:
			e.handleFileWatchEvent(ev)
		case *AutosaveEvent:
			e.handleAutosave(ev.Doc)
		case *SearchStepEvent:
			e.stepSearch()
		}
	}

	e.SaveSession()

	if e.fileWatcher != nil {
		e.fileWatcher.Close()
	}
	e.cleanAllBackups()

	screen.Clear()
	screen.Fini()

	return nil
}

func (e *Editor) openFile(path string) {
	for i, doc := range e.docs {
		if doc.Path == path {
			e.switchTab(i)
			return
		}
	}

	fileExists := true
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fileExists = false
	}

	doc, err := NewDocumentFromFile(path, e.cfg.UndoLimit)
	if err != nil {
		e.setTemporaryError("Error: " + err.Error())
		return
	}
	e.docs = append(e.docs, doc)
	e.views[doc] = &DocView{}
	e.tabBar.AddTab(path, false)
	e.activeTab = len(e.docs) - 1

	if e.treeOpen && e.fileTree != nil {
		e.fileTree.SelectPath(path)
	}

	if !fileExists {
		e.statusBar.Message = "New file: " + filepath.Base(path)
	} else {
		e.statusBar.Message = ""
	}
	e.updateStatus()
}

func (e *Editor) openEmptyDoc() {
	doc := NewDocument(e.cfg.UndoLimit)
	e.docs = append(e.docs, doc)
	e.views[doc] = &DocView{}
	e.tabBar.AddTab("", false)
	e.activeTab = len(e.docs) - 1
	e.updateStatus()
}

func (e *Editor) switchTab(idx int) {
	if idx >= 0 && idx < len(e.docs) {
		e.activeTab = idx
		e.tabBar.Active = idx
		e.updateStatus()

		if e.treeOpen && e.fileTree != nil && e.docs[idx].Path != "" {
			e.fileTree.SelectPath(e.docs[idx].Path)
		}
	}
}

func (e *Editor) nextTab() {
	if len(e.docs) > 1 {
		e.switchTab((e.activeTab + 1) % len(e.docs))
	}
}

func (e *Editor) prevTab() {
	if len(e.docs) > 1 {
		e.switchTab((e.activeTab - 1 + len(e.docs)) % len(e.docs))
	}
}

func (e *Editor) closeTab(idx int) {
	if idx < 0 || idx >= len(e.docs) {
		return
	}
	doc := e.docs[idx]
	if doc.Dirty {
		d := ui.NewSaveConfirmDialog(doc.Title())
		d.Theme = e.cfg.GetTheme()
		d.OnConfirm = func(answer rune) {
			switch answer {
			case 'y':
				if doc.Path == "" {
					e.dialog = nil
					e.openSaveAsDialog()
					return
				}
				if err := doc.Save(); err != nil {
					e.setTemporaryError("Error saving: " + err.Error())
				} else {
					e.cleanBackup(doc.Path)
					e.removeTab(idx)
				}
			case 'n':
				e.removeTab(idx)
			case 'c':
			}
			e.dialog = nil
		}
		e.dialog = d
		return
	}
	e.removeTab(idx)
}

func (e *Editor) removeTab(idx int) {
	if idx < 0 || idx >= len(e.docs) {
		return
	}
	doc := e.docs[idx]
	if t, ok := e.autosave[doc]; ok {
		t.Stop()
		delete(e.autosave, doc)
	}
	if e.searchDoc == doc {
		e.search = nil
		e.searchDoc = nil
	}
	delete(e.views, doc)
	e.docs = append(e.docs[:idx], e.docs[idx+1:]...)
	e.tabBar.RemoveTab(idx)

	if len(e.docs) == 0 {
		e.quit = true
		return
	}
	if e.activeTab >= len(e.docs) {
		e.activeTab = len(e.docs) - 1
	}
	e.tabBar.Active = e.activeTab
	e.updateStatus()
}

func (e *Editor) activeDoc() *Document {
	if e.activeTab >= 0 && e.activeTab < len(e.docs) {
		return e.docs[e.activeTab]
	}
	return nil
}

func (e *Editor) activeView() *DocView {
	doc := e.activeDoc()
	if doc == nil {
		return nil
	}
	return e.views[doc]
}

// markDirty flags the active document after a mutation and arms the
// autosave timer.
func (e *Editor) markDirty() {
	doc := e.activeDoc()
	if doc == nil {
		return
	}
	doc.Dirty = true
	e.tabBar.SetModified(e.activeTab, true)
	e.scheduleAutosave(doc)
	e.updateStatus()
}

func (e *Editor) scheduleAutosave(doc *Document) {
	if doc.Path == "" || e.cfg.AutosaveDelayMS <= 0 {
		return
	}
	delay := time.Duration(e.cfg.AutosaveDelayMS) * time.Millisecond
	if t, ok := e.autosave[doc]; ok {
		t.Reset(delay)
		return
	}
	e.autosave[doc] = time.AfterFunc(delay, func() {
		ev := &AutosaveEvent{Doc: doc}
		ev.SetEventNow()
		e.screen.PostEvent(ev)
	})
}

func (e *Editor) handleAutosave(doc *Document) {
	for _, d := range e.docs {
		if d != doc {
			continue
		}
		// Skip while an edit is in flight so drafts never hit disk.
		if !doc.Dirty || doc.Path == "" || doc.Eng.Mode() == outline.ModeEditing {
			return
		}
		if doc.ExternallyModified {
			return
		}
		if err := doc.Save(); err != nil {
			e.setTemporaryError("Autosave failed: " + err.Error())
			return
		}
		for i, dd := range e.docs {
			if dd == doc {
				e.tabBar.SetModified(i, false)
			}
		}
		e.cleanBackup(doc.Path)
		e.updateStatus()
		return
	}
}

func (e *Editor) saveCurrentDoc() {
	doc := e.activeDoc()
	if doc == nil {
		return
	}
	if doc.Eng.Mode() == outline.ModeEditing {
		doc.Eng.CommitEdit()
	}
	if doc.Path == "" {
		e.openSaveAsDialog()
		return
	}
	if err := doc.Save(); err != nil {
		e.setTemporaryError("Error saving: " + err.Error())
		return
	}
	e.setTemporaryMessage("Saved " + doc.Title())
	e.tabBar.SetModified(e.activeTab, false)
	e.tabBar.SetExternallyModified(e.activeTab, false)
	e.cleanBackup(doc.Path)
	e.updateStatus()
}

func (e *Editor) openSaveAsDialog() {
	doc := e.activeDoc()
	if doc == nil {
		return
	}
	d := ui.NewSaveAsDialog()
	d.Theme = e.cfg.GetTheme()
	d.OnSubmit = func(name string) {
		e.dialog = nil
		if name == "" {
			return
		}
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(e.watchedRoot, name)
		}
		if err := doc.SaveAs(path); err != nil {
			e.setTemporaryError("Error saving: " + err.Error())
			return
		}
		e.tabBar.Tabs[e.activeTab].Title = doc.Title()
		e.tabBar.Tabs[e.activeTab].Path = path
		e.tabBar.SetModified(e.activeTab, false)
		e.fileTree.Refresh()
		e.setTemporaryMessage("Saved " + doc.Title())
		e.updateStatus()
	}
	d.OnCancel = func() { e.dialog = nil }
	e.dialog = d
}

func (e *Editor) openOpenDialog() {
	d := ui.NewInputDialog("Open: ")
	d.Theme = e.cfg.GetTheme()
	d.OnSubmit = func(name string) {
		e.dialog = nil
		if name == "" {
			return
		}
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(e.watchedRoot, name)
		}
		e.openFile(path)
		e.updateStatus()
	}
	d.OnCancel = func() { e.dialog = nil }
	e.dialog = d
}

func (e *Editor) reloadDoc() {
	doc := e.activeDoc()
	if doc == nil || doc.Path == "" {
		return
	}
	if _, err := os.Stat(doc.Path); os.IsNotExist(err) {
		e.setTemporaryError("Cannot reload: file doesn't exist on disk")
		return
	}

	if doc.Dirty {
		d := ui.NewReloadConfirmDialog(doc.Title())
		d.Theme = e.cfg.GetTheme()
		d.OnConfirm = func(answer rune) {
			e.dialog = nil
			if answer == 'y' {
				e.performReload(e.activeTab)
			}
		}
		e.dialog = d
	} else {
		e.performReload(e.activeTab)
	}
}

func (e *Editor) performReload(idx int) {
	if idx < 0 || idx >= len(e.docs) {
		return
	}
	doc := e.docs[idx]
	newDoc, err := NewDocumentFromFile(doc.Path, e.cfg.UndoLimit)
	if err != nil {
		e.setTemporaryError("Error reloading: " + err.Error())
		return
	}
	newDoc.LastSaveTime = time.Now()
	e.docs[idx] = newDoc
	e.views[newDoc] = e.views[doc]
	delete(e.views, doc)
	if e.searchDoc == doc {
		e.search = nil
		e.searchDoc = nil
	}
	e.tabBar.SetModified(idx, false)
	e.tabBar.SetExternallyModified(idx, false)
	e.setTemporaryMessage("Reloaded " + newDoc.Title())
	e.updateStatus()
}

func (e *Editor) handleQuit() {
	hasDirty := false
	for _, doc := range e.docs {
		if doc.Dirty {
			hasDirty = true
			break
		}
	}
	if hasDirty && !e.quitPending {
		e.quitPending = true
		e.setTemporaryError("Unsaved changes! Press Ctrl+Q again to quit anyway")
		return
	}
	e.quit = true
}

func (e *Editor) toggleTree() {
	e.treeOpen = !e.treeOpen
	if !e.treeOpen && e.focusTarget == "tree" {
		e.focusTarget = "outline"
	}
	e.updateFocus()
}

func (e *Editor) toggleTreeFocus() {
	if !e.treeOpen {
		e.treeOpen = true
		e.focusTarget = "tree"
	} else if e.focusTarget == "tree" {
		e.focusTarget = "outline"
	} else {
		e.focusTarget = "tree"
	}
	e.updateFocus()
}

func (e *Editor) updateFocus() {
	if e.fileTree != nil {
		e.fileTree.SetFocused(e.focusTarget == "tree")
	}
}

func (e *Editor) updateStatus() {
	doc := e.activeDoc()
	if doc == nil {
		return
	}
	e.statusBar.Filename = doc.Title()
	e.statusBar.Dirty = doc.Dirty
	if doc.Eng.Mode() == outline.ModeEditing {
		e.statusBar.Mode = "EDIT"
	} else {
		e.statusBar.Mode = "LIST"
	}

	items, done, total := doc.Counts()
	e.statusBar.NodeCount = items
	if e.cfg.ShowProgress {
		e.statusBar.TodoDone = done
		e.statusBar.TodoTotal = total
	} else {
		e.statusBar.TodoDone = 0
		e.statusBar.TodoTotal = 0
	}
}

// Layout helpers

func (e *Editor) treeLeft() int {
	if e.treeOpen {
		return e.treeWidth
	}
	return 0
}

func (e *Editor) outlineLayout() (x, y, w, h int) {
	screenW, screenH := e.screen.Size()
	left := e.treeLeft()
	x = left
	y = 1 // below tab bar
	w = screenW - left
	h = screenH - 2 // -1 tab bar, -1 status bar
	if e.dialog != nil && (e.dialog.Type == ui.DialogFind || e.dialog.Type == ui.DialogSaveAs || e.dialog.Type == ui.DialogInput) {
		h-- // input bar sits above the status bar
	}
	return
}

func (e *Editor) setTemporaryMessage(msg string) {
	e.statusBar.Message = msg
	e.statusBar.MessageError = false
	e.statusMessageTime = time.Now()
	e.statusMessageIsError = false
}

func (e *Editor) setTemporaryError(msg string) {
	e.statusBar.Message = msg
	e.statusBar.MessageError = true
	e.statusMessageTime = time.Now()
	e.statusMessageIsError = true
}

func (e *Editor) clearExpiredMessages() {
	if !e.statusMessageTime.IsZero() && time.Since(e.statusMessageTime) > 5*time.Second {
		e.statusBar.Message = ""
		e.statusBar.MessageError = false
		e.statusMessageTime = time.Time{}
		e.statusMessageIsError = false
	}
}

func (e *Editor) openNodeFinder() {
	doc := e.activeDoc()
	if doc == nil {
		return
	}
	entries := ui.CollectEntries(doc.Eng.Tree())
	nf := ui.NewNodeFinder(entries, e.cfg.GetTheme())
	nf.OnSelect = func(id outline.NodeID) {
		e.finder = nil
		e.jumpToNode(id)
	}
	nf.OnClose = func() { e.finder = nil }
	e.finder = nf
}

// jumpToNode unfolds the path to a node, focuses it and scrolls it
// into view.
func (e *Editor) jumpToNode(id outline.NodeID) {
	doc := e.activeDoc()
	if doc == nil {
		return
	}
	t := doc.Eng.Tree()
	n := t.Node(id)
	if n == nil {
		return
	}
	for p := n.Parent(); p != 0; {
		pn := t.Node(p)
		if pn == nil {
			break
		}
		if pn.Folded {
			t.SetFolded(p, false, false)
		}
		p = pn.Parent()
	}
	doc.Eng.FocusNode(id)
	e.scrollFocusIntoView()
}

// File watching

func (e *Editor) setupFileWatcher(screen tcell.Screen) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		// Continue without watching.
		return
	}
	e.fileWatcher = watcher
	e.addWatchRecursive(e.watchedRoot)

	go func() {
		debounceTimer := time.NewTimer(100 * time.Millisecond)
		debounceTimer.Stop()
		var pendingEvents []fsnotify.Event

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if e.shouldIgnorePath(event.Name) {
					continue
				}
				pendingEvents = append(pendingEvents, event)
				debounceTimer.Reset(100 * time.Millisecond)

			case <-debounceTimer.C:
				for _, event := range pendingEvents {
					ev := &FileWatchEvent{
						Path: event.Name,
						Op:   event.Op,
					}
					ev.SetEventNow()
					screen.PostEvent(ev)

					if event.Op&fsnotify.Create != 0 {
						if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
							e.addWatchRecursive(event.Name)
						}
					}
				}
				pendingEvents = nil

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				_ = err
			}
		}
	}()
}

func (e *Editor) addWatchRecursive(root string) {
	if e.fileWatcher == nil {
		return
	}
	filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if e.shouldIgnorePath(path) {
				return filepath.SkipDir
			}
			e.fileWatcher.Add(path)
		}
		return nil
	})
}

func (e *Editor) shouldIgnorePath(path string) bool {
	base := filepath.Base(path)
	if base == "node_modules" {
		return true
	}
	return strings.HasPrefix(base, ".") && base != "."
}

func (e *Editor) handleFileWatchEvent(ev *FileWatchEvent) {
	var affected *Document
	var docIdx int
	for i, doc := range e.docs {
		if doc.Path == ev.Path {
			affected = doc
			docIdx = i
			break
		}
	}

	if affected != nil {
		switch {
		case ev.Op&fsnotify.Remove != 0:
			e.statusBar.Message = "Warning: " + filepath.Base(ev.Path) + " was deleted externally"

		case ev.Op&fsnotify.Write != 0 || ev.Op&fsnotify.Create != 0:
			info, err := os.Stat(ev.Path)
			if err != nil {
				return
			}
			// Grace period so our own saves don't bounce back as reloads.
			if affected.LastSaveTime.IsZero() || info.ModTime().Sub(affected.LastSaveTime) > time.Second {
				if affected.Dirty {
					affected.ExternallyModified = true
					e.tabBar.SetExternallyModified(docIdx, true)
					e.statusBar.Message = "⚠ " + filepath.Base(ev.Path) + " was modified externally! (unsaved changes)"
				} else {
					e.performReload(docIdx)
					e.statusBar.Message = "↻ " + filepath.Base(ev.Path) + " (reloaded)"
				}
			}
		}
	}

	if strings.HasPrefix(ev.Path, e.watchedRoot) {
		if ev.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
			e.fileTree.Refresh()
		}
	}
}

package editor

import (
	"time"

	"outliner/clipboardx"
	"outliner/format"
	"outliner/outline"
	"outliner/ui"

	"github.com/gdamore/tcell/v2"
)

func (e *Editor) handleKey(ev *tcell.EventKey) {
	// A second Ctrl+Q confirms quitting with unsaved changes; any
	// other key cancels the pending quit.
	if ev.Key() != tcell.KeyCtrlQ {
		e.quitPending = false
	}

	if e.finder != nil {
		e.finder.HandleKey(ev)
		return
	}
	if e.dialog != nil {
		e.dialog.HandleKey(ev)
		return
	}

	doc := e.activeDoc()
	editing := doc != nil && doc.Eng.Mode() == outline.ModeEditing

	// Ctrl+H doubles as Backspace on many terminals; while editing it
	// must reach the draft, not the help dialog.
	isGlobal := !(editing && (ev.Key() == tcell.KeyCtrlH || ev.Key() == tcell.KeyBackspace))
	if isGlobal && e.handleGlobalKey(ev) {
		e.updateStatus()
		return
	}

	if e.focusTarget == "tree" {
		e.fileTree.HandleKey(ev)
		return
	}
	if doc == nil {
		return
	}

	before := doc.Eng.Tree().Version()
	if editing {
		e.handleEditKey(ev, doc)
	} else {
		e.handleNormalKey(ev, doc)
	}
	if doc.Eng.Tree().Version() != before {
		e.markDirty()
	}
	e.updateStatus()
}

func (e *Editor) handleGlobalKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlQ:
		e.handleQuit()
		return true
	case tcell.KeyCtrlS:
		e.saveCurrentDoc()
		return true
	case tcell.KeyCtrlW:
		e.closeTab(e.activeTab)
		return true
	case tcell.KeyCtrlN:
		e.openEmptyDoc()
		return true
	case tcell.KeyCtrlO:
		e.openOpenDialog()
		return true
	case tcell.KeyCtrlB:
		e.toggleTree()
		return true
	case tcell.KeyCtrlE:
		e.toggleTreeFocus()
		return true
	case tcell.KeyCtrlP:
		e.openNodeFinder()
		return true
	case tcell.KeyCtrlF:
		e.openFindDialog()
		return true
	case tcell.KeyCtrlR:
		e.reloadDoc()
		return true
	case tcell.KeyF1, tcell.KeyCtrlH:
		e.openHelpDialog()
		return true
	case tcell.KeyCtrlL:
		e.nextTab()
		return true
	}
	return false
}

func (e *Editor) handleNormalKey(ev *tcell.EventKey, doc *Document) bool {
	eng := doc.Eng

	switch ev.Key() {
	case tcell.KeyUp:
		switch {
		case ev.Modifiers()&tcell.ModCtrl != 0:
			eng.MoveUp()
		case ev.Modifiers()&tcell.ModShift != 0:
			eng.ExtendSelection(outline.DirUp)
		default:
			eng.MoveFocus(outline.DirUp)
		}
		e.scrollFocusIntoView()
		return true
	case tcell.KeyDown:
		switch {
		case ev.Modifiers()&tcell.ModCtrl != 0:
			eng.MoveDown()
		case ev.Modifiers()&tcell.ModShift != 0:
			eng.ExtendSelection(outline.DirDown)
		default:
			eng.MoveFocus(outline.DirDown)
		}
		e.scrollFocusIntoView()
		return true
	case tcell.KeyLeft:
		if ev.Modifiers()&tcell.ModShift != 0 {
			eng.ExtendSelection(outline.DirLeft)
		} else {
			eng.MoveFocus(outline.DirLeft)
		}
		e.scrollFocusIntoView()
		return true
	case tcell.KeyRight:
		if ev.Modifiers()&tcell.ModShift != 0 {
			eng.ExtendSelection(outline.DirRight)
		} else {
			eng.MoveFocus(outline.DirRight)
		}
		e.scrollFocusIntoView()
		return true
	case tcell.KeyEnter:
		eng.StartEdit()
		e.scrollFocusIntoView()
		return true
	case tcell.KeyTab:
		eng.Indent()
		return true
	case tcell.KeyBacktab:
		eng.Outdent()
		return true
	case tcell.KeyDelete:
		eng.DeleteSelection()
		e.scrollFocusIntoView()
		return true
	case tcell.KeyCtrlZ:
		if !eng.Undo() {
			e.setTemporaryMessage("Nothing to undo")
		}
		e.scrollFocusIntoView()
		return true
	case tcell.KeyCtrlY:
		if !eng.Redo() {
			e.setTemporaryMessage("Nothing to redo")
		}
		e.scrollFocusIntoView()
		return true
	case tcell.KeyCtrlC:
		e.copySelection()
		return true
	case tcell.KeyCtrlX:
		e.cutSelection()
		return true
	case tcell.KeyCtrlV:
		e.pasteClipboard()
		return true
	}

	if ev.Key() != tcell.KeyRune {
		return false
	}

	ch := ev.Rune()
	if ev.Modifiers()&tcell.ModAlt != 0 {
		switch {
		case ch == '0':
			eng.UnfoldAll()
			return true
		case ch >= '1' && ch <= '9':
			eng.FoldToLevel(int(ch - '0'))
			e.scrollFocusIntoView()
			return true
		}
		return false
	}

	switch ch {
	case ' ':
		eng.CycleTodo()
		return true
	case '?':
		eng.SetTodo(outline.TodoUnknown)
		return true
	case '-':
		eng.SetTodo(outline.TodoInProgress)
		return true
	case 'z':
		eng.ToggleFold(false)
		e.scrollFocusIntoView()
		return true
	case 'Z':
		eng.ToggleFold(true)
		e.scrollFocusIntoView()
		return true
	case 'f':
		eng.FocusMode(e.cfg.FocusLevel)
		e.scrollFocusIntoView()
		return true
	}
	return false
}

func (e *Editor) handleEditKey(ev *tcell.EventKey, doc *Document) bool {
	eng := doc.Eng

	switch ev.Key() {
	case tcell.KeyEscape:
		eng.CancelEdit()
		return true
	case tcell.KeyEnter:
		// Ctrl+Enter commits and leaves edit mode; plain Enter splits
		// the item and keeps editing the new sibling.
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			eng.CommitEdit()
		} else {
			eng.EditEnter()
		}
		e.scrollFocusIntoView()
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		eng.EditBackspace()
		return true
	case tcell.KeyDelete:
		eng.EditDelete()
		return true
	case tcell.KeyLeft:
		eng.CursorLeft()
		return true
	case tcell.KeyRight:
		eng.CursorRight()
		return true
	case tcell.KeyHome:
		eng.CursorHome()
		return true
	case tcell.KeyEnd:
		eng.CursorEnd()
		return true
	case tcell.KeyUp:
		eng.CommitEdit()
		eng.MoveFocus(outline.DirUp)
		e.scrollFocusIntoView()
		return true
	case tcell.KeyDown:
		eng.CommitEdit()
		eng.MoveFocus(outline.DirDown)
		e.scrollFocusIntoView()
		return true
	case tcell.KeyRune:
		eng.InsertRune(ev.Rune())
		return true
	}
	return false
}

func (e *Editor) openHelpDialog() {
	d := ui.NewHelpDialog()
	d.Theme = e.cfg.GetTheme()
	d.OnCancel = func() { e.dialog = nil }
	e.dialog = d
}

// Clipboard

func (e *Editor) copySelection() {
	doc := e.activeDoc()
	if doc == nil {
		return
	}
	roots := doc.Eng.SelectionRoots()
	if len(roots) == 0 {
		return
	}
	text := format.MarshalSubtrees(doc.Eng.Tree(), roots)
	if clipboardx.Write(text) {
		e.setTemporaryMessage("Copied")
	} else {
		e.setTemporaryError("Clipboard unavailable")
	}
}

func (e *Editor) cutSelection() {
	doc := e.activeDoc()
	if doc == nil {
		return
	}
	roots := doc.Eng.SelectionRoots()
	if len(roots) == 0 {
		return
	}
	text := format.MarshalSubtrees(doc.Eng.Tree(), roots)
	if !clipboardx.Write(text) {
		e.setTemporaryError("Clipboard unavailable")
		return
	}
	doc.Eng.DeleteSelection()
	e.scrollFocusIntoView()
	e.setTemporaryMessage("Cut")
}

func (e *Editor) pasteClipboard() {
	doc := e.activeDoc()
	if doc == nil {
		return
	}
	text := clipboardx.Read()
	if text == "" {
		return
	}
	src := format.FromText(text)
	if src.Len() == 0 {
		return
	}
	if doc.Eng.PasteAfterFocused(src) {
		e.scrollFocusIntoView()
	}
}

// Mouse

func (e *Editor) handleMouse(ev *tcell.EventMouse) {
	if e.finder != nil {
		e.finder.HandleMouse(ev)
		return
	}
	if e.dialog != nil && e.dialog.HandleMouse(ev) {
		return
	}

	if e.tabBar.HandleMouse(ev) {
		return
	}
	if e.treeOpen && e.fileTree.HandleMouse(ev) {
		e.focusTarget = "tree"
		e.updateFocus()
		return
	}

	doc := e.activeDoc()
	if doc == nil {
		return
	}
	before := doc.Eng.Tree().Version()
	e.handleOutlineMouse(ev, doc)
	if doc.Eng.Tree().Version() != before {
		e.markDirty()
	}
	e.updateStatus()
}

func (e *Editor) handleOutlineMouse(ev *tcell.EventMouse, doc *Document) {
	x, y, w, h := e.outlineLayout()
	mx, my := ev.Position()
	if mx < x || mx >= x+w || my < y || my >= y+h {
		e.mousePressed = false
		return
	}

	view := e.views[doc]
	if view == nil {
		view = &DocView{}
		e.views[doc] = view
	}
	eng := doc.Eng
	visible := eng.Visible()

	switch btn := ev.Buttons(); {
	case btn == tcell.WheelUp:
		view.scrollY -= 3
		if view.scrollY < 0 {
			view.scrollY = 0
		}
		return
	case btn == tcell.WheelDown:
		view.scrollY += 3
		if max := len(visible) - 1; view.scrollY > max {
			view.scrollY = max
		}
		if view.scrollY < 0 {
			view.scrollY = 0
		}
		return
	case btn == tcell.Button1:
		if !e.mousePressed {
			e.mousePressX, e.mousePressY = mx, my
			e.mousePressed = true
		}
		return
	case btn != tcell.ButtonNone || !e.mousePressed:
		return
	}

	// Click fires on release at the press position.
	e.mousePressed = false
	if mx != e.mousePressX || my != e.mousePressY {
		return
	}

	e.focusTarget = "outline"
	e.updateFocus()

	row := my - y + view.scrollY
	if row < 0 || row >= len(visible) {
		if eng.Mode() == outline.ModeEditing {
			eng.CommitEdit()
		}
		return
	}
	id := visible[row]

	// Clicking away from the item being edited commits the draft.
	if eng.Mode() == outline.ModeEditing && eng.EditingID() != id {
		eng.CommitEdit()
	}

	t := eng.Tree()
	n := t.Node(id)
	if n == nil {
		return
	}

	mods := ev.Modifiers()
	switch {
	case mods&tcell.ModCtrl != 0:
		eng.ToggleSelect(id)
	case mods&tcell.ModShift != 0:
		eng.RangeSelect(id)
	default:
		markerX := x + (t.Level(id)-1)*indentWidth
		if n.HasChildren() && mx == markerX {
			eng.ToggleFoldAt(id, false)
			return
		}
		isDouble := time.Since(e.lastClickTime) < 400*time.Millisecond && e.lastClickRow == row
		e.lastClickTime = time.Now()
		e.lastClickRow = row
		if isDouble {
			eng.StartEditAt(id)
		} else {
			eng.FocusNode(id)
		}
	}
}

package editor

import (
	"outliner/config"
	"outliner/outline"
	"outliner/ui"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Column layout per outline row: four cells of indent per level, a
// fold marker in the first indent cell of the node's own level, then
// the bullet or todo box, a space and the text.
const indentWidth = 4

func (e *Editor) render() {
	screen := e.screen
	screen.Clear()

	screenW, screenH := screen.Size()
	theme := e.cfg.GetTheme()

	e.tabBar.Theme = theme
	e.tabBar.Render(screen, 0, 0, screenW, 1)

	if e.treeOpen {
		e.fileTree.Theme = theme
		e.fileTree.Render(screen, 0, 1, e.treeWidth, screenH-2)
	}

	x, y, w, h := e.outlineLayout()
	e.renderOutline(screen, x, y, w, h)

	if e.dialog != nil {
		e.dialog.Theme = theme
		switch e.dialog.Type {
		case ui.DialogFind, ui.DialogSaveAs, ui.DialogInput:
			e.dialog.Render(screen, x, screenH-2, w, 1)
		case ui.DialogSaveConfirm, ui.DialogReloadConfirm:
			e.dialog.Render(screen, 0, screenH-1, screenW, 1)
		case ui.DialogHelp:
			e.dialog.Render(screen, 0, 1, screenW, screenH-2)
		}
	}

	if e.finder != nil {
		e.finder.Theme = theme
		e.finder.Render(screen, 0, 1, screenW, screenH-2)
	}

	e.statusBar.Theme = theme
	e.statusBar.Render(screen, 0, screenH-1, screenW, 1)

	screen.Show()
}

func (e *Editor) renderOutline(screen tcell.Screen, x, y, w, h int) {
	theme := e.cfg.GetTheme()
	bgStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground)

	for cy := y; cy < y+h; cy++ {
		for cx := x; cx < x+w; cx++ {
			screen.SetContent(cx, cy, ' ', nil, bgStyle)
		}
	}

	doc := e.activeDoc()
	if doc == nil {
		return
	}
	eng := doc.Eng
	t := eng.Tree()
	visible := eng.Visible()
	view := e.views[doc]
	if view == nil {
		view = &DocView{}
		e.views[doc] = view
	}

	if len(visible) == 0 {
		hint := "empty file, press Enter to add an item"
		hintStyle := bgStyle.Foreground(theme.Muted).Italic(true)
		for i, ch := range hint {
			if x+2+i < x+w {
				screen.SetContent(x+2+i, y, ch, nil, hintStyle)
			}
		}
		return
	}

	if view.scrollY > len(visible)-1 {
		view.scrollY = len(visible) - 1
	}
	if view.scrollY < 0 {
		view.scrollY = 0
	}

	sel := eng.Selection()
	focused := sel.Focused()
	editing := eng.Mode() == outline.ModeEditing

	for row := 0; row < h && row+view.scrollY < len(visible); row++ {
		id := visible[row+view.scrollY]
		n := t.Node(id)
		if n == nil {
			continue
		}
		level := t.Level(id)
		rowY := y + row

		rowStyle := bgStyle
		isFocused := id == focused
		if sel.Has(id) {
			rowStyle = tcell.StyleDefault.Background(theme.Selection).Foreground(theme.Foreground)
			for cx := x; cx < x+w; cx++ {
				screen.SetContent(cx, rowY, ' ', nil, rowStyle)
			}
		}

		// Indent guides under the ancestor columns
		guideStyle := rowStyle.Foreground(theme.IndentGuide)
		for l := 1; l < level; l++ {
			gx := x + (l-1)*indentWidth
			if gx < x+w {
				screen.SetContent(gx, rowY, '│', nil, guideStyle)
			}
		}

		col := x + (level-1)*indentWidth
		if n.HasChildren() {
			marker := '▾'
			if n.Folded {
				marker = '▸'
			}
			if col < x+w {
				screen.SetContent(col, rowY, marker, nil, rowStyle.Foreground(theme.FoldMarker))
			}
		}
		col += 2

		col = e.renderGlyph(screen, n, col, rowY, x+w, rowStyle, theme)

		text := n.Text
		cursor := -1
		if editing && id == eng.EditingID() {
			text, cursor = eng.Draft()
		}

		dimmed := n.Kind == outline.KindTodo && n.Todo == outline.TodoComplete && e.cfg.DimCompleted

		if cursor >= 0 {
			e.renderDraft(screen, text, cursor, col, rowY, x+w, rowStyle)
		} else {
			e.renderText(screen, text, col, rowY, x+w, rowStyle, dimmed, isFocused)
		}
	}
}

func (e *Editor) renderGlyph(screen tcell.Screen, n *outline.Node, col, rowY, maxX int, rowStyle tcell.Style, theme *config.ColorScheme) int {
	if n.Kind == outline.KindTodo {
		var box string
		var fg tcell.Color
		switch n.Todo {
		case outline.TodoInProgress:
			box, fg = "[-]", theme.TodoProgress
		case outline.TodoComplete:
			box, fg = "[x]", theme.TodoDone
		case outline.TodoUnknown:
			box, fg = "[?]", theme.TodoUnknown
		default:
			box, fg = "[ ]", theme.TodoPending
		}
		style := rowStyle.Foreground(fg)
		for _, ch := range box {
			if col < maxX {
				screen.SetContent(col, rowY, ch, nil, style)
				col++
			}
		}
	} else {
		if col < maxX {
			screen.SetContent(col, rowY, '•', nil, rowStyle.Foreground(theme.Bullet))
			col++
		}
	}
	if col < maxX {
		screen.SetContent(col, rowY, ' ', nil, rowStyle)
		col++
	}
	return col
}

func (e *Editor) renderText(screen tcell.Screen, text string, col, rowY, maxX int, rowStyle tcell.Style, dimmed, focused bool) {
	theme := e.cfg.GetTheme()
	for _, tok := range e.highlight.Inline(text) {
		style := rowStyle
		if tok.Code {
			fg, _, attrs := tok.Style.Decompose()
			style = rowStyle.Background(theme.CodeSpanBg).Attributes(attrs)
			if fg != tcell.ColorDefault {
				style = style.Foreground(fg)
			}
		}
		if dimmed {
			style = style.Foreground(theme.Muted).Dim(true)
		}
		if focused {
			style = style.Bold(true)
		}
		for _, ch := range tok.Text {
			cw := runewidth.RuneWidth(ch)
			if col+cw > maxX {
				return
			}
			screen.SetContent(col, rowY, ch, nil, style)
			col += cw
		}
	}
}

func (e *Editor) renderDraft(screen tcell.Screen, text string, cursor, col, rowY, maxX int, rowStyle tcell.Style) {
	runes := []rune(text)
	for i, ch := range runes {
		cw := runewidth.RuneWidth(ch)
		if col+cw > maxX {
			return
		}
		style := rowStyle
		if i == cursor && e.cursorVisible {
			style = style.Reverse(true)
		}
		screen.SetContent(col, rowY, ch, nil, style)
		col += cw
	}
	if cursor >= len(runes) && col < maxX && e.cursorVisible {
		screen.SetContent(col, rowY, ' ', nil, rowStyle.Reverse(true))
	}
}

// scrollFocusIntoView clamps the scroll offset so the focused row is
// on screen.
func (e *Editor) scrollFocusIntoView() {
	doc := e.activeDoc()
	if doc == nil {
		return
	}
	view := e.views[doc]
	if view == nil {
		return
	}
	_, _, _, h := e.outlineLayout()
	if h <= 0 {
		return
	}
	visible := doc.Eng.Visible()
	focused := doc.Eng.Selection().Focused()
	idx := -1
	for i, id := range visible {
		if id == focused {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	if idx < view.scrollY {
		view.scrollY = idx
	}
	if idx >= view.scrollY+h {
		view.scrollY = idx - h + 1
	}
}

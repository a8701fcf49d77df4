package ui

import (
	"strconv"

	"outliner/config"
	"outliner/outline"

	"github.com/gdamore/tcell/v2"
)

type DialogType int

const (
	DialogNone DialogType = iota
	DialogFind
	DialogSaveAs
	DialogSaveConfirm
	DialogReloadConfirm
	DialogHelp
	DialogInput // generic text input bar
)

type Dialog struct {
	Type    DialogType
	Input   string
	Cursor  int
	focused bool

	// Find state. Matches accumulate as the editor steps the search
	// between frames; Searching keeps a spinner hint on screen.
	Matches    []outline.Match
	MatchIndex int
	Searching  bool

	Theme *config.ColorScheme

	OnSubmit   func(value string)
	OnChange   func(value string) // fires on every find input edit
	OnCancel   func()
	OnNavigate func(id outline.NodeID)
	OnConfirm  func(answer rune) // 'y', 'n', 'c'

	Prompt string
}

func NewFindDialog() *Dialog {
	return &Dialog{Type: DialogFind, focused: true}
}

func NewSaveAsDialog() *Dialog {
	return &Dialog{Type: DialogSaveAs, focused: true}
}

func NewSaveConfirmDialog(filename string) *Dialog {
	return &Dialog{Type: DialogSaveConfirm, Input: filename, focused: true}
}

func NewReloadConfirmDialog(filename string) *Dialog {
	return &Dialog{Type: DialogReloadConfirm, Input: filename, focused: true}
}

func NewHelpDialog() *Dialog {
	return &Dialog{Type: DialogHelp, focused: true}
}

func NewInputDialog(prompt string) *Dialog {
	return &Dialog{Type: DialogInput, Prompt: prompt, focused: true}
}

func (d *Dialog) Render(screen tcell.Screen, x, y, width, height int) {
	switch d.Type {
	case DialogFind:
		d.renderInputBar(screen, x, y, width, "Find: ")
	case DialogSaveAs:
		d.renderInputBar(screen, x, y, width, "Save as: ")
	case DialogInput:
		d.renderInputBar(screen, x, y, width, d.Prompt)
	case DialogSaveConfirm:
		d.renderSaveConfirm(screen, x, y, width)
	case DialogReloadConfirm:
		d.renderReloadConfirm(screen, x, y, width)
	case DialogHelp:
		d.renderHelp(screen, x, y, width, height)
	}
}

func (d *Dialog) renderInputBar(screen tcell.Screen, x, y, width int, prompt string) {
	theme := d.Theme
	if theme == nil {
		theme = config.Themes["monokai"]
	}
	style := tcell.StyleDefault.Background(theme.DialogInputBg).Foreground(theme.DialogFg)
	promptStyle := tcell.StyleDefault.Background(theme.DialogInputBg).Foreground(theme.FoldMarker).Bold(true)

	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}

	col := x
	for _, ch := range prompt {
		if col < x+width {
			screen.SetContent(col, y, ch, nil, promptStyle)
			col++
		}
	}

	for i, ch := range []rune(d.Input) {
		if col >= x+width {
			break
		}
		if i == d.Cursor {
			screen.SetContent(col, y, ch, nil, style.Reverse(true))
		} else {
			screen.SetContent(col, y, ch, nil, style)
		}
		col++
	}
	if d.Cursor >= len([]rune(d.Input)) && col < x+width {
		screen.SetContent(col, y, ' ', nil, style.Reverse(true))
		col++
	}

	if d.Type == DialogFind {
		var info string
		switch {
		case d.Searching:
			info = " (searching…)"
		case len(d.Matches) > 0:
			info = " (" + strconv.Itoa(d.MatchIndex+1) + "/" + strconv.Itoa(len(d.Matches)) + ")"
		case d.Input != "":
			info = " (0)"
		}
		if info != "" {
			infoStart := x + width - len([]rune(info))
			if infoStart > col {
				infoStyle := style.Foreground(theme.Muted)
				for i, ch := range []rune(info) {
					screen.SetContent(infoStart+i, y, ch, nil, infoStyle)
				}
			}
		}
	}
}

func (d *Dialog) renderSaveConfirm(screen tcell.Screen, x, y, width int) {
	style := tcell.StyleDefault.Background(tcell.ColorDarkRed).Foreground(tcell.ColorWhite)
	msg := " Save changes to " + d.Input + "? [Y]es [N]o [C]ancel "

	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}
	col := x
	for _, ch := range msg {
		if col < x+width {
			screen.SetContent(col, y, ch, nil, style)
			col++
		}
	}
}

func (d *Dialog) renderReloadConfirm(screen tcell.Screen, x, y, width int) {
	style := tcell.StyleDefault.Background(tcell.ColorOrange).Foreground(tcell.ColorBlack)
	msg := " Reload " + d.Input + " from disk? [Y]es [C]ancel "

	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}
	col := x
	for _, ch := range msg {
		if col < x+width {
			screen.SetContent(col, y, ch, nil, style)
			col++
		}
	}
}

func (d *Dialog) renderHelp(screen tcell.Screen, x, y, width, height int) {
	theme := d.Theme
	if theme == nil {
		theme = config.Themes["monokai"]
	}

	overlayStyle := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorBlack)
	borderStyle := tcell.StyleDefault.Background(theme.DialogBg).Foreground(theme.DialogFg)
	bgStyle := tcell.StyleDefault.Background(theme.DialogBg).Foreground(theme.DialogFg)
	titleStyle := tcell.StyleDefault.Background(theme.StatusBarModeBg).Foreground(tcell.ColorBlack).Bold(true)
	categoryStyle := tcell.StyleDefault.Background(theme.DialogBg).Foreground(theme.TreeHeaderFg).Bold(true)
	keyStyle := tcell.StyleDefault.Background(theme.DialogBg).Foreground(theme.FoldMarker)
	descStyle := tcell.StyleDefault.Background(theme.DialogBg).Foreground(theme.Foreground)
	footerStyle := tcell.StyleDefault.Background(theme.DialogBg).Foreground(theme.Muted).Italic(true)

	keybindings := []struct {
		category string
		key      string
		desc     string
	}{
		{"FILES", "", ""},
		{"", "Ctrl+S", "Save"},
		{"", "Ctrl+N", "New note"},
		{"", "Ctrl+O", "Open file by path"},
		{"", "Ctrl+W", "Close tab"},
		{"", "Ctrl+Q", "Quit"},
		{"", "Ctrl+B", "Toggle file sidebar"},
		{"", "", ""},
		{"ITEMS", "", ""},
		{"", "Enter", "Edit item / split while editing"},
		{"", "Esc", "Discard edit"},
		{"", "Ctrl+Enter", "Commit edit"},
		{"", "Space", "Cycle todo state"},
		{"", "-", "Mark in progress"},
		{"", "?", "Mark unknown"},
		{"", "Tab / Shift+Tab", "Indent / Outdent"},
		{"", "Ctrl+Up/Down", "Move item up/down"},
		{"", "Delete", "Delete selection"},
		{"", "Ctrl+C/X/V", "Copy / Cut / Paste subtrees"},
		{"", "Ctrl+Z / Ctrl+Y", "Undo / Redo"},
		{"", "", ""},
		{"NAVIGATION", "", ""},
		{"", "Arrows", "Move focus"},
		{"", "Shift+Arrows", "Extend selection"},
		{"", "z / Z", "Fold item / fold subtree"},
		{"", "Alt+1-9", "Fold to depth"},
		{"", "Alt+0", "Unfold everything"},
		{"", "f", "Focus mode on current item"},
		{"", "Ctrl+P", "Jump to item"},
		{"", "Ctrl+F", "Find"},
		{"", "Ctrl+H / F1", "This help"},
	}

	dialogW := 58
	dialogH := len(keybindings) + 4
	if dialogW > width-4 {
		dialogW = width - 4
	}
	if dialogH > height-4 {
		dialogH = height - 4
	}

	dialogX := x + (width-dialogW)/2
	dialogY := y + (height-dialogH)/2

	for dy := 0; dy < height; dy++ {
		for dx := 0; dx < width; dx++ {
			screen.SetContent(x+dx, y+dy, '░', nil, overlayStyle)
		}
	}

	for dy := 0; dy < dialogH; dy++ {
		for dx := 0; dx < dialogW; dx++ {
			screen.SetContent(dialogX+dx, dialogY+dy, ' ', nil, bgStyle)
		}
	}

	for dx := 0; dx < dialogW; dx++ {
		screen.SetContent(dialogX+dx, dialogY, '─', nil, borderStyle)
		screen.SetContent(dialogX+dx, dialogY+dialogH-1, '─', nil, borderStyle)
	}
	for dy := 0; dy < dialogH; dy++ {
		screen.SetContent(dialogX, dialogY+dy, '│', nil, borderStyle)
		screen.SetContent(dialogX+dialogW-1, dialogY+dy, '│', nil, borderStyle)
	}
	screen.SetContent(dialogX, dialogY, '┌', nil, borderStyle)
	screen.SetContent(dialogX+dialogW-1, dialogY, '┐', nil, borderStyle)
	screen.SetContent(dialogX, dialogY+dialogH-1, '└', nil, borderStyle)
	screen.SetContent(dialogX+dialogW-1, dialogY+dialogH-1, '┘', nil, borderStyle)

	title := " Keyboard Shortcuts "
	titleX := dialogX + (dialogW-len(title))/2
	for i, ch := range title {
		screen.SetContent(titleX+i, dialogY, ch, nil, titleStyle)
	}

	row := dialogY + 2
	for _, kb := range keybindings {
		if row >= dialogY+dialogH-2 {
			break
		}
		if kb.category != "" {
			col := dialogX + 3
			for _, ch := range kb.category {
				if col < dialogX+dialogW-3 {
					screen.SetContent(col, row, ch, nil, categoryStyle)
					col++
				}
			}
			row++
			continue
		}
		if kb.key == "" {
			row++
			continue
		}

		col := dialogX + 5
		for _, ch := range kb.key {
			if col < dialogX+dialogW-3 {
				screen.SetContent(col, row, ch, nil, keyStyle)
				col++
			}
		}
		col = dialogX + 24
		for _, ch := range kb.desc {
			if col < dialogX+dialogW-3 {
				screen.SetContent(col, row, ch, nil, descStyle)
				col++
			}
		}
		row++
	}

	footer := "Press ESC or F1 to close"
	footerY := dialogY + dialogH - 1
	footerX := dialogX + (dialogW-len(footer))/2
	for i, ch := range footer {
		screen.SetContent(footerX+i, footerY, ch, nil, footerStyle)
	}
}

func (d *Dialog) HandleKey(ev *tcell.EventKey) bool {
	switch d.Type {
	case DialogSaveConfirm:
		return d.handleSaveConfirmKey(ev)
	case DialogReloadConfirm:
		return d.handleReloadConfirmKey(ev)
	case DialogHelp:
		return d.handleHelpKey(ev)
	}
	return d.handleInputKey(ev)
}

func (d *Dialog) handleSaveConfirmKey(ev *tcell.EventKey) bool {
	ch := ev.Rune()
	switch {
	case ch == 'y' || ch == 'Y':
		if d.OnConfirm != nil {
			d.OnConfirm('y')
		}
	case ch == 'n' || ch == 'N':
		if d.OnConfirm != nil {
			d.OnConfirm('n')
		}
	case ch == 'c' || ch == 'C' || ev.Key() == tcell.KeyEscape:
		if d.OnConfirm != nil {
			d.OnConfirm('c')
		}
	}
	return true
}

func (d *Dialog) handleReloadConfirmKey(ev *tcell.EventKey) bool {
	ch := ev.Rune()
	switch {
	case ch == 'y' || ch == 'Y':
		if d.OnConfirm != nil {
			d.OnConfirm('y')
		}
	case ch == 'c' || ch == 'C' || ev.Key() == tcell.KeyEscape:
		if d.OnConfirm != nil {
			d.OnConfirm('c')
		}
	}
	return true
}

func (d *Dialog) handleHelpKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyF1 || ev.Key() == tcell.KeyCtrlH {
		if d.OnCancel != nil {
			d.OnCancel()
		}
	}
	return true
}

func (d *Dialog) handleInputKey(ev *tcell.EventKey) bool {
	if d.Type == DialogFind {
		switch ev.Key() {
		case tcell.KeyF3:
			if ev.Modifiers()&tcell.ModShift != 0 {
				d.PrevMatch()
			} else {
				d.NextMatch()
			}
			if d.OnNavigate != nil && len(d.Matches) > 0 {
				d.OnNavigate(d.Matches[d.MatchIndex].ID)
			}
			return true
		}
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		if d.OnCancel != nil {
			d.OnCancel()
		}
		return true
	case tcell.KeyEnter:
		if d.Type == DialogFind {
			// Enter jumps to the current match and keeps the bar open.
			if d.OnNavigate != nil && len(d.Matches) > 0 {
				d.OnNavigate(d.Matches[d.MatchIndex].ID)
			}
			return true
		}
		if d.OnSubmit != nil {
			d.OnSubmit(d.Input)
		}
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if d.Cursor > 0 {
			runes := []rune(d.Input)
			d.Input = string(runes[:d.Cursor-1]) + string(runes[d.Cursor:])
			d.Cursor--
			d.inputChanged()
		}
		return true
	case tcell.KeyDelete:
		runes := []rune(d.Input)
		if d.Cursor < len(runes) {
			d.Input = string(runes[:d.Cursor]) + string(runes[d.Cursor+1:])
			d.inputChanged()
		}
		return true
	case tcell.KeyLeft:
		if d.Cursor > 0 {
			d.Cursor--
		}
		return true
	case tcell.KeyRight:
		if d.Cursor < len([]rune(d.Input)) {
			d.Cursor++
		}
		return true
	case tcell.KeyHome:
		d.Cursor = 0
		return true
	case tcell.KeyEnd:
		d.Cursor = len([]rune(d.Input))
		return true
	case tcell.KeyRune:
		ch := ev.Rune()
		runes := []rune(d.Input)
		d.Input = string(runes[:d.Cursor]) + string(ch) + string(runes[d.Cursor:])
		d.Cursor++
		d.inputChanged()
		return true
	}
	return false
}

func (d *Dialog) inputChanged() {
	if d.Type == DialogFind && d.OnChange != nil {
		d.Matches = nil
		d.MatchIndex = 0
		d.OnChange(d.Input)
	}
}

func (d *Dialog) NextMatch() {
	if len(d.Matches) == 0 {
		return
	}
	d.MatchIndex = (d.MatchIndex + 1) % len(d.Matches)
}

func (d *Dialog) PrevMatch() {
	if len(d.Matches) == 0 {
		return
	}
	d.MatchIndex--
	if d.MatchIndex < 0 {
		d.MatchIndex = len(d.Matches) - 1
	}
}

func (d *Dialog) HandleMouse(ev *tcell.EventMouse) bool { return false }
func (d *Dialog) IsFocused() bool                       { return d.focused }
func (d *Dialog) SetFocused(f bool)                     { d.focused = f }

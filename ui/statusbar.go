package ui

import (
	"fmt"

	"outliner/config"

	"github.com/gdamore/tcell/v2"
)

type StatusBar struct {
	Mode     string // "LIST" or "EDIT"
	Filename string
	Dirty    bool

	NodeCount int
	TodoDone  int
	TodoTotal int

	Message      string // temporary status message
	MessageError bool

	Theme *config.ColorScheme
}

func NewStatusBar() *StatusBar {
	return &StatusBar{Mode: "LIST"}
}

func (s *StatusBar) Render(screen tcell.Screen, x, y, width, height int) {
	theme := s.Theme
	if theme == nil {
		theme = config.Themes["monokai"]
	}

	style := tcell.StyleDefault.Background(theme.StatusBarBg).Foreground(theme.StatusBarFg)
	modeStyle := tcell.StyleDefault.Background(theme.StatusBarModeBg).Foreground(tcell.ColorBlack).Bold(true)

	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}

	col := x
	mode := " " + s.Mode + " "
	for _, ch := range mode {
		if col < x+width {
			screen.SetContent(col, y, ch, nil, modeStyle)
			col++
		}
	}
	if col < x+width {
		screen.SetContent(col, y, ' ', nil, style)
		col++
	}

	// A temporary message replaces the file info until it expires.
	if s.Message != "" {
		msgStyle := style
		if s.MessageError {
			msgStyle = style.Foreground(tcell.ColorRed).Bold(true)
		}
		for _, ch := range s.Message {
			if col < x+width {
				screen.SetContent(col, y, ch, nil, msgStyle)
				col++
			}
		}
		return
	}

	fname := s.Filename
	if fname == "" {
		fname = "untitled"
	}
	if s.Dirty {
		fname = "*" + fname
	}
	for _, ch := range fname {
		if col < x+width {
			screen.SetContent(col, y, ch, nil, style)
			col++
		}
	}

	var right string
	if s.TodoTotal > 0 {
		right = fmt.Sprintf("%d/%d done │ %d items ", s.TodoDone, s.TodoTotal, s.NodeCount)
	} else {
		right = fmt.Sprintf("%d items ", s.NodeCount)
	}
	rightRunes := []rune(right)
	rightStart := x + width - len(rightRunes)
	if rightStart > col+2 {
		for i, ch := range rightRunes {
			screen.SetContent(rightStart+i, y, ch, nil, style)
		}
	}
}

func (s *StatusBar) HandleKey(ev *tcell.EventKey) bool     { return false }
func (s *StatusBar) HandleMouse(ev *tcell.EventMouse) bool { return false }
func (s *StatusBar) IsFocused() bool                       { return false }
func (s *StatusBar) SetFocused(f bool)                     {}

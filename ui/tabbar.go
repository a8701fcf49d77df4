package ui

import (
	"path/filepath"

	"outliner/config"

	"github.com/gdamore/tcell/v2"
)

type Tab struct {
	Title              string
	Path               string
	Modified           bool
	ExternallyModified bool // file changed on disk while unsaved edits exist
}

type TabBar struct {
	Tabs      []Tab
	Active    int
	scrollOff int
	focused   bool
	x, y, w   int // layout coords set on render

	mousePressX, mousePressY int
	mousePressed             bool

	Theme *config.ColorScheme

	OnSwitch func(index int)
	OnClose  func(index int)
}

func NewTabBar() *TabBar {
	return &TabBar{}
}

func (tb *TabBar) tabTitle(tab Tab) string {
	title := tab.Title
	if tab.ExternallyModified {
		title = "!" + title
	} else if tab.Modified {
		title = "*" + title
	}
	return title
}

// space + title + space + x + space, plus a separator between tabs
func (tb *TabBar) tabWidthAt(index int) int {
	if index < 0 || index >= len(tb.Tabs) {
		return 0
	}
	w := 1 + len([]rune(tb.tabTitle(tb.Tabs[index]))) + 1 + 1 + 1
	if index < len(tb.Tabs)-1 {
		w++
	}
	return w
}

func (tb *TabBar) clampScroll() {
	if len(tb.Tabs) == 0 {
		tb.scrollOff = 0
		return
	}
	if tb.scrollOff < 0 {
		tb.scrollOff = 0
	}
	if tb.scrollOff > len(tb.Tabs)-1 {
		tb.scrollOff = len(tb.Tabs) - 1
	}
}

func (tb *TabBar) visibleLast(width int) int {
	if width <= 0 || len(tb.Tabs) == 0 {
		return tb.scrollOff - 1
	}
	remaining := width
	last := tb.scrollOff - 1
	for i := tb.scrollOff; i < len(tb.Tabs); i++ {
		w := tb.tabWidthAt(i)
		if w > remaining {
			break
		}
		remaining -= w
		last = i
	}
	return last
}

func (tb *TabBar) ensureActiveVisible(width int) {
	tb.clampScroll()
	if len(tb.Tabs) == 0 || width <= 0 {
		return
	}
	if tb.Active < 0 {
		tb.Active = 0
	}
	if tb.Active >= len(tb.Tabs) {
		tb.Active = len(tb.Tabs) - 1
	}
	if tb.Active < tb.scrollOff {
		tb.scrollOff = tb.Active
	}
	for {
		last := tb.visibleLast(width)
		if tb.Active <= last || tb.scrollOff >= tb.Active {
			break
		}
		tb.scrollOff++
	}
	tb.clampScroll()
}

func (tb *TabBar) AddTab(path string, modified bool) {
	title := filepath.Base(path)
	if title == "." || title == "" {
		title = "untitled"
	}
	for i, tab := range tb.Tabs {
		if tab.Path == path {
			tb.Active = i
			return
		}
	}
	tb.Tabs = append(tb.Tabs, Tab{Title: title, Path: path, Modified: modified})
	tb.Active = len(tb.Tabs) - 1
	tb.ensureActiveVisible(tb.w)
}

func (tb *TabBar) RemoveTab(index int) {
	if index < 0 || index >= len(tb.Tabs) {
		return
	}
	tb.Tabs = append(tb.Tabs[:index], tb.Tabs[index+1:]...)
	if index < tb.scrollOff {
		tb.scrollOff--
	}
	if tb.Active >= len(tb.Tabs) {
		tb.Active = len(tb.Tabs) - 1
	}
	if tb.Active < 0 {
		tb.Active = 0
	}
	tb.clampScroll()
}

func (tb *TabBar) SetModified(index int, modified bool) {
	if index >= 0 && index < len(tb.Tabs) {
		tb.Tabs[index].Modified = modified
	}
}

func (tb *TabBar) SetExternallyModified(index int, externallyModified bool) {
	if index >= 0 && index < len(tb.Tabs) {
		tb.Tabs[index].ExternallyModified = externallyModified
	}
}

func (tb *TabBar) Render(screen tcell.Screen, x, y, width, height int) {
	tb.x, tb.y, tb.w = x, y, width
	tb.ensureActiveVisible(width)

	theme := tb.Theme
	if theme == nil {
		theme = config.Themes["monokai"]
	}

	barStyle := tcell.StyleDefault.Background(theme.TabBarBg).Foreground(theme.TabBarFg)
	activeStyle := tcell.StyleDefault.Background(theme.TabBarActiveBg).Foreground(theme.TabBarActiveFg).Bold(true)

	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, barStyle)
	}

	col := x
	for i := tb.scrollOff; i < len(tb.Tabs); i++ {
		if col >= x+width {
			break
		}
		title := tb.tabTitle(tb.Tabs[i])
		style := barStyle
		if i == tb.Active {
			style = activeStyle
		}

		cells := " " + title + " x "
		for _, ch := range cells {
			if col >= x+width {
				break
			}
			screen.SetContent(col, y, ch, nil, style)
			col++
		}
		if col < x+width && i < len(tb.Tabs)-1 {
			screen.SetContent(col, y, '│', nil, barStyle)
			col++
		}
	}
}

func (tb *TabBar) HandleKey(ev *tcell.EventKey) bool {
	return false
}

func (tb *TabBar) HandleMouse(ev *tcell.EventMouse) bool {
	mx, my := ev.Position()
	btn := ev.Buttons()

	if my != tb.y || mx < tb.x || mx >= tb.x+tb.w {
		tb.mousePressed = false
		return false
	}

	switch btn {
	case tcell.WheelUp, tcell.WheelLeft:
		tb.scrollOff--
		tb.clampScroll()
		return true
	case tcell.WheelDown, tcell.WheelRight:
		tb.scrollOff++
		tb.clampScroll()
		return true
	}

	if btn == tcell.Button1 {
		if !tb.mousePressed {
			tb.mousePressX, tb.mousePressY = mx, my
			tb.mousePressed = true
		}
		return true
	}

	// Click fires on release at the press position.
	if btn == tcell.ButtonNone && tb.mousePressed {
		tb.mousePressed = false
		if mx != tb.mousePressX || my != tb.mousePressY {
			return true
		}
		col := tb.x
		for i := tb.scrollOff; i < len(tb.Tabs); i++ {
			tabWidth := tb.tabWidthAt(i)
			if col >= tb.x+tb.w {
				break
			}
			if mx >= col && mx < col+tabWidth {
				closeX := col + 1 + len([]rune(tb.tabTitle(tb.Tabs[i]))) + 1
				if mx == closeX {
					if tb.OnClose != nil {
						tb.OnClose(i)
					}
				} else if tb.OnSwitch != nil {
					tb.OnSwitch(i)
				}
				return true
			}
			col += tabWidth
		}
		return true
	}

	return true
}

func (tb *TabBar) IsFocused() bool   { return tb.focused }
func (tb *TabBar) SetFocused(f bool) { tb.focused = f }

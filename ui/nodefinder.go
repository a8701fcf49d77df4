package ui

import (
	"fmt"
	"strings"
	"unicode"

	"outliner/config"
	"outliner/outline"

	"github.com/gdamore/tcell/v2"
)

// FinderEntry is one jump target: a node's text plus its depth in the
// document, used both for display indentation and as a score penalty.
type FinderEntry struct {
	ID    outline.NodeID
	Text  string
	Depth int
}

type scoredEntry struct {
	FinderEntry
	Score     int
	MatchIdxs []int // indices of matched chars in Text for highlighting
}

// NodeFinder is the jump-to-item dialog. Type to fuzzy-filter over all
// node texts, Enter focuses the chosen node.
type NodeFinder struct {
	Input     string
	CursorPos int
	Entries   []FinderEntry
	Filtered  []scoredEntry
	Selected  int
	OnSelect  func(id outline.NodeID)
	OnClose   func()
	focused   bool
	Theme     *config.ColorScheme
	scrollOff int
}

func NewNodeFinder(entries []FinderEntry, theme *config.ColorScheme) *NodeFinder {
	nf := &NodeFinder{
		Entries: entries,
		focused: true,
		Theme:   theme,
	}
	nf.updateFilter()
	return nf
}

// CollectEntries walks the whole tree in document order, folded
// subtrees included, so hidden items stay reachable.
func CollectEntries(t *outline.Tree) []FinderEntry {
	var entries []FinderEntry
	t.Walk(func(n *outline.Node, level int) bool {
		entries = append(entries, FinderEntry{ID: n.ID, Text: n.Text, Depth: level - 1})
		return true
	})
	return entries
}

func (nf *NodeFinder) updateFilter() {
	if nf.Input == "" {
		nf.Filtered = make([]scoredEntry, 0, len(nf.Entries))
		for _, e := range nf.Entries {
			nf.Filtered = append(nf.Filtered, scoredEntry{FinderEntry: e})
		}
		nf.Selected = 0
		nf.scrollOff = 0
		return
	}

	nf.Filtered = nf.Filtered[:0]
	query := strings.ToLower(nf.Input)

	for _, e := range nf.Entries {
		score, idxs := fuzzyScore(e.Text, e.Depth, query)
		if score > 0 {
			nf.Filtered = append(nf.Filtered, scoredEntry{
				FinderEntry: e,
				Score:       score,
				MatchIdxs:   idxs,
			})
		}
	}

	// Sort by score descending (insertion sort is fine at interactive sizes)
	for i := 1; i < len(nf.Filtered); i++ {
		for j := i; j > 0 && nf.Filtered[j].Score > nf.Filtered[j-1].Score; j-- {
			nf.Filtered[j], nf.Filtered[j-1] = nf.Filtered[j-1], nf.Filtered[j]
		}
	}

	nf.Selected = 0
	nf.scrollOff = 0
}

// fuzzyScore matches query chars in order against text.
// Returns 0 if no match. Higher is better.
func fuzzyScore(text string, depth int, query string) (int, []int) {
	lowerText := strings.ToLower(text)
	queryRunes := []rune(query)
	textRunes := []rune(lowerText)
	origRunes := []rune(text)

	if len(queryRunes) == 0 || len(queryRunes) > len(textRunes) {
		return 0, nil
	}

	idxs := make([]int, 0, len(queryRunes))
	ti := 0
	for _, qr := range queryRunes {
		found := false
		for ti < len(textRunes) {
			if textRunes[ti] == qr {
				idxs = append(idxs, ti)
				ti++
				found = true
				break
			}
			ti++
		}
		if !found {
			return 0, nil
		}
	}

	score := 10

	// Consecutive matches
	for i := 1; i < len(idxs); i++ {
		if idxs[i] == idxs[i-1]+1 {
			score += 5
		}
	}

	// Word boundary and camelCase bonuses
	for _, idx := range idxs {
		if idx == 0 {
			score += 10
			continue
		}
		prev := origRunes[idx-1]
		if prev == ' ' || prev == '_' || prev == '-' || prev == '.' || prev == '/' {
			score += 8
		}
		if unicode.IsLower(prev) && unicode.IsUpper(origRunes[idx]) {
			score += 6
		}
	}

	// Prefer items near the top of the hierarchy
	score -= depth

	// Exact prefix match wins
	if strings.HasPrefix(lowerText, query) {
		score += 20
	}

	return score, idxs
}

func (nf *NodeFinder) Render(screen tcell.Screen, x, y, width, height int) {
	theme := nf.Theme
	if theme == nil {
		theme = config.Themes["monokai"]
	}

	maxVisible := 15
	if maxVisible > height-6 {
		maxVisible = height - 6
	}
	if maxVisible < 3 {
		maxVisible = 3
	}

	dialogW := width * 60 / 100
	if dialogW < 40 {
		dialogW = 40
	}
	if dialogW > width-4 {
		dialogW = width - 4
	}

	listCount := len(nf.Filtered)
	if listCount > maxVisible {
		listCount = maxVisible
	}
	dialogH := listCount + 4 // top border + input + separator + items + bottom border
	if dialogH < 5 {
		dialogH = 5
	}

	dialogX := x + (width-dialogW)/2
	dialogY := y + 2

	borderStyle := tcell.StyleDefault.Background(theme.DialogBg).Foreground(theme.DialogFg)
	bgStyle := tcell.StyleDefault.Background(theme.DialogBg).Foreground(theme.DialogFg)
	titleStyle := tcell.StyleDefault.Background(theme.StatusBarModeBg).Foreground(tcell.ColorBlack).Bold(true)
	inputStyle := tcell.StyleDefault.Background(theme.DialogInputBg).Foreground(theme.Foreground)
	itemStyle := tcell.StyleDefault.Background(theme.DialogBg).Foreground(theme.DialogFg)
	selectedStyle := tcell.StyleDefault.Background(theme.Selection).Foreground(theme.Foreground)
	matchCharStyle := tcell.StyleDefault.Background(theme.DialogBg).Foreground(tcell.ColorYellow).Bold(true)
	matchCharSelStyle := tcell.StyleDefault.Background(theme.Selection).Foreground(tcell.ColorYellow).Bold(true)
	countStyle := tcell.StyleDefault.Background(theme.DialogBg).Foreground(theme.Muted)

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

	title := " Jump to Item "
	titleX := dialogX + (dialogW-len(title))/2
	for i, ch := range title {
		screen.SetContent(titleX+i, dialogY, ch, nil, titleStyle)
	}

	inputY := dialogY + 1
	inputX := dialogX + 2
	inputW := dialogW - 4

	for dx := 0; dx < inputW; dx++ {
		screen.SetContent(inputX+dx, inputY, ' ', nil, inputStyle)
	}

	inputRunes := []rune(nf.Input)
	for i, ch := range inputRunes {
		if i >= inputW {
			break
		}
		screen.SetContent(inputX+i, inputY, ch, nil, inputStyle)
	}

	cursorX := inputX + nf.CursorPos
	if cursorX < inputX+inputW {
		if nf.CursorPos < len(inputRunes) {
			screen.SetContent(cursorX, inputY, inputRunes[nf.CursorPos], nil, inputStyle.Reverse(true))
		} else {
			screen.SetContent(cursorX, inputY, ' ', nil, inputStyle.Reverse(true))
		}
	}

	sepY := dialogY + 2
	for dx := 1; dx < dialogW-1; dx++ {
		screen.SetContent(dialogX+dx, sepY, '─', nil, borderStyle)
	}
	screen.SetContent(dialogX, sepY, '├', nil, borderStyle)
	screen.SetContent(dialogX+dialogW-1, sepY, '┤', nil, borderStyle)

	countStr := fmt.Sprintf(" %d items ", len(nf.Filtered))
	countX := dialogX + dialogW - 1 - len(countStr)
	if countX > dialogX+1 {
		for i, ch := range countStr {
			screen.SetContent(countX+i, sepY, ch, nil, countStyle)
		}
	}

	if nf.Selected < nf.scrollOff {
		nf.scrollOff = nf.Selected
	}
	if nf.Selected >= nf.scrollOff+maxVisible {
		nf.scrollOff = nf.Selected - maxVisible + 1
	}

	listY := sepY + 1
	for i := 0; i < maxVisible && i+nf.scrollOff < len(nf.Filtered); i++ {
		idx := i + nf.scrollOff
		entry := nf.Filtered[idx]
		isSelected := idx == nf.Selected

		baseStyle := itemStyle
		highlightStyle := matchCharStyle
		if isSelected {
			baseStyle = selectedStyle
			highlightStyle = matchCharSelStyle
		}

		rowY := listY + i
		for dx := 1; dx < dialogW-1; dx++ {
			screen.SetContent(dialogX+dx, rowY, ' ', nil, baseStyle)
		}

		matchSet := make(map[int]bool, len(entry.MatchIdxs))
		for _, mi := range entry.MatchIdxs {
			matchSet[mi] = true
		}

		// Shallow indent hints where the item sits in the outline
		col := dialogX + 2
		maxCol := dialogX + dialogW - 2
		indent := entry.Depth
		if indent > 6 {
			indent = 6
		}
		for d := 0; d < indent && col < maxCol; d++ {
			screen.SetContent(col, rowY, '·', nil, baseStyle.Foreground(theme.Muted))
			col++
		}

		for ci, ch := range []rune(entry.Text) {
			if col >= maxCol {
				break
			}
			style := baseStyle
			if matchSet[ci] {
				style = highlightStyle
			}
			screen.SetContent(col, rowY, ch, nil, style)
			col++
		}
	}
}

func (nf *NodeFinder) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		if nf.OnClose != nil {
			nf.OnClose()
		}
		return true
	case tcell.KeyEnter:
		if nf.Selected >= 0 && nf.Selected < len(nf.Filtered) {
			if nf.OnSelect != nil {
				nf.OnSelect(nf.Filtered[nf.Selected].ID)
			}
		}
		return true
	case tcell.KeyUp:
		if nf.Selected > 0 {
			nf.Selected--
		}
		return true
	case tcell.KeyDown:
		if nf.Selected < len(nf.Filtered)-1 {
			nf.Selected++
		}
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if nf.CursorPos > 0 {
			runes := []rune(nf.Input)
			nf.Input = string(runes[:nf.CursorPos-1]) + string(runes[nf.CursorPos:])
			nf.CursorPos--
			nf.updateFilter()
		}
		return true
	case tcell.KeyDelete:
		runes := []rune(nf.Input)
		if nf.CursorPos < len(runes) {
			nf.Input = string(runes[:nf.CursorPos]) + string(runes[nf.CursorPos+1:])
			nf.updateFilter()
		}
		return true
	case tcell.KeyLeft:
		if nf.CursorPos > 0 {
			nf.CursorPos--
		}
		return true
	case tcell.KeyRight:
		if nf.CursorPos < len([]rune(nf.Input)) {
			nf.CursorPos++
		}
		return true
	case tcell.KeyHome:
		nf.CursorPos = 0
		return true
	case tcell.KeyEnd:
		nf.CursorPos = len([]rune(nf.Input))
		return true
	case tcell.KeyRune:
		ch := ev.Rune()
		runes := []rune(nf.Input)
		nf.Input = string(runes[:nf.CursorPos]) + string(ch) + string(runes[nf.CursorPos:])
		nf.CursorPos++
		nf.updateFilter()
		return true
	}
	return true // absorb all keys while open
}

func (nf *NodeFinder) HandleMouse(ev *tcell.EventMouse) bool {
	return true // modal
}

func (nf *NodeFinder) IsFocused() bool   { return nf.focused }
func (nf *NodeFinder) SetFocused(f bool) { nf.focused = f }

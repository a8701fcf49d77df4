package ui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"outliner/config"

	"github.com/gdamore/tcell/v2"
)

// note file extensions shown in the sidebar
var noteExts = map[string]bool{
	".log": true, ".loglog": true, ".txt": true, ".md": true,
}

type FileNode struct {
	Name     string
	Path     string
	IsDir    bool
	Children []*FileNode
	Expanded bool
	Depth    int
}

// FileTree is the sidebar for opening note files in the workspace.
type FileTree struct {
	root       *FileNode
	flatList   []*FileNode
	selected   int
	scrollOff  int
	focused    bool
	x, y, w, h int
	Theme      *config.ColorScheme

	mousePressX, mousePressY int
	mousePressed             bool

	OnFileOpen func(path string)
}

func NewFileTree(rootPath string) *FileTree {
	ft := &FileTree{
		root: &FileNode{
			Name:     filepath.Base(rootPath),
			Path:     rootPath,
			IsDir:    true,
			Expanded: true,
		},
	}
	ft.loadChildren(ft.root)
	ft.flatten()
	return ft
}

func (ft *FileTree) loadChildren(node *FileNode) {
	entries, err := os.ReadDir(node.Path)
	if err != nil {
		return
	}

	node.Children = nil
	var dirs, files []*FileNode

	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") || name == "node_modules" {
			continue
		}
		if !e.IsDir() && !noteExts[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		child := &FileNode{
			Name:  name,
			Path:  filepath.Join(node.Path, name),
			IsDir: e.IsDir(),
			Depth: node.Depth + 1,
		}
		if e.IsDir() {
			dirs = append(dirs, child)
		} else {
			files = append(files, child)
		}
	}

	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name < dirs[j].Name })
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	node.Children = append(dirs, files...)
}

func (ft *FileTree) flatten() {
	ft.flatList = ft.flatList[:0]
	ft.flattenNode(ft.root)
}

func (ft *FileTree) flattenNode(node *FileNode) {
	ft.flatList = append(ft.flatList, node)
	if node.IsDir && node.Expanded {
		for _, child := range node.Children {
			ft.flattenNode(child)
		}
	}
}

func (ft *FileTree) toggle(node *FileNode) {
	if !node.IsDir {
		return
	}
	node.Expanded = !node.Expanded
	if node.Expanded && node.Children == nil {
		ft.loadChildren(node)
	}
	ft.flatten()
}

func (ft *FileTree) GetRoot() string {
	return ft.root.Path
}

func (ft *FileTree) Render(screen tcell.Screen, x, y, width, height int) {
	ft.x, ft.y, ft.w, ft.h = x, y, width, height

	theme := ft.Theme
	if theme == nil {
		theme = config.Themes["monokai"]
	}

	bgStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.TreeFileFg)
	selStyle := tcell.StyleDefault.Background(theme.TreeSelectionBg).Foreground(theme.TreeFileFg)
	dirStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.TreeDirFg).Bold(true)
	headerStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.TreeHeaderFg).Bold(true)

	for cy := y; cy < y+height; cy++ {
		for cx := x; cx < x+width; cx++ {
			screen.SetContent(cx, cy, ' ', nil, bgStyle)
		}
	}

	title := "NOTES"
	for i, ch := range title {
		if x+i < x+width {
			screen.SetContent(x+i, y, ch, nil, headerStyle)
		}
	}

	if ft.selected < ft.scrollOff {
		ft.scrollOff = ft.selected
	}
	if ft.selected >= ft.scrollOff+height-1 {
		ft.scrollOff = ft.selected - height + 2
	}

	row := y + 1
	for i := ft.scrollOff; i < len(ft.flatList) && row < y+height; i++ {
		node := ft.flatList[i]
		style := bgStyle
		if node.IsDir {
			style = dirStyle
		}
		if i == ft.selected && ft.focused {
			style = selStyle
		} else if i == ft.selected {
			style = tcell.StyleDefault.Background(theme.Selection).Foreground(theme.Foreground).Dim(true)
		}

		for cx := x; cx < x+width-1; cx++ {
			screen.SetContent(cx, row, ' ', nil, style)
		}

		col := x + node.Depth*2
		if node.IsDir {
			icon := '▶'
			if node.Expanded {
				icon = '▼'
			}
			if col < x+width {
				screen.SetContent(col, row, icon, nil, style)
			}
		}
		col += 2
		for _, ch := range node.Name {
			if col >= x+width-1 {
				break
			}
			screen.SetContent(col, row, ch, nil, style)
			col++
		}
		row++
	}

	borderStyle := tcell.StyleDefault.Foreground(theme.TreeBorder).Background(theme.Background)
	for cy := y; cy < y+height; cy++ {
		screen.SetContent(x+width-1, cy, '│', nil, borderStyle)
	}
}

func (ft *FileTree) HandleKey(ev *tcell.EventKey) bool {
	if !ft.focused {
		return false
	}
	switch ev.Key() {
	case tcell.KeyUp:
		if ft.selected > 0 {
			ft.selected--
		}
		return true
	case tcell.KeyDown:
		if ft.selected < len(ft.flatList)-1 {
			ft.selected++
		}
		return true
	case tcell.KeyEnter:
		if ft.selected >= 0 && ft.selected < len(ft.flatList) {
			node := ft.flatList[ft.selected]
			if node.IsDir {
				ft.toggle(node)
			} else if ft.OnFileOpen != nil {
				ft.OnFileOpen(node.Path)
			}
		}
		return true
	case tcell.KeyRight:
		if node := ft.selectedNode(); node != nil && node.IsDir && !node.Expanded {
			ft.toggle(node)
		}
		return true
	case tcell.KeyLeft:
		if node := ft.selectedNode(); node != nil && node.IsDir && node.Expanded {
			ft.toggle(node)
		}
		return true
	}
	return false
}

func (ft *FileTree) selectedNode() *FileNode {
	if ft.selected < 0 || ft.selected >= len(ft.flatList) {
		return nil
	}
	return ft.flatList[ft.selected]
}

func (ft *FileTree) HandleMouse(ev *tcell.EventMouse) bool {
	mx, my := ev.Position()
	if mx < ft.x || mx >= ft.x+ft.w || my < ft.y || my >= ft.y+ft.h {
		return false
	}

	switch btn := ev.Buttons(); {
	case btn == tcell.WheelUp:
		if ft.scrollOff > 0 {
			ft.scrollOff--
		}
		return true
	case btn == tcell.WheelDown:
		if ft.scrollOff < len(ft.flatList)-1 {
			ft.scrollOff++
		}
		return true
	case btn == tcell.Button1:
		if !ft.mousePressed {
			ft.mousePressX, ft.mousePressY = mx, my
			ft.mousePressed = true
		}
		return true
	case btn == tcell.ButtonNone && ft.mousePressed:
		ft.mousePressed = false
		if mx != ft.mousePressX || my != ft.mousePressY {
			return true
		}
		idx := my - ft.y - 1 + ft.scrollOff
		if idx >= 0 && idx < len(ft.flatList) {
			ft.selected = idx
			ft.focused = true
			node := ft.flatList[idx]
			if node.IsDir {
				ft.toggle(node)
			} else if ft.OnFileOpen != nil {
				ft.OnFileOpen(node.Path)
			}
		}
		return true
	}
	return false
}

// SelectPath expands the tree down to the given path and selects it.
func (ft *FileTree) SelectPath(targetPath string) {
	rel, err := filepath.Rel(ft.root.Path, targetPath)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return
	}

	current := ft.root
	parts := strings.Split(rel, string(os.PathSeparator))
	for i, part := range parts {
		var found *FileNode
		for _, child := range current.Children {
			if child.Name == part {
				found = child
				break
			}
		}
		if found == nil {
			return
		}
		current = found
		if current.IsDir && i < len(parts)-1 {
			current.Expanded = true
			if current.Children == nil {
				ft.loadChildren(current)
			}
		}
	}

	ft.flatten()
	for i, node := range ft.flatList {
		if node.Path == targetPath {
			ft.selected = i
			if ft.h > 0 {
				if ft.selected < ft.scrollOff {
					ft.scrollOff = ft.selected
				} else if ft.selected >= ft.scrollOff+ft.h {
					ft.scrollOff = ft.selected - ft.h + 1
				}
			}
			break
		}
	}
}

// Refresh rescans the workspace, keeping expansion and selection.
func (ft *FileTree) Refresh() {
	expanded := make(map[string]bool)
	for _, node := range ft.flatList {
		if node.IsDir && node.Expanded {
			expanded[node.Path] = true
		}
	}
	var selectedPath string
	if n := ft.selectedNode(); n != nil {
		selectedPath = n.Path
	}

	ft.loadChildren(ft.root)
	ft.restoreExpanded(ft.root, expanded)
	ft.flatten()

	for i, node := range ft.flatList {
		if node.Path == selectedPath {
			ft.selected = i
			break
		}
	}
}

func (ft *FileTree) restoreExpanded(node *FileNode, expanded map[string]bool) {
	if !node.IsDir {
		return
	}
	if expanded[node.Path] || node == ft.root {
		node.Expanded = true
		if node.Children == nil {
			ft.loadChildren(node)
		}
		for _, child := range node.Children {
			ft.restoreExpanded(child, expanded)
		}
	}
}

func (ft *FileTree) IsFocused() bool   { return ft.focused }
func (ft *FileTree) SetFocused(f bool) { ft.focused = f }

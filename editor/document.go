package editor

import (
	"os"
	"path/filepath"
	"time"

	"outliner/format"
	"outliner/outline"
)

// Document is one open note file: the outline engine that holds its
// tree plus everything the editor needs to track around it.
type Document struct {
	Eng  *outline.Engine
	Path string

	Dirty              bool
	ExternallyModified bool // changed on disk while unsaved edits exist
	LastSaveTime       time.Time
}

func NewDocument(undoLimit int) *Document {
	return &Document{
		Eng: outline.NewEngine(outline.NewTree(), undoLimit),
	}
}

func NewDocumentFromFile(path string, undoLimit int) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// New file: start empty, save creates it.
			d := NewDocument(undoLimit)
			d.Path = path
			return d, nil
		}
		return nil, err
	}
	tree := format.FromText(string(data))
	return &Document{
		Eng:  outline.NewEngine(tree, undoLimit),
		Path: path,
	}, nil
}

func (d *Document) Title() string {
	name := filepath.Base(d.Path)
	if name == "." || name == "" {
		return "untitled"
	}
	return name
}

// Content serializes the whole tree, folded subtrees included.
func (d *Document) Content() string {
	return format.ToText(d.Eng.Tree())
}

func (d *Document) Save() error {
	return d.SaveAs(d.Path)
}

func (d *Document) SaveAs(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(d.Content()), 0644); err != nil {
		return err
	}
	d.Path = path
	d.Dirty = false
	d.ExternallyModified = false
	d.LastSaveTime = time.Now()
	return nil
}

// Counts reports total items plus todo progress for the status bar.
func (d *Document) Counts() (items, todoDone, todoTotal int) {
	d.Eng.Tree().Walk(func(n *outline.Node, level int) bool {
		items++
		if n.Kind == outline.KindTodo {
			todoTotal++
			if n.Todo == outline.TodoComplete {
				todoDone++
			}
		}
		return true
	})
	return
}

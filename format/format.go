// Package format reads and writes the plain-text list notation:
// four spaces of indentation per level, "- " for items, and bracket
// prefixes for todo entries.
package format

import (
	"strings"

	"outliner/outline"
)

const indentWidth = 4

func prefix(n *outline.Node) string {
	if n.Kind == outline.KindItem {
		return "- "
	}
	switch n.Todo {
	case outline.TodoInProgress:
		return "[-] "
	case outline.TodoComplete:
		return "[x] "
	case outline.TodoUnknown:
		return "[?] "
	default:
		return "[] "
	}
}

// ToText serializes the whole tree. Every node is written regardless
// of fold state, so saving never loses hidden content.
func ToText(t *outline.Tree) string {
	var b strings.Builder
	t.Walk(func(n *outline.Node, level int) bool {
		writeNode(&b, n, level-1)
		return false // writeNode recurses itself
	})
	return b.String()
}

func writeNode(b *strings.Builder, n *outline.Node, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("    ")
	}
	b.WriteString(prefix(n))
	b.WriteString(n.Text)
	b.WriteByte('\n')
	for _, c := range n.Children() {
		writeNode(b, c, depth+1)
	}
}

// MarshalSubtrees serializes the given subtrees (clipboard copy).
// The shallowest selected level is rebased to depth zero so pasting
// elsewhere nests naturally.
func MarshalSubtrees(t *outline.Tree, ids []outline.NodeID) string {
	ids = t.DocumentOrder(ids)
	base := -1
	for _, id := range ids {
		if l := t.Level(id); base < 0 || l < base {
			base = l
		}
	}
	var b strings.Builder
	for _, id := range ids {
		n := t.Node(id)
		if n == nil {
			continue
		}
		writeNode(&b, n, t.Level(id)-base)
	}
	return b.String()
}

// FromText parses the notation into a fresh tree. The parser never
// fails: unknown lines become plain items, tabs count as four spaces,
// and ragged indentation rounds down to the nearest level. Blank
// lines are skipped.
func FromText(text string) *outline.Tree {
	t := outline.NewTree()

	type frame struct {
		depth int
		id    outline.NodeID
	}
	var stack []frame

	for _, line := range strings.Split(text, "\n") {
		depth, kind, todo, content, ok := parseLine(line)
		if !ok {
			continue
		}
		for len(stack) > 0 && depth <= stack[len(stack)-1].depth {
			stack = stack[:len(stack)-1]
		}
		parent := outline.NodeID(0)
		if len(stack) > 0 {
			parent = stack[len(stack)-1].id
		}
		id, inserted := t.InsertChild(parent, content, kind, todo)
		if !inserted {
			continue
		}
		stack = append(stack, frame{depth: depth, id: id})
	}
	return t
}

func parseLine(line string) (depth int, kind outline.Kind, todo outline.TodoState, content string, ok bool) {
	line = strings.ReplaceAll(line, "\t", "    ")
	line = strings.TrimRight(line, " \r")
	rest := strings.TrimLeft(line, " ")
	if rest == "" {
		return 0, 0, 0, "", false
	}
	depth = (len(line) - len(rest)) / indentWidth

	switch {
	case strings.HasPrefix(rest, "- "):
		return depth, outline.KindItem, outline.TodoNone, rest[2:], true
	case rest == "-":
		return depth, outline.KindItem, outline.TodoNone, "", true
	case strings.HasPrefix(rest, "[] ") || rest == "[]":
		return depth, outline.KindTodo, outline.TodoPending, trimPrefix(rest, 2), true
	case strings.HasPrefix(rest, "[ ] ") || rest == "[ ]":
		return depth, outline.KindTodo, outline.TodoPending, trimPrefix(rest, 3), true
	case strings.HasPrefix(rest, "[-] ") || rest == "[-]":
		return depth, outline.KindTodo, outline.TodoInProgress, trimPrefix(rest, 3), true
	case strings.HasPrefix(rest, "[x] ") || strings.HasPrefix(rest, "[X] ") || rest == "[x]" || rest == "[X]":
		return depth, outline.KindTodo, outline.TodoComplete, trimPrefix(rest, 3), true
	case strings.HasPrefix(rest, "[?] ") || rest == "[?]":
		return depth, outline.KindTodo, outline.TodoUnknown, trimPrefix(rest, 3), true
	default:
		// Bare data line with no marker: keep it as a plain item so
		// nothing is dropped on load.
		return depth, outline.KindItem, outline.TodoNone, rest, true
	}
}

func trimPrefix(rest string, markerLen int) string {
	if len(rest) <= markerLen {
		return ""
	}
	return rest[markerLen+1:]
}

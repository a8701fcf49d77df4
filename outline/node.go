package outline

// Kind distinguishes plain list items from todo entries.
type Kind int

const (
	KindItem Kind = iota
	KindTodo
)

// TodoState is the checkbox state of a KindTodo node.
// TodoNone is reserved for KindItem nodes.
type TodoState int

const (
	TodoNone TodoState = iota
	TodoPending
	TodoInProgress
	TodoComplete
	TodoUnknown
)

// NodeID identifies a node within one tree. Ids come from a monotonic
// counter and are never reused for the lifetime of the tree; 0 is the
// null id.
type NodeID uint64

type Node struct {
	ID     NodeID
	Text   string
	Kind   Kind
	Todo   TodoState
	Folded bool

	parent   NodeID
	children []*Node
}

func (n *Node) Parent() NodeID    { return n.parent }
func (n *Node) Children() []*Node { return n.children }
func (n *Node) HasChildren() bool { return len(n.children) > 0 }

// Tree owns the node hierarchy. The root is synthetic: it carries no
// text, is always unfolded, and is not addressable through commands.
type Tree struct {
	root    *Node
	nodes   map[NodeID]*Node
	nextID  NodeID
	version uint64

	// Roots of subtrees whose visible span may have changed since the
	// last refresh. Consumed by Engine.Visible.
	dirty map[NodeID]struct{}
}

func NewTree() *Tree {
	t := &Tree{
		nodes: make(map[NodeID]*Node),
		dirty: make(map[NodeID]struct{}),
	}
	t.root = t.newNode("", KindItem, TodoNone)
	return t
}

func (t *Tree) newNode(text string, kind Kind, todo TodoState) *Node {
	t.nextID++
	n := &Node{ID: t.nextID, Text: text, Kind: kind, Todo: todo}
	t.nodes[n.ID] = n
	return n
}

func (t *Tree) Root() *Node          { return t.root }
func (t *Tree) Node(id NodeID) *Node { return t.nodes[id] }

// Version increments on every content or structure mutation. Fold
// changes do not count: they alter visibility, not content.
func (t *Tree) Version() uint64 { return t.version }

// Len is the number of nodes excluding the synthetic root.
func (t *Tree) Len() int { return len(t.nodes) - 1 }

// Level is the depth below the root: the root is 0, its children 1.
// Unknown ids report -1.
func (t *Tree) Level(id NodeID) int {
	n := t.nodes[id]
	if n == nil {
		return -1
	}
	level := 0
	for n != t.root {
		n = t.nodes[n.parent]
		if n == nil {
			return -1
		}
		level++
	}
	return level
}

// IndexOf is the node's position among its siblings, -1 if unknown.
func (t *Tree) IndexOf(id NodeID) int {
	n := t.nodes[id]
	if n == nil || n == t.root {
		return -1
	}
	p := t.nodes[n.parent]
	if p == nil {
		return -1
	}
	for i, c := range p.children {
		if c == n {
			return i
		}
	}
	return -1
}

// IsAncestor reports whether a is a strict ancestor of b.
func (t *Tree) IsAncestor(a, b NodeID) bool {
	n := t.nodes[b]
	if n == nil {
		return false
	}
	for n.parent != 0 {
		if n.parent == a {
			return true
		}
		n = t.nodes[n.parent]
		if n == nil {
			return false
		}
	}
	return false
}

// Walk visits every node except the root in document order. Returning
// false from fn skips the node's descendants.
func (t *Tree) Walk(fn func(n *Node, level int) bool) {
	var walk func(n *Node, level int)
	walk = func(n *Node, level int) {
		for _, c := range n.children {
			if fn(c, level+1) {
				walk(c, level+1)
			}
		}
	}
	walk(t.root, 0)
}

// DocumentOrder filters ids down to nodes still in the tree and sorts
// them by position in a full pre-order walk.
func (t *Tree) DocumentOrder(ids []NodeID) []NodeID {
	want := make(map[NodeID]struct{}, len(ids))
	for _, id := range ids {
		if t.nodes[id] != nil {
			want[id] = struct{}{}
		}
	}
	out := make([]NodeID, 0, len(want))
	t.Walk(func(n *Node, level int) bool {
		if _, ok := want[n.ID]; ok {
			out = append(out, n.ID)
		}
		return true
	})
	return out
}

func (t *Tree) markDirty(id NodeID) {
	t.dirty[id] = struct{}{}
}

func (t *Tree) touch() {
	t.version++
}

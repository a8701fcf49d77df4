package outline

import "unicode"

// Match is one search hit: the node and the rune offset of the first
// occurrence in its text.
type Match struct {
	ID     NodeID
	Offset int
}

// Search is a restartable, case-insensitive walk over node texts.
// Work is metered through Step so a large document never stalls the
// event loop; any content mutation invalidates the cursor.
type Search struct {
	tree    *Tree
	query   []rune
	version uint64
	stack   []*Node
	matches []Match
	done    bool
}

// lowerRunes folds case one rune at a time. Folding per rune keeps
// offsets aligned with the original text, unlike strings.ToLower,
// whose output can have a different length for some scripts.
func lowerRunes(s string) []rune {
	rs := []rune(s)
	for i, r := range rs {
		rs[i] = unicode.ToLower(r)
	}
	return rs
}

// runeIndex finds needle in haystack, both already case-folded, and
// returns the rune offset of the first occurrence.
func runeIndex(haystack, needle []rune) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// NewSearch starts a search. A zero scope covers the whole document;
// a node id restricts it to that subtree, scope node included.
func (t *Tree) NewSearch(query string, scope NodeID) *Search {
	s := &Search{
		tree:    t,
		query:   lowerRunes(query),
		version: t.version,
	}
	if len(s.query) == 0 {
		s.done = true
		return s
	}
	if scope != 0 {
		if n := t.nodes[scope]; n != nil {
			s.stack = append(s.stack, n)
			return s
		}
	}
	for i := len(t.root.children) - 1; i >= 0; i-- {
		s.stack = append(s.stack, t.root.children[i])
	}
	if len(s.stack) == 0 {
		s.done = true
	}
	return s
}

// Valid reports whether the tree is unchanged since the search
// started. A stale search must be restarted, not stepped.
func (s *Search) Valid() bool { return s.version == s.tree.version }

func (s *Search) Done() bool { return s.done }

// Matches returns the hits found so far, in document order.
func (s *Search) Matches() []Match { return s.matches }

// Step visits at most n nodes and returns true once the walk is
// complete. Stepping a stale search reports done without visiting
// anything.
func (s *Search) Step(n int) bool {
	if s.done {
		return true
	}
	if !s.Valid() {
		s.done = true
		return true
	}
	for i := 0; i < n && len(s.stack) > 0; i++ {
		node := s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]
		if off := runeIndex(lowerRunes(node.Text), s.query); off >= 0 {
			s.matches = append(s.matches, Match{ID: node.ID, Offset: off})
		}
		for j := len(node.children) - 1; j >= 0; j-- {
			s.stack = append(s.stack, node.children[j])
		}
	}
	if len(s.stack) == 0 {
		s.done = true
	}
	return s.done
}

package outline

// Selection tracks the focused node, the anchor for range extension,
// and the full selected set. While a document is open the selection
// is never empty and the focused id is always a member.
type Selection struct {
	focused NodeID
	anchor  NodeID
	order   []NodeID
	members map[NodeID]struct{}
}

func NewSelection() *Selection {
	return &Selection{members: make(map[NodeID]struct{})}
}

func (s *Selection) Focused() NodeID { return s.focused }
func (s *Selection) Anchor() NodeID  { return s.anchor }
func (s *Selection) Len() int        { return len(s.order) }

func (s *Selection) Has(id NodeID) bool {
	_, ok := s.members[id]
	return ok
}

// IDs returns the selected ids in the order they were added.
func (s *Selection) IDs() []NodeID {
	out := make([]NodeID, len(s.order))
	copy(out, s.order)
	return out
}

// SetFocus collapses the selection to a single node.
func (s *Selection) SetFocus(id NodeID) {
	s.focused = id
	s.anchor = id
	s.order = s.order[:0]
	s.members = map[NodeID]struct{}{}
	if id != 0 {
		s.add(id)
	}
}

func (s *Selection) Clear() {
	s.SetFocus(0)
}

func (s *Selection) add(id NodeID) {
	if _, ok := s.members[id]; ok {
		return
	}
	s.members[id] = struct{}{}
	s.order = append(s.order, id)
}

func (s *Selection) remove(id NodeID) {
	if _, ok := s.members[id]; !ok {
		return
	}
	delete(s.members, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Toggle flips membership of id and moves focus to it when it joins.
// Toggling off the only member is a no-op, keeping the selection
// non-empty. Toggling off the focused node hands focus to the most
// recently added member.
func (s *Selection) Toggle(id NodeID) {
	if id == 0 {
		return
	}
	if !s.Has(id) {
		s.add(id)
		s.focused = id
		return
	}
	if len(s.order) == 1 {
		return
	}
	s.remove(id)
	if s.focused == id {
		s.focused = s.order[len(s.order)-1]
	}
	if s.anchor == id {
		s.anchor = s.focused
	}
}

// SetRange replaces the selection with the closed interval between
// anchor and target in the given visible order, focusing target.
func (s *Selection) SetRange(anchor, target NodeID, visible []NodeID) {
	ai, ti := -1, -1
	for i, id := range visible {
		if id == anchor {
			ai = i
		}
		if id == target {
			ti = i
		}
	}
	if ti < 0 {
		return
	}
	if ai < 0 {
		s.SetFocus(target)
		return
	}
	lo, hi := ai, ti
	if lo > hi {
		lo, hi = hi, lo
	}
	s.order = s.order[:0]
	s.members = map[NodeID]struct{}{}
	for _, id := range visible[lo : hi+1] {
		s.add(id)
	}
	s.anchor = anchor
	s.focused = target
}

// Extend grows the selection with extra ids without moving the anchor.
func (s *Selection) Extend(ids ...NodeID) {
	for _, id := range ids {
		if id != 0 {
			s.add(id)
		}
	}
}

// Prune drops members that no longer exist in the tree. When the
// focused node is among them, focus falls to the most recently added
// survivor, or to fallback if the selection emptied.
func (s *Selection) Prune(t *Tree, fallback NodeID) {
	kept := s.order[:0]
	for _, id := range s.order {
		if t.Node(id) != nil {
			kept = append(kept, id)
		} else {
			delete(s.members, id)
		}
	}
	s.order = kept
	if t.Node(s.anchor) == nil {
		s.anchor = 0
	}
	if t.Node(s.focused) == nil {
		s.focused = 0
	}
	if s.focused == 0 {
		if len(s.order) > 0 {
			s.focused = s.order[len(s.order)-1]
		} else if fallback != 0 && t.Node(fallback) != nil {
			s.SetFocus(fallback)
			return
		}
	}
	if s.anchor == 0 {
		s.anchor = s.focused
	}
	if s.focused != 0 {
		s.add(s.focused)
	}
}

package htmlconverter

// styleSet is an immutable set of active style IDs, ordered outermost first.
// with returns an extended copy so sibling subtrees never share additions.
type styleSet struct {
	ids []string
}

func (s styleSet) with(id string) styleSet {
	if s.contains(id) {
		return s
	}
	ids := make([]string, len(s.ids), len(s.ids)+1)
	copy(ids, s.ids)
	return styleSet{ids: append(ids, id)}
}

func (s styleSet) contains(id string) bool {
	for _, existing := range s.ids {
		if existing == id {
			return true
		}
	}
	return false
}

package view

// Selection is a set of checked row IDs.
type Selection map[int64]struct{}

// Toggle flips membership of id and reports the new state.
func (s Selection) Toggle(id int64) bool {
	if _, ok := s[id]; ok {
		delete(s, id)
		return false
	}
	s[id] = struct{}{}
	return true
}

// Has reports whether id is selected.
func (s Selection) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the selected IDs in unspecified order.
func (s Selection) IDs() []int64 {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	return ids
}

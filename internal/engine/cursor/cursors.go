package cursor

import "sort"

// Set is an ordered collection of cursors.
// Unlike a selection model that merges overlaps, a Set keeps every cursor it
// is given, including coincident ones; callers that need uniqueness build the
// set from non-overlapping ranges.
type Set struct {
	cursors []Cursor
}

// NewSet creates a set holding a copy of cursors in the given order.
func NewSet(cursors ...Cursor) *Set {
	s := &Set{cursors: make([]Cursor, len(cursors))}
	copy(s.cursors, cursors)
	return s
}

// FromRanges creates a set of forward selections, one per range.
func FromRanges(ranges []Range) *Set {
	s := &Set{cursors: make([]Cursor, len(ranges))}
	for i, r := range ranges {
		s.cursors[i] = FromRange(r)
	}
	return s
}

// Len returns the number of cursors.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.cursors)
}

// IsEmpty returns true if the set holds no cursors.
func (s *Set) IsEmpty() bool {
	return s.Len() == 0
}

// Get returns the cursor at index.
// Returns a zero cursor if index is out of range.
func (s *Set) Get(index int) Cursor {
	if index < 0 || index >= s.Len() {
		return Cursor{}
	}
	return s.cursors[index]
}

// All returns a copy of all cursors in set order.
// The returned slice is safe to modify without affecting the Set.
func (s *Set) All() []Cursor {
	result := make([]Cursor, s.Len())
	if s != nil {
		copy(result, s.cursors)
	}
	return result
}

// Positions returns the position endpoint of every cursor in set order.
func (s *Set) Positions() []ByteOffset {
	result := make([]ByteOffset, 0, s.Len())
	for _, c := range s.All() {
		result = append(result, c.Position)
	}
	return result
}

// Descending returns the cursors ordered by descending start offset.
// Among cursors sharing a start the one reaching further comes first, so a
// selection is replaced before a caret at its start inserts. Identical ranges
// keep their set order reversed.
func (s *Set) Descending() []Cursor {
	result := s.All()
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Start() != result[j].Start() {
			return result[i].Start() > result[j].Start()
		}
		return result[i].End() > result[j].End()
	})
	return result
}

// Ascending returns the cursors ordered by ascending start offset.
func (s *Set) Ascending() []Cursor {
	result := s.All()
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Start() < result[j].Start()
	})
	return result
}

// HasSelection returns true if any cursor selects text.
func (s *Set) HasSelection() bool {
	for _, c := range s.All() {
		if c.HasSelection() {
			return true
		}
	}
	return false
}

// Map returns a new set with f applied to every cursor.
func (s *Set) Map(f func(Cursor) Cursor) *Set {
	result := &Set{cursors: make([]Cursor, s.Len())}
	for i, c := range s.All() {
		result.cursors[i] = f(c)
	}
	return result
}

// Clamp returns a new set with every cursor limited to [0, maxOffset].
func (s *Set) Clamp(maxOffset ByteOffset) *Set {
	return s.Map(func(c Cursor) Cursor { return c.Clamp(maxOffset) })
}

// Equals returns true if two sets hold the same cursors in the same order.
func (s *Set) Equals(other *Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for i := 0; i < s.Len(); i++ {
		if s.cursors[i] != other.cursors[i] {
			return false
		}
	}
	return true
}

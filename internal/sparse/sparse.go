// Package sparse provides a sparse set of dense uint32 ids.
//
// A sparse set supports O(1) insertion and membership testing, and clears in
// O(1), while keeping a dense list of its members in insertion order.
// The automaton uses it to collect distinct word ids across a scan without
// paying to clear a bitmap between scans.
package sparse

const defaultCapacity = 64

// SparseSet is a set of uint32 values below a fixed capacity.
// The sparse array maps values to indices in the dense array; a value is a
// member only if the two agree, so stale sparse entries are harmless.
type SparseSet struct {
	sparse []uint32 // value -> index in dense
	dense  []uint32 // members in insertion order
}

// NewSparseSet creates a set that can hold values in [0, capacity).
// A zero capacity selects a default of 64.
func NewSparseSet(capacity uint32) *SparseSet {
	if capacity == 0 {
		capacity = defaultCapacity
	}
	return &SparseSet{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Capacity returns the exclusive upper bound on storable values.
func (s *SparseSet) Capacity() int {
	return len(s.sparse)
}

// Resize changes the capacity. Growing keeps the members; shrinking, or
// resizing to the current capacity, clears the set.
func (s *SparseSet) Resize(capacity uint32) {
	if capacity == 0 {
		capacity = defaultCapacity
	}
	if int(capacity) <= len(s.sparse) {
		s.sparse = s.sparse[:capacity]
		s.Clear()
		return
	}
	sparse := make([]uint32, capacity)
	copy(sparse, s.sparse)
	dense := make([]uint32, len(s.dense), capacity)
	copy(dense, s.dense)
	s.sparse, s.dense = sparse, dense
}

// Insert adds value and reports whether it was not already present.
// Panics if value >= Capacity().
func (s *SparseSet) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}
	s.sparse[value] = uint32(len(s.dense))
	s.dense = append(s.dense, value)
	return true
}

// Contains reports whether value is in the set.
func (s *SparseSet) Contains(value uint32) bool {
	if uint64(value) >= uint64(len(s.sparse)) {
		return false
	}
	idx := s.sparse[value]
	return int(idx) < len(s.dense) && s.dense[idx] == value
}

// Clear removes all members in O(1).
func (s *SparseSet) Clear() {
	s.dense = s.dense[:0]
}

// Values returns the members in insertion order.
// The returned slice is valid until the next mutation.
func (s *SparseSet) Values() []uint32 {
	return s.dense
}

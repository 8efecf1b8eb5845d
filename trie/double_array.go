package trie

import (
	"unsafe"
)

// DAState is a double-array trie slot.
//
// The child of s on byte c lives in slot Base(s)+c, and that slot is a real
// child of s only if its parent back pointer equals s. Every slot is
// addressable, so absence of a transition is detected by the back pointer
// instead of by a missing entry.
type DAState struct {
	base   uint32
	parent uint32 // bit 31: terminal
	output uint32
	fail   uint32
}

const (
	daParentMask = 0x7FFFFFFF
	daTerm       = 0x80000000

	// daFree marks a slot that is not a child of any state.
	daFree = daParentMask
)

// Base returns the slot of the child on byte 0.
func (s *DAState) Base() uint32 { return s.base }

// Parent returns the raw parent back pointer with the terminal bit cleared.
// Free slots and the initial state return 0x7FFFFFFF.
func (s *DAState) Parent() uint32 { return s.parent & daParentMask }

// Output returns the output start offset.
func (s *DAState) Output() uint32 { return s.output }

// Fail returns the failure link.
func (s *DAState) Fail() StateID { return StateID(s.fail) }

var limitsDA = Limits{Name: "DAState", MaxState: daParentMask - 1, MaxOutput: 0xFFFFFFFC}

// DoubleArrayLimits returns the capacity of the double-array layout.
func DoubleArrayLimits() Limits { return limitsDA }

// DoubleArray is a read-only trie in double-array layout, built from another
// trie by BuildDoubleArray. The last slot is the output guard.
type DoubleArray struct {
	states      []DAState
	transitions int
}

// DoubleArrayFromSlice attaches to slots produced by States, guard included.
// The slice is used without copying.
func DoubleArrayFromSlice(states []DAState) *DoubleArray {
	da := &DoubleArray{states: states}
	for i := 1; i < len(states)-1; i++ {
		if states[i].parent&daParentMask != daFree {
			da.transitions++
		}
	}
	return da
}

// Limits returns the capacity of the double-array layout.
func (da *DoubleArray) Limits() Limits { return limitsDA }

// NumStates returns the number of slots, free slots included, guard excluded.
func (da *DoubleArray) NumStates() int { return len(da.states) - 1 }

// NumTransitions returns the number of occupied non-root slots.
func (da *DoubleArray) NumTransitions() int { return da.transitions }

// Child returns the child of s on c. The bool is false when s has no such
// transition.
func (da *DoubleArray) Child(s StateID, c byte) (StateID, bool) {
	next := uint64(da.states[s].base) + uint64(c)
	if next >= uint64(len(da.states)) {
		return NilState, false
	}
	if da.states[next].parent&daParentMask != uint32(s) {
		return NilState, false
	}
	return StateID(next), true
}

// StateMove returns the child of s on c, or NilState.
func (da *DoubleArray) StateMove(s StateID, c byte) StateID {
	next, _ := da.Child(s, c)
	return next
}

// ForEachMove calls fn for every child of s in ascending label order.
func (da *DoubleArray) ForEachMove(s StateID, fn func(target StateID, c byte)) {
	if da.IsFree(s) {
		return
	}
	for c := 0; c < 256; c++ {
		if next, ok := da.Child(s, byte(c)); ok {
			fn(next, byte(c))
		}
	}
}

// Base returns the slot of the child on byte 0; children on byte c live at
// Base()+c.
func (da *DoubleArray) Base(s StateID) uint32 { return da.states[s].base }

// Parent returns the parent of s, or NilState for the initial state and free
// slots.
func (da *DoubleArray) Parent(s StateID) StateID {
	p := da.states[s].parent & daParentMask
	if p == daFree {
		return NilState
	}
	return StateID(p)
}

// IsFree reports whether slot s holds no state.
func (da *DoubleArray) IsFree(s StateID) bool {
	return s != InitialState && da.states[s].parent&daParentMask == daFree
}

// IsTerm reports whether a word ends at s.
func (da *DoubleArray) IsTerm(s StateID) bool { return da.states[s].parent&daTerm != 0 }

// Output returns the output start offset of s. s may be the guard.
func (da *DoubleArray) Output(s StateID) uint32 { return da.states[s].output }

// SetOutput sets the output start offset of s. s may be the guard.
func (da *DoubleArray) SetOutput(s StateID, off uint32) { da.states[s].output = off }

// Fail returns the failure link of s.
func (da *DoubleArray) Fail(s StateID) StateID { return StateID(da.states[s].fail) }

// SetFail sets the failure link of s.
func (da *DoubleArray) SetFail(s, f StateID) { da.states[s].fail = uint32(f) }

// States returns the slot storage including the guard.
func (da *DoubleArray) States() []DAState { return da.states }

// MemSize returns the number of bytes used by the slots.
func (da *DoubleArray) MemSize() int {
	return len(da.states) * int(unsafe.Sizeof(DAState{}))
}

// BuildDoubleArray relays src out as a double array, visiting src in
// breadth-first order and placing each state's children at the first base
// where all their slots are free.
//
// It returns the double array and the slot of every src state (indexed by
// src state id). Output offsets and failure links are left zero.
func BuildDoubleArray(src Graph) (*DoubleArray, []StateID, error) {
	n := src.NumStates()
	b := daBuilder{
		states: make([]DAState, 0, n+n/4+256),
		used:   make([]bool, 0, n+n/4+256),
	}
	b.grow(256)
	b.used[0] = true

	slots := make([]StateID, n)
	for i := range slots {
		slots[i] = NilState
	}
	slots[InitialState] = InitialState

	var (
		labels  []byte
		targets []StateID
	)
	queue := make([]StateID, 1, n)
	queue[0] = InitialState
	for head := 0; head < len(queue); head++ {
		y := queue[head]
		labels, targets = labels[:0], targets[:0]
		src.ForEachMove(y, func(target StateID, c byte) {
			labels = append(labels, c)
			targets = append(targets, target)
		})
		if len(labels) == 0 {
			continue
		}
		x := slots[y]
		base := b.findBase(labels)
		if uint64(base)+256 > uint64(limitsDA.MaxState) {
			return nil, nil, &CapacityError{
				Layout: limitsDA.Name,
				Limit:  "MaxState",
				Max:    uint64(limitsDA.MaxState),
				Got:    uint64(base) + 256,
			}
		}
		b.grow(int(base) + 256)
		b.states[x].base = base
		for i, c := range labels {
			slot := int(base) + int(c)
			b.used[slot] = true
			parent := uint32(x)
			if src.IsTerm(targets[i]) {
				parent |= daTerm
			}
			b.states[slot].parent = parent
			slots[targets[i]] = StateID(slot)
			queue = append(queue, targets[i])
		}
	}

	// guard
	b.states = append(b.states, DAState{parent: daFree})
	return &DoubleArray{states: b.states, transitions: len(queue) - 1}, slots, nil
}

type daBuilder struct {
	states    []DAState
	used      []bool
	firstFree int
}

func (b *daBuilder) grow(n int) {
	for len(b.states) < n {
		b.states = append(b.states, DAState{parent: daFree})
		b.used = append(b.used, false)
	}
}

// findBase returns the lowest base >= 1 such that base+c is free for every
// label c. labels are sorted ascending.
func (b *daBuilder) findBase(labels []byte) uint32 {
	for b.firstFree < len(b.used) && b.used[b.firstFree] {
		b.firstFree++
	}
	base := b.firstFree - int(labels[0])
	if base < 1 {
		base = 1
	}
next:
	for ; ; base++ {
		for _, c := range labels {
			slot := base + int(c)
			if slot < len(b.used) && b.used[slot] {
				continue next
			}
		}
		return uint32(base)
	}
}

package trie

import (
	"fmt"
	"unsafe"
)

// Linked is a trie whose states keep their children in a sorted singly linked
// edge list. It is generic over the state layout so that the same code drives
// State16, State12 and State8.
//
// States are appended by NewState and never removed. After the Aho-Corasick
// compilation a guard state is appended whose Output holds the total output
// length; NumStates does not count it.
type Linked[S any, P NodePtr[S]] struct {
	states []S
	edges  []Edge
	limits Limits
	guard  bool
}

// NewLinked creates a trie holding only the initial state.
func NewLinked[S any, P NodePtr[S]](capacity int) *Linked[S, P] {
	if capacity < 1 {
		capacity = 1
	}
	var zero S
	return &Linked[S, P]{
		states: make([]S, 1, capacity),
		edges:  make([]Edge, 0, capacity),
		limits: P(&zero).Limits(),
	}
}

// LinkedFromSlices attaches a trie to existing state and edge storage, as
// produced by States and Edges. states must include the guard state.
// The slices are used as is, without copying.
func LinkedFromSlices[S any, P NodePtr[S]](states []S, edges []Edge) (*Linked[S, P], error) {
	if len(states) < 2 {
		return nil, fmt.Errorf("linked trie needs at least 2 states, got %d", len(states))
	}
	if len(edges) >= len(states) {
		return nil, fmt.Errorf("linked trie has %d edges for %d states", len(edges), len(states)-1)
	}
	var zero S
	return &Linked[S, P]{
		states: states,
		edges:  edges,
		limits: P(&zero).Limits(),
		guard:  true,
	}, nil
}

func (t *Linked[S, P]) at(s StateID) P {
	return P(&t.states[s])
}

// Limits returns the capacity of the state layout.
func (t *Linked[S, P]) Limits() Limits {
	return t.limits
}

// NumStates returns the number of states, excluding the guard.
func (t *Linked[S, P]) NumStates() int {
	if t.guard {
		return len(t.states) - 1
	}
	return len(t.states)
}

// NumTransitions returns the number of edges.
func (t *Linked[S, P]) NumTransitions() int {
	return len(t.edges)
}

// NewState appends a state without children.
func (t *Linked[S, P]) NewState() (StateID, error) {
	n := len(t.states)
	if uint64(n) > uint64(t.limits.MaxState) {
		return NilState, &CapacityError{
			Layout: t.limits.Name,
			Limit:  "MaxState",
			Max:    uint64(t.limits.MaxState),
			Got:    uint64(n),
		}
	}
	var zero S
	t.states = append(t.states, zero)
	return StateID(n), nil
}

// AddMove adds the transition s --c--> target, keeping the sibling list
// sorted by label. Adding a label that already exists on s panics.
func (t *Linked[S, P]) AddMove(s, target StateID, c byte) {
	node := t.at(s)
	prev := NilEdge
	next := node.FirstEdge()
	for next != NilEdge && t.edges[next].Label < c {
		prev, next = next, t.edges[next].NextEdge()
	}
	if next != NilEdge && t.edges[next].Label == c {
		panic(fmt.Sprintf("trie: state %d already has a transition on %q", s, c))
	}
	e := uint32(len(t.edges))
	t.edges = append(t.edges, Edge{next: next + 1, Target: target, Label: c})
	if prev == NilEdge {
		node.SetFirstEdge(e)
	} else {
		t.edges[prev].next = e + 1
	}
}

// StateMove returns the target of the transition on c, or NilState.
func (t *Linked[S, P]) StateMove(s StateID, c byte) StateID {
	for e := t.at(s).FirstEdge(); e != NilEdge; {
		edge := &t.edges[e]
		if edge.Label >= c {
			if edge.Label == c {
				return edge.Target
			}
			return NilState
		}
		e = edge.NextEdge()
	}
	return NilState
}

// ForEachMove calls fn for every child of s in ascending label order.
func (t *Linked[S, P]) ForEachMove(s StateID, fn func(target StateID, c byte)) {
	for e := t.at(s).FirstEdge(); e != NilEdge; {
		edge := &t.edges[e]
		fn(edge.Target, edge.Label)
		e = edge.NextEdge()
	}
}

// IsTerm reports whether a word ends at s.
func (t *Linked[S, P]) IsTerm(s StateID) bool { return t.at(s).IsTerm() }

// SetTerm marks s as the end of a word.
func (t *Linked[S, P]) SetTerm(s StateID) { t.at(s).SetTerm() }

// Output returns the output start offset of s. s may be the guard.
func (t *Linked[S, P]) Output(s StateID) uint32 { return t.at(s).Output() }

// SetOutput sets the output start offset of s. s may be the guard.
func (t *Linked[S, P]) SetOutput(s StateID, off uint32) { t.at(s).SetOutput(off) }

// Fail returns the failure link of s.
func (t *Linked[S, P]) Fail(s StateID) StateID { return t.at(s).Fail() }

// SetFail sets the failure link of s.
func (t *Linked[S, P]) SetFail(s, f StateID) { t.at(s).SetFail(f) }

// AppendGuard appends the guard state that terminates the output offsets.
// It is a no-op when the guard already exists.
func (t *Linked[S, P]) AppendGuard() {
	if t.guard {
		return
	}
	var zero S
	t.states = append(t.states, zero)
	t.guard = true
}

// Shrink drops spare slice capacity once the trie is complete.
func (t *Linked[S, P]) Shrink() {
	if cap(t.states) > len(t.states) {
		t.states = append([]S(nil), t.states...)
	}
	if cap(t.edges) > len(t.edges) {
		t.edges = append([]Edge(nil), t.edges...)
	}
}

// States returns the state storage including the guard.
func (t *Linked[S, P]) States() []S { return t.states }

// Edges returns the edge storage.
func (t *Linked[S, P]) Edges() []Edge { return t.edges }

// MemSize returns the number of bytes used by states and edges.
func (t *Linked[S, P]) MemSize() int {
	var zero S
	return len(t.states)*int(unsafe.Sizeof(zero)) + len(t.edges)*int(unsafe.Sizeof(Edge{}))
}

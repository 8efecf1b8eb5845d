// Package trie provides the state storage beneath the Aho-Corasick automaton.
//
// Three linked layouts (16, 12 and 8 bytes per state) trade memory per state
// against the largest automaton they can address, and a 16-byte double-array
// layout gives O(1) child lookup validated by a parent back pointer:
//
//	Layout     output bits  fail bits  MaxState      MaxOutput
//	State16    32           32         0xFFFFFFFC    0xFFFFFFFC
//	State12    30           26         0x3FFFFFE     0x3FFFFFFF
//	State8     15           17         0x1FFFE       0x7FFF
//	DAState    32           32         0x7FFFFFFE    0xFFFFFFFC
//
// Every layout carries the two Aho-Corasick fields next to the trie fields:
// output (start offset into a shared output array) and fail (failure link).
package trie

// StateID identifies a trie state. The initial state is always 0.
type StateID uint32

const (
	// InitialState is the root of every trie.
	InitialState StateID = 0

	// NilState is returned by lookups that find no transition.
	NilState StateID = 0xFFFFFFFF

	// NilEdge terminates an edge list.
	NilEdge uint32 = 0xFFFFFFFF
)

// Limits describes the capacity of a state layout.
type Limits struct {
	// Name is the layout name used in capacity errors.
	Name string

	// MaxState is the largest state id the layout can store in its fail field.
	MaxState StateID

	// MaxOutput is the largest output offset the layout can store, which
	// bounds the total length of the compacted output array.
	MaxOutput uint32
}

// Node is the capability set shared by all linked state layouts.
//
// Edge indexes are stored biased by one so the zero value of every layout is
// a state without children.
type Node interface {
	FirstEdge() uint32
	SetFirstEdge(e uint32)
	IsTerm() bool
	SetTerm()
	Output() uint32
	SetOutput(off uint32)
	Fail() StateID
	SetFail(s StateID)
	Limits() Limits
}

// NodePtr constrains P to be a pointer to a state layout S implementing Node.
type NodePtr[S any] interface {
	*S
	Node
}

// State16 is the widest linked layout: every field gets a full 32-bit word.
type State16 struct {
	edge   uint32
	flags  uint32
	output uint32
	fail   uint32
}

const state16Term = 1

func (s *State16) FirstEdge() uint32 { return s.edge - 1 }
func (s *State16) SetFirstEdge(e uint32) { s.edge = e + 1 }
func (s *State16) IsTerm() bool { return s.flags&state16Term != 0 }
func (s *State16) SetTerm() { s.flags |= state16Term }
func (s *State16) Output() uint32 { return s.output }
func (s *State16) SetOutput(off uint32) { s.output = off }
func (s *State16) Fail() StateID { return StateID(s.fail) }
func (s *State16) SetFail(f StateID) { s.fail = uint32(f) }
func (State16) Limits() Limits { return limits16 }

var limits16 = Limits{Name: "State16", MaxState: 0xFFFFFFFC, MaxOutput: 0xFFFFFFFC}

// State12 packs output (30 bits), fail (26 bits) and the terminal bit into
// two 32-bit words after the edge word.
type State12 struct {
	edge uint32
	lo   uint32
	hi   uint32
}

const (
	state12OutputBits = 30
	state12FailBits   = 26
	state12OutputMask = 1<<state12OutputBits - 1
	state12FailMask   = 1<<state12FailBits - 1
	state12TermShift  = state12OutputBits + state12FailBits
)

func (s *State12) packed() uint64 { return uint64(s.lo) | uint64(s.hi)<<32 }

func (s *State12) setPacked(v uint64) {
	s.lo = uint32(v)
	s.hi = uint32(v >> 32)
}

func (s *State12) FirstEdge() uint32 { return s.edge - 1 }
func (s *State12) SetFirstEdge(e uint32) { s.edge = e + 1 }
func (s *State12) IsTerm() bool { return s.packed()>>state12TermShift&1 != 0 }
func (s *State12) SetTerm() { s.setPacked(s.packed() | 1<<state12TermShift) }
func (s *State12) Output() uint32 { return uint32(s.packed() & state12OutputMask) }

func (s *State12) SetOutput(off uint32) {
	v := s.packed() &^ state12OutputMask
	s.setPacked(v | uint64(off)&state12OutputMask)
}

func (s *State12) Fail() StateID {
	return StateID(s.packed() >> state12OutputBits & state12FailMask)
}

func (s *State12) SetFail(f StateID) {
	v := s.packed() &^ (state12FailMask << state12OutputBits)
	s.setPacked(v | (uint64(f)&state12FailMask)<<state12OutputBits)
}

func (State12) Limits() Limits { return limits12 }

var limits12 = Limits{Name: "State12", MaxState: state12FailMask - 1, MaxOutput: state12OutputMask}

// State8 is the smallest layout. The edge word donates its top bit to the
// terminal flag, and output (15 bits) shares a word with fail (17 bits).
type State8 struct {
	edge uint32
	link uint32
}

const (
	state8EdgeMask   = 0x7FFFFFFF
	state8Term       = 0x80000000
	state8OutputBits = 15
	state8OutputMask = 1<<state8OutputBits - 1
	state8FailMask   = 1<<17 - 1
)

func (s *State8) FirstEdge() uint32 { return s.edge&state8EdgeMask - 1 }

func (s *State8) SetFirstEdge(e uint32) {
	s.edge = s.edge&state8Term | (e+1)&state8EdgeMask
}

func (s *State8) IsTerm() bool { return s.edge&state8Term != 0 }
func (s *State8) SetTerm() { s.edge |= state8Term }
func (s *State8) Output() uint32 { return s.link & state8OutputMask }

func (s *State8) SetOutput(off uint32) {
	s.link = s.link&^state8OutputMask | off&state8OutputMask
}

func (s *State8) Fail() StateID { return StateID(s.link >> state8OutputBits) }

func (s *State8) SetFail(f StateID) {
	s.link = s.link&state8OutputMask | (uint32(f)&state8FailMask)<<state8OutputBits
}

func (State8) Limits() Limits { return limits8 }

var limits8 = Limits{Name: "State8", MaxState: 0x1FFFE, MaxOutput: 0x7FFF}

// Edge is one labeled transition of a linked trie. Siblings form a list
// sorted by label.
type Edge struct {
	next   uint32
	Target StateID
	Label  byte
}

// NextEdge returns the next sibling or NilEdge.
func (e *Edge) NextEdge() uint32 { return e.next - 1 }

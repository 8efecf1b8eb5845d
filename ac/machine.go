package ac

import "github.com/coregx/coreac/trie"

// machine is the read-only view of compiled trie storage that the scanners
// and accessors use. Every state layout implements it, and the guard state
// at NumStates() answers Output with the total output length.
type machine interface {
	trie.Graph
	StateMove(s trie.StateID, c byte) trie.StateID
	Output(s trie.StateID) uint32
	Fail(s trie.StateID) trie.StateID
	NumTransitions() int
	MemSize() int
	Limits() trie.Limits
}

// linkedTrie is the mutable view used while building.
type linkedTrie interface {
	machine
	NewState() (trie.StateID, error)
	AddMove(s, target trie.StateID, c byte)
	SetTerm(s trie.StateID)
	SetOutput(s trie.StateID, off uint32)
	SetFail(s, f trie.StateID)
	AppendGuard()
	Shrink()
}

var (
	_ linkedTrie = (*trie.Linked[trie.State16, *trie.State16])(nil)
	_ linkedTrie = (*trie.Linked[trie.State12, *trie.State12])(nil)
	_ linkedTrie = (*trie.Linked[trie.State8, *trie.State8])(nil)
	_ machine    = (*trie.DoubleArray)(nil)
)

// newLinked returns empty linked storage for a linked layout. The double
// array is compiled in 16-byte linked storage and relaid out afterwards.
func newLinked(l Layout, capacity int) linkedTrie {
	switch l {
	case Layout12:
		return trie.NewLinked[trie.State12](capacity)
	case Layout8:
		return trie.NewLinked[trie.State8](capacity)
	default:
		return trie.NewLinked[trie.State16](capacity)
	}
}

// Package ac implements an Aho-Corasick multi-pattern matching automaton.
//
// A Builder collects byte-string words into a trie. Compile adds failure
// links and a compacted output table so that a single left-to-right pass
// over any input reports every occurrence of every word:
//
//	b, _ := ac.NewBuilder(ac.DefaultConfig())
//	b.AddString("he")
//	b.AddString("she")
//	a, _ := b.Compile()
//	a.Scan([]byte("ushers"), func(end int, words []uint32, _ trie.StateID) {
//	    fmt.Println(end, words) // 4 [1 0]
//	})
//
// The compiled Automaton is immutable and safe for concurrent use. It can
// be written to disk with Image and persist.Write, and loaded back (memory
// mapped) with persist.Open and FromImage.
//
// Four state layouts trade memory against capacity and speed; see Layout.
// Matching works on raw bytes. A ByteTranslator can fold bytes (for example
// ASCII case) on the fly.
package ac

import (
	"github.com/coregx/coreac/bytetable"
	"github.com/coregx/coreac/persist"
	"github.com/coregx/coreac/trie"
)

// Automaton is a compiled Aho-Corasick automaton.
//
// The output table holds, for every state, the ids of all words that end
// at that state or anywhere on its failure chain. A state's range starts at
// its output offset and ends at the next state's offset; a guard state after
// the last one holds the total length.
type Automaton struct {
	layout  Layout
	wordExt WordExt

	m  machine
	da *trie.DoubleArray // non-nil for LayoutDoubleArray

	output   []uint32
	offsets  []uint32 // nil unless wordExt >= WordExtLength
	strpool  []byte   // nil unless wordExt == WordExtContent
	numWords int

	root      [256]bool // bytes with a transition out of the initial state
	rootCount int

	img *persist.Image // backing image when loaded by FromImage
}

// init derives the scan-time tables. It must run after the trie is final.
func (a *Automaton) init() {
	a.root = [256]bool{}
	a.m.ForEachMove(trie.InitialState, func(_ trie.StateID, c byte) {
		a.root[c] = true
	})
	a.rootCount = bytetable.CountInTable(&a.root)
}

// Layout returns the state layout.
func (a *Automaton) Layout() Layout { return a.layout }

// WordExt returns which per-word tables the automaton keeps.
func (a *Automaton) WordExt() WordExt { return a.wordExt }

// NumWords returns the number of distinct words.
func (a *Automaton) NumWords() int { return a.numWords }

// NumStates returns the number of states. For LayoutDoubleArray this counts
// every slot, free slots included.
func (a *Automaton) NumStates() int { return a.m.NumStates() }

// NumTransitions returns the number of trie transitions.
func (a *Automaton) NumTransitions() int { return a.m.NumTransitions() }

// MemSize returns the approximate number of bytes held by the automaton.
func (a *Automaton) MemSize() int {
	return a.m.MemSize() + 4*len(a.output) + 4*len(a.offsets) + len(a.strpool)
}

// Words returns the ids of all words matched when the scan is at state s,
// or nil. The slice aliases the output table and must not be modified.
func (a *Automaton) Words(s trie.StateID) []uint32 {
	beg, end := a.m.Output(s), a.m.Output(s+1)
	if beg >= end {
		return nil
	}
	return a.output[beg:end:end]
}

// IsMatchState reports whether reaching s reports at least one word.
func (a *Automaton) IsMatchState(s trie.StateID) bool {
	return a.m.Output(s) < a.m.Output(s+1)
}

// NextState returns the state the scanner moves to from s on byte c. It
// follows failure links, so the result is total: the automaton viewed as a
// full DFA.
func (a *Automaton) NextState(s trie.StateID, c byte) trie.StateID {
	if a.da != nil {
		return a.stepDA(a.da.States(), s, c)
	}
	return a.step(s, c)
}

// step is the generic transition: follow failure links until a state has
// a move on c, staying at the initial state when even it has none.
func (a *Automaton) step(curr trie.StateID, c byte) trie.StateID {
	for {
		if next := a.m.StateMove(curr, c); next != trie.NilState {
			return next
		}
		if curr == trie.InitialState {
			return curr
		}
		curr = a.m.Fail(curr)
	}
}

// stepDA is step on double-array slots: the child slot is base+c and it is
// valid only when its parent back pointer names curr.
func (a *Automaton) stepDA(states []trie.DAState, curr trie.StateID, c byte) trie.StateID {
	for {
		next := uint64(states[curr].Base()) + uint64(c)
		if next < uint64(len(states)) && states[next].Parent() == uint32(curr) {
			return trie.StateID(next)
		}
		if curr == trie.InitialState {
			return curr
		}
		curr = states[curr].Fail()
	}
}

// Find returns the id of word when it is in the dictionary.
func (a *Automaton) Find(word []byte) (uint32, bool) {
	if len(word) == 0 {
		return 0, false
	}
	curr := trie.InitialState
	for _, c := range word {
		curr = a.m.StateMove(curr, c)
		if curr == trie.NilState {
			return 0, false
		}
	}
	if !a.m.IsTerm(curr) {
		return 0, false
	}
	// A terminal state's own word is first in its range.
	return a.output[a.m.Output(curr)], true
}

// FindString is Find for a string.
func (a *Automaton) FindString(word string) (uint32, bool) {
	return a.Find([]byte(word))
}

// WordLen returns the length of word id. It needs WordExtLength or
// WordExtContent.
func (a *Automaton) WordLen(id uint32) (int, bool) {
	if a.wordExt < WordExtLength || uint64(id) >= uint64(a.numWords) {
		return 0, false
	}
	return int(a.offsets[id+1] - a.offsets[id]), true
}

// Word returns the bytes of word id. It needs WordExtContent. The slice
// aliases the automaton and must not be modified.
func (a *Automaton) Word(id uint32) ([]byte, bool) {
	if a.wordExt != WordExtContent || uint64(id) >= uint64(a.numWords) {
		return nil, false
	}
	beg, end := a.offsets[id], a.offsets[id+1]
	return a.strpool[beg:end:end], true
}

// ForEachWord calls fn for every word in lexicographic byte order with the
// word's rank, its bytes (reused between calls) and its terminal state.
// It returns the number of words.
func (a *Automaton) ForEachWord(fn func(nth int, word []byte, s trie.StateID)) int {
	return trie.ForEachWord(a.m, fn)
}

// Close releases the memory mapping behind an automaton loaded from a
// mapped image. The automaton must not be used afterwards. Close is a no-op
// for automata that own their memory.
func (a *Automaton) Close() error {
	if a.img == nil {
		return nil
	}
	return a.img.Close()
}

// Borrowed reports whether the automaton aliases a memory mapping.
func (a *Automaton) Borrowed() bool {
	return a.img != nil && a.img.Borrowed()
}

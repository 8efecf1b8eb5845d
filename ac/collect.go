package ac

import (
	"github.com/coregx/coreac/bytetable"
	"github.com/coregx/coreac/internal/sparse"
	"github.com/coregx/coreac/trie"
)

// Hit is one occurrence of a word: text[End-len(word):End] equals the word.
type Hit struct {
	Word uint32
	End  int
}

// FindAll returns every occurrence of every word in text, ordered by end
// position and, at equal ends, longest word first.
func (a *Automaton) FindAll(text []byte) []Hit {
	var hits []Hit
	a.Scan(text, func(end int, words []uint32, _ trie.StateID) {
		for _, w := range words {
			hits = append(hits, Hit{Word: w, End: end})
		}
	})
	return hits
}

// DistinctWords returns the ids of the words occurring in text, each once,
// in order of first occurrence. set is scratch space reused across calls; it
// is cleared first and grown to NumWords if needed, and the result aliases
// it. A nil set allocates a fresh one.
func (a *Automaton) DistinctWords(text []byte, set *sparse.SparseSet) []uint32 {
	if set == nil {
		set = sparse.NewSparseSet(uint32(a.numWords))
	} else if set.Capacity() < a.numWords {
		set.Resize(uint32(a.numWords))
	}
	set.Clear()
	a.Scan(text, func(_ int, words []uint32, _ trie.StateID) {
		for _, w := range words {
			set.Insert(w)
		}
	})
	return set.Values()
}

// IsMatch reports whether any word occurs in text. It stops at the first
// hit.
func (a *Automaton) IsMatch(text []byte) bool {
	_, _, ok := a.FirstHit(text)
	return ok
}

// FirstHit returns the smallest end position at which some word occurs and
// the scanner state there.
func (a *Automaton) FirstHit(text []byte) (end int, state trie.StateID, ok bool) {
	curr := trie.InitialState
	skip := a.skip(nil)
	for pos := 0; pos < len(text); {
		if skip && curr == trie.InitialState {
			i := bytetable.MemchrInTable(text[pos:], &a.root)
			if i < 0 {
				return 0, trie.InitialState, false
			}
			pos += i
		}
		curr = a.NextState(curr, text[pos])
		pos++
		if a.IsMatchState(curr) {
			return pos, curr, true
		}
	}
	return 0, trie.InitialState, false
}

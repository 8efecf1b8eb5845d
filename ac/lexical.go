package ac

import (
	"cmp"
	"slices"

	"github.com/coregx/coreac/trie"
)

// AssignLexicographicIDs renumbers the words so that ids follow the
// lexicographic byte order of the words. The output table is rewritten
// through the permutation, and the offsets and strpool tables are rebuilt
// in the new order.
//
// It mutates the automaton and must not run concurrently with scans.
func (a *Automaton) AssignLexicographicIDs() {
	if a.numWords == 0 {
		return
	}
	perm := make([]uint32, a.numWords) // old id -> new id
	a.ForEachWord(func(nth int, _ []byte, s trie.StateID) {
		perm[a.output[a.m.Output(s)]] = uint32(nth)
	})

	output := a.writableOutput()
	for i, w := range output {
		output[i] = perm[w]
	}

	if a.wordExt < WordExtLength {
		return
	}
	inv := make([]uint32, a.numWords) // new id -> old id
	for old, id := range perm {
		inv[id] = uint32(old)
	}
	offsets := make([]uint32, 1, a.numWords+1)
	var strpool []byte
	if a.wordExt == WordExtContent {
		strpool = make([]byte, 0, len(a.strpool))
	}
	for _, old := range inv {
		beg, end := a.offsets[old], a.offsets[old+1]
		offsets = append(offsets, offsets[len(offsets)-1]+end-beg)
		if strpool != nil {
			strpool = append(strpool, a.strpool[beg:end]...)
		}
	}
	a.offsets, a.strpool = offsets, strpool
}

// SortOutputsByWordLen orders every state's output range by word length,
// longest first. Ties keep their current order.
//
// It mutates the automaton and must not run concurrently with scans.
func (a *Automaton) SortOutputsByWordLen() {
	lens := a.wordLens()
	output := a.writableOutput()
	for s := 0; s < a.m.NumStates(); s++ {
		beg, end := a.m.Output(trie.StateID(s)), a.m.Output(trie.StateID(s+1))
		if end-beg < 2 {
			continue
		}
		slices.SortStableFunc(output[beg:end], func(x, y uint32) int {
			return cmp.Compare(lens[y], lens[x])
		})
	}
}

// wordLens returns the length of every word, from the offsets table when
// there is one and otherwise from the depth of each word's terminal state.
func (a *Automaton) wordLens() []uint32 {
	lens := make([]uint32, a.numWords)
	if a.wordExt >= WordExtLength {
		for i := range lens {
			lens[i] = a.offsets[i+1] - a.offsets[i]
		}
		return lens
	}
	depth := make([]uint32, a.m.NumStates())
	trie.BFS(a.m, trie.InitialState, func(parent, child trie.StateID, _ byte) {
		depth[child] = depth[parent] + 1
		if a.m.IsTerm(child) {
			lens[a.output[a.m.Output(child)]] = depth[child]
		}
	})
	return lens
}

// writableOutput returns the output table, first copying it out of a
// read-only mapping when the automaton borrows one.
func (a *Automaton) writableOutput() []uint32 {
	if a.Borrowed() {
		a.output = slices.Clone(a.output)
	}
	return a.output
}

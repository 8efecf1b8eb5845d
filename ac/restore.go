package ac

import (
	"fmt"

	"github.com/coregx/coreac/trie"
)

// RestoreWord rebuilds the bytes of word from a state reported by a scan.
// state must be a state at which word is matched (for example the state
// passed to OnHit together with word); the word is the last WordLen(word)
// bytes of the path to state.
//
// Only LayoutDoubleArray keeps the parent links this walk needs, and the
// automaton must have word lengths.
func (a *Automaton) RestoreWord(state trie.StateID, word uint32) ([]byte, error) {
	if a.da == nil {
		return nil, &Error{
			Kind:    NotImplemented,
			Message: fmt.Sprintf("RestoreWord needs LayoutDoubleArray, automaton uses %s", a.layout),
		}
	}
	if a.wordExt < WordExtLength {
		return nil, ErrNoWordLengths
	}
	n, ok := a.WordLen(word)
	if !ok {
		return nil, fmt.Errorf("ac: word id %d out of range [0, %d)", word, a.numWords)
	}
	if int(state) >= a.da.NumStates() {
		return nil, fmt.Errorf("ac: state %d out of range [0, %d)", state, a.da.NumStates())
	}

	buf := make([]byte, n)
	s := state
	for i := n - 1; i >= 0; i-- {
		p := a.da.Parent(s)
		if p == trie.NilState {
			return nil, fmt.Errorf("ac: state %d is %d bytes deep, word %d has %d", state, n-1-i, word, n)
		}
		buf[i] = byte(uint32(s) - a.da.Base(p))
		s = p
	}
	return buf, nil
}

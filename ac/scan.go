package ac

import (
	"io"

	"github.com/coregx/coreac/bytetable"
	"github.com/coregx/coreac/trie"
)

// OnHit receives the matches at one input position. end is the position
// just past the last byte of the matched words (for reverse scans, the
// position of their first byte). words holds the ids of every word matched
// there: the word ending at state first, then those on its failure chain.
// It aliases the automaton and must not be modified or retained. state is
// the scanner state after the byte.
type OnHit func(end int, words []uint32, state trie.StateID)

// ByteTranslator maps every input byte before it is matched. A nil
// translator is the identity.
type ByteTranslator func(byte) byte

// Scan reports every occurrence of every word in text, in order of end
// position. onHit is called once per position with at least one match.
func (a *Automaton) Scan(text []byte, onHit OnHit) {
	a.ScanRange(text, 0, len(text), onHit, nil)
}

// ScanString is Scan for a string.
func (a *Automaton) ScanString(text string, onHit OnHit) {
	a.ScanRange([]byte(text), 0, len(text), onHit, nil)
}

// ScanWithTranslate is Scan with every byte passed through tr.
func (a *Automaton) ScanWithTranslate(text []byte, onHit OnHit, tr ByteTranslator) {
	a.ScanRange(text, 0, len(text), onHit, tr)
}

// ScanRange scans text[beg:end]. Reported positions are relative to text,
// not to beg. Panics if the range is out of bounds.
func (a *Automaton) ScanRange(text []byte, beg, end int, onHit OnHit, tr ByteTranslator) {
	_ = text[beg:end]
	if a.da != nil {
		a.scanDA(text, beg, end, onHit, tr)
		return
	}
	a.scanGeneric(text, beg, end, onHit, tr)
}

// skip reports whether the root table can be used to jump over bytes.
func (a *Automaton) skip(tr ByteTranslator) bool {
	return tr == nil && a.rootCount < 256
}

func (a *Automaton) scanGeneric(text []byte, pos, end int, onHit OnHit, tr ByteTranslator) {
	skip := a.skip(tr)
	curr := trie.InitialState
	for pos < end {
		if skip && curr == trie.InitialState {
			i := bytetable.MemchrInTable(text[pos:end], &a.root)
			if i < 0 {
				return
			}
			pos += i
		}
		c := text[pos]
		if tr != nil {
			c = tr(c)
		}
		pos++
		curr = a.step(curr, c)
		if beg, fin := a.m.Output(curr), a.m.Output(curr+1); beg < fin {
			onHit(pos, a.output[beg:fin:fin], curr)
		}
	}
}

// scanDA is scanGeneric specialized for the double array. Transitions are
// an indexed load plus a parent check, and output bounds come straight from
// adjacent slots.
func (a *Automaton) scanDA(text []byte, pos, end int, onHit OnHit, tr ByteTranslator) {
	states := a.da.States()
	skip := a.skip(tr)
	curr := trie.InitialState
	for pos < end {
		if skip && curr == trie.InitialState {
			i := bytetable.MemchrInTable(text[pos:end], &a.root)
			if i < 0 {
				return
			}
			pos += i
		}
		c := text[pos]
		if tr != nil {
			c = tr(c)
		}
		pos++
		curr = a.stepDA(states, curr, c)
		if beg, fin := states[curr].Output(), states[curr+1].Output(); beg < fin {
			onHit(pos, a.output[beg:fin:fin], curr)
		}
	}
}

// ScanReverse consumes text from the last byte to the first. The position
// reported with each hit is the index of the byte just consumed, which is
// the start of the matched words in text.
//
// The automaton must be built from reversed words for the hits to be
// occurrences of the original words.
func (a *Automaton) ScanReverse(text []byte, onHit OnHit) {
	a.ScanReverseWithTranslate(text, onHit, nil)
}

// ScanReverseWithTranslate is ScanReverse with every byte passed through tr.
func (a *Automaton) ScanReverseWithTranslate(text []byte, onHit OnHit, tr ByteTranslator) {
	skip := a.skip(tr)
	curr := trie.InitialState
	for pos := len(text); pos > 0; {
		if skip && curr == trie.InitialState {
			i := bytetable.MemrchrInTable(text[:pos], &a.root)
			if i < 0 {
				return
			}
			pos = i + 1
		}
		pos--
		c := text[pos]
		if tr != nil {
			c = tr(c)
		}
		curr = a.NextState(curr, c)
		if beg, fin := a.m.Output(curr), a.m.Output(curr+1); beg < fin {
			onHit(pos, a.output[beg:fin:fin], curr)
		}
	}
}

// ScanStream scans bytes pulled from r until io.EOF. Positions count bytes
// read. It returns nil at io.EOF and any other read error as is, after
// reporting the hits found before it.
func (a *Automaton) ScanStream(r io.ByteReader, onHit OnHit) error {
	return a.ScanStreamWithTranslate(r, onHit, nil)
}

// ScanStreamWithTranslate is ScanStream with every byte passed through tr.
func (a *Automaton) ScanStreamWithTranslate(r io.ByteReader, onHit OnHit, tr ByteTranslator) error {
	curr := trie.InitialState
	for pos := 0; ; {
		c, err := r.ReadByte()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if tr != nil {
			c = tr(c)
		}
		pos++
		curr = a.NextState(curr, c)
		if beg, fin := a.m.Output(curr), a.m.Output(curr+1); beg < fin {
			onHit(pos, a.output[beg:fin:fin], curr)
		}
	}
}

package ac

import (
	"fmt"
	"io"

	"github.com/coregx/coreac/internal/conv"
	"github.com/coregx/coreac/persist"
	"github.com/coregx/coreac/trie"
)

// Block names of an automaton image, in the order Image emits them.
const (
	BlockStates  = "states"
	BlockEdges   = "edges" // linked layouts only
	BlockOutput  = "output"
	BlockOffsets = "offsets" // WordExt >= WordExtLength
	BlockStrpool = "strpool" // WordExt == WordExtContent
)

// Image returns the automaton as a list of blocks: the trie storage
// (states, plus edges for linked layouts), the output table, and the word
// tables selected by WordExt. Block data aliases the automaton.
//
// Blocks hold the in-memory representation, so images are portable only
// between hosts of the same byte order.
func (a *Automaton) Image() *persist.Image {
	var blocks []persist.Block
	switch t := a.m.(type) {
	case *trie.Linked[trie.State16, *trie.State16]:
		blocks = linkedBlocks(t)
	case *trie.Linked[trie.State12, *trie.State12]:
		blocks = linkedBlocks(t)
	case *trie.Linked[trie.State8, *trie.State8]:
		blocks = linkedBlocks(t)
	case *trie.DoubleArray:
		blocks = []persist.Block{{Name: BlockStates, Data: conv.Bytes(t.States())}}
	}
	blocks = append(blocks, persist.Block{Name: BlockOutput, Data: conv.Bytes(a.output)})
	if a.wordExt >= WordExtLength {
		blocks = append(blocks, persist.Block{Name: BlockOffsets, Data: conv.Bytes(a.offsets)})
	}
	if a.wordExt == WordExtContent {
		blocks = append(blocks, persist.Block{Name: BlockStrpool, Data: a.strpool})
	}
	return persist.NewImage(persist.Header{
		Layout:    uint8(a.layout),
		WordExt:   uint8(a.wordExt),
		NumWords:  uint64(a.numWords),
		NumStates: uint64(a.NumStates()),
	}, blocks...)
}

func linkedBlocks[S any, P trie.NodePtr[S]](t *trie.Linked[S, P]) []persist.Block {
	return []persist.Block{
		{Name: BlockStates, Data: conv.Bytes(t.States())},
		{Name: BlockEdges, Data: conv.Bytes(t.Edges())},
	}
}

// WriteTo writes the automaton image to w.
func (a *Automaton) WriteTo(w io.Writer) (int64, error) {
	return persist.Write(w, a.Image())
}

// FromImage attaches an automaton to the blocks of img without copying.
// The automaton takes over img: closing the automaton closes img.
//
// The image is validated so that a corrupt image cannot make a scan index
// out of range.
func FromImage(img *persist.Image) (*Automaton, error) {
	h := img.Header
	if Layout(h.Layout) > LayoutDoubleArray {
		return nil, invalidImage("unknown layout %d", h.Layout)
	}
	if WordExt(h.WordExt) > WordExtContent {
		return nil, invalidImage("unknown word extension %d", h.WordExt)
	}
	if h.NumWords > uint64(^uint32(0)) {
		return nil, invalidImage("%d words", h.NumWords)
	}
	a := &Automaton{
		layout:   Layout(h.Layout),
		wordExt:  WordExt(h.WordExt),
		numWords: conv.Uint64ToInt(h.NumWords),
		img:      img,
	}

	var err error
	switch a.layout {
	case Layout16:
		a.m, err = attachLinked[trie.State16](img)
	case Layout12:
		a.m, err = attachLinked[trie.State12](img)
	case Layout8:
		a.m, err = attachLinked[trie.State8](img)
	case LayoutDoubleArray:
		a.da, err = attachDoubleArray(img)
		a.m = a.da
	}
	if err != nil {
		return nil, err
	}
	if uint64(a.m.NumStates()) != h.NumStates {
		return nil, invalidImage("header has %d states, trie has %d", h.NumStates, a.m.NumStates())
	}

	if a.output, err = viewBlock[uint32](img, BlockOutput); err != nil {
		return nil, err
	}
	if err := a.checkOutput(); err != nil {
		return nil, err
	}
	if err := a.checkLinks(); err != nil {
		return nil, err
	}
	if a.wordExt >= WordExtLength {
		if a.offsets, err = viewBlock[uint32](img, BlockOffsets); err != nil {
			return nil, err
		}
		if err := a.checkOffsets(); err != nil {
			return nil, err
		}
	}
	if a.wordExt == WordExtContent {
		if a.strpool, err = viewBlock[byte](img, BlockStrpool); err != nil {
			return nil, err
		}
		if a.strpool == nil {
			a.strpool = []byte{}
		}
		if uint64(len(a.strpool)) != uint64(a.offsets[a.numWords]) {
			return nil, invalidImage("strpool has %d bytes, offsets end at %d", len(a.strpool), a.offsets[a.numWords])
		}
	}
	a.init()
	return a, nil
}

// Open loads the automaton image at path. Plain images are memory-mapped
// and the automaton must be closed to release the mapping; zstd-compressed
// images are decoded into owned memory.
func Open(path string) (*Automaton, error) {
	img, err := persist.Load(path)
	if err != nil {
		return nil, err
	}
	a, err := FromImage(img)
	if err != nil {
		_ = img.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// Read decodes an automaton image from r into owned memory.
func Read(r io.Reader) (*Automaton, error) {
	img, err := persist.Read(r)
	if err != nil {
		return nil, err
	}
	return FromImage(img)
}

func viewBlock[T any](img *persist.Image, name string) ([]T, error) {
	data, ok := img.Block(name)
	if !ok {
		return nil, invalidImage("missing block %q", name)
	}
	v, err := conv.View[T](data)
	if err != nil {
		return nil, invalidImage("block %q: %v", name, err)
	}
	return v, nil
}

func attachLinked[S any, P trie.NodePtr[S]](img *persist.Image) (machine, error) {
	states, err := viewBlock[S](img, BlockStates)
	if err != nil {
		return nil, err
	}
	edges, err := viewBlock[trie.Edge](img, BlockEdges)
	if err != nil {
		return nil, err
	}
	t, err := trie.LinkedFromSlices[S, P](states, edges)
	if err != nil {
		return nil, invalidImage("%v", err)
	}
	n := uint32(t.NumStates())
	for s := range n {
		if e := P(&states[s]).FirstEdge(); e != trie.NilEdge && e >= uint32(len(edges)) {
			return nil, invalidImage("state %d: edge %d out of range", s, e)
		}
		if f := t.Fail(trie.StateID(s)); uint32(f) >= n {
			return nil, invalidImage("state %d: fail %d out of range", s, f)
		}
	}
	for i := range edges {
		e := &edges[i]
		if uint32(e.Target) >= n || e.Target == trie.InitialState {
			return nil, invalidImage("edge %d: target %d out of range", i, e.Target)
		}
		if next := e.NextEdge(); next != trie.NilEdge && next >= uint32(len(edges)) {
			return nil, invalidImage("edge %d: next %d out of range", i, next)
		}
	}
	return t, nil
}

func attachDoubleArray(img *persist.Image) (*trie.DoubleArray, error) {
	states, err := viewBlock[trie.DAState](img, BlockStates)
	if err != nil {
		return nil, err
	}
	if len(states) < 2 {
		return nil, invalidImage("double array needs at least 2 slots, got %d", len(states))
	}
	da := trie.DoubleArrayFromSlice(states)
	n := uint32(da.NumStates())
	for s := range n {
		if f := da.Fail(trie.StateID(s)); uint32(f) >= n {
			return nil, invalidImage("slot %d: fail %d out of range", s, f)
		}
		if p := da.Parent(trie.StateID(s)); p != trie.NilState && uint32(p) >= n {
			return nil, invalidImage("slot %d: parent %d out of range", s, p)
		}
	}
	return da, nil
}

// checkOutput verifies that output ranges are ordered, end at the guard and
// hold valid word ids.
func (a *Automaton) checkOutput() error {
	n := a.m.NumStates()
	prev := uint32(0)
	for s := 0; s <= n; s++ {
		off := a.m.Output(trie.StateID(s))
		if off < prev {
			return invalidImage("state %d: output offset %d before %d", s, off, prev)
		}
		prev = off
	}
	if uint64(prev) != uint64(len(a.output)) {
		return invalidImage("output guard %d, table has %d entries", prev, len(a.output))
	}
	for i, w := range a.output {
		if uint64(w) >= uint64(a.numWords) {
			return invalidImage("output entry %d: word %d out of range", i, w)
		}
	}
	return nil
}

// checkLinks walks the trie from the initial state. Every reachable state
// must have one parent and fail to a strictly shallower reachable state, or
// the failure loop of a scan would not terminate. Terminal states must own
// at least one output entry.
func (a *Automaton) checkLinks() error {
	const unseen = ^uint32(0)
	n := a.m.NumStates()
	if f := a.m.Fail(trie.InitialState); f != trie.InitialState {
		return invalidImage("initial state fails to %d", f)
	}
	depth := make([]uint32, n)
	for i := range depth {
		depth[i] = unseen
	}
	depth[trie.InitialState] = 0
	queue := make([]trie.StateID, 1, n)
	var err error
	for head := 0; head < len(queue) && err == nil; head++ {
		s := queue[head]
		a.m.ForEachMove(s, func(child trie.StateID, c byte) {
			switch {
			case err != nil:
			case int(child) >= n:
				err = invalidImage("state %d: move on %#x to %d out of range", s, c, child)
			case depth[child] != unseen:
				err = invalidImage("state %d: reached twice", child)
			default:
				depth[child] = depth[s] + 1
				queue = append(queue, child)
			}
		})
	}
	if err != nil {
		return err
	}
	for _, s := range queue[1:] {
		if f := a.m.Fail(s); depth[f] == unseen || depth[f] >= depth[s] {
			return invalidImage("state %d at depth %d fails to %d", s, depth[s], f)
		}
	}
	for _, s := range queue {
		if a.m.IsTerm(s) && a.m.Output(s) >= a.m.Output(s+1) {
			return invalidImage("state %d: terminal with empty output", s)
		}
	}
	return nil
}

func (a *Automaton) checkOffsets() error {
	if len(a.offsets) != a.numWords+1 {
		return invalidImage("offsets has %d entries, want %d", len(a.offsets), a.numWords+1)
	}
	for i := 1; i < len(a.offsets); i++ {
		if a.offsets[i] < a.offsets[i-1] {
			return invalidImage("offsets decrease at %d", i)
		}
	}
	return nil
}

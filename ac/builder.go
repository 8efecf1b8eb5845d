package ac

import (
	"log/slog"
	"math"
	"time"

	"github.com/coregx/coreac/internal/conv"
	"github.com/coregx/coreac/trie"
)

// noWord marks a state where no word ends.
const noWord = math.MaxUint32

// Builder accumulates words into a trie and compiles them into an Automaton.
//
// A Builder is not safe for concurrent use. Words can only be added before
// the single call to Compile.
//
// Example:
//
//	b, _ := ac.NewBuilder(ac.DefaultConfig())
//	for _, w := range []string{"he", "she", "his", "hers"} {
//	    b.AddString(w)
//	}
//	a, err := b.Compile()
type Builder struct {
	cfg    Config
	log    *slog.Logger
	t      linkedTrie
	limits trie.Limits // limits of the final layout

	// wordOf holds the provisional word id of every state, noWord for
	// states where no word ends. It is dropped by Compile.
	wordOf []uint32

	offsets []uint32 // prefix sums of word lengths, WordExt >= WordExtLength
	strpool []byte   // concatenated words, WordExt == WordExtContent

	numWords int
	compiled bool
}

// NewBuilder returns an empty builder for cfg.
func NewBuilder(cfg Config) (*Builder, error) {
	return NewBuilderWithCapacity(cfg, 64)
}

// NewBuilderWithCapacity returns an empty builder with room for about
// capacity states before reallocation.
func NewBuilderWithCapacity(cfg Config, capacity int) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if capacity < 1 {
		capacity = 1
	}
	t := newLinked(cfg.Layout, capacity)
	limits := t.Limits()
	if cfg.Layout == LayoutDoubleArray {
		limits = trie.DoubleArrayLimits()
	}
	b := &Builder{
		cfg:    cfg,
		log:    cfg.logger(),
		t:      t,
		limits: limits,
		wordOf: make([]uint32, 1, capacity),
	}
	b.wordOf[0] = noWord
	if cfg.WordExt >= WordExtLength {
		b.offsets = []uint32{0}
	}
	return b, nil
}

// NumWords returns the number of distinct words added so far.
func (b *Builder) NumWords() int { return b.numWords }

// NumStates returns the number of trie states, the initial state included.
func (b *Builder) NumStates() int { return b.t.NumStates() }

// AddString is AddWord for a string.
func (b *Builder) AddString(word string) (uint32, bool, error) {
	return b.AddWord([]byte(word))
}

// AddWord inserts word and returns its id. Ids are dense and assigned in
// insertion order. When word was already added, AddWord returns its
// existing id and inserted is false.
//
// A failed AddWord leaves the builder unchanged.
func (b *Builder) AddWord(word []byte) (id uint32, inserted bool, err error) {
	if b.compiled {
		return 0, false, ErrCompiled
	}
	if len(word) == 0 {
		return 0, false, ErrEmptyPattern
	}

	curr := trie.InitialState
	i := 0
	for ; i < len(word); i++ {
		next := b.t.StateMove(curr, word[i])
		if next == trie.NilState {
			break
		}
		curr = next
	}
	if i == len(word) && b.t.IsTerm(curr) {
		return b.wordOf[curr], false, nil
	}

	if uint64(b.numWords) >= uint64(b.limits.MaxOutput) {
		return 0, false, &CapacityError{
			Layout: b.limits.Name,
			Limit:  "MaxWords",
			Max:    uint64(b.limits.MaxOutput),
			Got:    uint64(b.numWords) + 1,
		}
	}
	lastState := uint64(b.t.NumStates()) + uint64(len(word)-i) - 1
	if maxState := uint64(b.t.Limits().MaxState); lastState > maxState {
		return 0, false, &CapacityError{
			Layout: b.t.Limits().Name,
			Limit:  "MaxState",
			Max:    maxState,
			Got:    lastState,
		}
	}
	if b.offsets != nil {
		if total := uint64(b.offsets[b.numWords]) + uint64(len(word)); total > math.MaxUint32 {
			return 0, false, &CapacityError{
				Layout: b.limits.Name,
				Limit:  "MaxWordBytes",
				Max:    math.MaxUint32,
				Got:    total,
			}
		}
	}

	for ; i < len(word); i++ {
		next, err := b.t.NewState()
		if err != nil {
			return 0, false, err
		}
		b.t.AddMove(curr, next, word[i])
		b.wordOf = append(b.wordOf, noWord)
		curr = next
	}

	id = conv.IntToUint32(b.numWords)
	b.t.SetTerm(curr)
	b.wordOf[curr] = id
	b.numWords++
	if b.offsets != nil {
		b.offsets = append(b.offsets, conv.Uint64ToUint32(uint64(b.offsets[id])+uint64(len(word))))
		if b.cfg.WordExt == WordExtContent {
			b.strpool = append(b.strpool, word...)
		}
	}
	return id, true, nil
}

// Compile computes failure links and the output table and returns the
// automaton. It runs two breadth-first passes over the trie:
//
//  1. Counting: a provisional failure link is computed for every state and
//     each state's output count becomes its own word (0 or 1) plus the count
//     of its failure target. Level order guarantees the target is final.
//  2. Assignment: prefix sums of the counts give each state's output start.
//     Every terminal state's first slot gets its own word, then the real
//     failure link is stored and the failure target's resolved range is
//     copied behind it through a per-state fill cursor.
//
// Compile can be called once; the builder is spent afterwards, even when
// Compile fails.
func (b *Builder) Compile() (*Automaton, error) {
	if b.compiled {
		return nil, ErrCompiled
	}
	b.compiled = true
	start := time.Now()

	t := b.t
	n := t.NumStates()

	// Pass 1: provisional failure links and output counts.
	fail := make([]trie.StateID, n)
	count := make([]uint32, n)
	for s, w := range b.wordOf {
		if w != noWord {
			count[s] = 1
		}
	}
	trie.BFS(t, trie.InitialState, func(parent, child trie.StateID, c byte) {
		f := failTarget(t, func(s trie.StateID) trie.StateID { return fail[s] }, parent, c)
		fail[child] = f
		count[child] += count[f]
	})

	var total uint64
	for _, c := range count {
		total += uint64(c)
	}
	if total > uint64(b.limits.MaxOutput) {
		return nil, &CapacityError{
			Layout: b.limits.Name,
			Limit:  "MaxOutput",
			Max:    uint64(b.limits.MaxOutput),
			Got:    total,
		}
	}

	// Pass 2: output starts, real failure links, output fill.
	t.AppendGuard()
	var off uint32
	for s := range count {
		t.SetOutput(trie.StateID(s), off)
		off += count[s]
		count[s] = off - count[s] // fill cursor
	}
	t.SetOutput(trie.StateID(n), off)
	output := make([]uint32, conv.Uint64ToInt(total))
	for s, w := range b.wordOf {
		if w != noWord {
			output[count[s]] = w
			count[s]++
		}
	}
	b.wordOf = nil

	t.SetFail(trie.InitialState, trie.InitialState)
	trie.BFS(t, trie.InitialState, func(parent, child trie.StateID, c byte) {
		f := failTarget(t, t.Fail, parent, c)
		t.SetFail(child, f)
		beg, end := t.Output(f), t.Output(f+1)
		count[child] += uint32(copy(output[count[child]:], output[beg:end]))
	})
	t.Shrink()

	a := &Automaton{
		layout:   b.cfg.Layout,
		wordExt:  b.cfg.WordExt,
		m:        t,
		output:   output,
		offsets:  b.offsets,
		strpool:  b.strpool,
		numWords: b.numWords,
	}
	if b.cfg.Layout == LayoutDoubleArray {
		da, packed, err := relayout(t, output)
		if err != nil {
			return nil, err
		}
		a.m, a.da, a.output = da, da, packed
	}
	a.init()

	if b.cfg.Lexicographic {
		a.AssignLexicographicIDs()
	}
	if b.cfg.SortByWordLen {
		a.SortOutputsByWordLen()
	}

	b.log.Debug("aho-corasick compiled",
		slog.String("layout", a.layout.String()),
		slog.Int("words", a.numWords),
		slog.Int("states", a.NumStates()),
		slog.Int("transitions", a.NumTransitions()),
		slog.Int("output", len(a.output)),
		slog.Int("mem_size", a.MemSize()),
		slog.Duration("elapsed", time.Since(start)),
	)
	return a, nil
}

// failTarget returns the failure link of the child of parent on c: the
// state for the longest proper suffix of the child's label that is also a
// trie path. failOf must already be final for parent and its failure chain.
func failTarget(m machine, failOf func(trie.StateID) trie.StateID, parent trie.StateID, c byte) trie.StateID {
	if parent == trie.InitialState {
		return trie.InitialState
	}
	f := failOf(parent)
	for {
		if next := m.StateMove(f, c); next != trie.NilState {
			return next
		}
		if f == trie.InitialState {
			return trie.InitialState
		}
		f = failOf(f)
	}
}

// relayout copies a compiled linked trie into a double array. Failure links
// are mapped through the slot table, and output ranges are repacked in slot
// order so that they stay contiguous with free slots holding empty ranges.
func relayout(src linkedTrie, output []uint32) (*trie.DoubleArray, []uint32, error) {
	da, slots, err := trie.BuildDoubleArray(src)
	if err != nil {
		return nil, nil, err
	}
	n := da.NumStates()
	srcOf := make([]trie.StateID, n)
	for i := range srcOf {
		srcOf[i] = trie.NilState
	}
	for s, slot := range slots {
		srcOf[slot] = trie.StateID(s)
	}

	packed := make([]uint32, 0, len(output))
	for slot := 0; slot < n; slot++ {
		x := trie.StateID(slot)
		da.SetOutput(x, conv.IntToUint32(len(packed)))
		s := srcOf[slot]
		if s == trie.NilState {
			continue
		}
		da.SetFail(x, slots[src.Fail(s)])
		packed = append(packed, output[src.Output(s):src.Output(s+1)]...)
	}
	da.SetOutput(trie.StateID(n), conv.IntToUint32(len(packed)))
	return da, packed, nil
}

// Package coreac provides multi-pattern string matching on an Aho-Corasick
// automaton.
//
// A Matcher finds every occurrence of every pattern of a dictionary in one
// linear pass over the input, however many patterns there are. Matching is
// on raw bytes.
//
// Basic usage:
//
//	m, err := coreac.Compile([]string{"he", "she", "his", "hers"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, match := range m.FindAll([]byte("ahishers"), -1) {
//	    fmt.Println(match.Start, match.End, match.Pattern)
//	}
//
// Advanced usage:
//
//	// Double-array layout, patterns numbered in lexicographic order
//	config := coreac.DefaultConfig()
//	config.Layout = ac.LayoutDoubleArray
//	config.Lexicographic = true
//	m, err := coreac.CompileWithConfig(patterns, config)
//
// The ac package exposes the automaton itself: the builder, the scan
// callbacks (forward, reverse and streaming), word restoration and the
// persisted image format.
package coreac

import (
	"fmt"

	"github.com/coregx/coreac/ac"
	"github.com/coregx/coreac/trie"
)

// Match is one occurrence of a pattern: b[Start:End] equals the pattern.
type Match struct {
	Start   int
	End     int
	Pattern int // id of the matched pattern
}

// Matcher is a compiled dictionary of patterns.
//
// A Matcher is safe to use concurrently from multiple goroutines.
//
// Pattern ids are assigned in order of first insertion, duplicates sharing
// the id of their first occurrence. With Config.Lexicographic they are the
// lexicographic ranks of the distinct patterns instead.
type Matcher struct {
	a *ac.Automaton
}

// Compile builds a Matcher for patterns with DefaultConfig.
//
// Returns an error if a pattern is empty.
//
// Example:
//
//	m, err := coreac.Compile([]string{"error", "warning", "fatal"})
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(patterns []string) (*Matcher, error) {
	return CompileWithConfig(patterns, DefaultConfig())
}

// MustCompile is Compile that panics on error.
//
// This is useful for dictionaries known to be valid at compile time.
func MustCompile(patterns []string) *Matcher {
	m, err := Compile(patterns)
	if err != nil {
		panic("coreac: Compile: " + err.Error())
	}
	return m
}

// CompileWithConfig builds a Matcher with a custom configuration.
//
// Matches carry start offsets, so a WordExt below ac.WordExtLength is
// raised to ac.WordExtLength.
//
// Example:
//
//	config := coreac.DefaultConfig()
//	config.Layout = ac.Layout8 // smallest states, limited capacity
//	m, err := coreac.CompileWithConfig(patterns, config)
func CompileWithConfig(patterns []string, config ac.Config) (*Matcher, error) {
	if config.WordExt < ac.WordExtLength {
		config.WordExt = ac.WordExtLength
	}
	b, err := ac.NewBuilderWithCapacity(config, len(patterns)+1)
	if err != nil {
		return nil, err
	}
	for i, p := range patterns {
		if _, _, err := b.AddString(p); err != nil {
			return nil, fmt.Errorf("pattern %d: %w", i, err)
		}
	}
	a, err := b.Compile()
	if err != nil {
		return nil, err
	}
	return &Matcher{a: a}, nil
}

// DefaultConfig returns the default configuration for compilation.
//
// Users can customize this and pass it to CompileWithConfig.
func DefaultConfig() ac.Config {
	return ac.DefaultConfig()
}

// Open loads a Matcher from an automaton image written by ac.Automaton
// WriteTo or by `acgrep build`. The image must carry word lengths. Plain
// images are memory-mapped; call Close to release the mapping.
func Open(path string) (*Matcher, error) {
	a, err := ac.Open(path)
	if err != nil {
		return nil, err
	}
	if a.WordExt() < ac.WordExtLength {
		_ = a.Close()
		return nil, fmt.Errorf("%s: %w", path, ac.ErrNoWordLengths)
	}
	return &Matcher{a: a}, nil
}

// Close releases the memory mapping of a Matcher returned by Open. It is a
// no-op for compiled matchers.
func (m *Matcher) Close() error {
	return m.a.Close()
}

// Automaton returns the underlying automaton.
func (m *Matcher) Automaton() *ac.Automaton {
	return m.a
}

// NumPatterns returns the number of distinct patterns.
func (m *Matcher) NumPatterns() int {
	return m.a.NumWords()
}

// IsMatch reports whether b contains any pattern.
//
// It stops at the first occurrence, so it is the cheapest query.
func (m *Matcher) IsMatch(b []byte) bool {
	return m.a.IsMatch(b)
}

// IsMatchString is IsMatch for a string.
func (m *Matcher) IsMatchString(s string) bool {
	return m.a.IsMatch([]byte(s))
}

// Find returns the occurrence that ends first in b. When several patterns
// end there, the longest one is returned.
func (m *Matcher) Find(b []byte) (Match, bool) {
	end, s, ok := m.a.FirstHit(b)
	if !ok {
		return Match{}, false
	}
	return m.match(end, longest(m.a, m.a.Words(s))), true
}

// FindString is Find for a string.
func (m *Matcher) FindString(s string) (Match, bool) {
	return m.Find([]byte(s))
}

// FindAll returns successive occurrences of patterns in b, overlapping ones
// included, ordered by end offset and then longest pattern first.
// If n >= 0, it returns at most n matches.
//
// Example:
//
//	m := coreac.MustCompile([]string{"he", "she"})
//	m.FindAll([]byte("ushers"), -1) // [{1 4 1} {2 4 0}]
func (m *Matcher) FindAll(b []byte, n int) []Match {
	if n == 0 {
		return nil
	}
	var matches []Match
	m.scan(b, n, func(end int, word uint32) {
		matches = append(matches, m.match(end, word))
	})
	return matches
}

// FindAllString is FindAll for a string.
func (m *Matcher) FindAllString(s string, n int) []Match {
	return m.FindAll([]byte(s), n)
}

// Count returns the number of occurrences of patterns in b, counting at
// most n when n >= 0.
func (m *Matcher) Count(b []byte, n int) int {
	if n == 0 {
		return 0
	}
	count := 0
	m.scan(b, n, func(int, uint32) { count++ })
	return count
}

// CountString is Count for a string.
func (m *Matcher) CountString(s string, n int) int {
	return m.Count([]byte(s), n)
}

// scan calls fn for every occurrence in b, stopping after n when n >= 0.
// A bounded scan jumps to the first hit and then steps byte by byte, so it
// returns as soon as the n-th occurrence is reported.
func (m *Matcher) scan(b []byte, n int, fn func(end int, word uint32)) {
	if n < 0 {
		m.a.Scan(b, func(end int, words []uint32, _ trie.StateID) {
			for _, w := range words {
				fn(end, w)
			}
		})
		return
	}
	end, s, ok := m.a.FirstHit(b)
	if !ok {
		return
	}
	seen := 0
	for {
		for _, w := range m.a.Words(s) {
			fn(end, w)
			if seen++; seen == n {
				return
			}
		}
		if end == len(b) {
			return
		}
		s = m.a.NextState(s, b[end])
		end++
	}
}

// DistinctPatterns returns the id of every pattern occurring in b, each
// once, in order of first occurrence.
func (m *Matcher) DistinctPatterns(b []byte) []int {
	ids := m.a.DistinctWords(b, nil)
	patterns := make([]int, len(ids))
	for i, id := range ids {
		patterns[i] = int(id)
	}
	return patterns
}

func (m *Matcher) match(end int, word uint32) Match {
	n, _ := m.a.WordLen(word)
	return Match{Start: end - n, End: end, Pattern: int(word)}
}

// longest returns the longest word of a non-empty output range. Ranges are
// longest first unless a custom order was applied, so this is usually the
// first element.
func longest(a *ac.Automaton, words []uint32) uint32 {
	best, bestLen := words[0], -1
	for _, w := range words {
		if n, _ := a.WordLen(w); n > bestLen {
			best, bestLen = w, n
		}
	}
	return best
}

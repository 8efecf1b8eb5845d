package ac

import (
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/coregx/coreac/trie"
)

var allLayouts = []Layout{Layout16, Layout12, Layout8, LayoutDoubleArray}

// build compiles words with cfg and fails the test on any error.
func build(t testing.TB, cfg Config, words ...string) *Automaton {
	t.Helper()
	b, err := NewBuilder(cfg)
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	for _, w := range words {
		if _, _, err := b.AddString(w); err != nil {
			t.Fatalf("AddString(%q): %v", w, err)
		}
	}
	a, err := b.Compile()
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return a
}

func contentConfig(l Layout) Config {
	cfg := DefaultConfig()
	cfg.Layout = l
	cfg.WordExt = WordExtContent
	return cfg
}

// textHit is a hit with the word spelled out, independent of id numbering.
type textHit struct {
	Word string
	End  int
}

func sortTextHits(h []textHit) {
	sort.Slice(h, func(i, j int) bool {
		if h[i].End != h[j].End {
			return h[i].End < h[j].End
		}
		return h[i].Word < h[j].Word
	})
}

// scanText runs Scan and spells every hit through Word.
func scanText(t testing.TB, a *Automaton, text string) []textHit {
	t.Helper()
	var hits []textHit
	a.Scan([]byte(text), func(end int, words []uint32, _ trie.StateID) {
		for _, w := range words {
			word, ok := a.Word(w)
			if !ok {
				t.Fatalf("Word(%d) missing", w)
			}
			hits = append(hits, textHit{Word: string(word), End: end})
		}
	})
	sortTextHits(hits)
	return hits
}

// bruteForce finds every occurrence of every distinct word by direct
// comparison at every position.
func bruteForce(words []string, text string) []textHit {
	seen := make(map[string]bool)
	var hits []textHit
	for _, w := range words {
		if seen[w] {
			continue
		}
		seen[w] = true
		for end := len(w); end <= len(text); end++ {
			if text[end-len(w):end] == w {
				hits = append(hits, textHit{Word: w, End: end})
			}
		}
	}
	sortTextHits(hits)
	return hits
}

func equalHits(a, b []textHit) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// labels maps every reachable state to the bytes spelled from the initial
// state.
func labels(a *Automaton) map[trie.StateID]string {
	out := map[trie.StateID]string{trie.InitialState: ""}
	trie.BFS(a.m, trie.InitialState, func(parent, child trie.StateID, c byte) {
		out[child] = out[parent] + string(c)
	})
	return out
}

func randomWords(rng *rand.Rand, n, maxLen int, alphabet string) []string {
	words := make([]string, n)
	for i := range words {
		var sb strings.Builder
		l := 1 + rng.Intn(maxLen)
		for j := 0; j < l; j++ {
			sb.WriteByte(alphabet[rng.Intn(len(alphabet))])
		}
		words[i] = sb.String()
	}
	return words
}

func reverseString(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

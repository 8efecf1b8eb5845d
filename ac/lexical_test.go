package ac

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/coregx/coreac/trie"
)

func TestLexicographicIDs(t *testing.T) {
	for _, l := range allLayouts {
		t.Run(l.String(), func(t *testing.T) {
			cfg := contentConfig(l)
			cfg.Lexicographic = true
			a := build(t, cfg, "she", "he", "hers", "his", "a")

			want := []string{"a", "he", "hers", "his", "she"}
			for id, w := range want {
				got, ok := a.Word(uint32(id))
				if !ok || string(got) != w {
					t.Errorf("Word(%d) = %q, want %q", id, got, w)
				}
				if n, _ := a.WordLen(uint32(id)); n != len(w) {
					t.Errorf("WordLen(%d) = %d, want %d", id, n, len(w))
				}
				if found, ok := a.FindString(w); !ok || found != uint32(id) {
					t.Errorf("FindString(%q) = %d, %v, want %d", w, found, ok, id)
				}
			}

			hits := a.FindAll([]byte("ushers"))
			wantHits := []Hit{{4, 4}, {1, 4}, {2, 6}}
			if !slices.Equal(hits, wantHits) {
				t.Errorf("FindAll = %v, want %v", hits, wantHits)
			}
		})
	}
}

// ForEachWord ranks agree with the renumbered ids.
func TestLexicographicMatchesForEachWord(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	words := randomWords(rng, 200, 6, "abcxyz")
	cfg := contentConfig(Layout12)
	cfg.Lexicographic = true
	a := build(t, cfg, words...)

	var prev []byte
	n := a.ForEachWord(func(nth int, word []byte, s trie.StateID) {
		if prev != nil && string(prev) >= string(word) {
			t.Fatalf("ForEachWord out of order: %q then %q", prev, word)
		}
		prev = append(prev[:0], word...)
		if id := a.Words(s)[0]; id != uint32(nth) {
			t.Fatalf("word %q has id %d, rank %d", word, id, nth)
		}
		if got, _ := a.Word(uint32(nth)); string(got) != string(word) {
			t.Fatalf("Word(%d) = %q, want %q", nth, got, word)
		}
	})
	if n != a.NumWords() {
		t.Errorf("ForEachWord visited %d words, want %d", n, a.NumWords())
	}
}

func TestSortOutputsByWordLen(t *testing.T) {
	// Without word tables the lengths come from trie depth.
	for _, ext := range []WordExt{WordExtNone, WordExtLength} {
		for _, l := range allLayouts {
			cfg := Config{Layout: l, WordExt: ext, SortByWordLen: true}
			// ids: b=0 ab=1 cab=2 dcab=3
			a := build(t, cfg, "b", "ab", "cab", "dcab")
			var got []uint32
			a.ScanString("dcab", func(end int, words []uint32, _ trie.StateID) {
				if end == 4 {
					got = append(got, words...)
				}
			})
			want := []uint32{3, 2, 1, 0}
			if !slices.Equal(got, want) {
				t.Errorf("%s/%s: words at 4 = %v, want %v", l, ext, got, want)
			}
		}
	}
}

// Reordering output ranges never changes which words a scan reports.
func TestSortOutputsKeepsHits(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	words := randomWords(rng, 60, 6, "ab")
	text := randomWords(rng, 1, 200, "ab")[0]
	for _, l := range allLayouts {
		plain := build(t, contentConfig(l), words...)
		want := scanText(t, plain, text)

		plain.SortOutputsByWordLen()
		if got := scanText(t, plain, text); !equalHits(got, want) {
			t.Fatalf("%s: hits changed after SortOutputsByWordLen", l)
		}
		plain.AssignLexicographicIDs()
		if got := scanText(t, plain, text); !equalHits(got, want) {
			t.Fatalf("%s: hits changed after AssignLexicographicIDs", l)
		}
	}
}

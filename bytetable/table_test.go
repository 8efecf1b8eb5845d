package bytetable

import (
	"bytes"
	"math/rand"
	"testing"
)

func tableOf(s string) *[256]bool {
	var t [256]bool
	for i := 0; i < len(s); i++ {
		t[s[i]] = true
	}
	return &t
}

func TestMemchrInTable(t *testing.T) {
	vowels := tableOf("aeiou")
	tests := []struct {
		name     string
		haystack string
		first    int
		last     int
	}{
		{"empty", "", -1, -1},
		{"none", "xyz bcd", -1, -1},
		{"first byte", "apple", 0, 4},
		{"single", "xxxxxxxxxxxxo", 12, 12},
		{"unrolled tail", "bcdfgha", 6, 6},
		{"two", "bbabbbbbbbeb", 2, 10},
		{"all", "aaaa", 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MemchrInTable([]byte(tt.haystack), vowels); got != tt.first {
				t.Errorf("MemchrInTable(%q) = %d, want %d", tt.haystack, got, tt.first)
			}
			if got := MemrchrInTable([]byte(tt.haystack), vowels); got != tt.last {
				t.Errorf("MemrchrInTable(%q) = %d, want %d", tt.haystack, got, tt.last)
			}
		})
	}
	if MemchrInTable([]byte("abc"), nil) != -1 || MemrchrInTable([]byte("abc"), nil) != -1 {
		t.Error("nil table must never match")
	}
}

func TestMemchrInTableRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	table := tableOf("\x00\x80\xff")
	for n := 0; n < 200; n++ {
		buf := make([]byte, rng.Intn(64))
		for i := range buf {
			buf[i] = byte(1 + rng.Intn(126))
		}
		if len(buf) > 0 && rng.Intn(2) == 0 {
			buf[rng.Intn(len(buf))] = 0x80
		}
		want := bytes.IndexByte(buf, 0x80)
		if got := MemchrInTable(buf, table); got != want {
			t.Fatalf("MemchrInTable(%x) = %d, want %d", buf, got, want)
		}
		want = bytes.LastIndexByte(buf, 0x80)
		if got := MemrchrInTable(buf, table); got != want {
			t.Fatalf("MemrchrInTable(%x) = %d, want %d", buf, got, want)
		}
	}
}

func TestCountInTable(t *testing.T) {
	if got := CountInTable(tableOf("abca")); got != 3 {
		t.Errorf("CountInTable = %d, want 3", got)
	}
}

func BenchmarkMemchrInTable(b *testing.B) {
	haystack := bytes.Repeat([]byte("the quick brown fox "), 1024)
	haystack = append(haystack, 'Z')
	table := tableOf("QZ")
	b.SetBytes(int64(len(haystack)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		MemchrInTable(haystack, table)
	}
}

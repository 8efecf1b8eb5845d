// Package bytetable provides byte-table search used to skip input that cannot
// start a match.
//
// The scanners build a 256-entry table of the bytes with a transition out of
// the initial state. While the automaton sits at the initial state every
// other byte is a no-op, so the scan jumps straight to the next byte the
// table accepts.
package bytetable

// MemchrInTable finds the first byte where table[byte] is true.
// Returns position or -1 if not found.
func MemchrInTable(haystack []byte, table *[256]bool) int {
	if len(haystack) == 0 || table == nil {
		return -1
	}
	i := 0
	for ; i+4 <= len(haystack); i += 4 {
		if table[haystack[i]] {
			return i
		}
		if table[haystack[i+1]] {
			return i + 1
		}
		if table[haystack[i+2]] {
			return i + 2
		}
		if table[haystack[i+3]] {
			return i + 3
		}
	}
	for ; i < len(haystack); i++ {
		if table[haystack[i]] {
			return i
		}
	}
	return -1
}

// MemrchrInTable finds the last byte where table[byte] is true.
// Returns position or -1 if not found.
func MemrchrInTable(haystack []byte, table *[256]bool) int {
	if len(haystack) == 0 || table == nil {
		return -1
	}
	i := len(haystack) - 1
	for ; i >= 3; i -= 4 {
		if table[haystack[i]] {
			return i
		}
		if table[haystack[i-1]] {
			return i - 1
		}
		if table[haystack[i-2]] {
			return i - 2
		}
		if table[haystack[i-3]] {
			return i - 3
		}
	}
	for ; i >= 0; i-- {
		if table[haystack[i]] {
			return i
		}
	}
	return -1
}

// CountInTable returns the number of bytes b with table[b] set.
func CountInTable(table *[256]bool) int {
	n := 0
	for _, ok := range table {
		if ok {
			n++
		}
	}
	return n
}

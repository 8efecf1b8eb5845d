// Package conv provides checked integer conversions and typed views over raw
// byte blocks for the automaton and its on-disk images.
//
// The integer helpers panic on overflow: callers use them only after a
// capacity check has already proven the value fits, so an overflow here is
// a programming error.
package conv

import "math"

// IntToUint32 converts a word or state count to uint32.
// Panics if n < 0 or n > math.MaxUint32.
//
//go:inline
func IntToUint32(n int) uint32 {
	// uint comparison: on 32-bit platforms int cannot hold math.MaxUint32
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}

// Uint64ToUint32 narrows a size already checked against a layout limit.
// Panics if n > math.MaxUint32.
//
//go:inline
func Uint64ToUint32(n uint64) uint32 {
	if n > math.MaxUint32 {
		panic("integer overflow: uint64 value out of uint32 range")
	}
	return uint32(n)
}

// Uint64ToInt converts a persisted count to int.
// Panics if n does not fit in int.
//
//go:inline
func Uint64ToInt(n uint64) int {
	if n > math.MaxInt {
		panic("integer overflow: uint64 value out of int range")
	}
	return int(n)
}

// Package persist frames automaton images for storage.
//
// An image is a small header followed by a table of named blocks. Every
// block starts on a 64-byte boundary so that a memory-mapped file can be
// viewed as typed slices in place, and every block carries a CRC32 (IEEE)
// checksum that is verified on load.
//
//	+---------------------------+ 0
//	| file header (48 bytes)    |
//	+---------------------------+ 48
//	| block table (48 bytes/ea) |
//	+---------------------------+ aligned to 64
//	| block 0                   |
//	+---------------------------+ aligned to 64
//	| block 1 ...               |
//	+---------------------------+
//
// Images loaded with Open borrow the mapped file; their blocks stay valid
// until Close. Images loaded with Read or ReadCompressed own their memory.
package persist

import (
	"errors"
	"fmt"
)

const (
	// Version is the current image format version.
	Version = 1

	// Align is the alignment of every block offset.
	Align = 64

	// MaxBlockName is the longest block name the table can hold.
	MaxBlockName = 24

	headerSize = 48
	entrySize  = 48
)

// Magic identifies an automaton image.
var Magic = [8]byte{'C', 'O', 'R', 'E', 'A', 'C', 0, 1}

var (
	// ErrBadMagic is returned when the input does not start with Magic.
	ErrBadMagic = errors.New("persist: not an automaton image")

	// ErrVersion is returned for images written by a newer format.
	ErrVersion = errors.New("persist: unsupported image version")

	// ErrTruncated is returned when a block extends past the end of input.
	ErrTruncated = errors.New("persist: truncated image")

	// ErrChecksum is wrapped by every ChecksumError.
	ErrChecksum = errors.New("persist: checksum mismatch")
)

// ChecksumError reports a block (or the block table) whose CRC32 does not
// match the stored value.
type ChecksumError struct {
	Block    string
	Expected uint32
	Actual   uint32
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("persist: block %q checksum mismatch: expected 0x%08x, got 0x%08x",
		e.Block, e.Expected, e.Actual)
}

// Unwrap returns ErrChecksum.
func (e *ChecksumError) Unwrap() error { return ErrChecksum }

// fileHeader is the fixed-size prefix of every image.
type fileHeader struct {
	Magic     [8]byte
	Version   uint32
	NumBlocks uint32
	Layout    uint8
	WordExt   uint8
	_         [6]byte
	NumWords  uint64
	NumStates uint64
	TableCRC  uint32
	_         [4]byte
}

// blockEntry is one row of the block table.
type blockEntry struct {
	Name   [MaxBlockName]byte
	Offset uint64
	Length uint64
	CRC    uint32
	_      [4]byte
}

func alignUp(n int64) int64 {
	return (n + Align - 1) &^ (Align - 1)
}

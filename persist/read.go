package persist

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"os"

	"github.com/coregx/coreac/internal/conv"
)

// Read decodes an image from r into owned memory. Blocks are 8-byte aligned.
func Read(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parse(alignedCopy(data))
}

// ReadFile reads the image at path into owned memory.
func ReadFile(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Open maps the image at path read-only. The returned image borrows the
// mapping and must be closed. On platforms without mmap the file is read
// into owned memory instead.
func Open(path string) (*Image, error) {
	data, release, err := mapFile(path)
	if err != nil {
		return nil, err
	}
	img, err := parse(data)
	if err != nil {
		if release != nil {
			_ = release()
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	img.release = release
	return img, nil
}

// alignedCopy copies b into a buffer backed by uint64 words.
func alignedCopy(b []byte) []byte {
	words := make([]uint64, (len(b)+7)/8)
	out := conv.Bytes(words)
	if out == nil {
		return nil
	}
	out = out[:len(b)]
	copy(out, b)
	return out
}

// parse decodes the header and block table of data and verifies every
// checksum. Block data aliases data.
func parse(data []byte) (*Image, error) {
	if len(data) < headerSize {
		if len(data) >= len(Magic) && !bytes.Equal(data[:len(Magic)], Magic[:]) {
			return nil, ErrBadMagic
		}
		return nil, ErrTruncated
	}
	var hdr fileHeader
	if err := binary.Read(bytes.NewReader(data[:headerSize]), binary.LittleEndian, &hdr); err != nil {
		return nil, err
	}
	if hdr.Magic != Magic {
		return nil, ErrBadMagic
	}
	if hdr.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, hdr.Version)
	}

	tableEnd := uint64(headerSize) + uint64(hdr.NumBlocks)*entrySize
	if tableEnd > uint64(len(data)) {
		return nil, ErrTruncated
	}
	table := data[headerSize:tableEnd]
	if got := crc32.ChecksumIEEE(table); got != hdr.TableCRC {
		return nil, &ChecksumError{Block: "(table)", Expected: hdr.TableCRC, Actual: got}
	}
	entries := make([]blockEntry, hdr.NumBlocks)
	if err := binary.Read(bytes.NewReader(table), binary.LittleEndian, entries); err != nil {
		return nil, err
	}

	img := &Image{
		Header: Header{
			Layout:    hdr.Layout,
			WordExt:   hdr.WordExt,
			NumWords:  hdr.NumWords,
			NumStates: hdr.NumStates,
		},
		Blocks: make([]Block, len(entries)),
	}
	for i, e := range entries {
		name := string(bytes.TrimRight(e.Name[:], "\x00"))
		end := e.Offset + e.Length
		if end < e.Offset || end > uint64(len(data)) {
			return nil, fmt.Errorf("block %q: %w", name, ErrTruncated)
		}
		if e.Offset%Align != 0 {
			return nil, fmt.Errorf("block %q: offset %d is not %d-byte aligned: %w",
				name, e.Offset, Align, ErrTruncated)
		}
		b := data[e.Offset:end:end]
		if got := crc32.ChecksumIEEE(b); got != e.CRC {
			return nil, &ChecksumError{Block: name, Expected: e.CRC, Actual: got}
		}
		img.Blocks[i] = Block{Name: name, Data: b}
	}
	return img, nil
}

package persist

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
)

// Write encodes img to w and returns the number of bytes written.
func Write(w io.Writer, img *Image) (int64, error) {
	entries := make([]blockEntry, len(img.Blocks))
	off := int64(headerSize + entrySize*len(img.Blocks))
	for i, b := range img.Blocks {
		if len(b.Name) == 0 || len(b.Name) > MaxBlockName {
			return 0, fmt.Errorf("persist: block name %q must be 1 to %d bytes", b.Name, MaxBlockName)
		}
		off = alignUp(off)
		copy(entries[i].Name[:], b.Name)
		entries[i].Offset = uint64(off)
		entries[i].Length = uint64(len(b.Data))
		entries[i].CRC = crc32.ChecksumIEEE(b.Data)
		off += int64(len(b.Data))
	}

	var table bytes.Buffer
	if err := binary.Write(&table, binary.LittleEndian, entries); err != nil {
		return 0, err
	}
	hdr := fileHeader{
		Magic:     Magic,
		Version:   Version,
		NumBlocks: uint32(len(img.Blocks)),
		Layout:    img.Header.Layout,
		WordExt:   img.Header.WordExt,
		NumWords:  img.Header.NumWords,
		NumStates: img.Header.NumStates,
		TableCRC:  crc32.ChecksumIEEE(table.Bytes()),
	}

	bw := bufio.NewWriterSize(w, 64<<10)
	cw := &countingWriter{w: bw}
	if err := binary.Write(cw, binary.LittleEndian, &hdr); err != nil {
		return cw.n, err
	}
	if _, err := cw.Write(table.Bytes()); err != nil {
		return cw.n, err
	}
	var pad [Align]byte
	for i, b := range img.Blocks {
		if gap := int64(entries[i].Offset) - cw.n; gap > 0 {
			if _, err := cw.Write(pad[:gap]); err != nil {
				return cw.n, err
			}
		}
		if _, err := cw.Write(b.Data); err != nil {
			return cw.n, err
		}
	}
	return cw.n, bw.Flush()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

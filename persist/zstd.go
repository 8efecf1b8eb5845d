package persist

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// zstdMagic is the frame magic number of a zstd stream.
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// WriteCompressed writes img as a zstd stream. The framing inside the stream
// is the one produced by Write.
func WriteCompressed(w io.Writer, img *Image) (int64, error) {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return 0, err
	}
	n, err := Write(zw, img)
	if err != nil {
		zw.Close()
		return n, err
	}
	return n, zw.Close()
}

// ReadCompressed decodes a stream produced by WriteCompressed into owned
// memory.
func ReadCompressed(r io.Reader) (*Image, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return Read(dec)
}

// Load opens the image at path. Plain images are memory-mapped with Open;
// zstd-compressed images are decoded into owned memory.
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	br := bufio.NewReader(f)
	head, _ := br.Peek(len(zstdMagic))
	if !bytes.Equal(head, zstdMagic) {
		f.Close()
		return Open(path)
	}
	defer f.Close()
	return ReadCompressed(br)
}

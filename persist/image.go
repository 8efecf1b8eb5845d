package persist

import "sync"

// Header carries the automaton parameters stored next to the blocks.
type Header struct {
	Layout    uint8
	WordExt   uint8
	NumWords  uint64
	NumStates uint64
}

// Block is a named byte range of an image.
type Block struct {
	Name string
	Data []byte
}

// Image is a header plus an ordered list of blocks.
//
// An image returned by Open aliases a read-only file mapping: its block data
// must not be written, and it must not be used after Close.
type Image struct {
	Header Header
	Blocks []Block

	release func() error
	once    sync.Once
	err     error
}

// NewImage returns an owned image.
func NewImage(h Header, blocks ...Block) *Image {
	return &Image{Header: h, Blocks: blocks}
}

// Block returns the data of the first block called name.
func (img *Image) Block(name string) ([]byte, bool) {
	for i := range img.Blocks {
		if img.Blocks[i].Name == name {
			return img.Blocks[i].Data, true
		}
	}
	return nil, false
}

// Borrowed reports whether the block data aliases a file mapping.
func (img *Image) Borrowed() bool {
	return img.release != nil
}

// Size returns the number of bytes Write produces for img.
func (img *Image) Size() int64 {
	off := int64(headerSize + entrySize*len(img.Blocks))
	for _, b := range img.Blocks {
		off = alignUp(off) + int64(len(b.Data))
	}
	return off
}

// Close releases a borrowed mapping. It is a no-op for owned images and safe
// to call more than once.
func (img *Image) Close() error {
	if img.release == nil {
		return nil
	}
	img.once.Do(func() {
		img.err = img.release()
		img.Blocks = nil
	})
	return img.err
}

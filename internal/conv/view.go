package conv

import (
	"fmt"
	"unsafe"
)

// View reinterprets b as a slice of T without copying. b must be aligned for
// T and its length must be a multiple of the size of T. The result aliases b.
func View[T any](b []byte) ([]T, error) {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if len(b) == 0 {
		return nil, nil
	}
	if len(b)%size != 0 {
		return nil, fmt.Errorf("block of %d bytes is not a multiple of %d", len(b), size)
	}
	if align := uintptr(unsafe.Alignof(zero)); uintptr(unsafe.Pointer(&b[0]))%align != 0 {
		return nil, fmt.Errorf("block is not %d-byte aligned", align)
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), len(b)/size), nil
}

// Bytes reinterprets s as raw bytes without copying. The result aliases s.
func Bytes[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(zero)))
}

//go:build unix

package persist

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

func mapFile(path string) ([]byte, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	size := fi.Size()
	if size == 0 {
		return nil, nil, ErrTruncated
	}
	if size < 0 || int64(int(size)) != size {
		return nil, nil, errors.New("persist: file too large to map")
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}
	// Scanning jumps between states at random; the hint is advisory.
	if err := unix.Madvise(data, unix.MADV_RANDOM); err != nil && err != unix.EINVAL {
		_ = unix.Munmap(data)
		return nil, nil, err
	}
	return data, func() error { return unix.Munmap(data) }, nil
}

package index

import (
	"bufio"
	"bytes"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// LoadMmap reads an Index the same way Load does, but parses it out of a
// read-only mmap of the file instead of a buffered read syscall loop,
// avoiding the page-cache-to-heap copy Load pays for a large index file.
// The returned Index is fully decoded and independent of the mapping by
// the time LoadMmap returns; the closer unmaps the file and should be
// called once the caller is done loading (there is nothing further to
// keep it open for).
func LoadMmap(path string) (idx *Index, closer func() error, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	size := info.Size()
	if size == 0 {
		return New(), func() error { return nil }, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, fmt.Errorf("index: mmap %s: %w", path, err)
	}

	idx, err = loadFromScanner(bufio.NewScanner(bytes.NewReader(data)))
	closeFn := func() error { return unix.Munmap(data) }
	if err != nil {
		_ = closeFn()
		return nil, nil, err
	}
	return idx, closeFn, nil
}

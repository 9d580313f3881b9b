// Package mmap provides a read-only memory mapping of a whole file, giving
// the counting pipeline the single contiguous byte view it requires.
package mmap

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// File is a read-only memory-mapped file.
type File struct {
	Data []byte   // the mapped bytes
	Size int      // length of the mapping, equal to the file size
	f    *os.File // the underlying opened file
}

// Open maps the whole file at path read-only. Empty files cannot be mapped
// and are rejected; callers are expected to handle the empty-input case
// before reaching for a mapping.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", path, err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat file %q: %w", path, err)
	}

	size := int(fi.Size())
	if size == 0 {
		f.Close()
		return nil, fmt.Errorf("file %q is empty, cannot mmap", path)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to mmap file %q: %w", path, err)
	}

	// the whole buffer is consumed front to back exactly once
	_ = unix.Madvise(data, unix.MADV_SEQUENTIAL)

	return &File{
		Data: data,
		Size: size,
		f:    f,
	}, nil
}

// Close unmaps the memory region and closes the underlying file.
func (m *File) Close() error {
	var err error
	if m.Data != nil {
		err = unix.Munmap(m.Data)
		m.Data = nil
	}
	if m.f != nil {
		if closeErr := m.f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		m.f = nil
	}
	return err
}

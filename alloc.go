package stagepool

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Allocator is the backing memory primitive the pool draws chunks from.
type Allocator interface {
	// Allocate obtains a chunk of exactly size bytes.
	Allocate(size int) ([]byte, error)

	// Free releases a chunk previously returned by Allocate.
	Free(chunk []byte) error
}

// MmapAllocator allocates chunks as anonymous memory mappings outside the
// Go heap, so the garbage collector never scans chunk contents.
type MmapAllocator struct{}

func (MmapAllocator) Allocate(size int) ([]byte, error) {
	data, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE,
	)
	if err != nil {
		return nil, fmt.Errorf("cannot allocate %d bytes via mmap: %w", size, err)
	}
	return data, nil
}

func (MmapAllocator) Free(chunk []byte) error {
	return unix.Munmap(chunk)
}

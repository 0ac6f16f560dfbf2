package testutils

import "errors"

var ErrRefused = errors.New("allocation refused")

// MockAllocator is an in-heap backing allocator for tests. It counts
// allocate/free calls and can be made to refuse requests.
type MockAllocator struct {
	allocCalls int
	freeCalls  int

	// RefuseNext makes the next Allocate call fail with ErrRefused.
	RefuseNext bool
}

func (a *MockAllocator) Allocate(size int) ([]byte, error) {
	if a.RefuseNext {
		a.RefuseNext = false
		return nil, ErrRefused
	}
	a.allocCalls++
	return make([]byte, size), nil
}

func (a *MockAllocator) Free(chunk []byte) error {
	a.freeCalls++
	return nil
}

func (a *MockAllocator) AllocCalls() int {
	return a.allocCalls
}

func (a *MockAllocator) FreeCalls() int {
	return a.freeCalls
}

// ChunksLive returns the number of chunks allocated but not yet freed.
func (a *MockAllocator) ChunksLive() int {
	return a.allocCalls - a.freeCalls
}

func (a *MockAllocator) Reset() {
	a.allocCalls = 0
	a.freeCalls = 0
	a.RefuseNext = false
}

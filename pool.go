// Package stagepool implements a size-classed pool of off-heap buffers
// used to stage per-frame geometry data before it is uploaded to the
// graphics device. Buffers are recycled across take/put cycles to avoid
// per-frame allocation overhead; new backing memory is admitted only
// while the pool is under its configured capacity.
package stagepool

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/stagepool/go-stagepool/internal/geom"
)

// numClasses is the number of supported size classes.
const numClasses = 5

// baseClassFaces is the face capacity of the smallest size class.
// Each subsequent class doubles.
const baseClassFaces = 512

// classSizes holds the supported chunk sizes in bytes, ordered smallest
// to largest. A request is served by the smallest class that fits it.
var classSizes [numClasses]int

func init() {
	size := geom.FaceToBytes(baseClassFaces)
	for i := range classSizes {
		classSizes[i] = size << i
	}
	// Runtime assertion.
	if classSizes[0] <= 0 {
		panic(errors.New("base size class must be positive"))
	}
}

var (
	// ErrSizeClassOverflow reports a request larger than the largest size
	// class. This is a programmer error, not a capacity condition.
	ErrSizeClassOverflow = errors.New("requested size exceeds largest size class")

	// ErrOutOfBudget reports that serving the request would require new
	// backing memory while the pool is already over its configured
	// capacity. Callers should fall back to an unpooled buffer or skip
	// the update for the frame.
	ErrOutOfBudget = errors.New("pool capacity exceeded")

	// ErrAllocationFailed reports that the backing allocator refused a
	// request. Callers should treat it like ErrOutOfBudget.
	ErrAllocationFailed = errors.New("backing allocation failed")
)

// Pool recycles fixed-size off-heap chunks across take/put cycles.
//
// A Pool is single-threaded by contract: all calls must come from one
// logical owner, with no internal synchronization. A chunk is owned by
// the pool while it sits on a free list and by the caller between a take
// and the matching put; the pool never reads a checked-out chunk.
type Pool struct {
	alloc       Allocator
	maxCapacity int64

	// allChunks records every chunk ever obtained from the backing
	// allocator, regardless of where it currently sits. Used only by
	// FreeAllocations.
	allChunks [][]byte
	allBytes  int64 // bytes obtained from the backing allocator

	// free holds one LIFO stack of chunks per size class. The most
	// recently freed chunk is reused first for locality.
	free      [numClasses][][]byte
	usedBytes int64 // bytes currently checked out to callers
}

// New creates a pool backed by mmap'd off-heap memory.
func New(config Config) (*Pool, error) {
	return Custom(MmapAllocator{}, config)
}

// Custom creates a pool with a custom backing allocator.
func Custom(alloc Allocator, config Config) (*Pool, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Pool{alloc: alloc, maxCapacity: config.MaxCapacityBytes}, nil
}

// ClassSizes returns the supported chunk sizes in bytes, smallest first.
func (p *Pool) ClassSizes() []int {
	return classSizes[:]
}

// AllocatedBytes returns the total bytes obtained from the backing
// allocator since the last FreeAllocations. It never decreases between
// resets.
func (p *Pool) AllocatedBytes() int64 {
	return p.allBytes
}

// UsedBytes returns the bytes currently checked out to callers.
func (p *Pool) UsedBytes() int64 {
	return p.usedBytes
}

// MaxCapacity returns the configured capacity ceiling in bytes.
func (p *Pool) MaxCapacity() int64 {
	return p.maxCapacity
}

func (p *Pool) isOverCapacity() bool {
	return p.allBytes > p.maxCapacity
}

// classify returns the smallest size class that fits size bytes.
func classify(size int) (class, classSize int, err error) {
	for i, cs := range classSizes {
		if size <= cs {
			return i, cs, nil
		}
	}
	return 0, 0, fmt.Errorf("%w: %d bytes > %d", ErrSizeClassOverflow, size, classSizes[numClasses-1])
}

// popChunk returns a chunk of the smallest class size that fits size
// bytes, reusing a free chunk when one is available.
//
// New backing memory is requested only on a free-list miss, and only
// while allocated bytes do not already exceed the capacity ceiling.
// Reuse never grows the footprint, so it is always permitted. The
// admission check runs before the new chunk is counted, so a single
// admission may push the pool up to one class size past the ceiling
// before further growth is refused; callers depend on this bounded
// overshoot.
func (p *Pool) popChunk(size int) ([]byte, error) {
	class, classSize, err := classify(size)
	if err != nil {
		return nil, err
	}

	if n := len(p.free[class]); n > 0 {
		chunk := p.free[class][n-1]
		p.free[class] = p.free[class][:n-1]
		p.usedBytes += int64(classSize)
		return chunk, nil
	}

	if p.isOverCapacity() {
		return nil, ErrOutOfBudget
	}

	chunk, err := p.alloc.Allocate(classSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAllocationFailed, err)
	}
	p.allChunks = append(p.allChunks, chunk)
	p.allBytes += int64(classSize)

	p.usedBytes += int64(classSize)
	return chunk, nil
}

// pushChunk returns a chunk to the free list of the class derived from
// size, the byte size the chunk was originally requested for.
func (p *Pool) pushChunk(chunk []byte, size int) {
	class, classSize, err := classify(size)
	if err != nil {
		// A chunk the pool handed out always classifies; failure here
		// means the caller returned a view the pool never produced.
		panic(fmt.Errorf("internal error: %w", err))
	}

	p.usedBytes -= int64(classSize)
	if p.usedBytes < 0 {
		panic(fmt.Errorf("used bytes negative after putting a %d-byte chunk: take/put size mismatch", classSize))
	}
	p.free[class] = append(p.free[class], chunk)
}

// FreeAllocations releases every chunk ever obtained from the backing
// allocator and resets the pool to its freshly constructed state. This is
// the only operation that returns memory to the operating environment.
//
// The caller must guarantee that no chunk is checked out; any view still
// outstanding is invalidated by this call.
func (p *Pool) FreeAllocations() {
	for _, chunk := range p.allChunks {
		if err := p.alloc.Free(chunk); err != nil {
			slog.Error("failed to release chunk", "size", len(chunk), "error", err)
		}
	}
	p.allChunks = nil
	p.allBytes = 0

	for i := range p.free {
		p.free[i] = nil
	}
	p.usedBytes = 0
}

// numFree returns the number of free chunks in a size class.
// It is primarily intended as a helper method in tests.
func (p *Pool) numFree(class int) int {
	return len(p.free[class])
}

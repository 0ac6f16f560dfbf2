package stagepool

import (
	"unsafe"

	"github.com/stagepool/go-stagepool/internal/geom"
)

// The pool stores byte-addressed chunks; the int and float views below
// are thin reinterpretations of the same chunk machinery. A view's length
// is the requested element count and its capacity extends to the serving
// class's full size, which put uses to recover the class.

// TakeInts returns a view of count int32 elements over a pooled chunk.
// The caller owns the view until the matching PutInts.
func (p *Pool) TakeInts(count int) ([]int32, error) {
	chunk, err := p.popChunk(count * geom.BytesPerDatum)
	if err != nil {
		return nil, err
	}
	return intView(chunk)[:count], nil
}

// PutInts returns a view obtained from TakeInts to the pool. The caller
// must not read or write through the view afterwards. Putting a nil view
// is a no-op.
func (p *Pool) PutInts(v []int32) {
	if v == nil {
		return
	}
	size := cap(v) * geom.BytesPerDatum
	p.pushChunk(byteChunk(unsafe.Pointer(unsafe.SliceData(v)), size), size)
}

// TakeFloats returns a view of count float32 elements over a pooled
// chunk. The caller owns the view until the matching PutFloats.
func (p *Pool) TakeFloats(count int) ([]float32, error) {
	chunk, err := p.popChunk(count * geom.BytesPerDatum)
	if err != nil {
		return nil, err
	}
	return floatView(chunk)[:count], nil
}

// PutFloats returns a view obtained from TakeFloats to the pool. The
// caller must not read or write through the view afterwards. Putting a
// nil view is a no-op.
func (p *Pool) PutFloats(v []float32) {
	if v == nil {
		return
	}
	size := cap(v) * geom.BytesPerDatum
	p.pushChunk(byteChunk(unsafe.Pointer(unsafe.SliceData(v)), size), size)
}

func intView(chunk []byte) []int32 {
	return unsafe.Slice((*int32)(unsafe.Pointer(unsafe.SliceData(chunk))), len(chunk)/geom.BytesPerDatum)
}

func floatView(chunk []byte) []float32 {
	return unsafe.Slice((*float32)(unsafe.Pointer(unsafe.SliceData(chunk))), len(chunk)/geom.BytesPerDatum)
}

// byteChunk rebuilds the full-class byte chunk backing a typed view.
func byteChunk(ptr unsafe.Pointer, size int) []byte {
	return unsafe.Slice((*byte)(ptr), size)
}

// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package arena implements a bump allocator for immutable byte-string
// storage. Allocations are never freed individually: the whole arena is
// released at once together with its owner. An arena belongs to exactly one
// worker and must not be shared across goroutines.
package arena

const (
	// DefaultChunkSize is the minimum backing buffer size (1 MiB).
	DefaultChunkSize = 1 << 20

	// Alignment is the natural alignment of every region handed out.
	Alignment = 8
)

// Stats reports arena memory usage.
type Stats struct {
	BytesReserved  uint64 // size of the primary buffer
	BytesUsed      uint64 // bytes consumed from the primary buffer (incl. padding)
	OverflowAllocs uint64 // allocations that fell through to the heap
	OverflowBytes  uint64 // total size of overflow allocations
	TotalAllocs    uint64
}

// Arena is a bump allocator over a single pre-sized buffer. When the buffer
// runs out, allocations fall through to individually tracked heap buffers so
// that callers never observe an allocation failure short of process OOM.
type Arena struct {
	buf      []byte
	off      int
	overflow [][]byte
	stats    Stats
}

// New creates an arena with at least DefaultChunkSize bytes of backing
// storage.
func New(size int) *Arena {
	if size < DefaultChunkSize {
		size = DefaultChunkSize
	}
	return &Arena{
		buf: make([]byte, size),
	}
}

// Alloc returns a writable region of exactly n bytes, valid until Release.
// Regions are 8-byte aligned. Alloc never returns an error: if the primary
// buffer is exhausted, the region comes from a tracked heap allocation that
// is dropped together with the arena.
func (a *Arena) Alloc(n int) []byte {
	if n <= 0 {
		return nil
	}
	a.stats.TotalAllocs++

	aligned := (n + Alignment - 1) &^ (Alignment - 1)
	if a.off+aligned > len(a.buf) {
		p := make([]byte, n)
		a.overflow = append(a.overflow, p)
		a.stats.OverflowAllocs++
		a.stats.OverflowBytes += uint64(n)
		return p
	}

	p := a.buf[a.off : a.off+n : a.off+n]
	a.off += aligned
	a.stats.BytesUsed += uint64(aligned)
	return p
}

// Copy stores an immutable copy of b in the arena and returns it.
func (a *Arena) Copy(b []byte) []byte {
	p := a.Alloc(len(b))
	copy(p, b)
	return p
}

// Stats returns a snapshot of the arena usage counters.
func (a *Arena) Stats() Stats {
	s := a.stats
	s.BytesReserved = uint64(len(a.buf))
	return s
}

// Release drops the backing buffer and every overflow allocation. All
// regions handed out by this arena become invalid. The arena cannot be
// reused afterwards.
func (a *Arena) Release() {
	a.buf = nil
	a.off = 0
	a.overflow = nil
}

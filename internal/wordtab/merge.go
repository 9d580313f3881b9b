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
package wordtab

import "bytes"

// Merge folds independently populated worker tables into a fresh global
// table, summing counts for identical keys. Iteration order is fixed (worker
// index ascending, slot index ascending) so the result does not depend on
// thread scheduling. Hashes stored in the source entries are reused, never
// recomputed, and key bytes are referenced rather than copied: the merged
// table aliases the worker arenas.
//
// Merge runs single-threaded, strictly after all workers have joined.
func Merge(tables []*Table) *Table {
	distinct := 0
	for _, t := range tables {
		distinct += t.Len()
	}

	capacity := nextPow2(uint64(distinct) * 2)
	if capacity < DefaultCapacity {
		capacity = DefaultCapacity
	}

	dst := &Table{
		entries: make([]Entry, capacity),
		mask:    capacity - 1,
	}

	for _, t := range tables {
		dst.total += t.total

		for i := range t.entries {
			e := &t.entries[i]
			if e.Key == nil {
				continue
			}

			idx := e.Hash & dst.mask
			for {
				d := &dst.entries[idx]
				if d.Key == nil {
					*d = *e
					dst.used++
					break
				}
				if d.Hash == e.Hash && len(d.Key) == len(e.Key) &&
					d.Fp == e.Fp && bytes.Equal(d.Key, e.Key) {
					d.Count += e.Count
					break
				}
				idx = (idx + 1) & dst.mask
			}
		}
	}
	return dst
}

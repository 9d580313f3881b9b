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

// Package tokenize extracts words from a byte range and feeds them, together
// with their incrementally computed hash, into a frequency table.
//
// A word is a maximal run of ASCII letters, case-folded to lowercase. Any
// other byte, including every byte of a multi-byte UTF-8 sequence, is an
// opaque boundary: it terminates the current word without contributing to
// it. Runs longer than wordtab.MaxWordLen are silently truncated; the
// dropped letters are neither stored nor hashed, and the truncated run still
// counts as a single word.
package tokenize

import "github.com/ostafen/wordfreq/internal/wordtab"

// FNV-1a, accumulated byte by byte over the lowercased, retained key bytes.
const (
	fnvOffset = 14695981039346656037
	fnvPrime  = 1099511628211
)

// Scanner tokenizes a byte range into a table. Implementations differ only
// in scanning strategy; their observable output must be identical.
type Scanner interface {
	// Scan processes data and records every word into t. When dropLeading
	// is set, the range begins mid-word and the leading letter run belongs
	// to (and was already consumed by) the previous partition, so it is
	// discarded.
	Scan(data []byte, dropLeading bool, t *wordtab.Table)
}

// NewScanner returns the fastest scanner implementation for this platform.
func NewScanner() Scanner {
	return swarScanner{}
}

// NewReferenceScanner returns the scalar reference implementation. The fast
// paths are validated against it for output equivalence.
func NewReferenceScanner() Scanner {
	return scalarScanner{}
}

// IsLetter reports whether c is an ASCII letter.
func IsLetter(c byte) bool {
	return (c|0x20)-'a' < 26
}

type scalarScanner struct{}

func (scalarScanner) Scan(data []byte, dropLeading bool, t *wordtab.Table) {
	var word [wordtab.MaxWordLen]byte
	wlen := 0
	hash := uint64(fnvOffset)

	i := 0
	if dropLeading {
		for i < len(data) && IsLetter(data[i]) {
			i++
		}
	}

	for ; i < len(data); i++ {
		c := data[i]
		if IsLetter(c) {
			if wlen < wordtab.MaxWordLen {
				c |= 0x20
				word[wlen] = c
				wlen++
				hash = (hash ^ uint64(c)) * fnvPrime
			}
			continue
		}
		if wlen > 0 {
			t.Add(word[:wlen], hash)
			wlen = 0
			hash = fnvOffset
		}
	}
	if wlen > 0 {
		t.Add(word[:wlen], hash)
	}
}

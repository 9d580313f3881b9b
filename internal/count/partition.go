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
package count

import "github.com/ostafen/wordfreq/internal/tokenize"

// Partition is a contiguous byte range [Start, End) of the shared read-only
// input buffer assigned to one worker.
type Partition struct {
	Start int
	End   int
}

// Len returns the partition size in bytes.
func (p Partition) Len() int { return p.End - p.Start }

// Partitions splits the buffer into n contiguous, non-overlapping ranges
// covering it exactly once. Each internal cut point starts at the ideal even
// split and advances forward past any ASCII letters, so no letter run
// straddles a cut: a word is always attributed to the partition containing
// its first character.
func Partitions(data []byte, n int) []Partition {
	if n < 1 {
		n = 1
	}

	cuts := make([]int, n+1)
	cuts[n] = len(data)

	for i := 1; i < n; i++ {
		c := len(data) * i / n
		if c < cuts[i-1] {
			// keep cuts monotone when a previous cut advanced past
			// this one's ideal split
			c = cuts[i-1]
		}
		for c < len(data) && tokenize.IsLetter(data[c]) {
			c++
		}
		cuts[i] = c
	}

	parts := make([]Partition, n)
	for i := 0; i < n; i++ {
		parts[i] = Partition{Start: cuts[i], End: cuts[i+1]}
	}
	return parts
}

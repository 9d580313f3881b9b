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
package tokenize

import (
	"encoding/binary"
	"math/bits"

	"github.com/ostafen/wordfreq/internal/wordtab"
)

// swarScanner locates word boundaries eight bytes at a time using packed
// byte comparisons, then folds and hashes the letter run byte by byte. The
// emitted (word, hash) stream is identical to the scalar scanner's.
type swarScanner struct{}

const (
	swarOnes  = 0x0101010101010101
	swarHighs = 0x8080808080808080
	swarFold  = 0x2020202020202020
)

// letterMask returns a word with the high bit of byte k set iff byte k of x
// is an ASCII letter.
func letterMask(x uint64) uint64 {
	f := x | swarFold
	hi := f & swarHighs
	y := f &^ swarHighs
	geA := (y + (0x80-'a')*swarOnes) & swarHighs
	gtZ := (y + (0x80-('z'+1))*swarOnes) & swarHighs
	return geA &^ gtZ &^ hi
}

// nextLetter returns the index of the first letter byte at or after i.
func nextLetter(data []byte, i int) int {
	for i+8 <= len(data) {
		m := letterMask(binary.LittleEndian.Uint64(data[i:]))
		if m != 0 {
			return i + bits.TrailingZeros64(m)>>3
		}
		i += 8
	}
	for i < len(data) && !IsLetter(data[i]) {
		i++
	}
	return i
}

// nextBoundary returns the index of the first non-letter byte at or after i.
func nextBoundary(data []byte, i int) int {
	for i+8 <= len(data) {
		m := letterMask(binary.LittleEndian.Uint64(data[i:]))
		if m != swarHighs {
			return i + bits.TrailingZeros64(^m&swarHighs)>>3
		}
		i += 8
	}
	for i < len(data) && IsLetter(data[i]) {
		i++
	}
	return i
}

func (swarScanner) Scan(data []byte, dropLeading bool, t *wordtab.Table) {
	var word [wordtab.MaxWordLen]byte

	i := 0
	if dropLeading {
		i = nextBoundary(data, 0)
	}

	for i < len(data) {
		i = nextLetter(data, i)
		if i >= len(data) {
			break
		}
		j := nextBoundary(data, i)

		hash := uint64(fnvOffset)
		wlen := 0
		for k := i; k < j && wlen < wordtab.MaxWordLen; k++ {
			c := data[k] | 0x20
			word[wlen] = c
			wlen++
			hash = (hash ^ uint64(c)) * fnvPrime
		}
		t.Add(word[:wlen], hash)
		i = j
	}
}

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

// Package stopword implements the optional report-side word filter. Filtered
// words are excluded from top-K selection only; totals and unique counts
// always describe the raw input.
package stopword

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// tableSize is the size of the presence filter, indexed by a 16-bit hash of
// the word bytes.
const tableSize = 1 << 16

const (
	none = iota
	present
)

// Set is a lookup set for lowercase words. A 65536-byte presence table in
// front of the exact map rejects most misses without converting the probed
// bytes to a string.
type Set struct {
	table [tableSize]byte
	words map[string]struct{}
}

// New creates a set containing the given words, lowercased.
func New(words ...string) *Set {
	s := &Set{
		words: make(map[string]struct{}, len(words)),
	}
	for _, w := range words {
		s.insert(strings.ToLower(w))
	}
	return s
}

// Load reads one word per line from path, ignoring blank lines and lines
// starting with '#'.
func Load(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stopword file %q: %w", path, err)
	}
	defer f.Close()

	s := New()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		s.insert(strings.ToLower(line))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stopword file %q: %w", path, err)
	}
	return s, nil
}

func (s *Set) insert(word string) {
	var h uint16
	for i := 0; i < len(word); i++ {
		h = (h << 2) + uint16(word[i])
	}
	s.table[h] = present
	s.words[word] = struct{}{}
}

// Contains reports whether key is in the set. The compiler elides the
// string conversion for the map lookup, so misses that pass the presence
// filter still do not allocate.
func (s *Set) Contains(key []byte) bool {
	var h uint16
	for _, b := range key {
		h = (h << 2) + uint16(b)
	}
	if s.table[h] == none {
		return false
	}
	_, found := s.words[string(key)]
	return found
}

// Size returns the number of words in the set.
func (s *Set) Size() int {
	return len(s.words)
}

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

// Package wordtab implements the word frequency table: an open-addressing
// hash table with linear probing, power-of-two capacity and arena-backed
// keys. Each worker owns a private table; after all workers join, the
// per-worker tables are folded into a single global table by Merge.
package wordtab

import (
	"bytes"

	"github.com/ostafen/wordfreq/internal/arena"
)

const (
	// DefaultCapacity is the initial number of slots of a worker table.
	DefaultCapacity = 1 << 12

	// MaxWordLen bounds the number of key bytes retained per word.
	// Longer letter runs are truncated by the tokenizer before insertion.
	MaxWordLen = 64
)

// Entry is a single word slot. A nil Key marks an empty slot.
// Key bytes live in the owning table's arena and are never mutated
// after insertion.
type Entry struct {
	Key   []byte
	Count uint64
	Hash  uint64
	Fp    uint16
}

// Fingerprint derives the 16-bit fast-reject value from a word hash.
func Fingerprint(h uint64) uint16 {
	x := uint32(h)
	return uint16(x ^ (x >> 16))
}

// Table maps words to occurrence counts.
type Table struct {
	entries []Entry
	mask    uint64
	used    int
	total   uint64
	arena   *arena.Arena
}

// New creates an empty table. capacity is rounded up to a power of two;
// arenaSize is the backing storage pre-sized for key bytes.
func New(capacity, arenaSize int) *Table {
	if capacity < DefaultCapacity {
		capacity = DefaultCapacity
	}
	capacity = int(nextPow2(uint64(capacity)))

	return &Table{
		entries: make([]Entry, capacity),
		mask:    uint64(capacity - 1),
		arena:   arena.New(arenaSize),
	}
}

// Add records one occurrence of word, whose 64-bit hash has already been
// computed incrementally by the tokenizer. If the word is new, its bytes are
// copied into the arena; otherwise the existing entry's count is bumped.
func (t *Table) Add(word []byte, hash uint64) {
	fp := Fingerprint(hash)
	idx := hash & t.mask

	for {
		e := &t.entries[idx]
		if e.Key == nil {
			e.Key = t.arena.Copy(word)
			e.Count = 1
			e.Hash = hash
			e.Fp = fp
			t.used++
			t.total++

			// load factor check only after a new key went in
			if t.used*10 > len(t.entries)*7 {
				t.grow()
			}
			return
		}
		// cheap filters first, byte compare last
		if e.Hash == hash && len(e.Key) == len(word) && e.Fp == fp &&
			bytes.Equal(e.Key, word) {
			e.Count++
			t.total++
			return
		}
		idx = (idx + 1) & t.mask
	}
}

// grow doubles the slot array and rehashes every live entry. Key bytes stay
// where they are; only slot positions move.
func (t *Table) grow() {
	entries := make([]Entry, len(t.entries)*2)
	mask := uint64(len(entries) - 1)

	for i := range t.entries {
		e := &t.entries[i]
		if e.Key == nil {
			continue
		}
		idx := e.Hash & mask
		for entries[idx].Key != nil {
			idx = (idx + 1) & mask
		}
		entries[idx] = *e
	}

	t.entries = entries
	t.mask = mask
}

// Len returns the number of distinct words in the table.
func (t *Table) Len() int { return t.used }

// Total returns the cumulative number of inserted words, duplicates included.
func (t *Table) Total() uint64 { return t.total }

// ArenaStats exposes the usage counters of the backing arena. Merged tables
// own no arena of their own and report zero.
func (t *Table) ArenaStats() arena.Stats {
	if t.arena == nil {
		return arena.Stats{}
	}
	return t.arena.Stats()
}

// Range calls fn for every live entry in slot index order, stopping early if
// fn returns false.
func (t *Table) Range(fn func(e *Entry) bool) {
	for i := range t.entries {
		if t.entries[i].Key != nil {
			if !fn(&t.entries[i]) {
				return
			}
		}
	}
}

// Release drops the slot array and the arena's buffers. Keys already
// transferred into a merged table remain valid: they keep the underlying
// storage reachable on their own.
func (t *Table) Release() {
	t.entries = nil
	t.mask = 0
	t.used = 0
	if t.arena != nil {
		t.arena.Release()
	}
}

func nextPow2(x uint64) uint64 {
	if x <= 1 {
		return 1
	}
	x--
	x |= x >> 1
	x |= x >> 2
	x |= x >> 4
	x |= x >> 8
	x |= x >> 16
	x |= x >> 32
	return x + 1
}

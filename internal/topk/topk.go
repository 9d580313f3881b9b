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

// Package topk extracts the K highest-count entries from a frequency table.
//
// Two strategies produce the same final ordering: a full sort of all entries
// when the table is small relative to K, and a bounded min-heap otherwise.
// The heap is implemented manually rather than with container/heap to avoid
// interface boxing on every sift.
package topk

import (
	"sort"

	"github.com/ostafen/wordfreq/internal/wordtab"
)

// Item is one ranked result.
type Item struct {
	Word  string
	Count uint64
}

// fullSortFactor selects the full-sort strategy while the number of distinct
// entries stays within this multiple of K.
const fullSortFactor = 10

// Filter reports whether an entry should be excluded from selection.
type Filter func(word []byte) bool

// Top returns up to k entries ordered by count descending, ties broken by
// ascending word. If filter is non-nil, entries it matches are skipped. When
// k exceeds the number of eligible entries, every eligible entry is returned.
func Top(t *wordtab.Table, k int, filter Filter) []Item {
	if k <= 0 || t.Len() == 0 {
		return nil
	}

	if t.Len() <= k*fullSortFactor {
		return topBySort(t, k, filter)
	}
	return topByHeap(t, k, filter)
}

func topBySort(t *wordtab.Table, k int, filter Filter) []Item {
	items := make([]Item, 0, t.Len())
	t.Range(func(e *wordtab.Entry) bool {
		if filter == nil || !filter(e.Key) {
			items = append(items, Item{Word: string(e.Key), Count: e.Count})
		}
		return true
	})

	sortItems(items)
	if len(items) > k {
		items = items[:k]
	}
	return items
}

func topByHeap(t *wordtab.Table, k int, filter Filter) []Item {
	h := make(minHeap, 0, k)

	t.Range(func(e *wordtab.Entry) bool {
		if filter != nil && filter(e.Key) {
			return true
		}
		if len(h) < k {
			h.push(Item{Word: string(e.Key), Count: e.Count})
			return true
		}
		// replace the minimum only on strictly greater count; ties are
		// resolved by the final sort, not during admission
		if e.Count > h[0].Count {
			h[0] = Item{Word: string(e.Key), Count: e.Count}
			h.down(0)
		}
		return true
	})

	items := []Item(h)
	sortItems(items)
	return items
}

func sortItems(items []Item) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Word < items[j].Word
	})
}

// minHeap orders items by count only; equal counts compare as equal, so heap
// shape for ties depends solely on insertion order, which is fixed by the
// table's deterministic iteration.
type minHeap []Item

func (h *minHeap) push(it Item) {
	*h = append(*h, it)
	j := len(*h) - 1
	for j > 0 {
		parent := (j - 1) / 2
		if (*h)[parent].Count <= (*h)[j].Count {
			break
		}
		(*h)[parent], (*h)[j] = (*h)[j], (*h)[parent]
		j = parent
	}
}

func (h minHeap) down(i int) {
	n := len(h)
	for {
		left := 2*i + 1
		if left >= n {
			return
		}
		small := left
		if right := left + 1; right < n && h[right].Count < h[left].Count {
			small = right
		}
		if h[i].Count <= h[small].Count {
			return
		}
		h[i], h[small] = h[small], h[i]
		i = small
	}
}

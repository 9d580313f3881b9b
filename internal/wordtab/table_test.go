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
package wordtab_test

import (
	"fmt"
	"testing"

	"github.com/ostafen/wordfreq/internal/wordtab"
	"github.com/stretchr/testify/require"
)

// hashOf mirrors the tokenizer's FNV-1a accumulation over lowercase bytes.
func hashOf(word string) uint64 {
	h := uint64(14695981039346656037)
	for i := 0; i < len(word); i++ {
		h = (h ^ uint64(word[i])) * 1099511628211
	}
	return h
}

func addWord(t *wordtab.Table, word string) {
	t.Add([]byte(word), hashOf(word))
}

func counts(t *wordtab.Table) map[string]uint64 {
	m := make(map[string]uint64)
	t.Range(func(e *wordtab.Entry) bool {
		m[string(e.Key)] = e.Count
		return true
	})
	return m
}

func TestTable_AddAndIncrement(t *testing.T) {
	tab := wordtab.New(0, 0)

	addWord(tab, "cat")
	addWord(tab, "the")
	addWord(tab, "cat")
	addWord(tab, "cat")

	require.Equal(t, 2, tab.Len())
	require.EqualValues(t, 4, tab.Total())
	require.Equal(t, map[string]uint64{"cat": 3, "the": 1}, counts(tab))
}

func TestTable_KeysAreCopied(t *testing.T) {
	tab := wordtab.New(0, 0)

	word := []byte("mutable")
	tab.Add(word, hashOf("mutable"))

	// reusing the caller's buffer must not corrupt the stored key
	copy(word, "XXXXXXX")
	addWord(tab, "mutable")

	require.Equal(t, map[string]uint64{"mutable": 2}, counts(tab))
}

func TestTable_Grow(t *testing.T) {
	tab := wordtab.New(0, 0)

	// enough distinct keys to trigger multiple growths of the initial
	// 4096-slot table
	n := 0
	for a := byte('a'); a <= 'z'; a++ {
		for b := byte('a'); b <= 'z'; b++ {
			for c := byte('a'); c <= 'z'; c++ {
				word := string([]byte{a, b, c})
				addWord(tab, word)
				addWord(tab, word)
				n++
				if n == 10000 {
					goto done
				}
			}
		}
	}
done:
	require.Equal(t, 10000, tab.Len())
	require.EqualValues(t, 20000, tab.Total())

	m := counts(tab)
	require.Len(t, m, 10000)
	for word, count := range m {
		require.EqualValues(t, 2, count, "word %q", word)
	}
}

func TestTable_Fingerprint(t *testing.T) {
	// fingerprint must be a pure function of the hash
	require.Equal(t, wordtab.Fingerprint(0), wordtab.Fingerprint(0))
	require.Equal(t, wordtab.Fingerprint(hashOf("cat")), wordtab.Fingerprint(hashOf("cat")))
	require.NotEqual(t, wordtab.Fingerprint(1), wordtab.Fingerprint(2))
}

func TestMerge(t *testing.T) {
	t1 := wordtab.New(0, 0)
	addWord(t1, "the")
	addWord(t1, "cat")
	addWord(t1, "the")

	t2 := wordtab.New(0, 0)
	addWord(t2, "cat")
	addWord(t2, "sat")

	t3 := wordtab.New(0, 0) // a worker that saw no words

	global := wordtab.Merge([]*wordtab.Table{t1, t2, t3})

	require.Equal(t, 3, global.Len())
	require.EqualValues(t, 5, global.Total())
	require.Equal(t, map[string]uint64{"the": 2, "cat": 2, "sat": 1}, counts(global))
}

func TestMerge_KeysSurviveWorkerRelease(t *testing.T) {
	workers := make([]*wordtab.Table, 4)
	for i := range workers {
		workers[i] = wordtab.New(0, 0)
		for j := 0; j < 100; j++ {
			addWord(workers[i], fmt.Sprintf("word%c%c", 'a'+j/26, 'a'+j%26))
		}
	}

	global := wordtab.Merge(workers)
	for _, w := range workers {
		w.Release()
	}

	m := counts(global)
	require.Len(t, m, 100)
	for _, count := range m {
		require.EqualValues(t, 4, count)
	}
}

func TestMerge_Empty(t *testing.T) {
	global := wordtab.Merge(nil)
	require.Zero(t, global.Len())
	require.Zero(t, global.Total())
}

func BenchmarkTable_Add(b *testing.B) {
	words := make([][]byte, 1000)
	hashes := make([]uint64, 1000)
	for i := range words {
		w := fmt.Sprintf("%c%c%c", 'a'+i%26, 'a'+(i/26)%26, 'a'+(i/676)%26)
		words[i] = []byte(w)
		hashes[i] = hashOf(w)
	}

	b.ResetTimer()
	tab := wordtab.New(0, 0)
	for i := 0; i < b.N; i++ {
		tab.Add(words[i%1000], hashes[i%1000])
	}
}

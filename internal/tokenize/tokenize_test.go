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
package tokenize_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/ostafen/wordfreq/internal/tokenize"
	"github.com/ostafen/wordfreq/internal/wordtab"
	"github.com/stretchr/testify/require"
)

func scan(s tokenize.Scanner, data string, dropLeading bool) map[string]uint64 {
	tab := wordtab.New(0, 0)
	s.Scan([]byte(data), dropLeading, tab)

	m := make(map[string]uint64)
	tab.Range(func(e *wordtab.Entry) bool {
		m[string(e.Key)] = e.Count
		return true
	})
	return m
}

func TestScan(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]uint64
	}{
		{
			name:  "simple sentence",
			input: "The cat sat. The cat ran!",
			want:  map[string]uint64{"the": 2, "cat": 2, "sat": 1, "ran": 1},
		},
		{
			name:  "case folding",
			input: "Go GO gO go",
			want:  map[string]uint64{"go": 4},
		},
		{
			name:  "digits and punctuation split words",
			input: "abc123def,ghi--jkl",
			want:  map[string]uint64{"abc": 1, "def": 1, "ghi": 1, "jkl": 1},
		},
		{
			name:  "multi byte utf8 is a boundary",
			input: "caffè über naïve",
			want:  map[string]uint64{"caff": 1, "ber": 1, "na": 1, "ve": 1},
		},
		{
			name:  "no letters",
			input: " \t\n 42 ... 7 ",
			want:  map[string]uint64{},
		},
		{
			name:  "empty input",
			input: "",
			want:  map[string]uint64{},
		},
		{
			name:  "word at end of buffer",
			input: "no trailing boundary",
			want:  map[string]uint64{"no": 1, "trailing": 1, "boundary": 1},
		},
	}

	scanners := map[string]tokenize.Scanner{
		"scalar": tokenize.NewReferenceScanner(),
		"swar":   tokenize.NewScanner(),
	}
	for sname, s := range scanners {
		for _, tt := range tests {
			t.Run(sname+"/"+tt.name, func(t *testing.T) {
				require.Equal(t, tt.want, scan(s, tt.input, false))
			})
		}
	}
}

func TestScan_Truncation(t *testing.T) {
	long := strings.Repeat("ab", 100) // 200 letters, one word
	want := map[string]uint64{long[:wordtab.MaxWordLen]: 1}

	require.Equal(t, want, scan(tokenize.NewReferenceScanner(), long, false))
	require.Equal(t, want, scan(tokenize.NewScanner(), long, false))

	// two identical overlong runs must land on the same key
	doubled := long + " " + long
	want = map[string]uint64{long[:wordtab.MaxWordLen]: 2}
	require.Equal(t, want, scan(tokenize.NewReferenceScanner(), doubled, false))
	require.Equal(t, want, scan(tokenize.NewScanner(), doubled, false))
}

func TestScan_DropLeading(t *testing.T) {
	for _, s := range []tokenize.Scanner{tokenize.NewReferenceScanner(), tokenize.NewScanner()} {
		// the leading run belongs to the previous partition
		require.Equal(t, map[string]uint64{"cat": 1}, scan(s, "tail cat", true))

		// a range that is entirely one letter run yields nothing
		require.Equal(t, map[string]uint64{}, scan(s, "abcdef", true))

		// leading boundary byte means nothing gets dropped
		require.Equal(t, map[string]uint64{"cat": 1}, scan(s, " cat", true))
	}
}

func TestScan_SwarMatchesScalar(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))

	alphabet := []byte("abcdefghijklmnopqrstuvwxyz" +
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
		" \t\n.,;!?0123456789_-\x00\x80\xc3\xa8\xff")

	for trial := 0; trial < 50; trial++ {
		data := make([]byte, rnd.Intn(4096))
		for i := range data {
			data[i] = alphabet[rnd.Intn(len(alphabet))]
		}

		for _, dropLeading := range []bool{false, true} {
			want := scan(tokenize.NewReferenceScanner(), string(data), dropLeading)
			got := scan(tokenize.NewScanner(), string(data), dropLeading)
			require.Equal(t, want, got, "trial %d, dropLeading=%v", trial, dropLeading)
		}
	}
}

func TestIsLetter(t *testing.T) {
	for c := 0; c < 256; c++ {
		want := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		require.Equal(t, want, tokenize.IsLetter(byte(c)), "byte %#x", c)
	}
}

func BenchmarkScan(b *testing.B) {
	data := []byte(strings.Repeat("The quick brown fox jumps over the lazy dog. ", 2048))

	benches := map[string]tokenize.Scanner{
		"scalar": tokenize.NewReferenceScanner(),
		"swar":   tokenize.NewScanner(),
	}
	for name, s := range benches {
		b.Run(name, func(b *testing.B) {
			tab := wordtab.New(0, 0)
			b.SetBytes(int64(len(data)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				s.Scan(data, false, tab)
			}
		})
	}
}

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

// Package count runs the parallel tokenize-hash-aggregate pipeline over a
// single in-memory buffer: the buffer is partitioned at word boundaries,
// each partition is tokenized into a private frequency table by its own
// worker, the per-worker tables are merged into a global table, and the
// top-K entries are extracted.
//
// Workers share nothing mutable: the input buffer is read-only, and each
// table with its arena is owned by exactly one worker until the merge, which
// runs single-threaded after all workers have joined.
package count

import (
	"runtime"

	"github.com/ostafen/wordfreq/internal/arena"
	"github.com/ostafen/wordfreq/internal/tokenize"
	"github.com/ostafen/wordfreq/internal/topk"
	"github.com/ostafen/wordfreq/internal/wordtab"
	"golang.org/x/sync/errgroup"
)

const (
	// MaxWorkers caps the default worker count.
	MaxWorkers = 32

	// SequentialThreshold is the input size below which a single worker is
	// always used: below this there is no value in parallelizing.
	SequentialThreshold = 1 << 16

	// DefaultBlockSize is the granularity at which a worker walks its
	// partition and publishes progress.
	DefaultBlockSize = 4 << 20
)

// Options configures a counting run. The zero value is usable.
type Options struct {
	// Workers is the number of parallel workers. Values below 1 select the
	// default (available parallelism, capped at MaxWorkers). Small inputs
	// always run with a single worker regardless of this setting.
	Workers int

	// TopK is the number of ranked entries to return (default 10).
	TopK int

	// BlockSize overrides the per-worker progress granularity.
	BlockSize int

	// Scanner overrides the tokenizer implementation. Defaults to the
	// fastest one for this platform.
	Scanner tokenize.Scanner

	// Filter, if set, excludes matching words from top-K selection.
	// Totals and unique counts are unaffected.
	Filter topk.Filter

	// OnAdvance, if set, is invoked by workers each time a block of input
	// has been processed. It must be safe for concurrent use.
	OnAdvance func(bytes int)
}

// WorkerStats describes one worker's share of the run, folded centrally
// after the join.
type WorkerStats struct {
	Partition Partition
	Words     uint64 // words counted by this worker, duplicates included
	Unique    int    // distinct words in the worker's private table
	Arena     arena.Stats
}

// Result is the outcome of a counting run.
type Result struct {
	TotalWords  uint64
	UniqueWords int
	Top         []topk.Item
	Workers     []WorkerStats
}

// DefaultWorkers returns the default worker count for an input of the given
// size.
func DefaultWorkers(size int) int {
	if size < SequentialThreshold {
		return 1
	}
	n := runtime.GOMAXPROCS(0)
	if n > MaxWorkers {
		n = MaxWorkers
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Count tokenizes data and returns the word frequency result. An empty
// buffer yields an empty result without running the pipeline. Repeated runs
// with the same input and worker count produce identical results, including
// tie-break order.
func Count(data []byte, opts Options) *Result {
	if len(data) == 0 {
		return &Result{}
	}

	workers := opts.Workers
	if workers < 1 {
		workers = DefaultWorkers(len(data))
	}
	if len(data) < SequentialThreshold {
		workers = 1
	}

	topN := opts.TopK
	if topN <= 0 {
		topN = 10
	}

	blockSize := opts.BlockSize
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}

	scanner := opts.Scanner
	if scanner == nil {
		scanner = tokenize.NewScanner()
	}

	parts := Partitions(data, workers)

	// all tables are allocated before any worker starts scanning
	tables := make([]*wordtab.Table, workers)
	for i, p := range parts {
		tables[i] = wordtab.New(wordtab.DefaultCapacity, arenaSize(p.Len()))
	}

	start := make(chan struct{})

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		w := worker{
			id:        i,
			part:      parts[i],
			table:     tables[i],
			scanner:   scanner,
			blockSize: blockSize,
			onAdvance: opts.OnAdvance,
		}
		g.Go(func() error {
			<-start
			w.run(data)
			return nil
		})
	}

	close(start)
	_ = g.Wait() // workers have no error path short of a fatal runtime abort

	stats := make([]WorkerStats, workers)
	for i, t := range tables {
		stats[i] = WorkerStats{
			Partition: parts[i],
			Words:     t.Total(),
			Unique:    t.Len(),
			Arena:     t.ArenaStats(),
		}
	}

	global := wordtab.Merge(tables)
	for _, t := range tables {
		t.Release()
	}

	return &Result{
		TotalWords:  global.Total(),
		UniqueWords: global.Len(),
		Top:         topk.Top(global, topN, opts.Filter),
		Workers:     stats,
	}
}

// arenaSize pre-sizes a worker arena from its partition length, as a quarter
// of the partition with a 1 MiB floor.
func arenaSize(partLen int) int {
	size := partLen / 4
	if size < arena.DefaultChunkSize {
		size = arena.DefaultChunkSize
	}
	return size
}

type worker struct {
	id        int
	part      Partition
	table     *wordtab.Table
	scanner   tokenize.Scanner
	blockSize int
	onAdvance func(int)
}

// run walks the partition in block-sized sub-ranges. Each sub-range end is
// advanced past letters exactly like a partition cut, so progress
// granularity never splits a word; only the very first sub-range of a
// non-leading partition may begin mid-word.
func (w *worker) run(data []byte) {
	dropLeading := w.id > 0

	for off := w.part.Start; off < w.part.End; {
		end := off + w.blockSize
		if end >= w.part.End {
			end = w.part.End
		} else {
			for end < w.part.End && tokenize.IsLetter(data[end]) {
				end++
			}
		}

		w.scanner.Scan(data[off:end], dropLeading, w.table)
		dropLeading = false

		if w.onAdvance != nil {
			w.onAdvance(end - off)
		}
		off = end
	}
}

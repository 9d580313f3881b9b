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

// Package input acquires the contiguous read-only byte view the counting
// pipeline operates on. Plain files are memory-mapped; gzip, zstd and lz4
// inputs are decompressed into memory, since a compressed stream cannot be
// mapped directly.
package input

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ostafen/wordfreq/internal/mmap"
	"github.com/pierrec/lz4/v4"
)

// Buffer is a read-only view of the entire input.
type Buffer interface {
	// Bytes returns the full input. The returned slice must not be
	// mutated and becomes invalid after Close.
	Bytes() []byte
	Close() error
}

// Open acquires the input at path. The decompression format is picked from
// the file extension (.gz, .zst, .lz4); anything else is mapped as-is.
// An empty input yields a Buffer with zero bytes, not an error.
func Open(path string) (Buffer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return readCompressed(path, func(r io.Reader) (io.Reader, error) {
			zr, err := gzip.NewReader(r)
			if err != nil {
				return nil, err
			}
			return zr, nil
		})
	case ".zst":
		return readCompressed(path, func(r io.Reader) (io.Reader, error) {
			zr, err := zstd.NewReader(r)
			if err != nil {
				return nil, err
			}
			return zr.IOReadCloser(), nil
		})
	case ".lz4":
		return readCompressed(path, func(r io.Reader) (io.Reader, error) {
			return lz4.NewReader(r), nil
		})
	}
	return openMapped(path)
}

func openMapped(path string) (Buffer, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat input %q: %w", path, err)
	}
	if fi.Size() == 0 {
		// nothing to count, but not an error
		return &memBuffer{}, nil
	}

	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	return &mappedBuffer{m: m}, nil
}

func readCompressed(path string, wrap func(io.Reader) (io.Reader, error)) (Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input %q: %w", path, err)
	}
	defer f.Close()

	r, err := wrap(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read compressed input %q: %w", path, err)
	}
	if c, ok := r.(io.Closer); ok {
		defer c.Close()
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress input %q: %w", path, err)
	}
	return &memBuffer{data: data}, nil
}

type memBuffer struct {
	data []byte
}

func (b *memBuffer) Bytes() []byte { return b.data }

func (b *memBuffer) Close() error {
	b.data = nil
	return nil
}

type mappedBuffer struct {
	m *mmap.File
}

func (b *mappedBuffer) Bytes() []byte { return b.m.Data }

func (b *mappedBuffer) Close() error { return b.m.Close() }

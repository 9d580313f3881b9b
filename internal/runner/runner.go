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
package runner

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/ostafen/wordfreq/internal/count"
	"github.com/ostafen/wordfreq/internal/env"
	"github.com/ostafen/wordfreq/internal/input"
	"github.com/ostafen/wordfreq/internal/logger"
	"github.com/ostafen/wordfreq/internal/stopword"
	"github.com/ostafen/wordfreq/internal/topk"
	"github.com/ostafen/wordfreq/pkg/pbar"
	"github.com/ostafen/wordfreq/pkg/report"
	"github.com/ostafen/wordfreq/pkg/sysinfo"
	fmtutil "github.com/ostafen/wordfreq/pkg/util/format"
)

type Options struct {
	TopK         int
	Workers      int
	BlockSize    uint64
	ReportFile   string
	StopwordFile string
	DisableLog   bool
	LogLevel     slog.Level
}

func Run(filePath string, opts Options) error {
	buf, err := input.Open(filePath)
	if err != nil {
		return err
	}
	defer buf.Close()

	data := buf.Bytes()

	var filter topk.Filter
	if opts.StopwordFile != "" {
		set, err := stopword.Load(opts.StopwordFile)
		if err != nil {
			return err
		}
		filter = set.Contains
	}

	workers := opts.Workers
	if workers < 1 {
		workers = sysinfo.Parallelism()
		if workers > count.MaxWorkers {
			workers = count.MaxWorkers
		}
	}

	session := GenSessionID()

	var logFilePath string
	if !opts.DisableLog {
		logFilePath = absPath(session + ".log")
	}

	log, logFile, err := logger.Setup(logFilePath, opts.LogLevel)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	fmt.Println("[INFO] Starting counting operation...")
	fmt.Printf("[INFO] Source: \t%s\n", absPath(filePath))
	fmt.Printf("[INFO] Size: \t%s\n", fmtutil.FormatBytes(int64(len(data))))
	fmt.Printf("[INFO] Workers: \t%d\n", workers)

	outLog := "disabled"
	if !opts.DisableLog {
		outLog = logFilePath
	}
	fmt.Printf("[INFO] Output Log: \t%s\n", outLog)

	log.Info("starting count",
		"source", filePath,
		"size", len(data),
		"workers", workers,
		"topK", opts.TopK,
	)

	var processed atomic.Int64
	stopProgress := startProgress(int64(len(data)), &processed)

	start := time.Now()
	res := count.Count(data, count.Options{
		Workers:   workers,
		TopK:      opts.TopK,
		BlockSize: int(opts.BlockSize),
		Filter:    filter,
		OnAdvance: func(n int) {
			processed.Add(int64(n))
		},
	})
	elapsed := time.Since(start)

	stopProgress()

	for i, w := range res.Workers {
		log.Debug("worker done",
			"worker", i,
			"start", w.Partition.Start,
			"end", w.Partition.End,
			"words", w.Words,
			"unique", w.Unique,
			"arenaOverflow", w.Arena.OverflowAllocs,
		)
	}
	log.Info("count completed",
		"total", res.TotalWords,
		"unique", res.UniqueWords,
		"elapsed", elapsed,
	)

	printResult(res, elapsed, int64(len(data)))

	if opts.ReportFile != "" {
		if err := writeReport(opts.ReportFile, filePath, workers, len(data), res, elapsed); err != nil {
			return err
		}
		fmt.Printf("[INFO] Report saved to: \t%s\n", absPath(opts.ReportFile))
	}
	return nil
}

// startProgress renders the progress bar until the returned stop function is
// called. Nothing is rendered for empty input.
func startProgress(total int64, processed *atomic.Int64) func() {
	if total == 0 {
		return func() {}
	}

	bar := pbar.NewProgressBarState(total)
	done := make(chan struct{})
	finished := make(chan struct{})

	go func() {
		defer close(finished)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				bar.ProcessedBytes = processed.Load()
				bar.Render(true)
				bar.Finish()
				return
			case <-ticker.C:
				bar.ProcessedBytes = processed.Load()
				bar.Render(false)
			}
		}
	}()

	return func() {
		close(done)
		<-finished
	}
}

func printResult(res *count.Result, elapsed time.Duration, size int64) {
	fmt.Printf("[INFO] Words: \t%d total, %d unique\n", res.TotalWords, res.UniqueWords)

	if len(res.Top) > 0 {
		fmt.Printf("\n%-4s  %-20s  %10s  %6s\n", "Rank", "Word", "Count", "%")
		fmt.Println("----  --------------------  ----------  ------")
		for i, it := range res.Top {
			fmt.Printf("%4d  %-20s  %10d  %5.2f%%\n",
				i+1,
				it.Word,
				it.Count,
				100.0*float64(it.Count)/float64(res.TotalWords))
		}
		fmt.Println()
	}

	fmt.Printf("[INFO] Duration: \t%s\n", FormatDurationHMS(elapsed))
	if elapsed > 0 && size > 0 {
		mbps := float64(size) / (1024 * 1024) / elapsed.Seconds()
		fmt.Printf("[INFO] Throughput: \t%.2fMB/s\n", mbps)
	}
}

func writeReport(path, source string, workers, size int, res *count.Result, elapsed time.Duration) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file %q: %w", path, err)
	}
	defer f.Close()

	w := report.NewWriter(f)
	defer w.Close()

	err = w.WriteHeader(report.Header{
		XMLOutput: report.XMLOutputVersion,
		Creator: report.Creator{
			Package:              env.AppName,
			Version:              env.Version,
			ExecutionEnvironment: report.GetExecEnv(),
		},
		Source: report.Source{
			Filename:  source,
			SizeBytes: uint64(size),
			Workers:   workers,
		},
	})
	if err != nil {
		return err
	}

	err = w.WriteSummary(report.Summary{
		TotalWords:  res.TotalWords,
		UniqueWords: uint64(res.UniqueWords),
		ElapsedMS:   elapsed.Milliseconds(),
	})
	if err != nil {
		return err
	}

	for i, it := range res.Top {
		err := w.WriteWord(report.Word{
			Rank:  i + 1,
			Count: it.Count,
			Text:  it.Word,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func absPath(path string) string {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

// GenSessionID creates a unique name for a counting session, in the form
// "count_YYYYMMDD_HHMMSS".
func GenSessionID() string {
	return "count_" + time.Now().Format("20060102_150405")
}

// FormatDurationHMS formats a time.Duration into an HH:MM:SS string,
// falling back to fractional seconds for sub-second runs.
func FormatDurationHMS(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	totalSeconds := int64(d.Seconds())

	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

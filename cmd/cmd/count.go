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
package cmd

import (
	"github.com/ostafen/wordfreq/internal/config"
	"github.com/ostafen/wordfreq/internal/logger"
	"github.com/ostafen/wordfreq/internal/runner"
	"github.com/ostafen/wordfreq/pkg/util/format"
	"github.com/spf13/cobra"
)

func DefineCountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "count <file>",
		Short:        "Count word frequencies in a text file",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunCount,
	}

	cmd.Flags().IntP("top", "k", 0, "number of top words to report")
	cmd.Flags().IntP("workers", "w", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().String("block-size", "", "progress granularity of a worker")
	cmd.Flags().String("stopwords", "", "path of a stopword file excluded from the report")
	cmd.Flags().StringP("config", "c", "", "path of a YAML run profile")
	cmd.Flags().StringP("output", "o", "", "the path of the XML report file")
	cmd.Flags().Bool("no-log", false, "disable logging")

	return cmd
}

func RunCount(cmd *cobra.Command, args []string) error {
	opts, err := parseOptions(cmd)
	if err != nil {
		return err
	}
	return runner.Run(args[0], opts)
}

// parseOptions layers flags over the run profile: profile values apply only
// where the corresponding flag was not given explicitly.
func parseOptions(cmd *cobra.Command) (runner.Options, error) {
	cfg := config.Default()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return runner.Options{}, err
		}
	}

	if cmd.Flags().Changed("top") {
		cfg.TopK, _ = cmd.Flags().GetInt("top")
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers, _ = cmd.Flags().GetInt("workers")
	}
	if cmd.Flags().Changed("block-size") {
		cfg.BlockSize, _ = cmd.Flags().GetString("block-size")
	}
	if cmd.Flags().Changed("stopwords") {
		cfg.Stopwords, _ = cmd.Flags().GetString("stopwords")
	}
	if cmd.Flags().Changed("no-log") {
		cfg.NoLog, _ = cmd.Flags().GetBool("no-log")
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}

	var blockSize uint64
	if cfg.BlockSize != "" {
		var err error
		blockSize, err = format.ParseBytes(cfg.BlockSize)
		if err != nil {
			return runner.Options{}, err
		}
	}

	outputFile, _ := cmd.Flags().GetString("output")

	return runner.Options{
		TopK:         cfg.TopK,
		Workers:      cfg.Workers,
		BlockSize:    blockSize,
		ReportFile:   outputFile,
		StopwordFile: cfg.Stopwords,
		DisableLog:   cfg.NoLog,
		LogLevel:     logger.ParseLevel(cfg.LogLevel),
	}, nil
}

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

// Package config loads run profiles from YAML files. A profile carries
// defaults for the count command; flags given on the command line take
// precedence over profile values.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is a run profile.
type Config struct {
	// TopK is the number of ranked words to report.
	TopK int `yaml:"topK"`
	// Workers is the worker count; 0 selects the default.
	Workers int `yaml:"workers"`
	// BlockSize is the per-worker progress granularity, e.g. "4MB".
	BlockSize string `yaml:"blockSize"`
	// Stopwords is the path of a stopword file applied to the report.
	Stopwords string `yaml:"stopwords"`
	// LogLevel is the minimum level written to the session log.
	LogLevel string `yaml:"logLevel"`
	// NoLog disables the session log file.
	NoLog bool `yaml:"noLog"`
}

// Default returns the built-in profile.
func Default() Config {
	return Config{
		TopK:     10,
		LogLevel: "INFO",
	}
}

// Load reads a profile from path, layered over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("invalid config file %q: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.TopK < 0 {
		return fmt.Errorf("topK cannot be negative: %d", c.TopK)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers cannot be negative: %d", c.Workers)
	}
	return nil
}

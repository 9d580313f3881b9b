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

// Package report defines the XML index written at the end of a counting
// session.
package report

import (
	"encoding/xml"
	"os"
	"os/user"
	"runtime"
	"strconv"
	"time"

	"github.com/ostafen/wordfreq/pkg/sysinfo"
)

const XMLOutputVersion = "1.0"

// Header is the root element of a frequency report.
type Header struct {
	XMLName   xml.Name `xml:"wordfreq"`
	XMLOutput string   `xml:"xmloutputversion,attr,omitempty"`
	Creator   Creator  `xml:"creator"` // software that produced the report
	Source    Source   `xml:"source"`  // the counted input
}

// Creator describes the software and environment that produced the report.
type Creator struct {
	XMLName              xml.Name `xml:"creator"`
	Package              string   `xml:"package"`
	Version              string   `xml:"version"`
	ExecutionEnvironment ExecEnv  `xml:"execution_environment"`
}

// ExecEnv provides information about the host where the report was created.
type ExecEnv struct {
	OS      string `xml:"os_sysname"`
	Release string `xml:"os_release"`
	Version string `xml:"os_version"`
	Host    string `xml:"host"`
	Arch    string `xml:"arch"`
	UID     int    `xml:"uid"`
	Start   string `xml:"start_time"`
}

// Source describes the counted input file.
type Source struct {
	XMLName   xml.Name `xml:"source"`
	Filename  string   `xml:"filename"`
	SizeBytes uint64   `xml:"size_bytes"`
	Workers   int      `xml:"workers"`
}

// Summary holds the aggregate counters of a run.
type Summary struct {
	XMLName     xml.Name `xml:"summary"`
	TotalWords  uint64   `xml:"total_words"`
	UniqueWords uint64   `xml:"unique_words"`
	ElapsedMS   int64    `xml:"elapsed_ms"`
}

// Word is a single ranked entry.
type Word struct {
	XMLName xml.Name `xml:"word"`
	Rank    int      `xml:"rank,attr"`
	Count   uint64   `xml:"count,attr"`
	Text    string   `xml:",chardata"`
}

// GetExecEnv gathers runtime information for the report header.
func GetExecEnv() ExecEnv {
	sinfo, err := sysinfo.Stat()
	if err != nil {
		sinfo = &sysinfo.SysUnknown
	}

	host, err := os.Hostname()
	if err != nil {
		host = "unknown_host"
	}

	uid := 0
	currentUser, err := user.Current()
	if err == nil {
		if uidInt, parseErr := strconv.Atoi(currentUser.Uid); parseErr == nil {
			uid = uidInt
		}
	}

	return ExecEnv{
		OS:      sinfo.Name,
		Release: sinfo.Release,
		Version: sinfo.Version,
		Host:    host,
		Arch:    runtime.GOARCH,
		UID:     uid,
		Start:   time.Now().UTC().Format("2006-01-02T15:04:05Z"),
	}
}

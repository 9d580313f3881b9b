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
package report_test

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/ostafen/wordfreq/pkg/report"
	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := report.NewWriter(&buf)

	hdr := report.Header{
		XMLOutput: report.XMLOutputVersion,
		Creator: report.Creator{
			Package: "wordfreq",
			Version: "0.1.0",
			ExecutionEnvironment: report.ExecEnv{
				OS:   "Linux",
				Host: "testhost",
				Arch: "amd64",
			},
		},
		Source: report.Source{
			Filename:  "/data/corpus.txt",
			SizeBytes: 1024,
			Workers:   4,
		},
	}
	require.NoError(t, w.WriteHeader(hdr))
	require.NoError(t, w.WriteSummary(report.Summary{
		TotalWords:  6,
		UniqueWords: 4,
		ElapsedMS:   12,
	}))
	require.NoError(t, w.WriteWord(report.Word{Rank: 1, Count: 2, Text: "cat"}))
	require.NoError(t, w.WriteWord(report.Word{Rank: 2, Count: 2, Text: "the"}))
	require.NoError(t, w.Close())

	out := buf.String()
	require.True(t, strings.HasPrefix(out, xml.Header))
	require.Contains(t, out, `<wordfreq xmloutputversion="1.0">`)
	require.Contains(t, out, `<word rank="1" count="2">cat</word>`)
	require.Contains(t, out, "</wordfreq>")

	// the stream must parse back as a single document
	var parsed struct {
		XMLName xml.Name       `xml:"wordfreq"`
		Creator report.Creator `xml:"creator"`
		Source  report.Source  `xml:"source"`
		Summary report.Summary `xml:"summary"`
		Words   []report.Word  `xml:"word"`
	}
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &parsed))
	require.Equal(t, "wordfreq", parsed.Creator.Package)
	require.Equal(t, 4, parsed.Source.Workers)
	require.EqualValues(t, 6, parsed.Summary.TotalWords)
	require.Len(t, parsed.Words, 2)
	require.Equal(t, "the", parsed.Words[1].Text)
}

func TestGetExecEnv(t *testing.T) {
	env := report.GetExecEnv()
	require.NotEmpty(t, env.Host)
	require.NotEmpty(t, env.Arch)
	require.NotEmpty(t, env.Start)
}

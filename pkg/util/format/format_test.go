package format_test

import (
	"testing"

	"github.com/ostafen/wordfreq/pkg/util/format"
	"github.com/stretchr/testify/require"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0B"},
		{512, "512B"},
		{1024, "1KB"},
		{1536, "1.50KB"},
		{4 << 20, "4MB"},
		{3 << 30, "3GB"},
		{2 << 40, "2TB"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, format.FormatBytes(tt.in))
	}
}

func TestParseBytes(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
	}{
		{"1024", 1024},
		{"512B", 512},
		{"4KB", 4 << 10},
		{"4kb", 4 << 10},
		{" 8 MB ", 8 << 20},
		{"2GB", 2 << 30},
		{"1TB", 1 << 40},
	}
	for _, tt := range tests {
		got, err := format.ParseBytes(tt.in)
		require.NoError(t, err, "input %q", tt.in)
		require.Equal(t, tt.want, got, "input %q", tt.in)
	}

	for _, in := range []string{"", "MB", "12.5MB", "-4KB", "fourKB"} {
		_, err := format.ParseBytes(in)
		require.Error(t, err, "input %q", in)
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, b := range []int64{1 << 10, 4 << 20, 3 << 30} {
		parsed, err := format.ParseBytes(format.FormatBytes(b))
		require.NoError(t, err)
		require.EqualValues(t, b, parsed)
	}
}

package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		id    int64
		width int
		want  string
	}{
		{3, 3, "003"},
		{42, 5, "00042"},
		{1234, 3, "1234"},
		{7, 0, "7"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.id, tt.width))
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"3", 3},
		{"003", 3},
		{"#12", 12},
		{" 7 ", 7},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		require.NoError(t, err, "Parse(%q)", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "#", "abc", "0", "-4", "1.5"} {
		_, err := Parse(in)
		assert.Error(t, err, "Parse(%q)", in)
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, n := range []int64{1, 9, 10, 999, 1000} {
		got, err := Parse(Format(n, 3))
		require.NoError(t, err)
		assert.Equal(t, n, got)
	}
}

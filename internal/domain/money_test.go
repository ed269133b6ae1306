package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"499", 49900},
		{"100.50", 10050},
		{"49.50", 4950},
		{"0.01", 1},
		{"0.5", 50},
		{".99", 99},
		{" 12 ", 1200},
	}

	for _, tt := range tests {
		got, err := ParseAmount(tt.in)
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	for _, in := range []string{"", "  ", "-5", "0", "0.00", "1.234", "abc", "1.2c", "1e3", "1.-5", "1.+5", "+1.00", "1.-", "."} {
		_, err := ParseAmount(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestRoundToUnit(t *testing.T) {
	tests := []struct {
		minor int64
		want  int64
	}{
		{15000, 150},
		{14950, 150}, // half rounds away from zero
		{14949, 149},
		{50, 1},
		{49, 0},
		{0, 0},
		{-50, -1},
		{-49, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundToUnit(tt.minor), "minor %d", tt.minor)
	}
}

// The documented dashboard example: orders of 100.50 and 49.50 produce
// earnings of exactly 150, with rounding applied once at the end.
func TestExactSummationThenRound(t *testing.T) {
	a, err := ParseAmount("100.50")
	require.NoError(t, err)
	b, err := ParseAmount("49.50")
	require.NoError(t, err)

	assert.Equal(t, int64(150), RoundToUnit(a+b))
	assert.Equal(t, int64(150), RoundToUnit(b+a))
}

package numeric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"12", 12, true},
		{"12.5%", 12.5, true},
		{"  7", 7, true},
		{"-3.25abc", -3.25, true},
		{".5", 0.5, true},
		{"1e3", 1000, true},
		{"5.", 5, true},
		{"abc", 0, false},
		{"", 0, false},
		{"%12", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseFloat(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFloatOr(t *testing.T) {
	assert.Equal(t, 12.0, FloatOr("0", 12))
	assert.Equal(t, 12.0, FloatOr("", 12))
	assert.Equal(t, 12.0, FloatOr("abc", 12))
	assert.Equal(t, 12.5, FloatOr("12.5%", 12))
	assert.Equal(t, -1.0, FloatOr("-1", 12))
}

func TestFloatOrZero(t *testing.T) {
	assert.Equal(t, 0.0, FloatOrZero("n/a"))
	assert.Equal(t, 0.0, FloatOrZero(""))
	assert.Equal(t, 1.0, FloatOrZero("1,5"))
	assert.Equal(t, 250.0, FloatOrZero("250"))
}

func TestRoundInt(t *testing.T) {
	assert.Equal(t, 3, RoundInt(2.5))
	assert.Equal(t, 2, RoundInt(2.49))
	assert.Equal(t, 0, RoundInt(0))
	assert.Equal(t, -3, RoundInt(-2.5))
}

func TestRoundCents(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.005, 1.00},
		{0.125, 0.13},
		{-0.125, -0.12},
		{-1.005, -1.00},
		{119.11119999999998, 119.11},
		{0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundCents(tt.in), "RoundCents(%v)", tt.in)
	}
}

package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"dollar prefix", "$59.00", 59.0},
		{"plain int", 59, 59.0},
		{"plain float", 59.5, 59.5},
		{"thousands separator", "1,200.50", 1200.5},
		{"garbage string", "abc", 0},
		{"empty string", "", 0},
		{"nil", nil, 0},
		{"nan float", math.NaN(), 0},
		{"negative", "-10", -10.0},
		{"currency with spaces", " $ 34 ", 34.0},
		{"bool unsupported", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePrice(tt.in))
		})
	}
}

func TestParsePriceStrict(t *testing.T) {
	p, err := ParsePriceStrict("$12.50")
	assert.NoError(t, err)
	assert.Equal(t, 12.5, p)

	_, err = ParsePriceStrict("abc")
	assert.Error(t, err)

	_, err = ParsePriceStrict(math.Inf(1))
	assert.Error(t, err)

	_, err = ParsePriceStrict(nil)
	assert.Error(t, err)
}

func TestParsePriceNeverReturnsNaN(t *testing.T) {
	inputs := []any{math.NaN(), "..", "--", "$", struct{}{}}
	for _, in := range inputs {
		assert.False(t, math.IsNaN(ParsePrice(in)), "input %v", in)
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$59.00", FormatPrice(59))
	assert.Equal(t, "$1200.50", FormatPrice(1200.5))
	assert.Equal(t, "$0.00", FormatPrice(math.NaN()))
}

package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestParseAmount(t *testing.T) {
	cases := []struct {
		name string
		in   *string
		want float64
	}{
		{"nil", nil, 0},
		{"empty", strPtr(""), 0},
		{"blank", strPtr("   "), 0},
		{"NA upper", strPtr("NA"), 0},
		{"na lower", strPtr("na"), 0},
		{"Na mixed", strPtr("Na"), 0},
		{"integer", strPtr("500"), 500},
		{"decimal", strPtr("1250.50"), 1250.5},
		{"padded", strPtr(" 200 "), 200},
		{"zero", strPtr("0"), 0},
		{"garbage", strPtr("abc"), 0},
		{"nan literal", strPtr("NaN"), 0},
		{"negative", strPtr("-50"), -50},
		{"rupee suffix slash", strPtr("500/-"), 500},
		{"currency suffix", strPtr("1250.00 Rs"), 1250},
		{"letters after digits", strPtr("200abc"), 200},
		{"leading dot", strPtr(".5"), 0.5},
		{"trailing dot", strPtr("7."), 7},
		{"exponent", strPtr("1e3"), 1000},
		{"dangling exponent", strPtr("12e"), 12},
		{"plus sign", strPtr("+30"), 30},
		{"sign only", strPtr("-"), 0},
		{"dot only", strPtr("."), 0},
		{"prefix text", strPtr("Rs 500"), 0},
		{"comma grouping stops", strPtr("1,250"), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseAmount(tc.in))
		})
	}
}

func TestAmountOf_Tagged(t *testing.T) {
	assert.False(t, AmountOf("NA").IsSet())
	assert.False(t, AmountOf("").IsSet())
	assert.False(t, AmountOf("x1").IsSet())
	assert.True(t, AmountOf("500/-").IsSet())

	a := AmountOf("0")
	assert.True(t, a.IsSet())
	assert.Equal(t, 0.0, a.Value())
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "500", FormatAmount(500))
	assert.Equal(t, "1250.5", FormatAmount(1250.5))
	assert.Equal(t, "0", FormatAmount(0))
}

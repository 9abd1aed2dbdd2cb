package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRound_HalfUp(t *testing.T) {
	tests := []struct{ in, want string }{
		{"0.125", "0.13"},
		{"0.135", "0.14"},
		{"2.345", "2.35"},
		{"2.344", "2.34"},
		{"10", "10"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.True(t, Round(d(tt.in)).Equal(d(tt.want)), "got %s", Round(d(tt.in)))
		})
	}
}

func TestPercent(t *testing.T) {
	assert.True(t, Percent(d("120.00"), 20).Equal(d("24")))
	assert.True(t, Percent(d("33.33"), 15).Equal(d("4.9995")))
	assert.True(t, Round(Percent(d("33.33"), 15)).Equal(d("5.00")))
}

func TestLineTotalAndFloor(t *testing.T) {
	assert.True(t, LineTotal(d("19.99"), 3).Equal(d("59.97")))
	assert.True(t, FloorZero(d("-1.50")).Equal(decimal.Zero))
	assert.True(t, FloorZero(d("1.50")).Equal(d("1.50")))
}

func TestParse(t *testing.T) {
	v, err := Parse("12.345")
	require.NoError(t, err)
	assert.Equal(t, "12.35", v.StringFixed(2))

	_, err = Parse("abc")
	require.Error(t, err)
}

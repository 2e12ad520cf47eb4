package arith_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/mathsprint/internal/arith"
)

func TestNewFraction_Reduces(t *testing.T) {
	tests := []struct {
		num, den int64
		want     arith.Fraction
	}{
		{6, 8, arith.Fraction{Num: 3, Den: 4}},
		{3, -9, arith.Fraction{Num: -1, Den: 3}},
		{-4, -2, arith.Fraction{Num: 2, Den: 1}},
		{0, 5, arith.Fraction{Num: 0, Den: 1}},
	}
	for _, tt := range tests {
		got, ok := arith.NewFraction(tt.num, tt.den)
		require.True(t, ok)
		assert.Equal(t, tt.want, got, "%d/%d", tt.num, tt.den)
	}

	_, ok := arith.NewFraction(1, 0)
	assert.False(t, ok)
}

func TestFraction_Arithmetic(t *testing.T) {
	third, _ := arith.NewFraction(1, 3)
	half, _ := arith.NewFraction(1, 2)

	sum, ok := third.Add(half)
	require.True(t, ok)
	assert.Equal(t, "5/6", sum.String())
	diff, ok := third.Sub(half)
	require.True(t, ok)
	assert.Equal(t, "-1/6", diff.String())
	prod, ok := third.Mul(half)
	require.True(t, ok)
	assert.Equal(t, "1/6", prod.String())

	q, ok := third.Div(half)
	require.True(t, ok)
	assert.Equal(t, "2/3", q.String())

	_, ok = third.Div(arith.Int(0))
	assert.False(t, ok)

	assert.Equal(t, "-1/3", third.Neg().String())
	assert.True(t, arith.Int(0).IsZero())
}

func TestFraction_EqualsIntIsExact(t *testing.T) {
	// 8 / (3 - 8/3) = 8 / (1/3) = 24
	eightThirds, _ := arith.NewFraction(8, 3)
	denom, ok := arith.Int(3).Sub(eightThirds)
	require.True(t, ok)
	v, ok := arith.Int(8).Div(denom)
	require.True(t, ok)

	assert.True(t, v.EqualsInt(24))
	assert.Equal(t, "24", v.String())

	almost, _ := arith.NewFraction(2399999, 100000)
	assert.False(t, almost.EqualsInt(24))
}

func TestFraction_ReportsOverflow(t *testing.T) {
	big := arith.Int(4294967296)

	_, ok := big.Mul(arith.Int(4294967297))
	assert.False(t, ok)
	_, ok = arith.Int(math.MaxInt64).Add(arith.Int(1))
	assert.False(t, ok)
	_, ok = arith.Int(-math.MaxInt64).Sub(arith.Int(2))
	assert.False(t, ok)

	tiny, _ := arith.NewFraction(1, 4294967296)
	_, ok = tiny.Div(big)
	assert.False(t, ok)
	_, ok = tiny.Add(arith.Fraction{Num: 1, Den: 4294967297})
	assert.False(t, ok)

	_, ok = arith.NewFraction(math.MinInt64, 1)
	assert.False(t, ok)

	v, ok := arith.Int(3037000499).Mul(arith.Int(3037000499))
	require.True(t, ok)
	assert.True(t, v.EqualsInt(9223372030926249001))
	assert.False(t, big.EqualsInt(math.MaxInt64))
}

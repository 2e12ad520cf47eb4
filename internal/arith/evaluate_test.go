package arith_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/mathsprint/internal/arith"
	"github.com/vytor/mathsprint/internal/errors"
)

func TestTokenize(t *testing.T) {
	tokens, err := arith.Tokenize(" 12+(3 *45)/ 6-7 ")
	require.NoError(t, err)
	require.Len(t, tokens, 11)

	assert.Equal(t, arith.TokenNumber, tokens[0].Kind)
	assert.Equal(t, int64(12), tokens[0].Value)
	assert.Equal(t, byte('+'), tokens[1].Op)
	assert.Equal(t, arith.TokenLParen, tokens[2].Kind)
	assert.Equal(t, byte('*'), tokens[4].Op)
	assert.Equal(t, int64(45), tokens[5].Value)
	assert.Equal(t, arith.TokenRParen, tokens[6].Kind)
}

func TestTokenize_RejectsUnknownCharacters(t *testing.T) {
	for _, in := range []string{"8^2", "3.5", "x+1", "2×3", "4!"} {
		_, err := arith.Tokenize(in)
		require.Error(t, err, in)
		assert.True(t, errors.HasCode(err, errors.ErrCodeParse), in)
	}
}

func TestValidateTokens(t *testing.T) {
	valid := []string{"1+2", "(1+2)*3", "-3+27", "2*-3", "((4))", "3--3", "-(8-2)*4"}
	for _, in := range valid {
		tokens, err := arith.Tokenize(in)
		require.NoError(t, err)
		assert.NoError(t, arith.ValidateTokens(tokens), in)
	}

	invalid := []string{"", "1 2", "(1+2)3", "3(4)", "+3", "*3", "3+", "(*3)", "()", "(1+2", "1+2)", ")(", "3/"}
	for _, in := range invalid {
		tokens, err := arith.Tokenize(in)
		require.NoError(t, err)
		err = arith.ValidateTokens(tokens)
		require.Error(t, err, in)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidFormat), in)
	}
}

func TestEvaluate_PrecedenceAndParentheses(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"1+2*3", "7"},
		{"(1+2)*3", "9"},
		{"8-3-2", "3"},
		{"24/4/2", "3"},
		{"1/3+1/6", "1/2"},
		{"-3*-8", "24"},
		{"-(2+2)", "-4"},
		{"10-2*3+4/2", "6"},
	}
	for _, tt := range tests {
		ev, err := arith.Evaluate(tt.expr)
		require.NoError(t, err, tt.expr)
		assert.Equal(t, tt.want, ev.Value.String(), tt.expr)
	}
}

func TestEvaluate_RecordsLiteralsInOrder(t *testing.T) {
	ev, err := arith.Evaluate("(8-3)*(2+1)")
	require.NoError(t, err)
	assert.Equal(t, []int64{8, 3, 2, 1}, ev.Used)
}

func TestEvaluate_DivisionByZero(t *testing.T) {
	for _, expr := range []string{"8/0", "8/(3-3)", "1/(2/4-1/2)"} {
		_, err := arith.Evaluate(expr)
		require.Error(t, err, expr)
		assert.True(t, errors.HasCode(err, errors.ErrCodeDivisionByZero), expr)
	}
}

func TestEvaluateUsing_ClassicPuzzle(t *testing.T) {
	required := []int{8, 8, 3, 3}

	ev, err := arith.EvaluateUsing("8/(3-(8/3))", required)
	require.NoError(t, err)
	assert.True(t, ev.Value.EqualsInt(24))

	_, err = arith.EvaluateUsing("8+8+8", required)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeOperandMismatch))
	assert.Contains(t, err.Error(), "8, 8, 3, 3")

	_, err = arith.EvaluateUsing("8^2", required)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeParse))
}

func TestEvaluateUsing_WellFormedButNotTarget(t *testing.T) {
	ev, err := arith.EvaluateUsing("8+8+3+3", []int{8, 8, 3, 3})
	require.NoError(t, err)
	assert.False(t, ev.Value.EqualsInt(24))
	assert.Equal(t, "22", ev.Value.String())
}

func TestCheckOperands_IsCardinalitySensitive(t *testing.T) {
	assert.NoError(t, arith.CheckOperands([]int64{3, 8, 3, 8}, []int{8, 8, 3, 3}))
	assert.Error(t, arith.CheckOperands([]int64{8, 3, 3}, []int{8, 8, 3, 3}))
	assert.Error(t, arith.CheckOperands([]int64{8, 8, 8, 3}, []int{8, 8, 3, 3}))
	assert.Error(t, arith.CheckOperands([]int64{8, 8, 3, 3, 1}, []int{8, 8, 3, 3}))
}

func TestEvaluate_OverflowIsInvalidFormat(t *testing.T) {
	for _, expr := range []string{
		"4294967296*4294967297",
		"9223372036854775807+1",
		"0-9223372036854775807-2",
		"1/4294967296/4294967297",
	} {
		_, err := arith.Evaluate(expr)
		require.Error(t, err, expr)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidFormat), expr)
	}

	ev, err := arith.Evaluate("3037000499*3037000499")
	require.NoError(t, err)
	assert.Equal(t, "9223372030926249001", ev.Value.String())
}

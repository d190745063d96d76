package symbol_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n3lang/n3c/symbol"
)

func TestConst_IsZeroIsOne(t *testing.T) {
	assert.True(t, symbol.Const(0).IsZero())
	assert.False(t, symbol.Const(0).IsOne())
	assert.True(t, symbol.Const(1).IsOne())
	assert.False(t, symbol.Const(1).IsZero())
	assert.False(t, symbol.Const(7).IsZero())
}

func TestAdd_FoldsConstants(t *testing.T) {
	got := symbol.Const(2).Add(symbol.Const(3))
	assert.True(t, got.Equal(symbol.Const(5)))
}

func TestAdd_IsCommutativeUnderCanonicalForm(t *testing.T) {
	a := symbol.Var("var_Ic")
	b := symbol.Var("ph_N")
	left := a.Add(b)
	right := b.Add(a)
	assert.True(t, left.Equal(right))
}

func TestAdd_ZeroIdentity(t *testing.T) {
	v := symbol.Var("var_Stride")
	assert.True(t, v.Add(symbol.Const(0)).Equal(v))
}

func TestMul_ZeroAbsorbs(t *testing.T) {
	v := symbol.Var("var_Stride")
	assert.True(t, v.Mul(symbol.Const(0)).Equal(symbol.Const(0)))
}

func TestMul_OneIdentity(t *testing.T) {
	v := symbol.Var("var_Stride")
	assert.True(t, v.Mul(symbol.Const(1)).Equal(v))
}

func TestMul_FoldsConstants(t *testing.T) {
	got := symbol.Const(4).Mul(symbol.Const(5))
	assert.True(t, got.Equal(symbol.Const(20)))
}

func TestMul_IsCommutativeUnderCanonicalForm(t *testing.T) {
	a := symbol.Var("var_Ic")
	b := symbol.Const(3)
	assert.True(t, a.Mul(b).Equal(b.Mul(a)))
}

func TestSub_FoldsConstants(t *testing.T) {
	got := symbol.Const(10).Sub(symbol.Const(3))
	assert.True(t, got.Equal(symbol.Const(7)))
}

func TestSub_ZeroRHSIdentity(t *testing.T) {
	v := symbol.Var("var_Kernel")
	assert.True(t, v.Sub(symbol.Const(0)).Equal(v))
}

func TestQuo_DivideByZero(t *testing.T) {
	_, err := symbol.Const(10).Quo(symbol.Const(0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, symbol.ErrDivideByZero))
}

func TestQuo_FoldsConstants(t *testing.T) {
	got, err := symbol.Const(20).Quo(symbol.Const(4))
	require.NoError(t, err)
	assert.True(t, got.Equal(symbol.Const(5)))
}

func TestQuo_OneIdentity(t *testing.T) {
	v := symbol.Var("var_Kernel")
	got, err := v.Quo(symbol.Const(1))
	require.NoError(t, err)
	assert.True(t, got.Equal(v))
}

func TestQuo_SymbolicDivisorStaysSymbolic(t *testing.T) {
	v := symbol.Var("var_Stride")
	got, err := symbol.Const(10).Quo(v)
	require.NoError(t, err)
	assert.False(t, got.Equal(symbol.Const(10)))
}

func TestSubstitute_ReplacesBoundVariable(t *testing.T) {
	expr := symbol.Var("ph_N").Add(symbol.Const(1))
	bound := expr.Substitute(map[string]symbol.Symbol{
		"ph_N": symbol.Const(9),
	})
	assert.True(t, bound.Equal(symbol.Const(10)))
}

func TestSubstitute_LeavesUnboundVariable(t *testing.T) {
	expr := symbol.Var("ph_N").Add(symbol.Const(1))
	result := expr.Substitute(map[string]symbol.Symbol{
		"var_Other": symbol.Const(9),
	})
	assert.False(t, result.Equal(symbol.Const(10)))
}

func TestEval_FixedPointThroughChainedBindings(t *testing.T) {
	// N resolves to M, M resolves to 3: a chain requiring more than one
	// substitution pass before it stabilizes.
	expr := symbol.Var("var_N")
	bindings := map[string]symbol.Symbol{
		"var_N": symbol.Var("var_M"),
		"var_M": symbol.Const(3),
	}
	assert.True(t, expr.Eval(bindings).Equal(symbol.Const(3)))
}

func TestEval_StableWhenNoBindingApplies(t *testing.T) {
	expr := symbol.Var("ph_Unbound")
	got := expr.Eval(map[string]symbol.Symbol{})
	assert.True(t, got.Equal(expr))
}

func TestEqual_DifferentVariablesNotEqual(t *testing.T) {
	assert.False(t, symbol.Var("var_A").Equal(symbol.Var("var_B")))
}

func TestEqual_DifferentKindsNotEqual(t *testing.T) {
	assert.False(t, symbol.Const(1).Equal(symbol.Var("var_A")))
}

func TestString_Deterministic(t *testing.T) {
	a := symbol.Var("var_H").Sub(symbol.Var("var_K"))
	assert.Equal(t, "(var_H - var_K)", a.String())
}

func TestString_ConstRendersDecimal(t *testing.T) {
	assert.Equal(t, "42", symbol.Const(42).String())
}

func TestComplexExpression_ConvOutputDimension(t *testing.T) {
	// (H - K) / S + 1, the canonical conv-output-size formula.
	h := symbol.Var("ph_H")
	k := symbol.Const(3)
	s := symbol.Const(1)

	diff := h.Sub(k)
	quo, err := diff.Quo(s)
	require.NoError(t, err)
	result := quo.Add(symbol.Const(1))

	bound := result.Eval(map[string]symbol.Symbol{"ph_H": symbol.Const(28)})
	assert.True(t, bound.Equal(symbol.Const(26)))
}

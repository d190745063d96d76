package dim

import (
	"testing"

	"github.com/n3lang/n3c/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDim_KeyAndExpr(t *testing.T) {
	k := Key(VariableKey("n"))
	assert.True(t, k.IsKey())
	assert.False(t, k.IsExpr())
	_, ok := k.AsKey()
	assert.True(t, ok)

	e := Expr(symbol.Const(5))
	assert.True(t, e.IsExpr())
	assert.False(t, e.IsKey())
	_, ok = e.AsExpr()
	assert.True(t, ok)
}

func TestDim_Symbol(t *testing.T) {
	k := Key(PlaceholderKey("ic", true))
	assert.Equal(t, "ph_Ic", k.Symbol().String())

	e := Expr(symbol.Const(42))
	assert.Equal(t, "42", e.Symbol().String())
}

func TestDim_Arithmetic(t *testing.T) {
	a := Expr(symbol.Const(2))
	b := Expr(symbol.Const(3))

	assert.Equal(t, "5", a.Add(b).String())
	assert.Equal(t, "6", a.Mul(b).String())
	assert.Equal(t, "-1", a.Sub(b).String())

	q, err := a.Quo(b)
	require.NoError(t, err)
	assert.NotEmpty(t, q.String())

	_, err = a.Quo(Expr(symbol.Const(0)))
	require.Error(t, err)
}

func TestDim_EqualUnder(t *testing.T) {
	ph := Key(PlaceholderKey("n", true))
	bound := Expr(symbol.Const(10))

	bindings := map[string]symbol.Symbol{
		"ph_N": symbol.Const(10),
	}
	assert.True(t, ph.EqualUnder(bound, bindings))
	assert.False(t, ph.EqualUnder(bound, nil))
}

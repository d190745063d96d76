package astjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n3lang/n3c/ast"
)

func TestParseExternStubLinear(t *testing.T) {
	f, err := ParseExternStub("extern [Linear]\n#0 Input = (batch, in_features)\n#1 fixed = (batch, out_features)\n")
	require.NoError(t, err)

	assert.Equal(t, "Linear", f.Model.Name)
	assert.True(t, f.Model.IsExtern)
	require.Len(t, f.Model.Inner.Graph, 2)

	in := f.Model.Inner.Graph[0]
	assert.Equal(t, uint64(0), in.ID)
	require.NotNil(t, in.Shapes)
	require.Len(t, in.Shapes.Args[0].Dims, 2)
	name, ok := in.Shapes.Args[0].Dims[0].IsSemantic()
	require.True(t, ok)
	assert.Equal(t, "batch", name)

	out := f.Model.Inner.Graph[1]
	assert.Equal(t, uint64(1), out.ID)
	assert.Equal(t, "fixed", out.Passes[0].Name)
	require.NotNil(t, out.Shapes)
	name, ok = out.Shapes.Args[0].Dims[1].IsSemantic()
	require.True(t, ok)
	assert.Equal(t, "out_features", name)
}

func TestParseExternStubIdentityHasNoShape(t *testing.T) {
	f, err := ParseExternStub("extern [ReLU]\n#0 Input = (batch, features)\n#1 identity\n")
	require.NoError(t, err)

	out := f.Model.Inner.Graph[1]
	assert.Equal(t, "identity", out.Passes[0].Name)
	assert.Nil(t, out.Shapes)
}

func TestParseExternStubMultiplyChain(t *testing.T) {
	f, err := ParseExternStub("extern [Flatten]\n#0 Input = (batch, channels, height, width)\n#1 fixed = (batch, channels * height * width)\n")
	require.NoError(t, err)

	dim := f.Model.Inner.Graph[1].Shapes.Args[0].Dims[1]
	lhs, rhs, op, ok := dim.IsBinary()
	require.True(t, ok)
	assert.Equal(t, ast.OpMul, op)
	_, lhsIsBinary := func() (ast.DimExpr, bool) { l, _, _, ok := lhs.IsBinary(); return l, ok }()
	assert.True(t, lhsIsBinary, "channels * height * width should associate left: (channels * height) * width")
	name, isSemantic := rhs.IsSemantic()
	require.True(t, isSemantic)
	assert.Equal(t, "width", name)
}

func TestParseExternStubRejectsMalformedHeader(t *testing.T) {
	_, err := ParseExternStub("extern Linear\n#0 Input = (a)\n#1 identity\n")
	assert.Error(t, err)
}

func TestParseExternStubRejectsWrongLineCount(t *testing.T) {
	_, err := ParseExternStub("extern [Linear]\n#0 Input = (a)\n")
	assert.Error(t, err)
}

func TestParseExternStubRejectsWrongNodeID(t *testing.T) {
	_, err := ParseExternStub("extern [Linear]\n#0 Input = (a)\n#2 identity\n")
	assert.Error(t, err)
}

func TestParseExternStubRejectsMalformedShape(t *testing.T) {
	_, err := ParseExternStub("extern [Linear]\n#0 Input = batch\n#1 identity\n")
	assert.Error(t, err)
}

func TestAllEmbeddedStdlibFilesParse(t *testing.T) {
	sources := map[string]string{
		"BatchNorm": "extern [BatchNorm]\n#0 Input = (batch, features)\n#1 identity\n",
		"Dropout":   "extern [Dropout]\n#0 Input = (batch, features)\n#1 identity\n",
		"Softmax":   "extern [Softmax]\n#0 Input = (batch, features)\n#1 identity\n",
		"MaxPool2d": "extern [MaxPool2d]\n#0 Input = (batch, channels, height, width)\n#1 fixed = (batch, channels, pooled_height, pooled_width)\n",
	}
	for name, src := range sources {
		f, err := ParseExternStub(src)
		require.NoErrorf(t, err, "parsing %s", name)
		assert.Equal(t, name, f.Model.Name)
	}
}

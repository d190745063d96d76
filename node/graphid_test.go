package node

import (
	"testing"

	"github.com/n3lang/n3c/dim"
	"github.com/stretchr/testify/assert"
)

func TestGraphId_Sentinels(t *testing.T) {
	assert.True(t, InputID().IsInput())
	assert.False(t, InputID().IsFirst())

	first := NewGraphId(1, 0, 0)
	assert.True(t, first.IsFirst())
	assert.False(t, first.IsInput())
}

func TestGraphId_Compare(t *testing.T) {
	a := NewGraphId(1, 0, 0)
	b := NewGraphId(1, 0, 1)
	c := NewGraphId(1, 1, 0)
	d := NewGraphId(2, 0, 0)

	assert.True(t, a.Less(b))
	assert.True(t, b.Less(c))
	assert.True(t, c.Less(d))
	assert.True(t, a.Equal(NewGraphId(1, 0, 0)))
}

func TestGraphId_IsValidSuccessorOf(t *testing.T) {
	tests := []struct {
		name string
		last GraphId
		next GraphId
		want bool
	}{
		{"repeat increment", NewGraphId(1, 0, 0), NewGraphId(1, 0, 1), true},
		{"pass increment resets repeat", NewGraphId(1, 0, 2), NewGraphId(1, 1, 0), true},
		{"pass increment with nonzero repeat rejected", NewGraphId(1, 0, 2), NewGraphId(1, 1, 1), false},
		{"next node", NewGraphId(1, 2, 3), NewGraphId(2, 0, 0), true},
		{"next node nonzero pass rejected", NewGraphId(1, 0, 0), NewGraphId(2, 1, 0), false},
		{"skip a node rejected", NewGraphId(1, 0, 0), NewGraphId(3, 0, 0), false},
		{"input to first", InputID(), NewGraphId(1, 0, 0), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.next.IsValidSuccessorOf(tt.last))
		})
	}
}

func TestGraphIdArg(t *testing.T) {
	id := NewGraphId(2, 0, 0)

	def := DefaultGraphIdArg(id)
	_, ok := def.Arg()
	assert.False(t, ok)
	assert.Equal(t, "2.0.0", def.String())

	explicit := NewGraphIdArg(id, dim.ArgIndex(3))
	arg, ok := explicit.Arg()
	assert.True(t, ok)
	assert.Equal(t, dim.ArgIndex(3), arg)
	assert.Equal(t, "2.0.0#3", explicit.String())
}

func TestGraphId_String(t *testing.T) {
	assert.Equal(t, "0.0.0", InputID().String())
	assert.Equal(t, "1.0.0", NewGraphId(1, 0, 0).String())
}

package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_IsNewVarAvailable(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  bool
	}{
		{"Fixed(Weak)", FixedState(Weak), false},
		{"Fixed(Full)", FixedState(Full), true},
		{"Required(Weak)", RequiredState(Weak), true},
		{"Required(Full)", RequiredState(Full), false},
		{"Transform", TransformState(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.IsNewVarAvailable())
		})
	}
}

func TestState_ZeroValueIsFixedWeak(t *testing.T) {
	var s State
	assert.True(t, s.IsFixed())
	f, ok := s.Fixedness()
	assert.True(t, ok)
	assert.Equal(t, Weak, f)
	assert.False(t, s.IsNewVarAvailable())
}

func TestAfterAdjust(t *testing.T) {
	assert.Equal(t, FixedState(Weak), AfterAdjust(true))
	assert.Equal(t, FixedState(Full), AfterAdjust(false))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "Fixed(Weak)", FixedState(Weak).String())
	assert.Equal(t, "Fixed(Full)", FixedState(Full).String())
	assert.Equal(t, "Required(Weak)", RequiredState(Weak).String())
	assert.Equal(t, "Required(Full)", RequiredState(Full).String())
	assert.Equal(t, "Transform", TransformState().String())
}

func TestState_TransformHasNoFixedness(t *testing.T) {
	_, ok := TransformState().Fixedness()
	assert.False(t, ok)
}

func TestState_Equal(t *testing.T) {
	assert.True(t, FixedState(Weak).Equal(FixedState(Weak)))
	assert.False(t, FixedState(Weak).Equal(FixedState(Full)))
	assert.False(t, FixedState(Weak).Equal(RequiredState(Weak)))
}

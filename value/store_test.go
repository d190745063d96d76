package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n3lang/n3c/value"
)

func TestStore_AddVariable(t *testing.T) {
	t.Run("fresh insertion", func(t *testing.T) {
		s := value.NewStore()
		ok := s.AddVariable("s", value.NewVariable("stride", value.TypeUInt))
		require.True(t, ok)
		assert.Equal(t, 1, s.Len())

		_, found := s.Get("stride")
		assert.True(t, found)
	})

	t.Run("alias resolves to description", func(t *testing.T) {
		s := value.NewStore()
		s.AddVariable("s", value.NewVariable("stride", value.TypeUInt))

		desc, ok := s.Resolve("", "s")
		require.True(t, ok)
		assert.Equal(t, "stride", desc)
	})

	t.Run("redefinition updates existing value", func(t *testing.T) {
		s := value.NewStore()
		s.AddVariable("", value.NewVariable("stride", value.TypeUInt))

		bound := value.NewBoundVariable("stride", value.TypeUInt, value.UInt(2))
		ok := s.AddVariable("", bound)
		require.True(t, ok)

		got, _ := s.Get("stride")
		val, has := got.Value()
		require.True(t, has)
		u, _ := val.UInt()
		assert.Equal(t, uint64(2), u)
	})

	t.Run("redefinition with incompatible type fails", func(t *testing.T) {
		s := value.NewStore()
		s.AddVariable("", value.NewVariable("stride", value.TypeBool))

		bound := value.NewBoundVariable("stride", value.TypeUInt, value.UInt(2))
		ok := s.AddVariable("", bound)
		assert.False(t, ok)
	})
}

func TestStore_Resolve(t *testing.T) {
	s := value.NewStore()
	s.AddVariable("s", value.NewVariable("stride", value.TypeUInt))

	t.Run("name takes priority", func(t *testing.T) {
		desc, ok := s.Resolve("stride", "anything")
		require.True(t, ok)
		assert.Equal(t, "stride", desc)
	})

	t.Run("falls back to alias", func(t *testing.T) {
		desc, ok := s.Resolve("", "s")
		require.True(t, ok)
		assert.Equal(t, "stride", desc)
	})

	t.Run("alias treated as description if unregistered", func(t *testing.T) {
		desc, ok := s.Resolve("", "stride")
		require.True(t, ok)
		assert.Equal(t, "stride", desc)
	})

	t.Run("unresolvable", func(t *testing.T) {
		_, ok := s.Resolve("", "nonexistent")
		assert.False(t, ok)
	})
}

func TestStore_UpdateVariable(t *testing.T) {
	t.Run("upgrades required type and binds value", func(t *testing.T) {
		s := value.NewStore()
		s.AddVariable("s", value.NewVariable("stride", value.TypeRequired))

		result, ok := s.UpdateVariable("stride", "", value.UInt(2), value.TypeUInt)
		require.True(t, ok)
		assert.Equal(t, "stride", result.Description)
		assert.True(t, result.Upgraded)
		assert.True(t, result.IsUInt)
		assert.Equal(t, uint64(2), result.UIntValue)

		got, _ := s.Get("stride")
		assert.Equal(t, value.TypeUInt, got.Type())
	})

	t.Run("resolves via alias", func(t *testing.T) {
		s := value.NewStore()
		s.AddVariable("s", value.NewVariable("stride", value.TypeRequired))

		result, ok := s.UpdateVariable("", "s", value.UInt(2), value.TypeUInt)
		require.True(t, ok)
		assert.Equal(t, "stride", result.Description)
	})

	t.Run("matching concrete type is not an upgrade", func(t *testing.T) {
		s := value.NewStore()
		s.AddVariable("s", value.NewVariable("stride", value.TypeUInt))

		result, ok := s.UpdateVariable("stride", "", value.UInt(4), value.TypeUInt)
		require.True(t, ok)
		assert.False(t, result.Upgraded)
	})

	t.Run("type mismatch fails", func(t *testing.T) {
		s := value.NewStore()
		s.AddVariable("s", value.NewVariable("stride", value.TypeBool))

		_, ok := s.UpdateVariable("stride", "", value.UInt(4), value.TypeUInt)
		assert.False(t, ok)
	})

	t.Run("unresolvable target fails", func(t *testing.T) {
		s := value.NewStore()
		_, ok := s.UpdateVariable("nonexistent", "", value.UInt(4), value.TypeUInt)
		assert.False(t, ok)
	})

	t.Run("non-uint value does not set IsUInt", func(t *testing.T) {
		s := value.NewStore()
		s.AddVariable("", value.NewVariable("flag", value.TypeRequired))

		result, ok := s.UpdateVariable("flag", "", value.Bool(true), value.TypeBool)
		require.True(t, ok)
		assert.False(t, result.IsUInt)
	})
}

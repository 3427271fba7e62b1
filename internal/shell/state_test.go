package shell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lineshell/internal/commands"
	"lineshell/pkg/shelltypes"
)

func TestState_WriteView(t *testing.T) {
	s := NewState(shelltypes.LevelInfo, nil)

	require.NoError(t, s.WithWrite(func(v *WriteView) error {
		for _, r := range "añb" {
			v.Append(r)
		}
		assert.Equal(t, "añb", v.Input())
		assert.Equal(t, 3, v.Len())

		r, ok := v.Pop()
		assert.True(t, ok)
		assert.Equal(t, 'b', r)
		assert.Equal(t, "añ", v.Input())

		assert.Equal(t, "añ", v.Drain())
		assert.Equal(t, 0, v.Len())

		_, ok = v.Pop()
		assert.False(t, ok)
		return nil
	}))
}

func TestState_ReadView(t *testing.T) {
	s := NewState(shelltypes.LevelWarn, commands.NewRegistry())
	cmd := commands.NewFunc("help", "", "", nil)

	require.NoError(t, s.WithWrite(func(v *WriteView) error {
		v.Register(cmd)
		v.Append('x')
		return nil
	}))

	require.NoError(t, s.WithRead(func(v ReadView) error {
		assert.Equal(t, "x", v.Input())
		assert.Equal(t, shelltypes.LevelWarn, v.Level())
		assert.Same(t, cmd, v.Lookup("help"))
		assert.Nil(t, v.Lookup("missing"))

		name, ok := v.Suggest("hlep")
		assert.True(t, ok)
		assert.Equal(t, "help", name)
		return nil
	}))
}

func TestState_ErrorsPassThrough(t *testing.T) {
	s := NewState(shelltypes.LevelInfo, nil)
	boom := errors.New("boom")

	assert.ErrorIs(t, s.WithRead(func(ReadView) error { return boom }), boom)
	assert.ErrorIs(t, s.WithWrite(func(*WriteView) error { return boom }), boom)
}

func TestState_UnlocksAfterPanic(t *testing.T) {
	s := NewState(shelltypes.LevelInfo, nil)

	assert.Panics(t, func() {
		_ = s.WithWrite(func(*WriteView) error { panic("inside") })
	})

	// The lock was released: both kinds of access still work.
	require.NoError(t, s.WithWrite(func(v *WriteView) error {
		v.Append('a')
		return nil
	}))
	require.NoError(t, s.WithRead(func(v ReadView) error {
		assert.Equal(t, "a", v.Input())
		return nil
	}))
}

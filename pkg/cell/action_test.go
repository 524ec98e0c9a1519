package cell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAction_Call(t *testing.T) {
	ran, enabled := 0, false
	a := Must(NewAction("left", func() { ran++ }, func() bool { return enabled }))

	assert.False(t, a.Active())
	assert.False(t, a.Call())
	require.ErrorIs(t, a.CallStrict(), ErrNotExecutable)
	assert.Equal(t, 0, ran)

	enabled = true
	assert.True(t, a.Call())
	require.NoError(t, a.CallStrict())
	assert.Equal(t, 2, ran)
}

func TestNewAction_Defaults(t *testing.T) {
	a := Must(NewAction("quit", func() {}, nil))
	assert.True(t, a.Active())

	_, err := NewAction("noop", nil, nil)
	require.ErrorIs(t, err, ErrNotExecutable)
	_, err = NewAction("", func() {}, nil)
	require.ErrorIs(t, err, ErrBadName)
}

package cell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainer_AppendAndLookup(t *testing.T) {
	c := Must(NewContainer("root"))
	leaf := Must(NewLeaf("rc1"))
	require.NoError(t, c.Append(leaf))
	assert.True(t, c.Contains("rc1"))
	got, err := c.Child("rc1")
	require.NoError(t, err)
	assert.Same(t, leaf, got)

	err = c.Append(Must(NewInt("rc1", 3)))
	require.ErrorIs(t, err, ErrDuplicateName)
	assert.Equal(t, 1, c.Len())
}

func TestContainer_CaseSensitiveLookup(t *testing.T) {
	c := Must(NewContainer("root", Must(NewLeaf("Name"))))
	assert.False(t, c.Contains("name"))
	_, err := c.Child("name")
	require.ErrorIs(t, err, ErrBadChildLookup)
}

func TestContainer_InsertionOrder(t *testing.T) {
	names := []string{"zeta", "alpha", "mid", "beta"}
	c := Must(NewContainer("root"))
	for _, n := range names {
		require.NoError(t, c.Append(Must(NewLeaf(n))))
	}
	assert.Equal(t, names, c.Keys())
	assert.Equal(t, names, c.Keys())

	values := c.Values()
	values[0] = nil
	assert.NotNil(t, c.Values()[0], "Values must return a copy")
}

func TestNewContainer_InvalidInitialChildren(t *testing.T) {
	_, err := NewContainer("root", Must(NewLeaf("a")), Must(NewLeaf("a")))
	require.ErrorIs(t, err, ErrDuplicateName)

	_, err = NewContainer("root", nil)
	require.ErrorIs(t, err, ErrWrongChildType)

	_, err = NewContainer("")
	require.ErrorIs(t, err, ErrBadName)
}

func TestStrictContainer_ExactKind(t *testing.T) {
	c := Must(NewStrictContainer("ints", KindInt))
	require.NoError(t, c.Append(Must(NewInt("a", 1))))
	err := c.Append(Must(NewFloat("b", 1)))
	require.ErrorIs(t, err, ErrWrongChildType)
	err = c.Append(Must(NewBool("c", true)))
	require.ErrorIs(t, err, ErrWrongChildType)
	assert.Equal(t, 1, c.Len())
}

func TestContainerOf_SubtypeMatch(t *testing.T) {
	c := Must(NewContainerOf[Scalar]("scalars"))
	require.NoError(t, c.Append(Must(NewInt("i", 1))))
	require.NoError(t, c.Append(Must(NewEnum("e", []string{"x"}, "x"))))
	require.NoError(t, c.Append(Must(NewLambda("l", func() any { return nil }))))
	err := c.Append(Must(NewLeaf("leaf")))
	require.ErrorIs(t, err, ErrWrongChildType)
	assert.Contains(t, err.Error(), "Scalar")
}

func TestContainer_GetAccessModes(t *testing.T) {
	p := Must(NewInt("2p1", 1))
	c := Must(NewContainer("lvl2", p, Must(NewContainer("sub"))))

	v, err := c.Get("2p1", AccessValue)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	node, err := c.Get("2p1", AccessNode)
	require.NoError(t, err)
	assert.Same(t, p, node)

	sub, err := c.Get("sub", AccessValue)
	require.NoError(t, err)
	assert.IsType(t, &Container{}, sub)

	_, err = c.Get("missing", AccessValue)
	require.ErrorIs(t, err, ErrBadChildLookup)
}

func TestContainer_SetValue(t *testing.T) {
	c := Must(NewContainer("lvl2", Must(NewInt("2p1", 1)), Must(NewContainer("sub"))))
	require.NoError(t, c.SetValue("2p1", "9"))
	v, _ := c.Get("2p1", AccessValue)
	assert.Equal(t, int64(9), v)

	require.ErrorIs(t, c.SetValue("2p1", "x"), ErrWrongValueKind)
	require.ErrorIs(t, c.SetValue("sub", 1), ErrNotWriteable)
	require.ErrorIs(t, c.SetValue("nope", 1), ErrBadChildLookup)
}

package cell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoUnion(t *testing.T) *Union {
	t.Helper()
	u, err := NewUnion("union", "",
		Branch{Name: "a", Cells: []Cell{Must(NewInt("a1", 2)), Must(NewFloat("a2", 3.4))}},
		Branch{Name: "b", Cells: []Cell{Must(NewString("b1", "asdf"))}},
	)
	require.NoError(t, err)
	return u
}

func TestUnion_VisibleChildren(t *testing.T) {
	u := demoUnion(t)
	assert.Equal(t, "a", u.Selected())
	assert.Equal(t, []string{"a1", "a2", SelectorName}, u.Keys())
	assert.Equal(t, 3, u.Len())
	assert.False(t, u.Contains("b1"))

	require.NoError(t, u.Select("b"))
	assert.Equal(t, []string{"b1", SelectorName}, u.Keys())
	_, err := u.Child("a1")
	require.ErrorIs(t, err, ErrBadChildLookup)

	sel, err := u.Child(SelectorName)
	require.NoError(t, err)
	assert.Same(t, u.Selector(), sel)
	assert.Equal(t, []string{"a", "b"}, u.Branches())
}

func TestUnion_SelectUnknownBranch(t *testing.T) {
	u := demoUnion(t)
	require.ErrorIs(t, u.Select("c"), ErrWrongValueKind)
	assert.Equal(t, "a", u.Selected())
}

func TestUnion_BranchStatePersists(t *testing.T) {
	u := demoUnion(t)
	a1, err := u.Child("a1")
	require.NoError(t, err)
	require.NoError(t, a1.(*Int).Set(99))
	require.NoError(t, u.Append(Must(NewLeaf("extra"))))

	require.NoError(t, u.Selector().Set("b"))
	assert.Equal(t, []string{"b1", SelectorName}, u.Keys())
	require.NoError(t, u.Select("a"))

	assert.Equal(t, []string{"a1", "a2", "extra", SelectorName}, u.Keys())
	again, _ := u.Child("a1")
	v, _ := again.(*Int).Get()
	assert.Equal(t, int64(99), v)
}

func TestUnion_AppendRules(t *testing.T) {
	u := demoUnion(t)
	require.ErrorIs(t, u.Append(Must(NewLeaf(SelectorName))), ErrDuplicateName)
	require.ErrorIs(t, u.Append(Must(NewLeaf("a2"))), ErrDuplicateName)
	require.NoError(t, u.Append(Must(NewLeaf("b1"))), "names only clash within the visible branch")
}

func TestNewUnion_Invalid(t *testing.T) {
	_, err := NewUnion("u", "")
	require.ErrorIs(t, err, ErrBadName)

	_, err = NewUnion("u", "", Branch{Name: "a"}, Branch{Name: "a"})
	require.ErrorIs(t, err, ErrDuplicateName)

	_, err = NewUnion("u", "", Branch{Name: "a", Cells: []Cell{Must(NewLeaf(SelectorName))}})
	require.ErrorIs(t, err, ErrDuplicateName)

	_, err = NewUnion("u", "z", Branch{Name: "a"})
	require.ErrorIs(t, err, ErrWrongValueKind)

	u, err := NewUnion("u", "b", Branch{Name: "a"}, Branch{Name: "b"})
	require.NoError(t, err)
	assert.Equal(t, "b", u.Selected())
}

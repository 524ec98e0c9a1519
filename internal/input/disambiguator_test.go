package input

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/figpie/internal/actions"
	"github.com/oakwood-commons/figpie/internal/navigator"
	"github.com/oakwood-commons/figpie/pkg/cell"
)

type fixture struct {
	state *navigator.State
	reg   *actions.Registry
	d     *Disambiguator
	quit  bool
}

func newFixture(t *testing.T, root *cell.Container) *fixture {
	t.Helper()
	f := &fixture{reg: actions.NewRegistry()}
	f.state = navigator.New(root, f.reg)
	back, err := cell.NewAction("left", func() { _ = f.state.GoPrevious() }, func() bool { return !f.state.InRoot() })
	require.NoError(t, err)
	quit, err := cell.NewAction("quit", func() { f.quit = true }, nil)
	require.NoError(t, err)
	require.NoError(t, f.reg.Add("h", back))
	require.NoError(t, f.reg.Add("Q", quit))
	f.d = New(f.state, f.reg)
	return f
}

func (f *fixture) feed(events ...Event) Result {
	var last Result
	for _, ev := range events {
		last = f.d.Handle(ev)
	}
	return last
}

func leaves(t *testing.T, names ...string) []cell.Cell {
	t.Helper()
	out := make([]cell.Cell, 0, len(names))
	for _, n := range names {
		out = append(out, cell.Must(cell.NewLeaf(n)))
	}
	return out
}

func sampleTree(t *testing.T) *cell.Container {
	t.Helper()
	lvl2 := cell.Must(cell.NewContainer("lvl2",
		cell.Must(cell.NewLeaf("2c1")),
		cell.Must(cell.NewInt("2p1", 1)),
		cell.Must(cell.NewString("2p2", "string")),
		cell.Must(cell.NewEnum("enum prop", []string{"a", "b", "c", "d"}, "a")),
	))
	lvl1 := cell.Must(cell.NewContainer("lvl1", cell.Must(cell.NewLeaf("1c2")), lvl2))
	return cell.Must(cell.NewContainer("root", cell.Must(cell.NewLeaf("rc1")), lvl1))
}

func TestShortcut_ResolvesOnFirstKey(t *testing.T) {
	root := cell.Must(cell.NewContainer("root", leaves(t, "abc", "aardvark", "bee")...))
	f := newFixture(t, root)
	assert.Equal(t, "", f.d.Buffer())

	opts, err := f.state.Options()
	require.NoError(t, err)
	require.Equal(t, "abc", opts[0].Cell.Name())
	key := opts[0].Key

	res := f.d.Handle(Char([]rune(key)[0]))
	assert.Equal(t, EffectNavigate, res.Effect)
	assert.Equal(t, key, res.Key)
	assert.Equal(t, []string{"root", "abc"}, f.state.Path())
	assert.Equal(t, "", f.d.Buffer())
}

func TestNavigateAndBackWithAction(t *testing.T) {
	f := newFixture(t, sampleTree(t))
	// root: rc1 -> r, lvl1 -> l
	res := f.feed(Char('l'))
	assert.Equal(t, EffectNavigate, res.Effect)
	assert.Equal(t, "lvl1", f.state.Current().Name())

	res = f.feed(Char('h'))
	assert.Equal(t, EffectAction, res.Effect)
	assert.True(t, f.state.InRoot())
}

func TestInactiveActionKeyIsUnbound(t *testing.T) {
	root := cell.Must(cell.NewContainer("root", leaves(t, "hat")...))
	f := newFixture(t, root)
	// "h" is reserved even while inactive, so "hat" gets "a"
	opts, err := f.state.Options()
	require.NoError(t, err)
	assert.Equal(t, "a", opts[0].Key)

	res := f.feed(Char('h'))
	assert.Equal(t, EffectCleared, res.Effect)
	assert.Contains(t, f.d.Status(), "no match")
	assert.True(t, f.state.InRoot())
}

func TestZeroMatchClearsImmediately(t *testing.T) {
	f := newFixture(t, sampleTree(t))
	res := f.feed(Char('z'))
	assert.Equal(t, EffectCleared, res.Effect)
	assert.Equal(t, "", f.d.Buffer())
	assert.Equal(t, `no match for "z"`, f.d.Status())

	f.feed(Char('l'))
	assert.Equal(t, "", f.d.Status(), "a new resolution clears the status")
}

func TestPropertyEdit(t *testing.T) {
	f := newFixture(t, sampleTree(t))
	require.NoError(t, f.state.Jump([]string{"lvl1", "lvl2", "2p1"}))

	for _, r := range "4x" {
		assert.Equal(t, EffectPending, f.d.Handle(Char(r)).Effect)
	}
	f.feed(Key(Backspace))
	assert.Equal(t, "4", f.d.Buffer())
	assert.Equal(t, EffectNone, f.d.Handle(Key(Timeout)).Effect, "timeout never resolves an edit")

	res := f.feed(Char('2'), Key(Enter))
	require.NoError(t, res.Err)
	assert.Equal(t, EffectAssign, res.Effect)
	assert.Equal(t, "lvl2", f.state.Current().Name())
	lvl2 := f.state.Current().(*cell.Container)
	v, _ := lvl2.Get("2p1", cell.AccessValue)
	assert.Equal(t, int64(42), v)
	assert.Equal(t, "", f.d.Buffer())
}

func TestPropertyEdit_FailureKeepsValueAndGoesBack(t *testing.T) {
	f := newFixture(t, sampleTree(t))
	require.NoError(t, f.state.Jump([]string{"lvl1", "lvl2", "2p1"}))

	res := f.feed(Char('x'), Key(Enter))
	require.ErrorIs(t, res.Err, cell.ErrWrongValueKind)
	assert.Contains(t, f.d.Status(), "wrong value kind")
	assert.Equal(t, "lvl2", f.state.Current().Name())
	v, _ := f.state.Current().(*cell.Container).Get("2p1", cell.AccessValue)
	assert.Equal(t, int64(1), v)
}

func TestPropertyEdit_EmptyBufferKeepsValue(t *testing.T) {
	f := newFixture(t, sampleTree(t))
	require.NoError(t, f.state.Jump([]string{"lvl1", "lvl2", "2p2"}))
	res := f.feed(Key(Enter))
	require.NoError(t, res.Err)
	v, _ := f.state.Current().(*cell.Container).Get("2p2", cell.AccessValue)
	assert.Equal(t, "string", v)
	assert.Equal(t, "2p2 unchanged", f.d.Status())
}

func TestPropertyEdit_BackspaceOnEmptyBufferClears(t *testing.T) {
	f := newFixture(t, sampleTree(t))
	require.NoError(t, f.state.Jump([]string{"lvl1", "lvl2", "2p2"}))

	assert.Equal(t, EffectPending, f.d.Handle(Key(Backspace)).Effect)
	assert.Equal(t, "enter clears 2p2", f.d.Status())

	res := f.feed(Key(Enter))
	require.NoError(t, res.Err)
	assert.Equal(t, EffectAssign, res.Effect)
	v, _ := f.state.Current().(*cell.Container).Get("2p2", cell.AccessValue)
	assert.Equal(t, "", v)
	assert.Equal(t, "2p2 cleared", f.d.Status())
}

func TestPropertyEdit_TypingDisarmsClear(t *testing.T) {
	f := newFixture(t, sampleTree(t))
	require.NoError(t, f.state.Jump([]string{"lvl1", "lvl2", "2p2"}))

	// backspace arms, typing and deleting a character disarms
	f.feed(Key(Backspace), Char('x'), Key(Backspace), Key(Enter))
	v, _ := f.state.Current().(*cell.Container).Get("2p2", cell.AccessValue)
	assert.Equal(t, "string", v)
	assert.Equal(t, "2p2 unchanged", f.d.Status())
}

func TestPropertyEdit_ClearIntFails(t *testing.T) {
	f := newFixture(t, sampleTree(t))
	require.NoError(t, f.state.Jump([]string{"lvl1", "lvl2", "2p1"}))

	res := f.feed(Key(Backspace), Key(Enter))
	require.ErrorIs(t, res.Err, cell.ErrWrongValueKind)
	v, _ := f.state.Current().(*cell.Container).Get("2p1", cell.AccessValue)
	assert.Equal(t, int64(1), v)
}

func TestPropertyEdit_LeafNotWriteable(t *testing.T) {
	f := newFixture(t, sampleTree(t))
	require.NoError(t, f.state.GoNext("rc1"))
	res := f.feed(Char('1'), Key(Enter))
	require.ErrorIs(t, res.Err, cell.ErrNotWriteable)
	assert.True(t, f.state.InRoot())
}

func TestEscape(t *testing.T) {
	f := newFixture(t, sampleTree(t))
	require.NoError(t, f.state.Jump([]string{"lvl1", "lvl2", "2p2"}))
	f.feed(Char('n'), Char('e'), Char('w'))
	res := f.feed(Key(Escape))
	assert.Equal(t, EffectBack, res.Effect)
	assert.Equal(t, "lvl2", f.state.Current().Name())
	assert.Equal(t, "", f.d.Buffer())
	v, _ := f.state.Current().(*cell.Container).Get("2p2", cell.AccessValue)
	assert.Equal(t, "string", v)

	res = f.feed(Key(Escape))
	assert.Equal(t, EffectCleared, res.Effect)
	assert.Equal(t, "lvl2", f.state.Current().Name(), "escape does not leave a container")
}

func TestEnumChoice(t *testing.T) {
	f := newFixture(t, sampleTree(t))
	require.NoError(t, f.state.Jump([]string{"lvl1", "lvl2", "enum prop"}))
	require.Equal(t, navigator.ModeEnum, f.state.Mode())

	res := f.feed(Char('c'))
	assert.Equal(t, EffectChoose, res.Effect)
	assert.Equal(t, "lvl2", f.state.Current().Name())
	v, _ := f.state.Current().(*cell.Container).Get("enum prop", cell.AccessValue)
	assert.Equal(t, "c", v)
}

func TestAmbiguousPrefix_TimeoutAndEnter(t *testing.T) {
	// "a", "aa", ... all collapse to a, A and then numeric shortcuts 0..10
	names := make([]string, 0, 13)
	for i := 1; i <= 13; i++ {
		names = append(names, strings.Repeat("a", i))
	}
	root := cell.Must(cell.NewContainer("root", leaves(t, names...)...))
	f := newFixture(t, root)
	res := f.feed(Char('1'))
	assert.Equal(t, EffectPending, res.Effect)
	assert.Equal(t, "1", f.d.Buffer())

	res = f.feed(Key(Timeout))
	assert.Equal(t, EffectNavigate, res.Effect)
	assert.Equal(t, "aaaa", f.state.Current().Name())

	require.NoError(t, f.state.GoPrevious())
	f.feed(Char('1'))
	res = f.feed(Char('0'))
	assert.Equal(t, EffectNavigate, res.Effect)
	assert.Equal(t, strings.Repeat("a", 13), f.state.Current().Name())

	require.NoError(t, f.state.GoPrevious())
	f.feed(Char('1'))
	res = f.feed(Key(Enter))
	assert.Equal(t, EffectNavigate, res.Effect)
	assert.Equal(t, "aaaa", f.state.Current().Name())
}

func TestEnterWithoutExactMatchClears(t *testing.T) {
	f := newFixture(t, sampleTree(t))
	res := f.feed(Key(Enter))
	assert.Equal(t, EffectCleared, res.Effect)
	assert.True(t, f.state.InRoot())
	assert.Equal(t, EffectNone, f.d.Handle(Key(Timeout)).Effect)
}

func TestActionMode(t *testing.T) {
	calls := 0
	act := cell.Must(cell.NewAction("reset", func() { calls++ }, nil))
	root := cell.Must(cell.NewContainer("root", act))
	f := newFixture(t, root)

	res := f.feed(Char('r'))
	require.Equal(t, EffectNavigate, res.Effect)
	assert.Equal(t, navigator.ModeAction, f.state.Mode())

	res = f.feed(Key(Enter))
	assert.Equal(t, EffectAction, res.Effect)
	assert.Equal(t, 1, calls)
	assert.True(t, f.state.InRoot())

	f.feed(Char('r'))
	res = f.feed(Key(Escape))
	assert.Equal(t, EffectBack, res.Effect)
	assert.Equal(t, 1, calls)
}

func TestQuitAction(t *testing.T) {
	f := newFixture(t, sampleTree(t))
	res := f.feed(Char('Q'))
	assert.Equal(t, EffectAction, res.Effect)
	assert.True(t, f.quit)
}

func TestEventString(t *testing.T) {
	assert.Equal(t, `Char('x')`, Char('x').String())
	assert.Equal(t, "ESCAPE", Key(Escape).String())
	assert.Len(t, Text("abc"), 3)
}

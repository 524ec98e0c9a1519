package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/figpie/internal/config"
	"github.com/oakwood-commons/figpie/internal/navigator"
	"github.com/oakwood-commons/figpie/pkg/cell"
	"github.com/oakwood-commons/figpie/pkg/loader"
)

func TestRenderSnapshot_Root(t *testing.T) {
	m := newTestModel(t, loader.Demo())
	out := RenderSnapshot(m)

	assert.Contains(t, out, "root")
	assert.Contains(t, out, titleOptions)
	assert.Contains(t, out, "[r]c1")
	assert.Contains(t, out, "[l]ambda")
	assert.Contains(t, out, "l[v]l1")
	assert.Contains(t, out, "{2}", "lvl1 shows its child count")
	assert.Contains(t, out, ">>> ")
	assert.Contains(t, out, "Q quit")
	assert.NotContains(t, out, "h back", "back is inactive at the root")
	assert.NotContains(t, out, "\x1b[", "no color mode strips escapes")
}

func TestRenderSnapshot_Lines(t *testing.T) {
	m := newTestModel(t, loader.Demo())
	lines := strings.Split(RenderSnapshot(m), "\n")
	require.NotEmpty(t, lines)
	for _, l := range lines {
		assert.LessOrEqual(t, len([]rune(l)), 80, "line %q is wider than the window", l)
	}
	assert.Equal(t, "Q quit", strings.TrimSpace(lines[len(lines)-1]))
}

func TestRenderSnapshot_Nested(t *testing.T) {
	m := newTestModel(t, loader.Demo())
	ApplyStartupKeys(m, []string{"vl"})
	out := RenderSnapshot(m)

	assert.Contains(t, out, "root / lvl1 / lvl2")
	assert.Contains(t, out, "[f]loat prop")
	assert.Contains(t, out, "5.2")
	assert.Contains(t, out, "[u]nion")
	assert.Contains(t, out, "h back")
}

func TestRenderSnapshot_PropertyMode(t *testing.T) {
	m := newTestModel(t, loader.Demo())
	ApplyStartupKeys(m, []string{"vlf", "12"})
	out := RenderSnapshot(m)

	assert.Contains(t, out, titleEdit)
	assert.Contains(t, out, ">>")
	assert.Contains(t, out, "float prop")
	assert.Contains(t, out, ">>> 12")
}

func TestRenderSnapshot_EnumMarksCurrent(t *testing.T) {
	m := newTestModel(t, loader.Demo())
	ApplyStartupKeys(m, []string{"vle"})
	require.Equal(t, navigator.ModeEnum, m.Menu().State().Mode())
	out := RenderSnapshot(m)

	var marked []string
	for _, l := range strings.Split(out, "\n") {
		if strings.HasSuffix(strings.TrimSpace(l), "*") {
			marked = append(marked, l)
		}
	}
	require.Len(t, marked, 1)
	assert.Contains(t, marked[0], "[a]")
}

func TestRenderSnapshot_ActionModeHasNoBody(t *testing.T) {
	act := cell.Must(cell.NewAction("reset", func() {}, nil))
	m := newTestModel(t, cell.Must(cell.NewContainer("root", act)))
	ApplyStartupKeys(m, []string{"r"})
	out := RenderSnapshot(m)

	assert.Contains(t, out, titleAction)
	assert.NotContains(t, out, "type")
}

func TestRenderSnapshot_ErrorStatus(t *testing.T) {
	m := newTestModel(t, loader.Demo())
	ApplyStartupKeys(m, []string{"vli", "abc<enter>"})
	assert.Error(t, m.last.Err)
	assert.Contains(t, RenderSnapshot(m), "cannot convert")
}

func TestRenderSnapshot_Color(t *testing.T) {
	mn := newTestModel(t, loader.Demo()).Menu()
	m := NewModel(mn, Options{Width: 80, Height: 24})
	out := RenderSnapshot(m)
	assert.Contains(t, out, "\x1b[")
}

func TestHighlightShortcut(t *testing.T) {
	tests := []struct {
		name, key string
		mode      navigator.Mode
		want      string
	}{
		{name: "float prop", key: "f", mode: navigator.ModeContainer, want: "[f]loat prop"},
		{name: "2p2", key: "P", mode: navigator.ModeContainer, want: "[P]: 2p2"},
		{name: "aaaa", key: "1", mode: navigator.ModeContainer, want: "[1]: aaaa"},
		{name: "b", key: "b", mode: navigator.ModeEnum, want: "[b]"},
		{name: "x", key: ">>", mode: navigator.ModeProperty, want: "x"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, highlightShortcut(tt.name, tt.key, tt.mode))
		})
	}
}

func TestThemeFromConfig(t *testing.T) {
	base := fallbackTheme()
	th := ThemeFromConfig(config.ThemeConfig{Key: "#ff0000", Error: " "}, base)
	assert.NotEqual(t, base.Key, th.Key)
	assert.Equal(t, base.Error, th.Error)
	assert.Equal(t, base.Value, th.Value)
}

func TestDefaultThemeMatchesEmbeddedConfig(t *testing.T) {
	th := DefaultTheme()
	fb := fallbackTheme()
	assert.Equal(t, fb.Key, th.Key)
	assert.Equal(t, fb.Error, th.Error)
}

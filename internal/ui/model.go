// Package ui is the terminal front end: a bubbletea program that turns key
// presses and ticks into menu events and renders each frame.
package ui

import (
	"time"
	"unicode"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/figpie/internal/input"
	"github.com/oakwood-commons/figpie/pkg/menu"
)

// Options configures a Model.
type Options struct {
	Theme   Theme
	Tick    time.Duration
	NoColor bool
	Width   int
	Height  int
	Log     logr.Logger
}

// Model adapts a menu to bubbletea.
type Model struct {
	menu    *menu.Menu
	theme   Theme
	styles  styles
	tick    time.Duration
	noColor bool
	width   int
	height  int
	log     logr.Logger

	// keySeen is set by a key press and reset by every tick. A tick that
	// finds it unset delivers TIMEOUT.
	keySeen bool
	last    input.Result
}

// tickMsg marks the end of one input interval.
type tickMsg time.Time

// timeoutMsg delivers TIMEOUT immediately; startup keys use it.
type timeoutMsg struct{}

// NewModel creates a model over mn. Zero options fall back to the defaults.
func NewModel(mn *menu.Menu, opts Options) *Model {
	if opts.Tick <= 0 {
		opts.Tick = 750 * time.Millisecond
	}
	if opts.Theme.Accent == nil {
		opts.Theme = DefaultTheme()
	}
	if opts.Log.GetSink() == nil {
		opts.Log = logr.Discard()
	}
	return &Model{
		menu:    mn,
		theme:   opts.Theme,
		styles:  newStyles(opts.Theme),
		tick:    opts.Tick,
		noColor: opts.NoColor,
		width:   opts.Width,
		height:  opts.Height,
		log:     opts.Log,
	}
}

// Menu returns the driven menu.
func (m *Model) Menu() *menu.Menu { return m.menu }

func (m *Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var next tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		ev, ok := eventFromKey(msg)
		if !ok {
			return m, nil
		}
		m.keySeen = true
		m.handle(ev)
	case tickMsg:
		if !m.keySeen {
			m.handle(input.Key(input.Timeout))
		}
		m.keySeen = false
		next = m.tickCmd()
	case timeoutMsg:
		m.handle(input.Key(input.Timeout))
	}
	if m.menu.Quit() {
		return m, tea.Quit
	}
	return m, next
}

func (m *Model) handle(ev input.Event) {
	m.last = m.menu.Handle(ev)
	if m.last.Effect != input.EffectNone {
		m.log.V(2).Info("event", "event", ev.String(), "effect", string(m.last.Effect), "key", m.last.Key)
	}
}

func (m *Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// eventFromKey maps a key press to a menu event. Keys with no menu meaning
// report false.
func eventFromKey(msg tea.KeyPressMsg) (input.Event, bool) {
	switch msg.String() {
	case "enter":
		return input.Key(input.Enter), true
	case "esc":
		return input.Key(input.Escape), true
	case "backspace":
		return input.Key(input.Backspace), true
	case "space":
		return input.Char(' '), true
	}
	if utf8.RuneCountInString(msg.Text) != 1 {
		return input.Event{}, false
	}
	r, _ := utf8.DecodeRuneInString(msg.Text)
	if !unicode.IsPrint(r) {
		return input.Event{}, false
	}
	return input.Char(r), true
}

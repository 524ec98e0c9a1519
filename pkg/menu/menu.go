// Package menu wires a cell tree to the navigation state, the reserved
// action keys and the input disambiguator. It is what a front end drives:
// feed it one event per tick and render its Frame.
package menu

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/figpie/internal/actions"
	"github.com/oakwood-commons/figpie/internal/input"
	"github.com/oakwood-commons/figpie/internal/navigator"
	"github.com/oakwood-commons/figpie/pkg/cell"
	"github.com/oakwood-commons/figpie/pkg/loader"
)

// Default reserved keys. WithBackKey and WithQuitKey change them.
const (
	DefaultBackKey = "h"
	DefaultQuitKey = "Q"
	// PropertyMarker is the fixed key shown next to the node being edited.
	PropertyMarker = ">>"
)

// Entry is one body line of a frame.
type Entry struct {
	Key  string
	Cell cell.Cell
}

// Frame is everything a renderer needs for one tick.
type Frame struct {
	Path    []string
	Mode    Mode
	Entries []Entry
	Actions []Binding
	Buffer  string
	Status  string
}

type binding struct {
	key    string
	action *cell.Action
}

type config struct {
	backKey  string
	quitKey  string
	log      logr.Logger
	extra    []binding
	declared []loader.Declared
}

// Option configures a Menu.
type Option func(*config)

// WithAction binds an extra action to key.
func WithAction(key string, action *cell.Action) Option {
	return func(c *config) { c.extra = append(c.extra, binding{key: key, action: action}) }
}

// WithDeclared binds actions declared in a tree file.
func WithDeclared(declared ...loader.Declared) Option {
	return func(c *config) { c.declared = append(c.declared, declared...) }
}

// WithLogger sets the logger for menu and input traces. Declared actions
// log at info level when they run. The default discards.
func WithLogger(log logr.Logger) Option {
	return func(c *config) { c.log = log }
}

// WithBackKey changes the key of the built-in back action.
func WithBackKey(key string) Option {
	return func(c *config) { c.backKey = key }
}

// WithQuitKey changes the key of the built-in quit action.
func WithQuitKey(key string) Option {
	return func(c *config) { c.quitKey = key }
}

// Menu is the interactive session over one tree.
type Menu struct {
	registry *actions.Registry
	state    *navigator.State
	input    *input.Disambiguator
	log      logr.Logger
	quit     bool
}

// New builds a menu over root. The back action is active below the root;
// quit is always active. Key collisions among actions fail.
func New(root *cell.Container, opts ...Option) (*Menu, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: nil root", cell.ErrWrongChildType)
	}
	cfg := config{backKey: DefaultBackKey, quitKey: DefaultQuitKey, log: logr.Discard()}
	for _, opt := range opts {
		opt(&cfg)
	}

	m := &Menu{registry: actions.NewRegistry(), log: cfg.log}
	m.state = navigator.New(root, m.registry)
	m.input = input.New(m.state, m.registry, input.WithLogger(cfg.log.WithName("input")))

	back, err := cell.NewAction("back", func() { _ = m.state.GoPrevious() }, func() bool { return !m.state.InRoot() })
	if err != nil {
		return nil, err
	}
	quit, err := cell.NewAction("quit", func() { m.quit = true }, nil)
	if err != nil {
		return nil, err
	}
	bindings := append([]binding{{cfg.backKey, back}, {cfg.quitKey, quit}}, cfg.extra...)
	for _, d := range cfg.declared {
		a, err := m.declaredAction(d)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, binding{d.Key, a})
	}
	for _, b := range bindings {
		if err := m.registry.Add(b.key, b.action); err != nil {
			return nil, fmt.Errorf("action %q: %w", b.key, err)
		}
	}
	return m, nil
}

func (m *Menu) declaredAction(d loader.Declared) (*cell.Action, error) {
	message := d.Message
	if message == "" {
		message = d.Name
	}
	return cell.NewAction(d.Name,
		func() {
			m.input.SetStatus(message)
			m.log.Info("declared action", "key", d.Key, "name", d.Name, "path", navigator.FormatPath(m.state.Path()))
		},
		func() bool { return d.Active(m.Vars()) },
	)
}

// Vars exposes the navigation state to CEL predicates.
func (m *Menu) Vars() Vars {
	return Vars{
		Path:  m.state.Path(),
		Depth: m.state.Depth(),
		Mode:  string(m.state.Mode()),
	}
}

// Handle feeds one tick's event.
func (m *Menu) Handle(ev Event) Result {
	res := m.input.Handle(ev)
	if res.Err != nil {
		m.log.V(1).Info("warning", "error", res.Err.Error(), "event", ev.String())
	}
	return res
}

// Frame computes the render payload for the current state.
func (m *Menu) Frame() Frame {
	f := Frame{
		Path:    m.state.Path(),
		Mode:    m.state.Mode(),
		Actions: m.registry.Active(),
		Buffer:  m.input.Buffer(),
		Status:  m.input.Status(),
	}
	switch f.Mode {
	case navigator.ModeContainer, navigator.ModeEnum:
		opts, err := m.state.Options()
		if err != nil {
			break
		}
		for _, o := range opts {
			f.Entries = append(f.Entries, Entry{Key: o.Key, Cell: o.Cell})
		}
	case navigator.ModeProperty:
		f.Entries = []Entry{{Key: PropertyMarker, Cell: m.state.Current()}}
	}
	return f
}

// Notify replaces the status line.
func (m *Menu) Notify(status string) { m.input.SetStatus(status) }

// Quit reports whether the quit action ran.
func (m *Menu) Quit() bool { return m.quit }

// State returns the navigation state.
func (m *Menu) State() *State { return m.state }

// Registry returns the action registry.
func (m *Menu) Registry() *Registry { return m.registry }

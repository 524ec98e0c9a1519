// Package tui runs a figpie menu as a Bubble Tea program so host
// applications can embed the terminal interface without the CLI.
package tui

import (
	"fmt"
	"os"
	"strconv"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"
	"golang.org/x/term"

	"github.com/oakwood-commons/figpie/internal/config"
	"github.com/oakwood-commons/figpie/internal/navigator"
	"github.com/oakwood-commons/figpie/internal/ui"
	"github.com/oakwood-commons/figpie/pkg/cell"
	"github.com/oakwood-commons/figpie/pkg/menu"
	"github.com/oakwood-commons/figpie/pkg/settings"
)

// ThemeConfig holds 256-color palette indexes or hex colors for the UI.
type ThemeConfig = config.ThemeConfig

// Config holds host-provided settings for running the menu.
type Config struct {
	Width   int // 0 means use the terminal size
	Height  int
	NoColor bool
	Tick    time.Duration
	Theme   *ThemeConfig
	// StartPath is a dotted path below the root, e.g. lvl1.lvl2["float prop"].
	StartPath string
	// StartKeys are replayed before the first frame. See ui.StartupMsgs.
	StartKeys []string
	Menu      []menu.Option
	Log       logr.Logger
}

// DefaultConfig returns the settings the CLI uses without a config file.
// When the embedded defaults cannot be read, the built-in menu keys, theme
// and tick are used.
func DefaultConfig() Config {
	d, err := config.Default()
	if err != nil {
		return Config{Tick: settings.DefaultTick, Log: logr.Discard()}
	}
	theme := d.UI.Theme
	return Config{
		NoColor: d.UI.NoColor,
		Tick:    d.UI.Tick,
		Theme:   &theme,
		Menu:    []menu.Option{menu.WithBackKey(d.Keys.Back), menu.WithQuitKey(d.Keys.Quit)},
		Log:     logr.Discard(),
	}
}

// Program is a menu bound to its Bubble Tea model.
type Program struct {
	menu  *menu.Menu
	model *ui.Model
}

// New builds the menu over root, moves to cfg.StartPath and replays
// cfg.StartKeys.
func New(root *cell.Container, cfg Config) (*Program, error) {
	log := cfg.Log
	opts := append([]menu.Option{menu.WithLogger(log)}, cfg.Menu...)
	mn, err := menu.New(root, opts...)
	if err != nil {
		return nil, err
	}
	if cfg.StartPath != "" {
		if err := mn.State().Jump(navigator.ParsePath(cfg.StartPath)); err != nil {
			return nil, fmt.Errorf("start path %q: %w", cfg.StartPath, err)
		}
	}

	theme := ui.DefaultTheme()
	if cfg.Theme != nil {
		theme = ui.ThemeFromConfig(*cfg.Theme, theme)
	}
	model := ui.NewModel(mn, ui.Options{
		Theme:   theme,
		Tick:    cfg.Tick,
		NoColor: cfg.NoColor,
		Width:   cfg.Width,
		Height:  cfg.Height,
		Log:     log.WithName("ui"),
	})
	ui.ApplyStartupKeys(model, cfg.StartKeys)
	return &Program{menu: mn, model: model}, nil
}

// Menu returns the underlying menu for inspection after the program ends.
func (p *Program) Menu() *menu.Menu { return p.menu }

// Model returns the Bubble Tea model.
func (p *Program) Model() tea.Model { return p.model }

// Snapshot renders the current frame without starting a program.
func (p *Program) Snapshot() string { return ui.RenderSnapshot(p.model) }

// Run blocks until the user quits. It returns at once when the start keys
// already quit the menu.
func (p *Program) Run(opts ...tea.ProgramOption) error {
	if p.menu.Quit() {
		return nil
	}
	return ui.Run(p.model, opts...)
}

// Run builds a Program over root and runs it.
func Run(root *cell.Container, cfg Config, opts ...tea.ProgramOption) error {
	p, err := New(root, cfg)
	if err != nil {
		return err
	}
	return p.Run(opts...)
}

// DetectTerminalSize probes stdout, stderr and stdin, then $COLUMNS. Zero
// means unknown.
func DetectTerminalSize() (width int, height int) {
	for _, fd := range []uintptr{os.Stdout.Fd(), os.Stderr.Fd(), os.Stdin.Fd()} {
		if w, h, err := term.GetSize(int(fd)); err == nil && (w > 0 || h > 0) {
			return w, h
		}
	}
	if col := os.Getenv("COLUMNS"); col != "" {
		if w, err := strconv.Atoi(col); err == nil && w > 0 {
			return w, 0
		}
	}
	return 0, 0
}

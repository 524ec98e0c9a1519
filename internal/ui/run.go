package ui

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"
)

// Run starts the interactive program and blocks until the menu quits.
func Run(m *Model, opts ...tea.ProgramOption) error {
	if m.width <= 0 || m.height <= 0 {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
			opts = append(opts, tea.WithWindowSize(w, h))
		}
	}
	p := tea.NewProgram(m, opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// RenderSnapshot renders the current frame to a string without starting a
// program. Width and height come from the model, then the terminal, then
// 80x24.
func RenderSnapshot(m *Model) string {
	if m.width <= 0 || m.height <= 0 {
		m.width, m.height = defaultWidth, defaultHeight
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
			m.width, m.height = w, h
		}
	}
	return m.render()
}

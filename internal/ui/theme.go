package ui

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/figpie/internal/config"
)

// Theme defines the colors used by the menu view.
type Theme struct {
	Accent   color.Color // current path segment and title
	Key      color.Color // shortcut keys
	Value    color.Color // property values
	Dim      color.Color // parent path segments and type column
	Status   color.Color // normal status text
	Error    color.Color // status text after a failed edit
	Success  color.Color // status text after an assignment
	Footer   color.Color // prompt and action hints
	HeaderBG color.Color
}

// DefaultTheme returns the palette from the embedded configuration, or the
// built-in fallback when it cannot be read.
func DefaultTheme() Theme {
	cfg, err := config.Default()
	if err != nil {
		return fallbackTheme()
	}
	return ThemeFromConfig(cfg.UI.Theme, fallbackTheme())
}

func fallbackTheme() Theme {
	return Theme{
		Accent:   lipgloss.Color("81"),  // cyan title
		Key:      lipgloss.Color("81"),  // cyan keys for contrast
		Value:    lipgloss.Color("246"), // muted gray values
		Dim:      lipgloss.Color("244"),
		Status:   lipgloss.Color("81"),
		Error:    lipgloss.Color("203"), // softer red
		Success:  lipgloss.Color("114"), // mint
		Footer:   lipgloss.Color("244"),
		HeaderBG: lipgloss.Color("236"), // charcoal
	}
}

// ThemeFromConfig overlays the non-empty colors of tc on base.
func ThemeFromConfig(tc config.ThemeConfig, base Theme) Theme {
	t := base
	set := func(dst *color.Color, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	set(&t.Accent, tc.Accent)
	set(&t.Key, tc.Key)
	set(&t.Value, tc.Value)
	set(&t.Dim, tc.Dim)
	set(&t.Status, tc.Status)
	set(&t.Error, tc.Error)
	set(&t.Success, tc.Success)
	set(&t.Footer, tc.Footer)
	set(&t.HeaderBG, tc.HeaderBG)
	return t
}

type styles struct {
	pathDim   lipgloss.Style
	pathLast  lipgloss.Style
	title     lipgloss.Style
	key       lipgloss.Style
	keyInName lipgloss.Style
	kind      lipgloss.Style
	name      lipgloss.Style
	value     lipgloss.Style
	status    lipgloss.Style
	statusErr lipgloss.Style
	statusOK  lipgloss.Style
	footer    lipgloss.Style
	prompt    lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		pathDim:   lipgloss.NewStyle().Foreground(t.Dim),
		pathLast:  lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		title:     lipgloss.NewStyle().Foreground(t.Accent),
		key:       lipgloss.NewStyle().Foreground(t.Key).Bold(true),
		keyInName: lipgloss.NewStyle().Foreground(t.Key).Bold(true).Underline(true),
		kind:      lipgloss.NewStyle().Foreground(t.Dim),
		name:      lipgloss.NewStyle(),
		value:     lipgloss.NewStyle().Foreground(t.Value),
		status:    lipgloss.NewStyle().Foreground(t.Status),
		statusErr: lipgloss.NewStyle().Foreground(t.Error),
		statusOK:  lipgloss.NewStyle().Foreground(t.Success),
		footer:    lipgloss.NewStyle().Foreground(t.Footer),
		prompt:    lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
	}
}

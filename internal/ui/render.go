package ui

import (
	"fmt"
	"strings"

	bubtable "charm.land/bubbles/v2/table"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/figpie/internal/input"
	"github.com/oakwood-commons/figpie/internal/navigator"
	"github.com/oakwood-commons/figpie/pkg/cell"
	"github.com/oakwood-commons/figpie/pkg/menu"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	minValueWidth = 8
	// header, title, table header and border, separator, status, prompt, hints
	chromeLines = 8
)

const (
	titleOptions = "~~~< options >~~~"
	titleEdit    = "~~~< edit >~~~"
	titleAction  = "~~~< action >~~~"
)

// render draws one frame: header, title, body and footer.
func (m *Model) render() string {
	f := m.menu.Frame()
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	height := m.height
	if height <= 0 {
		height = defaultHeight
	}

	var b strings.Builder
	b.WriteString(m.renderHeader(f.Path, width))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, m.styles.title.Render(title(f.Mode))))
	b.WriteString("\n")
	if body := m.renderBody(f, width, height-chromeLines); body != "" {
		b.WriteString(body)
		b.WriteString("\n")
	}
	b.WriteString(m.renderFooter(f, width))

	out := b.String()
	if m.noColor {
		out = ansi.Strip(out)
	}
	return out
}

func title(mode navigator.Mode) string {
	switch mode {
	case navigator.ModeProperty:
		return titleEdit
	case navigator.ModeAction:
		return titleAction
	default:
		return titleOptions
	}
}

// renderHeader shows the parent path dimmed and the current node in bold.
func (m *Model) renderHeader(path []string, width int) string {
	names := path
	if len(names) == 0 {
		names = []string{m.menu.State().Root().Name()}
	}
	last := names[len(names)-1]
	var parents string
	if len(names) > 1 {
		parents = strings.Join(names[:len(names)-1], " / ") + " / "
	}
	plain := parents + last
	if runewidth.StringWidth(plain) > width {
		// keep the tail, the current node matters most
		parents = runewidth.TruncateLeft(parents, runewidth.StringWidth(plain)-width+1, "…")
	}
	line := m.styles.pathDim.Render(parents) + m.styles.pathLast.Render(last)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
}

// renderBody lays the frame entries out in a table of key, type, name and
// value columns. maxRows bounds the visible rows.
func (m *Model) renderBody(f menu.Frame, width, maxRows int) string {
	if len(f.Entries) == 0 {
		return ""
	}
	var current string
	if f.Mode == navigator.ModeEnum {
		if s, ok := m.menu.State().Current().(cell.Scalar); ok {
			if v, err := s.Value(); err == nil {
				current = fmt.Sprint(v)
			}
		}
	}

	rows := make([][]string, 0, len(f.Entries))
	for _, e := range f.Entries {
		rows = append(rows, []string{
			e.Key,
			string(e.Cell.Kind()),
			highlightShortcut(e.Cell.Name(), e.Key, f.Mode),
			valueText(e.Cell, f.Mode, current),
		})
	}

	headers := []string{"key", "type", "name", "value"}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, r := range rows {
		for i := 0; i < 3; i++ {
			widths[i] = max(widths[i], runewidth.StringWidth(r[i]))
		}
	}
	// Each column renders one space of right padding.
	widths[3] = max(minValueWidth, width-widths[0]-widths[1]-widths[2]-len(headers))

	tableRows := make([]bubtable.Row, len(rows))
	for i, r := range rows {
		row := make(bubtable.Row, len(r))
		for j, v := range r {
			row[j] = padToWidth(truncate(v, widths[j]), widths[j])
		}
		tableRows[i] = row
	}
	columns := make([]bubtable.Column, len(headers))
	for i, h := range headers {
		columns[i] = bubtable.Column{Title: h, Width: widths[i]}
	}

	visible := len(tableRows)
	if maxRows > 0 && visible > maxRows {
		visible = maxRows
	}
	t := bubtable.New(
		bubtable.WithColumns(columns),
		bubtable.WithRows(tableRows),
		bubtable.WithHeight(visible+2),
		bubtable.WithWidth(width),
	)
	t.SetStyles(m.tableStyles())
	return t.View()
}

func (m *Model) tableStyles() bubtable.Styles {
	s := bubtable.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Bold(true).
		Align(lipgloss.Left).
		PaddingLeft(0).
		PaddingRight(1)
	cellStyle := lipgloss.NewStyle().
		Align(lipgloss.Left).
		PaddingLeft(0).
		PaddingRight(1)
	// No row is selected in a shortcut menu.
	s.Selected = cellStyle
	s.Cell = cellStyle
	if m.noColor {
		s.Header = s.Header.UnsetForeground().UnsetBackground()
	} else {
		s.Header = s.Header.
			Foreground(m.theme.Accent).
			BorderForeground(m.theme.Dim)
		s.Cell = s.Cell.Foreground(m.theme.Value)
		s.Selected = s.Cell
	}
	return s
}

// highlightShortcut marks the first occurrence of key inside name. Keys that
// do not occur in the name are shown as a prefix.
func highlightShortcut(name, key string, mode navigator.Mode) string {
	if mode == navigator.ModeProperty || key == "" {
		return name
	}
	if i := strings.Index(name, key); i >= 0 {
		return name[:i] + "[" + key + "]" + name[i+len(key):]
	}
	return "[" + key + "]: " + name
}

func valueText(c cell.Cell, mode navigator.Mode, current string) string {
	if mode == navigator.ModeEnum {
		if c.Name() == current {
			return "*"
		}
		return ""
	}
	switch n := c.(type) {
	case *cell.Action:
		if n.Active() {
			return "()"
		}
		return "(inactive)"
	case *cell.Union:
		return n.Selected()
	case cell.Scalar:
		if !n.Readable() {
			return "<write-only>"
		}
		v, err := n.Value()
		if err != nil {
			return "<" + err.Error() + ">"
		}
		return fmt.Sprint(v)
	case cell.Parent:
		return fmt.Sprintf("{%d}", n.Len())
	}
	return ""
}

// renderFooter draws the status line, the prompt and the active action keys.
func (m *Model) renderFooter(f menu.Frame, width int) string {
	var b strings.Builder
	b.WriteString(m.styles.footer.Render(strings.Repeat("─", width)))
	b.WriteString("\n")

	statusStyle := m.styles.status
	switch {
	case m.last.Err != nil:
		statusStyle = m.styles.statusErr
	case m.last.Effect == input.EffectAssign:
		statusStyle = m.styles.statusOK
	}
	b.WriteString(statusStyle.Render(truncate(f.Status, width)))
	b.WriteString("\n")

	b.WriteString(m.styles.prompt.Render(">>> "))
	b.WriteString(f.Buffer)
	b.WriteString("\n")

	hints := make([]string, 0, len(f.Actions))
	for _, a := range f.Actions {
		hints = append(hints, m.styles.key.Render(a.Key)+" "+m.styles.footer.Render(a.Action.Name()))
	}
	b.WriteString(strings.Join(hints, m.styles.footer.Render("  ·  ")))
	return b.String()
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

func padToWidth(s string, width int) string {
	return runewidth.FillRight(s, width)
}

package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// ApplyStartupKeys replays tokens through the model before the program
// starts. Tokens mix <...> keys (<enter>, <esc>, <bs>, <space>, <timeout>)
// with literal text; a leading backslash forces the whole token literal.
// Replay stops once the menu quits.
func ApplyStartupKeys(m *Model, keys []string) {
	if len(keys) == 0 || m == nil {
		return
	}
	for _, raw := range keys {
		for _, msg := range StartupMsgs(raw) {
			if m.menu.Quit() {
				return
			}
			m.Update(msg)
		}
	}
}

// StartupMsgs parses one token into the messages it stands for.
func StartupMsgs(raw string) []tea.Msg {
	token := strings.TrimSpace(raw)
	if token == "" {
		return nil
	}
	if strings.HasPrefix(token, `\`) {
		return literalMsgs(strings.TrimPrefix(token, `\`))
	}
	var msgs []tea.Msg
	for _, segment := range parseTokenSegments(token) {
		if !segment.isKey {
			msgs = append(msgs, literalMsgs(segment.text)...)
			continue
		}
		if msg, ok := msgFromToken(segment.text); ok {
			msgs = append(msgs, msg)
			continue
		}
		// unknown <...> names are typed as text
		msgs = append(msgs, literalMsgs(segment.text)...)
	}
	return msgs
}

func literalMsgs(text string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(text))
	for _, r := range text {
		msgs = append(msgs, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return msgs
}

// tokenSegment is a parsed piece of a token: a <...> key or literal text.
type tokenSegment struct {
	text  string
	isKey bool
}

// parseTokenSegments splits a token into <...> keys and literal text.
// Example: "lv<enter>2" -> ["lv", "<enter>", "2"].
func parseTokenSegments(token string) []tokenSegment {
	var segments []tokenSegment
	remaining := token

	for len(remaining) > 0 {
		start := strings.Index(remaining, "<")
		if start == -1 {
			segments = append(segments, tokenSegment{text: remaining})
			break
		}
		if start > 0 {
			segments = append(segments, tokenSegment{text: remaining[:start]})
		}
		end := strings.Index(remaining[start:], ">")
		if end == -1 {
			segments = append(segments, tokenSegment{text: remaining[start:]})
			break
		}
		segments = append(segments, tokenSegment{text: remaining[start : start+end+1], isKey: true})
		remaining = remaining[start+end+1:]
	}
	return segments
}

func msgFromToken(token string) (tea.Msg, bool) {
	inner := strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(token, "<"), ">"))
	switch inner {
	case "esc", "escape", "c-[":
		return tea.KeyPressMsg{Code: tea.KeyEscape}, true
	case "cr", "enter", "return":
		return tea.KeyPressMsg{Code: tea.KeyEnter}, true
	case "bs", "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}, true
	case "space":
		return tea.KeyPressMsg{Code: ' ', Text: " "}, true
	case "lt":
		return tea.KeyPressMsg{Code: '<', Text: "<"}, true
	case "timeout", "tick":
		return timeoutMsg{}, true
	}
	return nil, false
}

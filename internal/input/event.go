// Package input turns one keystroke event per tick into at most one effect
// on the navigation state: an action call, a navigation step, an enum
// choice or a scalar assignment.
package input

import "fmt"

// Special is a non-character event delivered by the keystroke source.
type Special int

const (
	None Special = iota
	Enter
	Escape
	Timeout
	Backspace
)

func (s Special) String() string {
	switch s {
	case Enter:
		return "ENTER"
	case Escape:
		return "ESCAPE"
	case Timeout:
		return "TIMEOUT"
	case Backspace:
		return "BACKSPACE"
	default:
		return "NONE"
	}
}

// Event is exactly one of a printable character or a special key.
type Event struct {
	Char    rune
	Special Special
}

// Char builds a character event.
func Char(r rune) Event { return Event{Char: r} }

// Key builds a special-key event.
func Key(s Special) Event { return Event{Special: s} }

// Text expands a string into character events.
func Text(s string) []Event {
	events := make([]Event, 0, len(s))
	for _, r := range s {
		events = append(events, Char(r))
	}
	return events
}

func (e Event) IsChar() bool { return e.Special == None }

func (e Event) String() string {
	if e.IsChar() {
		return fmt.Sprintf("Char(%q)", e.Char)
	}
	return e.Special.String()
}

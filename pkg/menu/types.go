package menu

import (
	"github.com/oakwood-commons/figpie/internal/actions"
	"github.com/oakwood-commons/figpie/internal/cel"
	"github.com/oakwood-commons/figpie/internal/input"
	"github.com/oakwood-commons/figpie/internal/navigator"
)

// Types a front end needs to drive a Menu from outside this module.
type (
	// Event is one tick's input: a printable character or a special key.
	Event = input.Event
	// Special is a non-character key.
	Special = input.Special
	// Result is the outcome of one Handle call.
	Result = input.Result
	// Effect names what a tick did.
	Effect = input.Effect
	// Mode is the interaction state implied by the current node.
	Mode = navigator.Mode
	// State is the navigation position inside the tree.
	State = navigator.State
	// Binding pairs a reserved key with its action.
	Binding = actions.Binding
	// Registry holds the reserved action keys.
	Registry = actions.Registry
	// Vars is the navigation state seen by declared action predicates.
	Vars = cel.Vars
)

const (
	Enter     = input.Enter
	Escape    = input.Escape
	Timeout   = input.Timeout
	Backspace = input.Backspace
)

const (
	ModeContainer = navigator.ModeContainer
	ModeProperty  = navigator.ModeProperty
	ModeEnum      = navigator.ModeEnum
	ModeAction    = navigator.ModeAction
)

const (
	EffectNone     = input.EffectNone
	EffectPending  = input.EffectPending
	EffectCleared  = input.EffectCleared
	EffectAction   = input.EffectAction
	EffectNavigate = input.EffectNavigate
	EffectChoose   = input.EffectChoose
	EffectAssign   = input.EffectAssign
	EffectBack     = input.EffectBack
)

// Char builds a character event.
func Char(r rune) Event { return input.Char(r) }

// Key builds a special-key event.
func Key(s Special) Event { return input.Key(s) }

// Text expands a string into character events.
func Text(s string) []Event { return input.Text(s) }

// ParsePath splits a dotted path such as lvl1.lvl2["float prop"] into
// child names, for use with State().Jump.
func ParsePath(path string) []string { return navigator.ParsePath(path) }

// FormatPath is the inverse of ParsePath.
func FormatPath(names []string) string { return navigator.FormatPath(names) }

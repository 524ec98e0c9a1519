// Package navigator tracks the position of the user inside a cell tree.
// The position is a path of child names from the root; the interaction
// mode is derived from the node the path resolves to and is never stored.
package navigator

import (
	"errors"
	"fmt"
	"slices"

	"github.com/oakwood-commons/figpie/internal/shortcut"
	"github.com/oakwood-commons/figpie/pkg/cell"
)

// Mode is the interaction state implied by the current node.
type Mode string

const (
	ModeContainer Mode = "container"
	ModeProperty  Mode = "property"
	ModeEnum      Mode = "enum"
	ModeAction    Mode = "action"
)

var (
	ErrAtRoot    = errors.New("already at root")
	ErrNoOptions = errors.New("current node has no options")
)

// KeySource provides the reserved keys that child shortcuts must avoid.
type KeySource interface {
	Keys() []string
}

// Option is one selectable child of the current node.
type Option struct {
	Key  string
	Cell cell.Cell
}

// State is the navigation position inside a tree.
type State struct {
	root   *cell.Container
	path   []string
	banned KeySource
}

// New starts at root. banned may be nil.
func New(root *cell.Container, banned KeySource) *State {
	return &State{root: root, path: []string{root.Name()}, banned: banned}
}

// Root returns the tree root.
func (s *State) Root() *cell.Container { return s.root }

// Path returns a copy of the current path, root name first.
func (s *State) Path() []string {
	s.resolve()
	return slices.Clone(s.path)
}

// Depth is the number of steps below the root.
func (s *State) Depth() int {
	s.resolve()
	return len(s.path) - 1
}

func (s *State) InRoot() bool { return s.Depth() == 0 }

// Current returns the node at the end of the path.
func (s *State) Current() cell.Cell {
	c, _ := s.resolve()
	return c
}

// Parent returns the node one step above the current one, or nil at root.
func (s *State) Parent() cell.Parent {
	_, parent := s.resolve()
	return parent
}

// resolve walks the path from the root. Segments that no longer resolve
// (a union switched branches, for instance) are dropped.
func (s *State) resolve() (cell.Cell, cell.Parent) {
	var (
		cur    cell.Cell = s.root
		parent cell.Parent
	)
	for i, name := range s.path[1:] {
		p, ok := cur.(cell.Parent)
		if !ok {
			s.path = s.path[:i+1]
			break
		}
		next, err := p.Child(name)
		if err != nil {
			s.path = s.path[:i+1]
			break
		}
		parent, cur = p, next
	}
	return cur, parent
}

// Mode derives the interaction mode from the current node.
func (s *State) Mode() Mode {
	return ModeOf(s.Current())
}

// ModeOf maps a node to its interaction mode.
func ModeOf(c cell.Cell) Mode {
	switch c.(type) {
	case *cell.Enum:
		return ModeEnum
	case *cell.Container, *cell.Union:
		return ModeContainer
	case *cell.Action:
		return ModeAction
	default:
		return ModeProperty
	}
}

// GoNext descends into the named child. It is only valid in container
// mode; the path is unchanged on failure.
func (s *State) GoNext(name string) error {
	cur := s.Current()
	if s.Mode() != ModeContainer {
		return fmt.Errorf("%w: %s %q has no children to enter", cell.ErrBadChildLookup, s.Mode(), cur.Name())
	}
	if _, err := cur.(cell.Parent).Child(name); err != nil {
		return err
	}
	s.path = append(s.path, name)
	return nil
}

// GoPrevious pops one level.
func (s *State) GoPrevious() error {
	if s.InRoot() {
		return ErrAtRoot
	}
	s.path = s.path[:len(s.path)-1]
	return nil
}

// Jump replaces the position with the given segments below the root. The
// position is unchanged if any segment fails.
func (s *State) Jump(segments []string) error {
	saved := s.path
	s.path = []string{s.root.Name()}
	for _, name := range segments {
		if err := s.GoNext(name); err != nil {
			s.path = saved
			return err
		}
	}
	return nil
}

// Options pairs each visible child of the current node with its shortcut.
// Reserved keys from the key source are never assigned.
func (s *State) Options() ([]Option, error) {
	mode := s.Mode()
	if mode != ModeContainer && mode != ModeEnum {
		return nil, fmt.Errorf("%w: mode is %s", ErrNoOptions, mode)
	}
	p := s.Current().(cell.Parent)
	var banned []string
	if s.banned != nil {
		banned = s.banned.Keys()
	}
	children := p.Values()
	assigned := shortcut.Assign(p.Keys(), banned)
	out := make([]Option, len(assigned))
	for i, sc := range assigned {
		out[i] = Option{Key: sc.Key, Cell: children[i]}
	}
	return out, nil
}

// Choose assigns option to the current enum and returns to its parent.
// The position is unchanged when the assignment fails.
func (s *State) Choose(option string) error {
	e, ok := s.Current().(*cell.Enum)
	if !ok {
		return fmt.Errorf("%w: mode is %s", ErrNoOptions, s.Mode())
	}
	if err := e.Set(option); err != nil {
		return err
	}
	return s.GoPrevious()
}

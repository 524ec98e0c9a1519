package cell

import (
	"fmt"
	"reflect"
	"slices"
)

// Access selects what Container.Get returns for a child.
type Access int

const (
	// AccessValue returns the raw value of scalar children and the node
	// itself for everything else.
	AccessValue Access = iota
	// AccessNode always returns the node handle.
	AccessNode
)

// Container is an ordered collection of uniquely named children.
type Container struct {
	base
	kind    Kind
	cells   []Cell
	accepts func(Cell) bool
	rule    string
}

// NewContainer creates a container accepting any cell.
func NewContainer(name string, cells ...Cell) (*Container, error) {
	return newContainer(name, KindContainer, func(Cell) bool { return true }, "cell", cells)
}

// NewStrictContainer creates a container accepting only children whose kind
// is exactly accepted.
func NewStrictContainer(name string, accepted Kind, cells ...Cell) (*Container, error) {
	return newContainer(name, KindStrict, func(c Cell) bool { return c.Kind() == accepted }, string(accepted), cells)
}

// NewContainerOf creates a container accepting only cells that implement T,
// for example NewContainerOf[Scalar].
func NewContainerOf[T Cell](name string, cells ...Cell) (*Container, error) {
	accepts := func(c Cell) bool {
		_, ok := c.(T)
		return ok
	}
	return newContainer(name, KindContainer, accepts, reflect.TypeFor[T]().Name(), cells)
}

func newContainer(name string, kind Kind, accepts func(Cell) bool, rule string, cells []Cell) (*Container, error) {
	b, err := newBase(name)
	if err != nil {
		return nil, err
	}
	c := &Container{base: b, kind: kind, accepts: accepts, rule: rule, cells: make([]Cell, 0, len(cells))}
	for _, child := range cells {
		if err := c.Append(child); err != nil {
			return nil, fmt.Errorf("%s(%s): %w", kind, name, err)
		}
	}
	return c, nil
}

func (c *Container) Kind() Kind { return c.kind }
func (*Container) Readable() bool { return false }
func (*Container) Writeable() bool { return false }
func (*Container) Executable() bool { return false }

// Append adds cell at the end. The cell must satisfy the accepted-type rule
// and its name must not be taken.
func (c *Container) Append(cell Cell) error {
	if cell == nil {
		return fmt.Errorf("%w: nil cell", ErrWrongChildType)
	}
	if !c.accepts(cell) {
		return fmt.Errorf("%w: %s(%s) is not %s", ErrWrongChildType, cell.Kind(), cell.Name(), c.rule)
	}
	if c.Contains(cell.Name()) {
		return fmt.Errorf("%w: %q already exists", ErrDuplicateName, cell.Name())
	}
	c.cells = append(c.cells, cell)
	return nil
}

func (c *Container) Len() int { return len(c.cells) }

// Keys returns child names in insertion order.
func (c *Container) Keys() []string {
	keys := make([]string, len(c.cells))
	for i, cell := range c.cells {
		keys[i] = cell.Name()
	}
	return keys
}

// Values returns a copy of the child list.
func (c *Container) Values() []Cell {
	return slices.Clone(c.cells)
}

func (c *Container) Contains(name string) bool {
	_, ok := c.find(name)
	return ok
}

// Child looks a child up by exact name.
func (c *Container) Child(name string) (Cell, error) {
	if cell, ok := c.find(name); ok {
		return cell, nil
	}
	return nil, fmt.Errorf("%w: %q not found in %s", ErrBadChildLookup, name, c.name)
}

// Get returns the named child's value (AccessValue) or node (AccessNode).
func (c *Container) Get(name string, access Access) (any, error) {
	cell, err := c.Child(name)
	if err != nil {
		return nil, err
	}
	if access == AccessValue {
		if s, ok := cell.(Scalar); ok {
			return s.Value()
		}
	}
	return cell, nil
}

// SetValue assigns v to the named scalar child.
func (c *Container) SetValue(name string, v any) error {
	cell, err := c.Child(name)
	if err != nil {
		return err
	}
	s, ok := cell.(Scalar)
	if !ok {
		return fmt.Errorf("%s(%s): %w", cell.Kind(), cell.Name(), ErrNotWriteable)
	}
	return s.Set(v)
}

func (c *Container) String() string {
	return fmt.Sprintf("<CellContainer[%d](%s)>", len(c.cells), c.name)
}

func (c *Container) find(name string) (Cell, bool) {
	for _, cell := range c.cells {
		if cell.Name() == name {
			return cell, true
		}
	}
	return nil, false
}

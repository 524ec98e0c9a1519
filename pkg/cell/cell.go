// Package cell implements the configuration tree: named leaves, typed scalar
// properties, containers, closed enums, tagged unions and actions.
//
// The node set is closed. Every node implements Cell, and Cell carries an
// unexported method, so consumers can dispatch over the variants with a
// single type switch.
package cell

import "fmt"

// Kind is the type tag shown next to a node.
type Kind string

const (
	KindLeaf      Kind = "cell"
	KindInt       Kind = "int"
	KindFloat     Kind = "float"
	KindString    Kind = "str"
	KindVariant   Kind = "variant"
	KindLambda    Kind = "lambda"
	KindEnum      Kind = "enum"
	KindBool      Kind = "bool"
	KindContainer Kind = "container"
	KindStrict    Kind = "strict container"
	KindUnion     Kind = "union"
	KindAction    Kind = "action"
)

// Cell is any labeled node of the tree.
type Cell interface {
	Name() string
	Kind() Kind
	Readable() bool
	Writeable() bool
	Executable() bool

	cell()
}

// Scalar is a cell holding a single value: properties, variants, lambdas and
// enums.
type Scalar interface {
	Cell
	Value() (any, error)
	Set(v any) error
}

// Parent is a cell with named children. Containers and unions expose their
// (visible) children; enums expose their options read-only.
type Parent interface {
	Cell
	Len() int
	Keys() []string
	Values() []Cell
	Contains(name string) bool
	Child(name string) (Cell, error)
}

type base struct {
	name string
}

func newBase(name string) (base, error) {
	if name == "" {
		return base{}, fmt.Errorf("%w: name must not be empty", ErrBadName)
	}
	return base{name: name}, nil
}

func (b base) Name() string { return b.name }

func (base) cell() {}

// Leaf is a plain named cell without a value. Enum options are leaves.
type Leaf struct {
	base
}

// NewLeaf creates a leaf cell.
func NewLeaf(name string) (*Leaf, error) {
	b, err := newBase(name)
	if err != nil {
		return nil, err
	}
	return &Leaf{base: b}, nil
}

func (*Leaf) Kind() Kind { return KindLeaf }
func (*Leaf) Readable() bool { return false }
func (*Leaf) Writeable() bool { return false }
func (*Leaf) Executable() bool { return false }

func (l *Leaf) String() string { return fmt.Sprintf("<Cell(%s)>", l.name) }

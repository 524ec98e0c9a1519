package cell

import (
	"fmt"
	"strconv"
)

const (
	boolTrue  = "True"
	boolFalse = "False"
)

// Enum is a text property whose value is always one of a fixed option set.
// The options live in a private strict container of leaves.
type Enum struct {
	prop    *String
	options *Container
	kind    Kind
}

// NewEnum creates an enum over options with the given initial value.
func NewEnum(name string, options []string, value string, opts ...Option) (*Enum, error) {
	return newEnum(name, KindEnum, options, value, opts...)
}

// NewBool creates an enum over {"True", "False"}.
func NewBool(name string, value bool, opts ...Option) (*Enum, error) {
	return newEnum(name, KindBool, []string{boolTrue, boolFalse}, strconv.FormatBool(value), opts...)
}

func newEnum(name string, kind Kind, options []string, value string, opts ...Option) (*Enum, error) {
	if _, err := newBase(name); err != nil {
		return nil, err
	}
	if len(options) == 0 {
		return nil, fmt.Errorf("%s(%s): %w: options must not be empty", kind, name, ErrBadName)
	}
	leaves := make([]Cell, 0, len(options))
	for _, opt := range options {
		leaf, err := NewLeaf(opt)
		if err != nil {
			return nil, fmt.Errorf("%s(%s): %w", kind, name, err)
		}
		leaves = append(leaves, leaf)
	}
	container, err := NewStrictContainer(name+"'s options", KindLeaf, leaves...)
	if err != nil {
		return nil, fmt.Errorf("%s(%s): %w", kind, name, err)
	}
	if kind == KindBool {
		value = normalizeBool(value)
	}

	e := &Enum{options: container, kind: kind}
	o := make([]Option, 0, len(opts)+1)
	o = append(o, opts...)
	o = append(o, WithCheck(e.member))
	prop, err := newProperty[string](name, value, o...)
	if err != nil {
		return nil, err
	}
	prop.kind = kind
	e.prop = prop
	return e, nil
}

func (e *Enum) member(v any) error {
	s, _ := v.(string)
	if !e.options.Contains(s) {
		return fmt.Errorf("%q is not one of %v", s, e.options.Keys())
	}
	return nil
}

func (e *Enum) Name() string { return e.prop.Name() }
func (e *Enum) Kind() Kind { return e.kind }
func (e *Enum) Readable() bool { return e.prop.Readable() }
func (e *Enum) Writeable() bool { return e.prop.Writeable() }
func (*Enum) Executable() bool { return false }
func (*Enum) cell() {}

// Get returns the selected option name.
func (e *Enum) Get() (string, error) {
	return e.prop.Get()
}

func (e *Enum) Value() (any, error) {
	v, err := e.Get()
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Set selects option v. Bool enums also accept a Go bool and any casing
// of "true"/"false".
func (e *Enum) Set(v any) error {
	if e.kind == KindBool {
		switch x := v.(type) {
		case bool:
			v = normalizeBool(strconv.FormatBool(x))
		case string:
			v = normalizeBool(x)
		}
	}
	return e.prop.Set(v)
}

// Bool reports whether a bool enum is set to "True".
func (e *Enum) Bool() (bool, error) {
	v, err := e.Get()
	if err != nil {
		return false, err
	}
	return v == boolTrue, nil
}

func (e *Enum) Len() int { return e.options.Len() }
func (e *Enum) Keys() []string { return e.options.Keys() }
func (e *Enum) Values() []Cell { return e.options.Values() }
func (e *Enum) Contains(name string) bool { return e.options.Contains(name) }

// Child returns the option leaf with the given name.
func (e *Enum) Child(name string) (Cell, error) { return e.options.Child(name) }

func (e *Enum) String() string {
	v, err := e.Get()
	if err != nil {
		return fmt.Sprintf("<%s(%s)>", e.kind, e.Name())
	}
	return fmt.Sprintf("<%s(%s): %s>", e.kind, e.Name(), v)
}

func normalizeBool(s string) string {
	if b, err := strconv.ParseBool(s); err == nil {
		if b {
			return boolTrue
		}
		return boolFalse
	}
	return s
}

package cell

import (
	"fmt"
	"strconv"
	"strings"
)

// Option configures a scalar at construction time.
type Option func(*scalarOptions)

type scalarOptions struct {
	readable  bool
	writeable bool
	check     func(any) error
}

func defaultScalarOptions() scalarOptions {
	return scalarOptions{readable: true, writeable: true}
}

// ReadOnly makes a scalar reject every assignment after construction.
func ReadOnly() Option {
	return func(o *scalarOptions) { o.writeable = false }
}

// WriteOnly makes a scalar reject reads.
func WriteOnly() Option {
	return func(o *scalarOptions) { o.readable = false }
}

// WithCheck adds a domain check that runs after coercion and before the
// value is stored. A non-nil error rejects the value. Several checks run in
// the order given.
func WithCheck(check func(any) error) Option {
	return func(o *scalarOptions) {
		prev := o.check
		if prev == nil {
			o.check = check
			return
		}
		o.check = func(v any) error {
			if err := prev(v); err != nil {
				return err
			}
			return check(v)
		}
	}
}

// Property is a named scalar of a fixed element kind. Int, Float and String
// coerce text input; Variant stores anything.
type Property[T any] struct {
	base
	value     T
	readable  bool
	writeable bool
	check     func(any) error
	kind      Kind
}

type (
	Int     = Property[int64]
	Float   = Property[float64]
	String  = Property[string]
	Variant = Property[any]
)

// NewInt creates an integer property. Text values are parsed in base 10.
func NewInt(name string, value any, opts ...Option) (*Int, error) {
	return newProperty[int64](name, value, opts...)
}

// NewFloat creates a floating-point property. Integer and text values are
// converted.
func NewFloat(name string, value any, opts ...Option) (*Float, error) {
	return newProperty[float64](name, value, opts...)
}

// NewString creates a text property.
func NewString(name string, value any, opts ...Option) (*String, error) {
	return newProperty[string](name, value, opts...)
}

// NewVariant creates a property that accepts any non-nil value as-is.
func NewVariant(name string, value any, opts ...Option) (*Variant, error) {
	return newProperty[any](name, value, opts...)
}

func newProperty[T any](name string, value any, opts ...Option) (*Property[T], error) {
	b, err := newBase(name)
	if err != nil {
		return nil, err
	}
	o := defaultScalarOptions()
	for _, opt := range opts {
		opt(&o)
	}
	// The initial value goes through the regular path even for read-only
	// properties.
	p := &Property[T]{base: b, readable: o.readable, writeable: true, check: o.check}
	if err := p.Set(value); err != nil {
		return nil, err
	}
	p.writeable = o.writeable
	return p, nil
}

func (p *Property[T]) Kind() Kind {
	if p.kind != "" {
		return p.kind
	}
	return kindOf[T]()
}

func (p *Property[T]) Readable() bool { return p.readable }
func (p *Property[T]) Writeable() bool { return p.writeable }
func (p *Property[T]) Executable() bool { return false }

// Get returns the typed value.
func (p *Property[T]) Get() (T, error) {
	if !p.readable {
		var zero T
		return zero, fmt.Errorf("%s(%s): %w", p.Kind(), p.name, ErrNotReadable)
	}
	return p.value, nil
}

// Value returns the value as any.
func (p *Property[T]) Value() (any, error) {
	v, err := p.Get()
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Set coerces v to the property's kind, runs the domain check and stores
// the result. On any failure the previous value is kept.
func (p *Property[T]) Set(v any) error {
	if !p.writeable {
		return fmt.Errorf("%s(%s): %w", p.Kind(), p.name, ErrNotWriteable)
	}
	converted, err := convert[T](v)
	if err != nil {
		return fmt.Errorf("%s(%s): %w", p.Kind(), p.name, err)
	}
	if p.check != nil {
		if err := p.check(converted); err != nil {
			return fmt.Errorf("%s(%s): %w: %v", p.Kind(), p.name, ErrWrongValueKind, err)
		}
	}
	p.value = converted
	return nil
}

func (p *Property[T]) String() string {
	if !p.readable {
		return fmt.Sprintf("<%s(%s)>", p.Kind(), p.name)
	}
	return fmt.Sprintf("<%s(%s): %v>", p.Kind(), p.name, p.value)
}

func kindOf[T any]() Kind {
	var zero T
	switch any(zero).(type) {
	case int64:
		return KindInt
	case float64:
		return KindFloat
	case string:
		return KindString
	default:
		return KindVariant
	}
}

// convert accepts v when it already has kind T and otherwise tries exactly
// one conversion: integers widen to int64 or float64, text is parsed.
func convert[T any](v any) (T, error) {
	var zero T
	if v == nil {
		return zero, fmt.Errorf("%w: nil value", ErrWrongValueKind)
	}
	if t, ok := v.(T); ok {
		return t, nil
	}

	var out any
	switch any(zero).(type) {
	case int64:
		switch x := v.(type) {
		case int:
			out = int64(x)
		case int8:
			out = int64(x)
		case int16:
			out = int64(x)
		case int32:
			out = int64(x)
		case string:
			n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
			if err != nil {
				return zero, fmt.Errorf("%w: cannot convert %q to int", ErrWrongValueKind, x)
			}
			out = n
		}
	case float64:
		switch x := v.(type) {
		case float32:
			out = float64(x)
		case int:
			out = float64(x)
		case int32:
			out = float64(x)
		case int64:
			out = float64(x)
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
			if err != nil {
				return zero, fmt.Errorf("%w: cannot convert %q to float", ErrWrongValueKind, x)
			}
			out = f
		}
	}
	if t, ok := out.(T); ok {
		return t, nil
	}
	return zero, fmt.Errorf("%w: %T is not %s", ErrWrongValueKind, v, kindOf[T]())
}

// Lambda is a read-only scalar whose value is computed on every read.
type Lambda struct {
	base
	fn       func() any
	readable bool
}

// NewLambda creates a computed property. Only ReadOnly/WriteOnly options
// are meaningful; a lambda is never writeable.
func NewLambda(name string, fn func() any, opts ...Option) (*Lambda, error) {
	b, err := newBase(name)
	if err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, fmt.Errorf("lambda(%s): %w: nil function", name, ErrWrongValueKind)
	}
	o := defaultScalarOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Lambda{base: b, fn: fn, readable: o.readable}, nil
}

func (*Lambda) Kind() Kind { return KindLambda }
func (l *Lambda) Readable() bool { return l.readable }
func (*Lambda) Writeable() bool { return false }
func (*Lambda) Executable() bool { return false }

// Value calls the underlying function.
func (l *Lambda) Value() (any, error) {
	if !l.readable {
		return nil, fmt.Errorf("%s(%s): %w", KindLambda, l.name, ErrNotReadable)
	}
	return l.fn(), nil
}

// Set always fails.
func (l *Lambda) Set(any) error {
	return fmt.Errorf("%s(%s): %w", KindLambda, l.name, ErrNotWriteable)
}

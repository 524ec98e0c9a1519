package loader

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/oakwood-commons/figpie/internal/cel"
	"github.com/oakwood-commons/figpie/pkg/cell"
)

// DefaultRootName names the root when a definition omits it.
const DefaultRootName = "root"

// ErrUnknownKind is returned for a node whose kind is not one of the
// supported cell kinds.
var ErrUnknownKind = errors.New("unknown kind")

// Tree is a built definition.
type Tree struct {
	Root    *cell.Container
	Actions []Declared
}

// Declared is a compiled ActionDef.
type Declared struct {
	Key     string
	Name    string
	Message string
	When    *cel.Predicate
}

// Active evaluates When. Evaluation errors count as inactive.
func (d Declared) Active(vars cel.Vars) bool {
	if d.When == nil {
		return true
	}
	ok, err := d.When.Eval(vars)
	return err == nil && ok
}

// Build turns a definition into a cell tree. Every construction error
// aborts the build.
func Build(def *Definition) (*Tree, error) {
	name := def.Name
	if name == "" {
		name = DefaultRootName
	}
	children, err := buildNodes(def.Children)
	if err != nil {
		return nil, err
	}
	root, err := cell.NewContainer(name, children...)
	if err != nil {
		return nil, err
	}
	tree := &Tree{Root: root}
	for _, a := range def.Actions {
		d := Declared{Key: a.Key, Name: a.Name, Message: a.Message}
		if d.Name == "" {
			d.Name = a.Key
		}
		if a.When != "" {
			if d.When, err = cel.Compile(a.When); err != nil {
				return nil, fmt.Errorf("action %q: %w", a.Key, err)
			}
		}
		tree.Actions = append(tree.Actions, d)
	}
	return tree, nil
}

// LoadTree is LoadFile followed by Build.
func LoadTree(path string) (*Tree, error) {
	def, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Build(def)
}

func buildNodes(nodes []Node) ([]cell.Cell, error) {
	out := make([]cell.Cell, 0, len(nodes))
	for _, n := range nodes {
		c, err := buildNode(n)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func buildNode(n Node) (cell.Cell, error) {
	opts, err := scalarOptions(n)
	if err != nil {
		return nil, err
	}
	wrap := func(c cell.Cell, err error) (cell.Cell, error) {
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", n.Kind, n.Name, err)
		}
		return c, nil
	}

	switch n.Kind {
	case KindLeaf:
		return wrap(cell.NewLeaf(n.Name))
	case KindInt:
		return wrap(cell.NewInt(n.Name, orDefault(wholeNumber(n.Value), int64(0)), opts...))
	case KindFloat:
		return wrap(cell.NewFloat(n.Name, orDefault(n.Value, 0.0), opts...))
	case KindString:
		return wrap(cell.NewString(n.Name, textValue(n.Value), opts...))
	case KindVariant:
		return wrap(cell.NewVariant(n.Name, n.Value, opts...))
	case KindBool:
		b, err := boolValue(n.Value)
		if err != nil {
			return wrap(nil, err)
		}
		return wrap(cell.NewBool(n.Name, b, opts...))
	case KindEnum:
		value := ""
		if n.Value != nil {
			value = fmt.Sprint(n.Value)
		} else if len(n.Options) > 0 {
			value = n.Options[0]
		}
		return wrap(cell.NewEnum(n.Name, n.Options, value, opts...))
	case KindContainer, "":
		children, err := buildNodes(n.Children)
		if err != nil {
			return nil, err
		}
		return wrap(cell.NewContainer(n.Name, children...))
	case KindStrict:
		accepted, ok := cellKinds[n.Accepts]
		if !ok {
			return wrap(nil, fmt.Errorf("%w: accepts %q", ErrUnknownKind, n.Accepts))
		}
		children, err := buildNodes(n.Children)
		if err != nil {
			return nil, err
		}
		return wrap(cell.NewStrictContainer(n.Name, accepted, children...))
	case KindUnion:
		branches := make([]cell.Branch, 0, len(n.Branches))
		for _, b := range n.Branches {
			children, err := buildNodes(b.Children)
			if err != nil {
				return nil, err
			}
			branches = append(branches, cell.Branch{Name: b.Name, Cells: children})
		}
		return wrap(cell.NewUnion(n.Name, n.Selected, branches...))
	default:
		return nil, fmt.Errorf("%w %q for %q", ErrUnknownKind, n.Kind, n.Name)
	}
}

var cellKinds = map[string]cell.Kind{
	KindLeaf:      cell.KindLeaf,
	KindInt:       cell.KindInt,
	KindFloat:     cell.KindFloat,
	KindString:    cell.KindString,
	KindVariant:   cell.KindVariant,
	KindBool:      cell.KindBool,
	KindEnum:      cell.KindEnum,
	KindContainer: cell.KindContainer,
	KindStrict:    cell.KindStrict,
	KindUnion:     cell.KindUnion,
}

func scalarOptions(n Node) ([]cell.Option, error) {
	var opts []cell.Option
	if n.ReadOnly {
		opts = append(opts, cell.ReadOnly())
	}
	if n.WriteOnly {
		opts = append(opts, cell.WriteOnly())
	}
	if n.Check != "" {
		pred, err := cel.Compile(n.Check)
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", n.Kind, n.Name, err)
		}
		opts = append(opts, cell.WithCheck(func(v any) error {
			ok, err := pred.Eval(cel.Vars{Value: v})
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%v fails %s", v, pred)
			}
			return nil
		}))
	}
	return opts, nil
}

// wholeNumber turns integral float64 values, as produced by JSON, into
// int64. Anything else is returned unchanged.
func wholeNumber(v any) any {
	if f, ok := v.(float64); ok && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return int64(f)
	}
	return v
}

// textValue keeps unquoted scalars such as 8080 usable as string values.
func textValue(v any) any {
	switch v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(v)
	default:
		return v
	}
}

func orDefault(v, def any) any {
	if v == nil {
		return def
	}
	return v
}

func boolValue(v any) (bool, error) {
	switch x := v.(type) {
	case nil:
		return false, nil
	case bool:
		return x, nil
	case string:
		b, err := strconv.ParseBool(x)
		if err != nil {
			return false, fmt.Errorf("%w: %q is not a bool", cell.ErrWrongValueKind, x)
		}
		return b, nil
	default:
		return false, fmt.Errorf("%w: %T is not a bool", cell.ErrWrongValueKind, v)
	}
}

// Package cel evaluates boolean CEL predicates over the navigation state.
// Tree definitions use them to decide when a declared action is active and
// to restrict the values a property accepts.
package cel

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	celext "github.com/google/cel-go/ext"
)

// Variable names visible to expressions.
const (
	VarPath  = "path"
	VarDepth = "depth"
	VarMode  = "mode"
	VarValue = "value"
)

// Vars is the activation for one evaluation.
type Vars struct {
	Path  []string
	Depth int
	Mode  string
	Value any
}

func (v Vars) activation() map[string]any {
	path := v.Path
	if path == nil {
		path = []string{}
	}
	return map[string]any{
		VarPath:  path,
		VarDepth: int64(v.Depth),
		VarMode:  v.Mode,
		VarValue: v.Value,
	}
}

// Environment returns the CEL environment shared by all predicates.
// Additional options can extend it with custom functions.
func Environment(opts ...cel.EnvOption) (*cel.Env, error) {
	allOpts := make([]cel.EnvOption, 0, 8+len(opts))
	allOpts = append(allOpts,
		cel.Variable(VarPath, cel.ListType(cel.StringType)),
		cel.Variable(VarDepth, cel.IntType),
		cel.Variable(VarMode, cel.StringType),
		cel.Variable(VarValue, cel.DynType),
		celext.Strings(),
		celext.Encoders(),
		celext.Lists(),
		celext.Math(),
	)
	allOpts = append(allOpts, opts...)
	return cel.NewEnv(allOpts...)
}

// Predicate is a compiled boolean expression.
type Predicate struct {
	expr string
	prg  cel.Program
}

// Compile parses and type-checks expr. The expression must yield a bool.
func Compile(expr string) (*Predicate, error) {
	env, err := Environment()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error in %q: %w", expr, issues.Err())
	}
	if out := ast.OutputType(); !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("expression %q yields %s, want bool", expr, out)
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Predicate{expr: expr, prg: prg}, nil
}

// MustCompile is Compile that panics on error.
func MustCompile(expr string) *Predicate {
	p, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Predicate) String() string { return p.expr }

// Eval runs the predicate. A non-bool result is an error.
func (p *Predicate) Eval(vars Vars) (bool, error) {
	out, _, err := p.prg.Eval(vars.activation())
	if err != nil {
		return false, fmt.Errorf("eval error in %q: %w", p.expr, err)
	}
	b, ok := ToGo(out).(bool)
	if !ok {
		return false, fmt.Errorf("expression %q yielded %v, want bool", p.expr, out)
	}
	return b, nil
}

// ToGo converts a CEL value to a native Go value. Lists become []any.
func ToGo(val ref.Val) any {
	if val == nil {
		return nil
	}
	switch v := val.(type) {
	case types.Bool:
		return bool(v)
	case types.Int:
		return int64(v)
	case types.Uint:
		return uint64(v)
	case types.Double:
		return float64(v)
	case types.String:
		return string(v)
	case types.Bytes:
		return []byte(v)
	}
	if valuer, ok := val.(interface{ Value() any }); ok {
		inner := valuer.Value()
		if refs, ok := inner.([]ref.Val); ok {
			out := make([]any, len(refs))
			for i, elem := range refs {
				out[i] = ToGo(elem)
			}
			return out
		}
		return inner
	}
	return val
}

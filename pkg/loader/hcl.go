package loader

import (
	"fmt"
	"math/big"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// The HCL form nests cells as blocks:
//
//	name = "root"
//	cell "container" "lvl1" {
//	  cell "int" "2p1" { value = 1 }
//	  cell "union" "shape" {
//	    branch "a" { cell "int" "a1" { value = 2 } }
//	  }
//	}
//	action "s" { name = "save" }

type hclFile struct {
	Name    *string     `hcl:"name,optional"`
	Cells   []hclCell   `hcl:"cell,block"`
	Actions []hclAction `hcl:"action,block"`
}

type hclCell struct {
	Kind      string         `hcl:"kind,label"`
	Name      string         `hcl:"name,label"`
	Value     hcl.Expression `hcl:"value,optional"`
	Options   []string       `hcl:"options,optional"`
	Selected  *string        `hcl:"selected,optional"`
	Accepts   *string        `hcl:"accepts,optional"`
	Check     *string        `hcl:"check,optional"`
	ReadOnly  *bool          `hcl:"read_only,optional"`
	WriteOnly *bool          `hcl:"write_only,optional"`
	Cells     []hclCell      `hcl:"cell,block"`
	Branches  []hclBranch    `hcl:"branch,block"`
}

type hclBranch struct {
	Name  string    `hcl:"name,label"`
	Cells []hclCell `hcl:"cell,block"`
}

type hclAction struct {
	Key     string  `hcl:"key,label"`
	Name    string  `hcl:"name"`
	When    *string `hcl:"when,optional"`
	Message *string `hcl:"message,optional"`
}

func decodeHCL(data []byte, filename string) (*Definition, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	var raw hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	def := &Definition{Name: deref(raw.Name)}
	children, err := hclNodes(raw.Cells)
	if err != nil {
		return nil, err
	}
	def.Children = children
	for _, a := range raw.Actions {
		def.Actions = append(def.Actions, ActionDef{
			Key:     a.Key,
			Name:    a.Name,
			When:    deref(a.When),
			Message: deref(a.Message),
		})
	}
	return def, nil
}

func hclNodes(cells []hclCell) ([]Node, error) {
	nodes := make([]Node, 0, len(cells))
	for _, c := range cells {
		n := Node{
			Kind:      c.Kind,
			Name:      c.Name,
			Options:   c.Options,
			Selected:  deref(c.Selected),
			Accepts:   deref(c.Accepts),
			Check:     deref(c.Check),
			ReadOnly:  c.ReadOnly != nil && *c.ReadOnly,
			WriteOnly: c.WriteOnly != nil && *c.WriteOnly,
		}
		if c.Value != nil {
			v, diags := c.Value.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("cell %q: %s", c.Name, diags.Error())
			}
			native, err := ctyToNative(v)
			if err != nil {
				return nil, fmt.Errorf("cell %q: %w", c.Name, err)
			}
			n.Value = native
		}
		children, err := hclNodes(c.Cells)
		if err != nil {
			return nil, err
		}
		n.Children = children
		for _, b := range c.Branches {
			bc, err := hclNodes(b.Cells)
			if err != nil {
				return nil, err
			}
			n.Branches = append(n.Branches, BranchDef{Name: b.Name, Children: bc})
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// ctyToNative converts attribute values. Whole numbers become int64 so
// that int cells accept them as-is.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return i, nil
			}
		}
		f, _ := bf.Float64()
		return f, nil
	case ty == cty.Bool:
		return v.True(), nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := make([]any, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, native)
		}
		return out, nil
	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			key, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, fmt.Errorf("in attribute %q: %w", key.AsString(), err)
			}
			out[key.AsString()] = native
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

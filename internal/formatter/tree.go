// Package formatter renders a cell tree for non-interactive output: an
// ASCII tree of nodes or a document of current values.
package formatter

import (
	"fmt"

	"github.com/xlab/treeprint"

	"github.com/oakwood-commons/figpie/pkg/cell"
)

// TreeOptions controls tree output formatting.
type TreeOptions struct {
	// NoValues hides scalar values (structure only).
	NoValues bool
	// MaxDepth limits tree depth (0 = unlimited).
	MaxDepth int
	// MaxStringLen is max chars before truncating values.
	// 0 or negative = no truncation.
	MaxStringLen int
	// Kinds appends the node kind to each label.
	Kinds bool
}

// Tree renders root and its visible descendants as an ASCII tree.
// Unions show only their selected branch.
func Tree(root cell.Cell, opts TreeOptions) string {
	tree := treeprint.NewWithRoot(label(root, opts))
	if p, ok := root.(cell.Parent); ok && !isEnum(root) {
		buildTree(tree, p, opts, 0)
	}
	return tree.String()
}

func buildTree(branch treeprint.Tree, p cell.Parent, opts TreeOptions, depth int) {
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		if p.Len() > 0 {
			branch.AddNode("...")
		}
		return
	}
	for _, child := range p.Values() {
		cp, isParent := child.(cell.Parent)
		if !isParent || isEnum(child) || cp.Len() == 0 {
			branch.AddNode(label(child, opts))
			continue
		}
		buildTree(branch.AddBranch(label(child, opts)), cp, opts, depth+1)
	}
}

// Enums expose their options as children, but they print as scalars.
func isEnum(c cell.Cell) bool {
	_, ok := c.(*cell.Enum)
	return ok
}

func label(c cell.Cell, opts TreeOptions) string {
	name := c.Name()
	if opts.Kinds {
		name = fmt.Sprintf("%s (%s)", name, c.Kind())
	}
	if opts.NoValues {
		return name
	}
	switch n := c.(type) {
	case *cell.Union:
		return name + ": " + n.Selected()
	case *cell.Action:
		return name + "()"
	case cell.Scalar:
		if !n.Readable() {
			return name + ": <write-only>"
		}
		v, err := n.Value()
		if err != nil {
			return name + ": <" + err.Error() + ">"
		}
		return name + ": " + truncate(formatScalarSimple(v), opts.MaxStringLen)
	}
	return name
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return "..."
	}
	return s[:maxLen-3] + "..."
}

// formatScalarSimple converts a scalar to string without truncation.
func formatScalarSimple(v any) string {
	if v == nil {
		return "null"
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		// keep a decimal point so floats read as floats
		if val == float64(int64(val)) {
			return fmt.Sprintf("%.1f", val)
		}
		return fmt.Sprintf("%g", val)
	case int, int64, int32:
		return fmt.Sprintf("%d", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/figpie/pkg/cell"
)

// Format names an output encoding for Encode.
type Format string

const (
	FormatTree Format = "tree"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// Formats lists the accepted output formats.
var Formats = []Format{FormatTree, FormatYAML, FormatJSON, FormatTOML}

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid output format %q: valid values are tree, yaml, json, toml", s)
}

// Values collects the current values below p. Leaves, actions and
// write-only scalars carry no value and are skipped. Bool enums become Go
// bools; unions become a map holding the selector and the selected branch.
func Values(p cell.Parent) map[string]any {
	out := make(map[string]any, p.Len())
	for _, child := range p.Values() {
		if v, ok := value(child); ok {
			out[child.Name()] = v
		}
	}
	return out
}

func value(c cell.Cell) (any, bool) {
	switch n := c.(type) {
	case *cell.Enum:
		if !n.Readable() {
			return nil, false
		}
		if n.Kind() == cell.KindBool {
			b, err := n.Bool()
			return b, err == nil
		}
		v, err := n.Get()
		return v, err == nil
	case cell.Scalar:
		if !n.Readable() {
			return nil, false
		}
		v, err := n.Value()
		return v, err == nil
	case cell.Parent:
		return Values(n), true
	}
	return nil, false
}

// Encode writes the values below root in format. FormatTree is rendered by
// Tree instead.
func Encode(root cell.Parent, format Format) (string, error) {
	switch format {
	case FormatTree:
		return Tree(root, TreeOptions{Kinds: true}), nil
	case FormatYAML:
		return FormatYAMLOrdered(root)
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(Values(root)); err != nil {
			return "", fmt.Errorf("encode json: %w", err)
		}
		return buf.String(), nil
	case FormatTOML:
		data, err := toml.Marshal(Values(root))
		if err != nil {
			return "", fmt.Errorf("encode toml: %w", err)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("unsupported format %q", format)
}

// FormatYAMLOrdered renders values as YAML keeping the tree's child order,
// which a plain map would lose.
func FormatYAMLOrdered(root cell.Parent) (string, error) {
	node, err := valuesNode(root)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return "", fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode yaml: %w", err)
	}
	return buf.String(), nil
}

func valuesNode(p cell.Parent) (*yaml.Node, error) {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for _, child := range p.Values() {
		var vn *yaml.Node
		if cp, ok := child.(cell.Parent); ok && !isEnum(child) {
			n, err := valuesNode(cp)
			if err != nil {
				return nil, err
			}
			vn = n
		} else {
			v, ok := value(child)
			if !ok {
				continue
			}
			vn = &yaml.Node{}
			if err := vn.Encode(v); err != nil {
				return nil, fmt.Errorf("encode %s: %w", child.Name(), err)
			}
			if s, isString := v.(string); isString && strings.Contains(s, "\n") {
				vn.Style = yaml.LiteralStyle
			}
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: child.Name()}
		m.Content = append(m.Content, key, vn)
	}
	return m, nil
}

// Package loader reads tree definitions from YAML, JSON, TOML or HCL and
// builds them into cell trees.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a tree file syntax.
type Format string

const (
	FormatAuto Format = ""
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatHCL  Format = "hcl"
)

// ErrEmptyInput is returned when a definition has no content.
var ErrEmptyInput = errors.New("empty input")

// FormatFromPath maps a file extension to a format. Unknown extensions
// return FormatAuto.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	case ".hcl":
		return FormatHCL
	default:
		return FormatAuto
	}
}

// LoadFile reads and parses a tree definition, detecting the format from
// the extension or, failing that, the content.
func LoadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	def, err := load(data, FormatFromPath(path), path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// LoadBytes parses a tree definition. FormatAuto sniffs the content.
func LoadBytes(data []byte, format Format) (*Definition, error) {
	return load(data, format, "input.hcl")
}

func load(data []byte, format Format, filename string) (*Definition, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, ErrEmptyInput
	}
	if format == FormatAuto {
		format = Sniff(string(data))
	}
	def := &Definition{}
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, def); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, def); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, def); err != nil {
			return nil, fmt.Errorf("invalid TOML: %w", err)
		}
	case FormatHCL:
		var err error
		if def, err = decodeHCL(data, filename); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	return def, nil
}

var (
	hclBlockPattern   = regexp.MustCompile(`(?m)^\s*(cell|action)\s+"[^"]*"(\s+"[^"]*")?\s*\{`)
	tomlSectionPattern = regexp.MustCompile(`(?m)^\s*\[{1,2}[a-zA-Z_][a-zA-Z0-9_.-]*\]{1,2}\s*$`)
	tomlKeyPattern    = regexp.MustCompile(`^\s*[a-zA-Z_][a-zA-Z0-9_-]*\s*=\s*.+$`)
)

// Sniff guesses the format of a definition from its content.
func Sniff(input string) Format {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, "{") {
		return FormatJSON
	}
	if hclBlockPattern.MatchString(input) {
		return FormatHCL
	}
	if tomlSectionPattern.MatchString(input) {
		return FormatTOML
	}
	keyValue, nonEmpty := 0, 0
	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		nonEmpty++
		if tomlKeyPattern.MatchString(line) {
			keyValue++
		}
	}
	if nonEmpty > 0 && keyValue > nonEmpty/2 {
		return FormatTOML
	}
	return FormatYAML
}

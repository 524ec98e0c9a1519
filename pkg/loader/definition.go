package loader

// Kind names accepted in the kind field of a node.
const (
	KindLeaf      = "leaf"
	KindInt       = "int"
	KindFloat     = "float"
	KindString    = "string"
	KindVariant   = "variant"
	KindBool      = "bool"
	KindEnum      = "enum"
	KindContainer = "container"
	KindStrict    = "strict"
	KindUnion     = "union"
)

// Definition is the top level of a tree file. The root itself is always a
// plain container.
type Definition struct {
	Name     string      `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Children []Node      `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`
	Actions  []ActionDef `json:"actions,omitempty" yaml:"actions,omitempty" toml:"actions,omitempty"`
}

// Node describes one cell. Which fields apply depends on Kind.
type Node struct {
	Kind      string      `json:"kind" yaml:"kind" toml:"kind"`
	Name      string      `json:"name" yaml:"name" toml:"name"`
	Value     any         `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`
	Options   []string    `json:"options,omitempty" yaml:"options,omitempty" toml:"options,omitempty"`
	Children  []Node      `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`
	Branches  []BranchDef `json:"branches,omitempty" yaml:"branches,omitempty" toml:"branches,omitempty"`
	Selected  string      `json:"selected,omitempty" yaml:"selected,omitempty" toml:"selected,omitempty"`
	Accepts   string      `json:"accepts,omitempty" yaml:"accepts,omitempty" toml:"accepts,omitempty"`
	Check     string      `json:"check,omitempty" yaml:"check,omitempty" toml:"check,omitempty"`
	ReadOnly  bool        `json:"read_only,omitempty" yaml:"read_only,omitempty" toml:"read_only,omitempty"`
	WriteOnly bool        `json:"write_only,omitempty" yaml:"write_only,omitempty" toml:"write_only,omitempty"`
}

// BranchDef is one alternative of a union node.
type BranchDef struct {
	Name     string `json:"name" yaml:"name" toml:"name"`
	Children []Node `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`
}

// ActionDef declares an extra reserved-key action. When is a CEL
// predicate over path, depth and mode; an empty When is always active.
// Running the action shows Message in the status line.
type ActionDef struct {
	Key     string `json:"key" yaml:"key" toml:"key"`
	Name    string `json:"name" yaml:"name" toml:"name"`
	When    string `json:"when,omitempty" yaml:"when,omitempty" toml:"when,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty" toml:"message,omitempty"`
}

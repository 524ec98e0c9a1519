// Package settings holds build metadata and the per-run options shared by
// the figpie command and the packages it drives.
package settings

import "time"

// CliBinaryName is the canonical binary name.
const CliBinaryName = "figpie"

// EnvPrefix prefixes every environment override, e.g. FIGPIE_UI_TICK.
const EnvPrefix = "FIGPIE"

// DefaultTick is the input timeout used when nothing else is configured.
const DefaultTick = 750 * time.Millisecond

// VersionInformation is populated at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds the options for a single execution.
type Run struct {
	MinLogLevel int8
	// TreeFile is the definition to load. Empty means the built-in demo tree.
	TreeFile string
	// DebugLog is the file debug output goes to. Empty discards it.
	DebugLog string
	NoColor  bool
	Tick     time.Duration
	// StartPath is a dotted path to open before the first frame.
	StartPath string
}

// NewCliParams returns the defaults used by the command line.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		Tick:        DefaultTick,
	}
}

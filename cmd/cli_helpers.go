package cmd

import (
	"fmt"
	"runtime"
	rdebug "runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/figpie/internal/completion"
	"github.com/oakwood-commons/figpie/pkg/loader"
	"github.com/oakwood-commons/figpie/pkg/settings"
)

const (
	defaultSnapshotWidth  = 80
	defaultSnapshotHeight = 24
)

type snapshotSize struct {
	Width  int
	Height int
}

// resolveSnapshotSize prefers explicit flags, then the detected terminal,
// then 80x24.
func resolveSnapshotSize(flagWidth, flagHeight int, detect func() (int, int)) snapshotSize {
	width, height := flagWidth, flagHeight
	if (width <= 0 || height <= 0) && detect != nil {
		w, h := detect()
		if width <= 0 {
			width = w
		}
		if height <= 0 {
			height = h
		}
	}
	if width <= 0 {
		width = defaultSnapshotWidth
	}
	if height <= 0 {
		height = defaultSnapshotHeight
	}
	return snapshotSize{Width: width, Height: height}
}

// loadTree reads the tree file, or returns the demo tree when none is given.
func loadTree(path string) (*loader.Tree, error) {
	if path == "" {
		return &loader.Tree{Root: loader.Demo()}, nil
	}
	tree, err := loader.LoadTree(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return tree, nil
}

// cliVersionString builds the version line for `figpie version` and --version.
func cliVersionString() string {
	version := settings.VersionInformation.BuildVersion
	goVersion := runtime.Version()
	if info, ok := rdebug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" && version == "v0.0.0-nightly" {
			version = info.Main.Version
		}
		if info.GoVersion != "" {
			goVersion = info.GoVersion
		}
	}
	return fmt.Sprintf("%s %s (commit %s, built %s, %s)",
		settings.CliBinaryName, version,
		settings.VersionInformation.Commit, settings.VersionInformation.BuildTime, goVersion)
}

// completePath suggests tree paths for --path. The tree comes from the
// first positional argument, or the demo tree.
func completePath(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	file := ""
	if len(args) > 0 {
		file = args[0]
	}
	tree, err := loadTree(file)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	directive := cobra.ShellCompDirectiveNoFileComp
	var out []string
	for _, c := range completion.Paths(tree.Root, toComplete) {
		if c.More() {
			directive |= cobra.ShellCompDirectiveNoSpace
		}
		out = append(out, c.Text+"\t"+strings.TrimSpace(c.Detail))
	}
	return out, directive
}

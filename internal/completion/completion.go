// Package completion suggests tree paths for shell completion of --path.
package completion

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/figpie/internal/navigator"
	"github.com/oakwood-commons/figpie/pkg/cell"
)

const maxDetailWidth = 24

// Completion is a single suggestion.
type Completion struct {
	Text    string // full path to insert
	Display string // child name
	Kind    cell.Kind
	Detail  string
	Score   int
}

// More reports whether the suggestion can be descended into, so the shell
// should not append a space after it.
func (c Completion) More() bool {
	return strings.HasSuffix(c.Text, ".")
}

// Paths returns the children reachable at the end of partial whose names
// start with the last, unfinished segment. A case-sensitive prefix match
// scores above a case-insensitive one. Results keep tree order within a score.
func Paths(root *cell.Container, partial string) []Completion {
	parents, prefix := split(partial)

	var cur cell.Parent = root
	for _, name := range parents {
		child, err := cur.Child(name)
		if err != nil {
			return nil
		}
		if navigator.ModeOf(child) != navigator.ModeContainer {
			return nil
		}
		cur = child.(cell.Parent)
	}

	var out []Completion
	for _, child := range cur.Values() {
		score := match(child.Name(), prefix)
		if score == 0 {
			continue
		}
		text := navigator.FormatPath(append(slices.Clone(parents), child.Name()))
		if navigator.ModeOf(child) == navigator.ModeContainer {
			text += "."
		}
		out = append(out, Completion{
			Text:    text,
			Display: child.Name(),
			Kind:    child.Kind(),
			Detail:  detail(child),
			Score:   score,
		})
	}
	slices.SortStableFunc(out, func(a, b Completion) int { return b.Score - a.Score })
	return out
}

// split separates the finished segments of partial from the one being typed.
func split(partial string) ([]string, string) {
	if idx := strings.LastIndexByte(partial, '['); idx >= 0 && !strings.Contains(partial[idx:], "]") {
		return navigator.ParsePath(partial[:idx]), strings.TrimPrefix(partial[idx+1:], `"`)
	}
	segments := navigator.ParsePath(partial)
	if partial == "" || strings.HasSuffix(partial, ".") || strings.HasSuffix(partial, "]") || len(segments) == 0 {
		return segments, ""
	}
	return segments[:len(segments)-1], segments[len(segments)-1]
}

func match(name, prefix string) int {
	switch {
	case strings.HasPrefix(name, prefix):
		return 2
	case strings.HasPrefix(strings.ToLower(name), strings.ToLower(prefix)):
		return 1
	default:
		return 0
	}
}

func detail(c cell.Cell) string {
	switch n := c.(type) {
	case *cell.Union:
		return string(n.Kind()) + ": " + n.Selected()
	case *cell.Action:
		return string(n.Kind())
	case cell.Scalar:
		if !n.Readable() {
			return string(n.Kind())
		}
		v, err := n.Value()
		if err != nil {
			return string(n.Kind())
		}
		return string(n.Kind()) + " = " + runewidth.Truncate(fmt.Sprint(v), maxDetailWidth, "...")
	default:
		return string(c.Kind())
	}
}

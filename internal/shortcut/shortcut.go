// Package shortcut assigns one-keystroke selection keys to an ordered list
// of names and matches typed prefixes against them.
package shortcut

import (
	"strconv"
	"strings"
	"unicode"
)

// Shortcut binds a key to a name.
type Shortcut struct {
	Name string
	Key  string
}

// Assign returns one shortcut per name, in input order. For each name it
// takes the first character of the name that is not yet used, then the
// first unused uppercase form of those characters, and finally the next
// unused decimal number from a counter starting at 0. Keys in banned are
// never returned and no key is returned twice. Whitespace and
// non-printable characters are never used as keys.
func Assign(names []string, banned []string) []Shortcut {
	used := make(map[string]struct{}, len(banned)+len(names))
	for _, b := range banned {
		used[b] = struct{}{}
	}
	out := make([]Shortcut, 0, len(names))
	cursor := 0

	for _, name := range names {
		key, ok := fromName(name, used, false)
		if !ok {
			key, ok = fromName(name, used, true)
		}
		if !ok {
			for {
				key = strconv.Itoa(cursor)
				cursor++
				if _, taken := used[key]; !taken {
					break
				}
			}
		}
		used[key] = struct{}{}
		out = append(out, Shortcut{Name: name, Key: key})
	}
	return out
}

func fromName(name string, used map[string]struct{}, upper bool) (string, bool) {
	for _, r := range name {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
		}
		key := string(r)
		if _, taken := used[key]; !taken {
			return key, true
		}
	}
	return "", false
}

// Keys returns the keys of shortcuts in order.
func Keys(shortcuts []Shortcut) []string {
	keys := make([]string, len(shortcuts))
	for i, s := range shortcuts {
		keys[i] = s.Key
	}
	return keys
}

// Match returns the keys that start with prefix, preserving order. The
// empty prefix matches every key.
func Match(keys []string, prefix string) []string {
	var out []string
	for _, k := range keys {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	return out
}

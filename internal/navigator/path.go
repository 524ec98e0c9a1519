package navigator

import "strings"

// ParsePath splits a path such as lvl1.lvl2["float prop"] into child
// names. Bracketed segments may be quoted to carry dots or spaces. An
// incomplete bracket ends parsing.
func ParsePath(input string) []string {
	var names []string
	i := 0
	for i < len(input) {
		ch := input[i]
		if ch == '.' {
			i++
			continue
		}
		if ch == '[' {
			end := strings.IndexByte(input[i:], ']')
			if end == -1 {
				break
			}
			segment := input[i+1 : i+end]
			if len(segment) >= 2 && segment[0] == '"' && segment[len(segment)-1] == '"' {
				segment = segment[1 : len(segment)-1]
			}
			if segment != "" {
				names = append(names, segment)
			}
			i += end + 1
			continue
		}
		j := i
		for j < len(input) && input[j] != '.' && input[j] != '[' {
			j++
		}
		names = append(names, input[i:j])
		i = j
	}
	return names
}

// FormatPath is the inverse of ParsePath. Names that contain a dot, a
// bracket or a space are written as ["name"].
func FormatPath(names []string) string {
	var b strings.Builder
	for idx, name := range names {
		if strings.ContainsAny(name, ".[] ") {
			b.WriteString(`["`)
			b.WriteString(name)
			b.WriteString(`"]`)
			continue
		}
		if idx > 0 {
			b.WriteByte('.')
		}
		b.WriteString(name)
	}
	return b.String()
}

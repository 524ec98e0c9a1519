package navigator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"lvl1", []string{"lvl1"}},
		{"lvl1.lvl2.2c1", []string{"lvl1", "lvl2", "2c1"}},
		{`lvl1.lvl2["float prop"]`, []string{"lvl1", "lvl2", "float prop"}},
		{`["a.b"].c`, []string{"a.b", "c"}},
		{"a[b]", []string{"a", "b"}},
		{"a[unterminated", []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePath(tt.input))
		})
	}
}

func TestFormatPath(t *testing.T) {
	assert.Equal(t, "root.lvl1", FormatPath([]string{"root", "lvl1"}))
	assert.Equal(t, `root["float prop"]`, FormatPath([]string{"root", "float prop"}))

	names := []string{"lvl1", "a.b", "union", "type"}
	assert.Equal(t, names, ParsePath(FormatPath(names)))
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	assert.Equal(t, 750*time.Millisecond, cfg.UI.Tick)
	assert.False(t, cfg.UI.NoColor)
	assert.Equal(t, "h", cfg.Keys.Back)
	assert.Equal(t, "Q", cfg.Keys.Quit)
	assert.Equal(t, "81", cfg.UI.Theme.Key)
	assert.Equal(t, "203", cfg.UI.Theme.Error)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultYAMLIsACopy(t *testing.T) {
	a := DefaultYAML()
	require.NotEmpty(t, a)
	a[0] = '!'
	assert.NotEqual(t, a[0], DefaultYAML()[0])
}

func TestValidate(t *testing.T) {
	base, err := Default()
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "zero tick", mutate: func(c *Config) { c.UI.Tick = 0 }},
		{name: "negative tick", mutate: func(c *Config) { c.UI.Tick = -time.Second }},
		{name: "missing back", mutate: func(c *Config) { c.Keys.Back = "" }},
		{name: "missing quit", mutate: func(c *Config) { c.Keys.Quit = "" }},
		{name: "same keys", mutate: func(c *Config) { c.Keys.Quit = c.Keys.Back }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

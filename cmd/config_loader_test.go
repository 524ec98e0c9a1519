package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolateConfigDir(t)
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 750*time.Millisecond, cfg.UI.Tick)
	assert.Equal(t, "h", cfg.Keys.Back)
	assert.Equal(t, "Q", cfg.Keys.Quit)
	assert.Equal(t, "81", cfg.UI.Theme.Accent)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_UserDirFile(t *testing.T) {
	dir := isolateConfigDir(t)
	writeFile(t, filepath.Join(dir, "figpie", "config.yaml"), "ui:\n  tick: 2s\nkeys:\n  back: b\n")

	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.UI.Tick)
	assert.Equal(t, "b", cfg.Keys.Back)
	assert.Equal(t, "Q", cfg.Keys.Quit, "unset keys keep their default")
	assert.Equal(t, "246", cfg.UI.Theme.Value)
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	isolateConfigDir(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "ui:\n  no_color: true\n  theme:\n    key: \"#00ff00\"\n")

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.UI.NoColor)
	assert.Equal(t, "#00ff00", cfg.UI.Theme.Key)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	isolateConfigDir(t)
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	dir := isolateConfigDir(t)
	writeFile(t, filepath.Join(dir, "figpie", "config.yaml"), "ui: [unclosed\n")
	_, err := loadConfig("")
	require.Error(t, err)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	isolateConfigDir(t)
	t.Setenv("FIGPIE_UI_TICK", "100ms")
	t.Setenv("FIGPIE_KEYS_QUIT", "X")
	t.Setenv("FIGPIE_UI_NO_COLOR", "true")

	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 100*time.Millisecond, cfg.UI.Tick)
	assert.Equal(t, "X", cfg.Keys.Quit)
	assert.True(t, cfg.UI.NoColor)
}

func TestResolveConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "figpie"), resolveConfigDir())
}

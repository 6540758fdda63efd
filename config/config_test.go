package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/labyrinth/world"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "labyrinth.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefault_Valid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 193, cfg.Grid.Resolution)
	assert.Equal(t, float32(100), cfg.Grid.Scale)
	assert.False(t, cfg.Log.Debug)
	assert.Empty(t, cfg.Dump.Dir)
}

func TestLoad_OverridesOnlyNamedKeys(t *testing.T) {
	path := writeConfig(t, `
world = "maps/clock.ads"
variant = "circles"

[grid]
resolution = 97

[log]
debug = true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "maps/clock.ads", cfg.World)
	assert.Equal(t, "circles", cfg.Variant)
	assert.Equal(t, 97, cfg.Grid.Resolution)
	assert.Equal(t, float32(100), cfg.Grid.Scale, "scale keeps its default")
	assert.True(t, cfg.Log.Debug)
	assert.False(t, cfg.Strict)
}

func TestLoad_UnknownKey(t *testing.T) {
	path := writeConfig(t, "world = \"a.ads\"\n[grid]\nresolutoin = 97\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolutoin")
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "world = \n"))
	assert.Error(t, err, "syntax error")

	_, err = Load(writeConfig(t, "[grid]\nresolution = 96\n"))
	assert.Error(t, err, "even resolution")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"empty world", func(c *Config) { c.World = "" }},
		{"unknown variant", func(c *Config) { c.Variant = "squares" }},
		{"zero scale", func(c *Config) { c.Grid.Scale = 0 }},
		{"tiny grid", func(c *Config) { c.Grid.Resolution = 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestWorldOptions(t *testing.T) {
	cfg := Default()
	cfg.Variant = "points"
	cfg.Strict = true

	o := cfg.WorldOptions()
	assert.Equal(t, world.VariantPoints, o.Variant)
	assert.True(t, o.Strict)
}

func TestGridGeometry(t *testing.T) {
	cfg := Default()
	cfg.Grid.Resolution, cfg.Grid.Scale = 33, 16
	g, err := cfg.GridGeometry()
	require.NoError(t, err)
	assert.Equal(t, 16, g.Center())
}

func TestLoad_ExampleConfig(t *testing.T) {
	cfg, err := Load("../labyrinth.toml")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

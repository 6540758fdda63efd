// Package config loads the run configuration from TOML. A config file only
// overrides the fields it names; everything else keeps its default.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/labyrinth/constant"
	"github.com/lixenwraith/labyrinth/grid"
	"github.com/lixenwraith/labyrinth/world"
)

// Config holds the parameters of one preparation run
type Config struct {
	// World is the path of the world description file
	World string `toml:"world"`

	// Variant is one of auto, points, circles
	Variant string `toml:"variant"`

	// Strict makes malformed or missing headers fatal
	Strict bool `toml:"strict"`

	Grid GridConfig `toml:"grid"`
	Log  LogConfig  `toml:"log"`
	Dump DumpConfig `toml:"dump"`
}

type GridConfig struct {
	Resolution int     `toml:"resolution"` // cells per axis, odd
	Scale      float32 `toml:"scale"`      // cells per unit
}

type LogConfig struct {
	Debug bool `toml:"debug"`
}

type DumpConfig struct {
	// Dir receives raw buffers and a manifest; empty disables the dump
	Dir string `toml:"dir"`
}

// Default returns the parameters of the maze scene
func Default() Config {
	return Config{
		World:   "world.ads",
		Variant: "auto",
		Grid: GridConfig{
			Resolution: constant.GridResolution,
			Scale:      constant.GridScale,
		},
	}
}

// Load decodes the TOML file at path over the defaults
func Load(path string) (Config, error) {
	conf := Default()
	md, err := toml.DecodeFile(path, &conf)
	if err != nil {
		return conf, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return conf, fmt.Errorf("config %s: unknown key(s) %v", path, undecoded)
	}
	return conf, conf.Validate()
}

// Validate checks the values a run cannot start with
func (c Config) Validate() error {
	if c.World == "" {
		return fmt.Errorf("config: world path is empty")
	}
	if _, ok := world.ParseVariant(c.Variant); !ok {
		return fmt.Errorf("config: unknown variant %q", c.Variant)
	}
	if _, err := c.GridGeometry(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// GridGeometry returns the validated grid
func (c Config) GridGeometry() (grid.Grid, error) {
	return grid.New(c.Grid.Resolution, c.Grid.Scale)
}

// WorldOptions maps the configuration onto world load options
func (c Config) WorldOptions() world.Options {
	v, _ := world.ParseVariant(c.Variant)
	return world.Options{Variant: v, Strict: c.Strict}
}

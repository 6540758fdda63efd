// Package dump writes the prepared buffers to a directory so a driver in
// another process can upload them without re-parsing the world file.
//
// Each buffer becomes <name>.f32 or <name>.i32 holding raw little-endian
// values; manifest.toml lists names, element types, counts and strides.
package dump

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/labyrinth/constant"
	"github.com/lixenwraith/labyrinth/setup"
)

const ManifestName = "manifest.toml"

// Buffer is one named flat array; exactly one of F32 and I32 is set
type Buffer struct {
	Name   string
	Stride int
	F32    []float32
	I32    []int32
}

func (b Buffer) ext() string {
	if b.I32 != nil {
		return "i32"
	}
	return "f32"
}

func (b Buffer) count() int {
	if b.I32 != nil {
		return len(b.I32)
	}
	return len(b.F32)
}

// Entry describes one dumped buffer in the manifest
type Entry struct {
	Name   string `toml:"name"`
	File   string `toml:"file"`
	Type   string `toml:"type"`
	Count  int    `toml:"count"`
	Stride int    `toml:"stride"`
}

type Manifest struct {
	Variant    string  `toml:"variant"`
	Resolution int     `toml:"resolution"`
	Scale      float32 `toml:"scale"`
	Buffers    []Entry `toml:"buffer"`
}

// Buffers lists the buffers of a state in upload order. Layers of the
// variant not in use are still listed, with zero length.
func Buffers(s *setup.State) []Buffer {
	p, o, c := s.Points, s.Obstacles, s.Circles
	occ, nb := s.Occupancy, s.Neighbours
	return []Buffer{
		{Name: "cell_positions", Stride: constant.PositionStride, F32: s.CellPositions},
		{Name: "matrix_row", Stride: 1, I32: occ.Row},
		{Name: "matrix_col", Stride: 1, I32: occ.Col},
		{Name: "lookahead_row", Stride: constant.BandStride, F32: occ.LookaheadRow},
		{Name: "lookahead_col", Stride: constant.BandStride, F32: occ.LookaheadCol},
		{Name: "activation", Stride: constant.ActivationStride, I32: occ.Activation},
		{Name: "neighbours_row", Stride: 1, I32: nb.Row},
		{Name: "neighbours_col", Stride: 1, I32: nb.Col},
		{Name: "tiles_x", Stride: constant.TileCorners, F32: s.Tiles.X},
		{Name: "tiles_y", Stride: constant.TileCorners, F32: s.Tiles.Y},
		{Name: "points_position", Stride: constant.PositionStride, F32: p.Position},
		{Name: "points_old_position", Stride: constant.PositionStride, F32: p.OldPosition},
		{Name: "points_velocity", Stride: constant.PositionStride, F32: p.Velocity},
		{Name: "points_target", Stride: constant.PositionStride, F32: p.Target},
		{Name: "points_color", Stride: constant.ColorStride, F32: p.Color},
		{Name: "points_path_faithful", Stride: 1, I32: p.PathFaithful},
		{Name: "points_gravitation", Stride: 1, F32: p.Gravitation},
		{Name: "attraction_map", Stride: constant.PairStride, I32: p.Attraction},
		{Name: "obstacle_positions", Stride: constant.PositionStride, F32: o.Position},
		{Name: "obstacle_colors", Stride: constant.ColorStride, F32: o.Color},
		{Name: "circles_center", Stride: constant.PositionStride, F32: c.Center},
		{Name: "circles_color", Stride: constant.ColorStride, F32: c.Color},
		{Name: "circles_radius", Stride: constant.PositionStride, F32: c.Radius},
		{Name: "circles_speed", Stride: constant.PositionStride, F32: c.Speed},
		{Name: "circles_draw", Stride: 1, I32: c.Draw},
		{Name: "circles_pulse", Stride: 1, I32: c.Pulse},
		{Name: "influence_map", Stride: constant.PairStride, I32: c.Influence},
		{Name: "circles_outline", Stride: constant.PositionStride, F32: c.Outline},
	}
}

// Write dumps every buffer of s into dir, creating it if needed
func Write(dir string, s *setup.State) (*Manifest, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("dump dir: %w", err)
	}

	m := &Manifest{
		Variant:    s.World.Variant.String(),
		Resolution: s.Grid.Resolution,
		Scale:      s.Grid.Scale,
	}
	for _, b := range Buffers(s) {
		file := b.Name + "." + b.ext()
		if err := writeBuffer(filepath.Join(dir, file), b); err != nil {
			return nil, err
		}
		m.Buffers = append(m.Buffers, Entry{
			Name:   b.Name,
			File:   file,
			Type:   b.ext(),
			Count:  b.count(),
			Stride: b.Stride,
		})
	}

	if err := writeManifest(filepath.Join(dir, ManifestName), m); err != nil {
		return nil, err
	}
	log.Printf("[DUMP] wrote %d buffer(s) to %s", len(m.Buffers), dir)
	return m, nil
}

func writeBuffer(path string, b Buffer) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dump %s: %w", b.Name, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("dump %s: %w", b.Name, cerr)
		}
	}()

	w := bufio.NewWriter(f)
	var data any = b.F32
	if b.I32 != nil {
		data = b.I32
	}
	if err := binary.Write(w, binary.LittleEndian, data); err != nil {
		return fmt.Errorf("dump %s: %w", b.Name, err)
	}
	return w.Flush()
}

func writeManifest(path string, m *Manifest) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dump manifest: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	return toml.NewEncoder(f).Encode(m)
}

// ReadManifest loads a manifest written by Write
func ReadManifest(dir string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(filepath.Join(dir, ManifestName), &m); err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return &m, nil
}

// Package setup runs the initialization pipeline once: world file, typed
// world, grid layers, flat buffers. The resulting State is handed to the
// compute/render driver; nothing here runs during the simulation phase.
package setup

import (
	"log"

	"github.com/lixenwraith/labyrinth/config"
	"github.com/lixenwraith/labyrinth/grid"
	"github.com/lixenwraith/labyrinth/world"
)

// State is everything the driver uploads. Ownership of every slice passes to
// the caller; setup keeps no reference.
type State struct {
	World *world.World
	Grid  grid.Grid

	CellPositions []float32
	Occupancy     *grid.Occupancy
	Neighbours    *grid.Neighbours
	Tiles         grid.TileBoard

	Points    world.PointBuffers
	Obstacles world.ObstacleBuffers
	Circles   world.CircleBuffers
}

// Build loads the configured world file and derives all layers
func Build(cfg config.Config) (*State, error) {
	g, err := cfg.GridGeometry()
	if err != nil {
		return nil, err
	}
	w, err := world.LoadFile(cfg.World, cfg.WorldOptions())
	if err != nil {
		return nil, err
	}
	return FromWorld(w, g), nil
}

// FromWorld derives the grid layers and buffers of an already parsed world
func FromWorld(w *world.World, g grid.Grid) *State {
	occ := grid.MapObstacles(g, w.Obstacles)
	nb := grid.MapNeighbours(g, w.Points)

	s := &State{
		World:         w,
		Grid:          g,
		CellPositions: g.CellPositions(),
		Occupancy:     occ,
		Neighbours:    nb,
		Tiles:         grid.Tiles(),
		Points:        w.PointBuffers(),
		Obstacles:     w.ObstacleBuffers(),
		Circles:       w.CircleBuffers(),
	}

	log.Printf("[SETUP] grid %dx%d: row cells=%d col cells=%d neighbours=%d skipped=%d",
		g.Resolution, g.Resolution,
		grid.CountOccupied(occ.Row), grid.CountOccupied(occ.Col),
		grid.CountOccupied(nb.Row), len(nb.Skipped))
	return s
}

// Summary is a compact description of a State for CLI output
type Summary struct {
	Variant        string
	Dots           int
	Obstacles      int
	Attractions    int
	Circles        int
	Influences     int
	RowOccupied    int
	ColOccupied    int
	Activated      int
	NeighbourCells int
	SkippedPoints  int
	ClampedWalls   int
	Warnings       int
}

func (s *State) Summary() Summary {
	activated := 0
	for j := 0; j < len(s.Occupancy.Activation); j += 2 {
		if s.Occupancy.Activation[j] != 0 || s.Occupancy.Activation[j+1] != 0 {
			activated++
		}
	}
	return Summary{
		Variant:        s.World.Variant.String(),
		Dots:           len(s.World.Points),
		Obstacles:      len(s.World.Obstacles),
		Attractions:    len(s.World.Attractions),
		Circles:        len(s.World.Circles),
		Influences:     len(s.World.Influences),
		RowOccupied:    grid.CountOccupied(s.Occupancy.Row),
		ColOccupied:    grid.CountOccupied(s.Occupancy.Col),
		Activated:      activated,
		NeighbourCells: grid.CountOccupied(s.Neighbours.Row),
		SkippedPoints:  len(s.Neighbours.Skipped),
		ClampedWalls:   len(s.Occupancy.Clamped),
		Warnings:       len(s.World.Warnings),
	}
}

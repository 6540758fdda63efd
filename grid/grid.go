// Package grid discretizes the normalized [-1,1]² coordinate space into a
// square cell grid and derives the per-cell layers the simulation kernels read:
// obstacle occupancy, lookahead bands, activation flags and point neighbours.
//
// Every layer is a flat slice addressed by one of two linear index schemes:
// row-major (Resolution*y + x) and column-major (Resolution*x + y). Keeping both
// lets a kernel query either axis with a single lookup.
package grid

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/labyrinth/constant"
)

// ErrOutOfGrid marks a coordinate that projects outside the grid
var ErrOutOfGrid = errors.New("coordinate outside grid")

// Grid is the geometry of the discretization. Cell c along an axis covers the
// continuous coordinate (c - Center()) / Scale.
type Grid struct {
	Resolution int
	Scale      float32 // cells per unit of normalized space
}

// Default returns the 193x193 grid with 0.01 cells
func Default() Grid {
	return Grid{Resolution: constant.GridResolution, Scale: constant.GridScale}
}

// New validates a grid geometry. Resolution must be odd so one cell sits on the origin.
func New(resolution int, scale float32) (Grid, error) {
	if resolution < constant.GridMinResolution || resolution%2 == 0 {
		return Grid{}, fmt.Errorf("grid resolution %d: must be odd and >= %d", resolution, constant.GridMinResolution)
	}
	if !(scale > 0) {
		return Grid{}, fmt.Errorf("grid scale %v: must be positive", scale)
	}
	return Grid{Resolution: resolution, Scale: scale}, nil
}

// Cells is the flat length of one layer
func (g Grid) Cells() int {
	return g.Resolution * g.Resolution
}

// Center is the cell index of coordinate 0
func (g Grid) Center() int {
	return (g.Resolution - 1) / 2
}

// CellSize is the continuous width of one cell
func (g Grid) CellSize() float32 {
	return 1 / g.Scale
}

// Cell maps a continuous coordinate to its cell along one axis: v*Scale + Center, rounded half up.
// The result may lie outside [0, Resolution); check with InBounds.
func (g Grid) Cell(v float32) int {
	return int(math32.Floor(v*g.Scale + float32(g.Center()) + 0.5))
}

// Coord maps a cell back to the continuous coordinate at its center
func (g Grid) Coord(cell int) float32 {
	return float32(cell-g.Center()) / g.Scale
}

// InBounds reports whether a cell index is on the grid along one axis
func (g Grid) InBounds(cell int) bool {
	return cell >= 0 && cell < g.Resolution
}

// ClampCell pulls a cell index onto the grid along one axis
func (g Grid) ClampCell(cell int) int {
	return min(max(cell, 0), g.Resolution-1)
}

// RowIndex is the row-major linear index: Y is the stride axis
func (g Grid) RowIndex(x, y int) int {
	return g.Resolution*y + x
}

// ColIndex is the column-major linear index: X is the stride axis
func (g Grid) ColIndex(x, y int) int {
	return g.Resolution*x + y
}

// Locate projects a position onto the grid and returns its row-major and
// column-major indices
func (g Grid) Locate(p mgl32.Vec2) (row, col int, err error) {
	x, y := g.Cell(p.X()), g.Cell(p.Y())
	if !g.InBounds(x) || !g.InBounds(y) {
		return 0, 0, fmt.Errorf("%w: (%g, %g) -> cell (%d, %d) of %d", ErrOutOfGrid, p.X(), p.Y(), x, y, g.Resolution)
	}
	return g.RowIndex(x, y), g.ColIndex(x, y), nil
}

// Extent is the continuous half-width covered by the grid, measured between outer cell centers
func (g Grid) Extent() float32 {
	return float32(g.Center()) / g.Scale
}

// CellPositions returns the continuous position of every cell, row-major,
// two floats per cell. This is the sample matrix drawn under the simulation.
func (g Grid) CellPositions() []float32 {
	out := make([]float32, 0, g.Cells()*constant.PositionStride)
	for y := 0; y < g.Resolution; y++ {
		cy := g.Coord(y)
		for x := 0; x < g.Resolution; x++ {
			out = append(out, g.Coord(x), cy)
		}
	}
	return out
}

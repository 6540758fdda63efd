package grid

import (
	"log"

	"github.com/chewxy/math32"

	"github.com/lixenwraith/labyrinth/constant"
	"github.com/lixenwraith/labyrinth/world"
)

// ActivationState gates how an obstacle writes the activation layer. The state
// is threaded through one mapping pass and advances once per obstacle.
type ActivationState int

const (
	// ActivationOpen: no boundary seen yet, covered cells get both slots
	ActivationOpen ActivationState = iota
	// ActivationFirstClosed: first boundary done, covered cells get the second slot only
	ActivationFirstClosed
	// ActivationSealed: both boundaries done, further obstacles leave the layer untouched
	ActivationSealed
)

func (s ActivationState) String() string {
	switch s {
	case ActivationOpen:
		return "open"
	case ActivationFirstClosed:
		return "first-closed"
	case ActivationSealed:
		return "sealed"
	}
	return "unknown"
}

func (s ActivationState) next() ActivationState {
	if s < ActivationSealed {
		return s + 1
	}
	return s
}

// Occupancy holds the obstacle-derived layers of one grid
type Occupancy struct {
	Grid Grid

	Row []int32 // row-major, 1 where an obstacle covers the cell
	Col []int32 // column-major, 1 where an obstacle covers the cell

	// LookaheadRow stores per row-major cell the continuous min/max X of the covering obstacle
	LookaheadRow []float32
	// LookaheadCol stores per column-major cell the continuous min/max Y of the covering obstacle
	LookaheadCol []float32

	// Activation stores per column-major cell the (up, down) slots
	Activation []int32

	// State is the activation state after the last mapped obstacle
	State ActivationState

	// Clamped lists the indices of obstacles with an endpoint beyond the grid edge
	Clamped []int
}

// NewOccupancy allocates zeroed layers for g
func NewOccupancy(g Grid) *Occupancy {
	n := g.Cells()
	return &Occupancy{
		Grid:         g,
		Row:          make([]int32, n),
		Col:          make([]int32, n),
		LookaheadRow: make([]float32, n*constant.BandStride),
		LookaheadCol: make([]float32, n*constant.BandStride),
		Activation:   make([]int32, n*constant.ActivationStride),
	}
}

// MapObstacles rasterizes every obstacle onto a fresh Occupancy.
//
// Each endpoint is converted into both linear index schemes and every index in
// the inclusive range between the two endpoint indices is marked. This is a
// thick-line fill, exact for axis-aligned segments; a diagonal segment fills
// the whole linear span between its endpoints.
//
// Endpoints beyond the grid edge (a wall at x=1 on the default grid) are pulled
// onto the outermost cell; the lookahead bands keep the unclamped extent.
func MapObstacles(g Grid, obstacles []world.Obstacle) *Occupancy {
	o := NewOccupancy(g)
	for i, ob := range obstacles {
		if o.stamp(ob) {
			log.Printf("[GRID] obstacle %d clamped to grid: segment (%g, %g)-(%g, %g)",
				i, ob.Start.X(), ob.Start.Y(), ob.End.X(), ob.End.Y())
			o.Clamped = append(o.Clamped, i)
		}
		o.State = o.State.next()
	}
	log.Printf("[GRID] mapped %d obstacle(s) on %dx%d grid, activation %s, clamped %d",
		len(obstacles), g.Resolution, g.Resolution, o.State, len(o.Clamped))
	return o
}

// stamp writes one obstacle and reports whether an endpoint had to be clamped
func (o *Occupancy) stamp(ob world.Obstacle) (clamped bool) {
	g := o.Grid
	cells := [...]int{g.Cell(ob.Start.X()), g.Cell(ob.Start.Y()), g.Cell(ob.End.X()), g.Cell(ob.End.Y())}
	for i, c := range cells {
		in := g.ClampCell(c)
		clamped = clamped || in != c
		cells[i] = in
	}
	sx, sy, ex, ey := cells[0], cells[1], cells[2], cells[3]

	minX, maxX := math32.Min(ob.Start.X(), ob.End.X()), math32.Max(ob.Start.X(), ob.End.X())
	minY, maxY := math32.Min(ob.Start.Y(), ob.End.Y()), math32.Max(ob.Start.Y(), ob.End.Y())

	lo, hi := span(g.RowIndex(sx, sy), g.RowIndex(ex, ey))
	for k := lo; k <= hi; k++ {
		o.Row[k] = 1
		o.LookaheadRow[2*k] = minX
		o.LookaheadRow[2*k+1] = maxX
	}

	lo, hi = span(g.ColIndex(sx, sy), g.ColIndex(ex, ey))
	for j := lo; j <= hi; j++ {
		o.Col[j] = 1
		o.LookaheadCol[2*j] = minY
		o.LookaheadCol[2*j+1] = maxY

		switch o.State {
		case ActivationOpen:
			o.Activation[2*j] = 1
			o.Activation[2*j+1] = 1
		case ActivationFirstClosed:
			o.Activation[2*j+1] = 1
		}
	}
	return clamped
}

func span(a, b int) (int, int) {
	if a < b {
		return a, b
	}
	return b, a
}

// CountOccupied returns the number of set cells in a layer
func CountOccupied(layer []int32) int {
	n := 0
	for _, v := range layer {
		if v != 0 {
			n++
		}
	}
	return n
}

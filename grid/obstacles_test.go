package grid

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/labyrinth/world"
)

func segment(x0, y0, x1, y1 float32) world.Obstacle {
	return world.Obstacle{Start: mgl32.Vec2{x0, y0}, End: mgl32.Vec2{x1, y1}, Color: world.DefaultColor}
}

func TestMapObstacles_HorizontalRow(t *testing.T) {
	g := Default()
	occ := MapObstacles(g, []world.Obstacle{segment(-0.5, 0, 0.5, 0)})

	y := g.Cell(0)
	for x := 0; x < g.Resolution; x++ {
		k := g.RowIndex(x, y)
		if x >= 46 && x <= 146 {
			assert.Equal(t, int32(1), occ.Row[k], "x=%d", x)
			assert.Equal(t, float32(-0.5), occ.LookaheadRow[2*k])
			assert.Equal(t, float32(0.5), occ.LookaheadRow[2*k+1])
		} else {
			assert.Zero(t, occ.Row[k], "x=%d", x)
		}
	}
	assert.Equal(t, 101, CountOccupied(occ.Row))

	// the column-major span of a horizontal segment fills whole columns between its ends
	assert.Equal(t, 100*g.Resolution+1, CountOccupied(occ.Col))
}

func TestMapObstacles_VerticalCol(t *testing.T) {
	g := Default()
	occ := MapObstacles(g, []world.Obstacle{segment(0.25, 0.3, 0.25, -0.1)})

	x := g.Cell(0.25)
	lo, hi := g.Cell(-0.1), g.Cell(0.3)
	for y := lo; y <= hi; y++ {
		j := g.ColIndex(x, y)
		assert.Equal(t, int32(1), occ.Col[j])
		assert.Equal(t, float32(-0.1), occ.LookaheadCol[2*j])
		assert.Equal(t, float32(0.3), occ.LookaheadCol[2*j+1])
	}
	assert.Equal(t, hi-lo+1, CountOccupied(occ.Col))
	assert.Zero(t, occ.Col[g.ColIndex(x, hi+1)])
	assert.Zero(t, occ.Col[g.ColIndex(x, lo-1)])
}

func TestMapObstacles_ActivationStates(t *testing.T) {
	g := Default()
	left := segment(-0.5, -0.2, -0.5, 0.2)
	right := segment(0.5, -0.2, 0.5, 0.2)
	middle := segment(0, -0.2, 0, 0.2)

	occ := MapObstacles(g, []world.Obstacle{left, right, middle})
	assert.Equal(t, ActivationSealed, occ.State)

	lx, rx := g.Cell(-0.5), g.Cell(0.5)
	lo, hi := g.Cell(-0.2), g.Cell(0.2)
	inSpan := func(y int) bool { return y >= lo && y <= hi }

	for x := 0; x < g.Resolution; x++ {
		for y := 0; y < g.Resolution; y++ {
			j := g.ColIndex(x, y)
			up, down := occ.Activation[2*j], occ.Activation[2*j+1]
			switch {
			case x == lx && inSpan(y):
				assert.Equal(t, [2]int32{1, 1}, [2]int32{up, down}, "first obstacle (%d,%d)", x, y)
			case x == rx && inSpan(y):
				assert.Equal(t, [2]int32{0, 1}, [2]int32{up, down}, "second obstacle (%d,%d)", x, y)
			default:
				if up != 0 || down != 0 {
					t.Fatalf("cell (%d,%d) activated outside both boundaries: (%d,%d)", x, y, up, down)
				}
			}
		}
	}

	// the third obstacle still occupies its cells
	assert.Equal(t, int32(1), occ.Col[g.ColIndex(g.Cell(0), g.Cell(0))])
}

func TestMapObstacles_StateProgression(t *testing.T) {
	g := Default()
	occ := MapObstacles(g, nil)
	assert.Equal(t, ActivationOpen, occ.State)

	occ = MapObstacles(g, []world.Obstacle{segment(0, 0, 0, 0.1)})
	assert.Equal(t, ActivationFirstClosed, occ.State)

	assert.Equal(t, "sealed", ActivationSealed.String())
	assert.Equal(t, ActivationSealed, ActivationSealed.next())
}

func TestMapObstacles_EmptyLayersZeroed(t *testing.T) {
	g := Default()
	occ := MapObstacles(g, nil)
	assert.Len(t, occ.Row, g.Cells())
	assert.Len(t, occ.LookaheadCol, 2*g.Cells())
	assert.Len(t, occ.Activation, 2*g.Cells())
	assert.Zero(t, CountOccupied(occ.Row))
	assert.Zero(t, CountOccupied(occ.Activation))
}

func TestMapObstacles_ClampsToEdge(t *testing.T) {
	g := Default()
	occ := MapObstacles(g, []world.Obstacle{
		segment(0, 0, 0.5, 0),
		segment(1, -0.2, 1, 0.2),
		segment(-1.5, 0.5, 0.5, 0.5),
	})
	assert.Equal(t, []int{1, 2}, occ.Clamped)

	// a wall on the screen edge lands on the outermost column
	edge := g.Resolution - 1
	for y := g.Cell(-0.2); y <= g.Cell(0.2); y++ {
		j := g.ColIndex(edge, y)
		assert.Equal(t, int32(1), occ.Col[j], "y=%d", y)
		assert.Equal(t, [2]int32{0, 1}, [2]int32{occ.Activation[2*j], occ.Activation[2*j+1]})
	}

	// the row span starts at the first cell and the band keeps the true extent
	k := g.RowIndex(0, g.Cell(0.5))
	assert.Equal(t, int32(1), occ.Row[k])
	assert.Equal(t, float32(-1.5), occ.LookaheadRow[2*k])
	assert.Equal(t, float32(0.5), occ.LookaheadRow[2*k+1])
}

func TestClampCell(t *testing.T) {
	g := Default()
	assert.Equal(t, 0, g.ClampCell(-4))
	assert.Equal(t, 192, g.ClampCell(193))
	assert.Equal(t, 17, g.ClampCell(17))
}

func TestMapObstacles_Deterministic(t *testing.T) {
	obs := []world.Obstacle{segment(-0.5, 0.2, 0.5, 0.2), segment(-0.5, -0.2, 0.5, -0.2)}
	a := MapObstacles(Default(), obs)
	b := MapObstacles(Default(), obs)
	assert.Equal(t, a, b)
}

package grid

import (
	"github.com/lixenwraith/labyrinth/constant"
)

// TileBoard is the fixed board of square tiles covering [-1,1]², filled left
// to right, top to bottom. Each tile stores four corners in the order
// upper-left, upper-right, lower-left, lower-right.
type TileBoard struct {
	X []float32
	Y []float32
}

// Tiles builds the board
func Tiles() TileBoard {
	const count = constant.TileBoardSide * constant.TileBoardSide
	b := TileBoard{
		X: make([]float32, count*constant.TileCorners),
		Y: make([]float32, count*constant.TileCorners),
	}
	for i := 0; i < count; i++ {
		col, row := i%constant.TileBoardSide, i/constant.TileBoardSide
		left := float32(-1 + float64(col)*constant.TileStep)
		top := float32(1 - float64(row)*constant.TileStep)
		right := left + constant.TileStep
		bottom := top - constant.TileStep

		base := i * constant.TileCorners
		b.X[base+0], b.Y[base+0] = left, top
		b.X[base+1], b.Y[base+1] = right, top
		b.X[base+2], b.Y[base+2] = left, bottom
		b.X[base+3], b.Y[base+3] = right, bottom
	}
	return b
}

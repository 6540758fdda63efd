package grid

import (
	"log"

	"github.com/lixenwraith/labyrinth/world"
)

// Neighbours marks the cells currently holding a point, in both index schemes
type Neighbours struct {
	Grid Grid
	Row  []int32
	Col  []int32

	// Skipped lists the indices of points that project outside the grid
	Skipped []int
}

// MapNeighbours projects every point onto fresh zeroed layers. Several points
// in one cell leave a single set flag; no counting is done.
func MapNeighbours(g Grid, points []world.Point) *Neighbours {
	n := &Neighbours{
		Grid: g,
		Row:  make([]int32, g.Cells()),
		Col:  make([]int32, g.Cells()),
	}
	for i, p := range points {
		row, col, err := g.Locate(p.Position)
		if err != nil {
			log.Printf("[GRID] point %d skipped: %v", i, err)
			n.Skipped = append(n.Skipped, i)
			continue
		}
		n.Row[row] = 1
		n.Col[col] = 1
	}
	return n
}

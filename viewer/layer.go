package viewer

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/labyrinth/setup"
)

// Layer selects which grid layer the inspector draws
type Layer int

const (
	LayerRow Layer = iota
	LayerCol
	LayerActivation
	LayerNeighbours
	LayerLookahead
	layerCount
)

func (l Layer) String() string {
	switch l {
	case LayerRow:
		return "row occupancy"
	case LayerCol:
		return "column occupancy"
	case LayerActivation:
		return "activation"
	case LayerNeighbours:
		return "neighbours"
	case LayerLookahead:
		return "lookahead"
	}
	return "?"
}

var (
	styleEmpty    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleObstacle = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleUp       = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleDown     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	stylePoint    = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleBand     = tcell.StyleDefault.Foreground(tcell.ColorPurple)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	styleError    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorRed)
)

// glyph returns the rune and style of grid cell (x, y) in layer l.
// Out-of-grid cells are blank.
func glyph(s *setup.State, l Layer, x, y int) (rune, tcell.Style) {
	g := s.Grid
	if !g.InBounds(x) || !g.InBounds(y) {
		return ' ', tcell.StyleDefault
	}
	row, col := g.RowIndex(x, y), g.ColIndex(x, y)

	switch l {
	case LayerRow:
		if s.Occupancy.Row[row] != 0 {
			return '█', styleObstacle
		}
	case LayerCol:
		if s.Occupancy.Col[col] != 0 {
			return '█', styleObstacle
		}
	case LayerActivation:
		up, down := s.Occupancy.Activation[2*col] != 0, s.Occupancy.Activation[2*col+1] != 0
		switch {
		case up && down:
			return '█', styleUp
		case down:
			return '▄', styleDown
		case up:
			return '▀', styleUp
		}
	case LayerNeighbours:
		if s.Neighbours.Row[row] != 0 {
			return '•', stylePoint
		}
		if s.Occupancy.Row[row] != 0 {
			return '░', styleObstacle
		}
	case LayerLookahead:
		lo, hi := s.Occupancy.LookaheadCol[2*col], s.Occupancy.LookaheadCol[2*col+1]
		if lo != 0 || hi != 0 {
			return '▒', styleBand
		}
	}
	return '·', styleEmpty
}

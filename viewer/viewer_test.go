package viewer

import (
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/labyrinth/grid"
	"github.com/lixenwraith/labyrinth/setup"
	"github.com/lixenwraith/labyrinth/world"
)

const testWorld = `no_dots:2
no_attractions:0
no_obstacles:2
dot| position: 0 0
dot| position: 0.1 0.1
obstacle| position: -0.5 -0.2 | position: -0.5 0.2
obstacle| position: 0.5 -0.2 | position: 0.5 0.2
`

func newTestState(t *testing.T) *setup.State {
	t.Helper()
	w, err := world.Parse(strings.NewReader(testWorld), world.Options{})
	require.NoError(t, err)
	return setup.FromWorld(w, grid.Default())
}

// newTestViewer attaches a simulation screen of the given size
func newTestViewer(t *testing.T, s *setup.State, width, height int, opts Options) *Viewer {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(width, height)

	v := New(s, opts)
	v.screen = screen
	v.width, v.height = width, height
	v.center()
	return v
}

func TestGlyph_Layers(t *testing.T) {
	s := newTestState(t)
	g := s.Grid
	lx, rx, y := g.Cell(-0.5), g.Cell(0.5), g.Cell(0)

	r, _ := glyph(s, LayerCol, lx, y)
	assert.Equal(t, '█', r)
	r, _ = glyph(s, LayerCol, lx+1, y)
	assert.Equal(t, '·', r)

	r, _ = glyph(s, LayerActivation, lx, y)
	assert.Equal(t, '█', r, "first boundary sets both slots")
	r, _ = glyph(s, LayerActivation, rx, y)
	assert.Equal(t, '▄', r, "second boundary sets the second slot")

	r, _ = glyph(s, LayerNeighbours, g.Cell(0), g.Cell(0))
	assert.Equal(t, '•', r)
	r, _ = glyph(s, LayerNeighbours, lx, y)
	assert.Equal(t, '░', r)

	r, _ = glyph(s, LayerLookahead, rx, y)
	assert.Equal(t, '▒', r)

	r, style := glyph(s, LayerRow, -1, y)
	assert.Equal(t, ' ', r)
	assert.Equal(t, tcell.StyleDefault, style)
	r, _ = glyph(s, LayerRow, lx, g.Resolution)
	assert.Equal(t, ' ', r)
}

func TestLayer_String(t *testing.T) {
	for l := LayerRow; l < layerCount; l++ {
		assert.NotEqual(t, "?", l.String())
	}
	assert.Equal(t, "?", layerCount.String())
}

func TestViewer_Center(t *testing.T) {
	s := newTestState(t)
	v := newTestViewer(t, s, 41, 22, Options{})

	// origin sits in the middle of the view
	x, y := v.gridCell(20, 10)
	assert.Equal(t, s.Grid.Center(), x)
	assert.Equal(t, s.Grid.Center(), y)
}

func TestViewer_PanClamps(t *testing.T) {
	s := newTestState(t)
	v := newTestViewer(t, s, 40, 21, Options{})

	v.pan(-1000, -1000)
	assert.Equal(t, 0, v.offX)
	assert.Equal(t, 0, v.offY)

	v.pan(1000, 1000)
	assert.Equal(t, s.Grid.Resolution-40, v.offX)
	assert.Equal(t, s.Grid.Resolution-20, v.offY)

	// a view wider than the grid pins to the origin
	big := newTestViewer(t, s, 300, 300, Options{})
	big.pan(5, 5)
	assert.Equal(t, 0, big.offX)
	assert.Equal(t, 0, big.offY)
}

func TestViewer_HandleRune(t *testing.T) {
	s := newTestState(t)
	v := newTestViewer(t, s, 40, 21, Options{})

	assert.True(t, v.handleRune('3'))
	assert.Equal(t, LayerActivation, v.layer)

	x0 := v.offX
	v.handleRune('l')
	assert.Equal(t, x0+1, v.offX)
	v.handleRune('H')
	assert.Equal(t, x0+1-20, v.offX)

	y0 := v.offY
	v.handleRune('j')
	assert.Equal(t, y0+1, v.offY)

	v.handleRune('c')
	assert.Equal(t, x0, v.offX)
	assert.Equal(t, y0, v.offY)

	assert.True(t, v.handleRune('r'), "reload without a reloader is ignored")
	assert.False(t, v.handleRune('q'))
}

func TestViewer_HandleKey(t *testing.T) {
	s := newTestState(t)
	v := newTestViewer(t, s, 40, 21, Options{})

	v.layer = LayerLookahead
	v.handleKey(tcell.KeyTab)
	assert.Equal(t, LayerRow, v.layer, "tab wraps around")

	x0 := v.offX
	v.handleKey(tcell.KeyLeft)
	assert.Equal(t, x0-1, v.offX)
}

func TestViewer_Reload(t *testing.T) {
	s := newTestState(t)
	fresh := newTestState(t)

	fail := true
	v := newTestViewer(t, s, 40, 21, Options{Reload: func() (*setup.State, error) {
		if fail {
			return nil, errors.New("boom")
		}
		return fresh, nil
	}})

	v.handleRune('r')
	assert.True(t, v.statusErr)
	assert.Contains(t, v.status, "boom")
	assert.Same(t, s, v.state, "failed reload keeps the old state")

	fail = false
	v.handleRune('r')
	assert.False(t, v.statusErr)
	assert.Same(t, fresh, v.state)
}

func TestViewer_Draw(t *testing.T) {
	s := newTestState(t)
	v := newTestViewer(t, s, 41, 22, Options{})
	v.layer = LayerNeighbours
	v.draw()

	r, _, _, _ := v.screen.GetContent(20, 10)
	assert.Equal(t, '•', r, "point at the origin")

	var status strings.Builder
	for x := 0; x < 41; x++ {
		r, _, _, _ := v.screen.GetContent(x, 21)
		status.WriteRune(r)
	}
	assert.Contains(t, status.String(), "neighbours")
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, clamp(-5, 0, 10))
	assert.Equal(t, 10, clamp(15, 0, 10))
	assert.Equal(t, 7, clamp(7, 0, 10))
}

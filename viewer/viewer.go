// Package viewer is a terminal inspector for the prepared grid layers
package viewer

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/labyrinth/constant"
	"github.com/lixenwraith/labyrinth/setup"
)

// Reloader rebuilds the state from scratch, typically setup.Build with the run config
type Reloader func() (*setup.State, error)

type Options struct {
	// WatchPath enables reloading when this file changes
	WatchPath string
	Reload    Reloader
	Sound     bool
}

type Viewer struct {
	screen tcell.Screen
	state  *setup.State
	opts   Options

	width, height int

	layer      Layer
	offX, offY int // grid cell at the top-left of the view, y counted from the top row

	status    string
	statusErr bool

	chime *chime
}

// New creates an inspector over state without touching the terminal
func New(state *setup.State, opts Options) *Viewer {
	v := &Viewer{state: state, opts: opts}
	v.status = "1-5 layer  arrows/hjkl pan  c center  q quit"
	return v
}

// Run takes over the terminal until the user quits
func (v *Viewer) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	v.screen = screen

	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			if err := resetTerminalMode(); err != nil {
				log.Printf("[VIEW] terminal reset failed: %v", err)
			} else {
				log.Printf("[VIEW] terminal reset to cooked mode")
			}
			fmt.Fprintf(os.Stderr, "\n\x1b[31mVIEWER CRASHED: %v\x1b[0m\n", r)
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	v.width, v.height = screen.Size()
	v.center()

	if v.opts.Sound {
		c, err := newChime()
		if err != nil {
			// Non-fatal, inspector works silently
			log.Printf("[VIEW] audio initialization failed: %v", err)
		} else {
			v.chime = c
		}
	}

	var reloads <-chan struct{}
	if v.opts.WatchPath != "" && v.opts.Reload != nil {
		w, err := watchFile(v.opts.WatchPath, constant.ReloadDebounce)
		if err != nil {
			v.setError(fmt.Sprintf("watch disabled: %v", err))
		} else {
			defer w.Close()
			reloads = w.C
		}
	}

	v.loop(reloads)
	return nil
}

func (v *Viewer) loop(reloads <-chan struct{}) {
	ticker := time.NewTicker(constant.FrameUpdateInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, constant.EventQueueSize)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	dirty := true
	for {
		select {
		case ev := <-events:
			if !v.handleEvent(ev) {
				return
			}
			dirty = true

		case <-reloads:
			v.reload()
			dirty = true

		case <-ticker.C:
			if dirty {
				v.draw()
				dirty = false
			}
		}
	}
}

func (v *Viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			return v.handleRune(ev.Rune())
		}
		v.handleKey(ev.Key())

	case *tcell.EventResize:
		v.width, v.height = v.screen.Size()
		v.screen.Sync()
	}
	return true
}

// handleRune applies a character command; false means quit
func (v *Viewer) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case '1', '2', '3', '4', '5':
		v.layer = Layer(r - '1')
	case 'h':
		v.pan(-1, 0)
	case 'l':
		v.pan(1, 0)
	case 'k':
		v.pan(0, -1)
	case 'j':
		v.pan(0, 1)
	case 'H':
		v.pan(-v.viewWidth()/2, 0)
	case 'L':
		v.pan(v.viewWidth()/2, 0)
	case 'K':
		v.pan(0, -v.viewHeight()/2)
	case 'J':
		v.pan(0, v.viewHeight()/2)
	case 'c':
		v.center()
	case 'r':
		if v.opts.Reload != nil {
			v.reload()
		}
	}
	return true
}

func (v *Viewer) handleKey(k tcell.Key) {
	switch k {
	case tcell.KeyLeft:
		v.pan(-1, 0)
	case tcell.KeyRight:
		v.pan(1, 0)
	case tcell.KeyUp:
		v.pan(0, -1)
	case tcell.KeyDown:
		v.pan(0, 1)
	case tcell.KeyTab:
		v.layer = (v.layer + 1) % layerCount
	}
}

// viewHeight leaves the last terminal row for the status line
func (v *Viewer) viewHeight() int {
	if v.height <= 1 {
		return 1
	}
	return v.height - 1
}

func (v *Viewer) viewWidth() int {
	if v.width < 1 {
		return 1
	}
	return v.width
}

func (v *Viewer) pan(dx, dy int) {
	v.offX = clamp(v.offX+dx, 0, max(0, v.state.Grid.Resolution-v.viewWidth()))
	v.offY = clamp(v.offY+dy, 0, max(0, v.state.Grid.Resolution-v.viewHeight()))
}

// center places the grid origin in the middle of the view
func (v *Viewer) center() {
	c := v.state.Grid.Center()
	v.offX, v.offY = 0, 0
	v.pan(c-v.viewWidth()/2, c-v.viewHeight()/2)
}

// gridCell maps a screen position to grid coordinates, +y pointing up
func (v *Viewer) gridCell(sx, sy int) (int, int) {
	x := v.offX + sx
	y := v.state.Grid.Resolution - 1 - (v.offY + sy)
	return x, y
}

func (v *Viewer) reload() {
	s, err := v.opts.Reload()
	if err != nil {
		log.Printf("[VIEW] reload failed: %v", err)
		v.setError(fmt.Sprintf("reload failed: %v", err))
		v.chime.fail()
		return
	}
	v.state = s
	v.pan(0, 0)
	v.status = fmt.Sprintf("reloaded %s", time.Now().Format("15:04:05"))
	v.statusErr = false
	v.chime.ok()
}

func (v *Viewer) setError(msg string) {
	v.status = msg
	v.statusErr = true
}

func (v *Viewer) draw() {
	v.screen.Clear()

	for sy := 0; sy < v.viewHeight(); sy++ {
		for sx := 0; sx < v.viewWidth(); sx++ {
			x, y := v.gridCell(sx, sy)
			r, style := glyph(v.state, v.layer, x, y)
			v.screen.SetContent(sx, sy, r, nil, style)
		}
	}

	style := styleStatus
	if v.statusErr {
		style = styleError
	}
	x0, y0 := v.gridCell(0, 0)
	line := fmt.Sprintf(" [%d] %s | cell (%d,%d) | %s ", v.layer+1, v.layer, x0, y0, v.status)
	for i, r := range []rune(line) {
		if i >= v.width {
			break
		}
		v.screen.SetContent(i, v.height-1, r, nil, style)
	}

	v.screen.Show()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

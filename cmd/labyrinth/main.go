// Command labyrinth prepares the simulation state of a world file: it parses
// the world, rasterizes obstacles and points onto the grid and reports, dumps
// or inspects the resulting buffers.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/lixenwraith/labyrinth/config"
	"github.com/lixenwraith/labyrinth/dump"
	"github.com/lixenwraith/labyrinth/setup"
	"github.com/lixenwraith/labyrinth/viewer"
	"github.com/lixenwraith/labyrinth/world"
)

var (
	configFlag  = flag.String("config", "", "TOML config file")
	worldFlag   = flag.String("world", "", "World file (overrides config)")
	variantFlag = flag.String("variant", "", "Record family: auto, points, circles")
	debugFlag   = flag.Bool("debug", false, "Write debug log to logs/")
	strictFlag  = flag.Bool("strict", false, "Treat malformed headers as errors")
	dumpFlag    = flag.String("dump", "", "Directory to write raw buffers and manifest to")
	viewFlag    = flag.Bool("view", false, "Open the terminal grid inspector")
	watchFlag   = flag.Bool("watch", false, "Reload the world file on change (with -view)")
	soundFlag   = flag.Bool("sound", false, "Chime on reload (with -watch)")
)

func main() {
	flag.Parse()
	if err := run(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "labyrinth: %v\n", err)
		os.Exit(1)
	}
}

func run(out io.Writer) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	if logFile := setupLogging(cfg.Log.Debug); logFile != nil {
		defer logFile.Close()
	}

	if *viewFlag && !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("-view requires a terminal")
	}

	state, err := setup.Build(cfg)
	if err != nil {
		return err
	}

	printSummary(out, cfg, state)

	if cfg.Dump.Dir != "" {
		m, err := dump.Write(cfg.Dump.Dir, state)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "dumped %d buffer(s) to %s\n", len(m.Buffers), cfg.Dump.Dir)
	}

	if *viewFlag {
		opts := viewer.Options{
			Reload: func() (*setup.State, error) { return setup.Build(cfg) },
			Sound:  *soundFlag,
		}
		if *watchFlag {
			opts.WatchPath = cfg.World
		}
		return viewer.New(state, opts).Run()
	}
	return nil
}

// resolveConfig layers defaults, the config file and command-line flags
func resolveConfig() (config.Config, error) {
	cfg := config.Default()
	if *configFlag != "" {
		var err error
		if cfg, err = config.Load(*configFlag); err != nil {
			return cfg, err
		}
	}

	if *worldFlag != "" {
		cfg.World = *worldFlag
	}
	if *variantFlag != "" {
		cfg.Variant = *variantFlag
	}
	if *debugFlag {
		cfg.Log.Debug = true
	}
	if *strictFlag {
		cfg.Strict = true
	}
	if *dumpFlag != "" {
		cfg.Dump.Dir = *dumpFlag
	}
	return cfg, cfg.Validate()
}

func printSummary(out io.Writer, cfg config.Config, s *setup.State) {
	sum := s.Summary()
	fmt.Fprintf(out, "world %s (%s)\n", cfg.World, sum.Variant)
	switch s.World.Variant {
	case world.VariantCircles:
		fmt.Fprintf(out, "  circles %d, influences %d\n", sum.Circles, sum.Influences)
	default:
		fmt.Fprintf(out, "  dots %d, attractions %d, obstacles %d\n", sum.Dots, sum.Attractions, sum.Obstacles)
	}
	fmt.Fprintf(out, "  grid %dx%d, cell %.4g\n", s.Grid.Resolution, s.Grid.Resolution, s.Grid.CellSize())
	fmt.Fprintf(out, "  occupied row %d, col %d, activated %d, neighbours %d\n",
		sum.RowOccupied, sum.ColOccupied, sum.Activated, sum.NeighbourCells)
	if sum.SkippedPoints > 0 {
		fmt.Fprintf(out, "  %d point(s) outside the grid\n", sum.SkippedPoints)
	}
	if sum.ClampedWalls > 0 {
		fmt.Fprintf(out, "  %d obstacle(s) clamped to the grid edge\n", sum.ClampedWalls)
	}
	for _, w := range s.World.Warnings {
		fmt.Fprintf(out, "  warning: %s\n", w)
	}
}

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/leonelquinteros/gotext"
	"github.com/sirupsen/logrus"

	"darklight/pkg/engine/lighting"
	"darklight/pkg/engine/terminal"
	"darklight/pkg/engine/world"
	"darklight/pkg/game/devtools"
	"darklight/pkg/logger"
)

func initGotext(lang string) {
	if lang == "" {
		return
	}
	gotext.Configure("locales", lang, "default")
}

// loadScene reads the map file, or builds the developer map when path is empty
func loadScene(path string) (*devtools.Scene, error) {
	if path == "" {
		return devtools.DevScene(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open map: %w", err)
	}
	defer f.Close()

	s, err := devtools.ParseMap(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return s, nil
}

// useColor resolves the -color flag against the terminal
func useColor(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return terminal.IsTerminal()
	}
}

func main() {
	mapPath := flag.String("map", "", "text map to load (developer map when empty)")
	originX := flag.Int("x", -1, "observer column (player position when negative)")
	originY := flag.Int("y", -1, "observer row (player position when negative)")
	radius := flag.Int("radius", devtools.DefaultVision, "observer base sight radius in tiles")
	at := flag.Duration("time", 0, "time the flicker oscillator is evaluated at")
	ticks := flag.Int("ticks", 1, "number of frames to dump")
	step := flag.Duration("step", 100*time.Millisecond, "time between frames")
	wall := flag.Bool("wall", false, "use the wall clock instead of -time/-step")
	known := flag.Bool("known", false, "cast the observer's sight over the known grid")
	rangeMult := flag.Float64("range-mult", lighting.DefaultRangeMultiplier, "light radius multiplier")
	falloffPower := flag.Float64("falloff-power", lighting.DefaultFalloffPower, "flicker falloff exponent")
	colorMode := flag.String("color", "auto", "colour output: auto, always or never")
	lang := flag.String("lang", "", "language for dump labels (e.g. de)")
	quiet := flag.Bool("quiet", false, "discard log output")
	flag.Parse()

	logger.Init()
	if *quiet {
		logger.Silence()
	}
	initGotext(*lang)
	log := logger.For("cli")

	scene, err := loadScene(*mapPath)
	if err != nil {
		log.WithError(err).Error("Could not load map.")
		os.Exit(1)
	}

	origin := scene.Origin()
	if *originX >= 0 && *originY >= 0 {
		origin = world.Pos(*originX, *originY)
	}
	if scene.Player != nil {
		scene.Player.Vision = float64(*radius)
	}

	cfg := lighting.DefaultConfig()
	cfg.RangeMultiplier = *rangeMult
	cfg.FalloffPower = *falloffPower

	var clock lighting.Clock
	var ticker *lighting.TickClock
	switch {
	case *wall:
		clock = lighting.NewWallClock()
	case *ticks > 1:
		ticker = &lighting.TickClock{Step: *step}
		clock = ticker
	default:
		clock = lighting.FixedClock(*at)
	}

	width, height := terminal.GetSize()
	cols, rows := terminal.Viewport(scene.Map.Width, scene.Map.Height, width, height)
	opts := devtools.DumpOptions{Color: useColor(*colorMode), Cols: cols, Rows: rows}

	log.WithFields(logrus.Fields{
		"map":    fmt.Sprintf("%dx%d", scene.Map.Width, scene.Map.Height),
		"origin": origin.Key(),
		"radius": *radius,
		"ticks":  *ticks,
	}).Info("Running lighting ticks.")

	runner := devtools.NewRunner()
	for i := 0; i < max(*ticks, 1); i++ {
		now := clock.Now()
		if ticker != nil {
			now += *at
		}
		frame, err := runner.Tick(scene, devtools.TickOptions{
			Origin:       origin,
			BaseRadius:   *radius,
			Now:          now,
			UseKnownGrid: *known,
			Lighting:     cfg,
		})
		if err != nil {
			log.WithError(err).Error("Tick failed.")
			os.Exit(1)
		}
		if err := devtools.Dump(os.Stdout, scene, frame, opts); err != nil {
			log.WithError(err).Error("Could not write dump.")
			os.Exit(1)
		}
		if ticker != nil {
			ticker.Advance()
		} else if *wall {
			time.Sleep(*step)
		}
	}
}

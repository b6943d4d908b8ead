package devtools

import (
	"fmt"
	"time"

	"darklight/pkg/engine/lighting"
	"darklight/pkg/engine/vision"
	"darklight/pkg/engine/world"
	"darklight/pkg/game/perception"
)

// TickOptions control one developer tick.
type TickOptions struct {
	Origin       world.Position
	BaseRadius   int
	Now          time.Duration
	UseKnownGrid bool
	Lighting     lighting.Config
}

// Frame is everything one tick computed for a scene.
type Frame struct {
	Origin     world.Position
	Now        time.Duration
	Lights     []lighting.LightSource
	Vision     vision.Result
	Context    *lighting.Context
	Overlay    []lighting.OverlaySample // row-major over the whole map
	Perception map[string]perception.Perception
}

// OverlayAt returns the overlay sample at (x, y), or a zero sample off-map.
func (f *Frame) OverlayAt(m *world.MapState, x, y int) lighting.OverlaySample {
	if !m.InBounds(x, y) || len(f.Overlay) != m.Width*m.Height {
		return lighting.OverlaySample{}
	}
	return f.Overlay[y*m.Width+x]
}

// Runner runs ticks against scenes, reusing its collector between them.
type Runner struct {
	collector  *lighting.Collector
	perception *perception.Service
}

// NewRunner creates a runner with a fresh colour cache.
func NewRunner() *Runner {
	c := lighting.NewCollector(nil)
	return &Runner{collector: c, perception: perception.NewService(c)}
}

// Tick runs the whole pipeline once: collect lights, extend the observer's
// vision, composite the overlay and update every actor's perception.
func (r *Runner) Tick(s *Scene, opts TickOptions) (*Frame, error) {
	if s == nil || s.Map == nil {
		return nil, fmt.Errorf("tick: %w", vision.ErrNoMapState)
	}
	w := s.World()
	lights := r.collector.CollectWorldLightSources(w)

	res, err := vision.ComputeVisionWithLights(vision.Params{
		Origin:       opts.Origin,
		BaseRadius:   opts.BaseRadius,
		Map:          s.Map,
		Lights:       lights,
		UseKnownGrid: opts.UseKnownGrid,
	})
	if err != nil {
		return nil, fmt.Errorf("tick: %w", err)
	}

	ctx := lighting.NewContext(lights, opts.Lighting, opts.Now)
	overlay := lighting.OverlayRect(0, 0, s.Map.Width, s.Map.Height, ctx, opts.Lighting, lighting.MapLOS(s.Map), s.receiversAt)

	return &Frame{
		Origin:     opts.Origin,
		Now:        opts.Now,
		Lights:     lights,
		Vision:     res,
		Context:    ctx,
		Overlay:    overlay,
		Perception: r.perception.UpdateAll(w),
	}, nil
}

// receiversAt lists the actors standing on (x, y) that only see some
// channels.
func (s *Scene) receiversAt(x, y int) []lighting.LightReceiver {
	if s.Player != nil && s.Player.Pos == world.Pos(x, y) {
		return []lighting.LightReceiver{s.Player}
	}
	return nil
}

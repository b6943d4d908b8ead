package lighting

import (
	"math"
	"time"

	"darklight/pkg/engine/world"
)

// falloffEpsilon keeps the falloff span away from zero for tiny lights.
const falloffEpsilon = 1e-6

// CompositeLight is a light with its per-frame state precomputed.
type CompositeLight struct {
	Source LightSource

	// Color channels scaled to [0,1].
	R, G, B float64

	Intensity float64
	// Osc is sin(2π·flickerRate·t), 0 for steady lights.
	Osc float64
	// Reach is how far the light can tint tiles under the context's config.
	Reach float64
}

// Context is the precomputed state of every light for one frame.
type Context struct {
	Lights []CompositeLight
	Now    time.Duration
	// MaxFlickerRate is the fastest flicker among the lights.
	MaxFlickerRate float64
}

// NeedsAnimation returns true if any light flickers, meaning the overlay
// changes from frame to frame.
func (c *Context) NeedsAnimation() bool {
	return c != nil && c.MaxFlickerRate > 0
}

// Bounds returns the smallest tile rectangle covering every light's reach,
// as origin plus size. ok is false when there are no lights.
func (c *Context) Bounds() (x0, y0, w, h int, ok bool) {
	if c == nil || len(c.Lights) == 0 {
		return 0, 0, 0, 0, false
	}
	minX, minY := math.MaxInt, math.MaxInt
	maxX, maxY := math.MinInt, math.MinInt
	for _, cl := range c.Lights {
		r := int(math.Ceil(cl.Reach))
		minX = min(minX, cl.Source.X-r)
		minY = min(minY, cl.Source.Y-r)
		maxX = max(maxX, cl.Source.X+r)
		maxY = max(maxY, cl.Source.Y+r)
	}
	return minX, minY, maxX - minX + 1, maxY - minY + 1, true
}

// OverlaySample is the composited light at one tile. Color is nil when
// Alpha is 0.
type OverlaySample struct {
	Alpha float64
	Color *RGB
}

// LOSFunc reports whether a light reaches tile (x, y).
type LOSFunc func(light *LightSource, x, y int) bool

// NewContext precomputes per-light state for time now.
func NewContext(lights []LightSource, cfg Config, now time.Duration) *Context {
	cfg = cfg.Normalized()
	seconds := now.Seconds()
	ctx := &Context{
		Lights: make([]CompositeLight, 0, len(lights)),
		Now:    now,
	}
	for _, l := range lights {
		cl := CompositeLight{
			Source:    l,
			R:         float64(l.Color.R) / 255,
			G:         float64(l.Color.G) / 255,
			B:         float64(l.Color.B) / 255,
			Intensity: clamp01(l.Intensity),
			Reach:     math.Max(l.Radius*cfg.RangeMultiplier, cfg.FlickerNearDeadZoneTiles),
		}
		if isFinite(l.FlickerRate) && l.FlickerRate > 0 {
			cl.Osc = math.Sin(2 * math.Pi * l.FlickerRate * seconds)
			if l.FlickerRate > ctx.MaxFlickerRate {
				ctx.MaxFlickerRate = l.FlickerRate
			}
		}
		cl.Source.Channel = l.Channel.OrAll()
		ctx.Lights = append(ctx.Lights, cl)
	}
	return ctx
}

// ReceiverMask returns the union of the light masks of the entities on a
// tile, or ChannelAll when there are none.
func ReceiverMask(onTile []LightReceiver) Channel {
	if len(onTile) == 0 {
		return ChannelAll
	}
	mask := ChannelNone
	for _, r := range onTile {
		if r != nil {
			mask |= r.LightMask()
		}
	}
	return mask
}

// OverlayAt composites every light in ctx at tile (x, y). los and onTile are
// optional.
func OverlayAt(x, y int, ctx *Context, cfg Config, los LOSFunc, onTile []LightReceiver) OverlaySample {
	if ctx == nil || len(ctx.Lights) == 0 {
		return OverlaySample{}
	}
	cfg = cfg.Normalized()
	mask := ReceiverMask(onTile)

	oneMinusAlpha := 1.0
	oneMinusR, oneMinusG, oneMinusB := 1.0, 1.0, 1.0

	for i := range ctx.Lights {
		cl := &ctx.Lights[i]
		ai := contribution(cl, x, y, cfg, los, mask)
		if ai <= 0 {
			continue
		}
		oneMinusAlpha *= 1 - ai
		oneMinusR *= 1 - cl.R*ai
		oneMinusG *= 1 - cl.G*ai
		oneMinusB *= 1 - cl.B*ai
	}

	alpha := clamp01(1 - oneMinusAlpha)
	if alpha <= 0 {
		return OverlaySample{}
	}
	return OverlaySample{
		Alpha: alpha,
		Color: &RGB{
			R: channelByte(oneMinusR),
			G: channelByte(oneMinusG),
			B: channelByte(oneMinusB),
		},
	}
}

// OverlayRect samples every tile of the rectangle [x0, x0+w) × [y0, y0+h)
// into a row-major slice. receivers may be nil.
func OverlayRect(x0, y0, w, h int, ctx *Context, cfg Config, los LOSFunc, receivers func(x, y int) []LightReceiver) []OverlaySample {
	if w <= 0 || h <= 0 {
		return nil
	}
	out := make([]OverlaySample, 0, w*h)
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			var onTile []LightReceiver
			if receivers != nil {
				onTile = receivers(x, y)
			}
			out = append(out, OverlayAt(x, y, ctx, cfg, los, onTile))
		}
	}
	return out
}

// MapLOS returns a LOSFunc walking the map's ground-truth grid from each
// light to the tile.
func MapLOS(m *world.MapState) LOSFunc {
	return func(light *LightSource, x, y int) bool {
		return world.HasLineOfSight(m, light.Position(), world.Pos(x, y))
	}
}

func contribution(cl *CompositeLight, x, y int, cfg Config, los LOSFunc, mask Channel) float64 {
	l := &cl.Source
	if !l.Channel.Intersects(mask) {
		return 0
	}
	if los != nil && !los(l, x, y) {
		return 0
	}

	dx := float64(x - l.X)
	dy := float64(y - l.Y)
	if l.Cone.valid() && (dx != 0 || dy != 0) && !l.Cone.Contains(math.Atan2(dy, dx)) {
		return 0
	}

	dist := math.Hypot(dx, dy)
	deadZone := cfg.FlickerNearDeadZoneTiles
	span := math.Max(falloffEpsilon, l.Radius*cfg.RangeMultiplier-deadZone)
	falloff := 1 - smoothstep01((dist-deadZone)/span)
	if falloff <= 0 {
		return 0
	}

	amplitude := cfg.FlickerVariance * math.Pow(falloff, cfg.FalloffPower)
	return clamp01((cfg.BaseOverlayAlpha + cl.Osc*amplitude) * falloff * cl.Intensity)
}

func smoothstep01(t float64) float64 {
	t = clamp01(t)
	return t * t * (3 - 2*t)
}

func channelByte(oneMinus float64) uint8 {
	return uint8(math.Round(255 * clamp01(1-oneMinus)))
}

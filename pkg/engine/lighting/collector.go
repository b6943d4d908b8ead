package lighting

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"darklight/pkg/engine/world"
	"darklight/pkg/logger"
)

// WorldContext is the live world state lights are collected from. Every field
// is optional.
type WorldContext struct {
	Player   Actor
	Mobs     []Actor
	Entities []WorldEntity
	Map      *world.MapState
}

// Actors returns the player (if any) followed by the mobs, skipping nils.
func (w WorldContext) Actors() []Actor {
	actors := make([]Actor, 0, len(w.Mobs)+1)
	if w.Player != nil {
		actors = append(actors, w.Player)
	}
	for _, m := range w.Mobs {
		if m != nil {
			actors = append(actors, m)
		}
	}
	return actors
}

// Collector gathers active light emitters into LightSource records. It owns
// the colour cache used to normalize them.
type Collector struct {
	colors *ColorParser
	log    *logrus.Entry
}

// NewCollector creates a collector. A nil parser gets a private one.
func NewCollector(colors *ColorParser) *Collector {
	if colors == nil {
		colors = NewColorParser(defaultColorCacheSize)
	}
	return &Collector{
		colors: colors,
		log:    logger.For("light_collector"),
	}
}

// Colors returns the collector's colour parser.
func (c *Collector) Colors() *ColorParser {
	return c.colors
}

// collection is the state of one CollectWorldLightSources pass.
type collection struct {
	c      *Collector
	seq    int
	lights []LightSource
}

// CollectWorldLightSources gathers lights from actors, dropped entities, map
// furniture and map features. Entries with a non-positive or non-finite
// radius or position are skipped. IDs are "<kind>-<n>" with n counting up
// from 0 within this call.
func (c *Collector) CollectWorldLightSources(ctx WorldContext) []LightSource {
	col := &collection{c: c}

	for _, a := range ctx.Actors() {
		pos := a.Position()
		for _, d := range ResolveEmitter(a).Descriptors() {
			col.add(SourceActor, a.ID(), float64(pos.X), float64(pos.Y), d)
		}
	}

	for _, e := range ctx.Entities {
		if e == nil {
			continue
		}
		carrier, ok := e.(LightCarrier)
		if !ok {
			continue
		}
		d := carrier.Light()
		if d == nil || d.OnlyWhenHeld {
			continue
		}
		pos := e.Position()
		col.add(SourceItem, e.ID(), float64(pos.X), float64(pos.Y), *d)
	}

	if ctx.Map != nil {
		col.addFixtures(SourceFurniture, ctx.Map.Furniture)
		col.addFixtures(SourceFeature, ctx.Map.Features)
	}

	if c.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		c.log.WithFields(logrus.Fields{
			"lights":        len(col.lights),
			"cached_colors": c.colors.Cached(),
		}).Debug("Collected world light sources.")
	}

	return col.lights
}

func (col *collection) addFixtures(kind SourceKind, fixtures []world.Fixture) {
	for i, f := range fixtures {
		if f == nil {
			continue
		}
		carrier, ok := f.(LightCarrier)
		if !ok {
			continue
		}
		d := carrier.Light()
		if d == nil {
			continue
		}
		x, y := f.FixturePosition()
		owner := fmt.Sprintf("%s#%d", kind, i)
		if named, ok := f.(interface{ ID() string }); ok {
			owner = named.ID()
		}
		col.add(kind, owner, x, y, *d)
	}
}

func (col *collection) add(kind SourceKind, owner string, x, y float64, d LightDescriptor) {
	if !isFinite(x) || !isFinite(y) || !isFinite(d.Radius) || d.Radius <= 0 {
		col.c.log.WithFields(logrus.Fields{
			"kind":   kind,
			"owner":  owner,
			"radius": d.Radius,
		}).Debug("Skipping light with invalid position or radius.")
		return
	}

	l := LightSource{
		ID:          fmt.Sprintf("%s-%d", kind, col.seq),
		Kind:        kind,
		OwnerID:     owner,
		X:           int(math.Floor(x)),
		Y:           int(math.Floor(y)),
		Radius:      d.Radius,
		Color:       col.resolveColor(d),
		Intensity:   resolveIntensity(d.Intensity),
		FlickerRate: d.FlickerRate,
		Channel:     d.Channel.OrAll(),
	}
	if !isFinite(l.FlickerRate) || l.FlickerRate < 0 {
		l.FlickerRate = 0
	}
	if d.Cone.valid() {
		cone := *d.Cone
		l.Cone = &cone
	}

	col.seq++
	col.lights = append(col.lights, l)
}

func (col *collection) resolveColor(d LightDescriptor) RGB {
	if d.RGB != nil {
		return *d.RGB
	}
	if d.Color == "" {
		return DefaultLightColor
	}
	rgb, ok := col.c.colors.Parse(d.Color)
	if !ok {
		col.c.log.WithField("color", d.Color).Debug("Unrecognised light colour, using default.")
		return DefaultLightColor
	}
	return rgb
}

func resolveIntensity(v float64) float64 {
	if !isFinite(v) || v == 0 {
		return 1
	}
	return clamp01(v)
}

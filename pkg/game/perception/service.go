// Package perception builds per-actor snapshots of which other actors and
// lights fall inside an actor's own field of view. AI layers read these to
// decide what an actor knows about.
package perception

import (
	"math"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"darklight/pkg/engine/lighting"
	"darklight/pkg/engine/world"
	"darklight/pkg/logger"
)

// Sighted is an actor with a personal vision radius in tiles.
type Sighted interface {
	VisionRadius() float64
}

// Perception is what one actor perceives this tick.
type Perception struct {
	// FOV is the zero set when the actor is blind. Otherwise it holds at
	// least the actor's own tile.
	FOV           world.VisibilitySet
	VisibleActors []lighting.Actor
	VisibleLights []lighting.LightSource
}

// Blind reports whether the actor perceived nothing at all.
func (p Perception) Blind() bool {
	return p.FOV.Size() == 0
}

// CanSee reports whether pos is in the actor's field of view.
func (p Perception) CanSee(pos world.Position) bool {
	return p.FOV.Has(pos)
}

// Sees reports whether the actor with the given id is among the visible
// actors.
func (p Perception) Sees(actorID string) bool {
	for _, a := range p.VisibleActors {
		if a.ID() == actorID {
			return true
		}
	}
	return false
}

func blind() Perception {
	return Perception{
		VisibleActors: []lighting.Actor{},
		VisibleLights: []lighting.LightSource{},
	}
}

// Service computes perceptions. It holds the light collector so its colour
// cache survives between ticks.
type Service struct {
	collector *lighting.Collector
	log       *logrus.Entry
}

// NewService creates a service. A nil collector gets a private one.
func NewService(collector *lighting.Collector) *Service {
	if collector == nil {
		collector = lighting.NewCollector(nil)
	}
	return &Service{
		collector: collector,
		log:       logger.For("perception"),
	}
}

// UpdatePerception computes what entity sees in w. Actors without a usable
// vision radius are blind and cost nothing.
func (s *Service) UpdatePerception(entity lighting.Actor, w lighting.WorldContext) Perception {
	if _, ok := visionRadius(entity); !ok {
		return blind()
	}
	return s.perceive(entity, w, s.collector.CollectWorldLightSources(w))
}

// UpdateAll computes the perception of every actor in w, keyed by actor id,
// collecting the world's lights only once.
func (s *Service) UpdateAll(w lighting.WorldContext) map[string]Perception {
	actors := w.Actors()
	out := make(map[string]Perception, len(actors))

	var lights []lighting.LightSource
	collected := false
	for _, a := range actors {
		if _, done := out[a.ID()]; done {
			continue
		}
		if _, ok := visionRadius(a); !ok {
			out[a.ID()] = blind()
			continue
		}
		if !collected {
			lights = s.collector.CollectWorldLightSources(w)
			collected = true
		}
		out[a.ID()] = s.perceive(a, w, lights)
	}

	s.log.WithFields(logrus.Fields{
		"actors": len(out),
		"lights": len(lights),
	}).Debug("Perception updated.")

	return out
}

func (s *Service) perceive(entity lighting.Actor, w lighting.WorldContext, lights []lighting.LightSource) Perception {
	radius, ok := visionRadius(entity)
	if !ok {
		return blind()
	}

	fov := world.ComputeFieldOfView(entity.Position(), int(math.Floor(radius)), w.Map, world.FOVOptions{})
	p := Perception{
		FOV:           fov,
		VisibleActors: []lighting.Actor{},
		VisibleLights: []lighting.LightSource{},
	}

	seen := mapset.New[string]()
	seen.Put(entity.ID())
	for _, a := range w.Actors() {
		if seen.Has(a.ID()) {
			continue
		}
		if fov.Has(a.Position()) {
			seen.Put(a.ID())
			p.VisibleActors = append(p.VisibleActors, a)
		}
	}

	for _, l := range lights {
		if fov.Has(l.Position()) {
			p.VisibleLights = append(p.VisibleLights, l)
		}
	}
	return p
}

func visionRadius(entity lighting.Actor) (float64, bool) {
	if entity == nil {
		return 0, false
	}
	s, ok := entity.(Sighted)
	if !ok {
		return 0, false
	}
	r := s.VisionRadius()
	if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
		return 0, false
	}
	return r, true
}

package lighting

import (
	"darklight/pkg/engine/world"
)

// LightDescriptor describes one light an entity or fixture can cast.
type LightDescriptor struct {
	Radius float64

	// Color is a colour string; RGB, when set, takes precedence.
	Color string
	RGB   *RGB

	// Intensity in [0,1]. Zero means unset and resolves to full intensity.
	Intensity   float64
	FlickerRate float64
	Cone        *Cone

	// Channel defaults to ChannelAll when zero.
	Channel Channel

	// OnlyWhenHeld marks an item that stops emitting once it is dropped.
	OnlyWhenHeld bool
}

// Actor is anything that stands on the map with an identity: the player and
// mobs.
type Actor interface {
	ID() string
	Position() world.Position
}

// WorldEntity is a dropped item or other loose object on the map.
type WorldEntity interface {
	ID() string
	Position() world.Position
}

// LightCarrier is an entity or fixture carrying a single light descriptor.
// A nil descriptor means it currently emits nothing.
type LightCarrier interface {
	Light() *LightDescriptor
}

// MultiEmitter is an actor exposing several emitters at once (a held torch
// plus a glowing amulet, say).
type MultiEmitter interface {
	LightEmitters() []LightDescriptor
}

// SingleEmitter is an actor exposing one emitter through individual
// accessors.
type SingleEmitter interface {
	LightRadius() float64
	LightColor() string
	LightFlickerRate() float64
	LightCone() (angle, width float64, ok bool)
	LightChannel() Channel
}

// LightReceiver is an entity that only perceives some light channels.
type LightReceiver interface {
	LightMask() Channel
}

// EmitterKind is the resolved emitter capability of an actor.
type EmitterKind int

// Emitter kinds
const (
	EmitterNone EmitterKind = iota
	EmitterMulti
	EmitterSingle
)

// String returns the string representation of an emitter kind
func (k EmitterKind) String() string {
	switch k {
	case EmitterMulti:
		return "multi"
	case EmitterSingle:
		return "single"
	default:
		return "none"
	}
}

// Emitter is an actor's light capability, resolved once at the collection
// boundary.
type Emitter struct {
	Kind EmitterKind

	multi  MultiEmitter
	single SingleEmitter
}

// ResolveEmitter inspects v once and picks its richest light capability:
// multi-emitter first, then single accessors, otherwise none.
func ResolveEmitter(v any) Emitter {
	switch e := v.(type) {
	case MultiEmitter:
		return Emitter{Kind: EmitterMulti, multi: e}
	case SingleEmitter:
		return Emitter{Kind: EmitterSingle, single: e}
	default:
		return Emitter{Kind: EmitterNone}
	}
}

// Descriptors returns the emitter's lights as descriptors.
func (e Emitter) Descriptors() []LightDescriptor {
	switch e.Kind {
	case EmitterMulti:
		return e.multi.LightEmitters()
	case EmitterSingle:
		d := LightDescriptor{
			Radius:      e.single.LightRadius(),
			Color:       e.single.LightColor(),
			FlickerRate: e.single.LightFlickerRate(),
			Channel:     e.single.LightChannel(),
		}
		if angle, width, ok := e.single.LightCone(); ok {
			d.Cone = &Cone{Angle: angle, Width: width}
		}
		return []LightDescriptor{d}
	default:
		return nil
	}
}

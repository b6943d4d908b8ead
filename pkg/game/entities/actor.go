// Package entities contains the concrete actors, items and fixtures that live
// on a map. They implement the light capabilities the lighting engine reads.
package entities

import (
	"darklight/pkg/engine/lighting"
	"darklight/pkg/engine/world"
)

// Player is the observer the game follows. It may carry several lights at
// once (a torch in hand, a glowing charm).
type Player struct {
	Name   string
	Pos    world.Position
	Vision float64 // Personal sight radius in tiles
	Sight  lighting.Channel

	Held []*Item
}

// NewPlayer creates a player with normal sight at pos
func NewPlayer(name string, pos world.Position, vision float64) *Player {
	return &Player{
		Name:   name,
		Pos:    pos,
		Vision: vision,
		Sight:  lighting.ChannelNormal,
	}
}

// ID implements lighting.Actor
func (p *Player) ID() string { return "player:" + p.Name }

// Position implements lighting.Actor
func (p *Player) Position() world.Position { return p.Pos }

// VisionRadius returns the personal sight radius
func (p *Player) VisionRadius() float64 { return p.Vision }

// LightMask implements lighting.LightReceiver
func (p *Player) LightMask() lighting.Channel { return p.Sight }

// LightEmitters implements lighting.MultiEmitter: one light per held item
// that has one.
func (p *Player) LightEmitters() []lighting.LightDescriptor {
	var out []lighting.LightDescriptor
	for _, it := range p.Held {
		if it != nil && it.Lamp != nil {
			out = append(out, *it.Lamp)
		}
	}
	return out
}

// PickUp moves an item from the floor into the player's hands
func (p *Player) PickUp(it *Item) {
	it.Held = true
	p.Held = append(p.Held, it)
}

// Drop puts a held item on the floor at the player's position. Returns false
// if the player was not holding it.
func (p *Player) Drop(it *Item) bool {
	for i, h := range p.Held {
		if h == it {
			p.Held = append(p.Held[:i], p.Held[i+1:]...)
			it.Held = false
			it.Pos = p.Pos
			return true
		}
	}
	return false
}

// Creature is a mob. It exposes at most one light through individual
// accessors.
type Creature struct {
	Name   string
	Pos    world.Position
	Vision float64

	GlowRadius  float64
	GlowColor   string
	GlowFlicker float64
	Channel     lighting.Channel

	// Facing and BeamWidth make the glow directional when BeamWidth > 0.
	Facing    float64
	BeamWidth float64
}

// ID implements lighting.Actor
func (c *Creature) ID() string { return "mob:" + c.Name }

// Position implements lighting.Actor
func (c *Creature) Position() world.Position { return c.Pos }

// VisionRadius returns the creature's sight radius
func (c *Creature) VisionRadius() float64 { return c.Vision }

// LightRadius implements lighting.SingleEmitter
func (c *Creature) LightRadius() float64 { return c.GlowRadius }

// LightColor implements lighting.SingleEmitter
func (c *Creature) LightColor() string { return c.GlowColor }

// LightFlickerRate implements lighting.SingleEmitter
func (c *Creature) LightFlickerRate() float64 { return c.GlowFlicker }

// LightCone implements lighting.SingleEmitter
func (c *Creature) LightCone() (angle, width float64, ok bool) {
	if c.BeamWidth <= 0 {
		return 0, 0, false
	}
	return c.Facing, c.BeamWidth, true
}

// LightChannel implements lighting.SingleEmitter
func (c *Creature) LightChannel() lighting.Channel { return c.Channel }

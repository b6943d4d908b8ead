package entities

import (
	"darklight/pkg/engine/lighting"
	"darklight/pkg/engine/world"
)

// Item is a portable object. On the floor it is a world entity; while held
// its light is cast by the holder instead.
type Item struct {
	Key  string
	Name string
	Pos  world.Position
	Held bool

	Lamp *lighting.LightDescriptor
}

// NewItem creates a new item lying at pos
func NewItem(key, name string, pos world.Position, lamp *lighting.LightDescriptor) *Item {
	return &Item{Key: key, Name: name, Pos: pos, Lamp: lamp}
}

// NewTorch creates a torch, which goes out when dropped
func NewTorch(key string, pos world.Position) *Item {
	return NewItem(key, "Torch", pos, &lighting.LightDescriptor{
		Radius:       4,
		Color:        "#ffb347",
		FlickerRate:  1.2,
		OnlyWhenHeld: true,
	})
}

// NewLantern creates a lantern, which keeps burning on the floor
func NewLantern(key string, pos world.Position) *Item {
	return NewItem(key, "Lantern", pos, &lighting.LightDescriptor{
		Radius: 5,
		Color:  "255,233,166",
	})
}

// ID implements lighting.WorldEntity
func (i *Item) ID() string { return "item:" + i.Key }

// Position implements lighting.WorldEntity
func (i *Item) Position() world.Position { return i.Pos }

// Light implements lighting.LightCarrier. A held item has no light of its
// own in the world.
func (i *Item) Light() *lighting.LightDescriptor {
	if i.Held {
		return nil
	}
	return i.Lamp
}

// FloorItems returns the items not currently held, as world entities.
func FloorItems(items []*Item) []lighting.WorldEntity {
	out := make([]lighting.WorldEntity, 0, len(items))
	for _, it := range items {
		if it != nil && !it.Held {
			out = append(out, it)
		}
	}
	return out
}

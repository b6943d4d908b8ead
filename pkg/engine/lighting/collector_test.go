package lighting

import (
	"math"
	"testing"

	"darklight/pkg/engine/world"
)

type droppedItem struct {
	id    string
	pos   world.Position
	light *LightDescriptor
}

func (i *droppedItem) ID() string               { return i.id }
func (i *droppedItem) Position() world.Position { return i.pos }
func (i *droppedItem) Light() *LightDescriptor  { return i.light }

type plainItem struct{ id string }

func (i *plainItem) ID() string               { return i.id }
func (i *plainItem) Position() world.Position { return world.Pos(0, 0) }

type brazier struct {
	x, y  float64
	light *LightDescriptor
}

func (b *brazier) FixturePosition() (float64, float64) { return b.x, b.y }
func (b *brazier) Light() *LightDescriptor             { return b.light }

func TestCollectWorldLightSources_AllPaths(t *testing.T) {
	m, _ := world.NewMapState(20, 20)
	m.Features = []world.Fixture{&brazier{x: 10.6, y: 4.2, light: &LightDescriptor{Radius: 5, Color: "#ff0000"}}}
	m.Furniture = []world.Fixture{&brazier{x: 2, y: 2, light: &LightDescriptor{Radius: 2, RGB: &RGB{1, 2, 3}}}}

	ctx := WorldContext{
		Player: &multiActor{id: "hero", pos: world.Pos(1, 1), lights: []LightDescriptor{
			{Radius: 4, Color: "#00ff00", Intensity: 0.5},
			{Radius: 2, Channel: ChannelSpectral},
		}},
		Mobs: []Actor{
			&singleActor{id: "goblin", pos: world.Pos(5, 5), radius: 3, color: "rgb(1,2,3)"},
			&darkActor{id: "rat", pos: world.Pos(6, 6)},
			nil,
		},
		Entities: []WorldEntity{
			&droppedItem{id: "lantern", pos: world.Pos(8, 8), light: &LightDescriptor{Radius: 3}},
			&plainItem{id: "rock"},
		},
		Map: m,
	}

	c := NewCollector(nil)
	lights := c.CollectWorldLightSources(ctx)

	if len(lights) != 6 {
		t.Fatalf("len(lights) = %d, want 6: %+v", len(lights), lights)
	}

	byOwner := map[string][]LightSource{}
	for _, l := range lights {
		byOwner[l.OwnerID] = append(byOwner[l.OwnerID], l)
	}

	hero := byOwner["hero"]
	if len(hero) != 2 {
		t.Fatalf("hero lights = %d, want 2", len(hero))
	}
	if hero[0].Color != (RGB{0, 255, 0}) || hero[0].Intensity != 0.5 {
		t.Errorf("hero[0] = %+v", hero[0])
	}
	if hero[1].Color != DefaultLightColor || hero[1].Intensity != 1 || hero[1].Channel != ChannelSpectral {
		t.Errorf("hero[1] = %+v", hero[1])
	}
	if g := byOwner["goblin"]; len(g) != 1 || g[0].Color != (RGB{1, 2, 3}) || g[0].Kind != SourceActor {
		t.Errorf("goblin = %+v", g)
	}
	if l := byOwner["lantern"]; len(l) != 1 || l[0].Kind != SourceItem || l[0].Channel != ChannelAll {
		t.Errorf("lantern = %+v", l)
	}
	if f := byOwner["feature#0"]; len(f) != 1 || f[0].X != 10 || f[0].Y != 4 || f[0].Kind != SourceFeature {
		t.Errorf("feature = %+v", f)
	}
	if f := byOwner["furniture#0"]; len(f) != 1 || f[0].Color != (RGB{1, 2, 3}) {
		t.Errorf("furniture = %+v", f)
	}
}

func TestCollectWorldLightSources_UniqueIDsPerCall(t *testing.T) {
	ctx := WorldContext{
		Entities: []WorldEntity{
			&droppedItem{id: "a", light: &LightDescriptor{Radius: 1}},
			&droppedItem{id: "b", light: &LightDescriptor{Radius: 1}},
			&droppedItem{id: "c", light: &LightDescriptor{Radius: 1}},
		},
	}
	c := NewCollector(nil)
	first := c.CollectWorldLightSources(ctx)
	seen := map[string]bool{}
	for _, l := range first {
		if seen[l.ID] {
			t.Errorf("duplicate id %q", l.ID)
		}
		seen[l.ID] = true
	}
	// Sequence restarts with each call.
	second := c.CollectWorldLightSources(ctx)
	if first[0].ID != second[0].ID || first[0].ID != "item-0" {
		t.Errorf("ids = %q, %q, want item-0 for both", first[0].ID, second[0].ID)
	}
}

func TestCollectWorldLightSources_OnlyWhenHeldExcluded(t *testing.T) {
	ctx := WorldContext{
		Entities: []WorldEntity{
			&droppedItem{id: "glowstick", light: &LightDescriptor{Radius: 2}},
			&droppedItem{id: "torch", light: &LightDescriptor{Radius: 4, OnlyWhenHeld: true}},
			&droppedItem{id: "spent", light: nil},
		},
	}
	lights := NewCollector(nil).CollectWorldLightSources(ctx)
	if len(lights) != 1 || lights[0].OwnerID != "glowstick" {
		t.Errorf("lights = %+v, want only glowstick", lights)
	}
}

func TestCollectWorldLightSources_InvalidSkipped(t *testing.T) {
	m, _ := world.NewMapState(5, 5)
	m.Features = []world.Fixture{
		&brazier{x: math.NaN(), y: 1, light: &LightDescriptor{Radius: 3}},
		&brazier{x: 1, y: math.Inf(1), light: &LightDescriptor{Radius: 3}},
		&brazier{x: 1, y: 1, light: &LightDescriptor{Radius: math.Inf(1)}},
		&brazier{x: 1, y: 1, light: &LightDescriptor{Radius: 0}},
		&brazier{x: 1, y: 1, light: &LightDescriptor{Radius: -2}},
		nil,
	}
	ctx := WorldContext{
		Player: &singleActor{id: "blind", radius: math.NaN()},
		Map:    m,
	}
	if lights := NewCollector(nil).CollectWorldLightSources(ctx); len(lights) != 0 {
		t.Errorf("lights = %+v, want none", lights)
	}
}

func TestCollectWorldLightSources_EmptyContext(t *testing.T) {
	if lights := NewCollector(nil).CollectWorldLightSources(WorldContext{}); len(lights) != 0 {
		t.Errorf("lights = %+v, want none", lights)
	}
}

func TestCollectWorldLightSources_SanitizesFields(t *testing.T) {
	ctx := WorldContext{
		Entities: []WorldEntity{
			&droppedItem{id: "odd", light: &LightDescriptor{
				Radius:      2,
				Color:       "not-a-colour",
				Intensity:   7,
				FlickerRate: -3,
				Cone:        &Cone{Angle: math.NaN(), Width: 1},
			}},
		},
	}
	c := NewCollector(nil)
	lights := c.CollectWorldLightSources(ctx)
	if len(lights) != 1 {
		t.Fatalf("len(lights) = %d, want 1", len(lights))
	}
	l := lights[0]
	if l.Color != DefaultLightColor {
		t.Errorf("Color = %v, want default", l.Color)
	}
	if l.Intensity != 1 {
		t.Errorf("Intensity = %v, want 1 (clamped)", l.Intensity)
	}
	if l.FlickerRate != 0 {
		t.Errorf("FlickerRate = %v, want 0", l.FlickerRate)
	}
	if l.IsDirectional() {
		t.Error("a cone with a NaN angle should be dropped")
	}
	if c.Colors().Cached() != 1 {
		t.Errorf("Cached() = %d, want 1", c.Colors().Cached())
	}
}

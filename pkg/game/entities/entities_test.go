package entities

import (
	"math"
	"testing"

	"darklight/pkg/engine/lighting"
	"darklight/pkg/engine/world"
)

func TestEmitterVariants(t *testing.T) {
	tests := []struct {
		name  string
		actor any
		want  lighting.EmitterKind
	}{
		{"player", NewPlayer("ada", world.Pos(0, 0), 6), lighting.EmitterMulti},
		{"creature", &Creature{Name: "wisp", GlowRadius: 2}, lighting.EmitterSingle},
		{"item", NewLantern("l", world.Pos(0, 0)), lighting.EmitterNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lighting.ResolveEmitter(tt.actor).Kind; got != tt.want {
				t.Errorf("ResolveEmitter().Kind = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlayer_DropTorchGoesOut(t *testing.T) {
	p := NewPlayer("ada", world.Pos(3, 3), 6)
	torch := NewTorch("t1", world.Pos(3, 3))
	lantern := NewLantern("l1", world.Pos(3, 3))
	p.PickUp(torch)
	p.PickUp(lantern)

	if got := len(p.LightEmitters()); got != 2 {
		t.Fatalf("held lights = %d, want 2", got)
	}
	if torch.Light() != nil {
		t.Error("a held item should not light the world on its own")
	}

	p.Pos = world.Pos(5, 4)
	if !p.Drop(torch) || !p.Drop(lantern) {
		t.Fatal("Drop() = false for a held item")
	}
	if p.Drop(torch) {
		t.Error("Drop() = true for an item no longer held")
	}
	if torch.Pos != world.Pos(5, 4) {
		t.Errorf("dropped at %v, want 5,4", torch.Pos)
	}

	collector := lighting.NewCollector(nil)
	lights := collector.CollectWorldLightSources(lighting.WorldContext{
		Player:   p,
		Entities: FloorItems([]*Item{torch, lantern}),
	})
	if len(lights) != 1 || lights[0].OwnerID != "item:l1" {
		t.Errorf("lights = %+v, want only the lantern", lights)
	}
}

func TestCreature_DirectionalGlow(t *testing.T) {
	c := &Creature{Name: "lurker", Pos: world.Pos(4, 4), GlowRadius: 3, GlowColor: "#ff0000", Facing: math.Pi / 2, BeamWidth: math.Pi / 4}
	lights := lighting.NewCollector(nil).CollectWorldLightSources(lighting.WorldContext{Mobs: []lighting.Actor{c}})
	if len(lights) != 1 {
		t.Fatalf("lights = %d, want 1", len(lights))
	}
	l := lights[0]
	if !l.IsDirectional() || l.Cone.Angle != math.Pi/2 {
		t.Errorf("cone = %+v, want facing π/2", l.Cone)
	}
	if l.Color != (lighting.RGB{R: 255}) {
		t.Errorf("color = %+v, want red", l.Color)
	}

	c.BeamWidth = 0
	if _, _, ok := c.LightCone(); ok {
		t.Error("LightCone() ok with zero beam width")
	}
}

func TestFurniture(t *testing.T) {
	templates := GetLightFixturesForRoom("Aft Engineering")
	if len(templates) == 0 {
		t.Fatal("no light fixtures for engineering")
	}
	for _, tpl := range templates {
		if tpl.Lamp == nil {
			t.Errorf("%s has no lamp", tpl.Name)
		}
	}
	if GetAllFurnitureForRoom("Nowhere") != nil {
		t.Error("unknown room should have no furniture")
	}

	f := NewFurniture(templates[0], 2.5, 7.9)
	if x, y := f.FixturePosition(); x != 2.5 || y != 7.9 {
		t.Errorf("FixturePosition() = %v,%v", x, y)
	}
	f.Lamp.Radius = 99
	if templates[0].Lamp.Radius == 99 {
		t.Error("NewFurniture shares the template's lamp")
	}
	if f.Toggle() || f.Light() != nil {
		t.Error("toggled furniture should be dark")
	}
	if !f.Toggle() || f.Light() == nil {
		t.Error("toggled back furniture should be lit")
	}
}

func TestFeature(t *testing.T) {
	spot := NewFeature(FeatureSpotlight, 1, 1)
	spot.Facing = math.Pi
	d := spot.Light()
	if d == nil || d.Cone == nil || d.Cone.Angle != math.Pi {
		t.Fatalf("spotlight descriptor = %+v, want a cone facing π", d)
	}

	torch := NewFeature(FeatureTorch, 0, 0)
	if torch.Light().Cone != nil {
		t.Error("torch should be omnidirectional")
	}
	if torch.GetIcon() != "T" {
		t.Errorf("GetIcon() = %q, want T", torch.GetIcon())
	}
	torch.Extinguish()
	if torch.Light() != nil || torch.GetIcon() != "t" {
		t.Error("extinguished torch still lit")
	}
	torch.Ignite()
	if torch.Light() == nil {
		t.Error("ignited torch is dark")
	}

	if ch := NewFeature(FeatureFungus, 0, 0).Light().Channel; ch != lighting.ChannelSpectral {
		t.Errorf("fungus channel = %v, want spectral", ch)
	}
}

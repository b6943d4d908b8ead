package entities

import (
	"strings"

	"darklight/pkg/engine/lighting"
)

// Furniture represents a piece of furniture placed on the map. Some pieces
// (lanterns, consoles, braziers) cast light.
type Furniture struct {
	Name        string  // Display name
	Description string  // Hint text shown when the player is adjacent
	Icon        string  // Icon to display on the map
	X, Y        float64 // Map position; fractional for pieces between tiles

	// Lamp is the light this piece casts, nil for unlit furniture.
	Lamp *lighting.LightDescriptor
	// Off turns the lamp off without removing it.
	Off bool
}

// NewFurniture creates a new furniture piece from a template at (x, y)
func NewFurniture(t FurnitureTemplate, x, y float64) *Furniture {
	f := &Furniture{
		Name:        t.Name,
		Description: t.Description,
		Icon:        t.Icon,
		X:           x,
		Y:           y,
	}
	if t.Lamp != nil {
		lamp := *t.Lamp
		f.Lamp = &lamp
	}
	return f
}

// FixturePosition implements world.Fixture
func (f *Furniture) FixturePosition() (x, y float64) {
	return f.X, f.Y
}

// Light implements lighting.LightCarrier
func (f *Furniture) Light() *lighting.LightDescriptor {
	if f.Off {
		return nil
	}
	return f.Lamp
}

// Toggle switches the lamp on or off and returns whether it is now lit.
func (f *Furniture) Toggle() bool {
	f.Off = !f.Off
	return f.IsLit()
}

// IsLit returns true if this furniture currently emits light
func (f *Furniture) IsLit() bool {
	return f.Lamp != nil && !f.Off
}

// FurnitureTemplate defines a furniture type that can be placed in rooms
type FurnitureTemplate struct {
	Name        string
	Description string
	Icon        string
	Lamp        *lighting.LightDescriptor
}

func lamp(radius float64, color string, flicker float64) *lighting.LightDescriptor {
	return &lighting.LightDescriptor{Radius: radius, Color: color, FlickerRate: flicker}
}

// RoomFurniture contains furniture templates by room type
var RoomFurniture = map[string][]FurnitureTemplate{
	"Bridge": {
		{"Captain's Chair", "A worn command chair faces the main viewscreen.", "Ω", nil},
		{"Navigation Console", "Star charts flicker on a dusty display.", "≡", lamp(2, "#6fa8dc", 0.8)},
		{"Helm Station", "Manual flight controls, covered in emergency overrides.", "∩", lamp(1.5, "#93c47d", 0)},
	},
	"Engineering": {
		{"Computer Console", "Diagnostic readouts scroll past warnings.", "≡", lamp(2, "#6fa8dc", 0.5)},
		{"Tool Rack", "Wrenches and plasma cutters, some missing.", "╦", nil},
		{"Work Lamp", "A clamp lamp bolted to the bench, still burning.", "¤", lamp(4, "255,233,166", 0)},
	},
	"Reactor Core": {
		{"Control Rods", "Emergency dampeners, partially deployed.", "╫", lamp(3, "#ff4400", 1.5)},
		{"Coolant Pipes", "Thick tubes hum with circulating fluid.", "═", nil},
		{"Radiation Monitor", "Geiger counter clicks occasionally.", "☢", lamp(1, "rgb(255,0,0)", 2)},
	},
	"Server Room": {
		{"Server Rack", "Blinking lights indicate partial functionality.", "▥", lamp(1.5, "#00ff66", 3)},
		{"Terminal Bank", "Multiple screens display scrolling logs.", "≡", lamp(2, "#6fa8dc", 0)},
		{"Cooling Unit", "Industrial fans spin slowly.", "※", nil},
	},
	"Hydroponics": {
		{"Growth Bed", "Wilted plants in nutrient solution.", "≋", nil},
		{"UV Lamps", "Artificial sunlight, flickering.", "¤", lamp(5, "#c27ba0", 4)},
		{"Seed Storage", "Labeled drawers of genetic samples.", "▤", nil},
	},
	"Crew Quarters": {
		{"Bunk Bed", "Personal effects scattered on unmade sheets.", "╦", nil},
		{"Reading Light", "A small lamp left on over a paperback.", "¤", lamp(2.5, "#ffe599", 0)},
		{"Photo Display", "Faded images of distant families.", "▤", nil},
	},
	"Mess Hall": {
		{"Dining Table", "Trays of food, long since spoiled.", "╤", nil},
		{"Food Dispenser", "Vending machine, selections limited.", "▥", lamp(2, "#ffffff", 0.3)},
		{"Coffee Machine", "The pot is cold and empty.", "○", nil},
	},
}

// GetAllFurnitureForRoom returns all furniture templates for a room type
func GetAllFurnitureForRoom(roomName string) []FurnitureTemplate {
	for baseRoom, templates := range RoomFurniture {
		if strings.Contains(roomName, baseRoom) {
			return templates
		}
	}
	return nil
}

// GetLightFixturesForRoom returns only the templates that cast light
func GetLightFixturesForRoom(roomName string) []FurnitureTemplate {
	var lit []FurnitureTemplate
	for _, t := range GetAllFurnitureForRoom(roomName) {
		if t.Lamp != nil {
			lit = append(lit, t)
		}
	}
	return lit
}

// FindTemplate looks a furniture template up by name across all rooms
func FindTemplate(name string) (FurnitureTemplate, bool) {
	for _, templates := range RoomFurniture {
		for _, t := range templates {
			if t.Name == name {
				return t, true
			}
		}
	}
	return FurnitureTemplate{}, false
}

package entities

import (
	"math"

	"darklight/pkg/engine/lighting"
)

// FeatureType represents different kinds of light-emitting map features
type FeatureType int

const (
	FeatureTorch    FeatureType = iota // Wall-mounted torch
	FeatureBrazier                     // Open fire bowl
	FeatureFungus                      // Bioluminescent growth, only visible to spectral sight
	FeatureSpotlight                   // Directional floodlight
	FeatureEmbers                      // Dying fire, infrared only
)

// FeatureInfo contains display and light information for each feature type
type FeatureInfo struct {
	Name      string
	Icon      string
	IconDark  string
	Radius    float64
	Color     string
	Flicker   float64
	ConeWidth float64 // Zero for omnidirectional features
	Channel   lighting.Channel
}

// FeatureTypes maps feature types to their display information
var FeatureTypes = map[FeatureType]FeatureInfo{
	FeatureTorch: {
		Name:     "Torch",
		Icon:     "T",
		IconDark: "t",
		Radius:   5,
		Color:    "#ffb347",
		Flicker:  1.3,
	},
	FeatureBrazier: {
		Name:     "Brazier",
		Icon:     "B",
		IconDark: "b",
		Radius:   7,
		Color:    "#ff7f27",
		Flicker:  0.9,
	},
	FeatureFungus: {
		Name:     "Glowcap",
		Icon:     "F",
		IconDark: "f",
		Radius:   2,
		Color:    "#7fffd4",
		Channel:  lighting.ChannelSpectral,
	},
	FeatureSpotlight: {
		Name:      "Spotlight",
		Icon:      "S",
		IconDark:  "s",
		Radius:    9,
		Color:     "#ffffff",
		ConeWidth: math.Pi / 3,
	},
	FeatureEmbers: {
		Name:     "Embers",
		Icon:     "E",
		IconDark: "e",
		Radius:   1.5,
		Color:    "#8b0000",
		Flicker:  0.4,
		Channel:  lighting.ChannelInfrared,
	},
}

// Feature is a light-emitting map feature
type Feature struct {
	Type   FeatureType
	Name   string
	X, Y   float64
	Facing float64 // Cone direction in radians for directional features
	Dark   bool    // Whether the feature has been put out
}

// NewFeature creates a new lit feature of the given type at (x, y)
func NewFeature(featureType FeatureType, x, y float64) *Feature {
	return &Feature{
		Type: featureType,
		Name: FeatureTypes[featureType].Name,
		X:    x,
		Y:    y,
	}
}

// FixturePosition implements world.Fixture
func (f *Feature) FixturePosition() (x, y float64) {
	return f.X, f.Y
}

// Light implements lighting.LightCarrier. A dark feature emits nothing.
func (f *Feature) Light() *lighting.LightDescriptor {
	if f.Dark {
		return nil
	}
	info := FeatureTypes[f.Type]
	d := &lighting.LightDescriptor{
		Radius:      info.Radius,
		Color:       info.Color,
		FlickerRate: info.Flicker,
		Channel:     info.Channel,
	}
	if info.ConeWidth > 0 {
		d.Cone = &lighting.Cone{Angle: f.Facing, Width: info.ConeWidth}
	}
	return d
}

// Extinguish puts the feature out
func (f *Feature) Extinguish() {
	f.Dark = true
}

// Ignite relights the feature
func (f *Feature) Ignite() {
	f.Dark = false
}

// GetIcon returns the appropriate icon for this feature's current state
func (f *Feature) GetIcon() string {
	info := FeatureTypes[f.Type]
	if f.Dark {
		return info.IconDark
	}
	return info.Icon
}

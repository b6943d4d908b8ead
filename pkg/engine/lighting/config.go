package lighting

// Config holds the runtime-adjustable overlay parameters. It is passed into
// every compositor call, so two scenes can run with different settings.
type Config struct {
	// BaseOverlayAlpha is the alpha a light adds at full falloff strength
	// before flicker.
	BaseOverlayAlpha float64
	// FlickerVariance is the peak flicker swing added to the base alpha.
	FlickerVariance float64
	// FlickerNearDeadZoneTiles is the distance around a light that stays at
	// full strength.
	FlickerNearDeadZoneTiles float64
	// RangeMultiplier scales each light's radius into its visible reach.
	RangeMultiplier float64
	// FalloffPower shapes how fast flicker fades with distance.
	FalloffPower float64
}

// Default overlay parameters
const (
	DefaultBaseOverlayAlpha         = 0.55
	DefaultFlickerVariance          = 0.12
	DefaultFlickerNearDeadZoneTiles = 0.75
	DefaultRangeMultiplier          = 1.0
	DefaultFalloffPower             = 1.5
)

// DefaultConfig returns the default overlay parameters.
func DefaultConfig() Config {
	return Config{
		BaseOverlayAlpha:         DefaultBaseOverlayAlpha,
		FlickerVariance:          DefaultFlickerVariance,
		FlickerNearDeadZoneTiles: DefaultFlickerNearDeadZoneTiles,
		RangeMultiplier:          DefaultRangeMultiplier,
		FalloffPower:             DefaultFalloffPower,
	}
}

// Normalized returns a copy with non-finite or negative values replaced by
// their defaults and BaseOverlayAlpha clamped to [0,1].
func (c Config) Normalized() Config {
	n := c
	n.BaseOverlayAlpha = orDefault(c.BaseOverlayAlpha, DefaultBaseOverlayAlpha)
	if n.BaseOverlayAlpha > 1 {
		n.BaseOverlayAlpha = 1
	}
	n.FlickerVariance = orDefault(c.FlickerVariance, DefaultFlickerVariance)
	n.FlickerNearDeadZoneTiles = orDefault(c.FlickerNearDeadZoneTiles, DefaultFlickerNearDeadZoneTiles)
	n.RangeMultiplier = orDefault(c.RangeMultiplier, DefaultRangeMultiplier)
	n.FalloffPower = orDefault(c.FalloffPower, DefaultFalloffPower)
	return n
}

func orDefault(v, def float64) float64 {
	if !isFinite(v) || v < 0 {
		return def
	}
	return v
}
